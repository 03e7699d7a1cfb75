package stock

import (
	"fmt"
	"strconv"

	"github.com/UCPHszf/bookstore-assignment2/lib/bookstore"
	"github.com/spf13/cobra"
)

var (
	addCmd = &cobra.Command{
		Use:   "add [isbn] [title] [author] [price] [copies]",
		Short: "Adds a new book to the catalog",
		Args:  cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			isbn, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("isbn must be a number: %w", err)
			}
			price, err := strconv.ParseFloat(args[3], 32)
			if err != nil {
				return fmt.Errorf("price must be a number: %w", err)
			}
			copies, err := strconv.Atoi(args[4])
			if err != nil {
				return fmt.Errorf("copies must be a number: %w", err)
			}
			book := bookstore.StockBook{
				Book: bookstore.Book{
					ISBN:   isbn,
					Title:  args[1],
					Author: args[2],
					Price:  float32(price),
				},
				Copies: copies,
			}
			if err := rpcStockMgr.AddBooks([]bookstore.StockBook{book}); err != nil {
				return err
			} else {
				fmt.Println("book added successfully")
			}
			return nil
		},
	}
	addCopiesCmd = &cobra.Command{
		Use:   "add-copies [isbn] [copies]",
		Short: "Adds copies of an existing book to the stock",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			isbn, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("isbn must be a number: %w", err)
			}
			copies, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("copies must be a number: %w", err)
			}
			if err := rpcStockMgr.AddCopies([]bookstore.BookCopy{{ISBN: isbn, Copies: copies}}); err != nil {
				return err
			} else {
				fmt.Println("copies added successfully")
			}
			return nil
		},
	}
	listCmd = &cobra.Command{
		Use:   "list",
		Short: "Lists all books in the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if books, err := rpcStockMgr.ListBooks(); err != nil {
				return err
			} else {
				printStockBooks(books)
			}
			return nil
		},
	}
	getCmd = &cobra.Command{
		Use:   "get [isbn...]",
		Short: "Reads the stock entries for the given ISBNs",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			isbns, err := parseISBNs(args)
			if err != nil {
				return err
			}
			if books, err := rpcStockMgr.GetBooksByISBN(isbns); err != nil {
				return err
			} else {
				printStockBooks(books)
			}
			return nil
		},
	}
	inDemandCmd = &cobra.Command{
		Use:   "in-demand",
		Short: "Lists all books that have missed at least one sale",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if books, err := rpcStockMgr.GetBooksInDemand(); err != nil {
				return err
			} else {
				printStockBooks(books)
			}
			return nil
		},
	}
	setPickCmd = &cobra.Command{
		Use:   "set-pick [isbn] [true|false]",
		Short: "Flags or unflags a book as an editor pick",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			isbn, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("isbn must be a number: %w", err)
			}
			pick, err := strconv.ParseBool(args[1])
			if err != nil {
				return fmt.Errorf("pick must be true or false: %w", err)
			}
			if err := rpcStockMgr.UpdateEditorPicks([]bookstore.EditorPick{{ISBN: isbn, Pick: pick}}); err != nil {
				return err
			} else {
				fmt.Println("editor pick updated successfully")
			}
			return nil
		},
	}
	removeCmd = &cobra.Command{
		Use:   "remove [isbn...]",
		Short: "Removes books from the catalog",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			isbns, err := parseISBNs(args)
			if err != nil {
				return err
			}
			if err := rpcStockMgr.RemoveBooks(isbns); err != nil {
				return err
			} else {
				fmt.Println("books removed successfully")
			}
			return nil
		},
	}
	removeAllCmd = &cobra.Command{
		Use:   "remove-all",
		Short: "Removes all books from the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := rpcStockMgr.RemoveAllBooks(); err != nil {
				return err
			} else {
				fmt.Println("catalog cleared successfully")
			}
			return nil
		},
	}
)

// parseISBNs converts the command line arguments to a list of ISBNs
func parseISBNs(args []string) ([]int, error) {
	isbns := make([]int, 0, len(args))
	for _, arg := range args {
		isbn, err := strconv.Atoi(arg)
		if err != nil {
			return nil, fmt.Errorf("isbn must be a number: %w", err)
		}
		isbns = append(isbns, isbn)
	}
	return isbns, nil
}

// printStockBooks prints the stock entries, one book per line
func printStockBooks(books []bookstore.StockBook) {
	if len(books) == 0 {
		fmt.Println("no books found")
		return
	}
	for _, b := range books {
		fmt.Printf("isbn=%d, title=%q, author=%q, price=%.2f, copies=%d, saleMisses=%d, avgRating=%.1f, editorPick=%t\n",
			b.ISBN, b.Title, b.Author, b.Price, b.Copies, b.SaleMisses, b.AverageRating(), b.EditorPick)
	}
}
