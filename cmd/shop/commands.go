package shop

import (
	"fmt"
	"strconv"

	"github.com/UCPHszf/bookstore-assignment2/lib/bookstore"
	"github.com/spf13/cobra"
)

var (
	buyCmd = &cobra.Command{
		Use:   "buy [isbn] [copies]",
		Short: "Buys copies of a book",
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
			if err := rpcBookStore.BuyBooks([]bookstore.BookCopy{{ISBN: isbn, Copies: copies}}); err != nil {
				return err
			} else {
				fmt.Println("books bought successfully")
			}
			return nil
		},
	}
	getCmd = &cobra.Command{
		Use:   "get [isbn...]",
		Short: "Reads the books for the given ISBNs",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			isbns := make([]int, 0, len(args))
			for _, arg := range args {
				isbn, err := strconv.Atoi(arg)
				if err != nil {
					return fmt.Errorf("isbn must be a number: %w", err)
				}
				isbns = append(isbns, isbn)
			}
			if books, err := rpcBookStore.GetBooks(isbns); err != nil {
				return err
			} else {
				printBooks(books)
			}
			return nil
		},
	}
	rateCmd = &cobra.Command{
		Use:   "rate [isbn] [rating]",
		Short: "Rates a book (0-5)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			isbn, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("isbn must be a number: %w", err)
			}
			rating, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("rating must be a number: %w", err)
			}
			if err := rpcBookStore.RateBooks([]bookstore.BookRating{{ISBN: isbn, Rating: rating}}); err != nil {
				return err
			} else {
				fmt.Println("book rated successfully")
			}
			return nil
		},
	}
	topRatedCmd = &cobra.Command{
		Use:   "top-rated [count]",
		Short: "Lists the highest rated books",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			count, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("count must be a number: %w", err)
			}
			if books, err := rpcBookStore.GetTopRatedBooks(count); err != nil {
				return err
			} else {
				printBooks(books)
			}
			return nil
		},
	}
	picksCmd = &cobra.Command{
		Use:   "picks [count]",
		Short: "Samples random editor picks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			count, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("count must be a number: %w", err)
			}
			if books, err := rpcBookStore.GetEditorPicks(count); err != nil {
				return err
			} else {
				printBooks(books)
			}
			return nil
		},
	}
)

// printBooks prints the books, one per line
func printBooks(books []bookstore.Book) {
	if len(books) == 0 {
		fmt.Println("no books found")
		return
	}
	for _, b := range books {
		fmt.Printf("isbn=%d, title=%q, author=%q, price=%.2f\n", b.ISBN, b.Title, b.Author, b.Price)
	}
}
