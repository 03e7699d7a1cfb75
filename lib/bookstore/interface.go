package bookstore

import (
	"errors"
	"fmt"
)

// --------------------------------------------------------------------------
// Interface Definitions
// --------------------------------------------------------------------------

// IBookStore is the shop-facing interface of the catalog.
// All batch operations are all-or-nothing: either every entry of the batch is
// applied or none is (see the cstore package for the one documented
// exception, sale-miss accounting on failed purchases).
type IBookStore interface {
	// BuyBooks decrements the stock for every order line.
	// If any line cannot be satisfied the whole batch is rejected with
	// RetCInsufficientStock, but every unsatisfiable line's shortfall is
	// recorded as a sale miss before the batch fails.
	BuyBooks(orders []BookCopy) (err error)
	// GetBooks returns the immutable view of the books with the given ISBNs.
	GetBooks(isbns []int) (books []Book, err error)
	// GetEditorPicks returns up to n distinct random books currently flagged
	// as editor picks.
	GetEditorPicks(n int) (books []Book, err error)
	// GetTopRatedBooks returns up to n books ordered by descending average
	// rating. Unrated books sort last and are only used to fill up the result
	// when fewer than n rated books exist.
	GetTopRatedBooks(n int) (books []Book, err error)
	// RateBooks applies a rating in [0, 5] to every target book.
	RateBooks(ratings []BookRating) (err error)
}

// ICatalog combines the shop and stock interfaces. The in-process store
// implements both over one shared catalog, as does the RPC client pair.
type ICatalog interface {
	IBookStore
	IStockManager
}

// IStockManager is the stock-facing interface of the catalog.
type IStockManager interface {
	// AddBooks inserts new books. Every descriptor is validated before any
	// book is inserted (all-or-nothing creation).
	AddBooks(books []StockBook) (err error)
	// AddCopies increments the stock for every entry.
	AddCopies(copies []BookCopy) (err error)
	// ListBooks returns an independent snapshot of the whole catalog.
	ListBooks() (books []StockBook, err error)
	// GetBooksByISBN returns snapshots of the books with the given ISBNs.
	GetBooksByISBN(isbns []int) (books []StockBook, err error)
	// GetBooksInDemand returns snapshots of all books with at least one
	// recorded sale miss.
	GetBooksInDemand() (books []StockBook, err error)
	// RemoveBooks deletes the books with the given ISBNs. The whole batch is
	// validated before any book is removed.
	RemoveBooks(isbns []int) (err error)
	// RemoveAllBooks empties the catalog.
	RemoveAllBooks() (err error)
	// UpdateEditorPicks sets or clears the editor-pick flag for every entry.
	UpdateEditorPicks(picks []EditorPick) (err error)
}

// --------------------------------------------------------------------------
// Custom Error Type
// --------------------------------------------------------------------------

// Error is a custom error type that wraps a return code (of type RetCode)
// and an error message.
type Error struct {
	Code RetCode // The return code
	Msg  string  // The error message
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("BookStoreError (code %s): %s", e.Code, e.Msg)
}

// NewError creates a new Error with the given code and message.
func NewError(code RetCode, format string, args ...interface{}) *Error {
	return &Error{
		Code: code,
		Msg:  fmt.Sprintf(format, args...),
	}
}

// CodeOf extracts the return code from an error. It returns RetCSuccess for a
// nil error and RetCInternalError for errors that do not carry a code.
func CodeOf(err error) RetCode {
	if err == nil {
		return RetCSuccess
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return RetCInternalError
}

// --------------------------------------------------------------------------
// Return Codes
// --------------------------------------------------------------------------

type RetCode uint64

const (
	RetCSuccess           RetCode = iota // 0: Operation executed successfully.
	RetCInternalError                    // 1: Operation failed due to an internal error.
	RetCNullInput                        // 2: The batch argument itself was absent.
	RetCInvalidArgument                  // 3: A field violates its domain constraint.
	RetCUnknownISBN                      // 4: Operation targets an ISBN not in the catalog.
	RetCDuplicateISBN                    // 5: Add targets an ISBN already present.
	RetCInsufficientStock                // 6: A purchase batch has an unsatisfiable line.
)

func (c RetCode) String() string {
	switch c {
	case RetCSuccess:
		return "Success"
	case RetCInternalError:
		return "InternalError"
	case RetCNullInput:
		return "NullInput"
	case RetCInvalidArgument:
		return "InvalidArgument"
	case RetCUnknownISBN:
		return "UnknownISBN"
	case RetCDuplicateISBN:
		return "DuplicateISBN"
	case RetCInsufficientStock:
		return "InsufficientStock"
	default:
		return "Unknown"
	}
}
