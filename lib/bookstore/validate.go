package bookstore

import "strings"

// --------------------------------------------------------------------------
// Validators
// --------------------------------------------------------------------------

// The catalog core treats field validation as an external concern: the store
// is configured with pure validator functions and only decides when they run
// (before any mutation of a batch). The defaults below implement the standard
// rules.

// ISBNValidator reports whether an ISBN is well formed.
type ISBNValidator func(isbn int) bool

// BookValidator checks the descriptive fields of a new book. It must return
// nil for a valid descriptor and an *Error otherwise. ISBN well-formedness
// and duplicate detection are handled by the store itself.
type BookValidator func(book StockBook) error

// DefaultISBNValidator accepts every positive ISBN.
func DefaultISBNValidator(isbn int) bool {
	return isbn > 0
}

// DefaultBookValidator checks title, author, initial copies and price.
func DefaultBookValidator(book StockBook) error {
	if strings.TrimSpace(book.Title) == "" {
		return NewError(RetCInvalidArgument, "book %d has an empty title", book.ISBN)
	}
	if strings.TrimSpace(book.Author) == "" {
		return NewError(RetCInvalidArgument, "book %d has an empty author", book.ISBN)
	}
	if book.Copies < 1 {
		return NewError(RetCInvalidArgument, "book %d must have at least one copy, got %d", book.ISBN, book.Copies)
	}
	if book.Price < 0 {
		return NewError(RetCInvalidArgument, "book %d has a negative price", book.ISBN)
	}
	return nil
}
