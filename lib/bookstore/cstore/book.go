package cstore

import "github.com/UCPHszf/bookstore-assignment2/lib/bookstore"

// book is the mutable catalog record for one ISBN.
//
// The record has no locking of its own: callers must hold the book's
// per-ISBN lock (write mode for the mutators, at least read mode for the
// snapshot methods). All mutators keep the copy-count invariant by
// construction; buyCopies is the only one that can refuse.
type book struct {
	isbn   int
	title  string
	author string
	price  float32

	copies      int
	saleMisses  int
	timesRated  int
	totalRating int
	editorPick  bool
}

func newBook(src bookstore.StockBook) *book {
	return &book{
		isbn:   src.ISBN,
		title:  src.Title,
		author: src.Author,
		price:  src.Price,
		copies: src.Copies,
	}
}

func (b *book) addCopies(n int) {
	b.copies += n
}

// hasCopies reports whether n copies are currently in stock.
func (b *book) hasCopies(n int) bool {
	return n <= b.copies
}

// buyCopies removes n copies from stock. The caller must have checked
// hasCopies first; buyCopies refuses rather than let the count go negative.
func (b *book) buyCopies(n int) bool {
	if !b.hasCopies(n) {
		return false
	}
	b.copies -= n
	return true
}

func (b *book) addRating(rating int) {
	b.totalRating += rating
	b.timesRated++
}

func (b *book) setEditorPick(pick bool) {
	b.editorPick = pick
}

func (b *book) addSaleMiss(n int) {
	b.saleMisses += n
}

// immutableBook returns an independent shop view of the record.
func (b *book) immutableBook() bookstore.Book {
	return bookstore.Book{
		ISBN:   b.isbn,
		Title:  b.title,
		Author: b.author,
		Price:  b.price,
	}
}

// immutableStockBook returns an independent stock-management snapshot.
func (b *book) immutableStockBook() bookstore.StockBook {
	return bookstore.StockBook{
		Book:        b.immutableBook(),
		Copies:      b.copies,
		SaleMisses:  b.saleMisses,
		TimesRated:  b.timesRated,
		TotalRating: b.totalRating,
		EditorPick:  b.editorPick,
	}
}
