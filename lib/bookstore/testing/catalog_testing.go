package testing

import (
	"testing"

	"github.com/UCPHszf/bookstore-assignment2/lib/bookstore"
)

// CatalogFactory is a function that creates a fresh, empty catalog instance.
type CatalogFactory func() bookstore.ICatalog

// RunCatalogTests runs a conformance test suite against a catalog
// implementation. Both the in-process store and the RPC client pair are
// expected to pass it unchanged.
func RunCatalogTests(t *testing.T, name string, factory CatalogFactory) {
	t.Run(name, func(t *testing.T) {
		t.Run("AddAndList", func(t *testing.T) {
			testAddAndList(t, factory())
		})

		t.Run("AddValidation", func(t *testing.T) {
			testAddValidation(t, factory())
		})

		t.Run("AddCopies", func(t *testing.T) {
			testAddCopies(t, factory())
		})

		t.Run("BuyBooks", func(t *testing.T) {
			testBuyBooks(t, factory())
		})

		t.Run("RateBooks", func(t *testing.T) {
			testRateBooks(t, factory())
		})

		t.Run("EditorPicks", func(t *testing.T) {
			testEditorPicks(t, factory())
		})

		t.Run("TopRated", func(t *testing.T) {
			testTopRated(t, factory())
		})

		t.Run("GetBooksByISBN", func(t *testing.T) {
			testGetBooksByISBN(t, factory())
		})

		t.Run("RemoveBooks", func(t *testing.T) {
			testRemoveBooks(t, factory())
		})

		t.Run("RemoveAllBooks", func(t *testing.T) {
			testRemoveAllBooks(t, factory())
		})

		t.Run("BooksInDemand", func(t *testing.T) {
			testBooksInDemand(t, factory())
		})

		t.Run("SaleMissScenario", func(t *testing.T) {
			testSaleMissScenario(t, factory())
		})

		t.Run("EmptyBatches", func(t *testing.T) {
			testEmptyBatches(t, factory())
		})
	})
}

// --------------------------------------------------------------------------
// Helpers
// --------------------------------------------------------------------------

func stockBook(isbn int, copies int) bookstore.StockBook {
	return bookstore.StockBook{
		Book: bookstore.Book{
			ISBN:   isbn,
			Title:  "Title",
			Author: "Author",
			Price:  9.99,
		},
		Copies: copies,
	}
}

func mustAdd(t *testing.T, c bookstore.ICatalog, books ...bookstore.StockBook) {
	t.Helper()
	if err := c.AddBooks(books); err != nil {
		t.Fatalf("AddBooks failed: %v", err)
	}
}

func getStock(t *testing.T, c bookstore.ICatalog, isbn int) bookstore.StockBook {
	t.Helper()
	books, err := c.GetBooksByISBN([]int{isbn})
	if err != nil {
		t.Fatalf("GetBooksByISBN(%d) failed: %v", isbn, err)
	}
	if len(books) != 1 {
		t.Fatalf("GetBooksByISBN(%d) returned %d books", isbn, len(books))
	}
	return books[0]
}

func expectCode(t *testing.T, err error, want bookstore.RetCode) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %s, got nil", want)
	}
	if got := bookstore.CodeOf(err); got != want {
		t.Fatalf("expected error code %s, got %s (%v)", want, got, err)
	}
}

// --------------------------------------------------------------------------
// Test Implementations
// --------------------------------------------------------------------------

func testAddAndList(t *testing.T, c bookstore.ICatalog) {
	mustAdd(t, c, stockBook(100, 3), stockBook(200, 1))

	books, err := c.ListBooks()
	if err != nil {
		t.Fatalf("ListBooks failed: %v", err)
	}
	if len(books) != 2 {
		t.Fatalf("expected 2 books, got %d", len(books))
	}
	for _, b := range books {
		if b.ISBN != 100 && b.ISBN != 200 {
			t.Errorf("unexpected ISBN %d in listing", b.ISBN)
		}
		if b.TimesRated != 0 || b.SaleMisses != 0 || b.EditorPick {
			t.Errorf("new book %d has non-initial state: %+v", b.ISBN, b)
		}
		if b.AverageRating() != -1 {
			t.Errorf("new book %d should be unrated", b.ISBN)
		}
	}
}

func testAddValidation(t *testing.T, c bookstore.ICatalog) {
	expectCode(t, c.AddBooks(nil), bookstore.RetCNullInput)

	bad := stockBook(300, 1)
	bad.Title = ""
	expectCode(t, c.AddBooks([]bookstore.StockBook{bad}), bookstore.RetCInvalidArgument)

	bad = stockBook(300, 0)
	expectCode(t, c.AddBooks([]bookstore.StockBook{bad}), bookstore.RetCInvalidArgument)

	bad = stockBook(-1, 1)
	expectCode(t, c.AddBooks([]bookstore.StockBook{bad}), bookstore.RetCInvalidArgument)

	bad = stockBook(300, 1)
	bad.Price = -1
	expectCode(t, c.AddBooks([]bookstore.StockBook{bad}), bookstore.RetCInvalidArgument)

	// All-or-nothing: one bad entry rejects the whole batch.
	mustAdd(t, c, stockBook(400, 1))
	batch := []bookstore.StockBook{stockBook(500, 1), stockBook(400, 1)}
	expectCode(t, c.AddBooks(batch), bookstore.RetCDuplicateISBN)
	if _, err := c.GetBooksByISBN([]int{500}); bookstore.CodeOf(err) != bookstore.RetCUnknownISBN {
		t.Error("book 500 must not exist after rejected batch")
	}
}

func testAddCopies(t *testing.T, c bookstore.ICatalog) {
	mustAdd(t, c, stockBook(100, 2))

	if err := c.AddCopies([]bookstore.BookCopy{{ISBN: 100, Copies: 3}}); err != nil {
		t.Fatalf("AddCopies failed: %v", err)
	}
	if got := getStock(t, c, 100).Copies; got != 5 {
		t.Errorf("expected 5 copies, got %d", got)
	}

	expectCode(t, c.AddCopies(nil), bookstore.RetCNullInput)
	expectCode(t, c.AddCopies([]bookstore.BookCopy{{ISBN: 100, Copies: 0}}), bookstore.RetCInvalidArgument)
	expectCode(t, c.AddCopies([]bookstore.BookCopy{{ISBN: 999, Copies: 1}}), bookstore.RetCUnknownISBN)

	// Batch with one unknown ISBN must not touch the known one.
	batch := []bookstore.BookCopy{{ISBN: 100, Copies: 1}, {ISBN: 999, Copies: 1}}
	expectCode(t, c.AddCopies(batch), bookstore.RetCUnknownISBN)
	if got := getStock(t, c, 100).Copies; got != 5 {
		t.Errorf("failed batch must not change stock, got %d", got)
	}
}

func testBuyBooks(t *testing.T, c bookstore.ICatalog) {
	mustAdd(t, c, stockBook(100, 5), stockBook(200, 5))

	if err := c.BuyBooks([]bookstore.BookCopy{{ISBN: 100, Copies: 2}, {ISBN: 200, Copies: 5}}); err != nil {
		t.Fatalf("BuyBooks failed: %v", err)
	}
	if got := getStock(t, c, 100).Copies; got != 3 {
		t.Errorf("expected 3 copies of 100, got %d", got)
	}
	if got := getStock(t, c, 200).Copies; got != 0 {
		t.Errorf("expected 0 copies of 200, got %d", got)
	}

	expectCode(t, c.BuyBooks(nil), bookstore.RetCNullInput)
	expectCode(t, c.BuyBooks([]bookstore.BookCopy{{ISBN: 100, Copies: 0}}), bookstore.RetCInvalidArgument)
	expectCode(t, c.BuyBooks([]bookstore.BookCopy{{ISBN: 999, Copies: 1}}), bookstore.RetCUnknownISBN)

	// A partially satisfiable batch is rejected in full: the satisfiable line
	// keeps its stock, the unsatisfiable one records a miss.
	batch := []bookstore.BookCopy{{ISBN: 100, Copies: 1}, {ISBN: 200, Copies: 2}}
	expectCode(t, c.BuyBooks(batch), bookstore.RetCInsufficientStock)
	if got := getStock(t, c, 100).Copies; got != 3 {
		t.Errorf("satisfiable line must not commit in a failed batch, got %d copies", got)
	}
	if got := getStock(t, c, 200); got.Copies != 0 || got.SaleMisses != 2 {
		t.Errorf("expected 0 copies and 2 sale misses for 200, got %d/%d", got.Copies, got.SaleMisses)
	}
}

func testRateBooks(t *testing.T, c bookstore.ICatalog) {
	mustAdd(t, c, stockBook(100, 1))

	ratings := []bookstore.BookRating{{ISBN: 100, Rating: 4}}
	if err := c.RateBooks(ratings); err != nil {
		t.Fatalf("RateBooks failed: %v", err)
	}
	ratings[0].Rating = 5
	if err := c.RateBooks(ratings); err != nil {
		t.Fatalf("RateBooks failed: %v", err)
	}

	got := getStock(t, c, 100)
	if got.TimesRated != 2 || got.TotalRating != 9 {
		t.Errorf("expected 2 ratings totalling 9, got %d/%d", got.TimesRated, got.TotalRating)
	}
	if avg := got.AverageRating(); avg != 4.5 {
		t.Errorf("expected average 4.5, got %f", avg)
	}

	expectCode(t, c.RateBooks(nil), bookstore.RetCNullInput)
	expectCode(t, c.RateBooks([]bookstore.BookRating{{ISBN: 100, Rating: 6}}), bookstore.RetCInvalidArgument)
	expectCode(t, c.RateBooks([]bookstore.BookRating{{ISBN: 100, Rating: -1}}), bookstore.RetCInvalidArgument)
	expectCode(t, c.RateBooks([]bookstore.BookRating{{ISBN: 999, Rating: 3}}), bookstore.RetCUnknownISBN)

	// Rejected ratings leave the totals untouched.
	got = getStock(t, c, 100)
	if got.TimesRated != 2 || got.TotalRating != 9 {
		t.Errorf("rejected ratings must not change totals, got %d/%d", got.TimesRated, got.TotalRating)
	}
}

func testEditorPicks(t *testing.T, c bookstore.ICatalog) {
	mustAdd(t, c, stockBook(100, 1), stockBook(200, 1), stockBook(300, 1), stockBook(400, 1))

	picks := []bookstore.EditorPick{
		{ISBN: 100, Pick: true},
		{ISBN: 200, Pick: true},
		{ISBN: 300, Pick: true},
	}
	if err := c.UpdateEditorPicks(picks); err != nil {
		t.Fatalf("UpdateEditorPicks failed: %v", err)
	}

	expectCode(t, c.UpdateEditorPicks(nil), bookstore.RetCNullInput)
	expectCode(t, c.UpdateEditorPicks([]bookstore.EditorPick{{ISBN: 999, Pick: true}}), bookstore.RetCUnknownISBN)

	if _, err := c.GetEditorPicks(-1); bookstore.CodeOf(err) != bookstore.RetCInvalidArgument {
		t.Error("negative count must be rejected")
	}

	// Fewer flagged books than requested: all of them come back.
	all, err := c.GetEditorPicks(10)
	if err != nil {
		t.Fatalf("GetEditorPicks failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected all 3 picks, got %d", len(all))
	}

	// Random sample: never more than requested, never a duplicate, never an
	// unflagged book.
	for i := 0; i < 20; i++ {
		sample, err := c.GetEditorPicks(2)
		if err != nil {
			t.Fatalf("GetEditorPicks failed: %v", err)
		}
		if len(sample) != 2 {
			t.Fatalf("expected 2 picks, got %d", len(sample))
		}
		if sample[0].ISBN == sample[1].ISBN {
			t.Fatal("duplicate book in editor-pick sample")
		}
		for _, b := range sample {
			if b.ISBN == 400 {
				t.Fatal("unflagged book in editor-pick sample")
			}
		}
	}

	// Unflagging removes a book from the pool.
	if err := c.UpdateEditorPicks([]bookstore.EditorPick{{ISBN: 300, Pick: false}}); err != nil {
		t.Fatalf("UpdateEditorPicks failed: %v", err)
	}
	all, err = c.GetEditorPicks(10)
	if err != nil {
		t.Fatalf("GetEditorPicks failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected 2 picks after unflagging, got %d", len(all))
	}
}

func testTopRated(t *testing.T, c bookstore.ICatalog) {
	mustAdd(t, c, stockBook(100, 1), stockBook(200, 1), stockBook(300, 1), stockBook(400, 1))

	// Averages: 100 -> 4.5, 200 -> 3.0, 300 -> 5.0, 400 unrated.
	rate := func(isbn, rating int) {
		if err := c.RateBooks([]bookstore.BookRating{{ISBN: isbn, Rating: rating}}); err != nil {
			t.Fatalf("RateBooks failed: %v", err)
		}
	}
	rate(100, 4)
	rate(100, 5)
	rate(200, 3)
	rate(300, 5)

	top, err := c.GetTopRatedBooks(3)
	if err != nil {
		t.Fatalf("GetTopRatedBooks failed: %v", err)
	}
	want := []int{300, 100, 200}
	if len(top) != len(want) {
		t.Fatalf("expected %d books, got %d", len(want), len(top))
	}
	for i, isbn := range want {
		if top[i].ISBN != isbn {
			t.Errorf("position %d: expected ISBN %d, got %d", i, isbn, top[i].ISBN)
		}
	}

	// The unrated book fills up only when there are not enough rated ones.
	top, err = c.GetTopRatedBooks(4)
	if err != nil {
		t.Fatalf("GetTopRatedBooks failed: %v", err)
	}
	if len(top) != 4 || top[3].ISBN != 400 {
		t.Errorf("expected unrated book last, got %+v", top)
	}

	if _, err := c.GetTopRatedBooks(-1); bookstore.CodeOf(err) != bookstore.RetCInvalidArgument {
		t.Error("negative count must be rejected")
	}
	if top, err := c.GetTopRatedBooks(0); err != nil || len(top) != 0 {
		t.Errorf("zero count must yield an empty result, got %v/%v", top, err)
	}
}

func testGetBooksByISBN(t *testing.T, c bookstore.ICatalog) {
	mustAdd(t, c, stockBook(100, 1), stockBook(200, 1))

	books, err := c.GetBooksByISBN([]int{200})
	if err != nil {
		t.Fatalf("GetBooksByISBN failed: %v", err)
	}
	if len(books) != 1 || books[0].ISBN != 200 {
		t.Fatalf("unexpected result %+v", books)
	}

	if _, err := c.GetBooksByISBN([]int{100, 999}); bookstore.CodeOf(err) != bookstore.RetCUnknownISBN {
		t.Error("expected UnknownISBN for missing ISBN in batch")
	}
	if _, err := c.GetBooksByISBN(nil); bookstore.CodeOf(err) != bookstore.RetCNullInput {
		t.Error("expected NullInput for nil batch")
	}

	shop, err := c.GetBooks([]int{100, 200})
	if err != nil {
		t.Fatalf("GetBooks failed: %v", err)
	}
	if len(shop) != 2 {
		t.Errorf("expected 2 books, got %d", len(shop))
	}
}

func testRemoveBooks(t *testing.T, c bookstore.ICatalog) {
	mustAdd(t, c, stockBook(100, 1), stockBook(200, 1))

	expectCode(t, c.RemoveBooks(nil), bookstore.RetCNullInput)
	expectCode(t, c.RemoveBooks([]int{-5}), bookstore.RetCInvalidArgument)

	// All-or-nothing: an unknown ISBN rejects the whole batch.
	expectCode(t, c.RemoveBooks([]int{100, 999}), bookstore.RetCUnknownISBN)
	if _, err := c.GetBooksByISBN([]int{100}); err != nil {
		t.Errorf("book 100 must survive a rejected removal batch: %v", err)
	}

	if err := c.RemoveBooks([]int{100}); err != nil {
		t.Fatalf("RemoveBooks failed: %v", err)
	}
	if _, err := c.GetBooksByISBN([]int{100}); bookstore.CodeOf(err) != bookstore.RetCUnknownISBN {
		t.Error("book 100 must be gone after removal")
	}
	if _, err := c.GetBooksByISBN([]int{200}); err != nil {
		t.Errorf("book 200 must survive removal of 100: %v", err)
	}

	// A removed ISBN can be re-added.
	mustAdd(t, c, stockBook(100, 7))
	if got := getStock(t, c, 100).Copies; got != 7 {
		t.Errorf("re-added book has %d copies, expected 7", got)
	}
}

func testRemoveAllBooks(t *testing.T, c bookstore.ICatalog) {
	mustAdd(t, c, stockBook(100, 1), stockBook(200, 1))

	if err := c.RemoveAllBooks(); err != nil {
		t.Fatalf("RemoveAllBooks failed: %v", err)
	}
	books, err := c.ListBooks()
	if err != nil {
		t.Fatalf("ListBooks failed: %v", err)
	}
	if len(books) != 0 {
		t.Errorf("expected empty catalog, got %d books", len(books))
	}

	// The catalog stays usable afterwards.
	mustAdd(t, c, stockBook(100, 1))
}

func testBooksInDemand(t *testing.T, c bookstore.ICatalog) {
	mustAdd(t, c, stockBook(100, 1), stockBook(200, 1))

	demand, err := c.GetBooksInDemand()
	if err != nil {
		t.Fatalf("GetBooksInDemand failed: %v", err)
	}
	if len(demand) != 0 {
		t.Fatalf("expected no demand, got %d", len(demand))
	}

	expectCode(t, c.BuyBooks([]bookstore.BookCopy{{ISBN: 100, Copies: 4}}), bookstore.RetCInsufficientStock)

	demand, err = c.GetBooksInDemand()
	if err != nil {
		t.Fatalf("GetBooksInDemand failed: %v", err)
	}
	if len(demand) != 1 || demand[0].ISBN != 100 || demand[0].SaleMisses != 3 {
		t.Errorf("expected book 100 with 3 misses, got %+v", demand)
	}
}

// testEmptyBatches verifies that an empty batch is a successful no-op on
// every operation, unlike a nil batch which is NullInput. Run over the RPC
// clients this also pins down that a present-but-empty batch survives the
// wire for every serializer.
func testEmptyBatches(t *testing.T, c bookstore.ICatalog) {
	mustAdd(t, c, stockBook(100, 2))

	if err := c.AddBooks([]bookstore.StockBook{}); err != nil {
		t.Errorf("empty AddBooks batch must succeed: %v", err)
	}
	if err := c.AddCopies([]bookstore.BookCopy{}); err != nil {
		t.Errorf("empty AddCopies batch must succeed: %v", err)
	}
	if err := c.BuyBooks([]bookstore.BookCopy{}); err != nil {
		t.Errorf("empty BuyBooks batch must succeed: %v", err)
	}
	if err := c.RateBooks([]bookstore.BookRating{}); err != nil {
		t.Errorf("empty RateBooks batch must succeed: %v", err)
	}
	if err := c.UpdateEditorPicks([]bookstore.EditorPick{}); err != nil {
		t.Errorf("empty UpdateEditorPicks batch must succeed: %v", err)
	}
	if err := c.RemoveBooks([]int{}); err != nil {
		t.Errorf("empty RemoveBooks batch must succeed: %v", err)
	}
	if books, err := c.GetBooksByISBN([]int{}); err != nil || len(books) != 0 {
		t.Errorf("empty GetBooksByISBN batch must yield no books, got %v/%v", books, err)
	}
	if books, err := c.GetBooks([]int{}); err != nil || len(books) != 0 {
		t.Errorf("empty GetBooks batch must yield no books, got %v/%v", books, err)
	}

	if got := getStock(t, c, 100).Copies; got != 2 {
		t.Errorf("empty batches must not change stock, got %d copies", got)
	}
}

// testSaleMissScenario runs the canonical restock/purchase sequence end to
// end: add with stock 5, buy 3, then fail to buy 5 more.
func testSaleMissScenario(t *testing.T, c bookstore.ICatalog) {
	mustAdd(t, c, stockBook(111, 5))

	if err := c.BuyBooks([]bookstore.BookCopy{{ISBN: 111, Copies: 3}}); err != nil {
		t.Fatalf("BuyBooks failed: %v", err)
	}
	if got := getStock(t, c, 111).Copies; got != 2 {
		t.Fatalf("expected 2 copies, got %d", got)
	}

	expectCode(t, c.BuyBooks([]bookstore.BookCopy{{ISBN: 111, Copies: 5}}), bookstore.RetCInsufficientStock)

	got := getStock(t, c, 111)
	if got.Copies != 2 {
		t.Errorf("stock must be unchanged after failed purchase, got %d", got.Copies)
	}
	if got.SaleMisses != 3 {
		t.Errorf("expected sale-miss count 3, got %d", got.SaleMisses)
	}
}
