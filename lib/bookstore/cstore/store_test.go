package cstore

import (
	"math/rand"
	"sync"
	"testing"

	"github.com/UCPHszf/bookstore-assignment2/lib/bookstore"
	bsTesting "github.com/UCPHszf/bookstore-assignment2/lib/bookstore/testing"
)

func TestCatalogSuite(t *testing.T) {
	bsTesting.RunCatalogTests(t, "cstore", func() bookstore.ICatalog {
		return New(nil)
	})
}

func TestDeterministicSampling(t *testing.T) {
	newStore := func() bookstore.ICatalog {
		return New(&Options{Rand: rand.New(rand.NewSource(42))})
	}

	setup := func(c bookstore.ICatalog) {
		var books []bookstore.StockBook
		var picks []bookstore.EditorPick
		for isbn := 1; isbn <= 10; isbn++ {
			books = append(books, bookstore.StockBook{
				Book:   bookstore.Book{ISBN: isbn, Title: "T", Author: "A", Price: 1},
				Copies: 1,
			})
			picks = append(picks, bookstore.EditorPick{ISBN: isbn, Pick: true})
		}
		if err := c.AddBooks(books); err != nil {
			t.Fatalf("AddBooks failed: %v", err)
		}
		if err := c.UpdateEditorPicks(picks); err != nil {
			t.Fatalf("UpdateEditorPicks failed: %v", err)
		}
	}

	a, b := newStore(), newStore()
	setup(a)
	setup(b)

	// Same seed, same sequence of samples.
	for i := 0; i < 5; i++ {
		sa, err := a.GetEditorPicks(3)
		if err != nil {
			t.Fatalf("GetEditorPicks failed: %v", err)
		}
		sb, err := b.GetEditorPicks(3)
		if err != nil {
			t.Fatalf("GetEditorPicks failed: %v", err)
		}
		if len(sa) != 3 || len(sb) != 3 {
			t.Fatalf("expected 3 picks, got %d/%d", len(sa), len(sb))
		}
		for j := range sa {
			if sa[j].ISBN != sb[j].ISBN {
				t.Fatalf("seeded stores diverged at sample %d: %+v vs %+v", i, sa, sb)
			}
		}
	}
}

// --------------------------------------------------------------------------
// Concurrency
// --------------------------------------------------------------------------

// TestConcurrentBuySameISBN hammers a single book with concurrent purchases
// and checks that no update is lost: the final stock accounts for exactly the
// successful purchases.
func TestConcurrentBuySameISBN(t *testing.T) {
	const (
		workers       = 16
		buysPerWorker = 50
		initialStock  = workers * buysPerWorker
	)

	c := New(nil)
	err := c.AddBooks([]bookstore.StockBook{{
		Book:   bookstore.Book{ISBN: 1, Title: "T", Author: "A", Price: 1},
		Copies: initialStock,
	}})
	if err != nil {
		t.Fatalf("AddBooks failed: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < buysPerWorker; j++ {
				if err := c.BuyBooks([]bookstore.BookCopy{{ISBN: 1, Copies: 1}}); err != nil {
					t.Errorf("BuyBooks failed: %v", err)
					return
				}
			}
		}()
	}
	wg.Wait()

	books, err := c.GetBooksByISBN([]int{1})
	if err != nil {
		t.Fatalf("GetBooksByISBN failed: %v", err)
	}
	if got := books[0].Copies; got != 0 {
		t.Errorf("lost updates: expected 0 copies, got %d", got)
	}
}

// TestConcurrentMixedWorkload runs writers and readers against overlapping
// ISBNs. Readers must always observe consistent per-book state.
func TestConcurrentMixedWorkload(t *testing.T) {
	const rounds = 200

	c := New(nil)
	var books []bookstore.StockBook
	for isbn := 1; isbn <= 8; isbn++ {
		books = append(books, bookstore.StockBook{
			Book:   bookstore.Book{ISBN: isbn, Title: "T", Author: "A", Price: 1},
			Copies: 10 * rounds,
		})
	}
	if err := c.AddBooks(books); err != nil {
		t.Fatalf("AddBooks failed: %v", err)
	}

	var wg sync.WaitGroup

	// Buyers take two copies across two books per round.
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			batch := []bookstore.BookCopy{
				{ISBN: 2*w + 1, Copies: 1},
				{ISBN: 2*w + 2, Copies: 1},
			}
			for i := 0; i < rounds; i++ {
				if err := c.BuyBooks(batch); err != nil {
					t.Errorf("BuyBooks failed: %v", err)
					return
				}
			}
		}(w)
	}

	// Raters touch every book.
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < rounds; i++ {
			for isbn := 1; isbn <= 8; isbn++ {
				if err := c.RateBooks([]bookstore.BookRating{{ISBN: isbn, Rating: 3}}); err != nil {
					t.Errorf("RateBooks failed: %v", err)
					return
				}
			}
		}
	}()

	// Readers list the whole catalog and check snapshot invariants.
	for r := 0; r < 3; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < rounds; i++ {
				listing, err := c.ListBooks()
				if err != nil {
					t.Errorf("ListBooks failed: %v", err)
					return
				}
				for _, b := range listing {
					if b.Copies < 0 {
						t.Errorf("negative stock observed for %d", b.ISBN)
						return
					}
					if b.TimesRated > 0 && b.TotalRating != 3*b.TimesRated {
						t.Errorf("inconsistent rating state for %d: %d/%d", b.ISBN, b.TimesRated, b.TotalRating)
						return
					}
				}
			}
		}()
	}

	wg.Wait()

	// Every purchase committed: each book lost exactly `rounds` copies.
	listing, err := c.ListBooks()
	if err != nil {
		t.Fatalf("ListBooks failed: %v", err)
	}
	for _, b := range listing {
		if b.Copies != 9*rounds {
			t.Errorf("book %d: expected %d copies, got %d", b.ISBN, 9*rounds, b.Copies)
		}
		if b.TimesRated != rounds {
			t.Errorf("book %d: expected %d ratings, got %d", b.ISBN, rounds, b.TimesRated)
		}
	}
}

// TestConcurrentStructuralChanges mixes catalog add/remove with per-book
// operations on an unrelated ISBN.
func TestConcurrentStructuralChanges(t *testing.T) {
	const rounds = 100

	c := New(nil)
	err := c.AddBooks([]bookstore.StockBook{{
		Book:   bookstore.Book{ISBN: 1, Title: "T", Author: "A", Price: 1},
		Copies: rounds,
	}})
	if err != nil {
		t.Fatalf("AddBooks failed: %v", err)
	}

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		book := bookstore.StockBook{
			Book:   bookstore.Book{ISBN: 2, Title: "T", Author: "A", Price: 1},
			Copies: 1,
		}
		for i := 0; i < rounds; i++ {
			if err := c.AddBooks([]bookstore.StockBook{book}); err != nil {
				t.Errorf("AddBooks failed: %v", err)
				return
			}
			if err := c.RemoveBooks([]int{2}); err != nil {
				t.Errorf("RemoveBooks failed: %v", err)
				return
			}
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < rounds; i++ {
			if err := c.BuyBooks([]bookstore.BookCopy{{ISBN: 1, Copies: 1}}); err != nil {
				t.Errorf("BuyBooks failed: %v", err)
				return
			}
		}
	}()

	wg.Wait()

	books, err := c.GetBooksByISBN([]int{1})
	if err != nil {
		t.Fatalf("GetBooksByISBN failed: %v", err)
	}
	if got := books[0].Copies; got != 0 {
		t.Errorf("expected 0 copies, got %d", got)
	}
	if _, err := c.GetBooksByISBN([]int{2}); bookstore.CodeOf(err) != bookstore.RetCUnknownISBN {
		t.Error("book 2 must be gone after the final removal")
	}
}
