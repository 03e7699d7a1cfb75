package cstore

import (
	"math/rand"
	"sync"
	"time"

	"github.com/UCPHszf/bookstore-assignment2/lib/bookstore"
	"github.com/UCPHszf/bookstore-assignment2/lib/lockmgr"
	"go.uber.org/zap"
)

// --------------------------------------------------------------------------
// Options and Construction
// --------------------------------------------------------------------------

// Options configures the store during initialization.
type Options struct {
	// Logger receives the best-effort-release warnings of the lock registry.
	// Nil disables them.
	Logger *zap.Logger
	// Rand is the randomness source for editor-pick sampling. Nil means a
	// time-seeded source.
	Rand *rand.Rand
	// ValidISBN and ValidBook replace the default field validators. Nil means
	// the defaults from the bookstore package.
	ValidISBN bookstore.ISBNValidator
	ValidBook bookstore.BookValidator
}

// storeImpl implements bookstore.ICatalog with two-level locking: a single
// structural RWMutex guarding the key set, plus one reader/writer lock per
// ISBN guarding that book's fields. bookMap and the lock registry are kept in
// lock-step: an ISBN is present in one iff it is present in the other, and
// both only change under the structural write lock.
type storeImpl struct {
	mu    sync.RWMutex
	books map[int]*book
	locks lockmgr.ILockRegistry

	randMu sync.Mutex
	rand   *rand.Rand

	validISBN bookstore.ISBNValidator
	validBook bookstore.BookValidator
}

// New creates a new in-process catalog store.
//
// Thread-safety: the returned store may be used by any number of goroutines
// concurrently. The constructor itself is not thread-safe and should only be
// called once during initialization.
func New(opts *Options) bookstore.ICatalog {
	if opts == nil {
		opts = &Options{}
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	validISBN := opts.ValidISBN
	if validISBN == nil {
		validISBN = bookstore.DefaultISBNValidator
	}
	validBook := opts.ValidBook
	if validBook == nil {
		validBook = bookstore.DefaultBookValidator
	}
	return &storeImpl{
		books:     make(map[int]*book),
		locks:     lockmgr.NewLockRegistry(opts.Logger),
		rand:      rng,
		validISBN: validISBN,
		validBook: validBook,
	}
}

// --------------------------------------------------------------------------
// Batch Lock Helpers
// --------------------------------------------------------------------------

// acquireAll acquires every ISBN's lock in order. On the first failure it
// releases the locks acquired so far and returns the error, so the caller
// never has to release a lock it does not hold (another goroutine may hold
// the remaining locks of the batch).
func (s *storeImpl) acquireAll(isbns []int, mode lockmgr.LockMode) error {
	for i, isbn := range isbns {
		if err := s.locks.Acquire(isbn, mode); err != nil {
			s.releaseAll(isbns[:i], mode)
			return err
		}
	}
	return nil
}

// releaseAll releases the per-ISBN locks of a batch, best-effort.
func (s *storeImpl) releaseAll(isbns []int, mode lockmgr.LockMode) {
	for _, isbn := range isbns {
		s.locks.Release(isbn, mode)
	}
}

// keySet snapshots the current key set. The slice fixes one iteration order
// for the duration of a call. Callers must hold the structural lock.
func (s *storeImpl) keySet() []int {
	isbns := make([]int, 0, len(s.books))
	for isbn := range s.books {
		isbns = append(isbns, isbn)
	}
	return isbns
}

// checkUnique rejects batches that target the same ISBN twice. Batches are
// sets; a duplicate would require reentrant per-ISBN locks, which the
// registry does not provide.
func checkUnique(isbns []int) error {
	seen := make(map[int]struct{}, len(isbns))
	for _, isbn := range isbns {
		if _, dup := seen[isbn]; dup {
			return bookstore.NewError(bookstore.RetCInvalidArgument, "ISBN %d appears more than once in the batch", isbn)
		}
		seen[isbn] = struct{}{}
	}
	return nil
}

func isbnsOfCopies(copies []bookstore.BookCopy) ([]int, error) {
	isbns := make([]int, len(copies))
	for i, c := range copies {
		isbns[i] = c.ISBN
	}
	return isbns, checkUnique(isbns)
}

func isbnsOfRatings(ratings []bookstore.BookRating) ([]int, error) {
	isbns := make([]int, len(ratings))
	for i, r := range ratings {
		isbns[i] = r.ISBN
	}
	return isbns, checkUnique(isbns)
}

func isbnsOfPicks(picks []bookstore.EditorPick) ([]int, error) {
	isbns := make([]int, len(picks))
	for i, p := range picks {
		isbns[i] = p.ISBN
	}
	return isbns, checkUnique(isbns)
}

// --------------------------------------------------------------------------
// IStockManager Methods - Structural Writes
// --------------------------------------------------------------------------

func (s *storeImpl) AddBooks(books []bookstore.StockBook) error {
	if books == nil {
		return bookstore.NewError(bookstore.RetCNullInput, "AddBooks called with nil batch")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Validate the whole batch before inserting anything.
	seen := make(map[int]struct{}, len(books))
	for _, candidate := range books {
		if !s.validISBN(candidate.ISBN) {
			return bookstore.NewError(bookstore.RetCInvalidArgument, "invalid ISBN %d", candidate.ISBN)
		}
		if err := s.validBook(candidate); err != nil {
			return err
		}
		if _, ok := s.books[candidate.ISBN]; ok {
			return bookstore.NewError(bookstore.RetCDuplicateISBN, "ISBN %d is already in the catalog", candidate.ISBN)
		}
		if _, dup := seen[candidate.ISBN]; dup {
			return bookstore.NewError(bookstore.RetCDuplicateISBN, "ISBN %d appears more than once in the batch", candidate.ISBN)
		}
		seen[candidate.ISBN] = struct{}{}
	}

	for _, candidate := range books {
		s.books[candidate.ISBN] = newBook(candidate)
		s.locks.Register(candidate.ISBN)
	}
	return nil
}

func (s *storeImpl) RemoveBooks(isbns []int) error {
	if isbns == nil {
		return bookstore.NewError(bookstore.RetCNullInput, "RemoveBooks called with nil batch")
	}
	if err := checkUnique(isbns); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, isbn := range isbns {
		if !s.validISBN(isbn) {
			return bookstore.NewError(bookstore.RetCInvalidArgument, "invalid ISBN %d", isbn)
		}
		if _, ok := s.books[isbn]; !ok {
			return bookstore.NewError(bookstore.RetCUnknownISBN, "ISBN %d is not in the catalog", isbn)
		}
	}

	for _, isbn := range isbns {
		delete(s.books, isbn)
		s.locks.Unregister(isbn)
	}
	return nil
}

func (s *storeImpl) RemoveAllBooks() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.books = make(map[int]*book)
	s.locks.Clear()
	return nil
}

// --------------------------------------------------------------------------
// IStockManager Methods - Per-Item Mutations
// --------------------------------------------------------------------------

func (s *storeImpl) AddCopies(copies []bookstore.BookCopy) error {
	if copies == nil {
		return bookstore.NewError(bookstore.RetCNullInput, "AddCopies called with nil batch")
	}
	isbns, err := isbnsOfCopies(copies)
	if err != nil {
		return err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.acquireAll(isbns, lockmgr.LockModeWrite); err != nil {
		return err
	}
	defer s.releaseAll(isbns, lockmgr.LockModeWrite)

	for _, c := range copies {
		if c.Copies < 1 {
			return bookstore.NewError(bookstore.RetCInvalidArgument, "cannot add %d copies of ISBN %d", c.Copies, c.ISBN)
		}
	}

	for _, c := range copies {
		s.books[c.ISBN].addCopies(c.Copies)
	}
	return nil
}

func (s *storeImpl) UpdateEditorPicks(picks []bookstore.EditorPick) error {
	if picks == nil {
		return bookstore.NewError(bookstore.RetCNullInput, "UpdateEditorPicks called with nil batch")
	}
	isbns, err := isbnsOfPicks(picks)
	if err != nil {
		return err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.acquireAll(isbns, lockmgr.LockModeWrite); err != nil {
		return err
	}
	defer s.releaseAll(isbns, lockmgr.LockModeWrite)

	for _, p := range picks {
		s.books[p.ISBN].setEditorPick(p.Pick)
	}
	return nil
}

// --------------------------------------------------------------------------
// IBookStore Methods - Per-Item Mutations
// --------------------------------------------------------------------------

func (s *storeImpl) BuyBooks(orders []bookstore.BookCopy) error {
	if orders == nil {
		return bookstore.NewError(bookstore.RetCNullInput, "BuyBooks called with nil batch")
	}
	isbns, err := isbnsOfCopies(orders)
	if err != nil {
		return err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.acquireAll(isbns, lockmgr.LockModeWrite); err != nil {
		return err
	}
	defer s.releaseAll(isbns, lockmgr.LockModeWrite)

	for _, o := range orders {
		if o.Copies < 1 {
			return bookstore.NewError(bookstore.RetCInvalidArgument, "cannot buy %d copies of ISBN %d", o.Copies, o.ISBN)
		}
	}

	// Check the whole batch for stock before committing anything.
	misses := make(map[int]int)
	for _, o := range orders {
		target := s.books[o.ISBN]
		if !target.hasCopies(o.Copies) {
			misses[o.ISBN] = o.Copies - target.copies
		}
	}

	// The misses are recorded even though the purchase does not commit: unmet
	// demand is a signal independent of whether the sale succeeded.
	if len(misses) > 0 {
		for isbn, n := range misses {
			s.books[isbn].addSaleMiss(n)
		}
		return bookstore.NewError(bookstore.RetCInsufficientStock, "%d order line(s) exceed the available stock", len(misses))
	}

	for _, o := range orders {
		s.books[o.ISBN].buyCopies(o.Copies)
	}
	return nil
}

func (s *storeImpl) RateBooks(ratings []bookstore.BookRating) error {
	if ratings == nil {
		return bookstore.NewError(bookstore.RetCNullInput, "RateBooks called with nil batch")
	}
	isbns, err := isbnsOfRatings(ratings)
	if err != nil {
		return err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.acquireAll(isbns, lockmgr.LockModeWrite); err != nil {
		return err
	}
	defer s.releaseAll(isbns, lockmgr.LockModeWrite)

	for _, r := range ratings {
		if r.Rating < 0 || r.Rating > 5 {
			return bookstore.NewError(bookstore.RetCInvalidArgument, "rating %d for ISBN %d is outside [0, 5]", r.Rating, r.ISBN)
		}
	}

	for _, r := range ratings {
		s.books[r.ISBN].addRating(r.Rating)
	}
	return nil
}
