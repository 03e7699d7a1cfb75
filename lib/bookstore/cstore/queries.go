package cstore

import (
	"sort"

	"github.com/UCPHszf/bookstore-assignment2/lib/bookstore"
	"github.com/UCPHszf/bookstore-assignment2/lib/lockmgr"
)

// --------------------------------------------------------------------------
// Read-Only Queries
// --------------------------------------------------------------------------

// All queries follow the same shape: structural read lock, per-ISBN read
// locks over the relevant key set, deep-copy the matching records, release.
// Query results never alias live catalog records.

func (s *storeImpl) ListBooks() ([]bookstore.StockBook, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	isbns := s.keySet()
	if err := s.acquireAll(isbns, lockmgr.LockModeRead); err != nil {
		return nil, err
	}
	defer s.releaseAll(isbns, lockmgr.LockModeRead)

	res := make([]bookstore.StockBook, 0, len(isbns))
	for _, isbn := range isbns {
		res = append(res, s.books[isbn].immutableStockBook())
	}
	return res, nil
}

func (s *storeImpl) GetBooksByISBN(isbns []int) ([]bookstore.StockBook, error) {
	if isbns == nil {
		return nil, bookstore.NewError(bookstore.RetCNullInput, "GetBooksByISBN called with nil batch")
	}
	if err := checkUnique(isbns); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.acquireAll(isbns, lockmgr.LockModeRead); err != nil {
		return nil, err
	}
	defer s.releaseAll(isbns, lockmgr.LockModeRead)

	res := make([]bookstore.StockBook, 0, len(isbns))
	for _, isbn := range isbns {
		res = append(res, s.books[isbn].immutableStockBook())
	}
	return res, nil
}

func (s *storeImpl) GetBooks(isbns []int) ([]bookstore.Book, error) {
	if isbns == nil {
		return nil, bookstore.NewError(bookstore.RetCNullInput, "GetBooks called with nil batch")
	}
	if err := checkUnique(isbns); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.acquireAll(isbns, lockmgr.LockModeRead); err != nil {
		return nil, err
	}
	defer s.releaseAll(isbns, lockmgr.LockModeRead)

	res := make([]bookstore.Book, 0, len(isbns))
	for _, isbn := range isbns {
		res = append(res, s.books[isbn].immutableBook())
	}
	return res, nil
}

func (s *storeImpl) GetBooksInDemand() ([]bookstore.StockBook, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	isbns := s.keySet()
	if err := s.acquireAll(isbns, lockmgr.LockModeRead); err != nil {
		return nil, err
	}
	defer s.releaseAll(isbns, lockmgr.LockModeRead)

	res := make([]bookstore.StockBook, 0)
	for _, isbn := range isbns {
		if target := s.books[isbn]; target.saleMisses > 0 {
			res = append(res, target.immutableStockBook())
		}
	}
	return res, nil
}

// GetTopRatedBooks returns up to n books ordered by descending average
// rating. Unrated books carry the -1 rating sentinel and therefore sort below
// every rated book: they only appear in the result when fewer than n rated
// books exist. Ties keep the key-set snapshot order of this call.
func (s *storeImpl) GetTopRatedBooks(n int) ([]bookstore.Book, error) {
	if n < 0 {
		return nil, bookstore.NewError(bookstore.RetCInvalidArgument, "number of books must not be negative, got %d", n)
	}

	snapshot, err := s.ListBooks()
	if err != nil {
		return nil, err
	}

	sort.SliceStable(snapshot, func(i, j int) bool {
		return snapshot[i].AverageRating() > snapshot[j].AverageRating()
	})
	if len(snapshot) > n {
		snapshot = snapshot[:n]
	}

	res := make([]bookstore.Book, 0, len(snapshot))
	for _, sb := range snapshot {
		res = append(res, sb.Book)
	}
	return res, nil
}

// GetEditorPicks returns up to n distinct random editor picks. The flagged
// set is captured under the usual two-level read locks, but the sampling
// itself runs after every lock has been released: drawing random indices
// never extends the time the catalog is locked.
func (s *storeImpl) GetEditorPicks(n int) ([]bookstore.Book, error) {
	if n < 0 {
		return nil, bookstore.NewError(bookstore.RetCInvalidArgument, "number of books must not be negative, got %d", n)
	}

	flagged, err := s.snapshotEditorPicks()
	if err != nil {
		return nil, err
	}

	if len(flagged) <= n {
		return flagged, nil
	}

	// Draw n distinct indices without replacement.
	s.randMu.Lock()
	defer s.randMu.Unlock()

	chosen := make(map[int]struct{}, n)
	res := make([]bookstore.Book, 0, n)
	for len(res) < n {
		idx := s.rand.Intn(len(flagged))
		if _, dup := chosen[idx]; dup {
			continue
		}
		chosen[idx] = struct{}{}
		res = append(res, flagged[idx])
	}
	return res, nil
}

// snapshotEditorPicks copies all currently flagged books and releases every
// lock before returning.
func (s *storeImpl) snapshotEditorPicks() ([]bookstore.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	isbns := s.keySet()
	if err := s.acquireAll(isbns, lockmgr.LockModeRead); err != nil {
		return nil, err
	}
	defer s.releaseAll(isbns, lockmgr.LockModeRead)

	flagged := make([]bookstore.Book, 0)
	for _, isbn := range isbns {
		if target := s.books[isbn]; target.editorPick {
			flagged = append(flagged, target.immutableBook())
		}
	}
	return flagged, nil
}
