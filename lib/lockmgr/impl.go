package lockmgr

import (
	"sync"
	"sync/atomic"

	"github.com/UCPHszf/bookstore-assignment2/lib/bookstore"
	"github.com/puzpuzpuz/xsync/v3"
	"go.uber.org/zap"
)

// itemLock wraps a sync.RWMutex with explicit hold-state bookkeeping.
//
// Go's RWMutex panics when unlocked without being locked; the registry must
// instead treat such a release as a recoverable warning (it only happens in
// best-effort cleanup after an earlier failure). The writer flag and reader
// counter track whether an unlock is actually owed, so Release can refuse
// safely instead of panicking.
type itemLock struct {
	mu      sync.RWMutex
	readers atomic.Int32
	writer  atomic.Bool
}

func (l *itemLock) lock(mode LockMode) {
	if mode == LockModeWrite {
		l.mu.Lock()
		l.writer.Store(true)
		return
	}
	l.mu.RLock()
	l.readers.Add(1)
}

// unlock returns false if the lock is not currently held in the given mode.
func (l *itemLock) unlock(mode LockMode) bool {
	if mode == LockModeWrite {
		if !l.writer.CompareAndSwap(true, false) {
			return false
		}
		l.mu.Unlock()
		return true
	}
	for {
		n := l.readers.Load()
		if n <= 0 {
			return false
		}
		if l.readers.CompareAndSwap(n, n-1) {
			l.mu.RUnlock()
			return true
		}
	}
}

// --------------------------------------------------------------------------
// Registry Implementation
// --------------------------------------------------------------------------

type registryImpl struct {
	locks  *xsync.MapOf[int, *itemLock]
	logger *zap.Logger
}

// NewLockRegistry creates a new per-ISBN lock registry.
//
// The registry is backed by a concurrency-safe map so that lock lookups by
// concurrent readers of the catalog never serialize on a single mutex; only
// the catalog's structural write lock serializes shape changes.
//
// A nil logger disables the release warnings.
func NewLockRegistry(logger *zap.Logger) ILockRegistry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &registryImpl{
		locks:  xsync.NewMapOf[int, *itemLock](),
		logger: logger,
	}
}

// --------------------------------------------------------------------------
// Interface Methods (docu see interface.go)
// --------------------------------------------------------------------------

func (r *registryImpl) Register(isbn int) {
	r.locks.LoadOrStore(isbn, &itemLock{})
}

func (r *registryImpl) Unregister(isbn int) {
	r.locks.Delete(isbn)
}

func (r *registryImpl) Clear() {
	r.locks.Clear()
}

func (r *registryImpl) Acquire(isbn int, mode LockMode) error {
	lock, ok := r.locks.Load(isbn)
	if !ok {
		return bookstore.NewError(bookstore.RetCUnknownISBN, "no lock registered for ISBN %d", isbn)
	}
	lock.lock(mode)
	return nil
}

func (r *registryImpl) Release(isbn int, mode LockMode) bool {
	lock, ok := r.locks.Load(isbn)
	if !ok {
		r.logger.Warn("attempted to release a lock that is not registered",
			zap.Int("isbn", isbn),
			zap.Stringer("mode", mode),
		)
		return false
	}
	if !lock.unlock(mode) {
		r.logger.Warn("attempted to release a lock that is not held",
			zap.Int("isbn", isbn),
			zap.Stringer("mode", mode),
		)
		return false
	}
	return true
}

func (r *registryImpl) Len() int {
	return r.locks.Size()
}
