package lockmgr

// LockMode selects how a per-ISBN lock is acquired.
type LockMode int

const (
	// LockModeRead acquires the lock shared: any number of readers may hold
	// it at once, but it excludes writers.
	LockModeRead LockMode = iota
	// LockModeWrite acquires the lock exclusive.
	LockModeWrite
)

func (m LockMode) String() string {
	switch m {
	case LockModeRead:
		return "read"
	case LockModeWrite:
		return "write"
	default:
		return "unknown"
	}
}

// ILockRegistry manages one reader/writer lock per registered ISBN.
//
// The registry only guards per-item state; the shape of the registry itself
// (which ISBNs have locks) must be protected externally: Register, Unregister
// and Clear may only be called while the caller holds the catalog's
// structural write lock. Acquire and Release may be called under the
// structural read lock by any number of goroutines concurrently.
//
// Locks are not reentrant. A caller must acquire each ISBN's lock at most
// once per operation.
type ILockRegistry interface {
	// Register creates the lock for a new ISBN. Registering an already
	// registered ISBN is a no-op.
	Register(isbn int)

	// Unregister removes the lock for an ISBN. The caller must ensure no
	// goroutine still holds or waits on the lock (the structural write lock
	// guarantees this).
	Unregister(isbn int)

	// Clear removes all locks.
	Clear()

	// Acquire blocks until the lock for isbn is available in the requested
	// mode. It fails with a RetCUnknownISBN error if no lock is registered
	// for isbn, i.e. the book was never added or has been removed.
	Acquire(isbn int, mode LockMode) error

	// Release releases the lock for isbn in the given mode. Releasing a lock
	// that is not registered or not held in that mode is recovered locally:
	// it logs a warning and returns false instead of panicking, since release
	// always runs in cleanup paths where the outcome is already decided.
	Release(isbn int, mode LockMode) bool

	// Len returns the number of registered locks.
	Len() int
}
