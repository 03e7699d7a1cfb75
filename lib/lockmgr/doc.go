// Package lockmgr implements the per-ISBN lock registry of the bookstore
// catalog: one independent reader/writer lock per registered book.
//
// The registry is the bottom level of the catalog's two-level locking scheme.
// The top level is the catalog's structural reader/writer lock, which guards
// the key set of the catalog and of this registry; the bottom level is one
// lock per ISBN, which guards that book's mutable fields. Operations always
// acquire the structural lock first and release it last.
//
// Key properties:
//
//   - Lookups are backed by xsync.MapOf, so many goroutines holding the
//     structural read lock can acquire unrelated per-ISBN locks without
//     contending on the registry itself.
//   - Registration and removal of locks happen only under the structural
//     write lock, which fully serializes shape changes against all other
//     operations.
//   - Release is best-effort: releasing a lock that is not held logs a
//     warning instead of panicking. Batch operations release their whole
//     target set in cleanup paths, including ISBNs whose acquisition failed
//     earlier, and that must never turn a decided failure into a crash.
//   - Locks are not reentrant; a batch acquires each ISBN's lock at most
//     once.
package lockmgr
