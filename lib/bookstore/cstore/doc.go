// Package cstore provides the concurrent in-process implementation of the
// bookstore catalog (bookstore.ICatalog).
//
// Locking Protocol:
//
// The store uses two explicit lock levels. The top level is one structural
// RWMutex guarding the catalog's shape: its key set and the existence of
// per-ISBN locks. The bottom level is one reader/writer lock per ISBN
// (lib/lockmgr) guarding that book's mutable fields. Every operation follows
// the same sequence:
//
//  1. Acquire the structural lock — write mode for operations that add or
//     remove ISBNs (AddBooks, RemoveBooks, RemoveAllBooks), read mode for
//     everything else.
//  2. Acquire the per-ISBN lock of every batch target — write mode for
//     mutations, read mode for queries. Acquisition order inside one batch
//     is irrelevant: the structural lock already prevents any concurrent
//     call from removing an ISBN that is being locked.
//  3. Validate every target, then (only if the whole batch validates) mutate
//     every target.
//  4. Release the per-ISBN locks, then the structural lock, in deferred
//     cleanup that runs on every exit path. Releases are best-effort: after
//     a failed acquisition the cleanup still covers the whole batch, and the
//     registry downgrades releases of unheld locks to logged warnings.
//
// This gives each batch operation all-or-nothing semantics without an undo
// log, lets operations on disjoint ISBN sets run fully in parallel, and
// serializes shape changes against everything else. Lock acquisition has no
// timeout; callers needing bounded waits must layer one externally.
//
// The one deliberate exception to all-or-nothing is BuyBooks: when a batch is
// rejected for insufficient stock, each unsatisfiable line's shortfall
// (requested minus available) is recorded as a sale miss before the batch
// fails. Satisfiable lines of the failed batch are not purchased.
//
// Batches are sets: an ISBN may appear at most once per call, because the
// per-ISBN locks are not reentrant. Duplicates are rejected as
// RetCInvalidArgument before any lock is taken.
//
// Queries return independent copies of the matching records; callers can
// neither observe nor cause catalog mutation through a query result.
package cstore
