// Package bookstore defines the public surface of the in-memory bookstore
// catalog: the catalog types (Book, StockBook, BookCopy, BookRating,
// EditorPick), the two service interfaces (IBookStore for shop clients,
// IStockManager for stock management) and the shared error taxonomy.
//
// The package contains no implementation. The concurrent in-process
// implementation lives in the cstore sub-package
// (github.com/UCPHszf/bookstore-assignment2/lib/bookstore/cstore); remote
// implementations of the same interfaces are provided by the rpc/client
// package.
//
// Error Handling:
//
// All operations return either nil or an *Error carrying a RetCode. The
// taxonomy is fixed:
//
//   - RetCNullInput: the batch argument itself was absent (nil slice)
//   - RetCInvalidArgument: a field violates its domain constraint
//   - RetCUnknownISBN: an operation targets an ISBN not in the catalog
//   - RetCDuplicateISBN: an add targets an ISBN already present
//   - RetCInsufficientStock: a purchase batch has an unsatisfiable line
//
// CodeOf(err) recovers the code from wrapped errors, which lets callers
// branch on the taxonomy without string matching. The rpc layer transports
// the code alongside the message so remote callers see the same taxonomy.
//
// Batch Semantics:
//
// Every mutating operation takes a batch and is all-or-nothing: validation of
// the whole batch precedes any mutation, and a single invalid entry rejects
// the batch with no partial effects. The single deliberate exception is
// documented on IBookStore.BuyBooks: sale-miss accounting happens even when
// the purchase batch is rejected, because unmet demand is a signal
// independent of whether the sale succeeded.
package bookstore
