// Package rpc contains the remote-access layer of the bookstore system.
// It is organized into sub-packages:
//
//   - common: wire protocol, configuration, and logging helpers
//   - serializer: pluggable message encodings (binary, json, gob)
//   - transport: pluggable transports (tcp, unix, http)
//   - server: the catalog server exposing stock and shop services
//   - client: IStockManager and IBookStore implementations backed by RPC
//
// The layers are independent: any serializer works with any transport, and
// client and server only need to agree on both choices.
package rpc
