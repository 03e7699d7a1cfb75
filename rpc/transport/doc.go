// Package transport defines the interfaces for the RPC transport layer of
// the bookstore system. Concrete implementations live in the sub-packages:
//
//   - base: shared stream-transport machinery (framing, pooling, retries)
//   - tcp: TCP sockets for remote communication
//   - unix: Unix domain sockets for local IPC
//   - http: HTTP for easy integration and debugging
//
// A server transport accepts serialized request payloads and routes them to
// a registered handler together with the target service ID. A client
// transport sends payloads to a service ID and returns the server's
// response. Serialization is out of scope here, both sides only ever see
// opaque byte slices.
package transport
