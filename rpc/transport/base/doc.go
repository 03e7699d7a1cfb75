// Package base provides the shared stream-transport implementation used by
// the tcp and unix transports of the bookstore RPC system. Protocol-specific
// behavior is injected through small connector interfaces, while this package
// implements the framing, connection management, and request routing that is
// common to all stream transports.
//
// The wire format is a simple length-prefixed frame: an 8 byte service ID,
// an 8 byte request ID, a 4 byte payload length, and the payload itself. The
// request ID lets a single connection multiplex many in-flight requests, with
// responses routed back to the waiting caller through a per-request channel.
//
// Key Components:
//
//   - IServerConnector / IClientConnector: Injection points for the
//     protocol-specific parts of a transport (creating listeners, dialing,
//     applying socket options).
//
//   - serverTransport: Accepts connections and processes frames with a
//     bounded per-connection worker pool. Read buffers are pooled to avoid
//     per-request allocations.
//
//   - clientTransport: Maintains a pool of connections per endpoint, selects
//     connections round-robin, and retries failed requests with exponential
//     backoff and jitter.
//
// Thread Safety:
//
//	Both transports are safe for concurrent use. Connection writes are
//	serialized with a per-connection mutex, and in-flight request state is
//	kept in a concurrent map.
package base
