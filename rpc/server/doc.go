// Package server implements the RPC server for the bookstore system.
// It provides adapters for handling RPC requests to both the stock-manager
// and the customer-facing bookstore service, along with the core server
// implementation that manages services and request routing.
//
// The package focuses on:
//   - Server-side RPC request handling for stock and shop operations
//   - Adapter pattern to decouple catalog logic from RPC mechanisms
//   - A shared in-memory catalog exposed through two service IDs
//   - Per-operation request metrics (count, errors, duration)
//
// Key Components:
//
//   - IRPCServerAdapter: Interface defining the contract for all server
//     adapters, with the Handle method that processes incoming requests
//     against a bookstore.ICatalog.
//
//   - NewStockManagerServerAdapter: Factory function creating an adapter for
//     inventory operations (adding titles, restocking, removal, editor-pick
//     management, stock queries).
//
//   - NewBookStoreServerAdapter: Factory function creating an adapter for
//     customer operations (purchases, ratings, customer queries).
//
//   - NewRPCServer: Factory function creating a configured server with the
//     specified transport and serializer mechanisms.
//
// Usage Example:
//
//	// Create server configuration
//	config := common.ServerConfig{
//	  Endpoint: "0.0.0.0:8080",
//	  TimeoutSecond: 5,
//	  LogLevel: "info",
//	}
//
//	// Create and start the server
//	s := server.NewRPCServer(
//	  config,
//	  tcp.NewTCPServerTransport(),
//	  serializer.NewBinarySerializer(),
//	)
//
//	// Start the server
//	if err := s.Serve(); err != nil {
//	  log.Fatalf("Server error: %v", err)
//	}
//
// Both services address the same catalog instance, so books added through
// the stock-manager service are immediately visible to shop clients.
//
// Thread Safety:
//
//	The server implementation is thread-safe and can handle concurrent
//	requests across multiple connections. Each request is processed
//	independently. The Serve method is not thread-safe and should be called
//	only once.
package server
