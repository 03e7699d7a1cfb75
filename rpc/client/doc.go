// Package client implements RPC clients for the bookstore system.
// It provides implementations of the bookstore.IBookStore and
// bookstore.IStockManager interfaces that communicate with a remote catalog
// server via RPC.
//
// The package focuses on:
//   - Transparent RPC access to the catalog
//   - Integration with the transport and serialization layers
//   - Rebuilding typed catalog errors from RPC error responses
//
// Key Components:
//
//   - NewRPCBookStore: Factory function that creates a client implementing
//     the bookstore.IBookStore interface. This client forwards all customer
//     operations to a remote server via the configured transport layer.
//
//   - NewRPCStockManager: Factory function that creates a client
//     implementing the bookstore.IStockManager interface for inventory
//     operations.
//
// Usage Example:
//
//	// Configure the client
//	config := common.ClientConfig{
//	  Endpoints:              []string{"localhost:5000"},
//	  TimeoutSecond:          5,
//	  RetryCount:             3,
//	  ConnectionsPerEndpoint: 1,
//	}
//
//	// Create a serializer
//	serializer := serializer.NewBinarySerializer()
//
//	// Create a stock-manager client and add a book
//	stock, _ := client.NewRPCStockManager(server.ServiceIDStock, config, tcp.NewTCPClientTransport(), serializer)
//	stock.AddBooks([]bookstore.StockBook{{
//	  Book:   bookstore.Book{ISBN: 111, Title: "Title", Author: "Author", Price: 9.99},
//	  Copies: 5,
//	}})
//
//	// Create a shop client and buy it
//	shop, _ := client.NewRPCBookStore(server.ServiceIDShop, config, tcp.NewTCPClientTransport(), serializer)
//	shop.BuyBooks([]bookstore.BookCopy{{ISBN: 111, Copies: 1}})
//
// Error Handling:
//
//	Catalog errors cross the wire with their numeric error code and are
//	rebuilt as typed errors on the client side, so bookstore.CodeOf works
//	the same for remote and in-process catalogs.
//
// Performance Considerations:
//
//   - For applications that frequently send large payloads, increasing
//     ConnectionsPerEndpoint can improve throughput by allowing parallel
//     requests.
//
//   - For small messages, a single connection per endpoint is often more
//     efficient due to reduced connection overhead.
//
//   - The choice of serializer significantly affects performance. The binary
//     serializer provides the best performance and smallest payload size.
//
// Thread Safety:
//
//	All client implementations are thread-safe and can be used concurrently
//	from multiple goroutines without additional synchronization.
package client
