package server

import (
	"github.com/UCPHszf/bookstore-assignment2/lib/bookstore"
	"github.com/UCPHszf/bookstore-assignment2/rpc/common"
)

// Service IDs used to route requests to the right adapter. Clients address
// a service by sending its ID in the frame header or URL path.
const (
	// ServiceIDShop addresses the customer-facing bookstore operations
	ServiceIDShop uint64 = 100
	// ServiceIDStock addresses the stock-manager operations
	ServiceIDStock uint64 = 200
)

// IRPCServerAdapter is the interface for all RPC server adapters
// It is responsible for handling requests and responses
type IRPCServerAdapter interface {
	// Handle handles a request and returns a response
	// It takes a Message and a catalog as parameters.
	// It returns a Message as a response
	// If an error occurs, it should be set in the response
	Handle(req *common.Message, catalog bookstore.ICatalog) (resp *common.Message)
}
