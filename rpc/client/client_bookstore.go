package client

import (
	"github.com/UCPHszf/bookstore-assignment2/lib/bookstore"
	"github.com/UCPHszf/bookstore-assignment2/rpc/common"
	"github.com/UCPHszf/bookstore-assignment2/rpc/serializer"
	"github.com/UCPHszf/bookstore-assignment2/rpc/transport"
)

// NewRPCBookStore creates a new RPC bookstore client
// The function takes a service ID, a config, a transport and a serializer as parameters
// It returns a bookstore.IBookStore and an error
func NewRPCBookStore(
	serviceId uint64,
	config common.ClientConfig,
	transport transport.IRPCClientTransport,
	serializer serializer.IRPCSerializer,
) (bookstore.IBookStore, error) {

	// Connect the transport
	err := transport.Connect(config)
	if err != nil {
		return nil, err
	}

	// Create a new RPC bookstore
	s := rpcBookStore{
		rpcClientAdapter{
			serviceId:  serviceId,
			config:     config,
			transport:  transport,
			serializer: serializer,
		},
	}

	// Return the RPC bookstore
	return &s, nil
}

type rpcBookStore struct {
	rpcClientAdapter
}

// --------------------------------------------------------------------------
// Interface Methods (docu see the bookstore package in interface.go)
// --------------------------------------------------------------------------

func (i *rpcBookStore) BuyBooks(items []bookstore.BookCopy) (err error) {
	req := common.NewBuyBooksRequest(items)
	_, err = invokeRPCRequest(i.serviceId, req, i.transport, i.serializer)
	return err
}

func (i *rpcBookStore) GetBooks(isbns []int) (books []bookstore.Book, err error) {
	req := common.NewGetBooksRequest(isbns)
	resp, err := invokeRPCRequest(i.serviceId, req, i.transport, i.serializer)
	if err != nil {
		return nil, err
	}
	return resp.ShopBooks, nil
}

func (i *rpcBookStore) GetTopRatedBooks(numBooks int) (books []bookstore.Book, err error) {
	req := common.NewTopRatedRequest(numBooks)
	resp, err := invokeRPCRequest(i.serviceId, req, i.transport, i.serializer)
	if err != nil {
		return nil, err
	}
	return resp.ShopBooks, nil
}

func (i *rpcBookStore) GetEditorPicks(numBooks int) (books []bookstore.Book, err error) {
	req := common.NewEditorPicksRequest(numBooks)
	resp, err := invokeRPCRequest(i.serviceId, req, i.transport, i.serializer)
	if err != nil {
		return nil, err
	}
	return resp.ShopBooks, nil
}

func (i *rpcBookStore) RateBooks(ratings []bookstore.BookRating) (err error) {
	req := common.NewRateBooksRequest(ratings)
	_, err = invokeRPCRequest(i.serviceId, req, i.transport, i.serializer)
	return err
}
