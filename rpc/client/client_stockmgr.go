package client

import (
	"github.com/UCPHszf/bookstore-assignment2/lib/bookstore"
	"github.com/UCPHszf/bookstore-assignment2/rpc/common"
	"github.com/UCPHszf/bookstore-assignment2/rpc/serializer"
	"github.com/UCPHszf/bookstore-assignment2/rpc/transport"
)

// NewRPCStockManager creates a new RPC stock-manager client
// The function takes a service ID, a config, a transport and a serializer as parameters
// It returns a bookstore.IStockManager and an error
func NewRPCStockManager(
	serviceId uint64,
	config common.ClientConfig,
	transport transport.IRPCClientTransport,
	serializer serializer.IRPCSerializer,
) (bookstore.IStockManager, error) {

	// Connect the transport
	err := transport.Connect(config)
	if err != nil {
		return nil, err
	}

	// Create a new RPC stock manager
	s := rpcStockManager{
		rpcClientAdapter{
			serviceId:  serviceId,
			config:     config,
			transport:  transport,
			serializer: serializer,
		},
	}

	// Return the RPC stock manager
	return &s, nil
}

type rpcStockManager struct {
	rpcClientAdapter
}

// --------------------------------------------------------------------------
// Interface Methods (docu see the bookstore package in interface.go)
// --------------------------------------------------------------------------

func (i *rpcStockManager) AddBooks(books []bookstore.StockBook) (err error) {
	req := common.NewAddBooksRequest(books)
	_, err = invokeRPCRequest(i.serviceId, req, i.transport, i.serializer)
	return err
}

func (i *rpcStockManager) AddCopies(items []bookstore.BookCopy) (err error) {
	req := common.NewAddCopiesRequest(items)
	_, err = invokeRPCRequest(i.serviceId, req, i.transport, i.serializer)
	return err
}

func (i *rpcStockManager) ListBooks() (books []bookstore.StockBook, err error) {
	req := common.NewListBooksRequest()
	resp, err := invokeRPCRequest(i.serviceId, req, i.transport, i.serializer)
	if err != nil {
		return nil, err
	}
	return resp.Books, nil
}

func (i *rpcStockManager) GetBooksByISBN(isbns []int) (books []bookstore.StockBook, err error) {
	req := common.NewGetBooksByISBNRequest(isbns)
	resp, err := invokeRPCRequest(i.serviceId, req, i.transport, i.serializer)
	if err != nil {
		return nil, err
	}
	return resp.Books, nil
}

func (i *rpcStockManager) GetBooksInDemand() (books []bookstore.StockBook, err error) {
	req := common.NewBooksInDemandRequest()
	resp, err := invokeRPCRequest(i.serviceId, req, i.transport, i.serializer)
	if err != nil {
		return nil, err
	}
	return resp.Books, nil
}

func (i *rpcStockManager) UpdateEditorPicks(picks []bookstore.EditorPick) (err error) {
	req := common.NewUpdatePicksRequest(picks)
	_, err = invokeRPCRequest(i.serviceId, req, i.transport, i.serializer)
	return err
}

func (i *rpcStockManager) RemoveBooks(isbns []int) (err error) {
	req := common.NewRemoveBooksRequest(isbns)
	_, err = invokeRPCRequest(i.serviceId, req, i.transport, i.serializer)
	return err
}

func (i *rpcStockManager) RemoveAllBooks() (err error) {
	req := common.NewRemoveAllBooksRequest()
	_, err = invokeRPCRequest(i.serviceId, req, i.transport, i.serializer)
	return err
}
