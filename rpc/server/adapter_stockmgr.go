package server

import (
	"fmt"

	"github.com/UCPHszf/bookstore-assignment2/lib/bookstore"
	"github.com/UCPHszf/bookstore-assignment2/rpc/common"
)

// NewStockManagerServerAdapter creates an adapter for the stock-manager
// operations of the catalog
func NewStockManagerServerAdapter() IRPCServerAdapter {
	return &stockManagerServerAdapterImpl{}
}

type stockManagerServerAdapterImpl struct{}

func (adapter *stockManagerServerAdapterImpl) Handle(req *common.Message, catalog bookstore.ICatalog) *common.Message {
	// Check for nil catalog
	if catalog == nil {
		return common.NewErrorResponse("handler: catalog is nil")
	}

	// Handle different message types
	switch req.MsgType {
	case common.MsgTStockAdd:
		err := catalog.AddBooks(req.Books)
		return common.NewAddBooksResponse(err)
	case common.MsgTStockAddCopies:
		err := catalog.AddCopies(req.Items)
		return common.NewAddCopiesResponse(err)
	case common.MsgTStockList:
		books, err := catalog.ListBooks()
		return common.NewListBooksResponse(books, err)
	case common.MsgTStockGetByISBN:
		books, err := catalog.GetBooksByISBN(req.ISBNs)
		return common.NewGetBooksByISBNResponse(books, err)
	case common.MsgTStockInDemand:
		books, err := catalog.GetBooksInDemand()
		return common.NewBooksInDemandResponse(books, err)
	case common.MsgTStockUpdatePicks:
		err := catalog.UpdateEditorPicks(req.Picks)
		return common.NewUpdatePicksResponse(err)
	case common.MsgTStockRemove:
		err := catalog.RemoveBooks(req.ISBNs)
		return common.NewRemoveBooksResponse(err)
	case common.MsgTStockRemoveAll:
		err := catalog.RemoveAllBooks()
		return common.NewRemoveAllBooksResponse(err)
	default:
		return common.NewErrorResponse(
			fmt.Sprintf("RPC StockManagerAdapter - Unsupported message type: %s", req.MsgType),
		)
	}
}
