package server

import (
	"fmt"

	"github.com/UCPHszf/bookstore-assignment2/lib/bookstore"
	"github.com/UCPHszf/bookstore-assignment2/rpc/common"
)

// NewBookStoreServerAdapter creates an adapter for the customer-facing
// operations of the catalog
func NewBookStoreServerAdapter() IRPCServerAdapter {
	return &bookStoreServerAdapterImpl{}
}

type bookStoreServerAdapterImpl struct{}

func (adapter *bookStoreServerAdapterImpl) Handle(req *common.Message, catalog bookstore.ICatalog) *common.Message {
	// Check for nil catalog
	if catalog == nil {
		return common.NewErrorResponse("handler: catalog is nil")
	}

	// Handle different message types
	switch req.MsgType {
	case common.MsgTShopBuy:
		err := catalog.BuyBooks(req.Items)
		return common.NewBuyBooksResponse(err)
	case common.MsgTShopGet:
		books, err := catalog.GetBooks(req.ISBNs)
		return common.NewGetBooksResponse(books, err)
	case common.MsgTShopRate:
		err := catalog.RateBooks(req.Ratings)
		return common.NewRateBooksResponse(err)
	case common.MsgTShopTopRated:
		books, err := catalog.GetTopRatedBooks(req.Count)
		return common.NewTopRatedResponse(books, err)
	case common.MsgTShopEditorPicks:
		books, err := catalog.GetEditorPicks(req.Count)
		return common.NewEditorPicksResponse(books, err)
	default:
		return common.NewErrorResponse(
			fmt.Sprintf("RPC BookStoreAdapter - Unsupported message type: %s", req.MsgType),
		)
	}
}
