package common

import (
	"encoding/json"
	"fmt"

	"github.com/UCPHszf/bookstore-assignment2/lib/bookstore"
)

// --------------------------------------------------------------------------
// Message Structure
// --------------------------------------------------------------------------

// Message represents a single message used for both requests and responses.
// Which fields are used depends on the type of message.
type Message struct {
	// Type of message
	MsgType MessageType `json:"msg_type"`

	// General fields. Slice fields carry no omitempty: a present-but-empty
	// batch must stay distinguishable from an absent one on the wire.
	Books   []bookstore.StockBook  `json:"books"`           // Used for: AddBooks (request), stock query responses
	Items   []bookstore.BookCopy   `json:"items"`           // Used for: AddCopies, BuyBooks requests
	Ratings []bookstore.BookRating `json:"ratings"`         // Used for: RateBooks requests
	Picks   []bookstore.EditorPick `json:"picks"`           // Used for: UpdateEditorPicks requests
	ISBNs   []int                  `json:"isbns"`           // Used for: GetBooksByISBN, GetBooks, RemoveBooks requests
	Count   int                    `json:"count,omitempty"` // Used for: GetTopRated, GetEditorPicks requests

	// Response only fields
	ShopBooks []bookstore.Book `json:"shop_books"`         // Used for: shop query responses
	ErrCode   uint8            `json:"err_code,omitempty"` // Error code, zero if no error
	Err       string           `json:"err,omitempty"`      // Empty if no error, otherwise contains the error message

	// Meta information
	Meta []byte `json:"meta"` // Unused, can be used for additional Adapters
}

// setErr records an error on a response message. The code survives the wire
// so the client can rebuild a typed error.
func (m *Message) setErr(err error) {
	if err != nil {
		m.ErrCode = uint8(bookstore.CodeOf(err))
		m.Err = err.Error()
	}
}

// Error rebuilds the typed error carried by a response message, or nil if
// the message carries none.
func (m *Message) Error() error {
	if m.Err == "" && m.ErrCode == 0 {
		return nil
	}
	return bookstore.NewError(bookstore.RetCode(m.ErrCode), "%s", m.Err)
}

// --------------------------------------------------------------------------
// Message Factory Functions
// --------------------------------------------------------------------------

// NewAddBooksRequest creates a new AddBooks request
func NewAddBooksRequest(books []bookstore.StockBook) *Message {
	return &Message{
		MsgType: MsgTStockAdd,
		Books:   books,
	}
}

// NewAddBooksResponse creates a new AddBooks response
func NewAddBooksResponse(err error) *Message {
	msg := &Message{
		MsgType: MsgTStockAdd,
	}
	msg.setErr(err)
	return msg
}

// NewAddCopiesRequest creates a new AddCopies request
func NewAddCopiesRequest(items []bookstore.BookCopy) *Message {
	return &Message{
		MsgType: MsgTStockAddCopies,
		Items:   items,
	}
}

// NewAddCopiesResponse creates a new AddCopies response
func NewAddCopiesResponse(err error) *Message {
	msg := &Message{
		MsgType: MsgTStockAddCopies,
	}
	msg.setErr(err)
	return msg
}

// NewListBooksRequest creates a new ListBooks request
func NewListBooksRequest() *Message {
	return &Message{
		MsgType: MsgTStockList,
	}
}

// NewListBooksResponse creates a new ListBooks response
func NewListBooksResponse(books []bookstore.StockBook, err error) *Message {
	msg := &Message{
		MsgType: MsgTStockList,
		Books:   books,
	}
	msg.setErr(err)
	return msg
}

// NewGetBooksByISBNRequest creates a new GetBooksByISBN request
func NewGetBooksByISBNRequest(isbns []int) *Message {
	return &Message{
		MsgType: MsgTStockGetByISBN,
		ISBNs:   isbns,
	}
}

// NewGetBooksByISBNResponse creates a new GetBooksByISBN response
func NewGetBooksByISBNResponse(books []bookstore.StockBook, err error) *Message {
	msg := &Message{
		MsgType: MsgTStockGetByISBN,
		Books:   books,
	}
	msg.setErr(err)
	return msg
}

// NewBooksInDemandRequest creates a new GetBooksInDemand request
func NewBooksInDemandRequest() *Message {
	return &Message{
		MsgType: MsgTStockInDemand,
	}
}

// NewBooksInDemandResponse creates a new GetBooksInDemand response
func NewBooksInDemandResponse(books []bookstore.StockBook, err error) *Message {
	msg := &Message{
		MsgType: MsgTStockInDemand,
		Books:   books,
	}
	msg.setErr(err)
	return msg
}

// NewUpdatePicksRequest creates a new UpdateEditorPicks request
func NewUpdatePicksRequest(picks []bookstore.EditorPick) *Message {
	return &Message{
		MsgType: MsgTStockUpdatePicks,
		Picks:   picks,
	}
}

// NewUpdatePicksResponse creates a new UpdateEditorPicks response
func NewUpdatePicksResponse(err error) *Message {
	msg := &Message{
		MsgType: MsgTStockUpdatePicks,
	}
	msg.setErr(err)
	return msg
}

// NewRemoveBooksRequest creates a new RemoveBooks request
func NewRemoveBooksRequest(isbns []int) *Message {
	return &Message{
		MsgType: MsgTStockRemove,
		ISBNs:   isbns,
	}
}

// NewRemoveBooksResponse creates a new RemoveBooks response
func NewRemoveBooksResponse(err error) *Message {
	msg := &Message{
		MsgType: MsgTStockRemove,
	}
	msg.setErr(err)
	return msg
}

// NewRemoveAllBooksRequest creates a new RemoveAllBooks request
func NewRemoveAllBooksRequest() *Message {
	return &Message{
		MsgType: MsgTStockRemoveAll,
	}
}

// NewRemoveAllBooksResponse creates a new RemoveAllBooks response
func NewRemoveAllBooksResponse(err error) *Message {
	msg := &Message{
		MsgType: MsgTStockRemoveAll,
	}
	msg.setErr(err)
	return msg
}

// NewBuyBooksRequest creates a new BuyBooks request
func NewBuyBooksRequest(items []bookstore.BookCopy) *Message {
	return &Message{
		MsgType: MsgTShopBuy,
		Items:   items,
	}
}

// NewBuyBooksResponse creates a new BuyBooks response
func NewBuyBooksResponse(err error) *Message {
	msg := &Message{
		MsgType: MsgTShopBuy,
	}
	msg.setErr(err)
	return msg
}

// NewGetBooksRequest creates a new GetBooks request
func NewGetBooksRequest(isbns []int) *Message {
	return &Message{
		MsgType: MsgTShopGet,
		ISBNs:   isbns,
	}
}

// NewGetBooksResponse creates a new GetBooks response
func NewGetBooksResponse(books []bookstore.Book, err error) *Message {
	msg := &Message{
		MsgType:   MsgTShopGet,
		ShopBooks: books,
	}
	msg.setErr(err)
	return msg
}

// NewRateBooksRequest creates a new RateBooks request
func NewRateBooksRequest(ratings []bookstore.BookRating) *Message {
	return &Message{
		MsgType: MsgTShopRate,
		Ratings: ratings,
	}
}

// NewRateBooksResponse creates a new RateBooks response
func NewRateBooksResponse(err error) *Message {
	msg := &Message{
		MsgType: MsgTShopRate,
	}
	msg.setErr(err)
	return msg
}

// NewTopRatedRequest creates a new GetTopRatedBooks request
func NewTopRatedRequest(count int) *Message {
	return &Message{
		MsgType: MsgTShopTopRated,
		Count:   count,
	}
}

// NewTopRatedResponse creates a new GetTopRatedBooks response
func NewTopRatedResponse(books []bookstore.Book, err error) *Message {
	msg := &Message{
		MsgType:   MsgTShopTopRated,
		ShopBooks: books,
	}
	msg.setErr(err)
	return msg
}

// NewEditorPicksRequest creates a new GetEditorPicks request
func NewEditorPicksRequest(count int) *Message {
	return &Message{
		MsgType: MsgTShopEditorPicks,
		Count:   count,
	}
}

// NewEditorPicksResponse creates a new GetEditorPicks response
func NewEditorPicksResponse(books []bookstore.Book, err error) *Message {
	msg := &Message{
		MsgType:   MsgTShopEditorPicks,
		ShopBooks: books,
	}
	msg.setErr(err)
	return msg
}

// NewErrorResponse creates a new Error response
func NewErrorResponse(err string) *Message {
	return &Message{
		MsgType: MsgTError,
		ErrCode: uint8(bookstore.RetCInternalError),
		Err:     err,
	}
}

// --------------------------------------------------------------------------
// Message Type Definition
// --------------------------------------------------------------------------

// MessageType defines the type of message used in RPC communication.
type MessageType uint8

// String returns the string representation of a MessageType.
func (t MessageType) String() string {
	switch t {
	case MsgTStockAdd:
		return "addBooks"
	case MsgTStockAddCopies:
		return "addCopies"
	case MsgTStockList:
		return "listBooks"
	case MsgTStockGetByISBN:
		return "getBooksByISBN"
	case MsgTStockInDemand:
		return "booksInDemand"
	case MsgTStockUpdatePicks:
		return "updateEditorPicks"
	case MsgTStockRemove:
		return "removeBooks"
	case MsgTStockRemoveAll:
		return "removeAllBooks"
	case MsgTShopBuy:
		return "buyBooks"
	case MsgTShopGet:
		return "getBooks"
	case MsgTShopRate:
		return "rateBooks"
	case MsgTShopTopRated:
		return "topRatedBooks"
	case MsgTShopEditorPicks:
		return "editorPicks"
	case MsgTError:
		return "error"
	case MsgTSuccess:
		return "success"
	default:
		return "unknown"
	}
}

// MarshalJSON implements the json.Marshaller interface for MessageType.
// This allows MessageType to be serialized as a string in JSON.
func (t MessageType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON implements the json.Unmarshaler interface for MessageType.
// This allows MessageType to be deserialized from a string in JSON.
func (t *MessageType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	// Convert string back to MessageType
	switch s {
	case "addBooks":
		*t = MsgTStockAdd
	case "addCopies":
		*t = MsgTStockAddCopies
	case "listBooks":
		*t = MsgTStockList
	case "getBooksByISBN":
		*t = MsgTStockGetByISBN
	case "booksInDemand":
		*t = MsgTStockInDemand
	case "updateEditorPicks":
		*t = MsgTStockUpdatePicks
	case "removeBooks":
		*t = MsgTStockRemove
	case "removeAllBooks":
		*t = MsgTStockRemoveAll
	case "buyBooks":
		*t = MsgTShopBuy
	case "getBooks":
		*t = MsgTShopGet
	case "rateBooks":
		*t = MsgTShopRate
	case "topRatedBooks":
		*t = MsgTShopTopRated
	case "editorPicks":
		*t = MsgTShopEditorPicks
	case "error":
		*t = MsgTError
	case "success":
		*t = MsgTSuccess
	default:
		return fmt.Errorf("unknown message type: %s", s)
	}

	return nil
}

// --------------------------------------------------------------------------
// Message Type Constants
// --------------------------------------------------------------------------

const (
	// General message types

	MsgTUnknown MessageType = iota
	MsgTSuccess             // Indicates a successful operation
	MsgTError               // Indicates an error occurred

	// IStockManager operations

	MsgTStockAdd         // Add new titles to the catalog
	MsgTStockAddCopies   // Restock copies of existing titles
	MsgTStockList        // List the full catalog
	MsgTStockGetByISBN   // Look up stock records by ISBN
	MsgTStockInDemand    // List titles with recorded sale misses
	MsgTStockUpdatePicks // Flag or unflag editor picks
	MsgTStockRemove      // Remove titles from the catalog
	MsgTStockRemoveAll   // Clear the catalog

	// IBookStore operations

	MsgTShopBuy         // Purchase copies
	MsgTShopGet         // Look up customer views by ISBN
	MsgTShopRate        // Submit ratings
	MsgTShopTopRated    // Query the highest rated titles
	MsgTShopEditorPicks // Sample random editor picks
)
