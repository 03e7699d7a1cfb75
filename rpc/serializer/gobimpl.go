package serializer

import (
	"bytes"
	"encoding/gob"

	"github.com/UCPHszf/bookstore-assignment2/lib/bookstore"
	"github.com/UCPHszf/bookstore-assignment2/rpc/common"
)

// NewGOBSerializer creates a new serializer using Go's binary gob format
func NewGOBSerializer() IRPCSerializer {
	return &gobSerializerImpl{}
}

// gobSerializerImpl implements the IRPCSerializer interface using gob encoding
type gobSerializerImpl struct {
}

// gobMessage wraps a Message with an explicit presence word. Gob drops
// zero-length fields from the transmission, so an empty batch would
// otherwise arrive as nil and be indistinguishable from an absent one.
// The word uses the field flags of the binary codec.
type gobMessage struct {
	Msg     common.Message
	Present uint16
}

// --------------------------------------------------------------------------
// Interface Methods (docu see serializer.IRPCSerializer)
// --------------------------------------------------------------------------

func (g gobSerializerImpl) Serialize(msg common.Message) ([]byte, error) {
	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)
	if err := enc.Encode(gobMessage{Msg: msg, Present: presentFields(&msg)}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g gobSerializerImpl) Deserialize(b []byte, msg *common.Message) error {
	buf := bytes.NewBuffer(b)
	dec := gob.NewDecoder(buf)

	var env gobMessage
	if err := dec.Decode(&env); err != nil {
		return err
	}
	*msg = env.Msg
	restorePresent(msg, env.Present)
	return nil
}

// --------------------------------------------------------------------------
// Presence Handling
// --------------------------------------------------------------------------

// presentFields reports which slice fields of the message are non-nil.
func presentFields(msg *common.Message) uint16 {
	var p uint16
	if msg.Books != nil {
		p |= hasBooks
	}
	if msg.Items != nil {
		p |= hasItems
	}
	if msg.Ratings != nil {
		p |= hasRatings
	}
	if msg.Picks != nil {
		p |= hasPicks
	}
	if msg.ISBNs != nil {
		p |= hasISBNs
	}
	if msg.ShopBooks != nil {
		p |= hasShopBooks
	}
	if msg.Meta != nil {
		p |= hasMeta
	}
	return p
}

// restorePresent rebuilds the empty slices gob left out of the transmission.
func restorePresent(msg *common.Message, p uint16) {
	if p&hasBooks != 0 && msg.Books == nil {
		msg.Books = []bookstore.StockBook{}
	}
	if p&hasItems != 0 && msg.Items == nil {
		msg.Items = []bookstore.BookCopy{}
	}
	if p&hasRatings != 0 && msg.Ratings == nil {
		msg.Ratings = []bookstore.BookRating{}
	}
	if p&hasPicks != 0 && msg.Picks == nil {
		msg.Picks = []bookstore.EditorPick{}
	}
	if p&hasISBNs != 0 && msg.ISBNs == nil {
		msg.ISBNs = []int{}
	}
	if p&hasShopBooks != 0 && msg.ShopBooks == nil {
		msg.ShopBooks = []bookstore.Book{}
	}
	if p&hasMeta != 0 && msg.Meta == nil {
		msg.Meta = []byte{}
	}
}
