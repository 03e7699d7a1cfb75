package serializer

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/UCPHszf/bookstore-assignment2/lib/bookstore"
	"github.com/UCPHszf/bookstore-assignment2/rpc/common"
)

// NewBinarySerializer creates a new serializer using a custom binary format
// optimized for speed and efficiency
func NewBinarySerializer() IRPCSerializer {
	return &binarySerializerImpl{}
}

// binarySerializerImpl implements IRPCSerializer using a custom binary format
type binarySerializerImpl struct {
}

// Bit flags to indicate which optional fields are present
const (
	hasBooks     uint16 = 1 << 0
	hasItems     uint16 = 1 << 1
	hasRatings   uint16 = 1 << 2
	hasPicks     uint16 = 1 << 3
	hasISBNs     uint16 = 1 << 4
	hasCount     uint16 = 1 << 5
	hasShopBooks uint16 = 1 << 6
	hasErrCode   uint16 = 1 << 7
	hasErr       uint16 = 1 << 8
	hasMeta      uint16 = 1 << 9
)

// headerSize is 1 byte for MsgType + 2 bytes for the field flags
const headerSize = 3

// Minimum encoded sizes per element, used to cap claimed counts before
// allocating. A book with empty strings is isbn + two length prefixes +
// price, a stock book adds four counters and the pick flag.
const (
	minBookSize      = 8 + 4 + 4 + 4
	minStockBookSize = minBookSize + 4*8 + 1
)

// --------------------------------------------------------------------------
// Interface Methods (docu see serializer.IRPCSerializer)
// --------------------------------------------------------------------------

func (b binarySerializerImpl) Serialize(msg common.Message) ([]byte, error) {
	// Calculate total size needed
	totalSize := b.sizeBytes(msg)
	result := make([]byte, totalSize)

	// Write message type
	result[0] = byte(msg.MsgType)

	// Initialize flags
	var flags uint16 = 0

	// Set position for writing
	pos := headerSize // Start after MsgType and flags

	// Handle Books
	if msg.Books != nil {
		flags |= hasBooks
		binary.BigEndian.PutUint32(result[pos:pos+4], uint32(len(msg.Books)))
		pos += 4
		for i := range msg.Books {
			pos = writeStockBook(result, pos, &msg.Books[i])
		}
	}

	// Handle Items
	if msg.Items != nil {
		flags |= hasItems
		binary.BigEndian.PutUint32(result[pos:pos+4], uint32(len(msg.Items)))
		pos += 4
		for _, item := range msg.Items {
			pos = writeInt(result, pos, item.ISBN)
			pos = writeInt(result, pos, item.Copies)
		}
	}

	// Handle Ratings
	if msg.Ratings != nil {
		flags |= hasRatings
		binary.BigEndian.PutUint32(result[pos:pos+4], uint32(len(msg.Ratings)))
		pos += 4
		for _, r := range msg.Ratings {
			pos = writeInt(result, pos, r.ISBN)
			pos = writeInt(result, pos, r.Rating)
		}
	}

	// Handle Picks
	if msg.Picks != nil {
		flags |= hasPicks
		binary.BigEndian.PutUint32(result[pos:pos+4], uint32(len(msg.Picks)))
		pos += 4
		for _, p := range msg.Picks {
			pos = writeInt(result, pos, p.ISBN)
			pos = writeBool(result, pos, p.Pick)
		}
	}

	// Handle ISBNs
	if msg.ISBNs != nil {
		flags |= hasISBNs
		binary.BigEndian.PutUint32(result[pos:pos+4], uint32(len(msg.ISBNs)))
		pos += 4
		for _, isbn := range msg.ISBNs {
			pos = writeInt(result, pos, isbn)
		}
	}

	// Handle Count
	if msg.Count != 0 {
		flags |= hasCount
		pos = writeInt(result, pos, msg.Count)
	}

	// Handle ShopBooks
	if msg.ShopBooks != nil {
		flags |= hasShopBooks
		binary.BigEndian.PutUint32(result[pos:pos+4], uint32(len(msg.ShopBooks)))
		pos += 4
		for i := range msg.ShopBooks {
			pos = writeBook(result, pos, &msg.ShopBooks[i])
		}
	}

	// Handle ErrCode
	if msg.ErrCode != 0 {
		flags |= hasErrCode
		result[pos] = msg.ErrCode
		pos += 1
	}

	// Handle Err
	if msg.Err != "" {
		flags |= hasErr
		pos = writeString(result, pos, msg.Err)
	}

	// Handle Meta
	if msg.Meta != nil {
		flags |= hasMeta
		binary.BigEndian.PutUint32(result[pos:pos+4], uint32(len(msg.Meta)))
		pos += 4
		copy(result[pos:pos+len(msg.Meta)], msg.Meta)
		pos += len(msg.Meta)
	}

	// Set flags after knowing which fields are present
	binary.BigEndian.PutUint16(result[1:3], flags)

	return result, nil
}

func (b binarySerializerImpl) Deserialize(data []byte, msg *common.Message) error {
	// Check minimum size (MsgType + flags)
	if len(data) < headerSize {
		return fmt.Errorf("data too short for message header")
	}

	// Read message type and flags
	msg.MsgType = common.MessageType(data[0])
	flags := binary.BigEndian.Uint16(data[1:3])

	// Initialize read position
	r := &reader{data: data, pos: headerSize}

	// Read Books if present
	msg.Books = nil
	if flags&hasBooks != 0 {
		n, err := r.length("books", minStockBookSize)
		if err != nil {
			return err
		}
		msg.Books = make([]bookstore.StockBook, n)
		for i := range msg.Books {
			if err := r.stockBook(&msg.Books[i]); err != nil {
				return err
			}
		}
	}

	// Read Items if present
	msg.Items = nil
	if flags&hasItems != 0 {
		n, err := r.length("items", 16)
		if err != nil {
			return err
		}
		msg.Items = make([]bookstore.BookCopy, n)
		for i := range msg.Items {
			if err := r.ints("item", &msg.Items[i].ISBN, &msg.Items[i].Copies); err != nil {
				return err
			}
		}
	}

	// Read Ratings if present
	msg.Ratings = nil
	if flags&hasRatings != 0 {
		n, err := r.length("ratings", 16)
		if err != nil {
			return err
		}
		msg.Ratings = make([]bookstore.BookRating, n)
		for i := range msg.Ratings {
			if err := r.ints("rating", &msg.Ratings[i].ISBN, &msg.Ratings[i].Rating); err != nil {
				return err
			}
		}
	}

	// Read Picks if present
	msg.Picks = nil
	if flags&hasPicks != 0 {
		n, err := r.length("picks", 9)
		if err != nil {
			return err
		}
		msg.Picks = make([]bookstore.EditorPick, n)
		for i := range msg.Picks {
			if err := r.ints("pick", &msg.Picks[i].ISBN); err != nil {
				return err
			}
			flag, err := r.boolVal("pick")
			if err != nil {
				return err
			}
			msg.Picks[i].Pick = flag
		}
	}

	// Read ISBNs if present
	msg.ISBNs = nil
	if flags&hasISBNs != 0 {
		n, err := r.length("isbns", 8)
		if err != nil {
			return err
		}
		msg.ISBNs = make([]int, n)
		for i := range msg.ISBNs {
			if err := r.ints("isbn", &msg.ISBNs[i]); err != nil {
				return err
			}
		}
	}

	// Read Count if present
	msg.Count = 0
	if flags&hasCount != 0 {
		if err := r.ints("count", &msg.Count); err != nil {
			return err
		}
	}

	// Read ShopBooks if present
	msg.ShopBooks = nil
	if flags&hasShopBooks != 0 {
		n, err := r.length("shop books", minBookSize)
		if err != nil {
			return err
		}
		msg.ShopBooks = make([]bookstore.Book, n)
		for i := range msg.ShopBooks {
			if err := r.book(&msg.ShopBooks[i]); err != nil {
				return err
			}
		}
	}

	// Read ErrCode if present
	msg.ErrCode = 0
	if flags&hasErrCode != 0 {
		if r.pos+1 > len(r.data) {
			return fmt.Errorf("data too short for error code")
		}
		msg.ErrCode = r.data[r.pos]
		r.pos += 1
	}

	// Read Err if present
	msg.Err = ""
	if flags&hasErr != 0 {
		s, err := r.stringVal("error")
		if err != nil {
			return err
		}
		msg.Err = s
	}

	// Read Meta if present
	msg.Meta = nil
	if flags&hasMeta != 0 {
		n, err := r.length("meta", 1)
		if err != nil {
			return err
		}
		if r.pos+n > len(r.data) {
			return fmt.Errorf("data too short for meta data")
		}
		msg.Meta = make([]byte, n)
		copy(msg.Meta, r.data[r.pos:r.pos+n])
		r.pos += n
	}

	return nil
}

// --------------------------------------------------------------------------
// Write Helpers
// --------------------------------------------------------------------------

func writeInt(buf []byte, pos int, v int) int {
	binary.BigEndian.PutUint64(buf[pos:pos+8], uint64(int64(v)))
	return pos + 8
}

func writeBool(buf []byte, pos int, v bool) int {
	if v {
		buf[pos] = 1
	} else {
		buf[pos] = 0
	}
	return pos + 1
}

func writeString(buf []byte, pos int, s string) int {
	binary.BigEndian.PutUint32(buf[pos:pos+4], uint32(len(s)))
	pos += 4
	copy(buf[pos:pos+len(s)], s)
	return pos + len(s)
}

func writeBook(buf []byte, pos int, b *bookstore.Book) int {
	pos = writeInt(buf, pos, b.ISBN)
	pos = writeString(buf, pos, b.Title)
	pos = writeString(buf, pos, b.Author)
	binary.BigEndian.PutUint32(buf[pos:pos+4], math.Float32bits(b.Price))
	return pos + 4
}

func writeStockBook(buf []byte, pos int, b *bookstore.StockBook) int {
	pos = writeBook(buf, pos, &b.Book)
	pos = writeInt(buf, pos, b.Copies)
	pos = writeInt(buf, pos, b.SaleMisses)
	pos = writeInt(buf, pos, b.TimesRated)
	pos = writeInt(buf, pos, b.TotalRating)
	return writeBool(buf, pos, b.EditorPick)
}

// --------------------------------------------------------------------------
// Read Helpers
// --------------------------------------------------------------------------

// reader walks the payload with bounds checking on every read
type reader struct {
	data []byte
	pos  int
}

// length reads a uint32 element count. The count is capped against the
// remaining payload using the minimum encoded size of one element, so a
// corrupt frame cannot force a huge allocation.
func (r *reader) length(what string, minElemSize int) (int, error) {
	if r.pos+4 > len(r.data) {
		return 0, fmt.Errorf("data too short for %s length", what)
	}
	n := int(binary.BigEndian.Uint32(r.data[r.pos : r.pos+4]))
	r.pos += 4
	if n > (len(r.data)-r.pos)/minElemSize {
		return 0, fmt.Errorf("%s length %d exceeds remaining data", what, n)
	}
	return n, nil
}

// ints reads one int64 per destination pointer
func (r *reader) ints(what string, dst ...*int) error {
	for _, d := range dst {
		if r.pos+8 > len(r.data) {
			return fmt.Errorf("data too short for %s", what)
		}
		*d = int(int64(binary.BigEndian.Uint64(r.data[r.pos : r.pos+8])))
		r.pos += 8
	}
	return nil
}

func (r *reader) boolVal(what string) (bool, error) {
	if r.pos+1 > len(r.data) {
		return false, fmt.Errorf("data too short for %s flag", what)
	}
	v := r.data[r.pos] != 0
	r.pos += 1
	return v, nil
}

func (r *reader) stringVal(what string) (string, error) {
	n, err := r.length(what, 1)
	if err != nil {
		return "", err
	}
	if r.pos+n > len(r.data) {
		return "", fmt.Errorf("data too short for %s data", what)
	}
	s := string(r.data[r.pos : r.pos+n])
	r.pos += n
	return s, nil
}

func (r *reader) float32Val(what string) (float32, error) {
	if r.pos+4 > len(r.data) {
		return 0, fmt.Errorf("data too short for %s", what)
	}
	v := math.Float32frombits(binary.BigEndian.Uint32(r.data[r.pos : r.pos+4]))
	r.pos += 4
	return v, nil
}

func (r *reader) book(b *bookstore.Book) error {
	if err := r.ints("book", &b.ISBN); err != nil {
		return err
	}
	title, err := r.stringVal("title")
	if err != nil {
		return err
	}
	author, err := r.stringVal("author")
	if err != nil {
		return err
	}
	price, err := r.float32Val("price")
	if err != nil {
		return err
	}
	b.Title, b.Author, b.Price = title, author, price
	return nil
}

func (r *reader) stockBook(b *bookstore.StockBook) error {
	if err := r.book(&b.Book); err != nil {
		return err
	}
	if err := r.ints("stock book", &b.Copies, &b.SaleMisses, &b.TimesRated, &b.TotalRating); err != nil {
		return err
	}
	pick, err := r.boolVal("editor pick")
	if err != nil {
		return err
	}
	b.EditorPick = pick
	return nil
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

// sizeBytes calculates the total size needed for serialization
func (b binarySerializerImpl) sizeBytes(msg common.Message) int {
	size := headerSize

	if msg.Books != nil {
		size += 4
		for i := range msg.Books {
			size += sizeOfStockBook(&msg.Books[i])
		}
	}
	if msg.Items != nil {
		size += 4 + len(msg.Items)*16 // isbn + copies
	}
	if msg.Ratings != nil {
		size += 4 + len(msg.Ratings)*16 // isbn + rating
	}
	if msg.Picks != nil {
		size += 4 + len(msg.Picks)*9 // isbn + flag byte
	}
	if msg.ISBNs != nil {
		size += 4 + len(msg.ISBNs)*8
	}
	if msg.Count != 0 {
		size += 8
	}
	if msg.ShopBooks != nil {
		size += 4
		for i := range msg.ShopBooks {
			size += sizeOfBook(&msg.ShopBooks[i])
		}
	}
	if msg.ErrCode != 0 {
		size += 1
	}
	if msg.Err != "" {
		size += 4 + len(msg.Err)
	}
	if msg.Meta != nil {
		size += 4 + len(msg.Meta)
	}

	return size
}

func sizeOfBook(b *bookstore.Book) int {
	// isbn + two length-prefixed strings + price
	return 8 + 4 + len(b.Title) + 4 + len(b.Author) + 4
}

func sizeOfStockBook(b *bookstore.StockBook) int {
	// book + four counters + pick flag
	return sizeOfBook(&b.Book) + 4*8 + 1
}
