package serializer

import (
	"reflect"
	"testing"

	"github.com/UCPHszf/bookstore-assignment2/lib/bookstore"
	"github.com/UCPHszf/bookstore-assignment2/rpc/common"
)

// testSerializers is a map of serializer name to factory function
var testSerializers = map[string]func() IRPCSerializer{
	"JSON":   NewJSONSerializer,
	"GOB":    NewGOBSerializer,
	"Binary": NewBinarySerializer,
}

// testMessages creates a set of test messages with different fields filled
func testMessages() []common.Message {
	return []common.Message{
		// Basic message with just a type
		{MsgType: common.MsgTSuccess},

		// AddBooks request
		{
			MsgType: common.MsgTStockAdd,
			Books: []bookstore.StockBook{
				{
					Book:   bookstore.Book{ISBN: 111, Title: "The Go Programming Language", Author: "Donovan & Kernighan", Price: 34.99},
					Copies: 5,
				},
			},
		},

		// BuyBooks request
		{
			MsgType: common.MsgTShopBuy,
			Items:   []bookstore.BookCopy{{ISBN: 111, Copies: 2}, {ISBN: 222, Copies: 1}},
		},

		// RateBooks request
		{
			MsgType: common.MsgTShopRate,
			Ratings: []bookstore.BookRating{{ISBN: 111, Rating: 5}},
		},

		// UpdateEditorPicks request
		{
			MsgType: common.MsgTStockUpdatePicks,
			Picks:   []bookstore.EditorPick{{ISBN: 111, Pick: true}, {ISBN: 222}},
		},

		// GetBooksByISBN request
		{
			MsgType: common.MsgTStockGetByISBN,
			ISBNs:   []int{111, 222, 333},
		},

		// TopRated request
		{
			MsgType: common.MsgTShopTopRated,
			Count:   10,
		},

		// Shop query response
		{
			MsgType: common.MsgTShopGet,
			ShopBooks: []bookstore.Book{
				{ISBN: 111, Title: "Title A", Author: "Author A", Price: 9.5},
				{ISBN: 222, Title: "Title B", Author: "Author B", Price: 19.5},
			},
		},

		// Error response
		{
			MsgType: common.MsgTError,
			ErrCode: uint8(bookstore.RetCUnknownISBN),
			Err:     "unknown ISBN 999",
		},

		// Response carrying stock records with all counters set
		{
			MsgType: common.MsgTStockInDemand,
			Books: []bookstore.StockBook{
				{
					Book:        bookstore.Book{ISBN: 333, Title: "Sold Out", Author: "N. Body", Price: 49.99},
					Copies:      0,
					SaleMisses:  7,
					TimesRated:  3,
					TotalRating: 11,
					EditorPick:  true,
				},
			},
			Meta: []byte("test-meta-data"),
		},
	}
}

// TestSerializerRoundTrip tests that messages can be serialized and deserialized correctly
func TestSerializerRoundTrip(t *testing.T) {
	messages := testMessages()

	for name, factory := range testSerializers {
		t.Run(name, func(t *testing.T) {
			serializer := factory()

			for i, msg := range messages {
				// Serialize
				data, err := serializer.Serialize(msg)
				if err != nil {
					t.Errorf("Failed to serialize message %d: %v", i, err)
					continue
				}

				// Deserialize
				var result common.Message
				err = serializer.Deserialize(data, &result)
				if err != nil {
					t.Errorf("Failed to deserialize message %d: %v", i, err)
					continue
				}

				// Compare
				if !reflect.DeepEqual(msg, result) {
					t.Errorf("Message %d doesn't match after round trip:\nOriginal: %+v\nResult: %+v",
						i, msg, result)
				}
			}
		})
	}
}

// TestMessageTypes tests each message type with each serializer
func TestMessageTypes(t *testing.T) {
	for name, factory := range testSerializers {
		t.Run(name, func(t *testing.T) {
			serializer := factory()

			// Test each message type (don't test for MsgTUnknown since this should raise an error)
			for msgType := common.MsgTSuccess; msgType <= common.MsgTShopEditorPicks; msgType++ {
				msg := common.Message{MsgType: msgType}

				// Serialize
				data, err := serializer.Serialize(msg)
				if err != nil {
					t.Errorf("Failed to serialize message type %s: %v", msgType.String(), err)
					continue
				}

				// Deserialize
				var result common.Message
				err = serializer.Deserialize(data, &result)
				if err != nil {
					t.Errorf("Failed to deserialize message type %s: %v", msgType.String(), err)
					continue
				}

				// Check type
				if result.MsgType != msgType {
					t.Errorf("Message type doesn't match after round trip: Expected %s, got %s",
						msgType.String(), result.MsgType.String())
				}
			}
		})
	}
}

// TestEmptyBatchRoundTrip verifies that every serializer keeps an empty
// batch distinguishable from an absent one: present-but-empty slices come
// back non-nil and empty, nil slices stay nil.
func TestEmptyBatchRoundTrip(t *testing.T) {
	msg := common.Message{
		MsgType:   common.MsgTShopBuy,
		Books:     []bookstore.StockBook{},
		Items:     []bookstore.BookCopy{},
		Ratings:   []bookstore.BookRating{},
		Picks:     []bookstore.EditorPick{},
		ISBNs:     []int{},
		ShopBooks: []bookstore.Book{},
	}

	for name, factory := range testSerializers {
		t.Run(name, func(t *testing.T) {
			serializer := factory()

			data, err := serializer.Serialize(msg)
			if err != nil {
				t.Fatalf("Failed to serialize: %v", err)
			}

			var result common.Message
			if err := serializer.Deserialize(data, &result); err != nil {
				t.Fatalf("Failed to deserialize: %v", err)
			}

			checks := []struct {
				field string
				isNil bool
				size  int
			}{
				{"Books", result.Books == nil, len(result.Books)},
				{"Items", result.Items == nil, len(result.Items)},
				{"Ratings", result.Ratings == nil, len(result.Ratings)},
				{"Picks", result.Picks == nil, len(result.Picks)},
				{"ISBNs", result.ISBNs == nil, len(result.ISBNs)},
				{"ShopBooks", result.ShopBooks == nil, len(result.ShopBooks)},
			}
			for _, c := range checks {
				if c.isNil {
					t.Errorf("%s arrived as nil, want empty non-nil slice", c.field)
				} else if c.size != 0 {
					t.Errorf("%s arrived with %d elements, want 0", c.field, c.size)
				}
			}
			if result.Meta != nil {
				t.Errorf("Meta arrived as %v, want nil", result.Meta)
			}

			// And the inverse: a message without batches keeps them nil.
			data, err = serializer.Serialize(common.Message{MsgType: common.MsgTSuccess})
			if err != nil {
				t.Fatalf("Failed to serialize: %v", err)
			}
			var bare common.Message
			if err := serializer.Deserialize(data, &bare); err != nil {
				t.Fatalf("Failed to deserialize: %v", err)
			}
			if bare.Books != nil || bare.Items != nil || bare.Ratings != nil ||
				bare.Picks != nil || bare.ISBNs != nil || bare.ShopBooks != nil {
				t.Errorf("Absent batches did not stay nil: %+v", bare)
			}
		})
	}
}

// TestBinarySerializerSpecific tests specific edge cases for the binary serializer
func TestBinarySerializerSpecific(t *testing.T) {
	serializer := NewBinarySerializer()

	// Test cases for empty or zero values
	testCases := []struct {
		name string
		msg  common.Message
	}{
		{
			name: "Empty message",
			msg:  common.Message{},
		},
		{
			name: "Message with empty slices and zero values",
			msg: common.Message{
				MsgType: common.MsgTStockAdd,
				Books:   []bookstore.StockBook{},
				ISBNs:   []int{},
				Count:   0,
				Err:     "",
				Meta:    []byte{},
			},
		},
		{
			name: "Book with empty strings and zero price",
			msg: common.Message{
				MsgType:   common.MsgTShopGet,
				ShopBooks: []bookstore.Book{{ISBN: 1}},
			},
		},
		{
			name: "Error code without error text",
			msg: common.Message{
				MsgType: common.MsgTError,
				ErrCode: uint8(bookstore.RetCNullInput),
			},
		},
		{
			name: "Negative ISBN survives the trip",
			msg: common.Message{
				MsgType: common.MsgTStockRemove,
				ISBNs:   []int{-42},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Serialize
			data, err := serializer.Serialize(tc.msg)
			if err != nil {
				t.Fatalf("Failed to serialize: %v", err)
			}

			// Deserialize
			var result common.Message
			err = serializer.Deserialize(data, &result)
			if err != nil {
				t.Fatalf("Failed to deserialize: %v", err)
			}

			// Verify scalar fields
			if tc.msg.MsgType != result.MsgType {
				t.Errorf("MsgType mismatch: expected %v, got %v", tc.msg.MsgType, result.MsgType)
			}
			if tc.msg.Count != result.Count {
				t.Errorf("Count mismatch: expected %d, got %d", tc.msg.Count, result.Count)
			}
			if tc.msg.ErrCode != result.ErrCode {
				t.Errorf("ErrCode mismatch: expected %d, got %d", tc.msg.ErrCode, result.ErrCode)
			}
			if tc.msg.Err != result.Err {
				t.Errorf("Err mismatch: expected '%s', got '%s'", tc.msg.Err, result.Err)
			}

			// Verify slice fields, including nil/non-nil preservation
			if (tc.msg.Books == nil) != (result.Books == nil) {
				t.Errorf("Books nil/non-nil mismatch: expected %v, got %v", tc.msg.Books, result.Books)
			} else if !reflect.DeepEqual(tc.msg.Books, result.Books) {
				t.Errorf("Books mismatch: expected %+v, got %+v", tc.msg.Books, result.Books)
			}

			if (tc.msg.ISBNs == nil) != (result.ISBNs == nil) {
				t.Errorf("ISBNs nil/non-nil mismatch: expected %v, got %v", tc.msg.ISBNs, result.ISBNs)
			} else if !reflect.DeepEqual(tc.msg.ISBNs, result.ISBNs) {
				t.Errorf("ISBNs mismatch: expected %v, got %v", tc.msg.ISBNs, result.ISBNs)
			}

			if (tc.msg.ShopBooks == nil) != (result.ShopBooks == nil) {
				t.Errorf("ShopBooks nil/non-nil mismatch: expected %v, got %v", tc.msg.ShopBooks, result.ShopBooks)
			} else if !reflect.DeepEqual(tc.msg.ShopBooks, result.ShopBooks) {
				t.Errorf("ShopBooks mismatch: expected %+v, got %+v", tc.msg.ShopBooks, result.ShopBooks)
			}

			if (tc.msg.Meta == nil) != (result.Meta == nil) {
				t.Errorf("Meta nil/non-nil mismatch: expected %v, got %v", tc.msg.Meta, result.Meta)
			} else if tc.msg.Meta != nil && string(tc.msg.Meta) != string(result.Meta) {
				t.Errorf("Meta mismatch: expected %q, got %q", tc.msg.Meta, result.Meta)
			}
		})
	}
}

// TestInvalidBinaryData tests how the binary serializer handles corrupt or invalid data
func TestInvalidBinaryData(t *testing.T) {
	serializer := NewBinarySerializer()

	testCases := []struct {
		name        string
		data        []byte
		expectError bool
	}{
		{
			name:        "Empty data",
			data:        []byte{},
			expectError: true,
		},
		{
			name:        "Too short header",
			data:        []byte{1, 0}, // Message type and half the flags
			expectError: true,
		},
		{
			name:        "Valid header only",
			data:        []byte{1, 0, 0}, // Message type 1, no flags
			expectError: false,
		},
		{
			name:        "Truncated ISBN list",
			data:        []byte{1, 0, 0x10, 0, 0, 0, 2}, // Claims 2 ISBNs but no data provided
			expectError: true,
		},
		{
			name:        "Invalid length for error text",
			data:        []byte{1, 1, 0, 0, 0, 0, 10, 'a'}, // Claims error length 10 but only 1 byte provided
			expectError: true,
		},
		{
			name:        "Oversized book count",
			data:        []byte{1, 0, 1, 0xFF, 0xFF, 0xFF, 0xFF}, // Claims ~4 billion books in a 7 byte frame
			expectError: true,
		},
		{
			name:        "Oversized ISBN count",
			data:        []byte{1, 0, 0x10, 0xFF, 0xFF, 0xFF, 0xFF}, // Claims ~4 billion ISBNs in a 7 byte frame
			expectError: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var msg common.Message
			err := serializer.Deserialize(tc.data, &msg)

			if tc.expectError && err == nil {
				t.Errorf("Expected error but got none")
			} else if !tc.expectError && err != nil {
				t.Errorf("Did not expect error but got: %v", err)
			}
		})
	}
}
