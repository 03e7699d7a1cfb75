package serializer

import (
	"testing"

	"github.com/UCPHszf/bookstore-assignment2/lib/bookstore"
	"github.com/UCPHszf/bookstore-assignment2/rpc/common"
)

// benchmarkMessages returns a set of messages for targeted benchmarking
func benchmarkMessages() map[string]common.Message {
	largeCatalog := make([]bookstore.StockBook, 100)
	for i := range largeCatalog {
		largeCatalog[i] = bookstore.StockBook{
			Book: bookstore.Book{
				ISBN:   1000 + i,
				Title:  "A reasonably long book title for benchmarking purposes",
				Author: "Some Prolific Author",
				Price:  29.99,
			},
			Copies:      42,
			SaleMisses:  3,
			TimesRated:  17,
			TotalRating: 68,
		}
	}

	largeOrder := make([]bookstore.BookCopy, 100)
	for i := range largeOrder {
		largeOrder[i] = bookstore.BookCopy{ISBN: 1000 + i, Copies: 2}
	}

	return map[string]common.Message{
		"Empty": {
			MsgType: common.MsgTSuccess,
		},
		"SingleISBN": {
			MsgType: common.MsgTStockGetByISBN,
			ISBNs:   []int{111},
		},
		"ManyISBNs": {
			MsgType: common.MsgTStockGetByISBN,
			ISBNs:   []int{111, 222, 333, 444, 555, 666, 777, 888, 999},
		},
		"SingleBook": {
			MsgType: common.MsgTStockAdd,
			Books: []bookstore.StockBook{{
				Book:   bookstore.Book{ISBN: 111, Title: "Title", Author: "Author", Price: 9.99},
				Copies: 5,
			}},
		},
		"LargeCatalog": {
			MsgType: common.MsgTStockList,
			Books:   largeCatalog,
		},
		"LargeOrder": {
			MsgType: common.MsgTShopBuy,
			Items:   largeOrder,
		},
		"CountOnly": {
			MsgType: common.MsgTShopTopRated,
			Count:   25,
		},
		"ErrorMessage": {
			MsgType: common.MsgTError,
			ErrCode: uint8(bookstore.RetCInsufficientStock),
			Err:     "insufficient stock: requested 5 copies of ISBN 111 but only 2 available",
		},
	}
}

// BenchmarkSerialize benchmarks serialization for all implementations with various message types
func BenchmarkSerialize(b *testing.B) {
	messages := benchmarkMessages()

	for name, factory := range testSerializers {
		for msgName, msg := range messages {
			b.Run(name+"_"+msgName, func(b *testing.B) {
				serializer := factory()
				b.ResetTimer()

				for i := 0; i < b.N; i++ {
					_, err := serializer.Serialize(msg)
					if err != nil {
						b.Fatalf("Failed to serialize: %v", err)
					}
				}
			})
		}
	}
}

// BenchmarkDeserialize benchmarks deserialization for all implementations with various message types
func BenchmarkDeserialize(b *testing.B) {
	messages := benchmarkMessages()
	serializedData := make(map[string]map[string][]byte)

	// Pre-serialize all messages with all serializers
	for name, factory := range testSerializers {
		serializer := factory()
		serializedData[name] = make(map[string][]byte)

		for msgName, msg := range messages {
			data, err := serializer.Serialize(msg)
			if err != nil {
				b.Fatalf("Failed to serialize %s with %s: %v", msgName, name, err)
			}
			serializedData[name][msgName] = data
		}
	}

	// Benchmark deserialization
	for name, factory := range testSerializers {
		for msgName := range messages {
			b.Run(name+"_"+msgName, func(b *testing.B) {
				serializer := factory()
				data := serializedData[name][msgName]
				b.ResetTimer()

				for i := 0; i < b.N; i++ {
					var msg common.Message
					err := serializer.Deserialize(data, &msg)
					if err != nil {
						b.Fatalf("Failed to deserialize: %v", err)
					}
				}
			})
		}
	}
}

// BenchmarkSize measures and reports the serialized size for each message type
func BenchmarkSize(b *testing.B) {
	messages := benchmarkMessages()

	for name, factory := range testSerializers {
		serializer := factory()

		for msgName, msg := range messages {
			b.Run(name+"_"+msgName, func(b *testing.B) {
				data, err := serializer.Serialize(msg)
				if err != nil {
					b.Fatalf("Failed to serialize: %v", err)
				}

				// Report the size as a custom metric
				b.ReportMetric(float64(len(data)), "bytes")

				// Minimal loop to satisfy benchmark requirements
				for i := 0; i < b.N; i++ {
					_ = data
				}
			})
		}
	}
}
