package server

import (
	"fmt"
	"testing"

	"github.com/UCPHszf/bookstore-assignment2/lib/bookstore"
	bsTesting "github.com/UCPHszf/bookstore-assignment2/lib/bookstore/testing"
	"github.com/UCPHszf/bookstore-assignment2/rpc/client"
	"github.com/UCPHszf/bookstore-assignment2/rpc/common"
	"github.com/UCPHszf/bookstore-assignment2/rpc/serializer"
	"github.com/UCPHszf/bookstore-assignment2/rpc/transport"
)

// loopbackTransport short-circuits client and server in one process: Send
// invokes the registered server handler directly, so requests travel the
// full client -> serializer -> adapter -> catalog path without sockets.
type loopbackTransport struct {
	handler transport.ServerHandleFunc
}

func (l *loopbackTransport) RegisterHandler(handler transport.ServerHandleFunc) {
	l.handler = handler
}

func (l *loopbackTransport) Listen(_ common.ServerConfig) error { return nil }

func (l *loopbackTransport) Connect(_ common.ClientConfig) error { return nil }

func (l *loopbackTransport) Send(serviceID uint64, req []byte) ([]byte, error) {
	if l.handler == nil {
		return nil, fmt.Errorf("no handler registered")
	}
	resp := l.handler(serviceID, req)
	if resp == nil {
		return nil, fmt.Errorf("handler returned no response")
	}
	return resp, nil
}

func (l *loopbackTransport) Close() error { return nil }

// rpcCatalog combines the two RPC clients into a single catalog, the remote
// counterpart of the in-process store.
type rpcCatalog struct {
	bookstore.IBookStore
	bookstore.IStockManager
}

// newLoopbackCatalog serves a fresh catalog over a loopback transport and
// returns the RPC client pair talking to it. It is called from inside the
// suite's subtests, so setup failures panic rather than fail a foreign t.
func newLoopbackCatalog(s serializer.IRPCSerializer) bookstore.ICatalog {
	lt := &loopbackTransport{}
	srv := NewRPCServer(common.ServerConfig{LogLevel: "error"}, lt, s)
	if err := srv.Serve(); err != nil {
		panic(err)
	}

	shop, err := client.NewRPCBookStore(ServiceIDShop, common.ClientConfig{}, lt, s)
	if err != nil {
		panic(err)
	}
	stock, err := client.NewRPCStockManager(ServiceIDStock, common.ClientConfig{}, lt, s)
	if err != nil {
		panic(err)
	}
	return &rpcCatalog{IBookStore: shop, IStockManager: stock}
}

// TestRPCCatalog runs the catalog conformance suite against the RPC client
// pair, once per serializer, so every operation and error code has to
// survive the wire unchanged.
func TestRPCCatalog(t *testing.T) {
	serializers := map[string]func() serializer.IRPCSerializer{
		"JSON":   serializer.NewJSONSerializer,
		"GOB":    serializer.NewGOBSerializer,
		"Binary": serializer.NewBinarySerializer,
	}

	for name, factory := range serializers {
		newSerializer := factory
		bsTesting.RunCatalogTests(t, "RPC-"+name, func() bookstore.ICatalog {
			return newLoopbackCatalog(newSerializer())
		})
	}
}
