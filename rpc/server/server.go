package server

import (
	"fmt"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/UCPHszf/bookstore-assignment2/lib/bookstore"
	"github.com/UCPHszf/bookstore-assignment2/lib/bookstore/cstore"
	"github.com/UCPHszf/bookstore-assignment2/rpc/common"
	"github.com/UCPHszf/bookstore-assignment2/rpc/serializer"
	"github.com/UCPHszf/bookstore-assignment2/rpc/transport"
	"github.com/VictoriaMetrics/metrics"
	"github.com/puzpuzpuz/xsync/v3"
)

var Logger = common.GetLogger("rpc").Sugar()

// serverService represents one addressable service in the RPC server.
// It pairs the adapter that decodes requests with the catalog the adapter
// operates on. All services share the same catalog instance, so stock and
// shop requests observe the same books.
type serverService struct {
	Catalog bookstore.ICatalog
	Adapter IRPCServerAdapter
}

// NewRPCServer creates a new RPC server
// It takes a config, transport and serializer as parameters
//
// Usage:
//
//	s := server.NewRPCServer(
//		*config,
//		tcp.NewTCPServerTransport(),
//		serializer.NewBinarySerializer(),
//	)
//
//	if err := s.Serve(); err != nil {
//		panic(err)
//	 }
func NewRPCServer(
	config common.ServerConfig,
	transport transport.IRPCServerTransport,
	serializer serializer.IRPCSerializer,
) rpcServer {
	// https://github.com/golang/go/issues/17393
	if runtime.GOOS == "darwin" {
		signal.Ignore(syscall.Signal(0xd))
	}

	// Create service map
	serviceMap := xsync.NewMapOf[uint64, serverService]()

	Logger.Infof("Created RPC Server")
	Logger.Infof(config.String())

	// Create the RPC server
	return rpcServer{
		config:     config,
		transport:  transport,
		serializer: serializer,
		services:   serviceMap,
	}
}

type rpcServer struct {
	config     common.ServerConfig
	transport  transport.IRPCServerTransport
	serializer serializer.IRPCSerializer
	services   *xsync.MapOf[uint64, serverService]
}

func (s *rpcServer) registerTransportHandler() {
	s.transport.RegisterHandler(func(serviceId uint64, req []byte) []byte {
		var msg common.Message
		var respMsg common.Message

		start := time.Now()

		// Get appropriate service
		service, ok := s.services.Load(serviceId)

		// Case service does not exist -> error
		if !ok {
			respMsg = *common.NewErrorResponse("service not found")
		} else {
			// Decode the request
			err := s.serializer.Deserialize(req, &msg)

			if err != nil {
				respMsg = *common.NewErrorResponse(fmt.Sprintf("failed to deserialize request: %s", err))
			} else {
				// Let the adapter handle the request
				respMsg = *service.Adapter.Handle(&msg, service.Catalog)
			}
		}

		// Record per-operation request metrics
		recordRequest(serviceId, msg.MsgType, &respMsg, time.Since(start))

		// Return result
		val, err := s.serializer.Serialize(respMsg)
		if err != nil {
			Logger.Errorf("failed to serialize response: %v", err)
			return nil
		}
		return val
	})
}

func (s *rpcServer) init() error {

	// Init logger
	common.InitLoggers(s.config.LogLevel)

	// The shared catalog both services operate on
	catalog := cstore.New(&cstore.Options{
		Logger: common.GetLogger("catalog"),
	})

	// CREATE SERVICES

	/*
		Note: The RPC server exposes the shared catalog through two services,
		mirroring the two roles of the system: the stock manager (inventory
		operations) and the bookstore (customer operations). Both services
		address the same catalog instance.
	*/

	s.services.Store(ServiceIDShop, serverService{
		Catalog: catalog,
		Adapter: NewBookStoreServerAdapter(),
	})
	Logger.Infof("created bookstore service with id %d", ServiceIDShop)

	s.services.Store(ServiceIDStock, serverService{
		Catalog: catalog,
		Adapter: NewStockManagerServerAdapter(),
	})
	Logger.Infof("created stock manager service with id %d", ServiceIDStock)

	Logger.Infof("bookstore setup completed successfully")

	// Configure the transport layer
	s.registerTransportHandler()

	return nil
}

// Serve starts the RPC server
// This function will also initialize the server plus the services and start the transport layer
func (s *rpcServer) Serve() error {
	err := s.init()
	if err != nil {
		return err
	}
	return s.transport.Listen(s.config)
}

// --------------------------------------------------------------------------
// Metrics
// --------------------------------------------------------------------------

// recordRequest updates the request counters and the duration summary for
// one handled request. Metrics are exposed by the HTTP transport at /metrics.
func recordRequest(serviceId uint64, msgType common.MessageType, resp *common.Message, duration time.Duration) {
	metrics.GetOrCreateCounter(
		fmt.Sprintf(`rpc_requests_total{service="%d",op=%q}`, serviceId, msgType.String()),
	).Inc()

	if resp.Err != "" {
		metrics.GetOrCreateCounter(
			fmt.Sprintf(`rpc_request_errors_total{service="%d",op=%q}`, serviceId, msgType.String()),
		).Inc()
	}

	metrics.GetOrCreateSummary(
		fmt.Sprintf(`rpc_request_duration_seconds{service="%d",op=%q}`, serviceId, msgType.String()),
	).Update(duration.Seconds())
}
