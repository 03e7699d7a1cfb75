package client

import (
	"fmt"

	"github.com/UCPHszf/bookstore-assignment2/rpc/common"
	"github.com/UCPHszf/bookstore-assignment2/rpc/serializer"
	"github.com/UCPHszf/bookstore-assignment2/rpc/transport"
)

var (
	Logger = common.GetLogger("rpc").Sugar()
)

// rpcClientAdapter is a struct that stores all data needed for an implementation of an RPC client
// Used by the RPCBookStore and RPCStockManager with composition pattern
type rpcClientAdapter struct {
	serviceId  uint64
	config     common.ClientConfig
	transport  transport.IRPCClientTransport
	serializer serializer.IRPCSerializer
}

// invokeRPCRequest is a helper function used for all RPC Clients to send requests
// It takes a service ID, a request message, a transport layer and a serializer as parameters
// It returns a response message and an error if any occurs
// This method also checks if the response is an error response and if the type of the response is the expected type
// Errors raised by the catalog on the server side are rebuilt as typed
// bookstore errors, so callers can branch on the error code as if the
// catalog were local.
func invokeRPCRequest(serviceId uint64, req *common.Message, transport transport.IRPCClientTransport, serializer serializer.IRPCSerializer) (*common.Message, error) {
	// Serialize the request
	reqBytes, err := serializer.Serialize(*req)
	if err != nil {
		return nil, err
	}

	// Send the request
	respBytes, err := transport.Send(serviceId, reqBytes)
	if err != nil {
		return nil, err
	}

	// Deserialize the response
	resp := &common.Message{}
	err = serializer.Deserialize(respBytes, resp)
	if err != nil {
		return nil, fmt.Errorf("RPC client - Error: %s", err)
	}

	// Check if the response carries an error
	if resp.MsgType == common.MsgTError || resp.Err != "" || resp.ErrCode != 0 {
		return nil, resp.Error()
	}

	// Check if the type of the response is the expected type
	if resp.MsgType != req.MsgType {
		return nil, fmt.Errorf("RPC client - Unexpected message type: %s, expected %s", resp.MsgType, req.MsgType)
	}

	// Return the response
	return resp, nil
}
