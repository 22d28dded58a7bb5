package transport

import (
	"github.com/ValentinKolb/rKV/rpc/common"
)

// ControlChannel is the channel of requests not bound to a session
const ControlChannel uint64 = 0

// --------------------------------------------------------------------------
// Server Transport
// --------------------------------------------------------------------------

// ServerHandleFunc is a function type that handles incoming requests
// This function is called by a server transport layer when a request is received
// It takes the channel (the session id, or ControlChannel) and a request as parameters and returns a response
type ServerHandleFunc func(channel uint64, req []byte) (resp []byte)

// IRPCServerTransport is the interface for the RPC transport layer
// It must accept a ServerConfig as a parameter
type IRPCServerTransport interface {
	// RegisterHandler registers a handler for the transport layer
	// This handler should be called when a request is received
	RegisterHandler(handler ServerHandleFunc)
	// Listen starts the transport layer and blocks until it is closed
	// It returns nil if the transport was closed by Close
	Listen(config common.ServerConfig) error
	// Close stops listening and closes the listener
	Close() error
}

// --------------------------------------------------------------------------
// Client Transport
// --------------------------------------------------------------------------

// IRPCClientTransport is the interface for the RPC client transport
type IRPCClientTransport interface {
	// Connect initializes the transport with the given configuration
	Connect(config common.ClientConfig) error
	// Send sends a request on a channel to the server and returns the response
	Send(channel uint64, req []byte) (resp []byte, err error)
	// Close closes the transport connection
	Close() error
}
