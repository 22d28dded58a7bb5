package server

import (
	"fmt"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/ValentinKolb/rKV/lib/devtools/host"
	"github.com/ValentinKolb/rKV/rpc/common"
	"github.com/ValentinKolb/rKV/rpc/serializer"
	"github.com/ValentinKolb/rKV/rpc/transport"
	"github.com/lni/dragonboat/v4/logger"
)

var Logger = logger.GetLogger("rpc")

// NewRPCServer creates a new RPC server for the debug host h.
// A new in-process host is created if h is nil.
//
// Usage:
//
//	s := server.NewRPCServer(
//		*config,
//		tcp.NewTCPDefaultServerTransport(),
//		serializer.NewBinarySerializer(),
//		nil,
//	)
//
//	if err := s.Serve(); err != nil {
//		panic(err)
//	}
func NewRPCServer(
	config common.ServerConfig,
	transport transport.IRPCServerTransport,
	serializer serializer.IRPCSerializer,
	h host.IHost,
) *RPCServer {
	// https://github.com/golang/go/issues/17393
	if runtime.GOOS == "darwin" {
		signal.Ignore(syscall.Signal(0xd))
	}

	if h == nil {
		h = host.NewHost()
	}

	return &RPCServer{
		config:     config,
		transport:  transport,
		serializer: serializer,
		host:       h,
		adapter:    NewHostServerAdapter(config.MaxAge),
	}
}

// RPCServer exposes a debug host over a transport
type RPCServer struct {
	config     common.ServerConfig
	transport  transport.IRPCServerTransport
	serializer serializer.IRPCSerializer
	host       host.IHost
	adapter    IRPCServerAdapter
}

// Host returns the host served by s
func (s *RPCServer) Host() host.IHost {
	return s.host
}

// handle decodes a request received on channel, lets the adapter process it and encodes the response
func (s *RPCServer) handle(channel uint64, req []byte) []byte {
	var msg common.Message
	var respMsg *common.Message

	if err := s.serializer.Deserialize(req, &msg); err != nil {
		respMsg = common.NewErrorResponse(fmt.Sprintf("failed to deserialize request: %s", err))
	} else if channel != transport.ControlChannel && msg.ID != channel {
		// session bound requests are sent on the channel of their session
		respMsg = common.NewErrorResponse(fmt.Sprintf("request for session %d received on channel %d", msg.ID, channel))
	} else {
		respMsg = s.adapter.Handle(&msg, s.host)
	}

	val, err := s.serializer.Serialize(*respMsg)
	if err != nil {
		Logger.Errorf("failed to serialize response: %v", err)
		val, _ = s.serializer.Serialize(*common.NewErrorResponse(fmt.Sprintf("failed to serialize response: %s", err)))
	}
	return val
}

// Serve starts the RPC server and blocks until it is closed
func (s *RPCServer) Serve() error {
	Logger.Infof("Created RPC Server using the %s serializer", s.serializer.Name())
	Logger.Infof("%s", s.config.String())

	s.transport.RegisterHandler(s.handle)
	return s.transport.Listen(s.config)
}

// Close stops the transport, open sessions stay on the host
func (s *RPCServer) Close() error {
	return s.transport.Close()
}
