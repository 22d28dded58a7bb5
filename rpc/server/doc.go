// Package server implements the RPC server of the debug host. It exposes one
// host.IHost over any transport and serializer.
//
// The package focuses on:
//   - Server-side RPC request handling for all host operations
//   - Adapter pattern to decouple the host from the RPC mechanisms
//   - Checking that session bound requests arrive on the channel of their session
//
// Key Components:
//
//   - IRPCServerAdapter: Interface defining the contract for all server adapters,
//     with the Handle method that processes incoming requests against a host.IHost.
//
//   - NewHostServerAdapter: Factory function creating the adapter for the host
//     operations. Host errors keep their return code in the response.
//
//   - NewRPCServer: Factory function creating a configured server with the specified
//     transport and serializer mechanisms.
//
// Usage Example:
//
//	// Create server configuration
//	config := common.ServerConfig{
//	  TimeoutSecond: 5,
//	  MaxAge:        50,
//	  LogLevel:      "info",
//	  Transport: common.ServerTransportConfig{
//	    Endpoint:       "0.0.0.0:8080",
//	    WorkersPerConn: 16,
//	  },
//	}
//
//	// Create the server
//	s := server.NewRPCServer(
//	  config,
//	  tcp.NewTCPDefaultServerTransport(),
//	  serializer.NewBinarySerializer(),
//	  nil,
//	)
//
//	// Start the server
//	if err := s.Serve(); err != nil {
//	  log.Fatalf("Server error: %v", err)
//	}
//
// Thread Safety:
//
//	The server implementation is thread-safe and can handle concurrent requests
//	across multiple connections. Each request is processed independently.
//	Serve is not thread-safe and should be called only once.
package server
