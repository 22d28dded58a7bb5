// Package client implements the RPC client of the debug host. It provides an
// implementation of the host.IHost interface that communicates with a remote
// host server via RPC.
//
// The package focuses on:
//   - Transparent RPC access to a remote debug host
//   - Integration with the transport and serialization layers
//   - Error handling and conversion between RPC and host errors (failed host
//     operations are returned as *host.Error with their original return code)
//
// Key Components:
//
//   - NewRPCHost: Factory function that creates a client implementing the
//     host.IHost interface. Session bound requests are sent on the channel of
//     their session, all other requests on the control channel.
//
// Usage Example:
//
//	// Configure the client
//	config := common.ClientConfig{
//	  TimeoutSecond: 5,
//	  Transport: common.ClientTransportConfig{
//	    Endpoints:              []string{"localhost:8080"},
//	    RetryCount:             3,
//	    ConnectionsPerEndpoint: 1,
//	  },
//	}
//
//	// Create the host client
//	h, _ := client.NewRPCHost(config, tcp.NewTCPClientTransport(), serializer.NewBinarySerializer())
//
//	// Attach a store to the remote host
//	ext := host.NewExtension(h, 100*time.Millisecond)
//	s := ostore.NewObjectStore(&store.Options{DevToolsName: "settings", DevTools: ext})
//
//	// Inspect the sessions
//	sessions, _ := h.Sessions()
//
// Performance Considerations:
//
//   - The choice of serializer affects performance. The binary serializer
//     provides the best performance and smallest payload size.
//
// Thread Safety:
//
//	The client is thread-safe and can be used concurrently from multiple
//	goroutines without additional synchronization.
package client
