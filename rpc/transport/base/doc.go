// Package base holds the framed transport shared by the tcp and unix
// transports. A concrete transport only supplies an IClientConnector and an
// IServerConnector, everything else lives here.
//
// Frame layout (big endian):
//
//	channel   uint64  session id, 0 for control requests
//	requestID uint64  chosen by the client, echoed by the server
//	length    uint32  payload size
//	payload   []byte  serialized message
//
// The client keeps ConnectionsPerEndpoint connections per endpoint and picks
// one round robin. Responses are matched to waiting callers by request id, so
// many requests can be in flight on a single connection. A broken connection
// is redialed on the next send, up to RetryCount attempts.
//
// The server reads frames in one goroutine per connection and hands them to a
// bounded worker pool (WorkersPerConn). Writes of response frames are
// serialized per connection and use net.Buffers so header and payload leave
// in a single write. Read buffers come from a sync.Pool.
//
// All exported methods are safe for concurrent use.
package base
