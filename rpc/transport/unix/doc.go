// Package unix implements the framed transport of the debug host over Unix
// domain sockets, for stores and tools running on the same machine as the host.
//
// Only the connectors live here. Framing, request ids, connection pooling,
// retries and the per-connection worker pool come from the base package.
//
// Endpoints are socket paths, optionally written as "unix:///tmp/rkv.sock".
// The server removes a stale socket file before listening.
//
// Socket buffer sizes (SocketConf) are applied to every connection. The
// default read buffer of the server is 64 KB; states larger than the buffer
// are read into a temporary allocation.
package unix
