// Package tcp provides the TCP connectors for the framed transport of the
// base package. Pooling, framing and retries are inherited from there.
//
// Endpoints are host:port pairs, a leading "tcp://" is accepted. Dialing
// honours the client timeout.
//
// Each connection gets the TCPConf options (no delay, keep alive, linger)
// and the SocketConf buffer sizes of its side. The server reads into
// 512 KB buffers by default, which fits the typical state snapshot.
package tcp
