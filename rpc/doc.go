// Package rpc makes the debug host reachable over the network. A store in one
// process can attach to a host running in another process, and the devtools
// commands can inspect and steer the sessions of a running host.
//
// Layout:
//
//	common      Message, client and server configuration, loggers
//	serializer  Message <-> []byte (binary, json, gob)
//	transport   byte transport (http, tcp, unix)
//	client      host.IHost backed by a remote host
//	server      serves a local host.IHost
//
// A request is a single Message naming the host operation (connect, send,
// jump, reset, dispatch, poll, ...). Host errors travel back with their
// error code and are rebuilt as *host.Error on the client, so callers can
// compare them with errors.Is exactly like local errors.
package rpc
