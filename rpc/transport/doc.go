// Package transport defines how requests of the debug host RPC system travel
// between processes. Serialization is not part of a transport, transports only
// move opaque byte slices.
//
// Every request is sent on a channel. The channel of a session bound request
// is the session id, requests that are not bound to a session (connect,
// sessions, info) use ControlChannel. Servers use the channel to reject
// requests that name a different session than the channel they arrived on.
//
// Implementations: http (one POST per request, also serves /metrics),
// tcp and unix (framed and multiplexed, see the base package).
package transport
