// Package http carries debug host requests as plain HTTP POSTs.
//
// The client posts the serialized message to /{channel} on one of the
// configured endpoints, chosen round robin, and retries on transport errors.
// The channel is the session id, or 0 for requests that are not bound to a
// session.
//
// The server exposes:
//
//	POST /{channel}  handle one request
//	GET  /metrics    process and rKV metrics in Prometheus text format
//
// Every request is logged at debug level together with its duration.
//
// This transport is the easiest to put behind proxies and to call with curl,
// but it pays one HTTP round trip per request. Use tcp or unix when polling
// from a busy store.
package http
