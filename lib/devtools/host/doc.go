// Package host implements a time-travel debugging host that stores attach to.
//
// A host keeps one session per attached store. Each session records the
// initial state and the actions the store reports (bounded by the MaxAge of the
// session) and queues commands for the store: jumping to a recorded state,
// resetting, or dispatching an action. Stores fetch queued commands by polling.
//
// The host is reachable in process (NewHost) or over the rpc layer (see
// rpc/server and rpc/client). NewExtension turns any IHost into a
// devtools.Extension, so a store can attach to a host with:
//
//	ext := host.NewExtension(h, 100*time.Millisecond)
//	s := ostore.NewObjectStore(&store.Options{DevToolsName: "settings", DevTools: ext})
package host
