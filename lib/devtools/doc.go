// Package devtools connects a store to a time-travel debugging session.
//
// The debugging tool is reached through an injected Extension. A store that
// is configured with a session name and an Extension attaches a Bridge at
// construction time:
//
//   - the current state is pushed as the initial snapshot (Connection.Init)
//   - every mutation is reported as an Action together with a full state snapshot
//   - inbound messages can replace the live state (jump to action/state),
//     reset the store or apply a recorded action
//
// While a replayed state is applied the bridge is paused, so the store does
// not echo the replay back to the session.
//
// The lib/devtools/host package implements a debugging host that sessions can
// attach to over the rpc layer.
package devtools
