// Package notify implements the subscriber registry of the stores.
//
// A Registry maps an exact path to an ordered set of callbacks. Notifications
// come in three flavours:
//   - NotifyCascade invokes the observers of a path and of all of its parent paths
//   - NotifyDependents invokes the observers of the paths resolved through a path
//   - NotifyAll invokes every registered observer (reset, clear and replay)
//
// A Signal is a pathless observer class, used for collection level events such
// as "keys changed" and "size changed".
//
// Callbacks run synchronously on the notifying goroutine. The registry holds no
// lock while a callback runs, so callbacks may subscribe, unsubscribe or call
// back into the store.
package notify
