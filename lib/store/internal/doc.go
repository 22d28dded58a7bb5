// Package internal contains the engine shared by the object store and the map store.
//
// The engine owns the store lock, the path and property resolvers, the
// subscriber registry and the debug bridge. Store variants express every
// mutation as a function running under the write lock that returns the
// Effects of the mutation. The engine then releases the lock, reports the
// action to the debug bridge and runs the notifications.
package internal
