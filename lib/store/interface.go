package store

import (
	"github.com/ValentinKolb/rKV/lib/notify"
)

// --------------------------------------------------------------------------
// Interface Definition
// --------------------------------------------------------------------------

// Callback is invoked after an observed value changed
type Callback = notify.Callback

// Unsubscribe removes a subscription. Calling it more than once is a no-op.
type Unsubscribe = notify.Unsubscribe

// Updater computes a new value from the previous one.
// ok is false if the previous value is undefined.
type Updater func(prev any, ok bool) any

// Getter is implemented by everything that can read a path.
// The boolean return value is false if the path resolves to undefined.
type Getter interface {
	Get(path string) (value any, ok bool)
}

// IStore is a reactive store owning a single nested record.
//
// Paths are dot-delimited ("user.address.city"), slice elements are addressed by
// their decimal index. No method fails or panics for missing or malformed paths:
// reads resolve to undefined, mutations become no-ops.
// Every mutation takes a notify flag, false suppresses all observer callbacks.
type IStore interface {
	// Get returns the live value at path, or the fallback value if the live value is undefined.
	// Containers are returned by reference and must not be modified.
	Get(path string) (value any, ok bool)
	// Set assigns value at path, creating missing intermediate maps.
	Set(path string, value any, notify bool)
	// Update assigns a literal value or the result of an Updater (or a func(any) any) at path.
	// It is a no-op if the container holding the final key does not exist.
	// The updater runs while the store is locked and must not call back into the store.
	Update(path string, valueOrUpdater any, notify bool)
	// Remove deletes the final key of path. It is a no-op if the key does not exist.
	Remove(path string, notify bool)
	// Reset restores the initial data and notifies every observer.
	Reset(notify bool)
	// Subscribe registers cb on path. cb fires when path, one of its ancestors or
	// one of its descendants is mutated.
	Subscribe(path string, cb Callback) Unsubscribe
	// Snapshot returns a deep copy of the live data.
	Snapshot() map[string]any
}

// IMapStore is a reactive store owning a collection of nested records keyed by an identifier.
// The paths passed to the key handles are relative to the identified record.
type IMapStore interface {
	// Key returns a handle for the record called id. The record does not need to exist.
	// An id containing the path separator cannot be addressed: its handle reports
	// the record as missing and ignores every mutation and subscription.
	Key(id string) IKeyHandle
	// Keys returns the identifiers in insertion order
	Keys() []string
	// Size returns the number of records
	Size() int
	// Clear removes all records. The initial data is kept for Reset.
	Clear(notify bool)
	// Reset restores the initial records and notifies every observer.
	Reset(notify bool)
	// SubscribeKeys registers cb for changes of the identifier list
	SubscribeKeys(cb Callback) Unsubscribe
	// SubscribeSize registers cb for changes of the number of records
	SubscribeSize(cb Callback) Unsubscribe
	// Snapshot returns a deep copy of all records
	Snapshot() map[string]any
}

// IKeyHandle addresses a single record of an IMapStore.
// An empty path addresses the whole record.
type IKeyHandle interface {
	// ID returns the identifier of the record
	ID() string
	// Has reports whether the record exists
	Has() bool
	// Get returns the value at path inside the record, falling back to the fallback record
	Get(path string) (value any, ok bool)
	// Set replaces the whole record
	Set(record any, notify bool)
	// Update assigns a value or the result of an updater at path.
	// It is a no-op if the record or the container holding the final key does not exist.
	// The updater runs while the store is locked and must not call back into the store.
	Update(path string, valueOrUpdater any, notify bool)
	// Remove deletes the record
	Remove(notify bool)
	// Subscribe registers cb on path inside the record
	Subscribe(path string, cb Callback) Unsubscribe
}
