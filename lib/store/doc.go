// Package store defines the reactive, path-addressable stores.
//
// A store owns nested records (JSON-like trees of map[string]any and []any)
// and gives access to values deep inside them by dot-delimited paths. Observers
// subscribe to a path and are notified when the value at the path, at one of
// its ancestors or at one of its descendants changes.
//
// Key Components:
//
//   - IStore: a store owning a single record, implemented by the object store
//     in the "github.com/ValentinKolb/rKV/lib/store/ostore" package.
//
//   - IMapStore / IKeyHandle: a store owning a collection of records keyed by an
//     identifier, implemented by the map store in the
//     "github.com/ValentinKolb/rKV/lib/store/mstore" package. Paths of a key handle
//     are relative to the identified record, observers of one record are never
//     notified for mutations of another record.
//
//   - Options / MapOptions: initial data (restored by Reset), fallback data
//     (consulted when a read resolves to undefined) and an optional debugging
//     session (see the devtools package).
//
//   - Typed accessors: String, Int, Duration, ... read a path and convert the
//     value with spf13/cast, DecodePath decodes a subtree into a struct.
//
// Undefined and nil are different: a path that does not exist is undefined
// (ok == false), a key that exists with a nil value is defined and does not
// fall through to the fallback data.
//
// Stores are safe for concurrent use. Observer callbacks run after the store
// released its lock, so they may read from and write to the store.
package store
