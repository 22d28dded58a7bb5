// Package mstore implements store.IMapStore, a reactive store owning a collection
// of nested records keyed by an identifier.
//
// Internally every path starts with the identifier ("u1.address.city"), so the
// identifier path is an ancestor of every path inside the record. Observers of
// one record are never notified for another record. The identifiers keep their
// insertion order.
package mstore
