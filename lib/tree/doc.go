// Package tree provides the helpers the stores use to work with record trees.
//
// A record tree is an arbitrarily nested, JSON-like Go value. The containers
// that can be addressed by path segments are map[string]any (by key) and []any
// (by decimal index). Every other value is a leaf, including typed maps, typed
// slices, time.Time and *regexp.Regexp values.
//
// The package focuses on:
//   - Container access (Lookup, Assign, Delete, Walk) that never panics
//     for missing keys, out of range indices or non container values
//   - Deep copies (Clone) used for initial snapshots, fallback data and
//     state snapshots handed to the debug bridge
//   - Conversion between Go values and record trees (FromValue, Decode)
//     backed by mapstructure
//   - Parsing JSON and YAML documents (ParseJSON, ParseJSONObject, ParseYAML)
//
// Absence is reported with a boolean (the ok idiom) and is distinct from a
// present nil value: a key that exists with a nil value is found.
package tree
