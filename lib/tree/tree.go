package tree

import (
	"strconv"
)

// --------------------------------------------------------------------------
// Container Access
// --------------------------------------------------------------------------

// IsContainer reports whether v can be descended into by a path segment.
// Only the JSON-like container shapes (map[string]any and []any) are walked,
// all other values are leaves.
func IsContainer(v any) bool {
	switch v.(type) {
	case map[string]any, []any:
		return true
	default:
		return false
	}
}

// Lookup reads key from container.
// The boolean return value is false if the container is not a container, the key
// does not exist or the index is out of range. A key that exists with a nil value
// is reported as found.
func Lookup(container any, key string) (any, bool) {
	switch c := container.(type) {
	case map[string]any:
		v, ok := c[key]
		return v, ok
	case []any:
		idx, ok := index(key, len(c))
		if !ok {
			return nil, false
		}
		return c[idx], true
	default:
		return nil, false
	}
}

// Assign writes value at key in container and returns whether the write happened.
// Maps accept any key, slices only accept in-range indices since growing a slice
// would change its header and detach it from the parent container.
func Assign(container any, key string, value any) bool {
	switch c := container.(type) {
	case map[string]any:
		if c == nil {
			return false
		}
		c[key] = value
		return true
	case []any:
		idx, ok := index(key, len(c))
		if !ok {
			return false
		}
		c[idx] = value
		return true
	default:
		return false
	}
}

// Delete removes key from container and returns whether something was removed.
// For slices the element is reset to nil (the slice keeps its length).
func Delete(container any, key string) bool {
	switch c := container.(type) {
	case map[string]any:
		if _, ok := c[key]; !ok {
			return false
		}
		delete(c, key)
		return true
	case []any:
		idx, ok := index(key, len(c))
		if !ok {
			return false
		}
		c[idx] = nil
		return true
	default:
		return false
	}
}

// Walk descends from root along keys and returns the value found at the end.
// The walk stops at the first missing step and reports false.
func Walk(root any, keys []string) (any, bool) {
	current := root
	for _, key := range keys {
		next, ok := Lookup(current, key)
		if !ok {
			return nil, false
		}
		current = next
	}
	return current, true
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

// index parses a slice index segment and checks the bounds
func index(key string, length int) (int, bool) {
	idx, err := strconv.Atoi(key)
	if err != nil || idx < 0 || idx >= length {
		return 0, false
	}
	return idx, true
}
