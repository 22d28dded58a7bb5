package store

import (
	"errors"
	"time"

	"github.com/ValentinKolb/rKV/lib/tree"
	"github.com/spf13/cast"
)

// ErrNotFound is returned by the typed accessors if a path resolves to undefined
var ErrNotFound = errors.New("store: path resolves to undefined")

func get[T any](g Getter, path string, convert func(any) (T, error)) (T, error) {
	v, ok := g.Get(path)
	if !ok {
		var zero T
		return zero, ErrNotFound
	}
	return convert(v)
}

// String reads path as a string
func String(g Getter, path string) (string, error) {
	return get(g, path, cast.ToStringE)
}

// Int reads path as an int
func Int(g Getter, path string) (int, error) {
	return get(g, path, cast.ToIntE)
}

// Int64 reads path as an int64
func Int64(g Getter, path string) (int64, error) {
	return get(g, path, cast.ToInt64E)
}

// Float64 reads path as a float64
func Float64(g Getter, path string) (float64, error) {
	return get(g, path, cast.ToFloat64E)
}

// Bool reads path as a bool
func Bool(g Getter, path string) (bool, error) {
	return get(g, path, cast.ToBoolE)
}

// Duration reads path as a time.Duration (numbers are nanoseconds, strings are parsed)
func Duration(g Getter, path string) (time.Duration, error) {
	return get(g, path, cast.ToDurationE)
}

// Time reads path as a time.Time
func Time(g Getter, path string) (time.Time, error) {
	return get(g, path, cast.ToTimeE)
}

// StringSlice reads path as a []string
func StringSlice(g Getter, path string) ([]string, error) {
	return get(g, path, cast.ToStringSliceE)
}

// StringMap reads path as a map[string]any
func StringMap(g Getter, path string) (map[string]any, error) {
	return get(g, path, cast.ToStringMapE)
}

// DecodePath decodes the subtree at path into out (a pointer), see tree.Decode
func DecodePath(g Getter, path string, out any) error {
	v, ok := g.Get(path)
	if !ok {
		return ErrNotFound
	}
	return tree.Decode(v, out)
}
