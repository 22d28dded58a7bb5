package store

import (
	"fmt"
	"slices"

	"github.com/ValentinKolb/rKV/lib/devtools"
	"github.com/ValentinKolb/rKV/lib/tree"
)

// Options configure an object store
type Options struct {
	// InitialData is copied into the live data and kept as the reset snapshot
	InitialData map[string]any
	// FallbackData is consulted when a read resolves to undefined
	FallbackData map[string]any
	// DevToolsName names the debugging session, no session is opened if empty
	DevToolsName string
	// DevTools opens the debugging session, no session is opened if nil
	DevTools devtools.Extension
	// DevToolsOptions are passed to DevTools.Connect
	DevToolsOptions devtools.ConnectOptions
}

// DefaultOptions returns options for an empty store without debugging
func DefaultOptions() *Options {
	return &Options{
		InitialData:     map[string]any{},
		FallbackData:    map[string]any{},
		DevToolsOptions: devtools.DefaultConnectOptions(),
	}
}

// OptionsFromValues returns the default options with initial and fallback data
// converted from Go values (see tree.FromValue), nil leaves the data empty.
func OptionsFromValues(initial, fallback any) (*Options, error) {
	opts := DefaultOptions()

	var err error
	if opts.InitialData, err = tree.FromValue(initial); err != nil {
		return nil, fmt.Errorf("initial data: %w", err)
	}
	if opts.FallbackData, err = tree.FromValue(fallback); err != nil {
		return nil, fmt.Errorf("fallback data: %w", err)
	}
	return opts, nil
}

// Entry is a record of a map store
type Entry struct {
	ID     string
	Record any
}

// MapOptions configure a map store
type MapOptions struct {
	// InitialEntries are copied into the live data (in order) and kept as the reset snapshot
	InitialEntries []Entry
	// FallbackRecord is consulted for every identifier when a read resolves to undefined
	FallbackRecord map[string]any
	// DevToolsName names the debugging session, no session is opened if empty
	DevToolsName string
	// DevTools opens the debugging session, no session is opened if nil
	DevTools devtools.Extension
	// DevToolsOptions are passed to DevTools.Connect
	DevToolsOptions devtools.ConnectOptions
}

// DefaultMapOptions returns options for an empty map store without debugging
func DefaultMapOptions() *MapOptions {
	return &MapOptions{
		DevToolsOptions: devtools.DefaultConnectOptions(),
	}
}

// EntryFromValue returns an entry whose record is converted from a struct, a
// pointer to a struct or a string keyed map (see tree.FromValue)
func EntryFromValue(id string, record any) (Entry, error) {
	converted, err := tree.FromValue(record)
	if err != nil {
		return Entry{}, fmt.Errorf("record %q: %w", id, err)
	}
	return Entry{ID: id, Record: converted}, nil
}

// FallbackFromValue sets the fallback record converted from a Go value (see tree.FromValue)
func (o *MapOptions) FallbackFromValue(v any) error {
	record, err := tree.FromValue(v)
	if err != nil {
		return fmt.Errorf("fallback record: %w", err)
	}
	o.FallbackRecord = record
	return nil
}

// EntriesFromMap converts records into entries ordered by identifier
func EntriesFromMap(records map[string]any) []Entry {
	ids := make([]string, 0, len(records))
	for id := range records {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	entries := make([]Entry, len(ids))
	for i, id := range ids {
		entries[i] = Entry{ID: id, Record: records[id]}
	}
	return entries
}
