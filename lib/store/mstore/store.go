package mstore

import (
	"fmt"
	"slices"
	"strings"

	"github.com/ValentinKolb/rKV/lib/devtools"
	"github.com/ValentinKolb/rKV/lib/notify"
	"github.com/ValentinKolb/rKV/lib/resolve"
	"github.com/ValentinKolb/rKV/lib/store"
	"github.com/ValentinKolb/rKV/lib/store/internal"
	"github.com/ValentinKolb/rKV/lib/tree"
)

type storeImpl struct {
	engine *internal.Engine

	data     map[string]any
	order    []string // identifiers in insertion order
	initial  map[string]any
	initialO []string
	fallback map[string]any

	keys     []string // cached copy of order, replaced on every add/remove
	keysSig  notify.Signal
	sizeSig  notify.Signal

	hasFallback bool
}

// NewMapStore creates a new map store with the specified options (optional).
// Initial records and the fallback record are deep copied.
func NewMapStore(opts *store.MapOptions) store.IMapStore {
	if opts == nil {
		opts = store.DefaultMapOptions()
	}

	s := &storeImpl{
		initial:     make(map[string]any, len(opts.InitialEntries)),
		fallback:    tree.CloneMap(opts.FallbackRecord),
		hasFallback: opts.FallbackRecord != nil,
	}
	for _, entry := range opts.InitialEntries {
		if _, ok := s.initial[entry.ID]; !ok {
			s.initialO = append(s.initialO, entry.ID)
		}
		s.initial[entry.ID] = tree.Clone(entry.Record)
	}
	s.restoreInitial()

	s.engine = internal.NewEngine("map", resolve.KeyedMode, s, s.snapshot)
	s.engine.AttachBridge(opts.DevTools, opts.DevToolsName, opts.DevToolsOptions, s)

	return s
}

// restoreInitial replaces the live records with a copy of the initial records
func (s *storeImpl) restoreInitial() {
	s.data = make(map[string]any, len(s.initial))
	for id, record := range s.initial {
		s.data[id] = tree.Clone(record)
	}
	s.order = slices.Clone(s.initialO)
	s.refreshKeys()
}

func (s *storeImpl) refreshKeys() {
	s.keys = slices.Clone(s.order)
}

// countSignals are notified whenever identifiers are added or removed
func (s *storeImpl) countSignals() []*notify.Signal {
	return []*notify.Signal{&s.keysSig, &s.sizeSig}
}

// snapshot returns a copy of the records that encodes in insertion order
func (s *storeImpl) snapshot() any {
	state := make(map[string]any, len(s.data))
	for id, record := range s.data {
		state[id] = tree.Clone(record)
	}
	return tree.Ordered{Keys: slices.Clone(s.order), Values: state}
}

// fullPath prefixes path with the identifier
func fullPath(id, path string) string {
	if path == "" {
		return id
	}
	return id + resolve.Separator + path
}

// --------------------------------------------------------------------------
// Roots (used by the property resolver, called under the engine lock)
// --------------------------------------------------------------------------

func (s *storeImpl) Live(id string) (any, bool) {
	record, ok := s.data[id]
	return record, ok
}

func (s *storeImpl) Fallback(string) (any, bool) {
	return s.fallback, s.hasFallback
}

func (s *storeImpl) Initial(id string) (any, bool) {
	record, ok := s.initial[id]
	return record, ok
}

// --------------------------------------------------------------------------
// Interface Methods (docu see store/interface.go)
// --------------------------------------------------------------------------

func (s *storeImpl) Key(id string) store.IKeyHandle {
	if strings.Contains(id, resolve.Separator) {
		return unaddressable(id)
	}
	return &keyHandle{store: s, id: id}
}

func (s *storeImpl) Keys() []string {
	var keys []string
	s.engine.Read(func() {
		keys = slices.Clone(s.keys)
	})
	if keys == nil {
		return []string{}
	}
	return keys
}

func (s *storeImpl) Size() int {
	var size int
	s.engine.Read(func() {
		size = len(s.data)
	})
	return size
}

func (s *storeImpl) Clear(notify bool) {
	s.engine.Mutate(func() (internal.Effects, bool) {
		s.data = map[string]any{}
		s.order = nil
		s.refreshKeys()
		s.engine.Props.Flush()

		return internal.Effects{
			Action:  devtools.NewAction(devtools.VerbClear, "", "", nil),
			Notify:  notify,
			All:     true,
			Signals: s.countSignals(),
		}, true
	})
}

func (s *storeImpl) Reset(notify bool) {
	s.engine.Mutate(func() (internal.Effects, bool) {
		s.restoreInitial()
		s.engine.Props.Flush()

		return internal.Effects{
			Action:  devtools.NewAction(devtools.VerbReset, "", "", nil),
			Notify:  notify,
			All:     true,
			Signals: s.countSignals(),
		}, true
	})
}

func (s *storeImpl) SubscribeKeys(cb store.Callback) store.Unsubscribe {
	return s.keysSig.Subscribe(cb)
}

func (s *storeImpl) SubscribeSize(cb store.Callback) store.Unsubscribe {
	return s.sizeSig.Subscribe(cb)
}

func (s *storeImpl) Snapshot() map[string]any {
	return s.engine.Snapshot().(tree.Ordered).Values
}

// --------------------------------------------------------------------------
// Record Operations
// --------------------------------------------------------------------------

func (s *storeImpl) has(id string) bool {
	var ok bool
	s.engine.Read(func() {
		_, ok = s.data[id]
	})
	return ok
}

func (s *storeImpl) get(id, path string) (value any, ok bool) {
	full := fullPath(id, path)
	s.engine.Read(func() {
		info := s.engine.Paths.Resolve(full)
		prop := s.engine.Props.Resolve(full)

		if info.IsIdentifier() {
			// the whole record has no fallback
			value, ok = prop.Live, prop.LiveOK
			return
		}
		if prop.LiveOK {
			if value, ok = tree.Lookup(prop.Live, info.CurrentKey); ok {
				return
			}
		}
		if prop.FallbackOK {
			value, ok = tree.Lookup(prop.Fallback, info.CurrentKey)
		}
	})
	return value, ok
}

func (s *storeImpl) set(id string, record any, notify bool) {
	s.engine.Mutate(func() (internal.Effects, bool) {
		info := s.engine.Paths.Resolve(id)

		_, exists := s.data[id]
		s.data[id] = record
		s.engine.Props.Invalidate(id)

		effects := internal.Effects{
			Action:  devtools.NewAction(devtools.VerbSet, id, id, record),
			Notify:  notify,
			Cascade: []resolve.PathInfo{info},
		}
		if !exists {
			s.order = append(s.order, id)
			s.refreshKeys()
			effects.Signals = s.countSignals()
		}
		return effects, true
	})
}

func (s *storeImpl) update(id, path string, valueOrUpdater any, notify bool) {
	full := fullPath(id, path)
	s.engine.Mutate(func() (internal.Effects, bool) {
		record, exists := s.data[id]
		if !exists {
			return internal.Effects{}, false
		}

		info := s.engine.Paths.Resolve(full)
		var next any
		if info.IsIdentifier() {
			next = internal.NextValue(valueOrUpdater, record, true)
			s.data[id] = next
		} else {
			prop := s.engine.Props.Resolve(full)
			if !prop.LiveOK || !tree.IsContainer(prop.Live) {
				return internal.Effects{}, false
			}
			prev, ok := tree.Lookup(prop.Live, info.CurrentKey)
			next = internal.NextValue(valueOrUpdater, prev, ok)
			if !tree.Assign(prop.Live, info.CurrentKey, next) {
				return internal.Effects{}, false
			}
		}
		s.engine.Props.Invalidate(full)

		return internal.Effects{
			Action:  devtools.NewAction(devtools.VerbUpdate, full, id, next),
			Notify:  notify,
			Cascade: []resolve.PathInfo{info},
		}, true
	})
}

func (s *storeImpl) remove(id string, notify bool) {
	s.engine.Mutate(func() (internal.Effects, bool) {
		if _, exists := s.data[id]; !exists {
			return internal.Effects{}, false
		}

		delete(s.data, id)
		s.order = slices.DeleteFunc(s.order, func(o string) bool { return o == id })
		s.refreshKeys()
		s.engine.Props.Invalidate(id)

		return internal.Effects{
			Action:  devtools.NewAction(devtools.VerbRemove, id, id, nil),
			Notify:  notify,
			Cascade: []resolve.PathInfo{s.engine.Paths.Resolve(id)},
			Signals: s.countSignals(),
		}, true
	})
}

// --------------------------------------------------------------------------
// Key Handle
// --------------------------------------------------------------------------

type keyHandle struct {
	store *storeImpl
	id    string
}

func (k *keyHandle) ID() string { return k.id }

func (k *keyHandle) Has() bool { return k.store.has(k.id) }

func (k *keyHandle) Get(path string) (any, bool) { return k.store.get(k.id, path) }

func (k *keyHandle) Set(record any, notify bool) { k.store.set(k.id, record, notify) }

func (k *keyHandle) Update(path string, valueOrUpdater any, notify bool) {
	k.store.update(k.id, path, valueOrUpdater, notify)
}

func (k *keyHandle) Remove(notify bool) { k.store.remove(k.id, notify) }

func (k *keyHandle) Subscribe(path string, cb store.Callback) store.Unsubscribe {
	return k.store.engine.Subscribe(fullPath(k.id, path), cb)
}

// unaddressable is the handle of an identifier that would be split into path segments
type unaddressable string

func (u unaddressable) ID() string               { return string(u) }
func (u unaddressable) Has() bool                { return false }
func (u unaddressable) Get(string) (any, bool)   { return nil, false }
func (u unaddressable) Set(any, bool)            {}
func (u unaddressable) Update(string, any, bool) {}
func (u unaddressable) Remove(bool)              {}

func (u unaddressable) Subscribe(string, store.Callback) store.Unsubscribe {
	return func() {}
}

// --------------------------------------------------------------------------
// Debug Bridge Target
// --------------------------------------------------------------------------

func (s *storeImpl) ReplaceState(state []byte) error {
	order, data, err := tree.ParseJSONObject(state)
	if err != nil {
		return err
	}

	s.engine.Mutate(func() (internal.Effects, bool) {
		s.data = data
		s.order = order
		s.refreshKeys()
		s.engine.Props.Flush()

		return internal.Effects{
			Action:  devtools.Action{Type: "REPLAY"},
			Notify:  true,
			All:     true,
			Signals: s.countSignals(),
		}, true
	})
	return nil
}

func (s *storeImpl) ResetState() {
	s.Reset(true)
}

func (s *storeImpl) ApplyAction(action devtools.Action) error {
	id, path := action.Key, action.Path
	if id == "" {
		id, path, _ = strings.Cut(action.Path, resolve.Separator)
	} else if path == id {
		path = ""
	} else if rest, ok := strings.CutPrefix(path, id+resolve.Separator); ok {
		// outbound actions carry the full path
		path = rest
	}

	if strings.Contains(id, resolve.Separator) {
		return fmt.Errorf("mstore: identifier %q contains the path separator", id)
	}

	switch action.Verb() {
	case devtools.VerbSet:
		if id == "" {
			return fmt.Errorf("mstore: action %q has no identifier", action.Type)
		}
		s.set(id, action.Value, true)
	case devtools.VerbUpdate:
		s.update(id, path, action.Value, true)
	case devtools.VerbRemove:
		s.remove(id, true)
	case devtools.VerbReset:
		s.Reset(true)
	case devtools.VerbClear:
		s.Clear(true)
	default:
		return fmt.Errorf("mstore: unsupported action %q", action.Type)
	}
	return nil
}
