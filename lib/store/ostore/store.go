package ostore

import (
	"fmt"

	"github.com/ValentinKolb/rKV/lib/devtools"
	"github.com/ValentinKolb/rKV/lib/resolve"
	"github.com/ValentinKolb/rKV/lib/store"
	"github.com/ValentinKolb/rKV/lib/store/internal"
	"github.com/ValentinKolb/rKV/lib/tree"
)

type storeImpl struct {
	engine   *internal.Engine
	data     map[string]any
	initial  map[string]any
	fallback map[string]any
}

// NewObjectStore creates a new object store with the specified options (optional).
// Initial and fallback data are deep copied.
func NewObjectStore(opts *store.Options) store.IStore {
	if opts == nil {
		opts = store.DefaultOptions()
	}

	s := &storeImpl{
		initial:  tree.CloneMap(opts.InitialData),
		fallback: tree.CloneMap(opts.FallbackData),
	}
	s.data = tree.CloneMap(s.initial)
	s.engine = internal.NewEngine("object", resolve.ObjectMode, s, func() any { return tree.CloneMap(s.data) })
	s.engine.AttachBridge(opts.DevTools, opts.DevToolsName, opts.DevToolsOptions, s)

	return s
}

// --------------------------------------------------------------------------
// Roots (used by the property resolver, called under the engine lock)
// --------------------------------------------------------------------------

func (s *storeImpl) Live(string) (any, bool)     { return s.data, true }
func (s *storeImpl) Fallback(string) (any, bool) { return s.fallback, true }
func (s *storeImpl) Initial(string) (any, bool)  { return s.initial, true }

// --------------------------------------------------------------------------
// Interface Methods (docu see store/interface.go)
// --------------------------------------------------------------------------

func (s *storeImpl) Get(path string) (value any, ok bool) {
	s.engine.Read(func() {
		info := s.engine.Paths.Resolve(path)
		prop := s.engine.Props.Resolve(path)

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

func (s *storeImpl) Set(path string, value any, notify bool) {
	s.engine.Mutate(func() (internal.Effects, bool) {
		info := s.engine.Paths.Resolve(path)
		prop := s.engine.Props.Resolve(path)

		container := prop.Live
		if !prop.LiveOK {
			var ok bool
			if container, ok = s.materialize(info); !ok {
				return internal.Effects{}, false
			}
		}
		if !tree.Assign(container, info.CurrentKey, value) {
			return internal.Effects{}, false
		}
		s.engine.Props.Invalidate(path)

		return internal.Effects{
			Action:  devtools.NewAction(devtools.VerbSet, path, "", value),
			Notify:  notify,
			Cascade: []resolve.PathInfo{info},
		}, true
	})
}

// materialize creates the missing maps along the parent keys of info and returns
// the container of the final key. It fails if a parent exists but is not a container.
func (s *storeImpl) materialize(info resolve.PathInfo) (any, bool) {
	var parent any = s.data
	for i, key := range info.ParentKeys {
		next, ok := tree.Lookup(parent, key)
		if !ok {
			next = map[string]any{}
			if !tree.Assign(parent, key, next) {
				return nil, false
			}
			// entries resolved below the new map are stale now
			s.engine.Props.Invalidate(info.ParentPaths[i])
		}
		parent = next
	}
	return parent, tree.IsContainer(parent)
}

func (s *storeImpl) Update(path string, valueOrUpdater any, notify bool) {
	s.engine.Mutate(func() (internal.Effects, bool) {
		info := s.engine.Paths.Resolve(path)
		prop := s.engine.Props.Resolve(path)
		if !prop.LiveOK || !tree.IsContainer(prop.Live) {
			return internal.Effects{}, false
		}

		prev, ok := tree.Lookup(prop.Live, info.CurrentKey)
		next := internal.NextValue(valueOrUpdater, prev, ok)
		if !tree.Assign(prop.Live, info.CurrentKey, next) {
			return internal.Effects{}, false
		}
		s.engine.Props.Invalidate(path)

		return internal.Effects{
			Action:  devtools.NewAction(devtools.VerbUpdate, path, "", next),
			Notify:  notify,
			Cascade: []resolve.PathInfo{info},
		}, true
	})
}

func (s *storeImpl) Remove(path string, notify bool) {
	s.engine.Mutate(func() (internal.Effects, bool) {
		info := s.engine.Paths.Resolve(path)
		prop := s.engine.Props.Resolve(path)
		if !prop.LiveOK || !tree.Delete(prop.Live, info.CurrentKey) {
			return internal.Effects{}, false
		}
		s.engine.Props.Invalidate(path)

		return internal.Effects{
			Action:  devtools.NewAction(devtools.VerbRemove, path, "", nil),
			Notify:  notify,
			Cascade: []resolve.PathInfo{info},
		}, true
	})
}

func (s *storeImpl) Reset(notify bool) {
	s.engine.Mutate(func() (internal.Effects, bool) {
		s.data = tree.CloneMap(s.initial)
		s.engine.Props.Flush()

		return internal.Effects{
			Action: devtools.NewAction(devtools.VerbReset, "", "", nil),
			Notify: notify,
			All:    true,
		}, true
	})
}

func (s *storeImpl) Subscribe(path string, cb store.Callback) store.Unsubscribe {
	return s.engine.Subscribe(path, cb)
}

func (s *storeImpl) Snapshot() map[string]any {
	return s.engine.Snapshot().(map[string]any)
}

// --------------------------------------------------------------------------
// Debug Bridge Target
// --------------------------------------------------------------------------

func (s *storeImpl) ReplaceState(state []byte) error {
	parsed, err := tree.ParseJSON(state)
	if err != nil {
		return err
	}
	data, ok := parsed.(map[string]any)
	if !ok {
		return fmt.Errorf("ostore: expected a JSON object as state, got %T", parsed)
	}

	s.engine.Mutate(func() (internal.Effects, bool) {
		s.data = data
		s.engine.Props.Flush()

		return internal.Effects{
			Action: devtools.Action{Type: "REPLAY"},
			Notify: true,
			All:    true,
		}, true
	})
	return nil
}

func (s *storeImpl) ResetState() {
	s.Reset(true)
}

func (s *storeImpl) ApplyAction(action devtools.Action) error {
	switch action.Verb() {
	case devtools.VerbSet:
		s.Set(action.Path, action.Value, true)
	case devtools.VerbUpdate:
		s.Update(action.Path, action.Value, true)
	case devtools.VerbRemove:
		s.Remove(action.Path, true)
	case devtools.VerbReset:
		s.Reset(true)
	default:
		return fmt.Errorf("ostore: action %q is not supported by an object store", action.Type)
	}
	return nil
}
