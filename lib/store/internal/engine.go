package internal

import (
	"fmt"
	"sync"

	"github.com/ValentinKolb/rKV/lib/devtools"
	"github.com/ValentinKolb/rKV/lib/notify"
	"github.com/ValentinKolb/rKV/lib/resolve"
	"github.com/ValentinKolb/rKV/lib/store"
	"github.com/VictoriaMetrics/metrics"
	"github.com/lni/dragonboat/v4/logger"
)

var Logger = logger.GetLogger("store")

// Effects describe what happens after a mutation was applied
type Effects struct {
	// Action is reported to the debug bridge
	Action devtools.Action
	// Notify is false if the caller suppressed notifications
	Notify bool
	// Cascade paths notify themselves, their ancestors and their dependents
	Cascade []resolve.PathInfo
	// All notifies every subscribed path
	All bool
	// Signals are notified after the paths
	Signals []*notify.Signal
}

// Engine is the shared core of the store variants
type Engine struct {
	kind string
	mu   sync.RWMutex

	Paths  *resolve.PathResolver
	Props  *resolve.PropertyResolver
	Subs   *notify.Registry
	Bridge *devtools.Bridge

	snapshot func() any
}

// NewEngine creates an engine for kind ("object" or "map").
// snapshot is called under the read lock and must return a deep copy of the live data.
func NewEngine(kind string, mode resolve.PathMode, roots resolve.Roots, snapshot func() any) *Engine {
	paths := resolve.NewPathResolver(mode)
	return &Engine{
		kind:     kind,
		Paths:    paths,
		Props:    resolve.NewPropertyResolver(paths, roots),
		Subs:     notify.NewRegistry(),
		snapshot: snapshot,
	}
}

// AttachBridge opens the debugging session if configured.
// Failures are logged, a store without a session is fully functional.
func (e *Engine) AttachBridge(ext devtools.Extension, name string, opts devtools.ConnectOptions, target devtools.Target) {
	if opts.MaxAge <= 0 {
		opts.MaxAge = devtools.DefaultMaxAge
	}

	e.mu.RLock()
	state := e.snapshot()
	e.mu.RUnlock()

	bridge, err := devtools.Attach(ext, name, opts, target, state)
	if err != nil {
		Logger.Errorf("failed to attach %s store to debug session %q: %v", e.kind, name, err)
		return
	}
	e.Bridge = bridge
}

// Read runs fn under the read lock
func (e *Engine) Read(fn func()) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	fn()
}

// Mutate runs fn under the write lock. If fn reports a change, the action is sent to
// the debug bridge (with a snapshot taken under the same lock) and the effects are
// applied after the lock was released.
func (e *Engine) Mutate(fn func() (Effects, bool)) {
	e.mu.Lock()
	effects, changed := fn()
	var state any
	if changed && e.Bridge.Active() {
		state = e.snapshot()
	}
	e.mu.Unlock()

	if !changed {
		return
	}
	opCounter(e.kind, string(effects.Action.Verb())).Inc()

	if state != nil {
		e.Bridge.Send(effects.Action, state)
	}
	e.Apply(effects)
}

// Apply runs the notifications described by effects
func (e *Engine) Apply(effects Effects) {
	if !effects.Notify {
		return
	}

	if effects.All {
		e.Subs.NotifyAll()
	} else {
		for _, info := range effects.Cascade {
			e.Subs.NotifyCascade(info)
			e.Subs.NotifyDependents(e.Paths.Dependents(info.Path))
		}
	}

	for _, signal := range effects.Signals {
		signal.Notify()
	}
}

// Subscribe registers cb on path. The path is resolved first so it takes part in
// dependent notification of its ancestors.
func (e *Engine) Subscribe(path string, cb store.Callback) store.Unsubscribe {
	e.Paths.Resolve(path)
	return e.Subs.Subscribe(path, cb)
}

// Snapshot returns a deep copy of the live data
func (e *Engine) Snapshot() any {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.snapshot()
}

// NextValue returns the value to store for a literal or an updater
func NextValue(valueOrUpdater any, prev any, ok bool) any {
	switch fn := valueOrUpdater.(type) {
	case store.Updater:
		return fn(prev, ok)
	case func(prev any, ok bool) any:
		return fn(prev, ok)
	case func(prev any) any:
		return fn(prev)
	default:
		return valueOrUpdater
	}
}

func opCounter(kind, verb string) *metrics.Counter {
	return metrics.GetOrCreateCounter(fmt.Sprintf(`rkv_store_ops_total{store=%q,op=%q}`, kind, verb))
}
