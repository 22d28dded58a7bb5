package notify

import (
	"slices"
	"sync"
	"sync/atomic"

	"github.com/ValentinKolb/rKV/lib/resolve"
	"github.com/VictoriaMetrics/metrics"
	"github.com/puzpuzpuz/xsync/v3"
)

var callbacksInvoked = metrics.NewCounter(`rkv_notify_callbacks_total`)

// Callback is invoked when an observed value changed
type Callback func()

// Unsubscribe removes a registration. Calling it more than once is a no-op.
type Unsubscribe func()

type subscription struct {
	id uint64
	cb Callback
}

// Registry maps exact paths to their observers. It is safe for concurrent use.
type Registry struct {
	// the slices are copy-on-write, a loaded slice is never modified
	subs   *xsync.MapOf[string, []subscription]
	nextID atomic.Uint64
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		subs: xsync.NewMapOf[string, []subscription](),
	}
}

// Subscribe registers cb on path. A nil callback is ignored.
func (r *Registry) Subscribe(path string, cb Callback) Unsubscribe {
	if cb == nil {
		return func() {}
	}

	sub := subscription{id: r.nextID.Add(1), cb: cb}
	r.subs.Compute(path, func(old []subscription, _ bool) ([]subscription, bool) {
		next := make([]subscription, len(old), len(old)+1)
		copy(next, old)
		return append(next, sub), false
	})

	var once sync.Once
	return func() {
		once.Do(func() { r.remove(path, sub.id) })
	}
}

func (r *Registry) remove(path string, id uint64) {
	r.subs.Compute(path, func(old []subscription, loaded bool) ([]subscription, bool) {
		if !loaded {
			return nil, true
		}
		next := make([]subscription, 0, len(old))
		for _, s := range old {
			if s.id != id {
				next = append(next, s)
			}
		}
		// empty sets are dropped
		return next, len(next) == 0
	})
}

// NotifyExact invokes every callback registered on exactly path.
// Returns the number of invoked callbacks.
func (r *Registry) NotifyExact(path string) int {
	subs, ok := r.subs.Load(path)
	if !ok {
		return 0
	}
	for _, s := range subs {
		s.cb()
	}
	callbacksInvoked.Add(len(subs))
	return len(subs)
}

// NotifyCascade invokes the observers of the path described by info and
// then those of each parent path, nearest root first
func (r *Registry) NotifyCascade(info resolve.PathInfo) int {
	target := info.Path
	if info.IsIdentifier() {
		target = info.MapKey
	}

	n := r.NotifyExact(target)
	for _, parent := range info.ParentPaths {
		n += r.NotifyExact(parent)
	}
	return n
}

// NotifyDependents invokes the observers of every path in dependents
func (r *Registry) NotifyDependents(dependents []string) int {
	n := 0
	for _, path := range dependents {
		n += r.NotifyExact(path)
	}
	return n
}

// NotifyAll invokes every registered observer once, ordered by path
func (r *Registry) NotifyAll() int {
	n := 0
	for _, path := range r.Paths() {
		n += r.NotifyExact(path)
	}
	return n
}

// Paths returns all paths with at least one observer in sorted order
func (r *Registry) Paths() []string {
	paths := make([]string, 0, r.subs.Size())
	r.subs.Range(func(path string, _ []subscription) bool {
		paths = append(paths, path)
		return true
	})
	slices.Sort(paths)
	return paths
}

// Len returns the number of paths with at least one observer
func (r *Registry) Len() int {
	return r.subs.Size()
}

// Count returns the number of observers registered on path
func (r *Registry) Count(path string) int {
	subs, _ := r.subs.Load(path)
	return len(subs)
}
