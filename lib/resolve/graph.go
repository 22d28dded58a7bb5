package resolve

import (
	"sync"

	"github.com/puzpuzpuz/xsync/v3"
)

// DependencyGraph maps a parent path to every descendant path resolved through it.
// The graph only grows. It is safe for concurrent use.
type DependencyGraph struct {
	edges *xsync.MapOf[string, *dependents]
}

// dependents is an insertion ordered set of paths
type dependents struct {
	mu    sync.RWMutex
	order []string
	seen  map[string]struct{}
}

// NewDependencyGraph creates an empty graph
func NewDependencyGraph() *DependencyGraph {
	return &DependencyGraph{
		edges: xsync.NewMapOf[string, *dependents](),
	}
}

// Add records that descendant was resolved through parent
func (g *DependencyGraph) Add(parent, descendant string) {
	set, _ := g.edges.LoadOrCompute(parent, func() *dependents {
		return &dependents{seen: make(map[string]struct{})}
	})

	set.mu.Lock()
	defer set.mu.Unlock()
	if _, ok := set.seen[descendant]; ok {
		return
	}
	set.seen[descendant] = struct{}{}
	set.order = append(set.order, descendant)
}

// Dependents returns the descendants of parent in the order they were first resolved.
// The returned slice is a copy.
func (g *DependencyGraph) Dependents(parent string) []string {
	set, ok := g.edges.Load(parent)
	if !ok {
		return nil
	}

	set.mu.RLock()
	defer set.mu.RUnlock()
	result := make([]string, len(set.order))
	copy(result, set.order)
	return result
}

// Has reports whether descendant was ever resolved through parent
func (g *DependencyGraph) Has(parent, descendant string) bool {
	set, ok := g.edges.Load(parent)
	if !ok {
		return false
	}
	set.mu.RLock()
	defer set.mu.RUnlock()
	_, ok = set.seen[descendant]
	return ok
}

// Len returns the number of parent paths in the graph
func (g *DependencyGraph) Len() int {
	return g.edges.Size()
}
