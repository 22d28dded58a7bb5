package resolve

import (
	"github.com/ValentinKolb/rKV/lib/tree"
	"github.com/puzpuzpuz/xsync/v3"
)

// Roots gives the property resolver access to the three record trees of a store.
// mapKey is empty in ObjectMode. The boolean is false if the root does not exist
// (e.g. an unknown identifier in KeyedMode).
type Roots interface {
	Live(mapKey string) (any, bool)
	Fallback(mapKey string) (any, bool)
	Initial(mapKey string) (any, bool)
}

// PropertyInfo holds the containers the current key of a path is read from.
// A container is only valid if its OK flag is set.
type PropertyInfo struct {
	Live       any
	LiveOK     bool
	Fallback   any
	FallbackOK bool
	Initial    any
	InitialOK  bool
}

// PropertyResolver caches container lookups per path.
//
// Entries reference the live tree and are not refreshed automatically: callers must
// invalidate a path after changing the structure above it. The resolver itself
// performs no locking of the trees it walks.
type PropertyResolver struct {
	paths *PathResolver
	roots Roots
	cache *xsync.MapOf[string, PropertyInfo]
}

// NewPropertyResolver creates a property resolver walking roots with the decompositions of paths
func NewPropertyResolver(paths *PathResolver, roots Roots) *PropertyResolver {
	return &PropertyResolver{
		paths: paths,
		roots: roots,
		cache: xsync.NewMapOf[string, PropertyInfo](),
	}
}

// Resolve returns the cached containers for path, walking the trees on first use
func (r *PropertyResolver) Resolve(path string) PropertyInfo {
	if info, ok := r.cache.Load(path); ok {
		propertyCacheHits.Inc()
		return info
	}
	propertyCacheMisses.Inc()
	return r.compute(path)
}

// ResolveFlush walks the trees again and replaces the cached entry
func (r *PropertyResolver) ResolveFlush(path string) PropertyInfo {
	propertyCacheMisses.Inc()
	return r.compute(path)
}

// Invalidate drops the entry for path and for every path ever resolved through it
func (r *PropertyResolver) Invalidate(path string) {
	r.cache.Delete(path)
	for _, dependent := range r.paths.Dependents(path) {
		r.cache.Delete(dependent)
	}
	propertyInvalidated.Inc()
}

// Flush drops all entries
func (r *PropertyResolver) Flush() {
	r.cache.Clear()
	propertyInvalidated.Inc()
}

// Len returns the number of cached entries
func (r *PropertyResolver) Len() int {
	return r.cache.Size()
}

func (r *PropertyResolver) compute(path string) PropertyInfo {
	info := r.paths.Resolve(path)

	var result PropertyInfo
	result.Live, result.LiveOK = r.roots.Live(info.MapKey)
	result.Fallback, result.FallbackOK = r.roots.Fallback(info.MapKey)
	result.Initial, result.InitialOK = r.roots.Initial(info.MapKey)

	// once a walk hits an undefined step it stays undefined
	if result.LiveOK {
		result.Live, result.LiveOK = tree.Walk(result.Live, info.ParentKeys)
	}
	if result.FallbackOK {
		result.Fallback, result.FallbackOK = tree.Walk(result.Fallback, info.ParentKeys)
	}
	if result.InitialOK {
		result.Initial, result.InitialOK = tree.Walk(result.Initial, info.ParentKeys)
	}

	r.cache.Store(path, result)
	return result
}
