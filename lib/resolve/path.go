package resolve

import (
	"strings"

	"github.com/puzpuzpuz/xsync/v3"
)

// Separator splits a path into its segments
const Separator = "."

// PathMode selects how the first segment of a path is interpreted
type PathMode uint8

const (
	// ObjectMode treats every segment as a key inside a single record
	ObjectMode PathMode = iota
	// KeyedMode treats the first segment as the identifier of a collection entry
	KeyedMode
)

func (m PathMode) String() string {
	switch m {
	case ObjectMode:
		return "object"
	case KeyedMode:
		return "keyed"
	default:
		return "unknown"
	}
}

// PathInfo is the structural decomposition of a path.
// The slices are shared between all callers resolving the same path and must not be modified.
type PathInfo struct {
	Path     string
	Segments []string
	// MapKey is the identifier segment (KeyedMode only)
	MapKey string
	// ParentKeys are the keys to walk from the root to the container holding CurrentKey
	ParentKeys []string
	// ParentPaths are the proper ancestor paths, nearest root first
	ParentPaths []string
	// CurrentKey is the final key, empty for an identifier-only path in KeyedMode
	CurrentKey string
}

// IsIdentifier reports whether the path addresses a whole collection entry (KeyedMode only)
func (p PathInfo) IsIdentifier() bool {
	return p.MapKey != "" && len(p.Segments) == 1
}

// PathResolver decomposes and caches paths and feeds the dependency graph.
// It is safe for concurrent use.
type PathResolver struct {
	mode  PathMode
	cache *xsync.MapOf[string, PathInfo]
	graph *DependencyGraph
}

// NewPathResolver creates a resolver for the given mode
func NewPathResolver(mode PathMode) *PathResolver {
	return &PathResolver{
		mode:  mode,
		cache: xsync.NewMapOf[string, PathInfo](),
		graph: NewDependencyGraph(),
	}
}

// Mode returns the path mode of the resolver
func (r *PathResolver) Mode() PathMode {
	return r.mode
}

// Resolve returns the cached decomposition of path, computing it on first use
func (r *PathResolver) Resolve(path string) PathInfo {
	if info, ok := r.cache.Load(path); ok {
		pathCacheHits.Inc()
		return info
	}
	pathCacheMisses.Inc()
	return r.compute(path)
}

// ResolveFlush recomputes the decomposition of path and replaces the cached entry
func (r *PathResolver) ResolveFlush(path string) PathInfo {
	pathCacheMisses.Inc()
	return r.compute(path)
}

// Dependents returns every path that was ever resolved through path
func (r *PathResolver) Dependents(path string) []string {
	return r.graph.Dependents(path)
}

// Graph returns the dependency graph fed by this resolver
func (r *PathResolver) Graph() *DependencyGraph {
	return r.graph
}

// Len returns the number of cached paths
func (r *PathResolver) Len() int {
	return r.cache.Size()
}

func (r *PathResolver) compute(path string) PathInfo {
	segments := strings.Split(path, Separator)

	// prefixes[i] is the path made of segments[0..i]
	prefixes := make([]string, len(segments))
	for i, segment := range segments {
		if i == 0 {
			prefixes[i] = segment
		} else {
			prefixes[i] = prefixes[i-1] + Separator + segment
		}
	}

	info := PathInfo{
		Path:        path,
		Segments:    segments,
		ParentPaths: prefixes[:len(prefixes)-1],
	}

	switch r.mode {
	case KeyedMode:
		info.MapKey = segments[0]
		if len(segments) > 1 {
			info.ParentKeys = segments[1 : len(segments)-1]
			info.CurrentKey = segments[len(segments)-1]
		} else {
			info.ParentKeys = []string{}
		}
	default:
		info.ParentKeys = segments[:len(segments)-1]
		info.CurrentKey = segments[len(segments)-1]
	}

	r.cache.Store(path, info)

	for _, parent := range info.ParentPaths {
		r.graph.Add(parent, path)
	}

	return info
}
