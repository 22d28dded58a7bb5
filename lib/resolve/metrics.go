package resolve

import "github.com/VictoriaMetrics/metrics"

var (
	pathCacheHits       = metrics.NewCounter(`rkv_resolve_cache_total{cache="path",result="hit"}`)
	pathCacheMisses     = metrics.NewCounter(`rkv_resolve_cache_total{cache="path",result="miss"}`)
	propertyCacheHits   = metrics.NewCounter(`rkv_resolve_cache_total{cache="property",result="hit"}`)
	propertyCacheMisses = metrics.NewCounter(`rkv_resolve_cache_total{cache="property",result="miss"}`)
	propertyInvalidated = metrics.NewCounter(`rkv_resolve_invalidated_total`)
)
