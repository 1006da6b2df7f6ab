package internaldefs

import (
	"github.com/kyrelabs/authcache"
)

// CounterDef defines a public type used by authcache APIs.
//
// CounterDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type CounterDef struct {
	ID   authcache.MetricID
	Name string
	Help string
}

// HistogramDef defines a public type used by authcache APIs.
//
// HistogramDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type HistogramDef struct {
	ID   authcache.MetricID
	Name string
	Help string
}

// CounterDefs is an exported constant or variable used by the authentication cache.
var CounterDefs = []CounterDef{
	{ID: authcache.MetricResolveSuccess, Name: "authcache_resolve_success_total", Help: "Token resolutions that produced an identity."},
	{ID: authcache.MetricResolveRejected, Name: "authcache_resolve_rejected_total", Help: "Token resolutions rejected as invalid."},
	{ID: authcache.MetricMissingCredential, Name: "authcache_missing_credential_total", Help: "Requests with no usable bearer credential."},
	{ID: authcache.MetricCacheHit, Name: "authcache_cache_hit_total", Help: "Identity lookups served from cache."},
	{ID: authcache.MetricCacheMiss, Name: "authcache_cache_miss_total", Help: "Identity lookups rebuilt from token claims."},
	{ID: authcache.MetricCacheWriteFailed, Name: "authcache_cache_write_failed_total", Help: "Cache write-through attempts that failed."},
	{ID: authcache.MetricStoreUnavailable, Name: "authcache_store_unavailable_total", Help: "Cache reads skipped because the store was unavailable."},
	{ID: authcache.MetricInvalidate, Name: "authcache_invalidate_total", Help: "Cache invalidation operations."},
	{ID: authcache.MetricInvalidateFailed, Name: "authcache_invalidate_failed_total", Help: "Cache invalidation operations that failed."},
}

// HistogramDefs is an exported constant or variable used by the authentication cache.
var HistogramDefs = []HistogramDef{
	{ID: authcache.MetricResolveLatency, Name: "authcache_resolve_latency_seconds", Help: "Resolve latency histogram."},
}

// HistogramBounds is an exported constant or variable used by the authentication cache.
var HistogramBounds = []string{
	"0.005",
	"0.01",
	"0.025",
	"0.05",
	"0.1",
	"0.25",
	"0.5",
	"+Inf",
}

// HistogramBoundSuffix is an exported constant or variable used by the authentication cache.
var HistogramBoundSuffix = []string{
	"0_005",
	"0_01",
	"0_025",
	"0_05",
	"0_1",
	"0_25",
	"0_5",
	"inf",
}

// NormalizeBuckets describes the normalizebuckets operation and its observable behavior.
//
// NormalizeBuckets may return an error when input validation, dependency calls, or security checks fail.
// NormalizeBuckets does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

// CumulativeBuckets describes the cumulativebuckets operation and its observable behavior.
//
// CumulativeBuckets may return an error when input validation, dependency calls, or security checks fail.
// CumulativeBuckets does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	return out
}
