// Package prometheus provides Prometheus collectors for authcache metrics.
//
// [NewPrometheusExporter] accepts an [authcache.Engine] and exposes an [http.Handler]
// that renders all authcache counters and histograms in Prometheus text exposition
// format. Counter names are prefixed authcache_*_total; the single histogram is
// authcache_resolve_latency_seconds.
//
// # What this package must NOT do
//
//   - Register metrics in a global Prometheus registry — callers mount the Handler.
//   - Mutate engine state.
package prometheus
