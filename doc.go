// Package authcache provides a low-latency token-verification layer that caches decoded
// identities in Redis behind a time-bounded, invalidatable cache entry.
//
// The package is designed for concurrent server workloads: Engine methods are safe to call
// from multiple goroutines after initialization through [Builder.Build].
//
// # Architecture boundaries
//
// authcache is the public surface. It exposes [Engine], [Builder], [Config], and value types
// (Identity, AuditEvent, MetricsSnapshot, etc.). Token parsing lives under jwt/ and the
// fail-soft Redis adapter under kv/; HTTP integration lives under middleware/.
//
// # What this package must NOT do
//
//   - Issue tokens. Verification only; issuance belongs to the identity provider.
//   - Treat the cache as authoritative. Every resolution must stay correct with the
//     cache empty or the store unreachable.
//   - Expose Redis clients, store errors, or encoding details past Engine methods.
//
// # Performance contract
//
// Resolve is the hot path. A cache hit costs one signature verification and one Redis
// GET; a miss adds one SET. Store outages must never add more than the configured
// per-operation timeout to request latency.
package authcache
