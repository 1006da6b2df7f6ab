// Package kv provides a fail-soft key-value adapter over Redis for identity cache
// entries.
//
// Every operation degrades instead of failing: reads return a miss and writes or
// deletes report false when the store is unreachable. Transport errors are caught
// at this boundary and converted into unavailability — they never reach callers.
//
// # Availability
//
// [Store.Connect] is attempted once at process startup and is idempotent. While
// the store is flagged unavailable no I/O is attempted at all; a later Connect
// restores availability. This keeps the degradation path deterministic: the
// caller decides when reconnection is attempted, never a request in flight.
package kv
