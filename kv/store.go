package kv

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrStoreUnavailable is an exported constant or variable used by the authentication cache.
var ErrStoreUnavailable = errors.New("store unavailable")

const defaultOpTimeout = 250 * time.Millisecond

// Store is a Redis-backed key-value adapter with a process-wide availability
// flag and a bounded per-operation timeout. It never returns transport errors:
// failures surface as a miss (Get) or false (Set, Delete).
//
//	Docs: docs/kv.md
type Store struct {
	redis     redis.UniversalClient
	opTimeout time.Duration
	available atomic.Bool
}

// NewStore creates a [Store] backed by the given Redis client. opTimeout
// bounds every round-trip; zero selects the default of 250ms.
//
//	Docs: docs/kv.md
func NewStore(client redis.UniversalClient, opTimeout time.Duration) *Store {
	if opTimeout <= 0 {
		opTimeout = defaultOpTimeout
	}
	return &Store{
		redis:     client,
		opTimeout: opTimeout,
	}
}

// Connect attempts to establish the store connection by pinging it once.
// Failure is tolerated: the store stays unavailable and every operation
// degrades to a miss until a later Connect succeeds. Connect is idempotent —
// calling it while connected is a no-op.
func (s *Store) Connect(ctx context.Context) bool {
	if s == nil || s.redis == nil {
		return false
	}
	if s.available.Load() {
		return true
	}

	opCtx, cancel := s.opContext(ctx)
	defer cancel()

	if err := s.redis.Ping(opCtx).Err(); err != nil {
		s.available.Store(false)
		return false
	}
	s.available.Store(true)
	return true
}

// Available reports whether the store is currently usable. Absence of the
// store is always a valid state for callers: the cache is advisory, never
// authoritative.
func (s *Store) Available() bool {
	return s != nil && s.available.Load()
}

// Get reads a key. The second return value is false on a miss, on transport
// failure, and while the store is unavailable; callers cannot tell these apart.
//
//	Performance: 1 Redis GET.
func (s *Store) Get(ctx context.Context, key string) (string, bool) {
	if !s.Available() {
		return "", false
	}

	opCtx, cancel := s.opContext(ctx)
	defer cancel()

	val, err := s.redis.Get(opCtx, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.available.Store(false)
		}
		return "", false
	}
	return val, true
}

// Set writes a key with the given TTL and reports whether the write landed.
// A zero TTL writes without expiry.
//
//	Performance: 1 Redis SET.
func (s *Store) Set(ctx context.Context, key, value string, ttl time.Duration) bool {
	if !s.Available() {
		return false
	}

	opCtx, cancel := s.opContext(ctx)
	defer cancel()

	if err := s.redis.Set(opCtx, key, value, ttl).Err(); err != nil {
		s.available.Store(false)
		return false
	}
	return true
}

// Delete removes a key unconditionally and reports whether the underlying
// delete reported success. Deleting an absent key is a success.
//
//	Performance: 1 Redis DEL.
func (s *Store) Delete(ctx context.Context, key string) bool {
	if !s.Available() {
		return false
	}

	opCtx, cancel := s.opContext(ctx)
	defer cancel()

	if err := s.redis.Del(opCtx, key).Err(); err != nil {
		s.available.Store(false)
		return false
	}
	return true
}

// Close marks the store unavailable. The Redis client is owned by the caller
// and is not closed here.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	s.available.Store(false)
	return nil
}

func (s *Store) opContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, s.opTimeout)
}
