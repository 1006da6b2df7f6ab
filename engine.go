package authcache

import (
	"context"
	"strings"
	"time"

	"github.com/kyrelabs/authcache/jwt"
	"github.com/kyrelabs/authcache/kv"
)

// Engine defines a public type used by authcache APIs.
//
// Engine instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Engine struct {
	config   Config
	verifier *jwt.Verifier
	store    *kv.Store
	audit    *auditDispatcher
	metrics  *Metrics
}

// Connect attempts to establish the backing store connection. It is invoked
// once at process startup, is idempotent, and tolerates failure: an engine
// without a reachable store still resolves every valid token directly from
// verification.
//
// Connect does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) Connect(ctx context.Context) bool {
	if e == nil || e.store == nil {
		return false
	}
	return e.store.Connect(ctx)
}

// StoreAvailable describes the storeavailable operation and its observable behavior.
//
// StoreAvailable does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) StoreAvailable() bool {
	return e != nil && e.store.Available()
}

// Close describes the close operation and its observable behavior.
//
// Close does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) Close() {
	if e == nil {
		return
	}
	if e.audit != nil {
		e.audit.Close()
	}
	if e.store != nil {
		_ = e.store.Close()
	}
}

// AuditDropped describes the auditdropped operation and its observable behavior.
//
// AuditDropped does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) AuditDropped() uint64 {
	if e == nil || e.audit == nil {
		return 0
	}
	return e.audit.Dropped()
}

// MetricsSnapshot describes the metricssnapshot operation and its observable behavior.
//
// MetricsSnapshot does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) MetricsSnapshot() MetricsSnapshot {
	if e == nil || e.metrics == nil {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}
	return e.metrics.Snapshot()
}

func (e *Engine) metricInc(id MetricID) {
	if e == nil || e.metrics == nil {
		return
	}
	e.metrics.Inc(id)
}

// Authenticate is the request-facing entry point. It extracts a bearer
// credential from the raw Authorization header value, resolves it, and returns
// the identity or one of the two terminal auth errors ([ErrMissingCredential],
// [ErrInvalidCredential]). No other error ever escapes.
//
// Authenticate may return an error when input validation, dependency calls, or security checks fail.
// Authenticate does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) Authenticate(ctx context.Context, authorization string) (*Identity, error) {
	if e == nil {
		return nil, ErrEngineNotReady
	}

	token, ok := bearerToken(authorization)
	if !ok {
		e.metricInc(MetricMissingCredential)
		e.emitAudit(ctx, auditEventMissingCredential, false, "", "", ErrMissingCredential, nil)
		return nil, ErrMissingCredential
	}

	return e.Resolve(ctx, token)
}

// Resolve verifies a token and returns its identity record, serving it from
// the backing store when a live cache entry exists and rebuilding it from the
// verified claims otherwise. The cache is advisory: a miss, a corrupt entry,
// or an unreachable store all degrade to direct verification, and a failed
// write-back is swallowed.
//
// An invalid token never touches the cache — it can neither populate an entry
// nor be satisfied by one.
//
// Resolve may return an error when input validation, dependency calls, or security checks fail.
// Resolve does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) Resolve(ctx context.Context, tokenStr string) (*Identity, error) {
	if e == nil {
		return nil, ErrEngineNotReady
	}
	if e.metrics != nil && e.metrics.LatencyEnabled() {
		start := time.Now()
		defer e.metrics.Observe(MetricResolveLatency, time.Since(start))
	}

	claims, err := e.verifier.Verify(tokenStr)
	if err != nil {
		e.metricInc(MetricResolveRejected)
		e.emitAudit(ctx, auditEventResolveRejected, false, "", "", ErrInvalidCredential, nil)
		return nil, ErrInvalidCredential
	}

	cacheID, ok := claimsCacheID(claims)
	if !ok {
		// Signed but carries neither subject nor email: no identity to attach.
		e.metricInc(MetricResolveRejected)
		e.emitAudit(ctx, auditEventResolveRejected, false, "", "", ErrInvalidCredential, nil)
		return nil, ErrInvalidCredential
	}
	key := e.config.Cache.KeyPrefix + cacheID

	if raw, found := e.store.Get(ctx, key); found {
		if id, decodeErr := DecodeIdentity([]byte(raw)); decodeErr == nil {
			e.metricInc(MetricCacheHit)
			e.metricInc(MetricResolveSuccess)
			e.emitAudit(ctx, auditEventResolveSuccess, true, cacheID, key, nil, func() map[string]string {
				return map[string]string{"cache": "hit"}
			})
			return id, nil
		}
		// Corrupt entry: treat as a miss and overwrite below.
	}

	if !e.store.Available() {
		e.metricInc(MetricStoreUnavailable)
	}
	e.metricInc(MetricCacheMiss)

	id := identityFromClaims(claims)

	if ttl := e.entryTTL(claims, time.Now()); ttl > 0 {
		if data, encodeErr := EncodeIdentity(id); encodeErr == nil {
			if !e.store.Set(ctx, key, string(data), ttl) {
				e.metricInc(MetricCacheWriteFailed)
			}
		}
	}

	e.metricInc(MetricResolveSuccess)
	e.emitAudit(ctx, auditEventResolveSuccess, true, cacheID, key, nil, func() map[string]string {
		return map[string]string{"cache": "miss"}
	})

	return id, nil
}

// InvalidateSubject deletes the cache entry for a subject (or email, for claim
// sets that lack a subject) unconditionally and reports whether the delete
// landed. Callers must have already authenticated the identity they are
// invalidating; no token is required here.
//
// InvalidateSubject does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) InvalidateSubject(ctx context.Context, subjectOrEmail string) bool {
	if e == nil || subjectOrEmail == "" {
		return false
	}

	key := e.config.Cache.KeyPrefix + subjectOrEmail
	ok := e.store.Delete(ctx, key)

	if ok {
		e.metricInc(MetricInvalidate)
	} else {
		e.metricInc(MetricInvalidateFailed)
	}
	e.emitAudit(ctx, auditEventCacheInvalidate, ok, subjectOrEmail, key, nil, nil)

	return ok
}

// InvalidateToken re-verifies a token to recover its subject and delegates to
// [Engine.InvalidateSubject]. It reports false when verification fails.
//
// InvalidateToken does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) InvalidateToken(ctx context.Context, tokenStr string) bool {
	if e == nil {
		return false
	}

	claims, err := e.verifier.Verify(tokenStr)
	if err != nil {
		return false
	}
	cacheID, ok := claimsCacheID(claims)
	if !ok {
		return false
	}

	return e.InvalidateSubject(ctx, cacheID)
}

// entryTTL computes the store-enforced lifetime of a cache entry: the token's
// remaining lifetime capped at MaxTTL, or DefaultTTL when the claim set has no
// expiry. A non-positive result (possible inside verification leeway) means
// the entry is not written at all.
func (e *Engine) entryTTL(claims *jwt.Claims, now time.Time) time.Duration {
	if claims.ExpiresAt == nil {
		return e.config.Cache.DefaultTTL
	}

	ttl := claims.ExpiresAt.Time.Sub(now)
	if ttl > e.config.Cache.MaxTTL {
		ttl = e.config.Cache.MaxTTL
	}
	return ttl
}

// claimsCacheID picks the cache identifier: subject when present, email as a
// fallback. Subject wins because it is provider-stable.
func claimsCacheID(claims *jwt.Claims) (string, bool) {
	if claims.Subject != "" {
		return claims.Subject, true
	}
	if claims.Email != "" {
		return claims.Email, true
	}
	return "", false
}

func identityFromClaims(claims *jwt.Claims) *Identity {
	return &Identity{
		Subject: claims.Subject,
		Name:    claims.Name,
		Email:   claims.Email,
		Picture: claims.Picture,
	}
}

func bearerToken(value string) (string, bool) {
	const bearer = "Bearer "
	if !strings.HasPrefix(value, bearer) {
		return "", false
	}

	token := value[len(bearer):]
	if token == "" {
		return "", false
	}

	return token, true
}
