package authcache

import (
	"errors"

	"github.com/kyrelabs/authcache/jwt"
	"github.com/kyrelabs/authcache/kv"
	"github.com/redis/go-redis/v9"
)

// Builder defines a public type used by authcache APIs.
//
// Builder instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Builder struct {
	config Config
	redis  redis.UniversalClient

	auditSink AuditSink

	built bool
}

// New describes the new operation and its observable behavior.
//
// New does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig describes the withconfig operation and its observable behavior.
//
// WithConfig does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithSecret sets the process-wide shared signing secret without replacing the
// rest of the configuration.
//
// WithSecret does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithSecret(secret []byte) *Builder {
	b.config.JWT.Secret = secret
	return b
}

// WithRedis describes the withredis operation and its observable behavior.
//
// WithRedis does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithRedis(client redis.UniversalClient) *Builder {
	b.redis = client
	return b
}

// WithAuditSink describes the withauditsink operation and its observable behavior.
//
// WithAuditSink does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	b.config.Audit.Enabled = true
	return b
}

// WithMetricsEnabled describes the withmetricsenabled operation and its observable behavior.
//
// WithMetricsEnabled does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// WithLatencyHistograms describes the withlatencyhistograms operation and its observable behavior.
//
// WithLatencyHistograms does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithLatencyHistograms(enabled bool) *Builder {
	b.config.Metrics.EnableLatencyHistograms = enabled
	return b
}

// Build describes the build operation and its observable behavior.
//
// Build may return an error when input validation, dependency calls, or security checks fail.
// Build does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) Build() (*Engine, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	cfg := cloneConfig(b.config)

	if b.redis == nil {
		return nil, errors.New("redis client required")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	verifier, err := jwt.NewVerifier(jwt.Config{
		Secret:       cfg.JWT.Secret,
		Leeway:       cfg.JWT.Leeway,
		Issuer:       cfg.JWT.Issuer,
		Audience:     cfg.JWT.Audience,
		RequireIAT:   cfg.JWT.RequireIAT,
		MaxFutureIAT: cfg.JWT.MaxFutureIAT,
	})
	if err != nil {
		return nil, err
	}

	engine := &Engine{
		config:   cfg,
		verifier: verifier,
		store:    kv.NewStore(b.redis, cfg.Store.OpTimeout),
	}

	engine.metrics = NewMetrics(cfg.Metrics)
	engine.audit = newAuditDispatcher(cfg.Audit, b.auditSink)

	b.built = true

	return engine, nil
}
