package authcache

import (
	"errors"
	"time"
)

// Config defines a public type used by authcache APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	JWT     JWTConfig
	Cache   CacheConfig
	Store   StoreConfig
	Audit   AuditConfig
	Metrics MetricsConfig
}

/*
====================================
JWT CONFIG
====================================
*/

// JWTConfig defines a public type used by authcache APIs.
//
// JWTConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type JWTConfig struct {
	// Secret is the process-wide HS256 shared secret. Verification cannot be
	// enabled without it; [Builder.Build] fails fast when it is absent.
	Secret       []byte
	Leeway       time.Duration
	Issuer       string
	Audience     string
	RequireIAT   bool
	MaxFutureIAT time.Duration
}

/*
====================================
CACHE CONFIG
====================================
*/

// CacheConfig defines a public type used by authcache APIs.
//
// CacheConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type CacheConfig struct {
	// KeyPrefix namespaces identity entries in the backing store. Entries are
	// written as KeyPrefix + subject (or email when the subject is absent).
	KeyPrefix string
	// DefaultTTL applies when a verified claim set carries no expiry.
	DefaultTTL time.Duration
	// MaxTTL is the hard ceiling on any entry lifetime regardless of how far
	// out the token expiry lies.
	MaxTTL time.Duration
}

/*
====================================
STORE CONFIG
====================================
*/

// StoreConfig defines a public type used by authcache APIs.
//
// StoreConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type StoreConfig struct {
	// OpTimeout bounds every store round-trip so a degraded store cannot
	// inflate request latency beyond verification cost.
	OpTimeout time.Duration
}

/*
====================================
AUDIT CONFIG
====================================
*/

// AuditConfig defines a public type used by authcache APIs.
//
// AuditConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

/*
====================================
METRICS CONFIG
====================================
*/

// MetricsConfig defines a public type used by authcache APIs.
//
// MetricsConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricsConfig struct {
	Enabled                 bool
	EnableLatencyHistograms bool
}

// DefaultConfig returns the recommended starting configuration. The JWT
// secret is intentionally left empty and must be supplied by the caller.
//
//	Docs: docs/config.md
func DefaultConfig() Config {
	return defaultConfig()
}

func defaultConfig() Config {
	return Config{
		JWT: JWTConfig{
			Leeway:       0,
			MaxFutureIAT: 10 * time.Minute,
		},
		Cache: CacheConfig{
			KeyPrefix:  "user:",
			DefaultTTL: 900 * time.Second,
			MaxTTL:     30 * 24 * time.Hour,
		},
		Store: StoreConfig{
			OpTimeout: 250 * time.Millisecond,
		},
		Audit: AuditConfig{
			Enabled:    false,
			BufferSize: 1024,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled:                 false,
			EnableLatencyHistograms: false,
		},
	}
}

func cloneConfig(cfg Config) Config {
	out := cfg
	if cfg.JWT.Secret != nil {
		out.JWT.Secret = make([]byte, len(cfg.JWT.Secret))
		copy(out.JWT.Secret, cfg.JWT.Secret)
	}
	return out
}

// Validate describes the validate operation and its observable behavior.
//
// Validate may return an error when input validation, dependency calls, or security checks fail.
// Validate does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Config) Validate() error {
	// JWT
	if len(c.JWT.Secret) == 0 {
		return ErrSecretRequired
	}
	if c.JWT.Leeway < 0 || c.JWT.Leeway > 2*time.Minute {
		return errors.New("JWT Leeway must be between 0 and 2 minutes")
	}
	if c.JWT.MaxFutureIAT < 0 || c.JWT.MaxFutureIAT > 24*time.Hour {
		return errors.New("JWT MaxFutureIAT must be between 0 and 24 hours")
	}

	// Cache
	if c.Cache.KeyPrefix == "" {
		return errors.New("Cache KeyPrefix must not be empty")
	}
	if c.Cache.DefaultTTL <= 0 {
		return errors.New("Cache DefaultTTL must be > 0")
	}
	if c.Cache.MaxTTL <= 0 {
		return errors.New("Cache MaxTTL must be > 0")
	}
	if c.Cache.DefaultTTL > c.Cache.MaxTTL {
		return errors.New("Cache DefaultTTL must not exceed MaxTTL")
	}

	// Store
	if c.Store.OpTimeout <= 0 {
		return errors.New("Store OpTimeout must be > 0")
	}

	// Audit
	if c.Audit.Enabled && c.Audit.BufferSize <= 0 {
		return errors.New("Audit BufferSize must be > 0 when Audit is enabled")
	}

	return nil
}
