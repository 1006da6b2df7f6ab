package authcache

import "errors"

var (
	// ErrMissingCredential is an exported constant or variable used by the authentication cache.
	ErrMissingCredential = errors.New("missing bearer credential")
	// ErrInvalidCredential is an exported constant or variable used by the authentication cache.
	ErrInvalidCredential = errors.New("invalid credential")
	// ErrSecretRequired is an exported constant or variable used by the authentication cache.
	ErrSecretRequired = errors.New("signing secret required")
	// ErrEngineNotReady is an exported constant or variable used by the authentication cache.
	ErrEngineNotReady = errors.New("engine not initialized")
)
