package test

import (
	"context"
	"net/http"
	"testing"

	"github.com/kyrelabs/authcache"
	"github.com/kyrelabs/authcache/middleware"
)

// This test intentionally guards public API compile-compat for consumers.
func TestPublicAPISurfaceCompile(t *testing.T) {
	_ = authcache.New

	var _ *authcache.Engine
	var _ authcache.Config
	var _ authcache.Identity
	var _ authcache.MetricsSnapshot
	var _ authcache.AuditSink
	var _ authcache.AuditEvent

	var _ error = authcache.ErrMissingCredential
	var _ error = authcache.ErrInvalidCredential
	var _ error = authcache.ErrSecretRequired
	var _ error = authcache.ErrEngineNotReady

	var _ func(*authcache.Engine) func(http.Handler) http.Handler = middleware.Guard
	var _ func(context.Context) (*authcache.Identity, bool) = middleware.IdentityFromContext

	var _ func(*authcache.Engine, context.Context, string) (*authcache.Identity, error) = (*authcache.Engine).Authenticate
	var _ func(*authcache.Engine, context.Context, string) (*authcache.Identity, error) = (*authcache.Engine).Resolve
	var _ func(*authcache.Engine, context.Context, string) bool = (*authcache.Engine).InvalidateSubject
	var _ func(*authcache.Engine, context.Context, string) bool = (*authcache.Engine).InvalidateToken
	var _ func(*authcache.Engine, context.Context) bool = (*authcache.Engine).Connect
}
