// Package middleware exposes the HTTP adapter for authcache: a guard that
// authenticates each request and injects the resolved identity into the
// request context.
//
// # Guards
//
//   - [Guard] — reads the Authorization header, calls Engine.Authenticate, and
//     rejects with a bare 401 on any auth error.
//
// Downstream handlers recover the identity with [IdentityFromContext].
//
// # Architecture boundaries
//
// This package translates HTTP semantics into Engine calls. It does NOT
// implement authentication logic itself — all decisions are delegated to
// Engine.Authenticate.
//
// # What this package must NOT do
//
//   - Parse or verify tokens directly (delegates to Engine).
//   - Access Redis (Engine handles I/O).
//   - Leak verification failure detail to the caller; every rejection is the
//     same unauthenticated response.
package middleware
