package middleware

import (
	"context"
	"net/http"

	"github.com/kyrelabs/authcache"
)

type identityContextKey struct{}

func IdentityFromContext(ctx context.Context) (*authcache.Identity, bool) {
	id, ok := ctx.Value(identityContextKey{}).(*authcache.Identity)
	return id, ok
}

func Guard(engine *authcache.Engine) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if engine == nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			id, err := engine.Authenticate(r.Context(), r.Header.Get("Authorization"))
			if err != nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), identityContextKey{}, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
