//go:build integration
// +build integration

package test

import (
	"context"
	"testing"
	"time"

	"github.com/kyrelabs/authcache"
	authjwt "github.com/kyrelabs/authcache/jwt"
	"github.com/alicebob/miniredis/v2"
	gjwt "github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
)

var integrationSecret = []byte("integration-secret")

func newIntegrationEngine(t *testing.T) (*authcache.Engine, *miniredis.Miniredis, func()) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis run failed: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	engine, err := authcache.New().
		WithSecret(integrationSecret).
		WithRedis(rdb).
		WithMetricsEnabled(true).
		Build()
	if err != nil {
		t.Fatalf("engine build failed: %v", err)
	}
	engine.Connect(context.Background())

	return engine, mr, func() {
		engine.Close()
		_ = rdb.Close()
		mr.Close()
	}
}

func signToken(t *testing.T, subject, name string, ttl time.Duration) string {
	t.Helper()

	now := time.Now()
	token := gjwt.NewWithClaims(gjwt.SigningMethodHS256, authjwt.Claims{
		Name:  name,
		Email: subject + "@example.com",
		RegisteredClaims: gjwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  gjwt.NewNumericDate(now),
			ExpiresAt: gjwt.NewNumericDate(now.Add(ttl)),
		},
	})
	signed, err := token.SignedString(integrationSecret)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}
