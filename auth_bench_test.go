package authcache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	gjwt "github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"

	"github.com/kyrelabs/authcache/jwt"
)

func newBenchEngine(b *testing.B) (*Engine, string) {
	b.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		b.Fatalf("miniredis run failed: %v", err)
	}
	b.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	b.Cleanup(func() { _ = rdb.Close() })

	engine, err := New().
		WithSecret(testSecret).
		WithRedis(rdb).
		Build()
	if err != nil {
		b.Fatalf("Build failed: %v", err)
	}
	b.Cleanup(engine.Close)
	engine.Connect(context.Background())

	tok := gjwt.NewWithClaims(gjwt.SigningMethodHS256, jwt.Claims{
		Name:  "Bench User",
		Email: "bench@example.com",
		RegisteredClaims: gjwt.RegisteredClaims{
			Subject:   "bench-user",
			ExpiresAt: gjwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	token, err := tok.SignedString(testSecret)
	if err != nil {
		b.Fatalf("sign token: %v", err)
	}

	return engine, token
}

func BenchmarkResolveCacheHit(b *testing.B) {
	engine, token := newBenchEngine(b)
	ctx := context.Background()

	if _, err := engine.Resolve(ctx, token); err != nil {
		b.Fatalf("warmup Resolve failed: %v", err)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := engine.Resolve(ctx, token); err != nil {
			b.Fatalf("Resolve failed: %v", err)
		}
	}
}

func BenchmarkResolveCacheMiss(b *testing.B) {
	engine, token := newBenchEngine(b)
	ctx := context.Background()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		engine.InvalidateSubject(ctx, "bench-user")
		if _, err := engine.Resolve(ctx, token); err != nil {
			b.Fatalf("Resolve failed: %v", err)
		}
	}
}
