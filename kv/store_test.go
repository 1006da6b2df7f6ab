package kv

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis run failed: %v", err)
	}
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	store := NewStore(rdb, time.Second)
	if !store.Connect(context.Background()) {
		t.Fatal("expected Connect to succeed against miniredis")
	}
	return store, mr
}

func TestStoreRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	if _, ok := store.Get(ctx, "user:u1"); ok {
		t.Fatal("expected miss on empty store")
	}

	if !store.Set(ctx, "user:u1", `{"sub":"u1"}`, time.Hour) {
		t.Fatal("expected set to succeed")
	}

	val, ok := store.Get(ctx, "user:u1")
	if !ok || val != `{"sub":"u1"}` {
		t.Fatalf("expected stored value back, got %q ok=%v", val, ok)
	}
}

func TestStoreSetAppliesTTL(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	if !store.Set(ctx, "user:u1", "v", 900*time.Second) {
		t.Fatal("expected set to succeed")
	}
	if ttl := mr.TTL("user:u1"); ttl != 900*time.Second {
		t.Fatalf("expected 900s TTL at the store, got %v", ttl)
	}

	mr.FastForward(901 * time.Second)
	if _, ok := store.Get(ctx, "user:u1"); ok {
		t.Fatal("expected entry to expire at the store")
	}
}

func TestStoreDeleteIsIdempotent(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	store.Set(ctx, "user:u1", "v", time.Hour)

	if !store.Delete(ctx, "user:u1") {
		t.Fatal("expected delete of existing key to succeed")
	}
	if _, ok := store.Get(ctx, "user:u1"); ok {
		t.Fatal("expected key to be gone after delete")
	}
	if !store.Delete(ctx, "user:u1") {
		t.Fatal("expected delete of absent key to report success")
	}
}

func TestStoreUnavailableSkipsIO(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis run failed: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	store := NewStore(rdb, 100*time.Millisecond)
	ctx := context.Background()

	if !store.Connect(ctx) {
		t.Fatal("expected Connect to succeed")
	}
	store.Set(ctx, "user:u1", "v", time.Hour)

	// Kill the backing store: the first op converts the transport error into
	// unavailability, later ops degrade without I/O.
	mr.Close()

	if _, ok := store.Get(ctx, "user:u1"); ok {
		t.Fatal("expected miss once the store is down")
	}
	if store.Available() {
		t.Fatal("expected store to be flagged unavailable after transport error")
	}
	if store.Set(ctx, "user:u1", "v", time.Hour) {
		t.Fatal("expected set to report failure while unavailable")
	}
	if store.Delete(ctx, "user:u1") {
		t.Fatal("expected delete to report failure while unavailable")
	}
}

func TestStoreConnectFailureTolerated(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	t.Cleanup(func() { _ = rdb.Close() })

	store := NewStore(rdb, 100*time.Millisecond)
	ctx := context.Background()

	if store.Connect(ctx) {
		t.Fatal("expected Connect to fail against a dead address")
	}
	if store.Available() {
		t.Fatal("expected store to stay unavailable")
	}
	if _, ok := store.Get(ctx, "user:u1"); ok {
		t.Fatal("expected miss while unavailable")
	}
}

func TestStoreConnectIsIdempotent(t *testing.T) {
	store, _ := newTestStore(t)

	for i := 0; i < 3; i++ {
		if !store.Connect(context.Background()) {
			t.Fatal("expected repeated Connect to stay connected")
		}
	}
}
