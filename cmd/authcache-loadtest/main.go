package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/kyrelabs/authcache"
	authjwt "github.com/kyrelabs/authcache/jwt"

	"github.com/alicebob/miniredis/v2"
	gjwt "github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
)

func main() {
	var (
		users       = flag.Int("users", 10000, "number of distinct users to mint tokens for")
		concurrency = flag.Int("concurrency", 256, "number of concurrent workers")
		ops         = flag.Int("ops", 200000, "operations per phase (resolve + invalidate)")
		redisAddr   = flag.String("redis-addr", "", "redis address; if empty, REDIS_ADDR env or miniredis is used")
		secret      = flag.String("secret", "loadtest-secret", "HMAC signing secret")
	)
	flag.Parse()

	if *users <= 0 || *concurrency <= 0 || *ops <= 0 {
		fmt.Fprintln(os.Stderr, "users, concurrency, and ops must be > 0")
		os.Exit(2)
	}

	ctx := context.Background()

	addr := *redisAddr
	if addr == "" {
		addr = os.Getenv("REDIS_ADDR")
	}

	var (
		cleanup func()
		client  redis.UniversalClient
	)
	if addr == "" {
		mr, err := miniredis.Run()
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to start miniredis: %v\n", err)
			os.Exit(1)
		}
		addr = mr.Addr()
		client = redis.NewUniversalClient(&redis.UniversalOptions{
			Addrs: []string{addr},
		})
		cleanup = func() {
			_ = client.Close()
			mr.Close()
		}
		fmt.Printf("using miniredis at %s\n", addr)
	} else {
		client = redis.NewUniversalClient(&redis.UniversalOptions{
			Addrs: []string{addr},
		})
		cleanup = func() { _ = client.Close() }
		fmt.Printf("using redis at %s\n", addr)
	}
	defer cleanup()

	engine, err := authcache.New().
		WithSecret([]byte(*secret)).
		WithRedis(client).
		WithMetricsEnabled(true).
		WithLatencyHistograms(true).
		Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "engine build failed: %v\n", err)
		os.Exit(1)
	}
	defer engine.Close()

	if !engine.Connect(ctx) {
		fmt.Fprintln(os.Stderr, "store unreachable")
		os.Exit(1)
	}

	fmt.Printf("minting %d tokens...\n", *users)
	startMint := time.Now()
	tokens, subjects, err := mintTokens([]byte(*secret), *users)
	if err != nil {
		fmt.Fprintf(os.Stderr, "mint failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("minted in %s\n", time.Since(startMint).Round(time.Millisecond))

	resolveStats := runResolvePhase(ctx, engine, tokens, *ops, *concurrency)
	invalidateStats := runInvalidatePhase(ctx, engine, subjects, *ops, *concurrency)

	fmt.Println("---- results ----")
	printStats("resolve", resolveStats)
	printStats("invalidate", invalidateStats)

	snap := engine.MetricsSnapshot()
	fmt.Printf("cache: hits=%d misses=%d write_failed=%d store_unavailable=%d\n",
		snap.Counters[authcache.MetricCacheHit],
		snap.Counters[authcache.MetricCacheMiss],
		snap.Counters[authcache.MetricCacheWriteFailed],
		snap.Counters[authcache.MetricStoreUnavailable],
	)
}

func mintTokens(secret []byte, users int) ([]string, []string, error) {
	tokens := make([]string, users)
	subjects := make([]string, users)
	now := time.Now()
	for i := 0; i < users; i++ {
		subjects[i] = fmt.Sprintf("user-%d", i)
		token := gjwt.NewWithClaims(gjwt.SigningMethodHS256, authjwt.Claims{
			Name:  fmt.Sprintf("User %d", i),
			Email: fmt.Sprintf("user-%d@example.com", i),
			RegisteredClaims: gjwt.RegisteredClaims{
				Subject:   subjects[i],
				IssuedAt:  gjwt.NewNumericDate(now),
				ExpiresAt: gjwt.NewNumericDate(now.Add(24 * time.Hour)),
			},
		})
		signed, err := token.SignedString(secret)
		if err != nil {
			return nil, nil, err
		}
		tokens[i] = signed
	}
	return tokens, subjects, nil
}

func runResolvePhase(ctx context.Context, engine *authcache.Engine, tokens []string, ops, concurrency int) phaseStats {
	var (
		wg        sync.WaitGroup
		cursor    int64
		failures  int64
		latencies = make([]time.Duration, 0, ops)
		mu        sync.Mutex
	)

	start := time.Now()
	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			r := rand.New(rand.NewSource(time.Now().UnixNano() + int64(worker)*7919))
			for {
				i := int(atomic.AddInt64(&cursor, 1)) - 1
				if i >= ops {
					return
				}
				idx := r.Intn(len(tokens))
				t0 := time.Now()
				_, err := engine.Resolve(ctx, tokens[idx])
				d := time.Since(t0)
				if err != nil {
					atomic.AddInt64(&failures, 1)
				}
				mu.Lock()
				latencies = append(latencies, d)
				mu.Unlock()
			}
		}(w)
	}
	wg.Wait()
	total := time.Since(start)
	return computeStats(total, latencies, failures)
}

func runInvalidatePhase(ctx context.Context, engine *authcache.Engine, subjects []string, ops, concurrency int) phaseStats {
	var (
		wg        sync.WaitGroup
		cursor    int64
		failures  int64
		latencies = make([]time.Duration, 0, ops)
		mu        sync.Mutex
	)

	start := time.Now()
	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			r := rand.New(rand.NewSource(time.Now().UnixNano() + int64(worker)*6151))
			for {
				i := int(atomic.AddInt64(&cursor, 1)) - 1
				if i >= ops {
					return
				}
				idx := r.Intn(len(subjects))
				t0 := time.Now()
				ok := engine.InvalidateSubject(ctx, subjects[idx])
				d := time.Since(t0)
				if !ok {
					atomic.AddInt64(&failures, 1)
				}
				mu.Lock()
				latencies = append(latencies, d)
				mu.Unlock()
			}
		}(w)
	}
	wg.Wait()
	total := time.Since(start)
	return computeStats(total, latencies, failures)
}

type phaseStats struct {
	total    time.Duration
	ops      int
	failures int64
	p50      time.Duration
	p95      time.Duration
	p99      time.Duration
	opsPerS  float64
}

func computeStats(total time.Duration, samples []time.Duration, failures int64) phaseStats {
	if len(samples) == 0 {
		return phaseStats{total: total}
	}
	sort.Slice(samples, func(i, j int) bool { return samples[i] < samples[j] })
	return phaseStats{
		total:    total,
		ops:      len(samples),
		failures: failures,
		p50:      percentile(samples, 50),
		p95:      percentile(samples, 95),
		p99:      percentile(samples, 99),
		opsPerS:  float64(len(samples)) / total.Seconds(),
	}
}

func percentile(samples []time.Duration, p int) time.Duration {
	if len(samples) == 0 {
		return 0
	}
	if p <= 0 {
		return samples[0]
	}
	if p >= 100 {
		return samples[len(samples)-1]
	}
	idx := (len(samples) - 1) * p / 100
	return samples[idx]
}

func printStats(name string, s phaseStats) {
	fmt.Printf("%s: ops=%d failures=%d total=%s ops/sec=%.0f p50=%s p95=%s p99=%s\n",
		name,
		s.ops,
		s.failures,
		s.total.Round(time.Millisecond),
		s.opsPerS,
		s.p50.Round(time.Microsecond),
		s.p95.Round(time.Microsecond),
		s.p99.Round(time.Microsecond),
	)
}
