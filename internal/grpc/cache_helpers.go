package grpc

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

type FetchFunc[T any] func(ctx context.Context) (T, error)

const (
	defaultFetchTimeout = 15 * time.Second
	defaultSetTimeout   = 5 * time.Second
)

const (
	cacheKeySummary  = "grpc:summary"
	cacheKeyCharts   = "grpc:charts"
	cacheKeyActivity = "grpc:activity"

	allSchools = "all"
)

func summaryKey(schoolID string) string {
	if schoolID == "" {
		schoolID = allSchools
	}
	return cacheKeySummary + ":" + schoolID
}

func chartsKey(schoolID string) string {
	return cacheKeyCharts + ":" + schoolID
}

// dashboardKeys lists the cache entries that depend on the records of schoolID.
func dashboardKeys(schoolID string) []string {
	keys := []string{summaryKey(""), cacheKeyActivity}
	if schoolID != "" {
		keys = append(keys, summaryKey(schoolID), chartsKey(schoolID))
	}
	return keys
}

// addTTLJitter spreads expirations by up to a tenth of ttl (capped at 15s) in either direction.
func addTTLJitter(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return ttl
	}
	spread := ttl / 10
	if spread > 15*time.Second {
		spread = 15 * time.Second
	}
	if spread <= 0 {
		return ttl
	}
	return ttl + time.Duration(rand.Int63n(int64(2*spread))) - spread
}

// writeGuard orders cache writes against invalidations: a value fetched before an
// invalidation is never stored after it. A nil guard stores unconditionally.
type writeGuard struct {
	mu    sync.RWMutex
	epoch uint64
}

func (g *writeGuard) current() uint64 {
	if g == nil {
		return 0
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.epoch
}

// storeIf runs set unless an invalidation happened after start was read.
func (g *writeGuard) storeIf(start uint64, set func() error) (bool, error) {
	if g == nil {
		return true, set()
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.epoch != start {
		return false, nil
	}
	return true, set()
}

// invalidate advances the epoch and runs drop while no guarded write is in flight.
func (g *writeGuard) invalidate(drop func() error) error {
	if g == nil {
		return drop()
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.epoch++
	return drop()
}

func triggerBackgroundRefresh[T any](
	c Cacher,
	sf *singleflight.Group,
	guard *writeGuard,
	key string,
	ttl time.Duration,
	logger *zap.Logger,
	fn FetchFunc[T],
) {
	start := guard.current()
	go func() {
		time.Sleep(time.Duration(rand.Intn(1000)) * time.Millisecond)

		_, _, _ = sf.Do(key+":refresh", func() (any, error) {
			ctx, cancel := context.WithTimeout(context.Background(), defaultFetchTimeout)
			defer cancel()

			value, err := fn(ctx)
			if err != nil {
				logger.Warn("background refresh failed",
					zap.String("key", key),
					zap.Error(err))
				return nil, err
			}

			setCtx, cancelSet := context.WithTimeout(context.Background(), defaultSetTimeout)
			defer cancelSet()

			ttlWithJitter := addTTLJitter(ttl)
			stored, err := guard.storeIf(start, func() error {
				return c.Set(setCtx, key, value, ttlWithJitter)
			})
			if err != nil {
				logger.Warn("failed to update cache in background",
					zap.String("key", key),
					zap.Error(err))
			} else if !stored {
				logger.Debug("refresh skipped after invalidation", zap.String("key", key))
			} else {
				logger.Debug("cache refreshed in background",
					zap.String("key", key),
					zap.Duration("ttl", ttlWithJitter))
			}

			return value, nil
		})
	}()
}

func fetchAndCacheInBackground[T any](
	ctx context.Context,
	c Cacher,
	guard *writeGuard,
	key string,
	ttl time.Duration,
	logger *zap.Logger,
	fn FetchFunc[T],
) (T, error) {
	var zero T

	start := guard.current()
	value, err := fn(ctx)
	if err != nil {
		logger.Error("fetch failed", zap.String("key", key), zap.Error(err))
		return zero, err
	}

	go func(v T) {
		setCtx, cancel := context.WithTimeout(context.Background(), defaultSetTimeout)
		defer cancel()

		ttlWithJitter := addTTLJitter(ttl)
		stored, err := guard.storeIf(start, func() error {
			return c.Set(setCtx, key, v, ttlWithJitter)
		})
		if err != nil {
			logger.Warn("failed to set cache on miss", zap.String("key", key), zap.Error(err))
		} else if !stored {
			logger.Debug("stale value not cached", zap.String("key", key))
		} else {
			logger.Debug("cache populated on miss", zap.String("key", key))
		}
	}(value)

	return value, nil
}

// FindAndCache implements read-through caching with singleflight and refresh-ahead logic.
// A nil cache disables caching and calls fn directly. Values fetched before an
// invalidation through guard are returned but not stored.
func FindAndCache[T any](
	ctx context.Context,
	c Cacher,
	sf *singleflight.Group,
	guard *writeGuard,
	key string,
	ttl time.Duration,
	logger *zap.Logger,
	fn FetchFunc[T],
) (T, error) {
	var zero T
	if logger == nil {
		logger = zap.NewNop()
	}
	if c == nil {
		return fn(ctx)
	}

	var cached T
	err := c.Get(ctx, key, &cached)
	switch {
	case err == nil:
		logger.Debug("cache hit", zap.String("key", key))
		triggerBackgroundRefresh(c, sf, guard, key, ttl, logger, fn)
		return cached, nil

	case errors.Is(err, redis.Nil):
		logger.Debug("cache miss", zap.String("key", key))

	default:
		logger.Warn("cache get error (treating as miss)", zap.String("key", key), zap.Error(err))
	}

	v, err, shared := sf.Do(key, func() (any, error) {
		return fetchAndCacheInBackground(ctx, c, guard, key, ttl, logger, fn)
	})
	if err != nil {
		return zero, err
	}

	value, ok := v.(T)
	if !ok {
		logger.Error("singleflight type mismatch", zap.String("key", key))
		return zero, fmt.Errorf("type mismatch for key %q", key)
	}

	if shared {
		logger.Debug("singleflight shared result", zap.String("key", key))
	}

	return value, nil
}
