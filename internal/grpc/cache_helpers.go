package grpc

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/godilite/jii-dashboard/internal/service"
	"github.com/godilite/jii-dashboard/pkg/metrics"
)

// FetchFunc loads the value for a cache key from the services.
type FetchFunc[T any] func(ctx context.Context) (T, error)

const (
	defaultFetchTimeout = 15 * time.Second
	defaultSetTimeout   = 5 * time.Second
)

// entry is what is actually stored: the value plus when it was computed.
type entry[T any] struct {
	Value    T         `json:"value"`
	StoredAt time.Time `json:"stored_at"`
}

// dueForRefresh reports whether the entry is past half its lifetime.
func (e entry[T]) dueForRefresh(ttl time.Duration, now time.Time) bool {
	return now.Sub(e.StoredAt) >= ttl/2
}

// addTTLJitter spreads expirations by up to 10% of ttl either way. The
// result stays positive so redis never stores the key without expiry.
func addTTLJitter(ttl time.Duration) time.Duration {
	spread := ttl / 10
	if spread <= 0 {
		return ttl
	}
	return ttl + time.Duration(rand.Int63n(int64(2*spread)+1)) - spread
}

// logFetchError keeps expected outcomes such as an empty store or a bad
// question id out of the error log.
func logFetchError(logger *zap.Logger, key string, err error) {
	switch {
	case errors.Is(err, service.ErrNoData),
		errors.Is(err, service.ErrUnknownQuestion),
		errors.Is(err, service.ErrUnknownDimension),
		errors.Is(err, service.ErrUnknownSeries):
		logger.Debug("fetch returned no result", zap.String("key", key), zap.Error(err))
	default:
		logger.Error("fetch failed", zap.String("key", key), zap.Error(err))
	}
}

func store[T any](c Cacher, key string, value T, ttl time.Duration, logger *zap.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultSetTimeout)
	defer cancel()

	ttlWithJitter := addTTLJitter(ttl)
	if err := c.Set(ctx, key, entry[T]{Value: value, StoredAt: time.Now().UTC()}, ttlWithJitter); err != nil {
		logger.Warn("failed to write cache", zap.String("key", key), zap.Error(err))
		return
	}
	logger.Debug("cache written", zap.String("key", key), zap.Duration("ttl", ttlWithJitter))
}

func triggerBackgroundRefresh[T any](
	c Cacher,
	sf *singleflight.Group,
	key string,
	ttl time.Duration,
	logger *zap.Logger,
	fn FetchFunc[T],
) {
	go func() {
		_, _, _ = sf.Do(key+":refresh", func() (any, error) {
			ctx, cancel := context.WithTimeout(context.Background(), defaultFetchTimeout)
			defer cancel()

			value, err := fn(ctx)
			if err != nil {
				logger.Warn("background refresh failed", zap.String("key", key), zap.Error(err))
				return nil, err
			}
			store(c, key, value, ttl, logger)
			return value, nil
		})
	}()
}

// FindAndCache serves key from the cache, falling back to fn on a miss.
// Concurrent misses for one key share a single fetch, and hits older than
// half the TTL are refreshed in the background.
func FindAndCache[T any](
	ctx context.Context,
	c Cacher,
	sf *singleflight.Group,
	kind CacheKeyType,
	key string,
	ttl time.Duration,
	logger *zap.Logger,
	fn FetchFunc[T],
) (T, error) {
	var zero T
	if logger == nil {
		logger = zap.NewNop()
	}

	var cached entry[T]
	err := c.Get(ctx, key, &cached)
	switch {
	case err == nil:
		metrics.ResponseCacheLookups.WithLabelValues(kind.label(), "hit").Inc()
		if cached.dueForRefresh(ttl, time.Now()) {
			triggerBackgroundRefresh(c, sf, key, ttl, logger, fn)
		}
		return cached.Value, nil

	case errors.Is(err, redis.Nil):
		metrics.ResponseCacheLookups.WithLabelValues(kind.label(), "miss").Inc()

	default:
		metrics.ResponseCacheLookups.WithLabelValues(kind.label(), "error").Inc()
		logger.Warn("cache get error (treating as miss)", zap.String("key", key), zap.Error(err))
	}

	// The shared fetch is detached from whichever caller started it; each
	// caller still gives up on its own ctx.
	ch := sf.DoChan(key, func() (any, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), defaultFetchTimeout)
		defer cancel()

		value, err := fn(fetchCtx)
		if err != nil {
			logFetchError(logger, key, err)
			return nil, err
		}
		go store(c, key, value, ttl, logger)
		return value, nil
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res = <-ch:
	}
	if res.Err != nil {
		return zero, res.Err
	}
	v, shared := res.Val, res.Shared

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
