package fetch

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

// Cache deduplicates and caches backend queries. A key identifies one
// resource + parameter combination; overlapping in-flight fetches for the
// same key collapse into a single upstream call.
type Cache struct {
	store Store
	group singleflight.Group
	ttl   time.Duration
	log   *logrus.Logger
}

func NewCache(store Store, ttl time.Duration, log *logrus.Logger) *Cache {
	if log == nil {
		log = logrus.New()
	}
	return &Cache{store: store, ttl: ttl, log: log}
}

// Key canonicalizes a resource + params pair. Params are sorted so that the
// same query always lands on the same key regardless of argument order.
func Key(resource string, params map[string]string) string {
	if len(params) == 0 {
		return resource
	}
	parts := make([]string, 0, len(params))
	for k, v := range params {
		parts = append(parts, k+"="+v)
	}
	sort.Strings(parts)
	return resource + "?" + strings.Join(parts, "&")
}

// Do returns the cached payload for key, or runs fn once to fill it. Store
// failures degrade to a direct fetch; staleness never blocks a response.
func (c *Cache) Do(ctx context.Context, key string, fn func(context.Context) ([]byte, error)) ([]byte, error) {
	if cached, ok, err := c.store.Get(ctx, key); err == nil && ok {
		return cached, nil
	} else if err != nil {
		c.log.WithError(err).WithField("key", key).Warn("query cache read failed")
	}

	value, err, _ := c.group.Do(key, func() (interface{}, error) {
		fresh, err := fn(ctx)
		if err != nil {
			return nil, err
		}
		if err := c.store.Set(ctx, key, fresh, c.ttl); err != nil {
			c.log.WithError(err).WithField("key", key).Warn("query cache write failed")
		}
		return fresh, nil
	})
	if err != nil {
		return nil, err
	}
	return value.([]byte), nil
}

// Invalidate drops specific keys after a mutation.
func (c *Cache) Invalidate(ctx context.Context, keys ...string) {
	if err := c.store.Delete(ctx, keys...); err != nil {
		c.log.WithError(err).Warn("query cache invalidation failed")
	}
}

// InvalidatePrefix drops every key under a resource namespace.
func (c *Cache) InvalidatePrefix(ctx context.Context, prefix string) {
	if err := c.store.DeletePrefix(ctx, prefix); err != nil {
		c.log.WithError(err).WithField("prefix", prefix).Warn("query cache invalidation failed")
	}
}

// JSON runs a typed fetch through the cache, marshalling through the store.
func JSON[T any](ctx context.Context, c *Cache, key string, fn func(context.Context) (T, error)) (T, error) {
	var zero T
	raw, err := c.Do(ctx, key, func(ctx context.Context) ([]byte, error) {
		value, err := fn(ctx)
		if err != nil {
			return nil, err
		}
		return json.Marshal(value)
	})
	if err != nil {
		return zero, err
	}
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return zero, err
	}
	return out, nil
}
