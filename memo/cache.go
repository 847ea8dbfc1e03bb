// Package memo caches stage outputs by content-addressed keys.
//
// A Cache maps a key to a computed value. Concurrent lookups of the same
// missing key share a single computation; later lookups return the stored
// value until it is evicted. Failed computations are never stored.
package memo

import (
	"fmt"
	"log/slog"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"github.com/arloliu/fame/errs"
	"github.com/arloliu/fame/internal/options"
)

// DefaultCapacity is the number of entries a cache keeps by default.
const DefaultCapacity = 64

// Key identifies a stage output: the fingerprint of the input table and the
// hash of the settings fields the stage depends on.
type Key struct {
	Input    uint64
	Settings uint64
}

func (k Key) String() string {
	return fmt.Sprintf("%016x:%016x", k.Input, k.Settings)
}

type config struct {
	capacity int
	logger   *slog.Logger
	metrics  *Metrics
}

// Option configures a Cache.
type Option = options.Option[*config]

// WithCapacity bounds the number of entries. The least recently used entry
// is evicted first.
func WithCapacity(capacity int) Option {
	return options.New(func(c *config) error {
		if capacity <= 0 {
			return fmt.Errorf("%w: %d", errs.ErrInvalidCapacity, capacity)
		}
		c.capacity = capacity

		return nil
	})
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return options.NoError(func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	})
}

// WithMetrics reports hits, misses, failures and compute durations to m.
func WithMetrics(m *Metrics) Option {
	return options.NoError(func(c *config) {
		c.metrics = m
	})
}

// Cache is a bounded single-flight memo of one stage.
type Cache[K comparable, V any] struct {
	stage   string
	entries *lru.Cache[K, V]
	flight  singleflight.Group
	logger  *slog.Logger
	metrics *stageMetrics
}

// New creates a cache for the named stage.
func New[K comparable, V any](stage string, opts ...Option) (*Cache[K, V], error) {
	cfg := &config{capacity: DefaultCapacity, logger: slog.Default()}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}
	entries, err := lru.New[K, V](cfg.capacity)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrInvalidCapacity, err)
	}

	return &Cache[K, V]{
		stage:   stage,
		entries: entries,
		logger:  cfg.logger.With("stage", stage),
		metrics: cfg.metrics.stage(stage),
	}, nil
}

// Stage returns the stage name the cache was created for.
func (c *Cache[K, V]) Stage() string { return c.stage }

// Get returns the value stored under key, computing and storing it on a miss.
//
// Concurrent calls with an equal key run compute at most once; every waiter
// receives the same value or error. An error is returned to the callers but
// not cached, so the next Get retries.
func (c *Cache[K, V]) Get(key K, compute func() (V, error)) (V, error) {
	if v, ok := c.entries.Get(key); ok {
		c.hit(key)
		return v, nil
	}

	res, err, shared := c.flight.Do(fmt.Sprint(key), func() (any, error) {
		// Another flight may have stored the value since the first lookup.
		if v, ok := c.entries.Get(key); ok {
			c.hit(key)
			return v, nil
		}
		if c.metrics != nil {
			c.metrics.misses.Inc()
		}

		start := time.Now()
		v, err := compute()
		elapsed := time.Since(start)
		if c.metrics != nil {
			c.metrics.compute.Observe(elapsed.Seconds())
		}
		if err != nil {
			if c.metrics != nil {
				c.metrics.failures.Inc()
			}
			c.logger.Warn("stage computation failed", "key", key, "duration", elapsed, "error", err)

			return nil, err
		}
		c.entries.Add(key, v)
		c.logger.Debug("stage computed", "key", key, "duration", elapsed)

		return v, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	if shared {
		c.logger.Debug("stage computation shared", "key", key)
	}

	return res.(V), nil //nolint:forcetypeassert
}

func (c *Cache[K, V]) hit(key K) {
	if c.metrics != nil {
		c.metrics.hits.Inc()
	}
	c.logger.Debug("stage cache hit", "key", key)
}

// Peek returns the stored value without computing or touching recency.
func (c *Cache[K, V]) Peek(key K) (V, bool) {
	return c.entries.Peek(key)
}

// Contains reports whether key is stored.
func (c *Cache[K, V]) Contains(key K) bool {
	return c.entries.Contains(key)
}

// Remove evicts key. It reports whether the key was present.
func (c *Cache[K, V]) Remove(key K) bool {
	return c.entries.Remove(key)
}

// Len returns the number of stored entries.
func (c *Cache[K, V]) Len() int {
	return c.entries.Len()
}

// Purge evicts every entry.
func (c *Cache[K, V]) Purge() {
	c.entries.Purge()
}
