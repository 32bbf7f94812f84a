// Package plancache caches per-query plans keyed by query structure.
//
// Two queries that differ only in literal arguments print to the same
// parameterized form, so they share a plan. The literal values of each
// query are returned next to the plan in print order.
package plancache

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/karlseguin/ccache/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/evitadb/evitago/internal/query"
	"github.com/evitadb/evitago/internal/value"
)

// ErrNilQuery is returned when Lookup is called without a query.
var ErrNilQuery = errors.New("plancache: nil query")

// Default settings used for zero Options fields.
const (
	DefaultMaxSize = 1000
	DefaultTTL     = 10 * time.Minute
)

// Options configures a Cache.
type Options struct {
	// MaxSize is the number of plans kept before the least recently used
	// ones are pruned.
	MaxSize int64

	// TTL is how long a plan stays valid after it is built.
	TTL time.Duration

	// Normalize keys queries by their normalized form, so structurally
	// equivalent queries share a plan.
	Normalize bool

	// Registerer receives the cache metrics. Nil leaves them unregistered.
	Registerer prometheus.Registerer
}

// Key identifies the structure of a query.
type Key struct {
	// Text is the parameterized form of the query.
	Text string

	// Hash is the xxhash of Text.
	Hash uint64
}

func (k Key) String() string {
	return strconv.FormatUint(k.Hash, 36)
}

// KeyOf returns the structure key of q and its literal values.
func KeyOf(q *query.Query) (Key, []value.Value, error) {
	text, params, err := q.PrettyPrintParameterized()
	if err != nil {
		return Key{}, nil, err
	}
	return Key{Text: text, Hash: xxhash.Sum64String(text)}, params, nil
}

// Cache maps query structures to plans of type P. It is safe for
// concurrent use.
type Cache[P any] struct {
	cache     *ccache.Cache
	ttl       time.Duration
	normalize bool

	hits   atomic.Int64
	misses atomic.Int64

	lookups *prometheus.CounterVec
	builds  prometheus.Histogram
}

type entry[P any] struct {
	text string
	plan P
}

// New creates a cache.
func New[P any](opts Options) *Cache[P] {
	if opts.MaxSize <= 0 {
		opts.MaxSize = DefaultMaxSize
	}
	if opts.TTL <= 0 {
		opts.TTL = DefaultTTL
	}

	factory := promauto.With(opts.Registerer)
	return &Cache[P]{
		cache:     ccache.New(ccache.Configure().MaxSize(opts.MaxSize)),
		ttl:       opts.TTL,
		normalize: opts.Normalize,
		lookups: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "evitago_plan_cache_lookups_total",
			Help: "Plan cache lookups by result",
		}, []string{"result"}),
		builds: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "evitago_plan_cache_build_seconds",
			Help:    "Time spent building plans on cache misses",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
	}
}

// Lookup returns the plan for the structure of q, calling build on a miss,
// together with the literal values of q. Build errors are returned and not
// cached.
func (c *Cache[P]) Lookup(q *query.Query, build func(Key) (P, error)) (P, []value.Value, error) {
	var zero P
	if q == nil {
		return zero, nil, ErrNilQuery
	}
	if c.normalize {
		q = q.Normalized()
	}

	key, params, err := KeyOf(q)
	if err != nil {
		return zero, nil, fmt.Errorf("plancache: %w", err)
	}

	if item := c.cache.Get(key.String()); item != nil && !item.Expired() {
		if e, ok := item.Value().(entry[P]); ok && e.text == key.Text {
			c.hits.Add(1)
			c.lookups.WithLabelValues("hit").Inc()
			return e.plan, params, nil
		}
		slog.Debug("plan cache key collision", "key", key.String())
	}

	c.misses.Add(1)
	c.lookups.WithLabelValues("miss").Inc()

	start := time.Now()
	plan, err := build(key)
	c.builds.Observe(time.Since(start).Seconds())
	if err != nil {
		c.lookups.WithLabelValues("error").Inc()
		return zero, nil, fmt.Errorf("plancache: build %s: %w", key, err)
	}

	c.cache.Set(key.String(), entry[P]{text: key.Text, plan: plan}, c.ttl)
	return plan, params, nil
}

// Invalidate drops the plan for the structure of q.
func (c *Cache[P]) Invalidate(q *query.Query) bool {
	if q == nil {
		return false
	}
	if c.normalize {
		q = q.Normalized()
	}
	key, _, err := KeyOf(q)
	if err != nil {
		return false
	}
	return c.cache.Delete(key.String())
}

// Hits returns the number of lookups served from the cache.
func (c *Cache[P]) Hits() int64 { return c.hits.Load() }

// Misses returns the number of lookups that built a plan.
func (c *Cache[P]) Misses() int64 { return c.misses.Load() }

// Clear drops every plan.
func (c *Cache[P]) Clear() { c.cache.Clear() }

// Close stops the background worker of the cache.
func (c *Cache[P]) Close() { c.cache.Stop() }
