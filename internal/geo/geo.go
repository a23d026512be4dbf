// Package geo resolves UK postcodes to coordinates through a memoizing,
// retrying cache over a tabular postcode store.
package geo

import (
	"context"
	"strings"
	"sync"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/landslurp/landslurp/internal/pricepaid"
)

// lookupAttempts bounds calls to the underlying store per resolution.
// There is no backoff between attempts.
const lookupAttempts = 3

// Store is the tabular postcode lookup. Find returns nil with no error
// when the postcode is unknown; errors are reserved for transport or
// store failures and trigger a retry in the cache.
type Store interface {
	Find(ctx context.Context, area, sector string) (*pricepaid.Point, error)
}

// Cache memoizes postcode resolutions, including failed ones, for the
// lifetime of the cache instance. Keys are the postcode strings exactly
// as supplied; callers wanting case-insensitive behavior must normalize
// before calling. There is no eviction: the universe of real postcodes
// is bounded.
type Cache struct {
	store  Store
	logger *zap.Logger

	mu      sync.RWMutex
	entries map[string]*pricepaid.Point
}

// NewCache returns an empty cache over store. A nil logger disables
// lookup-failure warnings.
func NewCache(store Store, logger *zap.Logger) *Cache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cache{
		store:   store,
		logger:  logger,
		entries: make(map[string]*pricepaid.Point),
	}
}

// Lookup resolves postcode to a geo point, or nil when the postcode is
// malformed, unknown, resolves to invalid coordinates, or the store
// kept failing. Safe for concurrent use; racing lookups of the same
// uncached postcode may both hit the store, last write wins.
func (c *Cache) Lookup(ctx context.Context, postcode string) *pricepaid.Point {
	c.mu.RLock()
	point, ok := c.entries[postcode]
	c.mu.RUnlock()
	if ok {
		cacheHits.Inc()
		return point
	}

	point = c.resolve(ctx, postcode)

	c.mu.Lock()
	c.entries[postcode] = point
	c.mu.Unlock()
	return point
}

// Size returns the number of memoized postcodes.
func (c *Cache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *Cache) resolve(ctx context.Context, postcode string) *pricepaid.Point {
	parts := strings.Fields(postcode)
	if len(parts) != 2 {
		return nil
	}

	var point *pricepaid.Point
	op := func() error {
		p, err := c.store.Find(ctx, parts[0], parts[1])
		if err != nil {
			storeRetries.Inc()
			return err
		}
		point = p
		return nil
	}

	storeLookups.Inc()
	bo := backoff.WithContext(backoff.WithMaxRetries(&backoff.ZeroBackOff{}, lookupAttempts-1), ctx)
	if err := backoff.Retry(op, bo); err != nil {
		// Exhausted retries: degrade to "no geo data" for this postcode.
		c.logger.Warn("postcode lookup failed",
			zap.String("postcode", postcode),
			zap.Error(err))
		return nil
	}

	if point == nil || !point.Valid() {
		return nil
	}
	return point
}
