package cache

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"activity-forecast/datasource"
	"activity-forecast/metrics"
	"activity-forecast/models"
)

// LocationStore persists resolved locations between restarts
type LocationStore interface {
	Get(ctx context.Context, key string) (Entry, bool, error)
	Put(ctx context.Context, key string, entry Entry) error
}

// Entry is a cached geocoding result with the time it was resolved
type Entry struct {
	Location  models.ResolvedLocation
	Timestamp time.Time
}

// CachedGeocoder wraps a Geocoder and caches successful matches. Misses and
// failures are never cached, and forecasts never pass through here.
type CachedGeocoder struct {
	source         datasource.Geocoder
	store          LocationStore // optional second level
	cache          map[string]Entry
	mutex          sync.RWMutex
	cacheDuration  time.Duration
	cacheHitCount  int
	cacheMissCount int
	metrics        *metrics.Metrics
	logger         *slog.Logger
	now            func() time.Time
}

// NewCachedGeocoder creates a new cached wrapper around a geocoder.
// store may be nil to keep the cache in memory only.
func NewCachedGeocoder(source datasource.Geocoder, store LocationStore, cacheDuration time.Duration, m *metrics.Metrics, logger *slog.Logger) *CachedGeocoder {
	if logger == nil {
		logger = slog.Default()
	}
	return &CachedGeocoder{
		source:        source,
		store:         store,
		cache:         make(map[string]Entry),
		cacheDuration: cacheDuration,
		metrics:       m,
		logger:        logger.With("component", "location-cache"),
		now:           time.Now,
	}
}

// Name returns the name of the underlying geocoder with [Cached] suffix
func (c *CachedGeocoder) Name() string {
	return c.source.Name() + " [Cached]"
}

// Key normalizes a query into its cache key
func Key(query string) string {
	return strings.ToLower(strings.Join(strings.Fields(query), " "))
}

// Geocode resolves query, using the cache when a fresh entry exists
func (c *CachedGeocoder) Geocode(ctx context.Context, query string) (*models.ResolvedLocation, error) {
	key := Key(query)

	if loc, ok := c.lookup(ctx, key); ok {
		c.record(true)
		return loc, nil
	}
	c.record(false)

	loc, err := c.source.Geocode(ctx, query)
	if err != nil || loc == nil {
		return loc, err
	}

	entry := Entry{Location: *loc, Timestamp: c.now()}
	c.mutex.Lock()
	c.cache[key] = entry
	c.mutex.Unlock()

	if c.store != nil {
		if err := c.store.Put(ctx, key, entry); err != nil {
			c.logger.Warn("failed to persist location", "key", key, "error", err)
		}
	}
	return loc, nil
}

func (c *CachedGeocoder) lookup(ctx context.Context, key string) (*models.ResolvedLocation, bool) {
	c.mutex.RLock()
	entry, found := c.cache[key]
	c.mutex.RUnlock()

	if found && c.fresh(entry) {
		loc := entry.Location
		return &loc, true
	}
	if c.store == nil {
		return nil, false
	}

	entry, found, err := c.store.Get(ctx, key)
	if err != nil {
		c.logger.Warn("failed to read persisted location", "key", key, "error", err)
		return nil, false
	}
	if !found || !c.fresh(entry) {
		return nil, false
	}

	c.mutex.Lock()
	c.cache[key] = entry
	c.mutex.Unlock()
	loc := entry.Location
	return &loc, true
}

func (c *CachedGeocoder) fresh(entry Entry) bool {
	return c.now().Sub(entry.Timestamp) < c.cacheDuration
}

func (c *CachedGeocoder) record(hit bool) {
	c.mutex.Lock()
	if hit {
		c.cacheHitCount++
	} else {
		c.cacheMissCount++
	}
	c.mutex.Unlock()
	c.metrics.CacheLookup(hit)
}

// CacheStats returns statistics about cache hits and misses
func (c *CachedGeocoder) CacheStats() (hits, misses int) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return c.cacheHitCount, c.cacheMissCount
}

// Ensure CachedGeocoder implements the Geocoder interface
var _ datasource.Geocoder = (*CachedGeocoder)(nil)
