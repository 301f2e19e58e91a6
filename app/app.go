package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"activity-forecast/cache"
	"activity-forecast/datasource"
	"activity-forecast/metrics"
	"activity-forecast/providers/openmeteo"
	"activity-forecast/weather"
)

// App holds the wired components shared by the server and the CLI
type App struct {
	Aggregator *weather.Aggregator
	Geocoder   *cache.CachedGeocoder
	Metrics    *metrics.Metrics

	store *cache.SQLiteLocationStore
}

// Options adjusts how New wires the components
type Options struct {
	RateLimit bool             // wrap the fetcher in the configured limiter
	Metrics   *metrics.Metrics // may be nil
}

// New builds the fetch stack, the Open-Meteo client, the location cache and
// the aggregator from config
func New(config *datasource.Config, opts Options, logger *slog.Logger) (*App, error) {
	var fetcher datasource.Fetcher = datasource.NewHTTPFetcher(config.Upstream.Timeout.Duration, config.Upstream.UserAgent)
	if opts.RateLimit && config.Upstream.RateLimit > 0 {
		fetcher = datasource.NewRateLimitedFetcher(fetcher, config.Upstream.RateLimit, config.Upstream.Burst)
		logger.Debug("applied upstream rate limiting", "rps", config.Upstream.RateLimit, "burst", config.Upstream.Burst)
	}

	client := openmeteo.NewClient(fetcher, openmeteo.Options{
		GeocodingURL: config.Upstream.GeocodingURL,
		ForecastURL:  config.Upstream.ForecastURL,
		MarineURL:    config.Upstream.MarineURL,
		ForecastDays: config.Upstream.ForecastDays,
		Metrics:      opts.Metrics,
		Logger:       logger,
	})

	a := &App{Metrics: opts.Metrics}

	var store cache.LocationStore
	if path := config.Cache.SQLitePath; path != "" {
		s, err := cache.OpenSQLiteLocationStore(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open location cache: %w", err)
		}
		a.store = s
		store = s

		cutoff := time.Now().Add(-config.Cache.TTL.Duration)
		pruned, err := s.Prune(context.Background(), cutoff)
		if err != nil {
			logger.Warn("failed to prune location cache", "path", path, "error", err)
		}
		logger.Info("persistent location cache enabled", "path", path, "pruned", pruned)
	}

	a.Geocoder = cache.NewCachedGeocoder(client, store, config.Cache.TTL.Duration, opts.Metrics, logger)
	a.Aggregator = weather.NewAggregator(a.Geocoder, client, client, opts.Metrics, logger)
	return a, nil
}

// Close releases the persistent cache, if any
func (a *App) Close() error {
	if a.store == nil {
		return nil
	}
	return a.store.Close()
}
