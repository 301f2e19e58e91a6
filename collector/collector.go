package collector

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"activity-forecast/datasource"
)

// LocationWarmer periodically resolves a fixed set of locations through a
// caching geocoder so that user queries for them skip the geocoding call
type LocationWarmer struct {
	geocoder     datasource.Geocoder
	locations    []string
	interval     time.Duration
	fetchTimeout time.Duration
	logger       *slog.Logger
}

// NewLocationWarmer creates a warmer for the given locations
func NewLocationWarmer(geocoder datasource.Geocoder, locations []string, interval time.Duration, logger *slog.Logger) *LocationWarmer {
	if logger == nil {
		logger = slog.Default()
	}
	return &LocationWarmer{
		geocoder:     geocoder,
		locations:    locations,
		interval:     interval,
		fetchTimeout: 10 * time.Second,
		logger:       logger.With("component", "location-warmer"),
	}
}

// SetFetchTimeout changes the timeout for each geocoding request
func (w *LocationWarmer) SetFetchTimeout(timeout time.Duration) {
	w.fetchTimeout = timeout
}

// Start resolves every location immediately and then once per interval.
// The returned function stops the warmer and waits for it to exit.
func (w *LocationWarmer) Start(ctx context.Context) func() {
	warmCtx, cancel := context.WithCancel(ctx)

	if len(w.locations) == 0 || w.interval <= 0 {
		return cancel
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		w.run(warmCtx)
	}()

	return func() {
		cancel()
		wg.Wait()
	}
}

func (w *LocationWarmer) run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.WarmOnce(ctx)
	for {
		select {
		case <-ticker.C:
			w.WarmOnce(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// WarmOnce resolves each location once, sequentially, and returns how many
// resolved to a match. Failures are logged and skipped.
func (w *LocationWarmer) WarmOnce(ctx context.Context) int {
	resolved := 0
	for _, location := range w.locations {
		if ctx.Err() != nil {
			break
		}
		if w.warm(ctx, location) {
			resolved++
		}
	}
	w.logger.Debug("warm pass complete", "resolved", resolved, "total", len(w.locations))
	return resolved
}

func (w *LocationWarmer) warm(ctx context.Context, location string) bool {
	fetchCtx, cancel := context.WithTimeout(ctx, w.fetchTimeout)
	defer cancel()

	loc, err := w.geocoder.Geocode(fetchCtx, location)
	switch {
	case err != nil:
		w.logger.Warn("failed to warm location", "location", location, "source", w.geocoder.Name(), "error", err)
		return false
	case loc == nil:
		w.logger.Warn("warm location has no match", "location", location)
		return false
	}
	return true
}
