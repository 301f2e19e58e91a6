package weather

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"activity-forecast/datasource"
	"activity-forecast/metrics"
	"activity-forecast/models"
)

// generatedAtLayout matches the millisecond ISO timestamps clients expect
const generatedAtLayout = "2006-01-02T15:04:05.000Z07:00"

// Aggregator resolves a location and merges forecast and marine data for it.
// It holds no per-query state and is safe for concurrent use.
type Aggregator struct {
	geocoder datasource.Geocoder
	forecast datasource.ForecastSource
	marine   datasource.MarineSource // optional
	metrics  *metrics.Metrics
	logger   *slog.Logger
	now      func() time.Time
}

// NewAggregator creates an aggregator over the given sources. marine may be nil.
func NewAggregator(geocoder datasource.Geocoder, forecast datasource.ForecastSource, marine datasource.MarineSource, m *metrics.Metrics, logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{
		geocoder: geocoder,
		forecast: forecast,
		marine:   marine,
		metrics:  m,
		logger:   logger.With("component", "aggregator"),
		now:      time.Now,
	}
}

// SetClock replaces the clock used to stamp GeneratedAt
func (a *Aggregator) SetClock(now func() time.Time) {
	a.now = now
}

// GetForecast returns the merged forecast for a free-text location query.
// Failures are ErrInvalidInput, *NoResultsError or *UpstreamError; marine
// failures are absorbed.
func (a *Aggregator) GetForecast(ctx context.Context, query string) (*models.WeatherForecast, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrInvalidInput
	}

	location, err := a.resolveLocation(ctx, query)
	if err != nil {
		return nil, err
	}

	series, marine, err := a.fetchConcurrently(ctx, *location)
	if err != nil {
		return nil, err
	}

	daily := mergeDaily(series, marine)
	if len(daily) == 0 {
		return nil, &UpstreamError{Op: "forecast", Err: errors.New("forecast contains no days")}
	}
	if location.Timezone == "" {
		location.Timezone = series.Timezone
	}

	a.logger.Info("forecast aggregated",
		"query", query,
		"location", location.Name,
		"days", len(daily),
		"marine", marine.Present,
	)

	return &models.WeatherForecast{
		Location:    *location,
		Daily:       daily,
		GeneratedAt: a.now().UTC().Format(generatedAtLayout),
	}, nil
}

// resolveLocation is stage one: the coordinates every later fetch depends on
func (a *Aggregator) resolveLocation(ctx context.Context, query string) (*models.ResolvedLocation, error) {
	location, err := a.geocoder.Geocode(ctx, query)
	if err != nil {
		a.logger.Error("geocoding failed", "query", query, "source", a.geocoder.Name(), "error", err)
		return nil, &UpstreamError{Op: "geocoding", Err: err}
	}
	if location == nil {
		return nil, &NoResultsError{Query: query}
	}
	return location, nil
}

// fetchConcurrently is stage two: forecast and marine run side by side and the
// barrier waits for both. Only the forecast branch can fail the query.
func (a *Aggregator) fetchConcurrently(ctx context.Context, location models.ResolvedLocation) (models.DailySeries, MarineResult, error) {
	var (
		wg          sync.WaitGroup
		series      models.DailySeries
		forecastErr error
		marine      MarineResult
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		series, forecastErr = a.forecast.FetchDaily(ctx, location)
	}()
	go func() {
		defer wg.Done()
		marine = a.fetchMarine(ctx, location)
	}()
	wg.Wait()

	if forecastErr != nil {
		a.logger.Error("forecast fetch failed", "location", location.Name, "source", a.forecast.Name(), "error", forecastErr)
		return models.DailySeries{}, MarineResult{}, &UpstreamError{Op: "forecast", Err: forecastErr}
	}
	return series, marine, nil
}

// fetchMarine converts every marine failure into an absent result
func (a *Aggregator) fetchMarine(ctx context.Context, location models.ResolvedLocation) MarineResult {
	if a.marine == nil {
		return MarineAbsent(nil)
	}
	series, err := a.marine.FetchMarine(ctx, location)
	if err != nil {
		a.metrics.MarineFallback()
		a.logger.Debug("marine data unavailable", "location", location.Name, "error", err)
		return MarineAbsent(err)
	}
	return MarinePresent(series)
}
