package datasource

import (
	"context"

	"activity-forecast/models"
)

// Fetcher performs a single upstream GET. It is the only place the aggregator
// blocks, and implementations must be safe for concurrent use.
type Fetcher interface {
	Fetch(ctx context.Context, url string, headers map[string]string) (*Response, error)
}

// Geocoder resolves a free-text query to its best matching location.
// A nil location with a nil error means the query matched nothing.
type Geocoder interface {
	// Geocode returns the first match for query
	Geocode(ctx context.Context, query string) (*models.ResolvedLocation, error)

	// Name returns the geocoder's name
	Name() string
}

// ForecastSource fetches the daily forecast series for a resolved location
type ForecastSource interface {
	// FetchDaily fetches the daily forecast for the location
	FetchDaily(ctx context.Context, location models.ResolvedLocation) (models.DailySeries, error)

	// Name returns the source's name
	Name() string
}

// MarineSource fetches daily wave heights for a resolved location
type MarineSource interface {
	// FetchMarine fetches the marine forecast for the location
	FetchMarine(ctx context.Context, location models.ResolvedLocation) (models.MarineSeries, error)

	// Name returns the source's name
	Name() string
}
