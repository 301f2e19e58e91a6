package openmeteo

import (
	"context"
	"log/slog"
	"net/url"
	"strconv"
	"time"

	"activity-forecast/datasource"
	"activity-forecast/metrics"
)

// Client talks to the Open-Meteo geocoding, forecast and marine APIs through a
// datasource.Fetcher. It implements Geocoder, ForecastSource and MarineSource.
type Client struct {
	fetcher      datasource.Fetcher
	geocodingURL string
	forecastURL  string
	marineURL    string
	forecastDays int
	metrics      *metrics.Metrics
	logger       *slog.Logger
}

// Ensure Client implements every upstream interface
var (
	_ datasource.Geocoder       = (*Client)(nil)
	_ datasource.ForecastSource = (*Client)(nil)
	_ datasource.MarineSource   = (*Client)(nil)
)

// Options configures a Client. Empty fields take the public Open-Meteo defaults.
type Options struct {
	GeocodingURL string
	ForecastURL  string
	MarineURL    string
	ForecastDays int
	Metrics      *metrics.Metrics
	Logger       *slog.Logger
}

const (
	defaultGeocodingURL = "https://geocoding-api.open-meteo.com/v1/search"
	defaultForecastURL  = "https://api.open-meteo.com/v1/forecast"
	defaultMarineURL    = "https://marine-api.open-meteo.com/v1/marine"
	defaultForecastDays = 7
)

// NewClient creates a new Open-Meteo client
func NewClient(fetcher datasource.Fetcher, opts Options) *Client {
	c := &Client{
		fetcher:      fetcher,
		geocodingURL: opts.GeocodingURL,
		forecastURL:  opts.ForecastURL,
		marineURL:    opts.MarineURL,
		forecastDays: opts.ForecastDays,
		metrics:      opts.Metrics,
		logger:       opts.Logger,
	}
	if c.geocodingURL == "" {
		c.geocodingURL = defaultGeocodingURL
	}
	if c.forecastURL == "" {
		c.forecastURL = defaultForecastURL
	}
	if c.marineURL == "" {
		c.marineURL = defaultMarineURL
	}
	if c.forecastDays <= 0 {
		c.forecastDays = defaultForecastDays
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	c.logger = c.logger.With("component", "open-meteo")
	return c
}

// Name returns the provider name
func (c *Client) Name() string {
	return "Open-Meteo"
}

// getJSON fetches and decodes one endpoint, recording the call under source
func (c *Client) getJSON(ctx context.Context, source, endpoint string, params url.Values, v any) error {
	target := endpoint + "?" + params.Encode()
	started := time.Now()

	err := datasource.GetJSON(ctx, c.fetcher, target, nil, v)
	c.metrics.ObserveUpstream(source, started, err)
	if err != nil {
		c.logger.Debug("upstream request failed", "source", source, "error", err)
		return err
	}
	c.logger.Debug("upstream request complete", "source", source, "duration", time.Since(started))
	return nil
}

func coordinate(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
