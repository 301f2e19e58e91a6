package weather

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math"
	"testing"
	"time"

	"activity-forecast/datasource"
	"activity-forecast/models"
)

type fakeGeocoder struct {
	calls []string
	loc   *models.ResolvedLocation
	err   error
}

func (f *fakeGeocoder) Geocode(ctx context.Context, query string) (*models.ResolvedLocation, error) {
	f.calls = append(f.calls, query)
	return f.loc, f.err
}

func (f *fakeGeocoder) Name() string { return "fake-geocoder" }

type fakeForecast struct {
	fn func(ctx context.Context, loc models.ResolvedLocation) (models.DailySeries, error)
}

func (f fakeForecast) FetchDaily(ctx context.Context, loc models.ResolvedLocation) (models.DailySeries, error) {
	return f.fn(ctx, loc)
}

func (f fakeForecast) Name() string { return "fake-forecast" }

type fakeMarine struct {
	fn func(ctx context.Context, loc models.ResolvedLocation) (models.MarineSeries, error)
}

func (f fakeMarine) FetchMarine(ctx context.Context, loc models.ResolvedLocation) (models.MarineSeries, error) {
	return f.fn(ctx, loc)
}

func (f fakeMarine) Name() string { return "fake-marine" }

var quietLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func biarritz() *models.ResolvedLocation {
	return &models.ResolvedLocation{Name: "Biarritz", Country: "France", Latitude: 43.48, Longitude: -1.56, Timezone: "Europe/Paris"}
}

func threeDaySeries() models.DailySeries {
	return models.DailySeries{
		Timezone:         "Europe/Paris",
		Time:             []string{"2025-07-01", "2025-07-02", "2025-07-03"},
		TemperatureMax:   []float64{24, 27, 21},
		TemperatureMin:   []float64{16, 18, 15},
		PrecipitationSum: []float64{0, 0.4, 9},
		RainSum:          []float64{0, 0.4, 9},
		SnowfallSum:      []float64{0, 0, 0},
		WindspeedMax:     []float64{18, 22, 41},
		WindDirection:    []*float64{models.Float(270), nil, models.Float(math.NaN())},
		CloudCoverMean:   []float64{20, 35, 90},
		SunshineDuration: []float64{36000, 3700, 0},
	}
}

func staticForecast(s models.DailySeries) fakeForecast {
	return fakeForecast{fn: func(ctx context.Context, loc models.ResolvedLocation) (models.DailySeries, error) {
		return s, nil
	}}
}

func staticMarine(s models.MarineSeries, err error) fakeMarine {
	return fakeMarine{fn: func(ctx context.Context, loc models.ResolvedLocation) (models.MarineSeries, error) {
		return s, err
	}}
}

func TestGetForecastBlankQuery(t *testing.T) {
	geo := &fakeGeocoder{loc: biarritz()}
	agg := NewAggregator(geo, staticForecast(threeDaySeries()), nil, nil, quietLogger)

	for _, q := range []string{"", "   ", "\t\n"} {
		if _, err := agg.GetForecast(context.Background(), q); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("GetForecast(%q) error = %v, want ErrInvalidInput", q, err)
		}
	}
	if len(geo.calls) != 0 {
		t.Errorf("geocoder called for blank input: %v", geo.calls)
	}
}

func TestGetForecastNoResults(t *testing.T) {
	agg := NewAggregator(&fakeGeocoder{}, staticForecast(threeDaySeries()), nil, nil, quietLogger)

	_, err := agg.GetForecast(context.Background(), "Atlantis")
	var noResults *NoResultsError
	if !errors.As(err, &noResults) {
		t.Fatalf("error = %v, want *NoResultsError", err)
	}
	if noResults.Query != "Atlantis" {
		t.Errorf("query = %q, want Atlantis", noResults.Query)
	}
	if !errors.Is(err, ErrNoResults) || errors.Is(err, ErrUpstreamUnavailable) {
		t.Errorf("error %v classified wrongly", err)
	}
}

func TestGetForecastGeocodingFailure(t *testing.T) {
	geo := &fakeGeocoder{err: &datasource.RequestError{Kind: datasource.KindStatus, URL: "geo", Status: 500}}
	agg := NewAggregator(geo, staticForecast(threeDaySeries()), nil, nil, quietLogger)

	_, err := agg.GetForecast(context.Background(), "Biarritz")
	var upstream *UpstreamError
	if !errors.As(err, &upstream) || upstream.Op != "geocoding" {
		t.Fatalf("error = %v, want geocoding UpstreamError", err)
	}
	if errors.Is(err, ErrNoResults) {
		t.Error("geocoding failure must not look like a user input problem")
	}
}

func TestGetForecastForecastFailurePropagates(t *testing.T) {
	forecastErr := &datasource.RequestError{Kind: datasource.KindTransport, URL: "forecast", Err: errors.New("connection refused")}
	forecast := fakeForecast{fn: func(ctx context.Context, loc models.ResolvedLocation) (models.DailySeries, error) {
		return models.DailySeries{}, forecastErr
	}}
	agg := NewAggregator(&fakeGeocoder{loc: biarritz()}, forecast, staticMarine(models.MarineSeries{}, nil), nil, quietLogger)

	_, err := agg.GetForecast(context.Background(), "Biarritz")
	if !errors.Is(err, ErrUpstreamUnavailable) {
		t.Fatalf("error = %v, want ErrUpstreamUnavailable", err)
	}
	if kind, ok := datasource.KindOf(err); !ok || kind != datasource.KindTransport {
		t.Errorf("underlying reason lost: %v", err)
	}
}

func TestGetForecastMarineFailureDegrades(t *testing.T) {
	geo := &fakeGeocoder{loc: biarritz()}
	marine := staticMarine(models.MarineSeries{}, errors.New("marine exploded"))
	agg := NewAggregator(geo, staticForecast(threeDaySeries()), marine, nil, quietLogger)

	forecast, err := agg.GetForecast(context.Background(), "  Biarritz  ")
	if err != nil {
		t.Fatalf("GetForecast: %v", err)
	}
	if geo.calls[0] != "Biarritz" {
		t.Errorf("geocoder got %q, want trimmed query", geo.calls[0])
	}
	if len(forecast.Daily) != 3 {
		t.Fatalf("got %d days", len(forecast.Daily))
	}
	for _, d := range forecast.Daily {
		if d.WaveHeightM != nil {
			t.Errorf("%s wave height = %v, want nil", d.Date, *d.WaveHeightM)
		}
	}
}

func TestGetForecastMergesMarineByDate(t *testing.T) {
	marine := staticMarine(models.MarineSeries{
		Time:          []string{"2025-07-03", "2025-07-01", "2025-06-30", "2025-07-02"},
		WaveHeightMax: []*float64{models.Float(2.4), models.Float(1.1), models.Float(0.9), models.Float(math.Inf(1))},
	}, nil)
	agg := NewAggregator(&fakeGeocoder{loc: biarritz()}, staticForecast(threeDaySeries()), marine, nil, quietLogger)

	forecast, err := agg.GetForecast(context.Background(), "Biarritz")
	if err != nil {
		t.Fatalf("GetForecast: %v", err)
	}

	want := map[string]*float64{
		"2025-07-01": models.Float(1.1),
		"2025-07-02": nil,
		"2025-07-03": models.Float(2.4),
	}
	for _, d := range forecast.Daily {
		w := want[d.Date]
		switch {
		case w == nil && d.WaveHeightM != nil:
			t.Errorf("%s wave = %v, want nil", d.Date, *d.WaveHeightM)
		case w != nil && (d.WaveHeightM == nil || *d.WaveHeightM != *w):
			t.Errorf("%s wave = %v, want %v", d.Date, d.WaveHeightM, *w)
		}
	}
}

func TestGetForecastRunsFetchesConcurrently(t *testing.T) {
	forecastStarted := make(chan struct{})
	marineStarted := make(chan struct{})

	forecast := fakeForecast{fn: func(ctx context.Context, loc models.ResolvedLocation) (models.DailySeries, error) {
		close(forecastStarted)
		select {
		case <-marineStarted:
			return threeDaySeries(), nil
		case <-time.After(2 * time.Second):
			return models.DailySeries{}, errors.New("marine fetch never started alongside forecast")
		}
	}}
	marine := fakeMarine{fn: func(ctx context.Context, loc models.ResolvedLocation) (models.MarineSeries, error) {
		close(marineStarted)
		<-forecastStarted
		return models.MarineSeries{}, nil
	}}

	agg := NewAggregator(&fakeGeocoder{loc: biarritz()}, forecast, marine, nil, quietLogger)
	if _, err := agg.GetForecast(context.Background(), "Biarritz"); err != nil {
		t.Fatalf("GetForecast: %v", err)
	}
}

func TestGetForecastStampsGeneratedAt(t *testing.T) {
	agg := NewAggregator(&fakeGeocoder{loc: biarritz()}, staticForecast(threeDaySeries()), nil, nil, quietLogger)
	agg.SetClock(func() time.Time {
		return time.Date(2025, 7, 1, 8, 30, 0, 0, time.FixedZone("CEST", 2*3600))
	})

	forecast, err := agg.GetForecast(context.Background(), "Biarritz")
	if err != nil {
		t.Fatalf("GetForecast: %v", err)
	}
	if forecast.GeneratedAt != "2025-07-01T06:30:00.000Z" {
		t.Errorf("GeneratedAt = %s", forecast.GeneratedAt)
	}
	if forecast.Location != *biarritz() {
		t.Errorf("location = %+v", forecast.Location)
	}
}

func TestGetForecastTimezoneFallback(t *testing.T) {
	loc := biarritz()
	loc.Timezone = ""
	agg := NewAggregator(&fakeGeocoder{loc: loc}, staticForecast(threeDaySeries()), nil, nil, quietLogger)

	forecast, err := agg.GetForecast(context.Background(), "Biarritz")
	if err != nil {
		t.Fatalf("GetForecast: %v", err)
	}
	if forecast.Location.Timezone != "Europe/Paris" {
		t.Errorf("timezone = %q", forecast.Location.Timezone)
	}
}

func TestGetForecastEmptySeries(t *testing.T) {
	agg := NewAggregator(&fakeGeocoder{loc: biarritz()}, staticForecast(models.DailySeries{}), nil, nil, quietLogger)

	_, err := agg.GetForecast(context.Background(), "Biarritz")
	if !errors.Is(err, ErrUpstreamUnavailable) {
		t.Errorf("error = %v, want ErrUpstreamUnavailable", err)
	}
}
