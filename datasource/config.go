package datasource

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// Duration is a time.Duration that reads "30s"-style strings from JSON
type Duration struct {
	time.Duration
}

// UnmarshalJSON accepts either a duration string or a number of seconds
func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", s, err)
		}
		d.Duration = parsed
		return nil
	}
	var secs float64
	if err := json.Unmarshal(b, &secs); err != nil {
		return fmt.Errorf("invalid duration %s", string(b))
	}
	d.Duration = time.Duration(secs * float64(time.Second))
	return nil
}

// MarshalJSON writes the duration as a string
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// Config represents the application configuration
type Config struct {
	HTTP struct {
		Host string `json:"host"`
		Port int    `json:"port"`
	} `json:"http"`

	// Open-Meteo endpoints and request policy
	Upstream struct {
		GeocodingURL string   `json:"geocodingUrl"`
		ForecastURL  string   `json:"forecastUrl"`
		MarineURL    string   `json:"marineUrl"`
		UserAgent    string   `json:"userAgent"`
		Timeout      Duration `json:"timeout"`
		ForecastDays int      `json:"forecastDays"`
		RateLimit    float64  `json:"rateLimit"` // requests per second, 0 disables
		Burst        int      `json:"burst"`
	} `json:"upstream"`

	// Geocoding results cache; forecasts are never cached
	Cache struct {
		TTL        Duration `json:"ttl"`
		SQLitePath string   `json:"sqlitePath"` // empty keeps the cache in memory only
	} `json:"cache"`

	// Locations resolved in the background to keep the cache warm
	WarmLocations []string `json:"warmLocations"`
	WarmInterval  Duration `json:"warmInterval"`

	Logging struct {
		Level  string `json:"level"`
		Format string `json:"format"` // text or json
	} `json:"logging"`
}

// DefaultConfig creates a default configuration
func DefaultConfig() *Config {
	config := &Config{}
	config.HTTP.Port = 8080
	config.Upstream.GeocodingURL = "https://geocoding-api.open-meteo.com/v1/search"
	config.Upstream.ForecastURL = "https://api.open-meteo.com/v1/forecast"
	config.Upstream.MarineURL = "https://marine-api.open-meteo.com/v1/marine"
	config.Upstream.UserAgent = "activity-forecast/1.0 (+https://open-meteo.com)"
	config.Upstream.Timeout = Duration{10 * time.Second}
	config.Upstream.ForecastDays = 7
	config.Upstream.RateLimit = 5
	config.Upstream.Burst = 10
	config.Cache.TTL = Duration{24 * time.Hour}
	config.WarmInterval = Duration{6 * time.Hour}
	config.Logging.Level = "info"
	config.Logging.Format = "text"
	return config
}

// LoadConfig loads configuration from a JSON file on top of the defaults.
// A missing file is not an error; environment overrides are applied last.
func LoadConfig(filename string) (*Config, error) {
	config := DefaultConfig()

	file, err := os.Open(filename)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to open config: %w", err)
	default:
		defer file.Close()
		decoder := json.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(config); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", filename, err)
		}
	}

	config.applyEnv()
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) applyEnv() {
	overrides := map[string]*string{
		"OPEN_METEO_GEOCODING_URL": &c.Upstream.GeocodingURL,
		"OPEN_METEO_FORECAST_URL":  &c.Upstream.ForecastURL,
		"OPEN_METEO_MARINE_URL":    &c.Upstream.MarineURL,
		"LOCATION_CACHE_PATH":      &c.Cache.SQLitePath,
		"LOG_LEVEL":                &c.Logging.Level,
	}
	for name, field := range overrides {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			*field = v
		}
	}
}

// Validate checks the settings the service cannot run without
func (c *Config) Validate() error {
	if c.Upstream.GeocodingURL == "" || c.Upstream.ForecastURL == "" || c.Upstream.MarineURL == "" {
		return errors.New("upstream geocoding, forecast and marine URLs are required")
	}
	if c.Upstream.ForecastDays < 1 || c.Upstream.ForecastDays > 16 {
		return fmt.Errorf("forecastDays must be between 1 and 16, got %d", c.Upstream.ForecastDays)
	}
	if c.Upstream.RateLimit < 0 {
		return fmt.Errorf("rateLimit must not be negative, got %v", c.Upstream.RateLimit)
	}
	if c.HTTP.Port < 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.HTTP.Port)
	}
	return nil
}
