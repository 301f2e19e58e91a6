package openmeteo

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"activity-forecast/datasource"
	"activity-forecast/models"
)

var dailyVariables = []string{
	"temperature_2m_max",
	"temperature_2m_min",
	"precipitation_sum",
	"rain_sum",
	"snowfall_sum",
	"windspeed_10m_max",
	"winddirection_10m_dominant",
	"cloudcover_mean",
	"sunshine_duration",
}

// forecastResponse represents the forecast API response structure.
// Snow depth is only published hourly, in metres.
type forecastResponse struct {
	Timezone string `json:"timezone"`
	Daily    struct {
		Time             []string   `json:"time"`
		TemperatureMax   []float64  `json:"temperature_2m_max"`
		TemperatureMin   []float64  `json:"temperature_2m_min"`
		PrecipitationSum []float64  `json:"precipitation_sum"`
		RainSum          []float64  `json:"rain_sum"`
		SnowfallSum      []float64  `json:"snowfall_sum"`
		SnowDepth        []*float64 `json:"snow_depth"`
		WindspeedMax     []float64  `json:"windspeed_10m_max"`
		WindDirection    []*float64 `json:"winddirection_10m_dominant"`
		CloudCoverMean   []float64  `json:"cloudcover_mean"`
		SunshineDuration []float64  `json:"sunshine_duration"`
	} `json:"daily"`
	Hourly struct {
		Time      []string   `json:"time"`
		SnowDepth []*float64 `json:"snow_depth"`
	} `json:"hourly"`
}

// FetchDaily fetches the daily forecast for a resolved location
func (c *Client) FetchDaily(ctx context.Context, location models.ResolvedLocation) (models.DailySeries, error) {
	params := url.Values{}
	params.Set("latitude", coordinate(location.Latitude))
	params.Set("longitude", coordinate(location.Longitude))
	for _, v := range dailyVariables {
		params.Add("daily", v)
	}
	params.Set("hourly", "snow_depth")
	params.Set("timezone", timezoneParam(location.Timezone))
	params.Set("forecast_days", strconv.Itoa(c.forecastDays))

	var response forecastResponse
	if err := c.getJSON(ctx, "forecast", c.forecastURL, params, &response); err != nil {
		return models.DailySeries{}, err
	}

	d := response.Daily
	n := len(d.Time)
	columns := map[string]int{
		"temperature_2m_max":         len(d.TemperatureMax),
		"temperature_2m_min":         len(d.TemperatureMin),
		"precipitation_sum":          len(d.PrecipitationSum),
		"rain_sum":                   len(d.RainSum),
		"snowfall_sum":               len(d.SnowfallSum),
		"windspeed_10m_max":          len(d.WindspeedMax),
		"winddirection_10m_dominant": len(d.WindDirection),
		"cloudcover_mean":            len(d.CloudCoverMean),
		"sunshine_duration":          len(d.SunshineDuration),
	}
	for name, got := range columns {
		if got != n {
			return models.DailySeries{}, &datasource.RequestError{
				Kind: datasource.KindDecode,
				URL:  c.forecastURL,
				Err:  fmt.Errorf("daily %s has %d values for %d dates", name, got, n),
			}
		}
	}

	return models.DailySeries{
		Timezone:         response.Timezone,
		Time:             d.Time,
		TemperatureMax:   d.TemperatureMax,
		TemperatureMin:   d.TemperatureMin,
		PrecipitationSum: d.PrecipitationSum,
		RainSum:          d.RainSum,
		SnowfallSum:      d.SnowfallSum,
		SnowDepth:        d.SnowDepth,
		WindspeedMax:     d.WindspeedMax,
		WindDirection:    d.WindDirection,
		CloudCoverMean:   d.CloudCoverMean,
		SunshineDuration: d.SunshineDuration,
		HourlyTime:       response.Hourly.Time,
		HourlySnowDepth:  response.Hourly.SnowDepth,
	}, nil
}

// timezoneParam lets Open-Meteo pick the zone when geocoding did not supply one
func timezoneParam(tz string) string {
	if tz == "" {
		return "auto"
	}
	return tz
}
