package openmeteo

import (
	"context"
	"net/url"
	"strconv"

	"activity-forecast/models"
)

// marineResponse represents the marine API response structure
type marineResponse struct {
	Daily struct {
		Time          []string   `json:"time"`
		WaveHeightMax []*float64 `json:"wave_height_max"`
	} `json:"daily"`
}

// FetchMarine fetches daily maximum wave heights. Inland coordinates make the
// API answer with an error status, which callers treat as "no marine data".
func (c *Client) FetchMarine(ctx context.Context, location models.ResolvedLocation) (models.MarineSeries, error) {
	params := url.Values{}
	params.Set("latitude", coordinate(location.Latitude))
	params.Set("longitude", coordinate(location.Longitude))
	params.Set("daily", "wave_height_max")
	params.Set("timezone", timezoneParam(location.Timezone))
	params.Set("forecast_days", strconv.Itoa(c.forecastDays))

	var response marineResponse
	if err := c.getJSON(ctx, "marine", c.marineURL, params, &response); err != nil {
		return models.MarineSeries{}, err
	}
	return models.MarineSeries{
		Time:          response.Daily.Time,
		WaveHeightMax: response.Daily.WaveHeightMax,
	}, nil
}
