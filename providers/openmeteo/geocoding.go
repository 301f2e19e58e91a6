package openmeteo

import (
	"context"
	"fmt"
	"net/url"

	"activity-forecast/datasource"
	"activity-forecast/models"

	"github.com/golang/geo/s2"
)

// geocodingResponse represents the search API response structure
type geocodingResponse struct {
	Results []struct {
		Name      string  `json:"name"`
		Country   string  `json:"country"`
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
		Timezone  string  `json:"timezone"`
	} `json:"results"`
}

// Geocode returns the best match for query, or nil when nothing matched
func (c *Client) Geocode(ctx context.Context, query string) (*models.ResolvedLocation, error) {
	params := url.Values{}
	params.Set("name", query)
	params.Set("count", "1")
	params.Set("language", "en")
	params.Set("format", "json")

	var response geocodingResponse
	if err := c.getJSON(ctx, "geocoding", c.geocodingURL, params, &response); err != nil {
		return nil, err
	}
	if len(response.Results) == 0 {
		return nil, nil
	}

	match := response.Results[0]
	if !s2.LatLngFromDegrees(match.Latitude, match.Longitude).IsValid() {
		return nil, &datasource.RequestError{
			Kind: datasource.KindDecode,
			URL:  c.geocodingURL,
			Err:  fmt.Errorf("match %q has invalid coordinates %v,%v", match.Name, match.Latitude, match.Longitude),
		}
	}

	return &models.ResolvedLocation{
		Name:      match.Name,
		Country:   match.Country,
		Latitude:  match.Latitude,
		Longitude: match.Longitude,
		Timezone:  match.Timezone,
	}, nil
}
