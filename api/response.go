package api

import (
	"errors"
	"net/http"

	"activity-forecast/weather"

	"github.com/gin-gonic/gin"
)

// Error codes returned in the error envelope
const (
	CodeBadUserInput     = "BAD_USER_INPUT"
	CodeLocationNotFound = "LOCATION_NOT_FOUND"
	CodeUpstreamError    = "WEATHER_UPSTREAM_ERROR"
	CodeInternalError    = "INTERNAL_ERROR"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Reason  string `json:"reason,omitempty"`
}

// writeError maps an aggregator error onto a status code and envelope and
// returns the outcome label used for metrics
func writeError(c *gin.Context, err error) string {
	var noResults *weather.NoResultsError
	switch {
	case errors.Is(err, weather.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    CodeBadUserInput,
			Message: "Location is required",
		})
		return "bad_input"
	case errors.As(err, &noResults):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Code:    CodeLocationNotFound,
			Message: noResults.Error(),
		})
		return "not_found"
	case errors.Is(err, weather.ErrUpstreamUnavailable):
		reason := err.Error()
		var upstream *weather.UpstreamError
		if errors.As(err, &upstream) && upstream.Err != nil {
			reason = upstream.Err.Error()
		}
		c.JSON(http.StatusBadGateway, ErrorResponse{
			Code:    CodeUpstreamError,
			Message: "Failed to retrieve weather data",
			Reason:  reason,
		})
		return "upstream_error"
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    CodeInternalError,
			Message: "Internal server error",
		})
		return "internal_error"
	}
}
