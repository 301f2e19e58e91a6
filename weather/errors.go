package weather

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is returned for an empty or blank location query
	ErrInvalidInput = errors.New("location is required")

	// ErrNoResults matches every *NoResultsError
	ErrNoResults = errors.New("no results found")

	// ErrUpstreamUnavailable matches every *UpstreamError
	ErrUpstreamUnavailable = errors.New("weather upstream unavailable")
)

// NoResultsError means geocoding matched nothing. It is a user input problem,
// not a service fault.
type NoResultsError struct {
	Query string
}

func (e *NoResultsError) Error() string {
	return fmt.Sprintf("No results found for location %q.", e.Query)
}

// Is makes errors.Is(err, ErrNoResults) succeed
func (e *NoResultsError) Is(target error) bool {
	return target == ErrNoResults
}

// UpstreamError is a fatal failure of the geocoding or forecast call
type UpstreamError struct {
	Op  string // geocoding or forecast
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s request failed: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrUpstreamUnavailable) succeed
func (e *UpstreamError) Is(target error) bool {
	return target == ErrUpstreamUnavailable
}
