package datasource

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failed upstream request
type ErrorKind int

const (
	// KindTransport is a connection or transport failure
	KindTransport ErrorKind = iota
	// KindStatus is a non-2xx response
	KindStatus
	// KindDecode is a body that could not be decoded
	KindDecode
)

func (k ErrorKind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindStatus:
		return "status"
	case KindDecode:
		return "decode"
	}
	return "unknown"
}

// RequestError is returned by the gateway for every failed request
type RequestError struct {
	Kind   ErrorKind
	URL    string
	Status int    // set for KindStatus
	Body   string // set for KindStatus
	Err    error
}

func (e *RequestError) Error() string {
	switch e.Kind {
	case KindStatus:
		return fmt.Sprintf("request to %s failed with status %d: %s", e.URL, e.Status, e.Body)
	case KindDecode:
		return fmt.Sprintf("failed to parse response from %s: %v", e.URL, e.Err)
	default:
		return fmt.Sprintf("failed to fetch %s: %v", e.URL, e.Err)
	}
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of a gateway error, and false for any other error
func KindOf(err error) (ErrorKind, bool) {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.Kind, true
	}
	return 0, false
}
