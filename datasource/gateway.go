package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// maxErrorBody bounds how much of a failed response is kept in the error
const maxErrorBody = 2048

// Response is a completed upstream response
type Response struct {
	Status int
	Body   []byte
}

// OK reports whether the status is 2xx
func (r *Response) OK() bool {
	return r.Status >= 200 && r.Status < 300
}

// HTTPFetcher is the net/http implementation of Fetcher
type HTTPFetcher struct {
	client    *http.Client
	userAgent string
}

// Ensure HTTPFetcher implements Fetcher
var _ Fetcher = (*HTTPFetcher)(nil)

// NewHTTPFetcher creates a fetcher with the given request timeout and User-Agent
func NewHTTPFetcher(timeout time.Duration, userAgent string) *HTTPFetcher {
	return &HTTPFetcher{
		client: &http.Client{
			Timeout: timeout,
		},
		userAgent: userAgent,
	}
}

// Fetch executes a GET request. Transport failures and non-2xx statuses are
// returned as *RequestError.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string, headers map[string]string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &RequestError{Kind: KindTransport, URL: url, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &RequestError{Kind: KindTransport, URL: url, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &RequestError{Kind: KindTransport, URL: url, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	out := &Response{Status: resp.StatusCode, Body: body}
	if !out.OK() {
		return nil, statusError(url, out)
	}
	return out, nil
}

// GetJSON fetches url and decodes the body into v
func GetJSON(ctx context.Context, f Fetcher, url string, headers map[string]string, v any) error {
	resp, err := f.Fetch(ctx, url, headers)
	if err != nil {
		return err
	}
	if !resp.OK() {
		return statusError(url, resp)
	}
	if err := json.Unmarshal(resp.Body, v); err != nil {
		return &RequestError{Kind: KindDecode, URL: url, Err: err}
	}
	return nil
}

func statusError(url string, resp *Response) *RequestError {
	body := resp.Body
	if len(body) > maxErrorBody {
		body = body[:maxErrorBody]
	}
	return &RequestError{
		Kind:   KindStatus,
		URL:    url,
		Status: resp.Status,
		Body:   string(body),
		Err:    fmt.Errorf("API error (status %d)", resp.Status),
	}
}
