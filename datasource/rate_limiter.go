package datasource

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
)

// RateLimitedFetcher wraps a Fetcher with a token-bucket limiter shared by
// every upstream request made through it
type RateLimitedFetcher struct {
	fetcher Fetcher
	limiter *rate.Limiter
}

// NewRateLimitedFetcher creates a rate limited fetcher.
// rps is the maximum requests per second allowed (can be fractional);
// burst is the maximum burst size allowed.
func NewRateLimitedFetcher(fetcher Fetcher, rps float64, burst int) *RateLimitedFetcher {
	return &RateLimitedFetcher{
		fetcher: fetcher,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

// Fetch waits for limiter permission or context cancellation, then forwards
func (r *RateLimitedFetcher) Fetch(ctx context.Context, url string, headers map[string]string) (*Response, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, &RequestError{Kind: KindTransport, URL: url, Err: fmt.Errorf("rate limit wait canceled: %w", err)}
	}
	return r.fetcher.Fetch(ctx, url, headers)
}

// Ensure RateLimitedFetcher implements Fetcher
var _ Fetcher = (*RateLimitedFetcher)(nil)
