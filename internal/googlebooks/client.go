// Package googlebooks queries the public Google Books API for author and
// book discovery before import. Results carry transient negative ids valid
// only for the current search session; the reconcile package turns them
// into persisted rows on demand.
package googlebooks

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://www.googleapis.com/books/v1"

// Client provides access to the Google Books volumes API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	limiter    *rate.Limiter
	log        zerolog.Logger

	// transientSeq mints session-scoped negative ids for search results.
	transientSeq atomic.Int64
}

// NewClient creates a catalog client. baseURL empty uses the public API;
// apiKey empty sends unauthenticated requests, which Google permits at a
// lower quota.
func NewClient(baseURL, apiKey string, log zerolog.Logger) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL: baseURL,
		apiKey:  apiKey,
		// Stay well under Google's default per-minute quota.
		limiter: rate.NewLimiter(rate.Every(time.Second), 5),
		log:     log,
	}
}

// wait blocks until the rate limiter allows a request.
func (c *Client) wait(ctx context.Context) error {
	return c.limiter.Wait(ctx)
}

// nextTransientID returns the next negative session-scoped id.
func (c *Client) nextTransientID() int64 {
	return -c.transientSeq.Add(1)
}
