// Package leaguestat fetches raw play-by-play payloads from the HockeyTech
// (LeagueStat) API. Endpoints are shared across all five leagues; only the
// query parameters and response envelope differ per feed family.
package leaguestat

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/maxtixador/scrapernhl/pkg/contracts"
	"github.com/maxtixador/scrapernhl/pkg/scrapererr"
)

const userAgent = "scrapernhl/1.0"

// jsonpRe captures the JSON body inside a named JSONP callback wrapper.
var jsonpRe = regexp.MustCompile(`(?s)\((.*)\);?\s*$`)

// Client is the HTTP client for HockeyTech feeds. Transient failures are
// retried with capped exponential backoff; HTTP 429 honors Retry-After.
type Client struct {
	httpClient *http.Client
	maxRetries int
	backoff    time.Duration
	maxBackoff time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithRetries sets the retry count and backoff bounds.
func WithRetries(max int, backoff, maxBackoff time.Duration) Option {
	return func(c *Client) {
		c.maxRetries = max
		c.backoff = backoff
		c.maxBackoff = maxBackoff
	}
}

// NewClient creates a feed client with the given request timeout.
func NewClient(timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: timeout},
		maxRetries: 3,
		backoff:    500 * time.Millisecond,
		maxBackoff: 8 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchEvents retrieves and decodes the raw play-by-play payload for one
// game. The returned value is the decoded event list ready for a league
// module's Extract: gc responses are unwrapped to the Pxpverbose body,
// statview responses are returned as decoded.
func (c *Client) FetchEvents(ctx context.Context, feed contracts.FeedConfig, gameID int64, lang string) (any, error) {
	url := feed.URL(gameID, lang)

	var lastErr error
	delay := c.backoff
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			wait := delay
			if rle, ok := lastErr.(*scrapererr.RateLimitError); ok && rle.RetryAfter > 0 {
				wait = rle.RetryAfter
			}
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(wait):
			}
			delay *= 2
			if delay > c.maxBackoff {
				delay = c.maxBackoff
			}
		}

		body, err := c.get(ctx, url)
		if err != nil {
			lastErr = err
			if retryable(err) {
				continue
			}
			return nil, err
		}
		return decode(feed.Type, url, body)
	}
	return nil, fmt.Errorf("fetching game %d after %d attempts: %w", gameID, c.maxRetries+1, lastErr)
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &scrapererr.APIError{URL: url, Err: err}
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &scrapererr.APIError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &scrapererr.APIError{URL: url, StatusCode: resp.StatusCode, Err: err}
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, &scrapererr.RateLimitError{
			APIError:   scrapererr.APIError{URL: url, StatusCode: resp.StatusCode},
			RetryAfter: retryAfter(resp),
		}
	case resp.StatusCode != http.StatusOK:
		return nil, &scrapererr.APIError{
			URL: url, StatusCode: resp.StatusCode, Body: truncate(string(body), 512),
		}
	}
	return body, nil
}

// decode strips optional JSONP wrappers, parses the JSON, and unwraps the
// feed-specific envelope.
func decode(feedType contracts.FeedType, url string, body []byte) (any, error) {
	content := string(body)
	switch {
	case strings.HasPrefix(content, "jsonp_") || strings.HasPrefix(content, "angular.callbacks"):
		if m := jsonpRe.FindStringSubmatch(content); m != nil {
			content = m[1]
		}
	case strings.HasPrefix(content, "([") || strings.HasPrefix(content, "({"):
		content = content[1 : len(content)-1]
	}

	var data any
	if err := json.Unmarshal([]byte(content), &data); err != nil {
		return nil, &scrapererr.APIError{URL: url, Err: fmt.Errorf("decoding response: %w", err)}
	}

	if feedType == contracts.FeedGameCenter {
		root, ok := data.(map[string]any)
		if !ok {
			return nil, &scrapererr.APIError{URL: url, Err: fmt.Errorf("expected gc envelope object, got %T", data)}
		}
		gc, ok := root["GC"].(map[string]any)
		if !ok {
			return nil, &scrapererr.APIError{URL: url, Err: fmt.Errorf("gc envelope missing GC body")}
		}
		pxp, ok := gc["Pxpverbose"]
		if !ok {
			return nil, &scrapererr.APIError{URL: url, Err: fmt.Errorf("gc envelope missing Pxpverbose body")}
		}
		return pxp, nil
	}
	return data, nil
}

func retryable(err error) bool {
	if _, ok := err.(*scrapererr.RateLimitError); ok {
		return true
	}
	if apiErr, ok := err.(*scrapererr.APIError); ok {
		return apiErr.StatusCode == 0 || apiErr.StatusCode >= 500
	}
	return false
}

func retryAfter(resp *http.Response) time.Duration {
	if v := resp.Header.Get("Retry-After"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return 0
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
