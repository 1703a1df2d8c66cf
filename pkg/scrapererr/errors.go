// Package scrapererr defines the error taxonomy shared across the scraper:
// parsing failures are fatal for a single game, API failures carry status
// codes for retry decisions, and validation failures report the missing
// canonical columns.
package scrapererr

import (
	"fmt"
	"time"
)

// ParsingError reports a malformed or unexpected raw feed shape. It aborts
// canonicalization for the affected game only; no partial canonical rows
// are ever returned.
type ParsingError struct {
	League string
	GameID int64
	Reason string
}

func (e *ParsingError) Error() string {
	return fmt.Sprintf("parsing %s game %d: %s", e.League, e.GameID, e.Reason)
}

// DataValidationError reports canonical output missing required columns.
// It is raised by the optional strict schema check, never by the core
// pipeline itself.
type DataValidationError struct {
	Missing []string
}

func (e *DataValidationError) Error() string {
	return fmt.Sprintf("canonical output missing required columns: %v", e.Missing)
}

// APIError reports a failed or unexpected API response.
type APIError struct {
	URL        string
	StatusCode int
	Body       string
	Err        error
}

func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("api error: status=%d url=%s", e.StatusCode, e.URL)
	}
	return fmt.Sprintf("api error: url=%s: %v", e.URL, e.Err)
}

func (e *APIError) Unwrap() error { return e.Err }

// RateLimitError is an APIError for HTTP 429 responses. RetryAfter is zero
// when the server did not provide a Retry-After header.
type RateLimitError struct {
	APIError
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limit exceeded: url=%s retry_after=%s", e.URL, e.RetryAfter)
}

// CacheError reports a failed cache read or write. Lookups treat it as a
// miss; writes surface it to the caller's log and continue.
type CacheError struct {
	Op  string
	Key string
	Err error
}

func (e *CacheError) Error() string {
	return fmt.Sprintf("cache %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *CacheError) Unwrap() error { return e.Err }
