package api

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized means the server explicitly rejected the request
	// (HTTP 401/403). The presented token is presumed invalid or expired.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrUnavailable means the server could not be reached or answered
	// with a 5xx. It does not prove the token is invalid.
	ErrUnavailable = errors.New("server unavailable")

	// ErrRateLimited means the server answered HTTP 429.
	ErrRateLimited = errors.New("rate limited")
)

// RateLimitError carries the server-provided retry hint of a 429
// response. It matches errors.Is(err, ErrRateLimited).
type RateLimitError struct {
	// RetryAfter is the suggested wait in seconds; 0 when the server
	// gave no hint.
	RetryAfter int
}

func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limited, retry after %ds", e.RetryAfter)
	}
	return "rate limited"
}

func (e *RateLimitError) Unwrap() error { return ErrRateLimited }

// ParseError means a response body did not match the endpoint's
// canonical shape.
type ParseError struct {
	Endpoint string
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unexpected response from %s: %v", e.Endpoint, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// APIError is a non-2xx response outside the categories above. Message
// holds the server-provided error text, if any.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server error (%d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("server error (%d)", e.StatusCode)
}
