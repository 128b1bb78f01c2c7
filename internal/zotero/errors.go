package zotero

import (
	"errors"
	"fmt"
	"net/http"
)

// Common errors returned by the Zotero client.
var (
	// ErrAuthError indicates a missing or invalid API key.
	ErrAuthError = errors.New("Zotero authentication error")

	// ErrNotFound indicates the user or library was not found.
	ErrNotFound = errors.New("not found in Zotero")

	// ErrRateLimited indicates the server asked us to back off.
	ErrRateLimited = errors.New("Zotero rate limit exceeded")

	// ErrNetworkError indicates a transport failure, including timeouts.
	ErrNetworkError = errors.New("network error communicating with Zotero")

	// ErrInvalidResponse indicates a response body that could not be decoded.
	ErrInvalidResponse = errors.New("invalid response from Zotero")
)

// APIError represents a non-success HTTP response from the Zotero API.
type APIError struct {
	StatusCode int
	Message    string
	URL        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("Zotero API error (status %d): %s (url: %s)", e.StatusCode, e.Message, e.URL)
}

// IsAuthError returns true if the error indicates an authentication problem.
func IsAuthError(err error) bool {
	if errors.Is(err, ErrAuthError) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden
	}
	return false
}

// IsNotFound returns true if the error indicates a missing resource.
func IsNotFound(err error) bool {
	if errors.Is(err, ErrNotFound) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusNotFound
	}
	return false
}

// checkHTTPErrors returns an error if the HTTP response indicates a problem.
func checkHTTPErrors(resp *http.Response) error {
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: status %d", ErrAuthError, resp.StatusCode)
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, resp.Request.URL.Path)
	case resp.StatusCode == http.StatusTooManyRequests:
		return fmt.Errorf("%w: status %d", ErrRateLimited, resp.StatusCode)
	default:
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    http.StatusText(resp.StatusCode),
			URL:        resp.Request.URL.String(),
		}
	}
}
