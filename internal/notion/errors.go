package notion

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/goccy/go-json"
)

// Common errors returned by the Notion client.
var (
	// ErrAuthError indicates a missing or invalid integration token.
	ErrAuthError = errors.New("Notion authentication error")

	// ErrNotFound indicates the page or database does not exist or is not shared.
	ErrNotFound = errors.New("not found in Notion")

	// ErrRateLimited indicates the server returned 429.
	ErrRateLimited = errors.New("Notion rate limit exceeded")

	// ErrNetworkError indicates a transport failure, including timeouts.
	ErrNetworkError = errors.New("network error communicating with Notion")

	// ErrInvalidResponse indicates a response body that could not be decoded.
	ErrInvalidResponse = errors.New("invalid response from Notion")

	// ErrInvalidPageID indicates a page identifier that is not a UUID.
	ErrInvalidPageID = errors.New("invalid Notion page id")
)

// APIError represents an error object returned by the Notion API.
type APIError struct {
	StatusCode int    `json:"status"`
	Code       string `json:"code"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("Notion API error (status %d, code %s): %s", e.StatusCode, e.Code, e.Message)
}

// Unwrap maps well-known statuses onto the sentinel errors.
func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrAuthError
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusTooManyRequests:
		return ErrRateLimited
	}
	return nil
}

// IsAuthError returns true if the error indicates an authentication problem.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrAuthError)
}

// IsNotFound returns true if the error indicates a missing page or database.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsRateLimited returns true if the error indicates rate limiting.
func IsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimited)
}

// readAPIError builds an APIError from a non-2xx response.
func readAPIError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	apiErr := &APIError{}
	if err := json.Unmarshal(body, apiErr); err != nil || apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	apiErr.StatusCode = resp.StatusCode
	if apiErr.Code == "" {
		apiErr.Code = "api_error"
	}
	return apiErr
}
