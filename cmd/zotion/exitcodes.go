package main

import (
	"errors"

	"github.com/matsen/zotion/internal/config"
	"github.com/matsen/zotion/internal/notion"
	"github.com/matsen/zotion/internal/zotero"
)

// Exit codes
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (invalid arguments, title not found, runtime failure)
	ExitConfigError = 2 // Configuration error (missing credentials, malformed config file)
	ExitAPIError    = 3 // Zotero or Notion API error (auth, rate limit, network)
)

// exitCodeFor maps an error to the exit code reported for it.
func exitCodeFor(err error) int {
	var zerr *zotero.APIError
	var nerr *notion.APIError

	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, config.ErrInvalidConfig), errors.Is(err, config.ErrInvalidTimeout):
		return ExitConfigError
	case errors.As(err, &zerr), errors.As(err, &nerr):
		return ExitAPIError
	case errors.Is(err, zotero.ErrAuthError),
		errors.Is(err, zotero.ErrNotFound),
		errors.Is(err, zotero.ErrRateLimited),
		errors.Is(err, zotero.ErrNetworkError),
		errors.Is(err, zotero.ErrInvalidResponse),
		errors.Is(err, notion.ErrAuthError),
		errors.Is(err, notion.ErrNotFound),
		errors.Is(err, notion.ErrRateLimited),
		errors.Is(err, notion.ErrNetworkError),
		errors.Is(err, notion.ErrInvalidResponse):
		return ExitAPIError
	default:
		return ExitError
	}
}
