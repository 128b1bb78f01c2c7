// Package zotero provides a read-only client for the Zotero Web API v3.
package zotero

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/matsen/zotion/internal/reference"
	"github.com/rs/zerolog"
)

const (
	// BaseURL is the Zotero Web API base URL.
	BaseURL = "https://api.zotero.org"

	// APIVersion is sent as the Zotero-API-Version header.
	APIVersion = "3"

	// DefaultTimeout bounds every request.
	DefaultTimeout = 30 * time.Second

	// DefaultPageSize is the per-request limit; the API caps it at 100.
	DefaultPageSize = 100
)

// Client fetches items and collections from a user library.
type Client struct {
	httpClient *http.Client
	apiKey     string
	userID     string
	baseURL    string
	pageSize   int
	log        zerolog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithAPIKey sets the API key sent as the Zotero-API-Key header.
func WithAPIKey(key string) ClientOption {
	return func(c *Client) {
		c.apiKey = key
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		c.baseURL = u
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithPageSize sets the number of records requested per page.
func WithPageSize(n int) ClientOption {
	return func(c *Client) {
		if n > 0 {
			c.pageSize = n
		}
	}
}

// WithLogger sets the logger used for progress and skipped records.
func WithLogger(log zerolog.Logger) ClientOption {
	return func(c *Client) {
		c.log = log
	}
}

// NewClient creates a client for the library of userID.
func NewClient(userID string, opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		userID:     userID,
		baseURL:    BaseURL,
		pageSize:   DefaultPageSize,
		log:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.With().Str("component", "zotero").Logger()
	return c
}

// FetchItems returns every item in the library, following pagination.
// Items that cannot be decoded are logged and skipped.
func (c *Client) FetchItems(ctx context.Context) ([]reference.Item, error) {
	c.log.Debug().Msg("fetching Zotero references")

	raws, err := c.getAll(ctx, "items")
	if err != nil {
		return nil, fmt.Errorf("fetching items: %w", err)
	}

	items := make([]reference.Item, 0, len(raws))
	for i, raw := range raws {
		var item reference.Item
		if err := json.Unmarshal(raw, &item); err != nil {
			c.log.Warn().Int("index", i).Err(err).Msg("skipping undecodable item")
			continue
		}
		items = append(items, item)
	}

	c.log.Debug().Int("count", len(items)).Msg("fetched references")
	return items, nil
}

// FetchCollections returns every collection in the library, following pagination.
// Collections that cannot be decoded are logged and skipped.
func (c *Client) FetchCollections(ctx context.Context) ([]reference.Collection, error) {
	raws, err := c.getAll(ctx, "collections")
	if err != nil {
		return nil, fmt.Errorf("fetching collections: %w", err)
	}

	cols := make([]reference.Collection, 0, len(raws))
	for i, raw := range raws {
		var col reference.Collection
		if err := json.Unmarshal(raw, &col); err != nil {
			c.log.Warn().Int("index", i).Err(err).Msg("skipping invalid collection format")
			continue
		}
		cols = append(cols, col)
	}

	c.log.Debug().Int("count", len(cols)).Msg("fetched collections")
	return cols, nil
}

// firstPageURL builds the URL of the first page of a library listing.
func (c *Client) firstPageURL(resource string) string {
	q := url.Values{}
	q.Set("format", "json")
	q.Set("limit", strconv.Itoa(c.pageSize))
	return fmt.Sprintf("%s/users/%s/%s?%s", c.baseURL, url.PathEscape(c.userID), resource, q.Encode())
}

// getAll fetches every page of a listing by following Link rel="next".
func (c *Client) getAll(ctx context.Context, resource string) ([]json.RawMessage, error) {
	var all []json.RawMessage
	seen := make(map[string]bool)

	for next := c.firstPageURL(resource); next != ""; {
		if seen[next] {
			c.log.Warn().Str("url", next).Msg("pagination loop detected, stopping")
			break
		}
		seen[next] = true

		page, link, err := c.getPage(ctx, next)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		next = link
	}

	return all, nil
}

// getPage fetches one page and returns its records and the next page URL.
func (c *Client) getPage(ctx context.Context, pageURL string) ([]json.RawMessage, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Zotero-API-Version", APIVersion)
	if c.apiKey != "" {
		req.Header.Set("Zotero-API-Key", c.apiKey)
	}

	c.log.Debug().Str("url", pageURL).Msg("requesting page")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrNetworkError, err)
	}
	defer resp.Body.Close()

	if err := checkHTTPErrors(resp); err != nil {
		return nil, "", err
	}

	var page []json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, "", fmt.Errorf("%w: decoding page: %v", ErrInvalidResponse, err)
	}

	if total := resp.Header.Get("Total-Results"); total != "" {
		c.log.Debug().Str("total", total).Int("page", len(page)).Msg("received page")
	}

	return page, nextLink(resp.Header.Get("Link")), nil
}
