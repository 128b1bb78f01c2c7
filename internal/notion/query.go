package notion

import (
	"context"
	"fmt"
	"net/http"
)

// Filter is a database query filter. Exactly one of the property conditions
// or one of And/Or should be set.
type Filter struct {
	Property    string             `json:"property,omitempty"`
	Title       *TextFilter        `json:"title,omitempty"`
	MultiSelect *MultiSelectFilter `json:"multi_select,omitempty"`
	And         []Filter           `json:"and,omitempty"`
	Or          []Filter           `json:"or,omitempty"`
}

// TextFilter matches title and rich_text properties.
type TextFilter struct {
	Equals string `json:"equals"`
}

// MultiSelectFilter matches multi_select properties.
type MultiSelectFilter struct {
	Contains string `json:"contains"`
}

// QueryRequest is the body of a database query.
type QueryRequest struct {
	Filter      *Filter `json:"filter,omitempty"`
	StartCursor string  `json:"start_cursor,omitempty"`
	PageSize    int     `json:"page_size,omitempty"`
}

// QueryResponse is one page of database query results.
type QueryResponse struct {
	Results    []Page `json:"results"`
	HasMore    bool   `json:"has_more"`
	NextCursor string `json:"next_cursor"`
}

// QueryDatabase runs a single query page against the client's database.
func (c *Client) QueryDatabase(ctx context.Context, q QueryRequest) (*QueryResponse, error) {
	var resp QueryResponse
	path := fmt.Sprintf("/databases/%s/query", c.databaseID)
	if err := c.do(ctx, http.MethodPost, path, q, &resp); err != nil {
		return nil, fmt.Errorf("querying database: %w", err)
	}
	return &resp, nil
}
