package notion

import (
	"context"
	"fmt"
)

// Match is an existing page that mirrors a reference.
type Match struct {
	PageID string
	// Modified is the recorded source modification time, or the page's
	// last_edited_time when none was recorded.
	Modified string
}

// ReferenceFilter builds the lookup filter: an exact title match, narrowed
// to pages in any of the non-empty collection names.
func ReferenceFilter(title string, collectionNames []string) *Filter {
	f := &Filter{And: []Filter{
		{Property: PropTitle, Title: &TextFilter{Equals: title}},
	}}

	var anyOf []Filter
	for _, name := range collectionNames {
		if name == "" {
			continue
		}
		anyOf = append(anyOf, Filter{Property: PropCollections, MultiSelect: &MultiSelectFilter{Contains: name}})
	}
	if len(anyOf) > 0 {
		f.And = append(f.And, Filter{Or: anyOf})
	}
	return f
}

// FindReference returns the page mirroring the reference with title in
// collectionNames, or nil if none exists. When several pages match, the first
// in response order is returned and a warning is logged.
func (c *Client) FindReference(ctx context.Context, title string, collectionNames []string) (*Match, error) {
	resp, err := c.QueryDatabase(ctx, QueryRequest{Filter: ReferenceFilter(title, collectionNames)})
	if err != nil {
		return nil, fmt.Errorf("finding reference %q: %w", title, err)
	}

	if len(resp.Results) == 0 {
		return nil, nil
	}
	if len(resp.Results) > 1 || resp.HasMore {
		c.log.Warn().
			Str("title", title).
			Strs("collections", collectionNames).
			Int("matches", len(resp.Results)).
			Msg("multiple entries found for title and collections, returning the first match")
	}

	page := resp.Results[0]
	modified := page.DateStart(PropModifiedDate)
	if modified == "" {
		modified = page.LastEditedTime
	}
	c.log.Debug().Str("page_id", page.ID).Str("modified", modified).Msg("found existing page")
	return &Match{PageID: page.ID, Modified: modified}, nil
}
