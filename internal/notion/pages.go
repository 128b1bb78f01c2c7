package notion

import (
	"context"
	"fmt"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// Page is a database page as returned by the API. Properties are kept raw
// and read on demand.
type Page struct {
	ID             string                     `json:"id"`
	URL            string                     `json:"url"`
	CreatedTime    string                     `json:"created_time"`
	LastEditedTime string                     `json:"last_edited_time"`
	Archived       bool                       `json:"archived"`
	Properties     map[string]json.RawMessage `json:"properties"`
}

// DateStart returns the start value of the date property name, or "" when
// the property is missing, empty or not a date.
func (p Page) DateStart(name string) string {
	raw, ok := p.Properties[name]
	if !ok {
		return ""
	}
	var prop struct {
		Date *DateValue `json:"date"`
	}
	if err := json.Unmarshal(raw, &prop); err != nil || prop.Date == nil {
		return ""
	}
	return prop.Date.Start
}

// TitleText returns the plain text of the title property name.
func (p Page) TitleText(name string) string {
	raw, ok := p.Properties[name]
	if !ok {
		return ""
	}
	var prop TitleProperty
	if err := json.Unmarshal(raw, &prop); err != nil {
		return ""
	}
	return PlainText(prop.Title)
}

type parent struct {
	DatabaseID string `json:"database_id"`
}

type createPageRequest struct {
	Parent     parent     `json:"parent"`
	Properties Properties `json:"properties"`
}

type updatePageRequest struct {
	Properties Properties `json:"properties"`
}

// CreatePage creates a page with props in the client's database.
func (c *Client) CreatePage(ctx context.Context, props Properties) (*Page, error) {
	req := createPageRequest{
		Parent:     parent{DatabaseID: c.databaseID},
		Properties: props,
	}
	var page Page
	if err := c.do(ctx, http.MethodPost, "/pages", req, &page); err != nil {
		return nil, fmt.Errorf("creating page: %w", err)
	}
	return &page, nil
}

// UpdatePage overwrites props on the page pageID.
func (c *Client) UpdatePage(ctx context.Context, pageID string, props Properties) (*Page, error) {
	id, err := uuid.Parse(pageID)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPageID, pageID)
	}
	var page Page
	if err := c.do(ctx, http.MethodPatch, "/pages/"+id.String(), updatePageRequest{Properties: props}, &page); err != nil {
		return nil, fmt.Errorf("updating page %s: %w", id, err)
	}
	return &page, nil
}
