// Package mapper converts Zotero items into Notion page properties.
package mapper

import (
	"strings"
	"unicode/utf8"

	"github.com/matsen/zotion/internal/dateutil"
	"github.com/matsen/zotion/internal/notion"
	"github.com/matsen/zotion/internal/reference"
	"github.com/matsen/zotion/internal/validation"
	"github.com/rs/zerolog"
)

const (
	// MaxAbstractLen is the Notion rich text content limit, in characters.
	MaxAbstractLen = 2000

	// Ellipsis is appended to truncated abstracts.
	Ellipsis = "..."

	// DefaultStatus is the Status given to newly created pages.
	DefaultStatus = "Not started"

	// DefaultCategory is the Category given to newly created pages.
	DefaultCategory = "Academic"
)

// Mode selects between the create and update payloads.
type Mode int

const (
	// ModeUpdate omits workflow defaults so user edits in Notion survive.
	ModeUpdate Mode = iota
	// ModeCreate adds Status and Category defaults.
	ModeCreate
)

// Mapper builds Notion properties from Zotero items.
type Mapper struct {
	dates    *dateutil.Normalizer
	status   string
	category string
	log      zerolog.Logger
}

// Option configures a Mapper.
type Option func(*Mapper)

// WithDefaults overrides the Status and Category set on creation.
// Empty values keep the built-in defaults.
func WithDefaults(status, category string) Option {
	return func(m *Mapper) {
		if status != "" {
			m.status = status
		}
		if category != "" {
			m.category = category
		}
	}
}

// New returns a Mapper that logs diagnostics to log.
func New(log zerolog.Logger, opts ...Option) *Mapper {
	m := &Mapper{
		dates:    dateutil.NewNormalizer(log),
		status:   DefaultStatus,
		category: DefaultCategory,
		log:      log.With().Str("component", "mapper").Logger(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Properties builds the page properties for item. collectionNames are the
// resolved names of the item's collections; empty names are dropped.
func (m *Mapper) Properties(item reference.Item, collectionNames []string, mode Mode) notion.Properties {
	var d reference.ItemData
	if item.Data != nil {
		d = *item.Data
	}
	title, _ := item.Title()

	props := notion.Properties{
		notion.PropTitle:       notion.NewTitle(title),
		notion.PropCollections: notion.NewMultiSelect(collectionNames),
		notion.PropAuthors:     notion.NewRichText(m.authors(d.Creators)),
		notion.PropSourceURL:   notion.NewURL(d.URL.String()),
		notion.PropTags:        notion.NewMultiSelect(m.tags(d.Tags)),
		notion.PropItemType:    notion.NewSelect(d.ItemType.String()),
		notion.PropPublisher:   notion.NewRichText(d.Publisher.String()),
		notion.PropExtra:       notion.NewRichText(d.Extra.String()),
		notion.PropDOI:         notion.NewRichText(d.DOI.String()),
		notion.PropAbstract:    notion.NewRichText(m.abstract(title, d.AbstractNote.String())),
	}

	if v := m.dates.Normalize(d.AccessDate.String(), false); v != "" {
		props[notion.PropDateAccessed] = notion.NewDate(v)
	}
	if v := m.dates.Normalize(d.Date.String(), false); v != "" {
		props[notion.PropPublicationDate] = notion.NewDate(v)
	}
	if v := m.dates.Normalize(d.DateModified.String(), true); v != "" {
		props[notion.PropModifiedDate] = notion.NewDate(v)
	}

	if mode == ModeCreate {
		props[notion.PropStatus] = notion.NewStatus(m.status)
		props[notion.PropCategory] = notion.NewSelect(m.category)
	}

	return props
}

// authors formats creators, logging the entries it skips.
func (m *Mapper) authors(creators []reference.Creator) string {
	var valid []reference.Creator
	for i, c := range creators {
		if !validation.ValidCreator(c) {
			m.log.Warn().Int("index", i).Msg("skipping creator without name, firstName or lastName")
			continue
		}
		valid = append(valid, c)
	}
	return FormatAuthors(valid)
}

// tags returns the tag strings, logging the entries it skips.
func (m *Mapper) tags(tags []reference.Tag) []string {
	out := make([]string, 0, len(tags))
	for i, t := range tags {
		if !validation.ValidTag(t) {
			m.log.Warn().Int("index", i).Msg("skipping malformed tag")
			continue
		}
		out = append(out, *t.Tag)
	}
	return out
}

// abstract caps s at MaxAbstractLen characters.
func (m *Mapper) abstract(title, s string) string {
	out, truncated := TruncateAbstract(s)
	if truncated {
		m.log.Warn().
			Str("title", title).
			Int("length", utf8.RuneCountInString(s)).
			Msg("abstract exceeds Notion limit, truncating")
	}
	return out
}

// FormatAuthors joins creator display names with ", ". Organizations use
// their name; people use "First Last", with missing parts left empty.
// Creators without any name field are skipped.
func FormatAuthors(creators []reference.Creator) string {
	names := make([]string, 0, len(creators))
	for _, c := range creators {
		if !validation.ValidCreator(c) {
			continue
		}
		if c.IsOrganization() {
			names = append(names, *c.Name)
			continue
		}
		names = append(names, deref(c.FirstName)+" "+deref(c.LastName))
	}
	return strings.Join(names, ", ")
}

// TruncateAbstract returns s unchanged if it fits in MaxAbstractLen
// characters; otherwise the first MaxAbstractLen-3 characters plus Ellipsis.
func TruncateAbstract(s string) (string, bool) {
	if utf8.RuneCountInString(s) <= MaxAbstractLen {
		return s, false
	}
	keep := MaxAbstractLen - utf8.RuneCountInString(Ellipsis)
	runes := []rune(s)
	return string(runes[:keep]) + Ellipsis, true
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
