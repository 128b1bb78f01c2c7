// Package dateutil normalizes the heterogeneous date strings found in Zotero
// items into the ISO forms accepted by Notion date properties.
package dateutil

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Output layouts.
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02T15:04:05"
)

// layout is an accepted input format, most specific first.
type layout struct {
	format  string
	hasTime bool
}

// time.RFC3339 accepts both "Z" and a "+hh:mm" offset.
var layouts = []layout{
	{format: time.RFC3339, hasTime: true},
	{format: "2006-01-02"},
	{format: "2006/1"},
	{format: "2006"},
}

// ErrEmpty is returned by Parse for empty input.
var ErrEmpty = errors.New("empty date string")

// ErrNoLayout is returned by Parse when no accepted format matches.
var ErrNoLayout = errors.New("no date format matches")

// Parsed is the result of a successful Parse.
type Parsed struct {
	Time    time.Time
	HasTime bool
}

// Parse tries each accepted format in order and returns the first match.
func Parse(raw string) (Parsed, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Parsed{}, ErrEmpty
	}
	for _, l := range layouts {
		t, err := time.Parse(l.format, raw)
		if err == nil {
			return Parsed{Time: t, HasTime: l.hasTime}, nil
		}
	}
	return Parsed{}, fmt.Errorf("%w: %q", ErrNoLayout, raw)
}

// Format renders p as a date, or as a date-time when keepTime is set and p
// carries a time of day. The UTC offset is not rendered.
func (p Parsed) Format(keepTime bool) string {
	if keepTime && p.HasTime {
		return p.Time.Format(DateTimeLayout)
	}
	return p.Time.Format(DateLayout)
}

// Normalizer converts raw source dates to Notion date strings, logging
// inputs it cannot handle.
type Normalizer struct {
	log zerolog.Logger
}

// NewNormalizer returns a Normalizer that reports diagnostics to log.
func NewNormalizer(log zerolog.Logger) *Normalizer {
	return &Normalizer{log: log.With().Str("component", "dateutil").Logger()}
}

// Normalize returns raw as "YYYY-MM-DD" (or "YYYY-MM-DDThh:mm:ss" when keepTime
// is set and the input had a time of day). It returns "" for empty or
// unrecognized input.
func (n *Normalizer) Normalize(raw string, keepTime bool) string {
	p, err := Parse(raw)
	if err != nil {
		if errors.Is(err, ErrEmpty) {
			n.log.Debug().Msg("date string is empty")
		} else {
			n.log.Warn().Str("date", raw).Msg("failed to parse date, no formats match")
		}
		return ""
	}
	return p.Format(keepTime)
}
