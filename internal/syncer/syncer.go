// Package syncer drives a one-way sync of Zotero references into Notion.
package syncer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/matsen/zotion/internal/mapper"
	"github.com/matsen/zotion/internal/notion"
	"github.com/matsen/zotion/internal/reference"
	"github.com/matsen/zotion/internal/validation"
	"github.com/matsen/zotion/internal/zotero"
	"github.com/rs/zerolog"
)

// Source is the read-only reference library.
type Source interface {
	FetchItems(ctx context.Context) ([]reference.Item, error)
	FetchCollections(ctx context.Context) ([]reference.Collection, error)
}

// Destination is the Notion database receiving references.
type Destination interface {
	FindReference(ctx context.Context, title string, collectionNames []string) (*notion.Match, error)
	CreatePage(ctx context.Context, props notion.Properties) (*notion.Page, error)
	UpdatePage(ctx context.Context, pageID string, props notion.Properties) (*notion.Page, error)
}

var (
	// ErrEmptyTitle is returned by SyncTitle for a blank title.
	ErrEmptyTitle = errors.New("title is empty")

	// ErrTitleNotFound is returned by SyncTitle when no reference has the title.
	ErrTitleNotFound = errors.New("no reference with that title")
)

// Action is the outcome decided for one reference.
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionSkip   Action = "skip"
	ActionFail   Action = "fail"
)

// Detail records what happened to one reference.
type Detail struct {
	Key    string `json:"key"`
	Title  string `json:"title"`
	Action Action `json:"action"`
	PageID string `json:"page_id,omitempty"`
	Reason string `json:"reason,omitempty"`
}

// Result summarizes a sync run.
type Result struct {
	DryRun  bool     `json:"dry_run"`
	Created int      `json:"created"`
	Updated int      `json:"updated"`
	Skipped int      `json:"skipped"`
	Failed  int      `json:"failed"`
	Details []Detail `json:"details"`
}

func (r *Result) add(d Detail) {
	switch d.Action {
	case ActionCreate:
		r.Created++
	case ActionUpdate:
		r.Updated++
	case ActionSkip:
		r.Skipped++
	case ActionFail:
		r.Failed++
	}
	r.Details = append(r.Details, d)
}

// Writes returns the number of destination writes the run made or, for a
// dry run, would have made.
func (r *Result) Writes() int {
	return r.Created + r.Updated
}

// Syncer copies references from a Source to a Destination.
type Syncer struct {
	src    Source
	dest   Destination
	mapper *mapper.Mapper
	dryRun bool
	log    zerolog.Logger
}

// Option configures a Syncer.
type Option func(*Syncer)

// WithDryRun makes the Syncer decide actions without writing to the destination.
func WithDryRun(dryRun bool) Option {
	return func(s *Syncer) {
		s.dryRun = dryRun
	}
}

// WithMapper sets the field mapper. The default uses built-in defaults.
func WithMapper(m *mapper.Mapper) Option {
	return func(s *Syncer) {
		s.mapper = m
	}
}

// New returns a Syncer reading from src and writing to dest.
func New(src Source, dest Destination, log zerolog.Logger, opts ...Option) *Syncer {
	s := &Syncer{
		src:  src,
		dest: dest,
		log:  log.With().Str("component", "syncer").Logger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.mapper == nil {
		s.mapper = mapper.New(log)
	}
	return s
}

// SyncAll syncs every reference in the source library. A failure to fetch
// items or collections aborts the run; per-reference failures are recorded in
// the result and the run continues.
func (s *Syncer) SyncAll(ctx context.Context) (*Result, error) {
	items, index, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	result := &Result{DryRun: s.dryRun, Details: make([]Detail, 0, len(items))}
	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		result.add(s.syncItem(ctx, item, index))
	}

	s.log.Info().
		Int("created", result.Created).
		Int("updated", result.Updated).
		Int("skipped", result.Skipped).
		Int("failed", result.Failed).
		Bool("dry_run", s.dryRun).
		Msg("sync complete")
	return result, nil
}

// SyncTitle syncs the first reference whose title equals title exactly.
func (s *Syncer) SyncTitle(ctx context.Context, title string) (*Result, error) {
	if strings.TrimSpace(title) == "" {
		return nil, ErrEmptyTitle
	}

	items, index, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	for _, item := range items {
		if t, ok := item.Title(); !ok || t != title {
			continue
		}
		result := &Result{DryRun: s.dryRun, Details: make([]Detail, 0, 1)}
		result.add(s.syncItem(ctx, item, index))
		return result, nil
	}

	s.log.Warn().Str("title", title).Msg("reference not found in source library")
	return nil, fmt.Errorf("%w: %q", ErrTitleNotFound, title)
}

// load fetches the items and the collection index.
func (s *Syncer) load(ctx context.Context) ([]reference.Item, zotero.CollectionIndex, error) {
	items, err := s.src.FetchItems(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to fetch references, aborting")
		return nil, nil, fmt.Errorf("loading references: %w", err)
	}
	s.log.Debug().Int("count", len(items)).Msg("fetched references")

	cols, err := s.src.FetchCollections(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to fetch collections, aborting")
		return nil, nil, fmt.Errorf("loading collections: %w", err)
	}
	s.log.Debug().Int("count", len(cols)).Msg("fetched collections")

	return items, zotero.BuildCollectionIndex(cols, s.log), nil
}

// syncItem resolves, locates and applies one reference.
func (s *Syncer) syncItem(ctx context.Context, item reference.Item, index zotero.CollectionIndex) Detail {
	d := Detail{Key: item.Key}
	log := s.log.With().Str("key", item.Key).Logger()

	if err := validation.ValidateItem(item); err != nil {
		log.Warn().Err(err).Msg("skipping reference")
		d.Action = ActionSkip
		d.Reason = err.Error()
		return d
	}
	d.Title, _ = item.Title()
	log = log.With().Str("title", d.Title).Logger()

	names := index.Resolve(item.Data.Collections)
	match, err := s.dest.FindReference(ctx, d.Title, names)
	if err != nil {
		log.Error().Err(err).Msg("failed to locate reference in Notion")
		d.Action = ActionFail
		d.Reason = fmt.Sprintf("locating reference: %v", err)
		return d
	}

	if match == nil {
		d.Action = ActionCreate
		if s.dryRun {
			log.Info().Msg("would create reference")
			return d
		}
		page, err := s.dest.CreatePage(ctx, s.mapper.Properties(item, names, mapper.ModeCreate))
		if err != nil {
			log.Error().Err(err).Msg("failed to create reference")
			d.Action = ActionFail
			d.Reason = fmt.Sprintf("creating page: %v", err)
			return d
		}
		d.PageID = page.ID
		log.Info().Str("page_id", page.ID).Msg("created reference")
		return d
	}

	d.PageID = match.PageID
	srcModified := item.Data.DateModified.String()
	if !ShouldUpdate(match.Modified, srcModified) {
		log.Debug().
			Str("notion_modified", match.Modified).
			Str("zotero_modified", srcModified).
			Msg("reference up to date, skipping")
		d.Action = ActionSkip
		d.Reason = "up to date"
		return d
	}

	d.Action = ActionUpdate
	if s.dryRun {
		log.Info().Str("page_id", match.PageID).Msg("would update reference")
		return d
	}
	if _, err := s.dest.UpdatePage(ctx, match.PageID, s.mapper.Properties(item, names, mapper.ModeUpdate)); err != nil {
		log.Error().Err(err).Str("page_id", match.PageID).Msg("failed to update reference")
		d.Action = ActionFail
		d.Reason = fmt.Sprintf("updating page: %v", err)
		return d
	}
	log.Info().Str("page_id", match.PageID).Msg("updated reference")
	return d
}
