package syncer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/matsen/zotion/internal/mapper"
	"github.com/matsen/zotion/internal/notion"
	"github.com/matsen/zotion/internal/reference"
	"github.com/rs/zerolog"
)

type fakeSource struct {
	items    []reference.Item
	cols     []reference.Collection
	itemsErr error
	colsErr  error
}

func (f *fakeSource) FetchItems(context.Context) ([]reference.Item, error) {
	return f.items, f.itemsErr
}

func (f *fakeSource) FetchCollections(context.Context) ([]reference.Collection, error) {
	return f.cols, f.colsErr
}

type fakePage struct {
	id    string
	props notion.Properties
}

// fakeDestination is an in-memory Notion database.
type fakeDestination struct {
	pages     []*fakePage
	creates   int
	updates   int
	finds     int
	failTitle string
	findErr   error
}

func (f *fakeDestination) FindReference(_ context.Context, title string, names []string) (*notion.Match, error) {
	f.finds++
	if f.findErr != nil {
		return nil, f.findErr
	}
	for _, p := range f.pages {
		if notion.PlainText(p.props[notion.PropTitle].(notion.TitleProperty).Title) != title {
			continue
		}
		if !inAny(p.props, names) {
			continue
		}
		m := &notion.Match{PageID: p.id}
		if d, ok := p.props[notion.PropModifiedDate].(notion.DateProperty); ok {
			m.Modified = d.Date.Start
		}
		return m, nil
	}
	return nil, nil
}

func inAny(props notion.Properties, names []string) bool {
	var want []string
	for _, n := range names {
		if n != "" {
			want = append(want, n)
		}
	}
	if len(want) == 0 {
		return true
	}
	have := props[notion.PropCollections].(notion.MultiSelectProperty).Names()
	for _, w := range want {
		for _, h := range have {
			if w == h {
				return true
			}
		}
	}
	return false
}

func (f *fakeDestination) CreatePage(_ context.Context, props notion.Properties) (*notion.Page, error) {
	title := notion.PlainText(props[notion.PropTitle].(notion.TitleProperty).Title)
	if title == f.failTitle {
		return nil, errors.New("boom")
	}
	f.creates++
	p := &fakePage{id: fmt.Sprintf("page-%d", len(f.pages)+1), props: props}
	f.pages = append(f.pages, p)
	return &notion.Page{ID: p.id}, nil
}

func (f *fakeDestination) UpdatePage(_ context.Context, pageID string, props notion.Properties) (*notion.Page, error) {
	for _, p := range f.pages {
		if p.id != pageID {
			continue
		}
		f.updates++
		for k, v := range props {
			p.props[k] = v
		}
		return &notion.Page{ID: p.id}, nil
	}
	return nil, fmt.Errorf("page %s not found", pageID)
}

func strPtr(s string) *string { return &s }

func newItem(key, title, modified string, collections ...string) reference.Item {
	return reference.Item{
		Key: key,
		Data: &reference.ItemData{
			Key:          reference.Text(key),
			Title:        strPtr(title),
			DateModified: reference.Text(modified),
			Collections:  collections,
		},
	}
}

func newCollection(key, name string) reference.Collection {
	return reference.Collection{Key: key, Data: &reference.CollectionData{Name: strPtr(name)}}
}

func TestSyncAll_CreatesMissing(t *testing.T) {
	src := &fakeSource{items: []reference.Item{newItem("A", "X", "2024-01-02T09:00:00Z")}}
	dest := &fakeDestination{}

	result, err := New(src, dest, zerolog.Nop()).SyncAll(context.Background())
	if err != nil {
		t.Fatalf("SyncAll() error = %v", err)
	}

	if dest.finds != 1 {
		t.Errorf("finds = %d, want 1", dest.finds)
	}
	if dest.creates != 1 || dest.updates != 0 {
		t.Errorf("creates/updates = %d/%d, want 1/0", dest.creates, dest.updates)
	}
	if result.Created != 1 || len(result.Details) != 1 {
		t.Fatalf("result = %+v", result)
	}
	d := result.Details[0]
	if d.Action != ActionCreate || d.Key != "A" || d.Title != "X" || d.PageID != "page-1" {
		t.Errorf("detail = %+v", d)
	}

	props := dest.pages[0].props
	if _, ok := props[notion.PropStatus]; !ok {
		t.Error("created page should carry Status")
	}
}

func TestSyncAll_Idempotent(t *testing.T) {
	src := &fakeSource{
		items: []reference.Item{
			newItem("A", "Alpha", "2024-01-02T09:00:00Z", "C1"),
			newItem("B", "Beta", "2024-03-04T10:11:12Z", "C1", "C2"),
			newItem("C", "Gamma", "2024-05-06T00:00:00Z", "UNKNOWN"),
		},
		cols: []reference.Collection{newCollection("C1", "Thesis"), newCollection("C2", "Reading")},
	}
	dest := &fakeDestination{}
	s := New(src, dest, zerolog.Nop())

	first, err := s.SyncAll(context.Background())
	if err != nil {
		t.Fatalf("first SyncAll() error = %v", err)
	}
	if first.Created != 3 {
		t.Fatalf("first run created %d, want 3", first.Created)
	}

	second, err := s.SyncAll(context.Background())
	if err != nil {
		t.Fatalf("second SyncAll() error = %v", err)
	}
	if second.Writes() != 0 {
		t.Errorf("second run made %d writes, want 0: %+v", second.Writes(), second.Details)
	}
	if second.Skipped != 3 {
		t.Errorf("second run skipped %d, want 3", second.Skipped)
	}
	if dest.creates != 3 || dest.updates != 0 {
		t.Errorf("creates/updates = %d/%d, want 3/0", dest.creates, dest.updates)
	}
}

func TestSyncAll_UpdatesWhenSourceNewer(t *testing.T) {
	src := &fakeSource{items: []reference.Item{newItem("A", "Alpha", "2024-01-02T09:00:00Z")}}
	dest := &fakeDestination{}
	s := New(src, dest, zerolog.Nop())

	if _, err := s.SyncAll(context.Background()); err != nil {
		t.Fatal(err)
	}
	dest.pages[0].props[notion.PropStatus] = notion.NewStatus("Done")

	src.items[0].Data.DateModified = "2024-02-01T08:00:00Z"
	result, err := s.SyncAll(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if result.Updated != 1 || dest.updates != 1 {
		t.Errorf("updated = %d (dest %d), want 1", result.Updated, dest.updates)
	}
	if got := dest.pages[0].props[notion.PropStatus].(notion.StatusProperty).Status.Name; got != "Done" {
		t.Errorf("update overwrote Status with %q", got)
	}
	if got := dest.pages[0].props[notion.PropModifiedDate].(notion.DateProperty).Date.Start; got != "2024-02-01T08:00:00" {
		t.Errorf("Modified Date = %q", got)
	}
}

func TestSyncAll_PerItemFailuresContinue(t *testing.T) {
	var buf bytes.Buffer
	noTitle := reference.Item{Key: "N", Data: &reference.ItemData{}}
	src := &fakeSource{items: []reference.Item{
		newItem("A", "Broken", "2024-01-01"),
		noTitle,
		{Key: "D"},
		newItem("B", "Fine", "2024-01-01"),
	}}
	dest := &fakeDestination{failTitle: "Broken"}

	result, err := New(src, dest, zerolog.New(&buf)).SyncAll(context.Background())
	if err != nil {
		t.Fatalf("SyncAll() error = %v", err)
	}

	if result.Failed != 1 || result.Skipped != 2 || result.Created != 1 {
		t.Errorf("result = %+v", result)
	}
	if result.Details[0].Action != ActionFail || !strings.Contains(result.Details[0].Reason, "boom") {
		t.Errorf("detail[0] = %+v", result.Details[0])
	}
	if !strings.Contains(result.Details[1].Reason, "missing key 'title'") {
		t.Errorf("detail[1] reason = %q", result.Details[1].Reason)
	}
	if !strings.Contains(result.Details[2].Reason, "missing key 'data'") {
		t.Errorf("detail[2] reason = %q", result.Details[2].Reason)
	}
	if !strings.Contains(buf.String(), "failed to create reference") {
		t.Errorf("expected failure log, got: %s", buf.String())
	}
}

func TestSyncAll_LocateFailureRecorded(t *testing.T) {
	src := &fakeSource{items: []reference.Item{newItem("A", "X", ""), newItem("B", "Y", "")}}
	dest := &fakeDestination{findErr: notion.ErrNetworkError}

	result, err := New(src, dest, zerolog.Nop()).SyncAll(context.Background())
	if err != nil {
		t.Fatalf("SyncAll() error = %v", err)
	}
	if result.Failed != 2 || dest.creates != 0 {
		t.Errorf("result = %+v, creates = %d", result, dest.creates)
	}
}

func TestSyncAll_FetchFailureAborts(t *testing.T) {
	tests := []struct {
		name string
		src  *fakeSource
		want string
	}{
		{
			name: "items",
			src:  &fakeSource{itemsErr: errors.New("down")},
			want: "loading references",
		},
		{
			name: "collections",
			src:  &fakeSource{items: []reference.Item{newItem("A", "X", "")}, colsErr: errors.New("down")},
			want: "loading collections",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dest := &fakeDestination{}
			result, err := New(tt.src, dest, zerolog.Nop()).SyncAll(context.Background())
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("SyncAll() error = %v, want %q", err, tt.want)
			}
			if result != nil {
				t.Error("result should be nil on abort")
			}
			if dest.finds != 0 {
				t.Errorf("destination was queried %d times", dest.finds)
			}
		})
	}
}

func TestSyncAll_DryRun(t *testing.T) {
	src := &fakeSource{items: []reference.Item{newItem("A", "X", "2024-01-01")}}
	dest := &fakeDestination{}

	result, err := New(src, dest, zerolog.Nop(), WithDryRun(true)).SyncAll(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if !result.DryRun || result.Created != 1 {
		t.Errorf("result = %+v", result)
	}
	if dest.creates != 0 || dest.updates != 0 {
		t.Errorf("dry run wrote to destination: creates=%d updates=%d", dest.creates, dest.updates)
	}
}

func TestSyncAll_CustomDefaults(t *testing.T) {
	src := &fakeSource{items: []reference.Item{newItem("A", "X", "")}}
	dest := &fakeDestination{}
	m := mapper.New(zerolog.Nop(), mapper.WithDefaults("Inbox", "Work"))

	if _, err := New(src, dest, zerolog.Nop(), WithMapper(m)).SyncAll(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got := dest.pages[0].props[notion.PropCategory].(notion.SelectProperty).Select.Name; got != "Work" {
		t.Errorf("Category = %q, want Work", got)
	}
}

func TestSyncTitle(t *testing.T) {
	src := &fakeSource{items: []reference.Item{
		newItem("A", "Alpha", ""),
		newItem("B", "Target", "", "C1"),
		newItem("C", "Target", "", "C2"),
	}}
	dest := &fakeDestination{}

	result, err := New(src, dest, zerolog.Nop()).SyncTitle(context.Background(), "Target")
	if err != nil {
		t.Fatalf("SyncTitle() error = %v", err)
	}
	if len(result.Details) != 1 || result.Details[0].Key != "B" {
		t.Errorf("details = %+v, want only B", result.Details)
	}
	if dest.finds != 1 || dest.creates != 1 {
		t.Errorf("finds/creates = %d/%d, want 1/1", dest.finds, dest.creates)
	}
}

func TestSyncTitle_Errors(t *testing.T) {
	src := &fakeSource{items: []reference.Item{newItem("A", "Alpha", "")}}
	s := New(src, &fakeDestination{}, zerolog.Nop())

	if _, err := s.SyncTitle(context.Background(), "  "); !errors.Is(err, ErrEmptyTitle) {
		t.Errorf("blank title error = %v, want ErrEmptyTitle", err)
	}
	if _, err := s.SyncTitle(context.Background(), "alpha"); !errors.Is(err, ErrTitleNotFound) {
		t.Errorf("case-mismatched title error = %v, want ErrTitleNotFound", err)
	}
}

func TestSyncAll_ContextCanceled(t *testing.T) {
	src := &fakeSource{items: []reference.Item{newItem("A", "X", ""), newItem("B", "Y", "")}}
	dest := &fakeDestination{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := New(src, dest, zerolog.Nop()).SyncAll(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
	if result == nil || len(result.Details) != 0 {
		t.Errorf("result = %+v, want empty partial result", result)
	}
}
