package syncer

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/matsen/zotion/internal/notion"
	"github.com/matsen/zotion/internal/zotero"
	"github.com/rs/zerolog"
)

const e2eDatabaseID = "0f3a2c5e-1b2d-4c3e-8f9a-0a1b2c3d4e5f"

func TestSyncAll_HTTP_LocateThenCreate(t *testing.T) {
	zot := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Zotero-API-Key") != "zkey" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		switch r.URL.Path {
		case "/users/42/items":
			io.WriteString(w, `[{"key":"K1","version":1,"data":{"title":"X","itemType":"book","collections":["C1"],"dateModified":"2024-01-02T09:00:00Z"}}]`)
		case "/users/42/collections":
			io.WriteString(w, `[{"key":"C1","data":{"name":"Thesis"}}]`)
		default:
			http.NotFound(w, r)
		}
	}))
	defer zot.Close()

	var queries, creates, updates atomic.Int32
	var createBody string
	not := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/databases/"+e2eDatabaseID+"/query":
			queries.Add(1)
			io.WriteString(w, `{"results":[],"has_more":false}`)
		case r.Method == http.MethodPost && r.URL.Path == "/pages":
			creates.Add(1)
			body, _ := io.ReadAll(r.Body)
			createBody = string(body)
			io.WriteString(w, `{"id":"11111111-2222-3333-4444-555555555555"}`)
		case r.Method == http.MethodPatch:
			updates.Add(1)
			io.WriteString(w, `{}`)
		default:
			http.NotFound(w, r)
		}
	}))
	defer not.Close()

	src := zotero.NewClient("42", zotero.WithAPIKey("zkey"), zotero.WithBaseURL(zot.URL))
	dest := notion.NewClient(e2eDatabaseID,
		notion.WithAPIKey("nkey"),
		notion.WithBaseURL(not.URL),
		notion.WithRateLimit(0),
	)

	result, err := New(src, dest, zerolog.Nop()).SyncAll(context.Background())
	if err != nil {
		t.Fatalf("SyncAll() error = %v", err)
	}

	if queries.Load() != 1 || creates.Load() != 1 || updates.Load() != 0 {
		t.Errorf("queries/creates/updates = %d/%d/%d, want 1/1/0", queries.Load(), creates.Load(), updates.Load())
	}
	if result.Created != 1 || result.Details[0].PageID != "11111111-2222-3333-4444-555555555555" {
		t.Errorf("result = %+v", result)
	}
	for _, want := range []string{`"database_id":"` + e2eDatabaseID + `"`, `"name":"Thesis"`, `"name":"Not started"`} {
		if !strings.Contains(createBody, want) {
			t.Errorf("create body missing %s: %s", want, createBody)
		}
	}
}

func TestSyncAll_HTTP_SourceFailureAborts(t *testing.T) {
	zot := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer zot.Close()

	var hits atomic.Int32
	not := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer not.Close()

	src := zotero.NewClient("42", zotero.WithBaseURL(zot.URL))
	dest := notion.NewClient(e2eDatabaseID, notion.WithBaseURL(not.URL), notion.WithRateLimit(0))

	if _, err := New(src, dest, zerolog.Nop()).SyncAll(context.Background()); err == nil {
		t.Fatal("SyncAll() should fail when the source is unavailable")
	}
	if hits.Load() != 0 {
		t.Errorf("Notion received %d requests, want 0", hits.Load())
	}
}
