package main

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/matsen/zotion/internal/config"
	"github.com/matsen/zotion/internal/notion"
	"github.com/matsen/zotion/internal/syncer"
	"github.com/matsen/zotion/internal/zotero"
)

func TestReadTitle(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"newline terminated", "Deep Learning\n", "Deep Learning"},
		{"crlf", "Deep Learning\r\n", "Deep Learning"},
		{"no trailing newline", "Deep Learning", "Deep Learning"},
		{"surrounding space", "  Deep Learning  \n", "Deep Learning"},
		{"only first line", "First\nSecond\n", "First"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var prompt bytes.Buffer
			got, err := readTitle(strings.NewReader(tt.input), &prompt)
			if err != nil {
				t.Fatalf("readTitle() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("readTitle() = %q, want %q", got, tt.want)
			}
			if prompt.String() != "Title: " {
				t.Errorf("prompt = %q, want %q", prompt.String(), "Title: ")
			}
		})
	}
}

func TestExitCodeFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"config", fmt.Errorf("%w: missing NOTION_API_KEY", config.ErrInvalidConfig), ExitConfigError},
		{"timeout env", config.ErrInvalidTimeout, ExitConfigError},
		{"zotero network", fmt.Errorf("loading references: fetching items: %w", zotero.ErrNetworkError), ExitAPIError},
		{"zotero api", &zotero.APIError{StatusCode: 500}, ExitAPIError},
		{"notion auth", fmt.Errorf("querying database: %w", &notion.APIError{StatusCode: 401}), ExitAPIError},
		{"title not found", fmt.Errorf("%w: %q", syncer.ErrTitleNotFound, "X"), ExitError},
		{"other", errors.New("boom"), ExitError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestFormatResultHuman(t *testing.T) {
	result := &syncer.Result{
		DryRun:  true,
		Created: 1,
		Skipped: 2,
		Failed:  1,
		Details: []syncer.Detail{
			{Key: "AAAA1111", Title: "New paper", Action: syncer.ActionCreate},
			{Key: "BBBB2222", Title: "Old paper", Action: syncer.ActionSkip, Reason: "up to date"},
			{Key: "CCCC3333", Action: syncer.ActionSkip, Reason: "invalid reference: missing key 'title'"},
			{Key: "DDDD4444", Title: "Broken", Action: syncer.ActionFail, Reason: "creating page: 400"},
		},
	}

	got := formatResultHuman(result)

	for _, want := range []string{
		"Dry run",
		"Created: 1  Updated: 0  Skipped: 2  Failed: 1",
		"create  AAAA1111  New paper",
		"(untitled)",
		"missing key 'title'",
		"creating page: 400",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("report missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "Old paper") {
		t.Errorf("up-to-date references should not be listed:\n%s", got)
	}
}

func TestTruncateString(t *testing.T) {
	if got := truncateString("short", 10); got != "short" {
		t.Errorf("truncateString() = %q", got)
	}
	if got := truncateString("abcdefghijkl", 8); got != "abcde..." {
		t.Errorf("truncateString() = %q, want abcde...", got)
	}
	if got := truncateString("ééééééééé", 5); got != "éé..." {
		t.Errorf("truncateString() = %q, want éé...", got)
	}
}

func TestFormatConfigHuman(t *testing.T) {
	resp := ConfigShowResponse{
		Path:    "/home/u/.config/zotion/config.yml",
		Config:  config.Config{ZoteroAPIKey: "****abcd"},
		Problem: "invalid configuration: missing NOTION_API_KEY",
	}

	got := formatConfigHuman(resp)
	for _, want := range []string{"****abcd", "notion_api_key:     (not set)", "default_status:     (default)", "missing NOTION_API_KEY"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}
