package main

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"github.com/matsen/zotion/internal/syncer"
)

// TitleMaxLen is the title width in human-readable sync reports.
const TitleMaxLen = 60

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// exitWithError outputs an error in the appropriate format (human or JSON) and exits.
func exitWithError(code int, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if humanOutput {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	} else {
		outputJSON(ErrorResponse{Error: msg})
	}
	os.Exit(code)
}

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// outputResult prints a sync result as JSON or, with --human, as a report.
func outputResult(result *syncer.Result) error {
	if !humanOutput {
		return outputJSON(result)
	}
	fmt.Print(formatResultHuman(result))
	return nil
}

// formatResultHuman renders a sync result as a short report.
func formatResultHuman(result *syncer.Result) string {
	var out string
	if result.DryRun {
		out += "Dry run, no changes written.\n"
	}
	out += fmt.Sprintf("Created: %d  Updated: %d  Skipped: %d  Failed: %d\n",
		result.Created, result.Updated, result.Skipped, result.Failed)

	for _, d := range result.Details {
		if d.Action == syncer.ActionSkip && d.Reason == "up to date" {
			continue
		}
		title := d.Title
		if title == "" {
			title = "(untitled)"
		}
		out += fmt.Sprintf("  %-6s  %-8s  %s\n", d.Action, d.Key, truncateString(title, TitleMaxLen))
		if d.Reason != "" && d.Action != syncer.ActionCreate && d.Action != syncer.ActionUpdate {
			out += fmt.Sprintf("          %s\n", d.Reason)
		}
	}
	return out
}

// truncateString truncates a string to maxLen characters, adding "..." if truncated.
func truncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
