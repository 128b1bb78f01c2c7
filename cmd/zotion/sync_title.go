package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

var syncTitleDryRun bool

var syncTitleCmd = &cobra.Command{
	Use:   "sync-title [title]",
	Short: "Sync a single reference by title",
	Long: `Sync the first Zotero reference whose title matches exactly.

Without an argument, the title is read from standard input after a
"Title: " prompt.

Examples:
  zotion sync-title
  zotion sync-title "Deep Learning" --dry-run`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSyncTitle,
}

func init() {
	syncTitleCmd.Flags().BoolVar(&syncTitleDryRun, "dry-run", false, "Decide the action without writing to Notion")
	rootCmd.AddCommand(syncTitleCmd)
}

func runSyncTitle(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	log := newLogger(cfg)

	var title string
	if len(args) == 1 {
		title = strings.TrimSpace(args[0])
	} else {
		var err error
		title, err = readTitle(cmd.InOrStdin(), cmd.ErrOrStderr())
		if err != nil {
			exitWithError(ExitError, "reading title: %v", err)
		}
	}

	result, err := newSyncer(cfg, log, syncTitleDryRun).SyncTitle(cmd.Context(), title)
	if err != nil {
		exitWithError(exitCodeFor(err), "sync failed: %v", err)
	}
	return outputResult(result)
}

// readTitle prompts on w and reads one line from r.
func readTitle(r io.Reader, w io.Writer) (string, error) {
	fmt.Fprint(w, "Title: ")
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
