package main

import (
	"github.com/spf13/cobra"
)

var syncDryRun bool

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync every Zotero reference into Notion",
	Long: `Sync every reference in the Zotero library into the Notion database.

References without a matching page are created. Matching pages are updated
only when the Zotero item is newer. A failure on one reference is reported
and the sync continues with the next.

Examples:
  zotion sync
  zotion sync --dry-run --human`,
	Args: cobra.NoArgs,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().BoolVar(&syncDryRun, "dry-run", false, "Decide actions without writing to Notion")
	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	log := newLogger(cfg)

	result, err := newSyncer(cfg, log, syncDryRun).SyncAll(cmd.Context())
	if err != nil {
		exitWithError(exitCodeFor(err), "sync failed: %v", err)
	}
	return outputResult(result)
}
