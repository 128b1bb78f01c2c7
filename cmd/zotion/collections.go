package main

import (
	"fmt"

	"github.com/matsen/zotion/internal/zotero"
	"github.com/spf13/cobra"
)

var collectionsCmd = &cobra.Command{
	Use:   "collections",
	Short: "List Zotero collections",
	Long: `List the collections of the Zotero library, sorted by name.

These are the names written to the Collections property in Notion.`,
	Args: cobra.NoArgs,
	RunE: runCollections,
}

func init() {
	rootCmd.AddCommand(collectionsCmd)
}

func runCollections(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	log := newLogger(cfg)

	cols, err := newZoteroClient(cfg, log).FetchCollections(cmd.Context())
	if err != nil {
		exitWithError(exitCodeFor(err), "%v", err)
	}
	entries := zotero.BuildCollectionIndex(cols, log).Entries()

	if !humanOutput {
		return outputJSON(entries)
	}
	if len(entries) == 0 {
		fmt.Println("No collections.")
		return nil
	}
	for _, e := range entries {
		fmt.Printf("%-8s  %s\n", e.Key, e.Name)
	}
	return nil
}
