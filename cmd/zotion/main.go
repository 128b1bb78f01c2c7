// Package main provides the zotion CLI entry point.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/matsen/zotion/internal/config"
	"github.com/matsen/zotion/internal/logging"
	"github.com/matsen/zotion/internal/mapper"
	"github.com/matsen/zotion/internal/notion"
	"github.com/matsen/zotion/internal/syncer"
	"github.com/matsen/zotion/internal/zotero"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

var (
	// humanOutput controls whether to use human-readable output
	humanOutput bool

	// logLevel overrides the configured log level when set
	logLevel string
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		// SilenceErrors is set, so cobra errors (bad flags, extra args) land here
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		stop()
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "zotion",
	Short: "Sync Zotero references into a Notion database",
	Long: `zotion copies bibliographic references from a Zotero library into a
Notion database, one page per reference.

Existing pages are matched by title and collection, and are only updated
when the Zotero item was modified after the page was last synced. Status and
Category are set on creation and never overwritten.

Credentials are read from the environment, a .env file, or
~/.config/zotion/config.yml. Commands output JSON by default; use --human
for human-readable output.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (trace, debug, info, warn, error, disabled)")
	rootCmd.Version = Version
}

// mustLoadConfig loads and validates configuration, exits on error.
func mustLoadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if err := cfg.Validate(); err != nil {
		exitWithError(ExitConfigError, "%v\n\n%s", err, config.HelpfulConfigMessage())
	}
	return cfg
}

// newLogger builds the stderr logger for cfg.
func newLogger(cfg *config.Config) zerolog.Logger {
	return logging.New(logging.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Output: os.Stderr,
	})
}

// newZoteroClient builds the source client for cfg.
func newZoteroClient(cfg *config.Config, log zerolog.Logger) *zotero.Client {
	opts := []zotero.ClientOption{
		zotero.WithAPIKey(cfg.ZoteroAPIKey),
		zotero.WithLogger(log),
	}
	if cfg.ZoteroBaseURL != "" {
		opts = append(opts, zotero.WithBaseURL(cfg.ZoteroBaseURL))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, zotero.WithTimeout(cfg.Timeout))
	}
	return zotero.NewClient(cfg.ZoteroUserID, opts...)
}

// newNotionClient builds the destination client for cfg.
func newNotionClient(cfg *config.Config, log zerolog.Logger) *notion.Client {
	opts := []notion.ClientOption{
		notion.WithAPIKey(cfg.NotionAPIKey),
		notion.WithLogger(log),
	}
	if cfg.NotionBaseURL != "" {
		opts = append(opts, notion.WithBaseURL(cfg.NotionBaseURL))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, notion.WithTimeout(cfg.Timeout))
	}
	return notion.NewClient(cfg.NotionDatabaseID, opts...)
}

// newSyncer wires the clients, mapper and syncer for cfg.
func newSyncer(cfg *config.Config, log zerolog.Logger, dryRun bool) *syncer.Syncer {
	m := mapper.New(log, mapper.WithDefaults(cfg.DefaultStatus, cfg.DefaultCategory))
	return syncer.New(
		newZoteroClient(cfg, log),
		newNotionClient(cfg, log),
		log,
		syncer.WithMapper(m),
		syncer.WithDryRun(dryRun),
	)
}
