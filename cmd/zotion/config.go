package main

import (
	"fmt"
	"strings"

	"github.com/matsen/zotion/internal/config"
	"github.com/spf13/cobra"
)

func init() {
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration with secrets masked",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

// ConfigShowResponse is the response for config show.
type ConfigShowResponse struct {
	Path    string        `json:"path"`
	Config  config.Config `json:"config"`
	Valid   bool          `json:"valid"`
	Problem string        `json:"problem,omitempty"`
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}

	resp := ConfigShowResponse{
		Path:   config.GlobalConfigPath(),
		Config: cfg.Redacted(),
		Valid:  true,
	}
	if err := cfg.Validate(); err != nil {
		resp.Valid = false
		resp.Problem = err.Error()
	}

	if !humanOutput {
		return outputJSON(resp)
	}
	fmt.Print(formatConfigHuman(resp))
	return nil
}

// formatConfigHuman renders a config show response as aligned key/value lines.
func formatConfigHuman(resp ConfigShowResponse) string {
	c := resp.Config
	timeout := "default"
	if c.Timeout > 0 {
		timeout = c.Timeout.String()
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "config file:        %s\n", resp.Path)
	fmt.Fprintf(&sb, "zotero_api_key:     %s\n", orUnset(c.ZoteroAPIKey))
	fmt.Fprintf(&sb, "zotero_user_id:     %s\n", orUnset(c.ZoteroUserID))
	fmt.Fprintf(&sb, "notion_api_key:     %s\n", orUnset(c.NotionAPIKey))
	fmt.Fprintf(&sb, "notion_database_id: %s\n", orUnset(c.NotionDatabaseID))
	fmt.Fprintf(&sb, "timeout:            %s\n", timeout)
	fmt.Fprintf(&sb, "default_status:     %s\n", orDefault(c.DefaultStatus))
	fmt.Fprintf(&sb, "default_category:   %s\n", orDefault(c.DefaultCategory))
	fmt.Fprintf(&sb, "log_level:          %s\n", orDefault(c.LogLevel))
	fmt.Fprintf(&sb, "log_format:         %s\n", orDefault(c.LogFormat))
	if resp.Valid {
		sb.WriteString("\nConfiguration is valid.\n")
	} else {
		fmt.Fprintf(&sb, "\n%s\n", resp.Problem)
	}
	return sb.String()
}

func orUnset(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}

func orDefault(s string) string {
	if s == "" {
		return "(default)"
	}
	return s
}
