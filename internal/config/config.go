// Package config loads zotion credentials and settings.
//
// Values come from, in increasing precedence: the global YAML file at
// $XDG_CONFIG_HOME/zotion/config.yml, then environment variables. A .env file
// in the working directory is loaded into the environment first without
// overriding variables that are already set.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/matsen/zotion/internal/validation"
	"gopkg.in/yaml.v3"
)

const (
	// GlobalConfigDir is the directory name under XDG_CONFIG_HOME.
	GlobalConfigDir = "zotion"
	// GlobalConfigFile is the config file name.
	GlobalConfigFile = "config.yml"
)

// Environment variables read by Load.
const (
	EnvZoteroAPIKey     = "ZOTERO_API_KEY"
	EnvZoteroUserID     = "ZOTERO_USER_ID"
	EnvNotionAPIKey     = "NOTION_API_KEY"
	EnvNotionDatabaseID = "NOTION_DATABASE_ID"
	EnvLogLevel         = "ZOTION_LOG_LEVEL"
	EnvLogFormat        = "ZOTION_LOG_FORMAT"
	EnvTimeout          = "ZOTION_TIMEOUT"
)

var (
	// ErrInvalidConfig is wrapped by every Validate failure.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrInvalidTimeout is returned when ZOTION_TIMEOUT is not a duration.
	ErrInvalidTimeout = errors.New("invalid timeout")
)

// Config holds everything needed to run a sync.
type Config struct {
	ZoteroAPIKey     string `yaml:"zotero_api_key,omitempty" json:"zotero_api_key" validate:"required"`
	ZoteroUserID     string `yaml:"zotero_user_id,omitempty" json:"zotero_user_id" validate:"required"`
	NotionAPIKey     string `yaml:"notion_api_key,omitempty" json:"notion_api_key" validate:"required"`
	NotionDatabaseID string `yaml:"notion_database_id,omitempty" json:"notion_database_id" validate:"required,notionid"`

	ZoteroBaseURL string `yaml:"zotero_base_url,omitempty" json:"zotero_base_url,omitempty" validate:"omitempty,url"`
	NotionBaseURL string `yaml:"notion_base_url,omitempty" json:"notion_base_url,omitempty" validate:"omitempty,url"`

	// Timeout bounds each HTTP request. Zero means the client default.
	Timeout time.Duration `yaml:"timeout,omitempty" json:"timeout,omitempty" validate:"gte=0"`

	DefaultStatus   string `yaml:"default_status,omitempty" json:"default_status,omitempty"`
	DefaultCategory string `yaml:"default_category,omitempty" json:"default_category,omitempty"`

	LogLevel  string `yaml:"log_level,omitempty" json:"log_level,omitempty" validate:"omitempty,oneof=trace debug info warn warning error disabled off"`
	LogFormat string `yaml:"log_format,omitempty" json:"log_format,omitempty" validate:"omitempty,oneof=console json"`
}

// GlobalConfigPath returns the path to the global config file.
// Respects XDG_CONFIG_HOME, defaults to ~/.config/zotion/config.yml.
func GlobalConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, GlobalConfigDir, GlobalConfigFile)
}

// Load reads .env, the global config file and the environment.
// It does not validate; call Validate before use.
func Load() (*Config, error) {
	// A missing .env is normal.
	_ = godotenv.Load()

	cfg, err := LoadFile(GlobalConfigPath())
	if err != nil {
		return nil, err
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile reads a YAML config file.
// Returns an empty config (not an error) if path is empty or doesn't exist.
func LoadFile(path string) (*Config, error) {
	if path == "" {
		return &Config{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return &cfg, nil
}

// applyEnv overrides fields with any non-empty environment variables.
func (c *Config) applyEnv() error {
	for env, field := range map[string]*string{
		EnvZoteroAPIKey:     &c.ZoteroAPIKey,
		EnvZoteroUserID:     &c.ZoteroUserID,
		EnvNotionAPIKey:     &c.NotionAPIKey,
		EnvNotionDatabaseID: &c.NotionDatabaseID,
		EnvLogLevel:         &c.LogLevel,
		EnvLogFormat:        &c.LogFormat,
	} {
		if v := strings.TrimSpace(os.Getenv(env)); v != "" {
			*field = v
		}
	}

	if v := strings.TrimSpace(os.Getenv(EnvTimeout)); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q", ErrInvalidTimeout, EnvTimeout, v)
		}
		c.Timeout = d
	}
	return nil
}

// fieldSources names where each validated field can be set.
var fieldSources = map[string]string{
	"ZoteroAPIKey":     EnvZoteroAPIKey,
	"ZoteroUserID":     EnvZoteroUserID,
	"NotionAPIKey":     EnvNotionAPIKey,
	"NotionDatabaseID": EnvNotionDatabaseID,
	"ZoteroBaseURL":    "zotero_base_url",
	"NotionBaseURL":    "notion_base_url",
	"Timeout":          EnvTimeout,
	"LogLevel":         EnvLogLevel,
	"LogFormat":        EnvLogFormat,
}

// Validate checks that credentials are present and well-formed.
func (c *Config) Validate() error {
	err := validation.Struct(c)
	if err == nil {
		return nil
	}

	var verr *validation.Error
	if !errors.As(err, &verr) {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	var missing, invalid []string
	for _, f := range verr.Fields {
		name := f.Field[strings.LastIndex(f.Field, ".")+1:]
		if src, ok := fieldSources[name]; ok {
			name = src
		}
		if f.Tag == "required" {
			missing = append(missing, name)
		} else {
			invalid = append(invalid, name)
		}
	}

	var parts []string
	if len(missing) > 0 {
		parts = append(parts, "missing "+strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		parts = append(parts, "invalid "+strings.Join(invalid, ", "))
	}
	return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(parts, "; "))
}

// Redacted returns a copy with secrets masked, for display.
func (c Config) Redacted() Config {
	c.ZoteroAPIKey = mask(c.ZoteroAPIKey)
	c.NotionAPIKey = mask(c.NotionAPIKey)
	return c
}

// mask keeps the last four characters of long secrets.
func mask(s string) string {
	switch {
	case s == "":
		return ""
	case len(s) <= 8:
		return "****"
	default:
		return "****" + s[len(s)-4:]
	}
}

// HelpfulConfigMessage explains how to supply credentials.
func HelpfulConfigMessage() string {
	configPath := GlobalConfigPath()
	return fmt.Sprintf(`Set credentials in the environment, a .env file, or %s:
  mkdir -p %s
  cat > %s <<EOF
  zotero_api_key: ...
  zotero_user_id: ...
  notion_api_key: ...
  notion_database_id: ...
  EOF`,
		configPath,
		filepath.Dir(configPath),
		configPath)
}
