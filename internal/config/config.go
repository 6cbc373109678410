package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Config holds everything a run needs. It is built once at startup and passed
// by value into the processor; nothing reads configuration from globals.
type Config struct {
	MoviesDir string  `toml:"movies_dir"`
	ShowsDir  string  `toml:"shows_dir"`
	DryRun    bool    `toml:"dry_run"`
	SelfTest  bool    `toml:"self_test"`
	LockFile  string  `toml:"lock_file"`
	Lookup    Lookup  `toml:"lookup"`
	Logging   Logging `toml:"logging"`
}

// Lookup selects and configures the show metadata service.
type Lookup struct {
	Provider       string `toml:"provider"`
	APIKey         string `toml:"api_key"`
	Language       string `toml:"language"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Logging controls the diagnostic log and the operation journal.
type Logging struct {
	Enabled       bool   `toml:"enabled"`
	Level         string `toml:"level"`
	Dir           string `toml:"dir"`
	RetentionDays int    `toml:"retention_days"`
	MaxSizeMB     int    `toml:"max_size_mb"`
}

// ProviderCatalog reports which lookup providers exist.
type ProviderCatalog interface {
	Has(name string) bool
	RequiresKey(name string) bool
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		MoviesDir: "/data/movies/",
		ShowsDir:  "/data/shows/",
		LockFile:  "~/.torrent-tidy/torrent-tidy.lock",
		Lookup: Lookup{
			Provider:       "tvmaze",
			Language:       "en-US",
			TimeoutSeconds: 10,
		},
		Logging: Logging{
			Enabled:       true,
			Level:         "info",
			Dir:           "~/.torrent-tidy/logs",
			RetentionDays: 30,
			MaxSizeMB:     10,
		},
	}
}

// ConfigPath returns the path to the default config file
func ConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".torrent-tidy", "config.toml"), nil
}

// Load reads the configuration at path, or the default location when path is
// empty. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		var err error
		if path, err = ConfigPath(); err != nil {
			return nil, err
		}
	}

	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, cfg.normalize()
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Fill in any fields the file blanked out
	defaults := DefaultConfig()
	if cfg.Lookup.Provider == "" {
		cfg.Lookup.Provider = defaults.Lookup.Provider
	}
	if cfg.Lookup.Language == "" {
		cfg.Lookup.Language = defaults.Lookup.Language
	}
	if cfg.Lookup.TimeoutSeconds == 0 {
		cfg.Lookup.TimeoutSeconds = defaults.Lookup.TimeoutSeconds
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = defaults.Logging.Level
	}
	if cfg.Logging.Dir == "" {
		cfg.Logging.Dir = defaults.Logging.Dir
	}
	if cfg.Logging.RetentionDays == 0 {
		cfg.Logging.RetentionDays = defaults.Logging.RetentionDays
	}
	if cfg.Logging.MaxSizeMB == 0 {
		cfg.Logging.MaxSizeMB = defaults.Logging.MaxSizeMB
	}
	if cfg.LockFile == "" {
		cfg.LockFile = defaults.LockFile
	}

	return cfg, cfg.normalize()
}

// Save writes the configuration to path as TOML
func (cfg *Config) Save(path string) error {
	if path == "" {
		var err error
		if path, err = ConfigPath(); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := cfg.Encode()
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Encode renders the configuration as TOML
func (cfg *Config) Encode() ([]byte, error) {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(cfg); err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return buf.Bytes(), nil
}

// Validate checks the configuration against the available providers
func (cfg *Config) Validate(providers ProviderCatalog) error {
	var problems []string

	if strings.TrimSpace(cfg.MoviesDir) == "" {
		problems = append(problems, "movies_dir must be set")
	}
	if strings.TrimSpace(cfg.ShowsDir) == "" {
		problems = append(problems, "shows_dir must be set")
	}
	if cfg.Lookup.TimeoutSeconds < 0 {
		problems = append(problems, "lookup.timeout_seconds must not be negative")
	}
	if providers != nil {
		switch {
		case !providers.Has(cfg.Lookup.Provider):
			problems = append(problems, fmt.Sprintf("lookup.provider %q is not supported", cfg.Lookup.Provider))
		case providers.RequiresKey(cfg.Lookup.Provider) && strings.TrimSpace(cfg.Lookup.APIKey) == "":
			problems = append(problems, fmt.Sprintf("lookup.api_key is required for provider %q", cfg.Lookup.Provider))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}

// ProviderSettings returns the map handed to the lookup provider's Configure
func (cfg *Config) ProviderSettings() map[string]interface{} {
	settings := map[string]interface{}{
		"language":        cfg.Lookup.Language,
		"timeout_seconds": cfg.Lookup.TimeoutSeconds,
	}
	if key := strings.TrimSpace(cfg.Lookup.APIKey); key != "" {
		settings["api_key"] = key
	}
	return settings
}

func (cfg *Config) normalize() error {
	var err error
	if cfg.MoviesDir, err = ExpandPath(cfg.MoviesDir); err != nil {
		return err
	}
	if cfg.ShowsDir, err = ExpandPath(cfg.ShowsDir); err != nil {
		return err
	}
	if cfg.LockFile, err = ExpandPath(cfg.LockFile); err != nil {
		return err
	}
	if cfg.Logging.Dir, err = ExpandPath(cfg.Logging.Dir); err != nil {
		return err
	}
	cfg.Lookup.Provider = strings.ToLower(strings.TrimSpace(cfg.Lookup.Provider))
	cfg.Logging.Level = strings.ToLower(strings.TrimSpace(cfg.Logging.Level))
	return nil
}

// ExpandPath resolves a leading "~" to the user's home directory
func ExpandPath(pathValue string) (string, error) {
	if !strings.HasPrefix(pathValue, "~") {
		return pathValue, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	if pathValue == "~" {
		return home, nil
	}
	if pathValue[1] == '/' || pathValue[1] == '\\' {
		return filepath.Join(home, pathValue[2:]), nil
	}
	return pathValue, nil
}
