// Package config resolves tally settings from defaults, an optional TOML
// file and TALLY_* environment variables, in that order of precedence.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/alexanderramin/tally/internal/atomicfile"
	"github.com/alexanderramin/tally/internal/view"
)

// Config holds every runtime setting.
type Config struct {
	DBPath          string `toml:"db_path"`
	DefaultEstimate string `toml:"default_estimate"`
	Expand          string `toml:"expand"`
	PageDelayMs     int    `toml:"page_delay_ms"`
	LogUseCases     bool   `toml:"log_use_cases"`

	// Path is the file the config was read from, or would be written to.
	Path string `toml:"-"`

	// Set when the value came from the environment; Save leaves the file's
	// key alone for these.
	envExpand    bool
	envPageDelay bool
}

// Default returns the built-in settings rooted at ~/.tally.
func Default() (Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("finding home directory: %w", err)
	}
	dir := filepath.Join(home, ".tally")
	return Config{
		DBPath:      filepath.Join(dir, "tally.db"),
		Expand:      string(view.ExpandNone),
		PageDelayMs: int(view.DefaultPageDelay / time.Millisecond),
		Path:        filepath.Join(dir, "config.toml"),
	}, nil
}

// Load applies the config file named by TALLY_CONFIG (or the default path)
// and then environment overrides on top of Default.
func Load() (Config, error) {
	cfg, err := Default()
	if err != nil {
		return Config{}, err
	}
	if v := os.Getenv("TALLY_CONFIG"); v != "" {
		cfg.Path = v
	}
	if err := cfg.mergeFile(cfg.Path); err != nil {
		return Config{}, err
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// mergeFile overlays keys present in path. A missing file is not an error.
func (c *Config) mergeFile(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	var file persistedConfig
	if _, err := toml.DecodeFile(path, &file); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	if file.DBPath != nil {
		c.DBPath = expandHome(*file.DBPath)
	}
	if file.DefaultEstimate != nil {
		c.DefaultEstimate = strings.TrimSpace(*file.DefaultEstimate)
	}
	if file.Expand != nil {
		c.Expand = *file.Expand
	}
	if file.PageDelayMs != nil {
		c.PageDelayMs = *file.PageDelayMs
	}
	if file.LogUseCases != nil {
		c.LogUseCases = *file.LogUseCases
	}
	return nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("TALLY_DB"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("TALLY_ESTIMATE"); v != "" {
		c.DefaultEstimate = v
	}
	if v := os.Getenv("TALLY_EXPAND"); v != "" {
		c.Expand = v
		c.envExpand = true
	}
	if v := os.Getenv("TALLY_PAGE_DELAY_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			c.PageDelayMs = n
			c.envPageDelay = true
		}
	}
	if v := os.Getenv("TALLY_LOG_USE_CASES"); v != "" {
		c.LogUseCases, _ = strconv.ParseBool(v)
	}
}

// Validate rejects settings no component can honor.
func (c Config) Validate() error {
	if _, err := view.ParseExpandMode(c.Expand); err != nil {
		return fmt.Errorf("config expand: %w", err)
	}
	if c.PageDelayMs < 0 {
		return fmt.Errorf("config page_delay_ms must be >= 0, got %d", c.PageDelayMs)
	}
	if strings.TrimSpace(c.DBPath) == "" {
		return fmt.Errorf("config db_path is required")
	}
	return nil
}

// ViewConfig converts the settings the projector reads.
func (c Config) ViewConfig() view.Config {
	mode, err := view.ParseExpandMode(c.Expand)
	if err != nil {
		mode = view.ExpandNone
	}
	return view.Config{
		PageDelay: time.Duration(c.PageDelayMs) * time.Millisecond,
		Expand:    mode,
	}
}

type persistedConfig struct {
	DBPath          *string `toml:"db_path,omitempty"`
	DefaultEstimate *string `toml:"default_estimate,omitempty"`
	Expand          *string `toml:"expand,omitempty"`
	PageDelayMs     *int    `toml:"page_delay_ms,omitempty"`
	LogUseCases     *bool   `toml:"log_use_cases,omitempty"`
}

func nonEmptyPtr(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// Save writes cfg to cfg.Path atomically. Only the default estimate, the
// expand mode and a non-default page delay are written, and the latter two
// only when they were not overridden from the environment. Every other key
// stays as the file had it.
func Save(cfg Config) error {
	if strings.TrimSpace(cfg.Path) == "" {
		return fmt.Errorf("config path is required")
	}

	var existing persistedConfig
	if _, err := os.Stat(cfg.Path); err == nil {
		if _, err := toml.DecodeFile(cfg.Path, &existing); err != nil {
			return fmt.Errorf("parsing config %s: %w", cfg.Path, err)
		}
	}

	existing.DefaultEstimate = nonEmptyPtr(cfg.DefaultEstimate)
	if !cfg.envExpand {
		existing.Expand = nonEmptyPtr(cfg.Expand)
	}
	if !cfg.envPageDelay && cfg.PageDelayMs != int(view.DefaultPageDelay/time.Millisecond) {
		delay := cfg.PageDelayMs
		existing.PageDelayMs = &delay
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(existing); err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := atomicfile.WriteFile(cfg.Path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing config %s: %w", cfg.Path, err)
	}
	return nil
}

func expandHome(p string) string {
	if !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, p[2:])
}
