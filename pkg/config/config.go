package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"fxvfs/pkg/env"
	"fxvfs/pkg/logger"
	"fxvfs/pkg/paths"
)

// DefaultScheme is the identifier prefix registered with the host.
const DefaultScheme = "fx://"

// Config holds application configuration
type Config struct {
	// Scheme prefix of composite identifiers, e.g. "fx://"
	Scheme   string `json:"scheme"`
	LogLevel string `json:"log_level"`
	// Mirror logs into a daily file in the data directory
	LogToFile bool `json:"log_to_file"`
	// Upper bound in bytes for a single materialized entry (0 = unlimited)
	MaxEntrySize int64 `json:"max_entry_size"`

	// Host configuration keys handed to the plugin (e.g. "vfs_fx.scheme")
	Host map[string]string `json:"host,omitempty"`

	// Internal - where was this config loaded from?
	LoadedPath string `json:"-"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Scheme:   DefaultScheme,
		LogLevel: "INFO",
	}
}

// Load is intended for startup only. It loads configuration from config.json
// in dir (the data directory when dir is empty), then applies environment
// variable overrides once.
// Priority: Environment variables (if not empty) > config.json > defaults
func Load(dir string) (*Config, error) {
	if dir == "" {
		dir = paths.GetDataDir()
	}
	configPath := filepath.Join(dir, "config.json")

	cfg := Default()
	cfg.LoadedPath = configPath

	if err := cfg.LoadFile(configPath); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load config %s: %w", configPath, err)
		}
		logger.Debug("No config found, using defaults", "path", configPath)
	} else {
		logger.Debug("Loaded configuration", "path", configPath)
	}

	overrides, keys := env.ReadConfigOverrides()
	ApplyEnvOverrides(cfg, overrides, keys)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile overrides config with values from a JSON file
func (c *Config) LoadFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()
	decoder := json.NewDecoder(file)
	if err := decoder.Decode(c); err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return nil
}

// SaveFile saves the current configuration to a JSON file
func (c *Config) SaveFile(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	return encoder.Encode(c)
}

// ValidateScheme reports whether scheme has the form name://.
func ValidateScheme(scheme string) error {
	if !strings.HasSuffix(scheme, "://") || scheme == "://" {
		return fmt.Errorf("invalid scheme %q: must be of the form name://", scheme)
	}
	return nil
}

// Validate checks the values the VFS depends on.
func (c *Config) Validate() error {
	if err := ValidateScheme(c.Scheme); err != nil {
		return err
	}
	if c.MaxEntrySize < 0 {
		return fmt.Errorf("invalid max_entry_size %d: must not be negative", c.MaxEntrySize)
	}
	return nil
}

// ApplyEnvOverrides applies environment-derived overrides to cfg (used at startup only).
// Only fields present in keys are applied, so env vars override file values per setting.
func ApplyEnvOverrides(cfg *Config, o env.ConfigOverrides, keys []string) {
	if slices.Contains(keys, env.KeyScheme) {
		cfg.Scheme = o.Scheme
	}
	if slices.Contains(keys, env.KeyLogLevel) {
		cfg.LogLevel = o.LogLevel
	}
	if slices.Contains(keys, env.KeyLogToFile) {
		cfg.LogToFile = o.LogToFile
	}
	if slices.Contains(keys, env.KeyMaxEntrySize) {
		cfg.MaxEntrySize = o.MaxEntrySize
	}
}
