// Package env consolidates all environment variable reading for the application.
// Config overrides are applied only at startup (see config.Load).
package env

import (
	"os"
	"strconv"
	"strings"
)

// Environment variable names (single source of truth)
const (
	LOGLevel     = "LOG_LEVEL"
	TZVar        = "TZ"
	Scheme       = "FXVFS_SCHEME"
	MaxEntrySize = "FXVFS_MAX_ENTRY_SIZE"
	LogToFile    = "FXVFS_LOG_TO_FILE"
	DataDirVar   = "FXVFS_DATA_DIR"
)

// Config JSON keys returned by ReadConfigOverrides
const (
	KeyScheme       = "scheme"
	KeyLogLevel     = "log_level"
	KeyLogToFile    = "log_to_file"
	KeyMaxEntrySize = "max_entry_size"
)

// TZ returns the TZ environment variable (e.g. for logger timezone).
func TZ() string {
	return os.Getenv(TZVar)
}

// LogLevel returns LOG_LEVEL with default "INFO" (for early logger init before config).
func LogLevel() string {
	if v := os.Getenv(LOGLevel); v != "" {
		return v
	}
	return "INFO"
}

// DataDir returns FXVFS_DATA_DIR, empty when unset.
func DataDir() string {
	return os.Getenv(DataDirVar)
}

// ConfigOverrides holds all config values that can be set via environment variables.
type ConfigOverrides struct {
	Scheme       string
	LogLevel     string
	LogToFile    bool
	MaxEntrySize int64
}

// ReadConfigOverrides reads all relevant environment variables once and returns
// overrides to apply to config plus the list of config JSON keys that were set.
// Unparseable numeric values are ignored rather than reported.
func ReadConfigOverrides() (ConfigOverrides, []string) {
	var o ConfigOverrides
	var keys []string

	if v := os.Getenv(Scheme); v != "" {
		o.Scheme = v
		keys = append(keys, KeyScheme)
	}
	if v := os.Getenv(LOGLevel); v != "" {
		o.LogLevel = v
		keys = append(keys, KeyLogLevel)
	}
	if v := os.Getenv(LogToFile); v != "" {
		o.LogToFile = parseBool(v)
		keys = append(keys, KeyLogToFile)
	}
	if v := os.Getenv(MaxEntrySize); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			o.MaxEntrySize = n
			keys = append(keys, KeyMaxEntrySize)
		}
	}

	return o, keys
}

func parseBool(v string) bool {
	return strings.ToLower(v) == "true" || v == "1"
}
