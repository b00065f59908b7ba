package env

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadConfigOverrides(t *testing.T) {
	t.Setenv(Scheme, "arc://")
	t.Setenv(LOGLevel, "DEBUG")
	t.Setenv(LogToFile, "1")
	t.Setenv(MaxEntrySize, "1024")

	o, keys := ReadConfigOverrides()

	assert.Equal(t, "arc://", o.Scheme)
	assert.Equal(t, "DEBUG", o.LogLevel)
	assert.True(t, o.LogToFile)
	assert.Equal(t, int64(1024), o.MaxEntrySize)
	assert.ElementsMatch(t, []string{KeyScheme, KeyLogLevel, KeyLogToFile, KeyMaxEntrySize}, keys)
}

func TestReadConfigOverrides_invalidNumberIgnored(t *testing.T) {
	t.Setenv(MaxEntrySize, "lots")

	o, keys := ReadConfigOverrides()

	assert.Zero(t, o.MaxEntrySize)
	assert.NotContains(t, keys, KeyMaxEntrySize)
}

func TestLogLevelDefault(t *testing.T) {
	t.Setenv(LOGLevel, "")
	assert.Equal(t, "INFO", LogLevel())
}
