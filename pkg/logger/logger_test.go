package logger

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("WARN"))
	assert.Equal(t, slog.LevelError, ParseLevel("Error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestInit_respectsLevel(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() { SetOutput(os.Stderr) })

	Init("WARN")
	Info("hidden message")
	Warn("shown message", "entry", "track1.mp3")

	out := buf.String()
	assert.NotContains(t, out, "hidden message")
	assert.Contains(t, out, "shown message")
	assert.Contains(t, out, "entry=track1.mp3")
}

func TestInitWithFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("FXVFS_DATA_DIR", dir)
	SetOutput(&bytes.Buffer{})
	t.Cleanup(func() {
		Close()
		SetOutput(os.Stderr)
	})

	InitWithFile("INFO")
	Info("to the file", "size", 1000)
	Close()

	matches, err := filepath.Glob(filepath.Join(dir, "fxvfs-*.log"))
	require.NoError(t, err)
	require.Len(t, matches, 1)

	data, err := os.ReadFile(matches[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), `msg="to the file"`)
	assert.Contains(t, string(data), "size=1000")
}

func TestFileHandler_mirrorsWithAttrs(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("FXVFS_DATA_DIR", dir)
	SetOutput(&bytes.Buffer{})
	t.Cleanup(func() {
		Close()
		SetOutput(os.Stderr)
	})

	InitWithFile("INFO")
	Log.With("archive", "music.zip").WithGroup("entry").Info("opened", "name", "track1.mp3", slog.Group("size", "bytes", 1000))
	Close()

	matches, err := filepath.Glob(filepath.Join(dir, "fxvfs-*.log"))
	require.NoError(t, err)
	require.Len(t, matches, 1)

	data, err := os.ReadFile(matches[0])
	require.NoError(t, err)
	line := string(data)
	assert.Contains(t, line, `msg="opened"`)
	assert.Contains(t, line, " archive=music.zip")
	assert.Contains(t, line, " entry.name=track1.mp3")
	assert.Contains(t, line, " entry.size.bytes=1000")
}

func TestSetLevel(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("FXVFS_DATA_DIR", dir)
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() {
		Close()
		SetOutput(os.Stderr)
	})

	InitWithFile("INFO")
	Debug("before raise")
	SetLevel("DEBUG")
	Debug("after raise")
	SetLevel("ERROR")
	Warn("after lower")
	Close()

	out := buf.String()
	assert.NotContains(t, out, "before raise")
	assert.Contains(t, out, "after raise")
	assert.NotContains(t, out, "after lower")

	matches, err := filepath.Glob(filepath.Join(dir, "fxvfs-*.log"))
	require.NoError(t, err)
	require.Len(t, matches, 1)
	data, err := os.ReadFile(matches[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), `msg="after raise"`, "the log file stays attached")
}
