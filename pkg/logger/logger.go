package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"fxvfs/pkg/env"
	"fxvfs/pkg/paths"
)

// Log is usable before Init; it starts out as the process default logger.
var Log = slog.Default()

const timeLayout = "2006-01-02T15:04:05.000-07:00"

var (
	logFile     *os.File
	logFileMu   sync.Mutex
	logLocation *time.Location
	locationMu  sync.RWMutex
	output      io.Writer = os.Stderr
)

// ParseLevel maps DEBUG/INFO/WARN/ERROR (any case) to a slog level.
// Anything else is INFO.
func ParseLevel(levelStr string) slog.Level {
	switch strings.ToUpper(levelStr) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Init initializes the global logger writing to stderr.
func Init(levelStr string) {
	initWithFile(levelStr, false)
}

// InitWithFile is Init plus a daily log file in the data directory.
func InitWithFile(levelStr string) {
	initWithFile(levelStr, true)
}

func initWithFile(levelStr string, toFile bool) {
	level := ParseLevel(levelStr)

	// Load timezone from TZ environment variable
	tzEnv := env.TZ()
	loc := time.Local
	if tzEnv != "" {
		if loaded, err := time.LoadLocation(tzEnv); err == nil {
			loc = loaded
		}
	}
	locationMu.Lock()
	logLocation = loc
	locationMu.Unlock()

	if toFile {
		openLogFile(loc)
	}

	tzLoc := loc
	opts := &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && len(groups) == 0 {
				return slog.String(slog.TimeKey, a.Value.Time().In(tzLoc).Format(timeLayout))
			}
			return a
		},
	}

	handler := &FileHandler{
		Handler: slog.NewTextHandler(output, opts),
	}

	Log = slog.New(handler)
	slog.SetDefault(Log)

	Log.Debug("Logger initialized", "level", level.String(), "timezone", loc.String(), "tz_env", tzEnv)
}

// openLogFile opens fxvfs-YYYY-MM-DD.log (one file per day) in append mode.
func openLogFile(loc *time.Location) {
	dataDir := paths.GetDataDir()
	logFilePath := filepath.Join(dataDir, fmt.Sprintf("fxvfs-%s.log", time.Now().In(loc).Format("2006-01-02")))

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create log directory: %v\n", err)
		return
	}

	logFileMu.Lock()
	defer logFileMu.Unlock()
	if logFile != nil {
		logFile.Close()
	}
	f, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log file %s: %v\n", logFilePath, err)
		logFile = nil
		return
	}
	logFile = f
}

// FileHandler wraps a slog.Handler and mirrors every record into the log file, if one is open.
// Attributes and groups added through With and WithGroup are mirrored too.
type FileHandler struct {
	slog.Handler
	prefix string // preformatted " key=value" pairs from WithAttrs
	group  string // dotted group path applied to record keys
}

func (h *FileHandler) Handle(ctx context.Context, r slog.Record) error {
	err := h.Handler.Handle(ctx, r)

	logFileMu.Lock()
	defer logFileMu.Unlock()
	if logFile == nil {
		return err
	}

	locationMu.RLock()
	loc := logLocation
	locationMu.RUnlock()
	if loc == nil {
		loc = time.Local
	}

	var b strings.Builder
	fmt.Fprintf(&b, "time=%s level=%s msg=%q", r.Time.In(loc).Format(timeLayout), r.Level, r.Message)
	b.WriteString(h.prefix)
	r.Attrs(func(a slog.Attr) bool {
		appendAttr(&b, h.group, a)
		return true
	})
	fmt.Fprintln(logFile, b.String())
	return err
}

func (h *FileHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	var b strings.Builder
	b.WriteString(h.prefix)
	for _, a := range attrs {
		appendAttr(&b, h.group, a)
	}
	return &FileHandler{Handler: h.Handler.WithAttrs(attrs), prefix: b.String(), group: h.group}
}

func (h *FileHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return &FileHandler{Handler: h.Handler.WithGroup(name), prefix: h.prefix, group: h.group + name + "."}
}

// appendAttr writes a as " group.key=value", flattening nested groups.
func appendAttr(b *strings.Builder, group string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}
	if a.Value.Kind() == slog.KindGroup {
		sub := group
		if a.Key != "" {
			sub += a.Key + "."
		}
		for _, ga := range a.Value.Group() {
			appendAttr(b, sub, ga)
		}
		return
	}
	fmt.Fprintf(b, " %s%s=%v", group, a.Key, a.Value)
}

// SetOutput redirects console output for subsequent Init calls.
func SetOutput(w io.Writer) {
	output = w
}

// SetLevel updates the logger level at runtime. An open log file stays attached.
func SetLevel(levelStr string) {
	initWithFile(levelStr, false)
}

// Close closes the log file if one is open
func Close() {
	logFileMu.Lock()
	defer logFileMu.Unlock()
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}

// Helper functions for easy access
func Debug(msg string, args ...any) {
	Log.Debug(msg, args...)
}

func Info(msg string, args ...any) {
	Log.Info(msg, args...)
}

func Warn(msg string, args ...any) {
	Log.Warn(msg, args...)
}

func Error(msg string, args ...any) {
	Log.Error(msg, args...)
}
