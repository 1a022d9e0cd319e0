// Package logger writes the zoomctl log. Every record goes to a rotating file;
// the user-facing levels are echoed to the terminal as well.
package logger

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LevelTrace is below Debug and only ever reaches the log file
const LevelTrace = slog.LevelDebug - 4

const (
	appName     = "zoomctl"
	logFileName = appName + ".log"

	// Rotation of the log file
	maxSizeMB  = 2
	maxBackups = 3
	maxAgeDays = 28
)

// LoggerInterface defines the logging methods
type LoggerInterface interface {
	Trace(msg string, args ...any) // Only logs to file, never to console
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	Close()
	GetLogPath() string
}

// LoggerOptions configures the logger
type LoggerOptions struct {
	Verbose  bool      // Echo Debug records to the console
	LogDir   string    // Defaults to $XDG_STATE_HOME/zoomctl
	Console  io.Writer // Defaults to os.Stdout
	Compress bool      // Gzip rotated files
}

// GetLogPath returns the log file used for opts
func GetLogPath(opts LoggerOptions) string {
	dir := opts.LogDir
	if dir == "" {
		dir = filepath.Join(stateHome(), appName)
	}

	return filepath.Join(dir, logFileName)
}

func stateHome() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return dir
	}

	return filepath.Join(os.Getenv("HOME"), ".local", "state")
}

// PrintLogFile copies the log file to w, or to stdout when w is nil
func PrintLogFile(w io.Writer, opts LoggerOptions) error {
	if w == nil {
		w = os.Stdout
	}

	data, err := os.ReadFile(GetLogPath(opts))
	if err != nil {
		return fmt.Errorf("failed to read log file: %w", err)
	}

	_, err = w.Write(data)
	return err
}

// Logger writes to the log file and the console through one slog.Logger
type Logger struct {
	log  *slog.Logger
	file *lumberjack.Logger
}

// NewLogger creates the log directory if needed and opens the logger
func NewLogger(opts LoggerOptions) (*Logger, error) {
	console := opts.Console
	if console == nil {
		console = os.Stdout
	}

	path := GetLogPath(opts)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("could not create log directory: %w", err)
	}

	file := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		MaxAge:     maxAgeDays,
		Compress:   opts.Compress,
	}

	handler := teeHandler{
		slog.NewTextHandler(file, &slog.HandlerOptions{Level: LevelTrace, ReplaceAttr: nameTraceLevel}),
		&ConsoleHandler{writer: console, verbose: opts.Verbose},
	}

	return &Logger{log: slog.New(handler), file: file}, nil
}

// nameTraceLevel prints LevelTrace as TRACE instead of DEBUG-4
func nameTraceLevel(_ []string, a slog.Attr) slog.Attr {
	if level, ok := a.Value.Any().(slog.Level); ok && a.Key == slog.LevelKey && level == LevelTrace {
		return slog.String(slog.LevelKey, "TRACE")
	}

	return a
}

// Close flushes and closes the log file
func (l *Logger) Close() {
	if err := l.file.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Failed to close log file: %v\n", err)
	}
}

// GetLogPath returns the path to the current log file
func (l *Logger) GetLogPath() string {
	return l.file.Filename
}

func (l *Logger) Trace(msg string, args ...any) {
	l.log.Log(context.Background(), LevelTrace, msg, args...)
}

func (l *Logger) Debug(msg string, args ...any) { l.log.Debug(msg, args...) }
func (l *Logger) Info(msg string, args ...any)  { l.log.Info(msg, args...) }
func (l *Logger) Warn(msg string, args ...any)  { l.log.Warn(msg, args...) }
func (l *Logger) Error(msg string, args ...any) { l.log.Error(msg, args...) }

// teeHandler passes each record to every handler enabled for its level
type teeHandler []slog.Handler

func (t teeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range t {
		if h.Enabled(ctx, level) {
			return true
		}
	}

	return false
}

func (t teeHandler) Handle(ctx context.Context, r slog.Record) error {
	var errs []error

	for _, h := range t {
		if h.Enabled(ctx, r.Level) {
			errs = append(errs, h.Handle(ctx, r.Clone()))
		}
	}

	return errors.Join(errs...)
}

func (t teeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(teeHandler, len(t))
	for i, h := range t {
		out[i] = h.WithAttrs(attrs)
	}

	return out
}

func (t teeHandler) WithGroup(name string) slog.Handler {
	out := make(teeHandler, len(t))
	for i, h := range t {
		out[i] = h.WithGroup(name)
	}

	return out
}

// consoleStyles maps a level to its console prefix and colour. Info has none.
var consoleStyles = map[slog.Level]struct {
	prefix string
	color  *color.Color
}{
	slog.LevelError: {"ERROR: ", color.New(color.FgRed)},
	slog.LevelWarn:  {"WARNING: ", color.New(color.FgYellow)},
	slog.LevelDebug: {"VERBOSE: ", color.New(color.FgCyan)},
}

// ConsoleHandler prints one line per record: prefix, message, then key=value attributes
type ConsoleHandler struct {
	writer  io.Writer
	verbose bool
}

func (h *ConsoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	if level == slog.LevelDebug {
		return h.verbose
	}

	return level > slog.LevelDebug
}

func (h *ConsoleHandler) Handle(_ context.Context, r slog.Record) error {
	var line strings.Builder
	line.WriteString(r.Message)

	r.Attrs(func(a slog.Attr) bool {
		fmt.Fprintf(&line, " %s=%v", a.Key, a.Value)
		return true
	})

	// Console write errors are ignored
	style, ok := consoleStyles[r.Level]
	if !ok {
		_, _ = fmt.Fprintln(h.writer, line.String())
		return nil
	}

	_, _ = style.color.Fprintln(h.writer, style.prefix+line.String())
	return nil
}

func (h *ConsoleHandler) WithAttrs(_ []slog.Attr) slog.Handler {
	return h
}

func (h *ConsoleHandler) WithGroup(_ string) slog.Handler {
	return h
}

// NoOpLogger is a logger that does nothing - useful for tests
type NoOpLogger struct{}

func (n *NoOpLogger) Trace(msg string, args ...any) {}
func (n *NoOpLogger) Debug(msg string, args ...any) {}
func (n *NoOpLogger) Info(msg string, args ...any)  {}
func (n *NoOpLogger) Warn(msg string, args ...any)  {}
func (n *NoOpLogger) Error(msg string, args ...any) {}
func (n *NoOpLogger) Close()                        {}
func (n *NoOpLogger) GetLogPath() string            { return "" }

// NewNoOpLogger creates a new no-op logger for testing
func NewNoOpLogger() *NoOpLogger {
	return &NoOpLogger{}
}
