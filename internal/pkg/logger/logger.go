// Package logger adapts log/slog to the ports.Logger interface. The default
// handler is tint for colorized terminal output; level and format come
// from config.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/lmittmann/tint"
)

// SlogLogger routes structured fields to a slog handler.
type SlogLogger struct {
	log *slog.Logger
}

// New creates a SlogLogger writing to stderr at the given level ("debug",
// "info", "warn", "error"). Format "json" selects line-delimited JSON;
// anything else gets tinted text.
func New(level, format string) *SlogLogger {
	return &SlogLogger{log: slog.New(newHandler(os.Stderr, level, format))}
}

func newHandler(w io.Writer, level, format string) slog.Handler {
	if strings.EqualFold(format, "json") {
		return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: parseLevel(level)})
	}
	return tint.NewHandler(w, &tint.Options{Level: parseLevel(level)})
}

// NewWith wraps an existing slog.Logger, useful in tests.
func NewWith(log *slog.Logger) *SlogLogger {
	return &SlogLogger{log: log}
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (l *SlogLogger) Debug(msg string, fields map[string]interface{}) {
	l.log.Debug(msg, args(fields)...)
}

func (l *SlogLogger) Info(msg string, fields map[string]interface{}) {
	l.log.Info(msg, args(fields)...)
}

func (l *SlogLogger) Warn(msg string, fields map[string]interface{}) {
	l.log.Warn(msg, args(fields)...)
}

func (l *SlogLogger) Error(msg string, err error, fields map[string]interface{}) {
	a := args(fields)
	if err != nil {
		a = append(a, tint.Err(err))
	}
	l.log.Error(msg, a...)
}

func args(fields map[string]interface{}) []any {
	out := make([]any, 0, len(fields)*2)
	for k, v := range fields {
		out = append(out, k, v)
	}
	return out
}
