package observability

import (
	"log/slog"
	"os"
)

// Logger wraps slog so callers keep a small Info/Error surface.
type Logger struct {
	slog *slog.Logger
}

func NewLogger() *Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	return &Logger{slog: slog.New(handler)}
}

func (l *Logger) Info(message string, args ...any) {
	if l == nil || l.slog == nil {
		return
	}
	l.slog.Info(message, args...)
}

func (l *Logger) Error(message string, args ...any) {
	if l == nil || l.slog == nil {
		return
	}
	l.slog.Error(message, args...)
}

func (l *Logger) With(args ...any) *Logger {
	if l == nil || l.slog == nil {
		return l
	}
	return &Logger{slog: l.slog.With(args...)}
}
