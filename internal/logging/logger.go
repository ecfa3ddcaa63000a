package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/meicalc/meicalc/internal/config"
)

// New builds a slog.Logger writing to w according to the logging config
func New(cfg config.LoggingConfig, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// ParseLevel maps a level name to a slog level, defaulting to info
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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

// EngineLogger adapts a slog.Logger to the printf-style logger the
// calculators take.
type EngineLogger struct {
	L *slog.Logger
}

// NewEngineLogger wraps l; a nil l falls back to slog.Default
func NewEngineLogger(l *slog.Logger) EngineLogger {
	if l == nil {
		l = slog.Default()
	}
	return EngineLogger{L: l}
}

func (e EngineLogger) Debugf(format string, args ...any) { e.L.Debug(fmt.Sprintf(format, args...)) }
func (e EngineLogger) Infof(format string, args ...any)  { e.L.Info(fmt.Sprintf(format, args...)) }
func (e EngineLogger) Warnf(format string, args ...any)  { e.L.Warn(fmt.Sprintf(format, args...)) }
func (e EngineLogger) Errorf(format string, args ...any) { e.L.Error(fmt.Sprintf(format, args...)) }
