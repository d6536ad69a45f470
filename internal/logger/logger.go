// Package logger builds the process-wide slog logger from configuration
package logger

import (
	"io"
	"log/slog"
	"strings"
)

// Log levels
const (
	LevelDebug   = "debug"
	LevelInfo    = "info"
	LevelWarn    = "warn"
	LevelWarning = "warning"
	LevelError   = "error"
)

// Log formats
const (
	FormatText = "text"
	FormatJSON = "json"
)

// AttrKeyService tags every record with the program name
const AttrKeyService = "service"

// Config represents logger configuration
type Config struct {
	Level     string // "debug", "info", "warn", "error"
	Format    string // "json", "text"
	Service   string
	AddSource bool
}

// LogLevel converts the configured level to a slog.Level, defaulting to info
func (c Config) LogLevel() slog.Level {
	switch strings.ToLower(c.Level) {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn, LevelWarning:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// IsJSON returns true if format is JSON
func (c Config) IsJSON() bool {
	return strings.ToLower(c.Format) == FormatJSON
}

// New builds a logger writing to w
func New(cfg Config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:     cfg.LogLevel(),
		AddSource: cfg.AddSource,
	}

	var handler slog.Handler
	if cfg.IsJSON() {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	logger := slog.New(handler)
	if cfg.Service != "" {
		logger = logger.With(AttrKeyService, cfg.Service)
	}
	return logger
}

// Setup builds a logger and installs it as the slog default
func Setup(cfg Config, w io.Writer) *slog.Logger {
	logger := New(cfg, w)
	slog.SetDefault(logger)
	return logger
}
