// Package log provides the structured logger shared by the overlay packages.
package log

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config captures options for configuring the global logger.
type Config struct {
	Level   string    // optional log level ("debug", "info", etc.)
	Output  io.Writer // optional writer (defaults to os.Stderr)
	File    string    // optional log file; rotated with lumberjack when set
	Service string    // optional service name attached to every log entry

	MaxSizeMB  int // rotation size, default 10
	MaxBackups int // rotated files kept, default 3
	MaxAgeDays int // days to keep rotated files, default 28
}

var (
	mu   sync.RWMutex
	base zerolog.Logger
)

// Configure replaces the global logger. It may be called again, e.g. after a
// configuration reload.
func Configure(cfg Config) {
	level := zerolog.InfoLevel
	if cfg.Level != "" {
		if parsed, err := zerolog.ParseLevel(cfg.Level); err == nil {
			level = parsed
		}
	} else if env := os.Getenv("LOG_LEVEL"); env != "" {
		if parsed, err := zerolog.ParseLevel(env); err == nil {
			level = parsed
		}
	}
	zerolog.TimeFieldFormat = time.RFC3339

	service := cfg.Service
	if service == "" {
		service = "videooverlay"
	}

	l := zerolog.New(writer(cfg)).Level(level).With().
		Timestamp().
		Str("service", service).
		Logger()

	mu.Lock()
	base = l
	mu.Unlock()
}

func writer(cfg Config) io.Writer {
	if cfg.File != "" {
		return &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    orDefault(cfg.MaxSizeMB, 10),
			MaxBackups: orDefault(cfg.MaxBackups, 3),
			MaxAge:     orDefault(cfg.MaxAgeDays, 28),
		}
	}
	if cfg.Output != nil {
		return cfg.Output
	}
	return os.Stderr
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

// Base returns the configured base logger instance.
func Base() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base
}

// WithComponent returns a child logger annotated with the given component name.
func WithComponent(component string) zerolog.Logger {
	return Base().With().Str(FieldComponent, component).Logger()
}

func init() {
	Configure(Config{})
}
