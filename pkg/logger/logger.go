package logger

import (
	"log/slog"
	"os"
	"strings"
)

var defaultLogger *slog.Logger

// Init configures the process-wide logger. Production defaults to JSON at info,
// everything else to text at debug. level and format override the defaults when set.
func Init(env string, opts ...Option) {
	cfg := options{level: slog.LevelDebug, json: false}
	if env == "production" {
		cfg = options{level: slog.LevelInfo, json: true}
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	var handler slog.Handler
	if cfg.json {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.level})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.level})
	}

	defaultLogger = slog.New(handler)
	slog.SetDefault(defaultLogger)
}

type options struct {
	level slog.Level
	json  bool
}

type Option func(*options)

func WithLevel(level string) Option {
	return func(o *options) {
		switch strings.ToLower(level) {
		case "debug":
			o.level = slog.LevelDebug
		case "info":
			o.level = slog.LevelInfo
		case "warn":
			o.level = slog.LevelWarn
		case "error":
			o.level = slog.LevelError
		}
	}
}

func WithFormat(format string) Option {
	return func(o *options) {
		switch strings.ToLower(format) {
		case "json":
			o.json = true
		case "text":
			o.json = false
		}
	}
}

func LoggerWrapper() *slog.Logger {
	if defaultLogger == nil {
		// lazy initialize a development logger to avoid nil pointer panics
		Init("development")
	}
	return defaultLogger
}
