package main

import (
	"io"
	"log/slog"
)

const (
	// LogFieldRequestID is the field name for request ID
	LogFieldRequestID = "request_id"
	// LogFieldDuration is the field name for duration in milliseconds
	LogFieldDuration = "duration_ms"
	// LogFieldSource is the field name for the page being highlighted
	LogFieldSource = "srcurl"
	// LogFieldErrorCode is the field name for error code
	LogFieldErrorCode = "error_code"
)

// newLogger builds the service logger from the config
func newLogger(cfg *Config, w io.Writer) *slog.Logger {
	level, err := parseLogLevel(cfg.LogLevel)
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}
