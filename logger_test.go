package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	cfg := validConfig()
	cfg.LogFormat = "json"
	cfg.LogLevel = "warn"

	logger := newLogger(cfg, &buf)
	logger.Info("hidden")
	logger.Warn("shown", LogFieldSource, "https://en.wikipedia.org/wiki/X")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"msg":"shown"`)
	assert.Contains(t, out, `"srcurl":"https://en.wikipedia.org/wiki/X"`)
}

func TestNewLogger_Text(t *testing.T) {
	var buf bytes.Buffer
	cfg := validConfig()
	cfg.LogLevel = "debug"

	newLogger(cfg, &buf).Debug("details", LogFieldDuration, 12)
	assert.Contains(t, buf.String(), "msg=details")
	assert.Contains(t, buf.String(), "duration_ms=12")
}
