package logger

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrettyHandlerRedactsCredentials(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, slog.LevelInfo, true)

	log.Info("login attempt",
		"email", "a@b.c",
		"password", "hunter2",
		"Authorization", "Bearer abc",
		slog.Group("body", "refresh_token", "xyz"),
	)

	out := buf.String()
	assert.Contains(t, out, "INFO  login attempt")
	assert.Contains(t, out, "email=a@b.c")
	assert.Contains(t, out, "password=[REDACTED]")
	assert.Contains(t, out, "Authorization=[REDACTED]")
	assert.Contains(t, out, "body.refresh_token=[REDACTED]")
	assert.NotContains(t, out, "hunter2")
	assert.NotContains(t, out, "abc")
	assert.NotContains(t, out, "xyz")
	assert.NotContains(t, out, "\033[")
}

func TestPrettyHandlerLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, slog.LevelWarn, true)

	log.Info("hidden")
	log.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestPrettyHandlerGroupsAndAttrs(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, slog.LevelDebug, true).With("component", "auth").WithGroup("req").With("id", 7)

	log.Debug("handled", "status", 200)

	out := buf.String()
	assert.Contains(t, out, "component=auth")
	assert.Contains(t, out, "req.id=7")
	assert.Contains(t, out, "req.status=200")
}
