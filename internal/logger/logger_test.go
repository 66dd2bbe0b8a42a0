package logger_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vytor/lexiflash/internal/logger"
)

func newBufferLogger(level logger.Level) (*logger.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	l := logger.New(
		logger.WithOutput(&buf),
		logger.WithLevel(level),
		logger.WithColors(false),
	)
	return l, &buf
}

func TestLogger_LevelFiltering(t *testing.T) {
	l, buf := newBufferLogger(logger.WARN)

	l.Info("hidden")
	l.Warn("shown %d", 1)

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "WARN  ")
	assert.Contains(t, buf.String(), "shown 1")
}

func TestLogger_FieldsSortedAndInherited(t *testing.T) {
	l, buf := newBufferLogger(logger.DEBUG)

	child := l.WithPrefix("study").WithField("profile_id", 7).WithFields(map[string]any{"grade": "good"})
	child.Debug("graded")

	line := buf.String()
	assert.Contains(t, line, "[study]")
	assert.Contains(t, line, "graded grade=good profile_id=7")
}

func TestLogger_WithError(t *testing.T) {
	l, buf := newBufferLogger(logger.DEBUG)

	l.WithError(errors.New("boom")).Error("failed")
	l.WithError(nil).Info("fine")

	assert.Contains(t, buf.String(), "failed error=boom")
	assert.Contains(t, buf.String(), "fine\n")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, logger.DEBUG, logger.ParseLevel("debug"))
	assert.Equal(t, logger.WARN, logger.ParseLevel("WARNING"))
	assert.Equal(t, logger.ERROR, logger.ParseLevel("error"))
	assert.Equal(t, logger.INFO, logger.ParseLevel("nonsense"))
}

func TestContextRoundTrip(t *testing.T) {
	l, _ := newBufferLogger(logger.DEBUG)
	ctx := logger.NewContext(context.Background(), l)

	assert.Same(t, l, logger.FromContext(ctx))
	assert.Same(t, logger.Default(), logger.FromContext(context.Background()))
}
