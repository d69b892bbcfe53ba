package logging

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/bnema/marvel-dashboard/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type recordingSink struct {
	mu      sync.Mutex
	entries []domain.LogEntry
	err     error
}

func (s *recordingSink) Append(_ context.Context, entry domain.LogEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
	return s.err
}

func (s *recordingSink) all() []domain.LogEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.LogEntry(nil), s.entries...)
}

func TestNewTeesInfoAndAboveIntoSink(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	sink := &recordingSink{}

	logger, err := New(Options{Level: "debug", Format: FormatJSON, Output: &out}, sink)
	require.NoError(t, err)

	logger.Debug("fetching collection", zap.String("collection", "characters"))
	logger.Info("User logged in", zap.String("userId", "peter@example.com"))
	logger.With(zap.String("requestId", "req-1")).Error("Error fetching series", zap.Error(errors.New("status 500")))
	logger.Warn("Failed to update location")

	entries := sink.all()
	require.Len(t, entries, 3)

	assert.Equal(t, domain.LogLevelInfo, entries[0].Level)
	assert.Equal(t, "User logged in", entries[0].Message)
	assert.Equal(t, map[string]any{"userId": "peter@example.com"}, entries[0].Data)
	assert.False(t, entries[0].Timestamp.IsZero())

	assert.Equal(t, domain.LogLevelError, entries[1].Level)
	assert.Equal(t, "req-1", entries[1].Data["requestId"])
	assert.Equal(t, "status 500", entries[1].Data["error"])

	assert.Equal(t, domain.LogLevelWarn, entries[2].Level)
	assert.Nil(t, entries[2].Data)

	assert.Contains(t, out.String(), "fetching collection")
	assert.Contains(t, out.String(), `"msg":"User logged in"`)
}

func TestNewWithoutSinkOnlyWritesOutput(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	logger, err := New(Options{Level: "info", Output: &out}, nil)
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("visible")

	assert.NotContains(t, out.String(), "hidden")
	assert.Contains(t, out.String(), "visible")
}

func TestNewRejectsUnknownSettings(t *testing.T) {
	t.Parallel()

	_, err := New(Options{Level: "loud"}, nil)
	assert.ErrorContains(t, err, "parse log level")

	_, err = New(Options{Format: "xml"}, nil)
	assert.ErrorContains(t, err, "unsupported log format")
}

func TestParseLevelDefaultsToWarn(t *testing.T) {
	t.Parallel()

	level, err := ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, zapcore.WarnLevel, level)
}

func TestDiagnosticCoreSurfacesSinkErrors(t *testing.T) {
	t.Parallel()

	sink := &recordingSink{err: errors.New("storage full")}
	core := NewDiagnosticCore(sink)

	err := core.Write(zapcore.Entry{Level: zapcore.ErrorLevel, Message: "boom"}, nil)
	assert.EqualError(t, err, "storage full")
	assert.False(t, core.Enabled(zapcore.DebugLevel))
}
