package logging

import (
	"context"

	"github.com/bnema/marvel-dashboard/internal/domain"
	"go.uber.org/zap/zapcore"
)

type EntrySink interface {
	Append(ctx context.Context, entry domain.LogEntry) error
}

// diagnosticCore copies info, warn and error records into an EntrySink so
// they show up in the in-app log viewer. Debug records are never kept.
type diagnosticCore struct {
	sink   EntrySink
	fields []zapcore.Field
}

func NewDiagnosticCore(sink EntrySink) zapcore.Core {
	return &diagnosticCore{sink: sink}
}

func (c *diagnosticCore) Enabled(level zapcore.Level) bool {
	return level >= zapcore.InfoLevel
}

func (c *diagnosticCore) With(fields []zapcore.Field) zapcore.Core {
	clone := &diagnosticCore{sink: c.sink}
	clone.fields = append(clone.fields, c.fields...)
	clone.fields = append(clone.fields, fields...)
	return clone
}

func (c *diagnosticCore) Check(entry zapcore.Entry, checked *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(entry.Level) {
		return checked.AddCore(entry, c)
	}
	return checked
}

func (c *diagnosticCore) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	encoder := zapcore.NewMapObjectEncoder()
	for _, field := range c.fields {
		field.AddTo(encoder)
	}
	for _, field := range fields {
		field.AddTo(encoder)
	}

	logEntry := domain.LogEntry{
		Timestamp: entry.Time.UTC(),
		Level:     levelOf(entry.Level),
		Message:   entry.Message,
	}
	if len(encoder.Fields) > 0 {
		logEntry.Data = encoder.Fields
	}

	return c.sink.Append(context.Background(), logEntry)
}

func (c *diagnosticCore) Sync() error {
	return nil
}

func levelOf(level zapcore.Level) domain.LogLevel {
	switch {
	case level >= zapcore.ErrorLevel:
		return domain.LogLevelError
	case level == zapcore.WarnLevel:
		return domain.LogLevelWarn
	default:
		return domain.LogLevelInfo
	}
}
