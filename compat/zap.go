package compat

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/lixenwraith/loggers"
)

var _ zapcore.Core = (*ZapCore)(nil)

// ZapCore is a zapcore.Core delivering entries through a loggers.Logger
// Libraries logging with zap then share the sink and the overflow policy of the application
type ZapCore struct {
	logger *loggers.Logger
	fields []zapcore.Field
}

// NewZapCore creates a zap core for logger
func NewZapCore(logger *loggers.Logger) *ZapCore {
	return &ZapCore{logger: logger}
}

// NewZapLogger creates a zap.Logger backed by logger, call sites come from zap
func NewZapLogger(logger *loggers.Logger, opts ...zap.Option) *zap.Logger {
	opts = append([]zap.Option{zap.AddCaller()}, opts...)
	return zap.New(NewZapCore(logger), opts...)
}

// severityFromZap maps zap levels onto severities
func severityFromZap(level zapcore.Level) loggers.Severity {
	switch {
	case level < zapcore.DebugLevel:
		return loggers.SeverityTrace
	case level == zapcore.DebugLevel:
		return loggers.SeverityDebug
	case level == zapcore.InfoLevel:
		return loggers.SeverityInfo
	case level == zapcore.WarnLevel:
		return loggers.SeverityWarning
	case level == zapcore.ErrorLevel:
		return loggers.SeverityError
	default:
		return loggers.SeverityCritical
	}
}

// Enabled implements zapcore.LevelEnabler
func (c *ZapCore) Enabled(level zapcore.Level) bool {
	return c.logger.Enabled(severityFromZap(level))
}

// With implements zapcore.Core
func (c *ZapCore) With(fields []zapcore.Field) zapcore.Core {
	clone := &ZapCore{
		logger: c.logger,
		fields: make([]zapcore.Field, 0, len(c.fields)+len(fields)),
	}
	clone.fields = append(clone.fields, c.fields...)
	clone.fields = append(clone.fields, fields...)
	return clone
}

// Check implements zapcore.Core
func (c *ZapCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

// Write implements zapcore.Core
// Fields keep their call order, each one is encoded on its own
func (c *ZapCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	kv := make([]any, 0, (len(c.fields)+len(fields))*2+2)
	if ent.LoggerName != "" {
		kv = append(kv, "logger", ent.LoggerName)
	}
	kv = appendZapFields(kv, c.fields)
	kv = appendZapFields(kv, fields)

	record := loggers.Record{
		Severity: severityFromZap(ent.Level),
		Message:  ent.Message,
		Fields:   kv,
	}
	if ent.Caller.Defined {
		record.Location = loggers.Location{
			Function: ent.Caller.Function,
			File:     ent.Caller.File,
			Line:     ent.Caller.Line,
		}
	}
	c.logger.LogRecord(record)

	// zap exits right after a fatal write
	if ent.Level == zapcore.FatalLevel {
		return c.logger.Close()
	}
	return nil
}

// Sync implements zapcore.Core, the consumer flushes after every record
func (c *ZapCore) Sync() error {
	return nil
}

// appendZapFields converts zap fields to alternating key/value pairs
func appendZapFields(kv []any, fields []zapcore.Field) []any {
	for _, f := range fields {
		if f.Type == zapcore.SkipType {
			continue
		}
		enc := zapcore.NewMapObjectEncoder()
		f.AddTo(enc)
		if v, ok := enc.Fields[f.Key]; ok {
			kv = append(kv, f.Key, v)
		}
	}
	return kv
}
