package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// zapCore forwards zap log entries to a Logger, so service code can
// use the zap API while everything funnels through one output.
type zapCore struct {
	logger *Logger
}

// NewZapLogger returns a *zap.Logger backed by logger.
func NewZapLogger(logger *Logger) *zap.Logger {
	return zap.New(&zapCore{logger: logger})
}

func fromZapLevel(level zapcore.Level) Level {
	switch level {
	case zapcore.DebugLevel:
		return DebugLevel
	case zapcore.InfoLevel:
		return InfoLevel
	case zapcore.WarnLevel:
		return WarnLevel
	default:
		// DPanic, Panic and Fatal all map to Error; fatal handling
		// stays with the zap runtime.
		return ErrorLevel
	}
}

func fieldsOf(zfields []zapcore.Field) Fields {
	if len(zfields) == 0 {
		return nil
	}
	enc := zapcore.NewMapObjectEncoder()
	for _, f := range zfields {
		f.AddTo(enc)
	}
	return Fields(enc.Fields)
}

// Enabled implements zapcore.Core.
func (c *zapCore) Enabled(level zapcore.Level) bool {
	return c.logger.enabled(fromZapLevel(level))
}

// With implements zapcore.Core.
func (c *zapCore) With(zfields []zapcore.Field) zapcore.Core {
	return &zapCore{logger: c.logger.WithFields(fieldsOf(zfields))}
}

// Check implements zapcore.Core.
func (c *zapCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

// Write implements zapcore.Core.
func (c *zapCore) Write(ent zapcore.Entry, zfields []zapcore.Field) error {
	c.logger.log(fromZapLevel(ent.Level), ent.Message, fieldsOf(zfields))
	return nil
}

// Sync implements zapcore.Core.
func (c *zapCore) Sync() error { return nil }
