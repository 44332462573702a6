// Package logging provides structured JSON logging for the ROOTR
// scalar root-finding service, plus a zap bridge for packages that
// want a *zap.Logger.
package logging

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"time"
)

// Level is the severity of a log entry.
type Level int8

const (
	// DebugLevel logs are voluminous and usually disabled in production.
	DebugLevel Level = iota
	// InfoLevel is the default logging priority.
	InfoLevel
	// WarnLevel logs are more important than Info but don't need
	// individual human review.
	WarnLevel
	// ErrorLevel logs are high-priority failures.
	ErrorLevel
	// FatalLevel logs a message, then calls os.Exit(1).
	FatalLevel
)

// String returns the level tag used in log output.
func (l Level) String() string {
	switch l {
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	case FatalLevel:
		return "FATAL"
	default:
		return "INFO"
	}
}

// Fields is the key-value payload attached to a log entry.
type Fields map[string]interface{}

// Logger is an active structured logging object. The zero value is not
// usable; construct one with New or NewLogger.
type Logger struct {
	level  Level
	out    io.Writer
	fields Fields
}

// New creates a Logger writing entries at or above level to out.
func New(level Level, out io.Writer) *Logger {
	return &Logger{level: level, out: out, fields: Fields{}}
}

// WithFields returns a child Logger that includes fields in every entry.
func (l *Logger) WithFields(fields Fields) *Logger {
	merged := make(Fields, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return &Logger{level: l.level, out: l.out, fields: merged}
}

// WithField returns a child Logger with a single extra field.
func (l *Logger) WithField(key string, value interface{}) *Logger {
	return l.WithFields(Fields{key: value})
}

// WithError returns a child Logger with the error field set.
func (l *Logger) WithError(err error) *Logger {
	return l.WithField("error", err.Error())
}

func (l *Logger) enabled(level Level) bool {
	return level >= l.level
}

func (l *Logger) log(level Level, msg string, fields Fields) {
	if !l.enabled(level) {
		return
	}

	entry := make(Fields, len(l.fields)+len(fields)+4)
	for k, v := range l.fields {
		entry[k] = v
	}
	for k, v := range fields {
		entry[k] = v
	}
	entry["timestamp"] = time.Now().UTC().Format(time.RFC3339Nano)
	entry["level"] = level.String()
	entry["message"] = msg
	entry["caller"] = caller(3)

	data, err := json.Marshal(entry)
	if err != nil {
		// Fall back to a plain line if a field refuses to marshal.
		fmt.Fprintf(l.out, "%s [%s] %s\n", time.Now().Format(time.RFC3339), level, msg)
		return
	}
	data = append(data, '\n')
	_, _ = l.out.Write(data)

	if level == FatalLevel {
		os.Exit(1)
	}
}

// caller reports the file:line of the logging call site, trimmed to
// the last two path elements.
func caller(skip int) string {
	_, file, line, ok := runtime.Caller(skip)
	if !ok {
		return "???:0"
	}
	parts := strings.Split(file, "/")
	if len(parts) > 2 {
		file = strings.Join(parts[len(parts)-2:], "/")
	}
	return fmt.Sprintf("%s:%d", file, line)
}

// Debug logs a message at DebugLevel.
func (l *Logger) Debug(msg string, fields ...Fields) { l.log(DebugLevel, msg, first(fields)) }

// Info logs a message at InfoLevel.
func (l *Logger) Info(msg string, fields ...Fields) { l.log(InfoLevel, msg, first(fields)) }

// Warn logs a message at WarnLevel.
func (l *Logger) Warn(msg string, fields ...Fields) { l.log(WarnLevel, msg, first(fields)) }

// Error logs a message at ErrorLevel.
func (l *Logger) Error(msg string, fields ...Fields) { l.log(ErrorLevel, msg, first(fields)) }

// Fatal logs a message at FatalLevel, then calls os.Exit(1).
func (l *Logger) Fatal(msg string, fields ...Fields) { l.log(FatalLevel, msg, first(fields)) }

func first(fields []Fields) Fields {
	if len(fields) > 0 {
		return fields[0]
	}
	return nil
}

type ctxKey struct{}

// NewContext returns a context carrying logger.
func NewContext(ctx context.Context, logger *Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// FromContext returns the Logger stored in ctx, or a default stderr
// logger if none is present.
func FromContext(ctx context.Context) *Logger {
	if logger, ok := ctx.Value(ctxKey{}).(*Logger); ok {
		return logger
	}
	return New(InfoLevel, os.Stderr)
}
