package logging

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Logger provides operation-scoped structured logging for services
type Logger struct {
	entry *logrus.Entry
}

// NewLogger creates a logger with request context
func NewLogger(ctx context.Context) *Logger {
	rid := RequestID(ctx)
	if rid == "" {
		rid = "unknown"
	}
	return &Logger{entry: logrus.NewEntry(base).WithField("request_id", rid)}
}

func (l *Logger) op(operation string) *logrus.Entry {
	return l.entry.WithField("operation", operation)
}

// LogError logs an error with context
func (l *Logger) LogError(operation string, err error) {
	l.op(operation).WithError(err).Error("operation failed")
}

// LogErrorf logs a formatted error with context
func (l *Logger) LogErrorf(operation string, format string, args ...interface{}) {
	l.op(operation).Errorf(format, args...)
}

// LogInfof logs a formatted info message with context
func (l *Logger) LogInfof(operation string, format string, args ...interface{}) {
	l.op(operation).Infof(format, args...)
}

// LogWarnf logs a formatted warning with context
func (l *Logger) LogWarnf(operation string, format string, args ...interface{}) {
	l.op(operation).Warnf(format, args...)
}

// LogDebugf logs a formatted debug message with context
func (l *Logger) LogDebugf(operation string, format string, args ...interface{}) {
	l.op(operation).Debugf(format, args...)
}
