// Package logging wraps logrus with the structured fields the connection
// handler and demo dispatcher attach to every event: a per-connection
// correlation ID and the peer's remote address.
package logging

import (
	"io"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/corvushealth/hl7gateway/mllp"
)

// Logger is the structured logger used throughout the gateway. It satisfies
// mllp.Logger, so a Conn logger can be passed straight to mllp.WithLogger.
type Logger struct {
	entry *logrus.Entry
}

// New builds a Logger at the given level, writing JSON lines to w.
// An unrecognized level falls back to logrus.InfoLevel.
func New(level string, w io.Writer) *Logger {
	base := logrus.New()
	base.SetOutput(w)
	base.SetFormatter(&logrus.JSONFormatter{TimestampFormat: "2006-01-02T15:04:05.000Z07:00"})

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	base.SetLevel(parsed)

	return &Logger{entry: logrus.NewEntry(base)}
}

// WithField returns a Logger carrying an additional structured field.
func (l *Logger) WithField(key string, value interface{}) *Logger {
	return &Logger{entry: l.entry.WithField(key, value)}
}

// Conn returns a Logger scoped to one connection: a freshly minted
// correlation ID plus the peer's address. Satisfies mllp.ConnScoper, so the
// server calls this itself on accept instead of logging the bare address.
func (l *Logger) Conn(remoteAddr string) mllp.Logger {
	return &Logger{entry: l.entry.WithFields(logrus.Fields{
		"conn_id":     uuid.NewString(),
		"remote_addr": remoteAddr,
	})}
}

var _ mllp.ConnScoper = (*Logger)(nil)

// Info logs at INFO level: connection lifecycle and successful ACKs.
func (l *Logger) Info(args ...interface{}) { l.entry.Info(args...) }

// Warn logs at WARN level: non-UTF-8 payloads, recoverable parse/handler errors.
func (l *Logger) Warn(args ...interface{}) { l.entry.Warn(args...) }

// Error logs at ERROR level: invalid frames and I/O termination.
func (l *Logger) Error(args ...interface{}) { l.entry.Error(args...) }
