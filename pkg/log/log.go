// Package log is the logrus logger shared by the migration service, the
// database layer and the CLI. A run's logger travels in the context.
package log

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

var (
	_ StdLogger = &Logger{}
	_ StdLogger = &logrus.Entry{}

	stdLogger = NewLogger(os.Stderr)
)

// StdLogger is satisfied by both *Logger and the *logrus.Entry values kept in
// a context.
type StdLogger interface {
	Debug(args ...interface{})
	Info(args ...interface{})
	Warn(args ...interface{})
	Error(args ...interface{})
	Fatal(args ...interface{})

	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Fatalf(format string, args ...interface{})

	WithFields(f Fields) *logrus.Entry
	WithError(err error) *logrus.Entry
}

type Fields = logrus.Fields

type Level int32

const (
	FatalLevel Level = iota
	ErrorLevel
	WarnLevel
	InfoLevel
	// DebugLevel also logs every rendered statement.
	DebugLevel
)

var logrusLevels = map[Level]logrus.Level{
	FatalLevel: logrus.FatalLevel,
	ErrorLevel: logrus.ErrorLevel,
	WarnLevel:  logrus.WarnLevel,
	InfoLevel:  logrus.InfoLevel,
	DebugLevel: logrus.DebugLevel,
}

// ParseLevel maps a configured level name, as accepted by
// HYPERTABLE_LOG_LEVEL, to a Level.
func ParseLevel(lvl string) (Level, error) {
	switch strings.ToLower(lvl) {
	case "fatal":
		return FatalLevel, nil
	case "error":
		return ErrorLevel, nil
	case "warn", "warning":
		return WarnLevel, nil
	case "info":
		return InfoLevel, nil
	case "debug":
		return DebugLevel, nil
	}

	return 0, fmt.Errorf("not a valid Level: %q", lvl)
}

// Logger writes entries to a single output at a configurable level.
type Logger struct {
	*logrus.Entry
}

// NewLogger returns a JSON lines Logger at InfoLevel.
func NewLogger(out io.Writer) *Logger {
	l := logrus.New()
	l.SetOutput(out)
	l.SetFormatter(&logrus.JSONFormatter{TimestampFormat: "2006-01-02 15:04:05"})

	return &Logger{Entry: logrus.NewEntry(l)}
}

// NewTextLogger returns a Logger for interactive CLI use.
func NewTextLogger(out io.Writer) *Logger {
	l := NewLogger(out)
	l.Logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	return l
}

// SetLevel panics on a Level that ParseLevel cannot return.
func (l *Logger) SetLevel(v Level) {
	lvl, ok := logrusLevels[v]
	if !ok {
		panic(fmt.Sprintf("not a valid log Level: %d", v))
	}

	l.Logger.SetLevel(lvl)
}

type contextKey string

const loggerContextKey contextKey = "log_entry"

// FromContext returns the entry stored by NewContext, or the default logger.
func FromContext(ctx context.Context) StdLogger {
	if e, ok := ctx.Value(loggerContextKey).(*logrus.Entry); ok {
		return e
	}

	return stdLogger.WithFields(Fields{})
}

// NewContext stores lo, tagged with fields, in ctx.
func NewContext(ctx context.Context, lo StdLogger, fields Fields) context.Context {
	return context.WithValue(ctx, loggerContextKey, lo.WithFields(fields))
}

func Fatal(args ...interface{}) { stdLogger.Fatal(args...) }

func WithError(err error) *logrus.Entry { return stdLogger.WithError(err) }
