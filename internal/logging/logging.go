// Package logging wraps github.com/sirupsen/logrus behind an interface so
// the planner package and the command line depend on a small contract
// rather than concrete logrus types, grounded on the teacher's own
// internal/logging package.
package logging

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// Level mirrors logrus's level ordering without exposing the logrus type
// at call sites that only need to compare levels.
type Level uint32

const (
	Error Level = iota
	Warn
	Info
	Debug
)

// GetLevel parses a level name from configuration, defaulting to Info on
// an empty string.
func GetLevel(level string) (Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return Debug, nil
	case "", "info":
		return Info, nil
	case "warn":
		return Warn, nil
	case "error":
		return Error, nil
	default:
		return Info, fmt.Errorf("invalid log level: %v", level)
	}
}

func (l Level) logrusLevel() logrus.Level {
	switch l {
	case Debug:
		return logrus.DebugLevel
	case Warn:
		return logrus.WarnLevel
	case Error:
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

// GetFormatter selects between a human-readable formatter and
// logrus's own JSON formatter.
func GetFormatter(format, timestampFormat string) logrus.Formatter {
	switch format {
	case "text":
		return &prettyFormatter{}
	case "json-pretty":
		return &logrus.JSONFormatter{PrettyPrint: true, TimestampFormat: timestampFormat}
	default:
		return &logrus.JSONFormatter{TimestampFormat: timestampFormat}
	}
}

// Logger is the contract the core packages log through. A nil Logger is a
// valid, no-op value when passed to the nil-check helpers (Debugf et al.
// below), which is why core packages guard every call site with them; the
// methods of the concrete type returned by New do not tolerate a nil
// receiver.
type Logger interface {
	Debug(fields map[string]any, format string, args ...any)
	Info(fields map[string]any, format string, args ...any)
	Warn(fields map[string]any, format string, args ...any)
	GetLevel() Level
}

// standardLogger is the default Logger, backed by one *logrus.Logger.
type standardLogger struct {
	logger *logrus.Logger
	level  Level
}

// New returns a Logger at the given level and format ("json", "json-pretty",
// or "text").
func New(level Level, format string) Logger {
	l := logrus.New()
	l.SetLevel(level.logrusLevel())
	l.SetFormatter(GetFormatter(format, ""))
	return &standardLogger{logger: l, level: level}
}

func (s *standardLogger) Debug(fields map[string]any, format string, args ...any) {
	s.logger.WithFields(logrus.Fields(fields)).Debugf(format, args...)
}

func (s *standardLogger) Info(fields map[string]any, format string, args ...any) {
	s.logger.WithFields(logrus.Fields(fields)).Infof(format, args...)
}

func (s *standardLogger) Warn(fields map[string]any, format string, args ...any) {
	s.logger.WithFields(logrus.Fields(fields)).Warnf(format, args...)
}

func (s *standardLogger) GetLevel() Level { return s.level }

// Debugf, Infof, and Warnf are nil-safe call sites for packages that hold
// a Logger field that defaults to nil in library use (spec.md treats
// tracing/logging sinks as an external collaborator; a planner embedded
// as a library should not be forced to configure one).
func Debugf(l Logger, fields map[string]any, format string, args ...any) {
	if l != nil {
		l.Debug(fields, format, args...)
	}
}

func Infof(l Logger, fields map[string]any, format string, args ...any) {
	if l != nil {
		l.Info(fields, format, args...)
	}
}

func Warnf(l Logger, fields map[string]any, format string, args ...any) {
	if l != nil {
		l.Warn(fields, format, args...)
	}
}

// prettyFormatter is a simpler, more readable alternative to
// logrus.TextFormatter, adapted from the teacher's internal/logging
// package.
type prettyFormatter struct{}

func (p *prettyFormatter) Format(e *logrus.Entry) ([]byte, error) {
	b := new(bytes.Buffer)
	fmt.Fprintf(b, "[%s] %s\n", strings.ToUpper(e.Level.String()), e.Message)
	for k, v := range e.Data {
		stringVal, ok := v.(string)
		if !ok {
			jsonVal, err := json.Marshal(v)
			if err != nil {
				return nil, err
			}
			stringVal = string(jsonVal)
		}
		fmt.Fprintf(b, "  %s = %s\n", k, stringVal)
	}
	return b.Bytes(), nil
}
