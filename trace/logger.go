package trace

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Level is a log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelNone
)

// String returns the upper-case name of the level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	case LevelNone:
		return "NONE"
	default:
		return fmt.Sprintf("Level(%d)", int(l))
	}
}

// ParseLevel parses a level name, case-insensitively.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	case "none", "off":
		return LevelNone, nil
	}
	return LevelNone, errors.Errorf("unknown log level %q", s)
}

// Sink receives formatted log lines.
type Sink interface {
	Printf(format string, v ...interface{})
}

// Logger is a leveled logger. A nil *Logger discards everything, so callers
// never need to check before logging.
type Logger struct {
	level Level
	sink  Sink
}

// New creates a logger that forwards messages at or above level to sink.
func New(level Level, sink Sink) *Logger {
	if sink == nil {
		level = LevelNone
	}
	return &Logger{level: level, sink: sink}
}

// Discard returns a logger that drops every message.
func Discard() *Logger {
	return &Logger{level: LevelNone}
}

// Level returns the minimum level that is forwarded.
func (l *Logger) Level() Level {
	if l == nil {
		return LevelNone
	}
	return l.level
}

// Enabled reports whether messages at level are forwarded. Use it to guard
// expensive argument construction.
func (l *Logger) Enabled(level Level) bool {
	return l != nil && l.sink != nil && level < LevelNone && level >= l.level
}

// Debugf logs at debug level.
func (l *Logger) Debugf(format string, v ...interface{}) {
	l.log(LevelDebug, format, v...)
}

// Infof logs at info level.
func (l *Logger) Infof(format string, v ...interface{}) {
	l.log(LevelInfo, format, v...)
}

// Warnf logs at warn level.
func (l *Logger) Warnf(format string, v ...interface{}) {
	l.log(LevelWarn, format, v...)
}

// Errorf logs at error level.
func (l *Logger) Errorf(format string, v ...interface{}) {
	l.log(LevelError, format, v...)
}

func (l *Logger) log(level Level, format string, v ...interface{}) {
	if !l.Enabled(level) {
		return
	}
	l.sink.Printf("[%s] %s", level, fmt.Sprintf(format, v...))
}
