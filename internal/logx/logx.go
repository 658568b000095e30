// Package logx is a small leveled logger for developer diagnostics. Operator
// facing messages go to the on-screen status log instead.
package logx

import (
	"io"
	"log"
	"strings"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelNone
)

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR", "NONE"}

func (l Level) String() string {
	if l < 0 || int(l) >= len(levelNames) {
		return "UNKNOWN"
	}
	return levelNames[l]
}

// ParseLevel maps a case-insensitive name to a level. Unknown names yield
// LevelInfo.
func ParseLevel(s string) Level {
	s = strings.ToUpper(strings.TrimSpace(s))
	for i, n := range levelNames {
		if n == s {
			return Level(i)
		}
	}
	if s == "WARNING" {
		return LevelWarn
	}
	return LevelInfo
}

// Logger writes "LEVEL: message" lines at or above its level.
type Logger struct {
	logger *log.Logger
	level  Level
}

// New returns a logger writing to out with a timestamp prefix.
func New(out io.Writer, level Level) *Logger {
	return &Logger{
		logger: log.New(out, "", log.LstdFlags|log.Lmicroseconds),
		level:  level,
	}
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return New(io.Discard, LevelNone)
}

func (l *Logger) printf(lv Level, format string, v ...any) {
	if l == nil || lv < l.level {
		return
	}
	l.logger.Printf(lv.String()+": "+format, v...)
}

func (l *Logger) Debugf(format string, v ...any) { l.printf(LevelDebug, format, v...) }
func (l *Logger) Infof(format string, v ...any)  { l.printf(LevelInfo, format, v...) }
func (l *Logger) Warnf(format string, v ...any)  { l.printf(LevelWarn, format, v...) }
func (l *Logger) Errorf(format string, v ...any) { l.printf(LevelError, format, v...) }

func (l *Logger) SetLevel(level Level) { l.level = level }

func (l *Logger) Level() Level { return l.level }

// Writer exposes the underlying destination, e.g. for HTTP access logs.
func (l *Logger) Writer() io.Writer { return l.logger.Writer() }
