package logger

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Logger interface for structured logging
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
}

// Field represents a structured log field
type Field struct {
	Key   string
	Value interface{}
}

// Zerolog writes structured entries through a zerolog.Logger
type Zerolog struct {
	zl zerolog.Logger
}

// New creates a Zerolog logger writing JSON lines to w at the given level.
// Unknown levels fall back to info.
func New(w io.Writer, level string) *Zerolog {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	return &Zerolog{
		zl: zerolog.New(w).Level(lvl).With().Timestamp().Logger(),
	}
}

// NewConsole creates a human readable logger on stdout, used by the binaries
func NewConsole(level string) *Zerolog {
	l := New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "2006-01-02 15:04:05.000"}, level)
	return l
}

func (l *Zerolog) Debug(msg string, fields ...Field) {
	l.log(l.zl.Debug(), msg, fields)
}

func (l *Zerolog) Info(msg string, fields ...Field) {
	l.log(l.zl.Info(), msg, fields)
}

func (l *Zerolog) Warn(msg string, fields ...Field) {
	l.log(l.zl.Warn(), msg, fields)
}

func (l *Zerolog) Error(msg string, fields ...Field) {
	l.log(l.zl.Error(), msg, fields)
}

func (l *Zerolog) log(e *zerolog.Event, msg string, fields []Field) {
	// nil when the level is disabled
	if e == nil {
		return
	}

	for _, f := range fields {
		switch v := sanitizeValue(f.Value).(type) {
		case error:
			e = e.AnErr(f.Key, v)
		default:
			e = e.Interface(f.Key, v)
		}
	}
	e.Msg(msg)
}

// sanitizeValue keeps raw request text from flooding the log
func sanitizeValue(v interface{}) interface{} {
	if s, ok := v.(string); ok {
		if len(s) > 100 {
			return s[:100] + "...[truncated]"
		}
	}
	return v
}

// NullLogger discards all logs (for testing)
type NullLogger struct{}

func (n NullLogger) Debug(msg string, fields ...Field) {}
func (n NullLogger) Info(msg string, fields ...Field)  {}
func (n NullLogger) Warn(msg string, fields ...Field)  {}
func (n NullLogger) Error(msg string, fields ...Field) {}
