// Package logger provides the leveled diagnostic logging facility shared by
// every component of the client. It is a thin facade over zerolog so that
// callers configure level, enablement and a line prefix once and never touch
// the underlying logger directly.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Level is the minimum severity a call must carry to be emitted.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// ParseLevel maps a config string onto a Level, defaulting to info.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// DefaultLevel returns the level used when none is configured: debug in
// development, info everywhere else.
func DefaultLevel(env string) Level {
	if strings.EqualFold(env, "development") {
		return LevelDebug
	}
	return LevelInfo
}

// Options configures a Logger. Zero value means: info level, enabled, no prefix.
type Options struct {
	Level   Level
	Enabled bool
	Prefix  string
	Output  io.Writer // defaults to stderr
}

// Logger emits timestamped, prefixed diagnostic lines. A nil *Logger is safe
// to call and emits nothing.
type Logger struct {
	zl      zerolog.Logger
	enabled bool
	prefix  string
}

// New builds a Logger from the given options.
func New(opts Options) *Logger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	zl := zerolog.New(out).Level(zerologLevel(opts.Level)).With().Timestamp().Logger()
	return &Logger{zl: zl, enabled: opts.Enabled, prefix: opts.Prefix}
}

func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}

func zerologLevel(l Level) zerolog.Level {
	switch l {
	case LevelDebug:
		return zerolog.DebugLevel
	case LevelWarn:
		return zerolog.WarnLevel
	case LevelError:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func (l *Logger) emit(ev *zerolog.Event, msg string, fields map[string]any) {
	if len(fields) > 0 {
		ev = ev.Fields(fields)
	}
	if l.prefix != "" {
		msg = l.prefix + " " + msg
	}
	ev.Msg(msg)
}

// Debug logs at debug severity with an optional structured payload.
func (l *Logger) Debug(msg string, fields map[string]any) {
	if l == nil || !l.enabled {
		return
	}
	l.emit(l.zl.Debug(), msg, fields)
}

// Info logs at info severity with an optional structured payload.
func (l *Logger) Info(msg string, fields map[string]any) {
	if l == nil || !l.enabled {
		return
	}
	l.emit(l.zl.Info(), msg, fields)
}

// Warn logs at warn severity with an optional structured payload.
func (l *Logger) Warn(msg string, fields map[string]any) {
	if l == nil || !l.enabled {
		return
	}
	l.emit(l.zl.Warn(), msg, fields)
}

// Error logs at error severity with an optional structured payload.
func (l *Logger) Error(msg string, fields map[string]any) {
	if l == nil || !l.enabled {
		return
	}
	l.emit(l.zl.Error(), msg, fields)
}

// Group returns a child logger whose prefix is extended with name, for
// scoping related lines together.
func (l *Logger) Group(name string) *Logger {
	if l == nil {
		return nil
	}
	prefix := name
	if l.prefix != "" {
		prefix = l.prefix + "." + name
	}
	child := *l
	child.prefix = prefix
	return &child
}

// Timed logs the elapsed wall time for an operation. Call it, do the work,
// then invoke the returned func.
func (l *Logger) Timed(op string) func() {
	if l == nil || !l.enabled {
		return func() {}
	}
	start := time.Now()
	return func() {
		l.Debug(op, map[string]any{"elapsed": time.Since(start).String()})
	}
}
