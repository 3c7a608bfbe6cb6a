// Package logger wraps zerolog behind a small interface so callers never import zerolog directly.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Interface -.
type Interface interface {
	Debug(message interface{}, args ...interface{})
	Info(message string, args ...interface{})
	Warn(message string, args ...interface{})
	Error(message interface{}, args ...interface{})
	Fatal(message interface{}, args ...interface{})
	With(key, value string) Interface
}

// Logger -.
type Logger struct {
	logger *zerolog.Logger
}

var _ Interface = (*Logger)(nil)

// New -.
func New(level string) *Logger {
	return NewWithWriter(level, os.Stdout)
}

// NewWithWriter builds a logger writing JSON lines to w.
func NewWithWriter(level string, w io.Writer) *Logger {
	var l zerolog.Level

	switch strings.ToLower(level) {
	case "error":
		l = zerolog.ErrorLevel
	case "warn":
		l = zerolog.WarnLevel
	case "info":
		l = zerolog.InfoLevel
	case "debug":
		l = zerolog.DebugLevel
	default:
		l = zerolog.InfoLevel
	}

	logger := zerolog.New(w).Level(l).With().Timestamp().Logger()

	return &Logger{logger: &logger}
}

// Nop discards everything. Used by tests and the one-shot CLI.
func Nop() *Logger {
	logger := zerolog.Nop()
	return &Logger{logger: &logger}
}

// With returns a child logger carrying key=value on every line.
func (l *Logger) With(key, value string) Interface {
	child := l.logger.With().Str(key, value).Logger()
	return &Logger{logger: &child}
}

// Debug -.
func (l *Logger) Debug(message interface{}, args ...interface{}) {
	l.msg(zerolog.DebugLevel, message, args...)
}

// Info -.
func (l *Logger) Info(message string, args ...interface{}) {
	l.log(l.logger.Info(), message, args...)
}

// Warn -.
func (l *Logger) Warn(message string, args ...interface{}) {
	l.log(l.logger.Warn(), message, args...)
}

// Error -.
func (l *Logger) Error(message interface{}, args ...interface{}) {
	l.msg(zerolog.ErrorLevel, message, args...)
}

// Fatal -.
func (l *Logger) Fatal(message interface{}, args ...interface{}) {
	l.msg(zerolog.FatalLevel, message, args...)

	os.Exit(1)
}

func (l *Logger) log(e *zerolog.Event, message string, args ...interface{}) {
	if len(args) == 0 {
		e.Msg(message)
	} else {
		e.Msgf(message, args...)
	}
}

func (l *Logger) msg(level zerolog.Level, message interface{}, args ...interface{}) {
	e := l.logger.WithLevel(level)

	switch msg := message.(type) {
	case error:
		// Error(err, "where - %s", x): the error goes into its own field.
		e = e.Err(msg)
		if len(args) > 0 {
			if format, ok := args[0].(string); ok {
				l.log(e, format, args[1:]...)
				return
			}
		}
		e.Msg("")
	case string:
		l.log(e, msg, args...)
	default:
		l.log(e, fmt.Sprintf("%s message %v has unknown type %v", level, message, msg), args...)
	}
}
