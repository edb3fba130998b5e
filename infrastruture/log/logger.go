// Package logger provides the colour-tagged component loggers used across the service.
package logger

import (
	"errors"
	"io"
	"log"
)

const colorReset = "\033[0m"

// Logger writes lines of the form "[PREFIX] [LEVEL] message", with the
// prefix in the component's colour.
type Logger struct {
	prefix string
	color  string
	out    *log.Logger
}

// New creates a Logger for one component.
func New(prefix, color string, w io.Writer) (*Logger, error) {
	if prefix == "" {
		return nil, errors.New("logger prefix is required")
	}
	if w == nil {
		return nil, errors.New("logger writer is required")
	}
	return &Logger{
		prefix: prefix,
		color:  color,
		out:    log.New(w, "", log.LstdFlags),
	}, nil
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.write("INFO", msg)
}

// Warning logs a recoverable problem.
func (l *Logger) Warning(msg string) {
	l.write("WARNING", msg)
}

// Error logs a failure.
func (l *Logger) Error(msg string) {
	l.write("ERROR", msg)
}

func (l *Logger) write(level, msg string) {
	if l.color == "" {
		l.out.Printf("[%s] [%s] %s", l.prefix, level, msg)
		return
	}
	l.out.Printf("%s[%s]%s [%s] %s", l.color, l.prefix, colorReset, level, msg)
}
