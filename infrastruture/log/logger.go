// Package logger provides named, colored line loggers.
package logger

import (
	"errors"
	"io"
	"log"
	"strings"

	"github.com/beka-birhanu/vinom-pathfinder/config"
)

// Logger writes "[NAME] [LEVEL] message" lines, coloring the name tag.
type Logger struct {
	out *log.Logger
	tag string
}

// New creates a Logger whose name tag is printed in the given ANSI color.
func New(name, color string, w io.Writer) (*Logger, error) {
	if w == nil {
		return nil, errors.New("logger: nil writer")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("logger: empty name")
	}

	return &Logger{
		out: log.New(w, "", log.LstdFlags),
		tag: color + "[" + strings.ToUpper(name) + "]" + config.ColorReset,
	}, nil
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.out.Printf("%s %s[INFO]%s %s", l.tag, config.LogInfoColor, config.LogColorReset, msg)
}

// Warning logs a recoverable problem.
func (l *Logger) Warning(msg string) {
	l.out.Printf("%s %s[WARNING]%s %s", l.tag, config.LogWarningColor, config.LogColorReset, msg)
}

// Error logs a failure.
func (l *Logger) Error(msg string) {
	l.out.Printf("%s %s[ERROR]%s %s", l.tag, config.LogErrorColor, config.LogColorReset, msg)
}

// Discard returns a Logger that drops everything.
func Discard() *Logger {
	return &Logger{out: log.New(io.Discard, "", 0)}
}
