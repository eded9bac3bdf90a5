// Package logger contains the structured logger used across simbatch.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Logger handles structured logging.
type Logger struct {
	logrus *logrus.Logger
	entry  *logrus.Entry
	ns     string
}

// NewLogger returns a new Logger instance configured with the given config.
func NewLogger(ns string, conf LoggerConfig) *Logger {
	l := New(ns)
	l.Configure(conf)
	return l
}

// New returns a new Logger instance with the given namespace.
// Additional arguments are key/value pairs attached to every message.
func New(ns string, args ...interface{}) *Logger {
	log := logrus.New()
	f := fields(args...)
	f["ns"] = ns
	return &Logger{
		logrus: log,
		entry:  log.WithFields(f),
		ns:     ns,
	}
}

// Configure configures the level, formatter and output of the logger.
func (l *Logger) Configure(conf LoggerConfig) {
	if l == nil {
		return
	}
	l.SetLevel(conf.Level)

	if conf.TextFormat == nil {
		conf.TextFormat = &TextFormatConfig{}
	}
	if conf.JSONFormat == nil {
		conf.JSONFormat = &JSONFormatConfig{}
	}

	switch strings.ToLower(conf.Formatter) {
	case "json":
		l.SetFormatter(&jsonFormatter{conf: conf.JSONFormat})

	// Default to text
	default:
		l.SetFormatter(&textFormatter{
			*conf.TextFormat,
			jsonFormatter{conf: conf.JSONFormat},
		})
	}

	if conf.OutputFile != "" {
		logFile, err := os.OpenFile(
			conf.OutputFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666,
		)
		if err != nil {
			l.Error("Can't open log output", "output", conf.OutputFile, "error", err)
		} else {
			l.SetOutput(logFile)
		}
	}
}

// SetLevel sets the level of logging.
func (l *Logger) SetLevel(lvl string) {
	if l == nil {
		return
	}
	switch strings.ToLower(lvl) {
	case "debug":
		l.logrus.SetLevel(logrus.DebugLevel)
	case "warn", "warning":
		l.logrus.SetLevel(logrus.WarnLevel)
	case "error":
		l.logrus.SetLevel(logrus.ErrorLevel)
	default:
		l.logrus.SetLevel(logrus.InfoLevel)
	}
}

// SetFormatter sets the formatter used by the logger.
func (l *Logger) SetFormatter(f logrus.Formatter) {
	if l == nil {
		return
	}
	l.logrus.Formatter = f
}

// SetOutput sets the output writer of the logger.
func (l *Logger) SetOutput(w io.Writer) {
	if l == nil {
		return
	}
	l.logrus.Out = w
}

// Discard configures the logger to discard all logs.
func (l *Logger) Discard() {
	l.SetOutput(io.Discard)
}

// Debug logs a debug message.
//
// After the first argument, arguments are key-value pairs which are written as structured logs.
//
//	log.Debug("Some message here", "key1", value1, "key2", value2)
func (l *Logger) Debug(msg string, args ...interface{}) {
	if l == nil {
		return
	}
	defer recoverLogErr()
	l.entry.WithFields(fields(args...)).Debug(msg)
}

// Info logs an info message.
func (l *Logger) Info(msg string, args ...interface{}) {
	if l == nil {
		return
	}
	defer recoverLogErr()
	l.entry.WithFields(fields(args...)).Info(msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string, args ...interface{}) {
	if l == nil {
		return
	}
	defer recoverLogErr()
	l.entry.WithFields(fields(args...)).Warn(msg)
}

// Error logs an error message.
//
// Error has a two-argument version that can be used as a shortcut.
//
//	err := writeScript()
//	log.Error("Couldn't write script", err)
func (l *Logger) Error(msg string, args ...interface{}) {
	if l == nil {
		return
	}
	defer recoverLogErr()
	l.entry.WithFields(fields(args...)).Error(msg)
}

// WithFields returns a new Logger instance with the given fields added to all log messages.
func (l *Logger) WithFields(args ...interface{}) *Logger {
	if l == nil {
		return nil
	}
	defer recoverLogErr()
	return &Logger{
		logrus: l.logrus,
		entry:  l.entry.WithFields(fields(args...)),
		ns:     l.ns,
	}
}

// NewSubLogger returns a child logger sharing the parent's output and level,
// with the namespace extended by "ns".
func (l *Logger) NewSubLogger(ns string, args ...interface{}) *Logger {
	if l == nil {
		return nil
	}
	sub := l.ns + "/" + ns
	f := fields(args...)
	f["ns"] = sub
	return &Logger{
		logrus: l.logrus,
		entry:  l.entry.WithFields(f),
		ns:     sub,
	}
}

// recoverLogErr is used to recover from any panics during logging.
// Logging should never crash a program.
func recoverLogErr() {
	if r := recover(); r != nil {
		fmt.Println("Recovered from logging panic", r)
	}
}

// PrintSimpleError prints out an error message with a red "ERROR:" prefix.
func PrintSimpleError(err error) {
	fmt.Fprintf(os.Stderr, "\x1b[%dm%s\x1b[0m %s\n", red, "ERROR:", err.Error())
}

const red = 31

func fields(args ...interface{}) logrus.Fields {
	f := make(logrus.Fields, len(args)/2)

	if len(args) == 1 {
		if err, ok := args[0].(error); ok {
			f["error"] = err.Error()
		} else {
			f["unknown"] = args[0]
		}
		return f
	}

	if len(args)%2 != 0 {
		f["unknown"] = args[len(args)-1]
		args = args[:len(args)-1]
	}

	for i := 0; i < len(args); i += 2 {
		k := fmt.Sprintf("%v", args[i])
		v := args[i+1]
		if err, ok := v.(error); ok {
			v = err.Error()
		}
		f[k] = v
	}
	return f
}
