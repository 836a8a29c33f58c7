// Package logging configures the diagnostic log file of a report run
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// TimeFormat renders timestamps as 2024-04-03:14:05:09,123
const TimeFormat = "2006-01-02:15:04:05,000"

// Logger wraps the log file and the logger writing to it
type Logger struct {
	zerolog.Logger
	file *os.File
	path string
}

// NewFileLogger opens (and truncates) the log file for this run
func NewFileLogger(path string, level string) (*Logger, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	lvl, err := ParseLevel(level)
	if err != nil {
		file.Close()
		return nil, err
	}

	return &Logger{
		Logger: New(file, lvl),
		file:   file,
		path:   path,
	}, nil
}

// New builds a logger writing the fixed line format to w
func New(w io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(NewLineWriter(w)).
		Level(level).
		Hook(timestampHook{}).
		With().
		Caller().
		Logger()
}

// timestampHook stamps events with millisecond precision without touching
// the package-wide zerolog.TimeFieldFormat
type timestampHook struct{}

func (timestampHook) Run(e *zerolog.Event, _ zerolog.Level, _ string) {
	e.Str(zerolog.TimestampFieldName, time.Now().Format(TimeFormat))
}

// NewLineWriter formats events as
// "timestamp  LEVEL     [file.go                       :line]  message key=value"
func NewLineWriter(w io.Writer) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    true,
		TimeFormat: TimeFormat,
		PartsOrder: []string{
			zerolog.TimestampFieldName,
			zerolog.LevelFieldName,
			zerolog.CallerFieldName,
			zerolog.MessageFieldName,
		},
		FormatTimestamp: formatTimestamp,
		FormatLevel: func(i interface{}) string {
			level, _ := i.(string)
			return fmt.Sprintf(" %-8s", strings.ToUpper(level))
		},
		FormatCaller: formatCaller,
		FormatMessage: func(i interface{}) string {
			if i == nil {
				return ""
			}
			return fmt.Sprintf(" %s", i)
		},
	}
}

func formatTimestamp(i interface{}) string {
	ts, _ := i.(string)
	return ts
}

// formatCaller pads "file.go:line" the same way the console report has always been laid out
func formatCaller(i interface{}) string {
	caller, _ := i.(string)
	if caller == "" {
		return ""
	}

	file, line := caller, ""
	if idx := strings.LastIndex(caller, ":"); idx >= 0 {
		file, line = caller[:idx], caller[idx+1:]
	}
	return fmt.Sprintf(" [%-30s:%-4s] ", filepath.Base(file), line)
}

// ParseLevel maps the configured level name, defaulting to debug
func ParseLevel(level string) (zerolog.Level, error) {
	if level == "" {
		return zerolog.DebugLevel, nil
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return lvl, nil
}

// Path returns the log file location
func (l *Logger) Path() string {
	return l.path
}

// Named returns a child logger restricted to level, used for chatty collaborators
func (l *Logger) Named(component string, level zerolog.Level) zerolog.Logger {
	return l.Logger.Level(level).With().Str("component", component).Logger()
}

// Close flushes and closes the log file
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	if err := l.file.Sync(); err != nil {
		l.file.Close()
		return err
	}
	return l.file.Close()
}
