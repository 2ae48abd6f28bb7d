// Package logging builds the leveled loggers used across the application.
package logging

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

// Options holds configuration for a logger.
type Options struct {
	Level           log.Level
	Formatter       log.Formatter
	ReportTimestamp bool
	Prefix          string
	Output          io.Writer
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Level:           log.InfoLevel,
		Formatter:       log.TextFormatter,
		ReportTimestamp: true,
		Prefix:          "tl",
		Output:          os.Stderr,
	}
}

// New creates a logger with the given options.
func New(opts Options) *log.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	return log.NewWithOptions(out, log.Options{
		Level:           opts.Level,
		Formatter:       opts.Formatter,
		ReportTimestamp: opts.ReportTimestamp,
		Prefix:          opts.Prefix,
	})
}

// NewFromSettings creates a logger from the application's verbosity and
// format settings. TL_DEBUG forces debug level as well.
func NewFromSettings(out io.Writer, verbose bool, format string) *log.Logger {
	opts := DefaultOptions()
	opts.Output = out
	opts.Formatter = ParseFormatter(format)
	if verbose || DebugEnabled() {
		opts.Level = log.DebugLevel
	}
	return New(opts)
}

// ParseFormatter maps a format name to a formatter, defaulting to text.
func ParseFormatter(format string) log.Formatter {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		return log.JSONFormatter
	case "logfmt":
		return log.LogfmtFormatter
	default:
		return log.TextFormatter
	}
}

// Discard returns a logger that drops everything. Used by tests and by
// callers that have nowhere to log.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}

var (
	debugOnce sync.Once
	debug     *log.Logger
)

func debugLogger() *log.Logger {
	debugOnce.Do(func() {
		opts := DefaultOptions()
		opts.Level = log.DebugLevel
		opts.Prefix = "debug"
		debug = New(opts)
	})
	return debug
}
