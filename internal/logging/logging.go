// Package logging builds the structured loggers used by the commands.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/kedusha/internal/config"
)

// New returns a logger writing to w. Level and format come from LOG_LEVEL
// (debug, info, warn, error) and LOG_FORMAT (text, logfmt, json).
func New(w io.Writer, prefix string) *log.Logger {
	level, err := log.ParseLevel(config.GetEnv("LOG_LEVEL", "info"))
	if err != nil {
		level = log.InfoLevel
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Prefix:          prefix,
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Formatter:       formatter(config.GetEnv("LOG_FORMAT", "text")),
	})
}

func formatter(name string) log.Formatter {
	switch strings.ToLower(name) {
	case "json":
		return log.JSONFormatter
	case "logfmt":
		return log.LogfmtFormatter
	default:
		return log.TextFormatter
	}
}

// Output opens LOG_FILE for appending when it is set, otherwise returns fallback.
// The returned close function is always non-nil.
func Output(fallback io.Writer) (io.Writer, func() error, error) {
	path := config.GetEnv("LOG_FILE", "")
	if path == "" {
		return fallback, func() error { return nil }, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fallback, func() error { return nil }, fmt.Errorf("open log file: %w", err)
	}
	return f, f.Close, nil
}

// Nop returns a logger that discards everything.
func Nop() *log.Logger {
	return log.New(io.Discard)
}
