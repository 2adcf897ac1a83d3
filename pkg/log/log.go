// Package log provides slog handler construction for the CLI.
package log

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	charmlog "github.com/charmbracelet/log"
)

const (
	TextFormat   = "text"
	LogfmtFormat = "logfmt"
	JSONFormat   = "json"
)

var (
	// ErrInvalidLogLevel indicates an unrecognized log level string.
	ErrInvalidLogLevel = errors.New("invalid log level")

	// ErrInvalidLogFormat indicates an unrecognized log format string.
	ErrInvalidLogFormat = errors.New("invalid log format")
)

// CreateHandlerWithStrings creates a [slog.Handler] writing to w, from string
// representations of the level and format.
func CreateHandlerWithStrings(w io.Writer, logLevel, logFormat string) (slog.Handler, error) {
	level, err := charmlog.ParseLevel(logLevel)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidLogLevel, err)
	}

	opts := charmlog.Options{
		Level:           level,
		ReportTimestamp: true,
	}

	switch strings.ToLower(logFormat) {
	case TextFormat, "":
		opts.Formatter = charmlog.TextFormatter
	case LogfmtFormat:
		opts.Formatter = charmlog.LogfmtFormatter
	case JSONFormat:
		opts.Formatter = charmlog.JSONFormatter
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidLogFormat, logFormat)
	}

	return charmlog.NewWithOptions(w, opts), nil
}
