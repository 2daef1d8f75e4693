package ui

import (
	"io"
	"strings"

	"github.com/pterm/pterm"
)

// ParseLevel maps a config level name onto a pterm log level, defaulting to info
func ParseLevel(level string) pterm.LogLevel {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return pterm.LogLevelTrace
	case "debug":
		return pterm.LogLevelDebug
	case "warn", "warning":
		return pterm.LogLevelWarn
	case "error":
		return pterm.LogLevelError
	case "off", "disabled":
		return pterm.LogLevelDisabled
	default:
		return pterm.LogLevelInfo
	}
}

// NewLogger returns a structured logger writing to w.
// format "json" switches to one JSON object per line.
func NewLogger(level, format string, w io.Writer) *pterm.Logger {
	logger := pterm.DefaultLogger.
		WithLevel(ParseLevel(level)).
		WithWriter(w)

	if strings.EqualFold(format, "json") {
		logger = logger.WithFormatter(pterm.LogFormatterJSON)
	}
	return logger
}
