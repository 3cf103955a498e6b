package config

import (
	"fmt"
	"log/slog"
	"strings"
)

// Log output formats.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// ParseLogLevel reads a level name such as "debug" or "WARN".
func ParseLogLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("log_level must be one of debug, info, warn, error, got %q", s)
	}
	return level, nil
}

// CheckLogFormat reports an error for anything but text or json.
func CheckLogFormat(s string) error {
	switch s {
	case LogFormatText, LogFormatJSON:
		return nil
	}
	return fmt.Errorf("log_format must be text or json, got %q", s)
}
