package app

import (
	"io"
	"log/slog"

	"github.com/vk/idfgo/internal/config"
)

// newLogger builds an isolated logger writing text or JSON to outW. Levels
// that do not parse fall back to info; configuration validation reports
// them before a run.
func newLogger(level, format string, outW io.Writer) *slog.Logger {
	lvl, err := config.ParseLogLevel(level)
	if err != nil {
		lvl = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if format == config.LogFormatJSON {
		return slog.New(slog.NewJSONHandler(outW, opts))
	}
	return slog.New(slog.NewTextHandler(outW, opts))
}
