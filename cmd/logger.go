package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"
)

// SetupLogger installs the default structured logger writing to w.
//
// Only warnings are logged unless verbose is set. format "json" selects the
// JSON handler, anything else the text handler.
func SetupLogger(w io.Writer, verbose bool, format string) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:     slog.LevelWarn,
		AddSource: verbose,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				if t, ok := a.Value.Any().(time.Time); ok {
					a.Value = slog.StringValue(t.Format(time.RFC3339))
				}
			}
			// keep only filename:line
			if a.Key == slog.SourceKey {
				if src, ok := a.Value.Any().(*slog.Source); ok {
					file := src.File
					if idx := strings.LastIndex(file, "/"); idx >= 0 {
						file = file[idx+1:]
					}
					a.Value = slog.StringValue(fmt.Sprintf("%s:%d", file, src.Line))
				}
			}
			return a
		},
	}
	if verbose {
		opts.Level = slog.LevelDebug
	}

	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}
