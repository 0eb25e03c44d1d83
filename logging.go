package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// setupLog installs the default slog logger. The shell owns the terminal, so
// records go to cfg.LogFile or nowhere. The returned func closes the file.
func setupLog(cfg Config) (func() error, error) {
	lvl := slog.LevelInfo
	if err := lvl.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return nil, fmt.Errorf("unknown log level %q, choices are [DEBUG, INFO, WARN, ERROR]", cfg.LogLevel)
	}

	var w io.Writer = io.Discard
	closer := func() error { return nil }
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		w = f
		closer = f.Close
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: lvl,
	})))
	slog.Debug("logger is set", "level", lvl.String())
	return closer, nil
}
