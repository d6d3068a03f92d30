// Package logging builds the structured logger shared by the box packages.
package logging

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	slogmulti "github.com/samber/slog-multi"
)

var ErrInvalidLevel = errors.New("log level must be one of: debug, info, warn, error")

// ParseLevel resolves a level name. The empty name selects warn.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "", "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("%w, got: %s", ErrInvalidLevel, name)
	}
}

// Options selects where log records go.
type Options struct {
	Level  slog.Level
	Stderr io.Writer
	// File, when set, also receives every record at Level as JSON lines.
	File string
}

// New returns the logger and a function that closes the log file.
func New(opts Options) (*slog.Logger, func() error, error) {
	level := new(slog.LevelVar)
	level.Set(opts.Level)

	var handlers []slog.Handler
	if opts.Stderr != nil {
		handlers = append(handlers, slog.NewTextHandler(opts.Stderr, &slog.HandlerOptions{
			Level: level,
		}))
	}

	closer := func() error { return nil }
	if opts.File != "" {
		file, err := os.OpenFile(opts.File, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		handlers = append(handlers, slog.NewJSONHandler(file, &slog.HandlerOptions{
			Level: level,
		}))
		closer = file.Close
	}

	if len(handlers) == 0 {
		return slog.New(slog.DiscardHandler), closer, nil
	}

	return slog.New(slogmulti.Fanout(handlers...)), closer, nil
}
