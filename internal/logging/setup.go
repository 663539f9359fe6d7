// Package logging builds the process log handler from the logging section
// of the settings merged with the command line flags.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/atlanticdynamic/cornflakes/internal/config/logs"
	"github.com/atlanticdynamic/cornflakes/internal/logging/writers"
	"github.com/charmbracelet/log"
)

// Defaults apply when neither the settings file nor the flags say otherwise.
// Logs go to stderr since stdout carries lint results.
var Defaults = logs.Config{
	Format: logs.FormatText,
	Level:  logs.LevelInfo,
	Output: "stderr",
}

// NewHandler builds a handler for cfg. Empty fields fall back to Defaults.
// The returned closer releases the output file, if one was opened.
func NewHandler(cfg logs.Config) (slog.Handler, io.Closer, error) {
	cfg = cfg.Merge(Defaults)
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	w, err := writers.CreateWriter(cfg.Output)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log output: %w", err)
	}

	if cfg.Format == logs.FormatJSON {
		return SetupHandlerJSON(cfg.Level, w), w, nil
	}
	return SetupHandlerText(cfg.Level, w), w, nil
}

// SetupHandlerText configures a charmbracelet text handler. Debug output
// includes timestamps and the caller.
func SetupHandlerText(level logs.Level, writer io.Writer) slog.Handler {
	if writer == nil {
		writer = os.Stderr
	}

	debug := level == logs.LevelDebug
	return log.NewWithOptions(writer, log.Options{
		ReportTimestamp: debug,
		ReportCaller:    debug,
		Level:           log.Level(level.SlogLevel()),
		Prefix:          "cornflakes",
	})
}

// SetupHandlerJSON configures a JSON slog handler.
func SetupHandlerJSON(level logs.Level, writer io.Writer) slog.Handler {
	if writer == nil {
		writer = os.Stderr
	}

	return slog.NewJSONHandler(writer, &slog.HandlerOptions{
		Level:     level.SlogLevel(),
		AddSource: level == logs.LevelDebug,
	})
}

// Setup installs a handler for cfg as the slog default.
func Setup(cfg logs.Config) (io.Closer, error) {
	handler, closer, err := NewHandler(cfg)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(slog.New(handler))
	return closer, nil
}
