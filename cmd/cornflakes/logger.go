package main

import (
	"fmt"
	"io"

	"github.com/atlanticdynamic/cornflakes/internal/config"
	"github.com/atlanticdynamic/cornflakes/internal/config/logs"
	"github.com/atlanticdynamic/cornflakes/internal/logging"
	"github.com/urfave/cli/v3"
)

// loadSettings reads the settings file, or returns the defaults when path is empty.
func loadSettings(path string) (*config.Settings, error) {
	if path == "" {
		return config.NewDefault(), nil
	}
	settings, err := config.NewConfig(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return settings, nil
}

// logFlags reads the global logging flags. Unset flags stay empty.
func logFlags(cmd *cli.Command) (logs.Config, error) {
	level, err := logs.LevelFromString(cmd.String("log-level"))
	if err != nil {
		return logs.Config{}, err
	}
	format, err := logs.FormatFromString(cmd.String("log-format"))
	if err != nil {
		return logs.Config{}, err
	}
	return logs.Config{
		Format: format,
		Level:  level,
		Output: cmd.String("log-output"),
	}, nil
}

// setupLogger installs the default logger. Flags win over the settings file.
func setupLogger(cmd *cli.Command, settings *config.Settings) (io.Closer, error) {
	flags, err := logFlags(cmd)
	if err != nil {
		return nil, err
	}

	var fromFile logs.Config
	if settings != nil {
		fromFile = settings.Logging
	}
	return logging.Setup(flags.Merge(fromFile))
}
