package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/atlanticdynamic/cornflakes/internal/config"
	"github.com/urfave/cli/v3"
)

var validateCmd = &cli.Command{
	Name:  "validate",
	Usage: "Validate a settings file",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:    "tree",
			Aliases: []string{"t"},
			Usage:   "Show detailed tree view of the validated settings",
		},
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to the settings file",
		},
	},
	Suggest: true,
	Action:  validateAction,
}

func validateAction(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")
	if configPath == "" {
		if cmd.Args().Len() < 1 {
			return fmt.Errorf(
				"config file path required (use the --config flag, or provide the config file as positional argument)",
			)
		}
		configPath = cmd.Args().Get(0)
	}

	settings, err := config.NewConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	out := cmd.Root().Writer
	fmt.Fprintf(out, "Configuration file %s is valid\n", configPath)

	if cmd.Bool("tree") {
		fmt.Fprintln(out, settings)
		return nil
	}
	fmt.Fprintln(out, renderSettingsSummary(configPath, settings))
	return nil
}

// renderSettingsSummary creates a short summary of the settings
func renderSettingsSummary(path string, s *config.Settings) string {
	var summary strings.Builder
	rc := s.RunConfig()

	summary.WriteString("\nSettings Summary:\n")
	fmt.Fprintf(&summary, "- Path: %s\n", path)
	fmt.Fprintf(&summary, "- Version: %s\n", s.Version)
	fmt.Fprintf(&summary, "- Executable: %s\n", rc.Executable)
	fmt.Fprintf(&summary, "- Run: %s\n", rc.Trigger)
	fmt.Fprintf(&summary, "- Language: %s\n", s.LanguageID())
	summary.WriteString("\nUse --tree for a more detailed view of the settings.")

	return summary.String()
}
