package main

import (
	"context"
	"log/slog"

	"github.com/atlanticdynamic/cornflakes/cmd/cornflakes/watch"
	"github.com/atlanticdynamic/cornflakes/internal/editor/fswatch"
	"github.com/urfave/cli/v3"
)

var watchCmd = &cli.Command{
	Name:      "watch",
	Usage:     "Watch python files and notebooks and lint them as they change",
	ArgsUsage: "[path...]",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to the settings file, reloaded on SIGHUP",
		},
		&cli.DurationFlag{
			Name:  "interval",
			Usage: "How often the watched paths are scanned",
			Value: fswatch.DefaultInterval,
		},
		&cli.BoolFlag{
			Name:  "include-hidden",
			Usage: "Also watch files and directories whose name starts with a dot",
		},
	},
	Action: func(ctx context.Context, cmd *cli.Command) error {
		configPath := cmd.String("config")
		settings, err := loadSettings(configPath)
		if err != nil {
			return cli.Exit(err, 1)
		}

		closer, err := setupLogger(cmd, settings)
		if err != nil {
			return cli.Exit(err, 1)
		}
		defer closer.Close()

		roots := cmd.Args().Slice()
		if len(roots) == 0 {
			roots = []string{"."}
		}

		err = watch.Run(ctx, slog.Default(), watch.Options{
			ConfigPath:    configPath,
			Settings:      settings,
			Roots:         roots,
			Interval:      cmd.Duration("interval"),
			IncludeHidden: cmd.Bool("include-hidden"),
			Out:           cmd.Root().Writer,
			Messages:      cmd.Root().ErrWriter,
		})
		if err != nil {
			return cli.Exit(err, 1)
		}
		return nil
	},
}
