package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

func newApp() *cli.Command {
	return &cli.Command{
		Name:    "cornflakes",
		Version: Version,
		Usage:   "Lint python sources with flake8 and report diagnostics",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level (debug, info, warn, error); overrides the settings file",
			},
			&cli.StringFlag{
				Name:  "log-format",
				Usage: "Log format (text, json); overrides the settings file",
			},
			&cli.StringFlag{
				Name:  "log-output",
				Usage: "Log destination (stderr, stdout or a file path); overrides the settings file",
			},
		},
		Commands: []*cli.Command{
			lintCmd,
			watchCmd,
			validateCmd,
			versionCmd,
		},
	}
}

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
