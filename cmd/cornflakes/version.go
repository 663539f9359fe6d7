package main

import (
	"context"
	"fmt"
	"runtime"

	"github.com/atlanticdynamic/cornflakes/internal/config"
	"github.com/urfave/cli/v3"
)

// Version is overridden with -ldflags "-X main.Version=..." in release builds.
var Version = "dev"

var versionCmd = &cli.Command{
	Name:  "version",
	Usage: "Print the build and settings schema versions",
	Action: func(ctx context.Context, cmd *cli.Command) error {
		w := cmd.Root().Writer
		fmt.Fprintf(w, "cornflakes %s\n", cmd.Root().Version)
		fmt.Fprintf(w, "settings schema: %s\n", config.VersionLatest)
		fmt.Fprintf(w, "go: %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
		return nil
	},
}
