package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strconv"

	"github.com/atlanticdynamic/cornflakes/internal/config"
	"github.com/atlanticdynamic/cornflakes/internal/editor"
	"github.com/atlanticdynamic/cornflakes/internal/editor/fswatch"
	"github.com/atlanticdynamic/cornflakes/internal/fancy"
	"github.com/atlanticdynamic/cornflakes/internal/lint"
	"github.com/atlanticdynamic/cornflakes/internal/process"
	"github.com/urfave/cli/v3"
	"github.com/viant/afs"
	"golang.org/x/sync/errgroup"
)

// Exit codes of the lint command.
const (
	exitViolations = 1
	exitLintFailed = 2
)

var lintCmd = &cli.Command{
	Name:      "lint",
	Usage:     "Lint python files and notebooks once and print the diagnostics",
	ArgsUsage: "[path...]",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to the settings file",
		},
		&cli.StringFlag{
			Name:    "executable",
			Aliases: []string{"e"},
			Usage:   "Linter executable; overrides linter.executablePath",
		},
		&cli.IntFlag{
			Name:    "jobs",
			Aliases: []string{"j"},
			Usage:   "Number of files linted in parallel",
			Value:   runtime.NumCPU(),
		},
		&cli.BoolFlag{
			Name:  "include-hidden",
			Usage: "Also lint files and directories whose name starts with a dot",
		},
	},
	Action: lintAction,
}

// fileResult is what one file produced. err holds a launch failure.
type fileResult struct {
	path  string
	diags []lint.Diagnostic
	err   error
}

func lintAction(ctx context.Context, cmd *cli.Command) error {
	settings, err := loadSettings(cmd.String("config"))
	if err != nil {
		return cli.Exit(err, exitLintFailed)
	}
	if exe := cmd.String("executable"); exe != "" {
		settings.Linter.ExecutablePath = exe
	}

	closer, err := setupLogger(cmd, settings)
	if err != nil {
		return cli.Exit(err, exitLintFailed)
	}
	defer closer.Close()
	logger := slog.Default()

	roots := cmd.Args().Slice()
	if len(roots) == 0 {
		roots = []string{"."}
	}
	files, err := fswatch.Collect(ctx, roots, cmd.Bool("include-hidden"))
	if err != nil {
		return cli.Exit(fmt.Errorf("failed to list files: %w", err), exitLintFailed)
	}

	dir, err := os.Getwd()
	if err != nil {
		return cli.Exit(err, exitLintFailed)
	}

	results, err := lintFiles(ctx, logger, settings.RunConfig(), dir, files, int(cmd.Int("jobs")))
	if err != nil {
		if process.IsExecutableNotFound(err) {
			return cli.Exit(fmt.Sprintf(
				"The executable was not found. Use the '%s.executablePath' setting or --executable to configure the location of the executable",
				config.Section,
			), exitLintFailed)
		}
		return cli.Exit(err, exitLintFailed)
	}

	return report(cmd.Root().Writer, dir, results)
}

// lintFiles runs the linter over files with at most jobs runs at a time. A
// missing executable stops everything; other failures are kept per file.
func lintFiles(
	ctx context.Context,
	logger *slog.Logger,
	cfg config.RunConfig,
	dir string,
	files []string,
	jobs int,
) ([]fileResult, error) {
	linter := process.NewLinter(logger.WithGroup("process"))
	fs := afs.New()
	results := make([]fileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(jobs, 1))

	for i, path := range files {
		g.Go(func() error {
			results[i].path = path

			data, err := fs.DownloadWithURL(gctx, path)
			if err != nil {
				results[i].err = fmt.Errorf("failed to read %s: %w", path, err)
				return nil
			}
			doc, err := editor.LoadDocument(path, data)
			if err != nil {
				results[i].err = err
				return nil
			}

			lines, err := linter.Lint(gctx, cfg, doc.Text(), dir)
			if err != nil {
				if process.IsExecutableNotFound(err) || errors.Is(err, context.Canceled) {
					return err
				}
				logger.Warn("Lint failed", "path", path, "error", err)
				results[i].err = err
				return nil
			}
			results[i].diags = lint.Dedupe(lint.Process(lines, doc.FileName()))
			logger.Debug("Linted", "path", path, "diagnostics", len(results[i].diags))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// report prints one tree per file with findings and a closing count, then
// picks the exit status.
func report(w io.Writer, dir string, results []fileResult) error {
	var violations, failed int
	for _, r := range results {
		label := r.path
		if rel, err := filepath.Rel(dir, r.path); err == nil && filepath.IsLocal(rel) {
			label = rel
		}

		switch {
		case r.err != nil:
			failed++
			fmt.Fprintf(w, "%s: %s\n", fancy.PathText(label), fancy.ErrorText(r.err.Error()))
		case len(r.diags) > 0:
			violations += len(r.diags)
			fmt.Fprintln(w, lint.Render(label, r.diags))
		}
	}
	fmt.Fprintf(w, "%s files checked, %s violations\n",
		fancy.CountText(strconv.Itoa(len(results))),
		fancy.CountText(strconv.Itoa(violations)),
	)

	switch {
	case failed > 0:
		return cli.Exit(fmt.Sprintf("%d files could not be linted", failed), exitLintFailed)
	case violations > 0:
		return cli.Exit("", exitViolations)
	}
	return nil
}
