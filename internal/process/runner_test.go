package process

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/atlanticdynamic/cornflakes/internal/config"
	"github.com/atlanticdynamic/cornflakes/internal/lint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeScript creates an executable shell script in a temp dir.
func writeScript(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts are not supported on windows")
	}
	path := filepath.Join(t.TempDir(), "fake-linter")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755))
	return path
}

func TestRunner_Run(t *testing.T) {
	t.Run("feeds stdin and collects stdout", func(t *testing.T) {
		exe := writeScript(t, `cat`)
		res, err := NewRunner(exe, WithArgs()).Run(context.Background(), "a = 1\n\nb = 2\r\n")
		require.NoError(t, err)

		assert.Equal(t, []string{"a = 1", "b = 2"}, res.Lines)
		assert.Equal(t, 0, res.ExitCode)
		assert.False(t, res.Truncated)
	})

	t.Run("passes default arguments", func(t *testing.T) {
		exe := writeScript(t, `echo "$@"`)
		res, err := NewRunner(exe).Run(context.Background(), "")
		require.NoError(t, err)
		assert.Equal(t, []string{"-v -"}, res.Lines)
	})

	t.Run("merges stderr in arrival order", func(t *testing.T) {
		exe := writeScript(t, "echo one\necho two >&2\necho three\n")
		res, err := NewRunner(exe).Run(context.Background(), "")
		require.NoError(t, err)
		assert.Equal(t, []string{"one", "two", "three"}, res.Lines)
	})

	t.Run("non-zero exit is not an error", func(t *testing.T) {
		exe := writeScript(t, "echo 'stdin:1:1: F401 unused'\nexit 1\n")
		res, err := NewRunner(exe).Run(context.Background(), "")
		require.NoError(t, err)
		assert.Equal(t, 1, res.ExitCode)
		assert.Equal(t, []string{"stdin:1:1: F401 unused"}, res.Lines)
	})

	t.Run("working directory", func(t *testing.T) {
		exe := writeScript(t, `pwd`)
		dir := t.TempDir()
		res, err := NewRunner(exe, WithDir(dir)).Run(context.Background(), "")
		require.NoError(t, err)
		require.Len(t, res.Lines, 1)

		want, err := filepath.EvalSymlinks(dir)
		require.NoError(t, err)
		got, err := filepath.EvalSymlinks(res.Lines[0])
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("environment", func(t *testing.T) {
		exe := writeScript(t, `echo "$CORNFLAKES_TEST"`)
		res, err := NewRunner(exe, WithEnv([]string{"CORNFLAKES_TEST=yes"})).Run(context.Background(), "")
		require.NoError(t, err)
		assert.Equal(t, []string{"yes"}, res.Lines)
	})

	t.Run("output cap keeps the summary line", func(t *testing.T) {
		exe := writeScript(t, "cat\necho\necho 'Found a total of 0 violations and reported 0'\n")
		res, err := NewRunner(exe, WithMaxOutputBytes(64)).Run(context.Background(), strings.Repeat("x", 1000))
		require.NoError(t, err)
		assert.True(t, res.Truncated)
		require.NotEmpty(t, res.Lines)
		assert.Equal(t, "Found a total of 0 violations and reported 0", res.Lines[len(res.Lines)-1])
	})

	t.Run("timeout", func(t *testing.T) {
		exe := writeScript(t, "exec sleep 5\n")
		_, err := NewRunner(exe, WithTimeout(50*time.Millisecond)).Run(context.Background(), "")
		require.ErrorIs(t, err, ErrTimeout)
	})

	t.Run("canceled context", func(t *testing.T) {
		exe := writeScript(t, "exec sleep 5\n")
		ctx, cancel := context.WithCancel(context.Background())
		time.AfterFunc(50*time.Millisecond, cancel)
		_, err := NewRunner(exe).Run(ctx, "")
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestRunner_LaunchErrors(t *testing.T) {
	t.Run("missing executable on PATH", func(t *testing.T) {
		_, err := NewRunner("cornflakes-definitely-missing-linter").Run(context.Background(), "")
		require.Error(t, err)
		assert.True(t, IsExecutableNotFound(err))

		var launchErr *LaunchError
		require.ErrorAs(t, err, &launchErr)
		assert.Equal(t, "cornflakes-definitely-missing-linter", launchErr.Executable)
	})

	t.Run("missing absolute path", func(t *testing.T) {
		_, err := NewRunner(filepath.Join(t.TempDir(), "nope")).Run(context.Background(), "")
		assert.True(t, IsExecutableNotFound(err))
	})

	t.Run("not executable", func(t *testing.T) {
		if runtime.GOOS == "windows" {
			t.Skip("permission bits are not enforced on windows")
		}
		path := filepath.Join(t.TempDir(), "plain")
		require.NoError(t, os.WriteFile(path, []byte("data"), 0o644))

		_, err := NewRunner(path).Run(context.Background(), "")
		require.Error(t, err)
		assert.False(t, IsExecutableNotFound(err))

		var launchErr *LaunchError
		assert.ErrorAs(t, err, &launchErr)
	})

	t.Run("empty executable", func(t *testing.T) {
		_, err := NewRunner("").Run(context.Background(), "")
		require.ErrorIs(t, err, ErrNoExecutable)
	})
}

func TestLaunchError(t *testing.T) {
	cause := errors.New("permission denied")
	err := &LaunchError{Executable: "/bin/flake8", Cause: cause}

	assert.Equal(t, "failed to run executable using path: /bin/flake8: permission denied", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "failed to run executable using path: /bin/flake8", (&LaunchError{Executable: "/bin/flake8"}).Error())
}

func TestRunner_String(t *testing.T) {
	assert.Equal(t, "flake8 -v -", NewRunner("flake8").String())
}

func TestExecLinter_LargeOutputKeepsFindings(t *testing.T) {
	exe := writeScript(t, "cat >/dev/null\n"+
		"head -c 11000000 /dev/zero | tr '\\0' 'x'\n"+
		"echo\n"+
		"echo 'stdin:1:1: F401 os imported but unused'\n"+
		"echo 'Found a total of 1 violations and reported 1'\n")

	lines, err := NewLinter(nil).Lint(context.Background(),
		config.NewDefault().RunConfig(), "import os\n", t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, 1, lint.ViolationCount(lines))

	diags := lint.Process(lines, "app.py")
	require.Len(t, diags, 1)
	assert.Equal(t, "F401", diags[0].Code)
}

func TestExecLinter_Lint(t *testing.T) {
	exe := writeScript(t, "cat >/dev/null\necho 'stdin:2:1: E302 expected 2 blank lines'\necho 'Found a total of 1 violations and reported 1'\n")

	l := NewLinter(nil)
	lines, err := l.Lint(context.Background(), config.RunConfig{Executable: exe}, "import os\n", t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, []string{
		"stdin:2:1: E302 expected 2 blank lines",
		"Found a total of 1 violations and reported 1",
	}, lines)

	_, err = l.Lint(context.Background(), config.RunConfig{Executable: "cornflakes-missing"}, "", "")
	assert.True(t, IsExecutableNotFound(err))
}
