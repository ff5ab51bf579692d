package utils

import (
	"os"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func skipOnWindows(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("POSIX shell commands")
	}
}

func TestExecStartFailures(t *testing.T) {
	t.Run("command not found", func(t *testing.T) {
		exitCode, err := ExecWithTimeout(".", os.Stdout, os.Stderr, 0, 99, "nonexistent_command_xyz")
		assert.Error(t, err)
		assert.Equal(t, InternalErrorExitCode, exitCode)
	})

	t.Run("empty cwd", func(t *testing.T) {
		_, err := ExecWithTimeout("", os.Stdout, os.Stderr, 0, 99, "echo")
		assert.ErrorIs(t, err, os.ErrInvalid)
	})
}

func TestExecWithTimeout(t *testing.T) {
	skipOnWindows(t)
	t.Run("command finishes before timeout", func(t *testing.T) {
		exitCode, err := ExecWithTimeout(".", os.Stdout, os.Stderr, 5*time.Second, 99, "echo", "test")
		assert.NoError(t, err)
		assert.Equal(t, 0, exitCode)
	})

	t.Run("timeout", func(t *testing.T) {
		exitCode, _ := ExecWithTimeout(".", os.Stdout, os.Stderr, 100*time.Millisecond, 99, "sleep", "5")
		assert.Equal(t, 99, exitCode)
	})
}

func TestExecRedirectOutput(t *testing.T) {
	skipOnWindows(t)
	t.Run("capture stdout", func(t *testing.T) {
		stdout, stderr, exitCode, err := ExecRedirectOutput(".", 0, "sh", "-c", "echo test")
		assert.NoError(t, err)
		assert.Equal(t, 0, exitCode)
		assert.Contains(t, stdout, "test")
		assert.Empty(t, stderr)
	})

	t.Run("capture stderr and exit code", func(t *testing.T) {
		stdout, stderr, exitCode, err := ExecRedirectOutput(".", 0, "sh", "-c", "echo boom >&2; exit 3")
		assert.NoError(t, err)
		assert.Equal(t, 3, exitCode)
		assert.Empty(t, stdout)
		assert.Contains(t, stderr, "boom")
	})
}
