package logger

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpenWritesToFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "nested", "tf.log")
	l, err := Open(logPath, slog.LevelInfo)
	require.NoError(t, err)

	l.Info("saved file", "path", "/tmp/notes.md")
	l.Debug("hidden-debug-line")
	require.NoError(t, l.Close())

	content, err := os.ReadFile(logPath)
	require.NoError(t, err)
	require.Contains(t, string(content), "Logger initialized")
	require.Contains(t, string(content), "saved file")
	require.NotContains(t, string(content), "hidden-debug-line")
}

func TestSetLevelEnablesDebug(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "tf.log")
	l, err := Open(logPath, slog.LevelInfo)
	require.NoError(t, err)
	defer l.Close()

	l.SetLevel(slog.LevelDebug)
	l.Debug("debug-after-switch")

	content, err := os.ReadFile(logPath)
	require.NoError(t, err)
	require.True(t, strings.Contains(string(content), "debug-after-switch"))
	require.Equal(t, logPath, l.Path())
}

func TestCloseTwice(t *testing.T) {
	l, err := Open(filepath.Join(t.TempDir(), "tf.log"), slog.LevelInfo)
	require.NoError(t, err)
	require.NoError(t, l.Close())
	require.NoError(t, l.Close())
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"":        slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got, in)
	}

	_, err := ParseLevel("verbose")
	require.Error(t, err)
}

func TestDefaultPathHonorsXDG(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", "/var/state")
	require.Equal(t, filepath.Join("/var/state", "thoughtforge", "thoughtforge.log"), DefaultPath())
}
