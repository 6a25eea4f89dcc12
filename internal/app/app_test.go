package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kyaoi/thoughtforge/internal/config"
)

func TestLoadInitialStateDirectory(t *testing.T) {
	dir := t.TempDir()

	state, err := LoadInitialState(dir)

	require.NoError(t, err)
	require.Equal(t, dir, state.RootDir)
	require.Empty(t, state.InitialFile)
	require.True(t, state.TreeVisible)
}

func TestLoadInitialStateFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "note.md")
	require.NoError(t, os.WriteFile(path, []byte("# note"), 0o644))

	state, err := LoadInitialState(path)

	require.NoError(t, err)
	require.Equal(t, dir, state.RootDir)
	require.Equal(t, path, state.InitialFile)
}

func TestLoadInitialStateEmptyUsesExecutableDir(t *testing.T) {
	state, err := LoadInitialState("")

	require.NoError(t, err)
	exe, err := os.Executable()
	require.NoError(t, err)
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	require.Equal(t, filepath.Dir(exe), state.RootDir)
}

func TestLoadInitialStateMissing(t *testing.T) {
	_, err := LoadInitialState(filepath.Join(t.TempDir(), "missing.md"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestOptionsFromSettings(t *testing.T) {
	settings := config.Defaults()
	settings.PreviewDebounce = 40 * time.Millisecond
	settings.HistoryLimit = 7

	opts := Options(settings, nil)

	require.Equal(t, settings.PreviewStyle, opts.PreviewStyle)
	require.Equal(t, 40*time.Millisecond, opts.PreviewDebounce)
	require.Equal(t, 7, opts.HistoryLimit)
	require.Equal(t, settings.ExplorerSkipDirs, opts.SkipDirs)
	require.Equal(t, 3*time.Second, opts.StatusTimeout)
	require.True(t, opts.PreviewFrontMatter)
}
