package cli

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kyaoi/thoughtforge/internal/config"
)

func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

type editorCall struct {
	target   string
	settings config.Settings
	logger   *slog.Logger
}

func stubEditor(t *testing.T) *[]editorCall {
	t.Helper()
	var calls []editorCall
	prev := runEditor
	runEditor = func(target string, settings config.Settings, log *slog.Logger) error {
		calls = append(calls, editorCall{target: target, settings: settings, logger: log})
		return nil
	}
	t.Cleanup(func() { runEditor = prev })
	return &calls
}

func TestRootRunsEditorWithTarget(t *testing.T) {
	isolate(t)
	calls := stubEditor(t)
	logFile := filepath.Join(t.TempDir(), "tf.log")
	dir := t.TempDir()

	_, err := execute(t, "--log-file", logFile, "--debug", dir)

	require.NoError(t, err)
	require.Len(t, *calls, 1)
	require.Equal(t, dir, (*calls)[0].target)
	require.Equal(t, "tokyo-night", (*calls)[0].settings.PreviewStyle)
	require.NotNil(t, (*calls)[0].logger)
	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	require.Contains(t, string(data), "Logger initialized")
	require.Contains(t, string(data), "level=DEBUG")
}

func TestRootWithoutArgsUsesEmptyTarget(t *testing.T) {
	isolate(t)
	calls := stubEditor(t)

	_, err := execute(t)

	require.NoError(t, err)
	require.Len(t, *calls, 1)
	require.Empty(t, (*calls)[0].target)
}

func TestRootRejectsTwoArgs(t *testing.T) {
	isolate(t)
	stubEditor(t)

	_, err := execute(t, "a", "b")
	require.Error(t, err)
}

func TestRootRejectsInvalidConfig(t *testing.T) {
	isolate(t)
	calls := stubEditor(t)
	cfg := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(cfg, []byte("[explorer]\nwidth = 0\n"), 0o644))

	_, err := execute(t, "--config", cfg)

	require.ErrorContains(t, err, "explorer.width must be greater than 0")
	require.Empty(t, *calls)
}

func TestRootRejectsMissingExplicitConfig(t *testing.T) {
	isolate(t)
	stubEditor(t)

	_, err := execute(t, "--config", filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
}

func TestExportToStdout(t *testing.T) {
	isolate(t)
	src := filepath.Join(t.TempDir(), "draft.md")
	require.NoError(t, os.WriteFile(src, []byte("---\ntitle: Field Notes\n---\n# Hello\n\n- [x] done\n"), 0o644))

	out, err := execute(t, "export", src)

	require.NoError(t, err)
	require.Contains(t, out, "<title>Field Notes</title>")
	require.Contains(t, out, ">Hello</h1>")
	require.Contains(t, out, "checkbox")
	require.NotContains(t, out, "title: Field Notes")
}

func TestExportToFileUsesFileNameAsTitle(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	src := filepath.Join(dir, "plain.md")
	dst := filepath.Join(dir, "plain.html")
	require.NoError(t, os.WriteFile(src, []byte("text"), 0o644))

	_, err := execute(t, "export", src, "-o", dst)

	require.NoError(t, err)
	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	require.Contains(t, string(data), "<title>plain</title>")
	require.Contains(t, string(data), "<p>text</p>")
}

func TestExportMissingFile(t *testing.T) {
	isolate(t)
	_, err := execute(t, "export", filepath.Join(t.TempDir(), "missing.md"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestConfigGenerate(t *testing.T) {
	isolate(t)
	out := filepath.Join(t.TempDir(), "tf", "config.toml")

	stdout, err := execute(t, "config", "generate", "-o", out)
	require.NoError(t, err)
	require.Contains(t, stdout, "Wrote "+out)
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Contains(t, string(data), "[preview]")

	_, err = execute(t, "config", "generate", "-o", out)
	require.ErrorContains(t, err, "already exists")

	stdout, err = execute(t, "config", "generate", "-o", out, "--overwrite")
	require.NoError(t, err)
	require.Contains(t, stdout, "Backup: "+out+".bak")
}

func TestConfigCheck(t *testing.T) {
	isolate(t)

	out, err := execute(t, "config", "check")
	require.NoError(t, err)
	require.Contains(t, out, "Config OK (defaults)")

	t.Setenv("THOUGHTFORGE_LOG_LEVEL", "loud")
	_, err = execute(t, "config", "check")
	require.ErrorContains(t, err, "log.level")
}
