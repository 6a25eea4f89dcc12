package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kyaoi/thoughtforge/internal/ui"
)

// LoadInitialState analyses the target path and prepares the UI state.
// An empty target browses the directory holding the executable, a directory
// is browsed as is, and a file is opened with its directory as the root.
func LoadInitialState(target string) (ui.State, error) {
	if target == "" {
		dir, err := executableDir()
		if err != nil {
			return ui.State{}, err
		}
		return ui.State{RootDir: dir, TreeVisible: true}, nil
	}

	absTarget, err := filepath.Abs(target)
	if err != nil {
		return ui.State{}, err
	}
	info, err := os.Stat(absTarget)
	if err != nil {
		return ui.State{}, err
	}

	if info.IsDir() {
		return ui.State{RootDir: absTarget, TreeVisible: true}, nil
	}
	if !info.Mode().IsRegular() {
		return ui.State{}, fmt.Errorf("%s is not a regular file", absTarget)
	}
	return ui.State{
		RootDir:     filepath.Dir(absTarget),
		InitialFile: absTarget,
		TreeVisible: true,
	}, nil
}

func executableDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}
