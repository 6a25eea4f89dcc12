package tree

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

var errNotDir = errors.New("path is not a directory")

// DefaultSkipDirs are never listed in the explorer.
var DefaultSkipDirs = []string{".git", "node_modules", ".hg", ".svn", ".idea", ".vscode"}

// FSLoader loads tree nodes by reading the filesystem under the given root.
// Directories are always listed so the user can navigate; files are listed
// only when their extension is in the filter.
type FSLoader struct {
	root       string
	extensions []string
	skip       map[string]bool
}

// NewFSLoader creates a loader that reads from the provided root directory.
func NewFSLoader(root string, extensions []string, skipDirs []string) *FSLoader {
	skip := make(map[string]bool, len(skipDirs))
	for _, name := range skipDirs {
		skip[strings.ToLower(name)] = true
	}
	exts := make([]string, 0, len(extensions))
	for _, ext := range extensions {
		exts = append(exts, strings.ToLower(ext))
	}
	return &FSLoader{
		root:       root,
		extensions: exts,
		skip:       skip,
	}
}

// List returns immediate child entries for the provided relative path.
func (l *FSLoader) List(relPath string) ([]*Node, error) {
	dir := l.abs(relPath)
	info, err := os.Stat(dir)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, errNotDir
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var nodes []*Node
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() {
			if l.skip[strings.ToLower(name)] {
				continue
			}
			nodes = append(nodes, &Node{
				Name:  name,
				Path:  join(relPath, name),
				IsDir: true,
			})
			continue
		}
		if !l.Matches(name) {
			continue
		}
		nodes = append(nodes, &Node{
			Name:  name,
			Path:  join(relPath, name),
			IsDir: false,
		})
	}
	return nodes, nil
}

// Matches reports whether a file name passes the extension filter.
func (l *FSLoader) Matches(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range l.extensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

func (l *FSLoader) abs(relPath string) string {
	if relPath == "" {
		return l.root
	}
	return filepath.Join(l.root, filepath.FromSlash(relPath))
}

func join(base, part string) string {
	if base == "" {
		return part
	}
	return base + "/" + part
}
