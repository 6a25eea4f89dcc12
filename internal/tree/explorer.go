package tree

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultExtensions is the explorer's file filter.
var DefaultExtensions = []string{".md"}

// Explorer is the browsable filesystem view: a root directory, an extension
// filter for files, and whether the panel is shown.
type Explorer struct {
	rootDir    string
	extensions []string
	skipDirs   []string
	visible    bool

	loader *FSLoader
	root   *Node
}

// Option configures an Explorer.
type Option func(*Explorer)

// WithSkipDirs replaces the directory names that are never listed.
func WithSkipDirs(names ...string) Option {
	return func(e *Explorer) {
		e.skipDirs = append([]string(nil), names...)
	}
}

// WithVisible sets the initial panel visibility.
func WithVisible(visible bool) Option {
	return func(e *Explorer) { e.visible = visible }
}

// NewExplorer roots an explorer at dir.
func NewExplorer(dir string, opts ...Option) (*Explorer, error) {
	e := &Explorer{
		extensions: append([]string(nil), DefaultExtensions...),
		skipDirs:   append([]string(nil), DefaultSkipDirs...),
		visible:    true,
	}
	for _, opt := range opts {
		opt(e)
	}
	if err := e.SetRoot(dir); err != nil {
		return nil, err
	}
	return e, nil
}

// SetRoot re-roots the explorer. On error the previous root is kept.
func (e *Explorer) SetRoot(dir string) error {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return err
	}
	info, err := os.Stat(absDir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s: %w", absDir, errNotDir)
	}

	loader := NewFSLoader(absDir, e.extensions, e.skipDirs)
	root := NewRoot(filepath.Base(absDir), loader)
	if err := root.EnsureLoaded(); err != nil {
		return err
	}
	e.rootDir = absDir
	e.loader = loader
	e.root = root
	return nil
}

func (e *Explorer) RootDir() string { return e.rootDir }

func (e *Explorer) Root() *Node { return e.root }

// Visible reports whether the panel is shown.
func (e *Explorer) Visible() bool { return e.visible }

// ToggleVisible shows or hides the panel without touching the root.
func (e *Explorer) ToggleVisible() { e.visible = !e.visible }

// Matches reports whether a file name passes the extension filter.
func (e *Explorer) Matches(name string) bool { return e.loader.Matches(name) }

// AbsPath converts a node to its absolute filesystem path.
func (e *Explorer) AbsPath(n *Node) string {
	if n == nil || n.Path == "" {
		return e.rootDir
	}
	return filepath.Join(e.rootDir, filepath.FromSlash(n.Path))
}

// RelPath converts an absolute path to the slash separated path used by
// nodes. ok is false when absPath lies outside the root.
func (e *Explorer) RelPath(absPath string) (string, bool) {
	rel, err := filepath.Rel(e.rootDir, absPath)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	if rel == "." {
		return "", true
	}
	return filepath.ToSlash(rel), true
}

// Activate handles a double activation of n. A file that passes the filter
// yields its absolute path and open=true. A directory is expanded or
// collapsed and never opens anything.
func (e *Explorer) Activate(n *Node) (path string, open bool, err error) {
	if n == nil {
		return "", false, nil
	}
	if n.IsDir {
		if n.Open && n != e.root {
			n.Open = false
			return "", false, nil
		}
		n.Open = true
		return "", false, n.EnsureLoaded()
	}
	if !e.Matches(n.Name) {
		return "", false, nil
	}
	return e.AbsPath(n), true, nil
}

// Reveal expands every directory on the way to relPath and returns its node.
// Expanded directories are loaded so their children are listed right away.
func (e *Explorer) Reveal(relPath string) *Node {
	if relPath == "" {
		return e.root
	}
	current := e.root
	for _, part := range strings.Split(relPath, "/") {
		if err := current.EnsureLoaded(); err != nil {
			return nil
		}
		child := current.ChildByName(part)
		if child == nil {
			return nil
		}
		if child.IsDir {
			child.Open = true
			if err := child.EnsureLoaded(); err != nil {
				return nil
			}
		}
		current = child
	}
	return current
}

// Refresh re-reads the tree from disk, keeping expanded directories open.
func (e *Explorer) Refresh() error {
	var open []string
	var walk func(*Node)
	walk = func(n *Node) {
		if !n.IsDir || !n.Open {
			return
		}
		if n.Path != "" {
			open = append(open, n.Path)
		}
		for _, child := range n.Children {
			walk(child)
		}
	}
	walk(e.root)

	if err := e.SetRoot(e.rootDir); err != nil {
		return err
	}
	for _, p := range open {
		e.Reveal(p)
	}
	return nil
}

// Line is one visible row of the flattened tree.
type Line struct {
	Node  *Node
	Depth int
}

// Lines flattens the expanded part of the tree, root first.
func (e *Explorer) Lines() ([]Line, error) {
	var lines []Line
	var walkErr error
	var walk func(*Node, int)
	walk = func(n *Node, depth int) {
		lines = append(lines, Line{Node: n, Depth: depth})
		if !n.IsDir || !n.Open {
			return
		}
		if err := n.EnsureLoaded(); err != nil {
			if walkErr == nil {
				walkErr = err
			}
			return
		}
		for _, child := range n.Children {
			walk(child, depth+1)
		}
	}
	walk(e.root, 0)
	return lines, walkErr
}
