package tree

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// writeTree creates files (and their parent dirs) under root.
func writeTree(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, rel := range files {
		abs := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(abs), 0o755))
		require.NoError(t, os.WriteFile(abs, []byte("# "+rel+"\n"), 0o644))
	}
}

func names(nodes []*Node) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.Name)
	}
	return out
}

func TestFSLoaderListFiltersFilesButKeepsDirs(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root,
		"b.md",
		"a.MD",
		"notes.txt",
		"image.png",
		"empty/.keep",
		"docs/guide.md",
		".git/HEAD",
		"node_modules/pkg/readme.md",
	)

	loader := NewFSLoader(root, DefaultExtensions, DefaultSkipDirs)
	nodes, err := loader.List("")
	require.NoError(t, err)

	tr := NewRoot("r", loader)
	require.NoError(t, tr.EnsureLoaded())
	require.Equal(t, []string{"docs", "empty", "a.MD", "b.md"}, names(tr.Children))
	require.Len(t, nodes, 4)
}

func TestFSLoaderListRejectsFile(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "a.md")
	_, err := NewFSLoader(root, DefaultExtensions, nil).List("a.md")
	require.ErrorIs(t, err, errNotDir)
}

func TestExplorerDefaults(t *testing.T) {
	root := t.TempDir()
	e, err := NewExplorer(root)
	require.NoError(t, err)
	require.True(t, e.Visible())
	require.True(t, e.Matches("NOTES.MD"))
	require.False(t, e.Matches("notes.txt"))

	abs, _ := filepath.Abs(root)
	require.Equal(t, abs, e.RootDir())
	require.True(t, e.Root().Loaded())
}

func TestExplorerToggleKeepsRoot(t *testing.T) {
	root := t.TempDir()
	e, err := NewExplorer(root, WithVisible(true))
	require.NoError(t, err)
	before := e.RootDir()

	e.ToggleVisible()
	require.False(t, e.Visible())
	require.Equal(t, before, e.RootDir())
	e.ToggleVisible()
	require.True(t, e.Visible())
}

func TestExplorerSetRootRejectsFileAndKeepsOld(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "a.md")
	e, err := NewExplorer(root)
	require.NoError(t, err)
	before := e.RootDir()

	require.Error(t, e.SetRoot(filepath.Join(root, "a.md")))
	require.Error(t, e.SetRoot(filepath.Join(root, "missing")))
	require.Equal(t, before, e.RootDir())

	sub := filepath.Join(root, "sub")
	require.NoError(t, os.Mkdir(sub, 0o755))
	require.NoError(t, e.SetRoot(sub))
	require.Equal(t, sub, e.RootDir())
	require.Equal(t, "sub", e.Root().Name)
}

func TestExplorerActivateDirectoryNeverOpens(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "dir/inner.md", "dir.md")
	e, err := NewExplorer(root)
	require.NoError(t, err)

	dir := e.Root().ChildByName("dir")
	require.NotNil(t, dir)

	path, open, err := e.Activate(dir)
	require.NoError(t, err)
	require.False(t, open)
	require.Empty(t, path)
	require.True(t, dir.Open)
	require.Equal(t, []string{"inner.md"}, names(dir.Children))

	path, open, err = e.Activate(dir)
	require.NoError(t, err)
	require.False(t, open)
	require.Empty(t, path)
	require.False(t, dir.Open)
}

func TestExplorerActivateRootStaysOpen(t *testing.T) {
	e, err := NewExplorer(t.TempDir())
	require.NoError(t, err)
	_, open, err := e.Activate(e.Root())
	require.NoError(t, err)
	require.False(t, open)
	require.True(t, e.Root().Open)
}

func TestExplorerActivateMarkdownFileOpens(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "dir/inner.md")
	e, err := NewExplorer(root)
	require.NoError(t, err)

	file := e.Reveal("dir/inner.md")
	require.NotNil(t, file)

	path, open, err := e.Activate(file)
	require.NoError(t, err)
	require.True(t, open)
	require.Equal(t, filepath.Join(e.RootDir(), "dir", "inner.md"), path)
}

func TestExplorerActivateFilteredOutFile(t *testing.T) {
	e, err := NewExplorer(t.TempDir())
	require.NoError(t, err)
	_, open, err := e.Activate(&Node{Name: "x.txt", Path: "x.txt"})
	require.NoError(t, err)
	require.False(t, open)
}

func TestExplorerLinesFollowExpansion(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "a/one.md", "b/two.md", "top.md")
	e, err := NewExplorer(root)
	require.NoError(t, err)

	lines, err := e.Lines()
	require.NoError(t, err)
	require.Len(t, lines, 4)
	require.Equal(t, 0, lines[0].Depth)
	require.Equal(t, "a", lines[1].Node.Name)
	require.Equal(t, "top.md", lines[3].Node.Name)

	e.Reveal("a/one.md")
	lines, err = e.Lines()
	require.NoError(t, err)
	require.Len(t, lines, 5)
	require.Equal(t, "one.md", lines[2].Node.Name)
	require.Equal(t, 2, lines[2].Depth)
}

func TestExplorerRefreshKeepsExpandedDirs(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "a/one.md")
	e, err := NewExplorer(root)
	require.NoError(t, err)
	e.Reveal("a/one.md")

	writeTree(t, root, "a/two.md", "new.md")
	require.NoError(t, e.Refresh())

	a := e.Root().ChildByName("a")
	require.NotNil(t, a)
	require.True(t, a.Open)
	require.Equal(t, []string{"one.md", "two.md"}, names(a.Children))
	require.NotNil(t, e.Root().ChildByName("new.md"))
}

func TestExplorerRelPath(t *testing.T) {
	root := t.TempDir()
	e, err := NewExplorer(root)
	require.NoError(t, err)

	rel, ok := e.RelPath(filepath.Join(e.RootDir(), "x", "y.md"))
	require.True(t, ok)
	require.Equal(t, "x/y.md", rel)

	_, ok = e.RelPath(filepath.Dir(e.RootDir()))
	require.False(t, ok)

	rel, ok = e.RelPath(e.RootDir())
	require.True(t, ok)
	require.Equal(t, "", rel)
}

func TestExplorerSkipDirs(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "vendor/a.md", ".git/b.md", "c.md")
	e, err := NewExplorer(root, WithSkipDirs("vendor"))
	require.NoError(t, err)
	require.Equal(t, []string{".git", "c.md"}, names(e.Root().Children))
}

func TestExplorerRevealLoadsExpandedDirs(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "a/b/c.md")
	e, err := NewExplorer(root)
	require.NoError(t, err)

	n := e.Reveal("a/b")
	require.NotNil(t, n)
	require.True(t, n.Open)
	require.True(t, n.Loaded())
	require.Equal(t, []string{"c.md"}, names(n.Children))

	require.Nil(t, e.Reveal("a/missing"))
}
