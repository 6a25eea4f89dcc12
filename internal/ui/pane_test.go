package ui

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kyaoi/thoughtforge/internal/render"
	"github.com/kyaoi/thoughtforge/internal/tree"
)

func TestHistoryBoundedUndoRedo(t *testing.T) {
	h := newHistory(2)
	h.record(snapshot{text: "a"})
	h.record(snapshot{text: "ab"})
	h.record(snapshot{text: "abc"})
	require.Len(t, h.undo, 2)

	prev, ok := h.stepBack(snapshot{text: "abcd"})
	require.True(t, ok)
	require.Equal(t, "abc", prev.text)
	require.True(t, h.canRedo())

	next, ok := h.stepForward(prev)
	require.True(t, ok)
	require.Equal(t, "abcd", next.text)

	h.stepBack(next)
	h.record(snapshot{text: "x"})
	require.False(t, h.canRedo())

	h.reset()
	require.False(t, h.canUndo())
	_, ok = h.stepBack(snapshot{})
	require.False(t, ok)
}

func TestHistoryDisabledWithZeroLimit(t *testing.T) {
	h := newHistory(0)
	h.record(snapshot{text: "a"})
	require.False(t, h.canUndo())
}

func TestEditorSelectionIsCursorLine(t *testing.T) {
	e := newEditorPane(false, 10)
	e.load("first\nsecond\nthird")
	require.Equal(t, 0, e.area.Line())
	require.Equal(t, "first\n", e.selection())

	e.area.CursorDown()
	require.Equal(t, "second\n", e.selection())
	require.True(t, e.cut())
	require.Equal(t, "first\nthird", e.value())

	e.selectAll = true
	require.Equal(t, "first\nthird", e.selection())
}

func TestEditorInsertIsUndoable(t *testing.T) {
	e := newEditorPane(false, 10)
	e.load("body")

	require.True(t, e.insert("> "))
	require.Equal(t, "> body", e.value())
	require.True(t, e.undo())
	require.Equal(t, "body", e.value())
	require.False(t, e.undo())
	require.True(t, e.redo())
	require.Equal(t, "> body", e.value())
}

func TestFindSearchMatches(t *testing.T) {
	content := "Alpha\n\x1b[1mbeta\x1b[0m alpha\ngamma"

	require.Equal(t, []int{0, 1}, findSearchMatches(content, "alpha"))
	require.Equal(t, []int{1}, findSearchMatches(content, "BETA"))
	require.Nil(t, findSearchMatches(content, "  "))
	require.Nil(t, findSearchMatches("", "x"))
}

func TestPreviewSearchWrapsAround(t *testing.T) {
	p := newPreviewPane(echoRenderer)
	p.setSize(40, 2)
	require.NoError(t, p.render("x\ny\nx\nz\nx"))

	require.True(t, p.performSearch("x"))
	require.Equal(t, []int{0, 2, 4}, p.searchMatches)

	p.previousSearchMatch()
	require.Equal(t, 2, p.searchIndex)
	p.nextSearchMatch()
	require.Equal(t, 0, p.searchIndex)

	require.False(t, p.performSearch("nothing"))
	require.Equal(t, "/nothing (0/0)", p.searchStatusLine())
}

func TestPreviewKeepsClosestMatchAfterRerender(t *testing.T) {
	p := newPreviewPane(echoRenderer)
	p.setSize(40, 10)
	require.NoError(t, p.render("x\na\nx\nb\nx"))
	require.True(t, p.performSearch("x"))
	p.nextSearchMatch()
	p.nextSearchMatch()

	require.NoError(t, p.render("x\na\nx\nb\nc\nx"))

	require.Equal(t, []int{0, 2, 5}, p.searchMatches)
	require.Equal(t, 2, p.searchIndex)
}

func TestPreviewRebuildsRendererOnWidthChange(t *testing.T) {
	var widths []int
	p := newPreviewPane(func(w int) (render.Renderer, error) {
		widths = append(widths, w)
		return echoRenderer(w)
	})
	p.setSize(40, 10)
	require.NoError(t, p.render("a"))
	require.NoError(t, p.render("b"))
	p.setSize(60, 10)
	require.NoError(t, p.render("c"))

	require.Equal(t, []int{38, 58}, widths)
	require.Equal(t, "R:c", p.rendered)
}

func TestExplorerPaneWidth(t *testing.T) {
	p := newExplorerPane(nil, 28)
	require.Equal(t, 0, p.width(120))
}

func TestFormatTreeLabel(t *testing.T) {
	tests := []struct {
		name  string
		entry *tree.Node
		depth int
		want  string
	}{
		{"root", &tree.Node{Name: "notes", IsDir: true, Open: true}, 0, "notes/"},
		{"closed dir", &tree.Node{Name: "docs", IsDir: true}, 1, "+ docs/"},
		{"open dir", &tree.Node{Name: "docs", IsDir: true, Open: true}, 2, "  - docs/"},
		{"file", &tree.Node{Name: "a.md"}, 1, "  a.md"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, formatTreeLabel(tt.entry, tt.depth))
		})
	}
}
