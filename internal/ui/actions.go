package ui

import (
	"errors"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kyaoi/thoughtforge/internal/session"
)

// newDocument detaches the session and clears both panes.
func (m *Model) newDocument() tea.Cmd {
	m.session.Reset()
	m.editor.load("")
	m.preview.clear()
	m.logger.Info("new document")
	m.syncWatches()
	return tea.Batch(tea.SetWindowTitle(m.Title()), m.focusEditorPane())
}

// openFile loads path into the editor. On failure an error dialog is shown
// and the session and buffer are left as they were.
func (m *Model) openFile(path string) tea.Cmd {
	f, err := m.session.Read(m.resolvePath(path))
	if err != nil {
		m.showError(err)
		return nil
	}
	if err := m.editor.load(f.Text); err != nil {
		m.showError(&session.IOError{Op: session.OpOpen, Path: f.Path, Err: err})
		return nil
	}
	m.session.Attach(f)
	m.preview.vp.GotoTop()
	m.renderPreview()
	m.revealInTree(m.session.Path())
	m.syncWatches()
	return tea.Batch(
		tea.SetWindowTitle(m.Title()),
		m.setStatus("Opened "+m.session.Path()),
	)
}

// save writes to the attached file, or asks for a name when untitled.
func (m *Model) save() tea.Cmd {
	err := m.session.Save(m.editor.value())
	if errors.Is(err, session.ErrNoPath) {
		return m.openPrompt(promptSaveAs)
	}
	if err != nil {
		m.showError(err)
		return nil
	}
	return m.setStatus("Saved " + m.session.Path())
}

func (m *Model) saveAs(path string) tea.Cmd {
	saved, err := m.session.SaveAs(m.resolvePath(path), m.editor.value())
	if err != nil {
		m.showError(err)
		return nil
	}
	if err := m.refreshExplorer(); err != nil {
		m.logger.Warn("explorer refresh failed", "err", err)
	}
	m.revealInTree(saved)
	m.syncWatches()
	return tea.Batch(
		tea.SetWindowTitle(m.Title()),
		m.setStatus("Saved "+saved),
	)
}

// openFolder re-roots the explorer. An invalid directory keeps the old root.
func (m *Model) openFolder(dir string) tea.Cmd {
	if m.explorer == nil {
		return nil
	}
	dir = m.resolvePath(dir)
	if err := m.explorer.SetRoot(dir); err != nil {
		m.showError(err)
		return nil
	}
	m.tree.selection = 0
	m.rebuildTree("")
	m.revealInTree(m.session.Path())
	m.syncWatches()
	m.logger.Info("explorer root changed", "dir", m.explorer.RootDir())
	return m.setStatus("Browsing " + m.explorer.RootDir())
}

func (m *Model) openPrompt(kind promptKind) tea.Cmd {
	initial := ""
	switch kind {
	case promptSaveAs:
		if path := m.session.Path(); path != "" {
			initial = m.displayPath(path)
		}
	case promptOpenFolder:
		if m.explorer != nil {
			initial = m.explorer.RootDir()
		}
	}
	m.prompt = newPromptDialog(kind, initial)
	return nil
}

// submitPrompt runs the command a prompt was opened for. An empty answer is
// treated like a cancel.
func (m *Model) submitPrompt(p *promptDialog) tea.Cmd {
	value := p.value()
	if value == "" {
		return nil
	}
	switch p.kind {
	case promptSaveAs:
		return m.saveAs(value)
	case promptOpenFolder:
		return m.openFolder(value)
	default:
		return m.openFile(value)
	}
}

// resolvePath makes relative prompt answers relative to the explorer root.
func (m *Model) resolvePath(path string) string {
	if path == "" || filepath.IsAbs(path) || m.explorer == nil {
		return path
	}
	return filepath.Join(m.explorer.RootDir(), path)
}

// displayPath shortens path for prompts when it lies under the root.
func (m *Model) displayPath(path string) string {
	if m.explorer == nil {
		return path
	}
	if rel, ok := m.explorer.RelPath(path); ok && rel != "" {
		return filepath.FromSlash(rel)
	}
	return path
}

func (m *Model) focusEditorPane() tea.Cmd {
	if !m.view.EditorVisible() {
		return nil
	}
	m.focus = focusEditor
	m.applyFocus()
	m.tree.draw(false)
	return m.focusCmd()
}

func (m *Model) copySelection(cut bool) tea.Cmd {
	text := m.editor.selection()
	if text == "" {
		return nil
	}
	if err := m.opts.Clipboard.WriteAll(text); err != nil {
		m.logger.Warn("clipboard write failed", "err", err)
		return m.setErrorStatus("clipboard: " + err.Error())
	}
	if cut && m.editor.cut() {
		return m.scheduleRender()
	}
	return nil
}

func (m *Model) paste() tea.Cmd {
	text, err := m.opts.Clipboard.ReadAll()
	if err != nil {
		m.logger.Warn("clipboard read failed", "err", err)
		return m.setErrorStatus("clipboard: " + err.Error())
	}
	var changed bool
	if m.editor.selectAll {
		changed = m.editor.replace(text, strings.Count(text, "\n"))
		m.editor.area.CursorEnd()
	} else {
		changed = m.editor.insert(text)
	}
	if changed {
		return m.scheduleRender()
	}
	return nil
}

// activateTreeEntry opens a markdown file or expands/collapses a directory.
func (m *Model) activateTreeEntry() tea.Cmd {
	node := m.tree.current()
	if node == nil || m.explorer == nil {
		return nil
	}
	path, open, err := m.explorer.Activate(node)
	if err != nil {
		m.logger.Warn("explorer activate failed", "path", node.Path, "err", err)
	}
	if !open {
		m.rebuildTree(node.Path)
		return nil
	}
	return m.openFile(path)
}

// closeOrAscend collapses the selected directory, or jumps to the parent of
// the selected entry.
func (m *Model) closeOrAscend() {
	node := m.tree.current()
	if node == nil {
		return
	}
	if node.IsDir && node.Open && node.Parent != nil {
		node.Open = false
		m.rebuildTree(node.Path)
		return
	}
	if node.Parent != nil {
		m.rebuildTree(node.Parent.Path)
	}
}

func (m *Model) revealInTree(absPath string) {
	if m.explorer == nil || absPath == "" {
		return
	}
	rel, ok := m.explorer.RelPath(absPath)
	if !ok {
		return
	}
	if m.explorer.Reveal(rel) == nil {
		return
	}
	m.rebuildTree(rel)
}

// refreshExplorer re-reads the tree from disk and keeps the selection.
func (m *Model) refreshExplorer() error {
	if m.explorer == nil {
		return nil
	}
	selected := m.tree.selectedPath()
	if err := m.explorer.Refresh(); err != nil {
		return err
	}
	m.rebuildTree(selected)
	return nil
}

func (m *Model) rebuildTree(selectPath string) {
	if err := m.tree.rebuild(selectPath, m.focus == focusExplorer); err != nil {
		m.logger.Warn("explorer listing failed", "err", err)
	}
	m.syncWatches()
}
