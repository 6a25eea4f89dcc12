package ui

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
)

// editorPane is the text buffer. The textarea does the editing; the pane
// adds undo/redo, whole-document selection and line-wise clipboard commands.
type editorPane struct {
	area      textarea.Model
	history   history
	selectAll bool
}

func newEditorPane(lineNumbers bool, historyLimit int) editorPane {
	area := textarea.New()
	area.Prompt = ""
	area.Placeholder = "Start writing markdown…"
	area.ShowLineNumbers = lineNumbers
	area.CharLimit = 0
	area.MaxHeight = 0
	area.Focus()
	return editorPane{
		area:    area,
		history: newHistory(historyLimit),
	}
}

func (e *editorPane) value() string { return e.area.Value() }

func (e *editorPane) snapshot() snapshot {
	return snapshot{text: e.area.Value(), row: e.area.Line()}
}

// maxEditorLines is the most lines the textarea keeps.
const maxEditorLines = 10000

// errNotEditable is returned by load when the buffer would not hold text
// exactly as given.
var errNotEditable = errors.New("content cannot be edited without changing it")

// editorFit reports why the textarea would not hold text byte for byte.
func editorFit(text string) error {
	if n := strings.Count(text, "\n") + 1; n > maxEditorLines {
		return fmt.Errorf("%w: %d lines (limit %d)", errNotEditable, n, maxEditorLines)
	}
	var tabs, returns, controls, invalid bool
	for _, r := range text {
		switch {
		case r == '\n':
		case r == '\t':
			tabs = true
		case r == '\r':
			returns = true
		case r == utf8.RuneError:
			invalid = true
		case unicode.IsControl(r):
			controls = true
		}
	}
	var found []string
	if tabs {
		found = append(found, "tab characters")
	}
	if returns {
		found = append(found, "mixed line endings")
	}
	if controls {
		found = append(found, "control characters")
	}
	if invalid {
		found = append(found, "U+FFFD replacement characters")
	}
	if len(found) > 0 {
		return fmt.Errorf("%w: contains %s", errNotEditable, strings.Join(found, ", "))
	}
	return nil
}

// load replaces the buffer and forgets its history. Text the textarea would
// alter is refused and the previous buffer is kept.
func (e *editorPane) load(text string) error {
	if err := editorFit(text); err != nil {
		return err
	}
	prev := e.snapshot()
	e.area.SetValue(text)
	if e.area.Value() != text {
		e.restore(prev)
		return errNotEditable
	}
	e.restoreRow(0)
	e.history.reset()
	e.selectAll = false
	return nil
}

// update forwards msg to the textarea and reports whether the text changed.
func (e *editorPane) update(msg tea.Msg) (bool, tea.Cmd) {
	before := e.snapshot()
	var cmd tea.Cmd
	e.area, cmd = e.area.Update(msg)
	if e.area.Value() == before.text {
		return false, cmd
	}
	e.selectAll = false
	e.history.record(before)
	return true, cmd
}

func (e *editorPane) undo() bool {
	prev, ok := e.history.stepBack(e.snapshot())
	if !ok {
		return false
	}
	e.restore(prev)
	return true
}

func (e *editorPane) redo() bool {
	next, ok := e.history.stepForward(e.snapshot())
	if !ok {
		return false
	}
	e.restore(next)
	return true
}

// replace sets new text as one undoable edit.
func (e *editorPane) replace(text string, row int) bool {
	if text == e.area.Value() {
		return false
	}
	e.history.record(e.snapshot())
	e.restore(snapshot{text: text, row: row})
	return true
}

// insert types text at the cursor as one undoable edit.
func (e *editorPane) insert(text string) bool {
	if text == "" {
		return false
	}
	before := e.snapshot()
	e.area.InsertString(text)
	if e.area.Value() == before.text {
		return false
	}
	e.selectAll = false
	e.history.record(before)
	return true
}

// selection returns the text Copy and Cut act on: the whole document after
// SelectAll, the cursor line otherwise.
func (e *editorPane) selection() string {
	if e.selectAll {
		return e.area.Value()
	}
	lines := strings.Split(e.area.Value(), "\n")
	row := e.area.Line()
	if row < 0 || row >= len(lines) {
		return ""
	}
	return lines[row] + "\n"
}

// cut removes what selection returns and reports whether the text changed.
func (e *editorPane) cut() bool {
	if e.selectAll {
		e.selectAll = false
		return e.replace("", 0)
	}
	lines := strings.Split(e.area.Value(), "\n")
	row := e.area.Line()
	if row < 0 || row >= len(lines) {
		return false
	}
	if len(lines) == 1 {
		return e.replace("", 0)
	}
	lines = append(lines[:row], lines[row+1:]...)
	return e.replace(strings.Join(lines, "\n"), min(row, len(lines)-1))
}

func (e *editorPane) restore(s snapshot) {
	e.area.SetValue(s.text)
	e.restoreRow(s.row)
	e.selectAll = false
}

// restoreRow puts the cursor at the start of row. SetValue leaves the
// cursor at the end of the buffer, so walking up is enough.
func (e *editorPane) restoreRow(row int) {
	for steps := e.area.Length() + e.area.LineCount(); steps > 0 && e.area.Line() > row; steps-- {
		e.area.CursorUp()
	}
	e.area.CursorStart()
}

func (e *editorPane) setSize(width, height int) {
	e.area.SetWidth(max(width, 1))
	e.area.SetHeight(max(height, 1))
}

func (e *editorPane) focus() tea.Cmd { return e.area.Focus() }

func (e *editorPane) blur() { e.area.Blur() }
