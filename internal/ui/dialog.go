package ui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	"github.com/kyaoi/thoughtforge/internal/session"
)

type promptKind int

const (
	promptOpen promptKind = iota
	promptSaveAs
	promptOpenFolder
)

// fileFilter is the filter advertised by the Open and Save As prompts.
const fileFilter = "*.md;;*.*"

// promptDialog asks for a path. Enter submits, Esc cancels.
type promptDialog struct {
	kind  promptKind
	input textinput.Model
}

func newPromptDialog(kind promptKind, initial string) *promptDialog {
	input := textinput.New()
	input.Prompt = "> "
	input.CharLimit = 4096
	input.Width = 56
	input.SetValue(initial)
	input.CursorEnd()
	input.Focus()
	return &promptDialog{kind: kind, input: input}
}

func (d *promptDialog) title() string {
	switch d.kind {
	case promptSaveAs:
		return "Save As"
	case promptOpenFolder:
		return "Choose folder"
	default:
		return "Open"
	}
}

func (d *promptDialog) hint() string {
	if d.kind == promptOpenFolder {
		return "directory · enter to choose · esc to cancel"
	}
	return fileFilter + " · enter to confirm · esc to cancel"
}

func (d *promptDialog) value() string {
	return strings.TrimSpace(d.input.Value())
}

func (d *promptDialog) view() string {
	return helpBoxStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		dialogTitleStyle.Render(d.title()),
		"",
		d.input.View(),
		"",
		dialogHintStyle.Render(d.hint()),
	))
}

// errorDialog blocks input until dismissed.
type errorDialog struct {
	title   string
	message string
}

func newErrorDialog(err error) *errorDialog {
	title := "Error"
	var ioErr *session.IOError
	if errors.As(err, &ioErr) {
		switch ioErr.Op {
		case session.OpOpen:
			title = "Could not open file"
		case session.OpSave:
			title = "Could not save file"
		}
	}
	return &errorDialog{title: title, message: err.Error()}
}

func (d *errorDialog) view(width int) string {
	message := d.message
	if width > 12 {
		message = lipgloss.NewStyle().Width(min(width-12, 72)).Render(message)
	}
	return errorBoxStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		errorTitleStyle.Render(d.title),
		"",
		message,
		"",
		dialogHintStyle.Render("enter / esc: OK"),
	))
}

func helpView(keys keyMap) string {
	var rows []string
	rows = append(rows, dialogTitleStyle.Render("Help (f1 / esc to close)"), "")
	for i, section := range keys.helpSections() {
		if i > 0 {
			rows = append(rows, "")
		}
		for _, b := range section {
			h := b.Help()
			rows = append(rows, padRight(h.Key, 24)+h.Desc)
		}
	}
	rows = append(rows, "",
		padRight("explorer: j/k enter h/l", 24)+"move, open / expand, collapse",
		padRight("preview: j/k g/G / n/N", 24)+"scroll, top/bottom, search, next/prev match",
	)
	return helpBoxStyle.Render(strings.Join(rows, "\n"))
}

func padRight(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s + " "
}
