package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the shell-level bindings. Bindings whose canonical chord
// cannot be reported by terminals in legacy input mode (ctrl+shift+letter,
// ctrl+digit) also carry a reachable alt chord.
type keyMap struct {
	New        key.Binding
	Open       key.Binding
	Save       key.Binding
	SaveAs     key.Binding
	OpenFolder key.Binding

	EditorOnly        key.Binding
	ViewerOnly        key.Binding
	Split             key.Binding
	ToggleOrientation key.Binding
	ToggleExplorer    key.Binding
	GrowEditor        key.Binding
	ShrinkEditor      key.Binding
	CycleFocus        key.Binding

	Undo      key.Binding
	Redo      key.Binding
	Cut       key.Binding
	Copy      key.Binding
	Paste     key.Binding
	SelectAll key.Binding

	Help key.Binding
	Quit key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		New:        key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "new document")),
		Open:       key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "open file")),
		Save:       key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		SaveAs:     key.NewBinding(key.WithKeys("ctrl+shift+s", "alt+s"), key.WithHelp("ctrl+shift+s / alt+s", "save as")),
		OpenFolder: key.NewBinding(key.WithKeys("ctrl+shift+o", "alt+o"), key.WithHelp("ctrl+shift+o / alt+o", "open folder")),

		EditorOnly:        key.NewBinding(key.WithKeys("ctrl+1", "alt+1"), key.WithHelp("ctrl+1 / alt+1", "editor only")),
		ViewerOnly:        key.NewBinding(key.WithKeys("ctrl+2", "alt+2"), key.WithHelp("ctrl+2 / alt+2", "viewer only")),
		Split:             key.NewBinding(key.WithKeys("ctrl+3", "alt+3"), key.WithHelp("ctrl+3 / alt+3", "split view")),
		ToggleOrientation: key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "toggle orientation")),
		ToggleExplorer:    key.NewBinding(key.WithKeys("ctrl+e"), key.WithHelp("ctrl+e", "toggle explorer")),
		GrowEditor:        key.NewBinding(key.WithKeys("alt+="), key.WithHelp("alt+=", "grow editor")),
		ShrinkEditor:      key.NewBinding(key.WithKeys("alt+-"), key.WithHelp("alt+-", "shrink editor")),
		CycleFocus:        key.NewBinding(key.WithKeys("ctrl+w"), key.WithHelp("ctrl+w", "next pane")),

		Undo:      key.NewBinding(key.WithKeys("ctrl+z"), key.WithHelp("ctrl+z", "undo")),
		Redo:      key.NewBinding(key.WithKeys("ctrl+y", "ctrl+shift+z"), key.WithHelp("ctrl+y / ctrl+shift+z", "redo")),
		Cut:       key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "cut line / selection")),
		Copy:      key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "copy line / selection")),
		Paste:     key.NewBinding(key.WithKeys("ctrl+v"), key.WithHelp("ctrl+v", "paste")),
		SelectAll: key.NewBinding(key.WithKeys("ctrl+a"), key.WithHelp("ctrl+a", "select all")),

		Help: key.NewBinding(key.WithKeys("f1"), key.WithHelp("f1", "help")),
		Quit: key.NewBinding(key.WithKeys("ctrl+q"), key.WithHelp("ctrl+q", "quit")),
	}
}

// helpSections groups bindings for the help overlay.
func (k keyMap) helpSections() [][]key.Binding {
	return [][]key.Binding{
		{k.New, k.Open, k.Save, k.SaveAs, k.OpenFolder},
		{k.EditorOnly, k.ViewerOnly, k.Split, k.ToggleOrientation, k.ToggleExplorer, k.GrowEditor, k.ShrinkEditor, k.CycleFocus},
		{k.Undo, k.Redo, k.Cut, k.Copy, k.Paste, k.SelectAll},
		{k.Help, k.Quit},
	}
}
