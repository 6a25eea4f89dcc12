package ui

import (
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/kyaoi/thoughtforge/internal/session"
	"github.com/kyaoi/thoughtforge/internal/tree"
	"github.com/kyaoi/thoughtforge/internal/view"
)

const (
	headerHeight = 1
	statusHeight = 1
)

type focusArea int

const (
	focusEditor focusArea = iota
	focusPreview
	focusExplorer
)

type statusClearMsg struct{ seq int }

type renderMsg struct{ seq int }

// Model is the editor shell. It owns the file session, the pane layout and
// the explorer, and routes every key to exactly one of them.
type Model struct {
	keys   keyMap
	opts   Options
	logger *slog.Logger

	session  *session.Session
	view     view.State
	explorer *tree.Explorer

	editor  editorPane
	preview previewPane
	tree    explorerPane

	focus      focusArea
	pendingKey string
	width      int
	height     int
	ready      bool

	status      string
	statusIsErr bool
	statusSeq   int
	renderSeq   int

	prompt    *promptDialog
	errDialog *errorDialog
	showHelp  bool

	// startup holds commands queued before the program runs.
	startup tea.Cmd

	watch *watchSet
}

// NewModel constructs the editor shell from the bootstrap state.
func NewModel(state State, opts Options) *Model {
	opts = opts.withDefaults()

	m := &Model{
		keys:    defaultKeyMap(),
		opts:    opts,
		logger:  opts.Logger,
		session: session.New(opts.Logger),
		view:    view.New(),
		editor:  newEditorPane(opts.LineNumbers, opts.HistoryLimit),
		preview: newPreviewPane(opts.NewRenderer),
		focus:   focusEditor,
	}

	explorer, err := tree.NewExplorer(state.RootDir,
		tree.WithSkipDirs(opts.SkipDirs...),
		tree.WithVisible(state.TreeVisible),
	)
	if err != nil {
		m.showError(err)
	} else {
		m.explorer = explorer
	}
	m.tree = newExplorerPane(m.explorer, state.TreePreferredWidth)
	m.rebuildTree("")

	if state.InitialFile != "" {
		m.startup = m.openFile(state.InitialFile)
	}
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	startup := m.startup
	m.startup = nil
	return tea.Batch(
		tea.SetWindowTitle(m.session.Title()),
		startup,
		m.startWatching(),
	)
}

// Title is the current window title.
func (m *Model) Title() string { return m.session.Title() }

// View implements tea.Model.
func (m *Model) View() string {
	switch {
	case m.errDialog != nil:
		return m.overlay(m.errDialog.view(m.width))
	case m.prompt != nil:
		return m.overlay(m.prompt.view())
	case m.showHelp:
		return m.overlay(helpView(m.keys))
	}

	header := headerStyle.Width(max(m.width, 1)).Render(ansi.Truncate(m.Title(), max(m.width-2, 1), "…"))
	body := m.panesView()
	if m.explorerVisible() {
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.tree.vp.View(), body)
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, body, m.statusLine())
}

func (m *Model) overlay(box string) string {
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
	}
	return box
}

func (m *Model) panesView() string {
	var editorView, previewView string
	if m.view.EditorVisible() {
		split := m.view.Mode() == view.Split
		style := editorPanelStyle(borderColor(m.focus == focusEditor),
			split && m.view.Orientation() == view.Horizontal,
			split && m.view.Orientation() == view.Vertical)
		editorView = style.Render(m.editor.area.View())
	}
	if m.view.PreviewVisible() {
		previewView = m.preview.vp.View()
	}

	switch m.view.Mode() {
	case view.EditorOnly:
		return editorView
	case view.ViewerOnly:
		return previewView
	}
	if m.view.Orientation() == view.Vertical {
		return lipgloss.JoinVertical(lipgloss.Left, editorView, previewView)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, editorView, previewView)
}

func (m *Model) statusLine() string {
	width := max(m.width, 1)
	if m.preview.searchActive {
		return statusBarStyle.Width(width).Render(m.preview.searchInput.View())
	}

	text := m.status
	if text == "" {
		text = m.preview.searchStatusLine()
	}
	if text == "" {
		parts := []string{m.view.Mode().String()}
		if m.view.Mode() == view.Split {
			parts = append(parts, m.view.Orientation().String())
		}
		if m.editor.selectAll {
			parts = append(parts, "all selected")
		}
		if m.session.Dirty(m.editor.value()) {
			parts = append(parts, "modified")
		}
		parts = append(parts, "f1 help")
		text = strings.Join(parts, " · ")
	}
	style := statusBarStyle
	if m.statusIsErr {
		style = statusErrorStyle
	}
	return style.Width(width).Render(ansi.Truncate(text, max(width-2, 1), "…"))
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case statusClearMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
			m.statusIsErr = false
		}
		return m, nil

	case renderMsg:
		if msg.seq == m.renderSeq {
			m.renderPreview()
		}
		return m, nil

	case fileEventMsg:
		return m, m.handleFileEvent(msg)

	case fileWatchErrMsg:
		m.logger.Warn("watcher error", "err", msg.err)
		return m, m.waitForFileEvent()

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}

	if m.focus == focusEditor && m.view.EditorVisible() {
		changed, cmd := m.editor.update(msg)
		if changed {
			return m, tea.Batch(cmd, m.scheduleRender())
		}
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.errDialog != nil {
		switch msg.String() {
		case "enter", "esc", " ":
			m.errDialog = nil
		}
		return nil
	}
	if m.prompt != nil {
		return m.handlePromptKey(msg)
	}
	if m.showHelp {
		switch msg.String() {
		case "f1", "esc", "q":
			m.showHelp = false
		}
		return nil
	}
	if m.preview.searchActive {
		return m.handleSearchKey(msg)
	}

	if cmd, handled := m.handleGlobalKey(msg); handled {
		return cmd
	}

	key := msg.String()
	if key != "g" {
		m.pendingKey = ""
	}

	switch m.focus {
	case focusExplorer:
		return m.handleTreeKey(key)
	case focusPreview:
		if key == "/" {
			m.preview.enterSearchMode()
			return nil
		}
		if m.preview.handleKey(key, &m.pendingKey) {
			return nil
		}
		var cmd tea.Cmd
		m.preview.vp, cmd = m.preview.vp.Update(msg)
		return cmd
	default:
		return m.handleEditorKey(msg)
	}
}

func (m *Model) handleGlobalKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit, true
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return nil, true
	case key.Matches(msg, m.keys.New):
		return m.newDocument(), true
	case key.Matches(msg, m.keys.Open):
		return m.openPrompt(promptOpen), true
	case key.Matches(msg, m.keys.Save):
		return m.save(), true
	case key.Matches(msg, m.keys.SaveAs):
		return m.openPrompt(promptSaveAs), true
	case key.Matches(msg, m.keys.OpenFolder):
		return m.openPrompt(promptOpenFolder), true
	case key.Matches(msg, m.keys.EditorOnly):
		return m.setMode(view.EditorOnly), true
	case key.Matches(msg, m.keys.ViewerOnly):
		return m.setMode(view.ViewerOnly), true
	case key.Matches(msg, m.keys.Split):
		return m.setMode(view.Split), true
	case key.Matches(msg, m.keys.ToggleOrientation):
		m.view.ToggleOrientation()
		m.relayout()
		return nil, true
	case key.Matches(msg, m.keys.GrowEditor):
		m.view.Resize(view.RatioStep)
		m.relayout()
		return nil, true
	case key.Matches(msg, m.keys.ShrinkEditor):
		m.view.Resize(-view.RatioStep)
		m.relayout()
		return nil, true
	case key.Matches(msg, m.keys.ToggleExplorer):
		m.toggleExplorer()
		return nil, true
	case key.Matches(msg, m.keys.CycleFocus):
		return m.cycleFocus(), true
	}
	return nil, false
}

func (m *Model) handleEditorKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Undo):
		if m.editor.undo() {
			return m.scheduleRender()
		}
		return nil
	case key.Matches(msg, m.keys.Redo):
		if m.editor.redo() {
			return m.scheduleRender()
		}
		return nil
	case key.Matches(msg, m.keys.SelectAll):
		m.editor.selectAll = true
		return nil
	case key.Matches(msg, m.keys.Copy):
		return m.copySelection(false)
	case key.Matches(msg, m.keys.Cut):
		return m.copySelection(true)
	case key.Matches(msg, m.keys.Paste):
		return m.paste()
	}

	m.editor.selectAll = false
	changed, cmd := m.editor.update(msg)
	if changed {
		return tea.Batch(cmd, m.scheduleRender())
	}
	return cmd
}

func (m *Model) handleTreeKey(key string) tea.Cmd {
	switch key {
	case "j", "down":
		m.tree.move(1, true)
	case "k", "up":
		m.tree.move(-1, true)
	case "ctrl+d", "pgdown":
		m.tree.move(max(1, m.tree.vp.Height/2), true)
	case "ctrl+u", "pgup":
		m.tree.move(-max(1, m.tree.vp.Height/2), true)
	case "enter", "l", "right":
		return m.activateTreeEntry()
	case "h", "left":
		m.closeOrAscend()
	case "g":
		if m.pendingKey == "g" {
			m.pendingKey = ""
			m.tree.move(-len(m.tree.lines), true)
		} else {
			m.pendingKey = "g"
		}
	case "G":
		m.tree.move(len(m.tree.lines), true)
	}
	return nil
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		query := strings.TrimSpace(m.preview.searchInput.Value())
		m.preview.exitSearchMode()
		if query == "" {
			m.preview.clearSearch()
			return nil
		}
		if !m.preview.performSearch(query) {
			return m.setErrorStatus("no match for " + query)
		}
		return nil
	case tea.KeyEsc:
		m.preview.exitSearchMode()
		return nil
	}
	var cmd tea.Cmd
	m.preview.searchInput, cmd = m.preview.searchInput.Update(msg)
	return cmd
}

func (m *Model) handlePromptKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		m.prompt = nil
		return nil
	case tea.KeyEnter:
		p := m.prompt
		m.prompt = nil
		return m.submitPrompt(p)
	}
	var cmd tea.Cmd
	m.prompt.input, cmd = m.prompt.input.Update(msg)
	return cmd
}

// scheduleRender re-renders the preview now, or after the debounce window
// when one is configured. Only the latest scheduled render runs.
func (m *Model) scheduleRender() tea.Cmd {
	if m.opts.PreviewDebounce <= 0 {
		m.renderPreview()
		return nil
	}
	m.renderSeq++
	seq := m.renderSeq
	return tea.Tick(m.opts.PreviewDebounce, func(time.Time) tea.Msg {
		return renderMsg{seq: seq}
	})
}

func (m *Model) renderPreview() {
	if err := m.preview.render(m.editor.value()); err != nil {
		m.logger.Warn("preview render failed", "err", err)
		m.status = "preview: " + err.Error()
		m.statusIsErr = true
	}
}

// setStatus shows an ephemeral message that clears after the status timeout.
func (m *Model) setStatus(text string) tea.Cmd {
	m.status = text
	m.statusIsErr = false
	return m.statusTimer()
}

func (m *Model) setErrorStatus(text string) tea.Cmd {
	m.status = text
	m.statusIsErr = true
	return m.statusTimer()
}

func (m *Model) statusTimer() tea.Cmd {
	m.statusSeq++
	seq := m.statusSeq
	return tea.Tick(m.opts.StatusTimeout, func(time.Time) tea.Msg {
		return statusClearMsg{seq: seq}
	})
}

func (m *Model) showError(err error) {
	m.logger.Error("operation failed", "err", err)
	m.errDialog = newErrorDialog(err)
}

func (m *Model) explorerVisible() bool {
	return m.explorer != nil && m.explorer.Visible()
}

func (m *Model) resize(width, height int) {
	if width <= 0 || height <= headerHeight+statusHeight {
		return
	}
	m.width = width
	m.height = height
	m.ready = true
	m.relayout()
}

// relayout sizes every pane for the current terminal and view state, then
// re-renders the preview if its wrap width changed.
func (m *Model) relayout() {
	m.fixFocus()
	if !m.ready {
		return
	}
	bodyHeight := max(m.height-headerHeight-statusHeight, 1)

	treeWidth := m.tree.width(m.width)
	m.tree.vp.Width = treeWidth
	m.tree.vp.Height = bodyHeight
	m.tree.ensureSelectionVisible()

	layout := m.view.Layout(m.width-treeWidth, bodyHeight)
	if !layout.Editor.Empty() {
		w, h := layout.Editor.Width, layout.Editor.Height
		if m.view.Mode() == view.Split {
			if m.view.Orientation() == view.Horizontal {
				w--
			} else {
				h--
			}
		}
		m.editor.setSize(w, h)
	}

	m.preview.setSize(layout.Preview.Width, layout.Preview.Height)
	if !layout.Preview.Empty() && m.preview.wrapWidth() != m.preview.rendererWidth {
		m.renderPreview()
	}
}

func (m *Model) setMode(mode view.Mode) tea.Cmd {
	m.view.SetMode(mode)
	m.relayout()
	return m.focusCmd()
}

func (m *Model) toggleExplorer() {
	if m.explorer == nil {
		return
	}
	m.explorer.ToggleVisible()
	m.relayout()
	m.tree.draw(m.focus == focusExplorer)
}

// fixFocus moves focus off a pane that is no longer visible.
func (m *Model) fixFocus() {
	switch {
	case m.focus == focusExplorer && !m.explorerVisible():
		m.focus = focusEditor
	case m.focus == focusPreview && !m.view.PreviewVisible():
		m.focus = focusEditor
	}
	if m.focus == focusEditor && !m.view.EditorVisible() {
		m.focus = focusPreview
	}
	m.applyFocus()
}

func (m *Model) applyFocus() {
	if m.focus == focusEditor {
		m.editor.area.Focus()
	} else {
		m.editor.blur()
	}
}

func (m *Model) focusCmd() tea.Cmd {
	if m.focus == focusEditor {
		return m.editor.focus()
	}
	return nil
}

func (m *Model) cycleFocus() tea.Cmd {
	order := []focusArea{focusExplorer, focusEditor, focusPreview}
	visible := func(f focusArea) bool {
		switch f {
		case focusExplorer:
			return m.explorerVisible()
		case focusEditor:
			return m.view.EditorVisible()
		default:
			return m.view.PreviewVisible()
		}
	}
	start := 0
	for i, f := range order {
		if f == m.focus {
			start = i
		}
	}
	for step := 1; step <= len(order); step++ {
		next := order[(start+step)%len(order)]
		if visible(next) {
			m.focus = next
			break
		}
	}
	m.applyFocus()
	m.tree.draw(m.focus == focusExplorer)
	return m.focusCmd()
}
