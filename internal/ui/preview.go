package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/x/ansi"

	"github.com/kyaoi/thoughtforge/internal/render"
)

// previewPane shows the rendered editor text. Every render replaces the
// whole content; there is no incremental update.
type previewPane struct {
	vp            viewport.Model
	renderer      render.Renderer
	rendererWidth int
	newRenderer   func(width int) (render.Renderer, error)

	source   string
	rendered string

	searchInput   textinput.Model
	searchActive  bool
	searchQuery   string
	searchMatches []int
	searchIndex   int
}

func newPreviewPane(newRenderer func(int) (render.Renderer, error)) previewPane {
	vp := viewport.New(0, 0)
	vp.Style = previewPanelStyle()
	vp.SetHorizontalStep(2)

	searchInput := textinput.New()
	searchInput.Prompt = "/"
	searchInput.CharLimit = 256
	searchInput.Placeholder = "search"
	searchInput.Blur()

	return previewPane{
		vp:            vp,
		newRenderer:   newRenderer,
		rendererWidth: -1,
		searchInput:   searchInput,
		searchIndex:   -1,
	}
}

func (p *previewPane) wrapWidth() int {
	return max(p.vp.Width-p.vp.Style.GetHorizontalFrameSize(), 0)
}

func (p *previewPane) setSize(width, height int) {
	p.vp.Width = max(width, 0)
	p.vp.Height = max(height, 0)
}

// render re-renders source from scratch. A renderer is rebuilt whenever the
// wrap width changes.
func (p *previewPane) render(source string) error {
	p.source = source
	if width := p.wrapWidth(); p.renderer == nil || width != p.rendererWidth {
		r, err := p.newRenderer(width)
		if err != nil {
			return err
		}
		p.renderer = r
		p.rendererWidth = width
	}

	rendered, err := p.renderer.Render(source)
	if err != nil {
		return err
	}
	if source == "" {
		rendered = ""
	}
	p.rendered = rendered
	p.vp.SetContent(rendered)
	p.onContentChanged()
	return nil
}

// clear empties the pane without going through the renderer.
func (p *previewPane) clear() {
	p.source = ""
	p.rendered = ""
	p.vp.SetContent("")
	p.vp.GotoTop()
	p.clearSearch()
}

func (p *previewPane) handleKey(key string, pendingKey *string) bool {
	switch key {
	case "j", "down":
		p.vp.ScrollDown(1)
	case "k", "up":
		p.vp.ScrollUp(1)
	case "ctrl+d", "pgdown":
		p.vp.HalfPageDown()
	case "ctrl+u", "pgup":
		p.vp.HalfPageUp()
	case "h", "left":
		p.vp.ScrollLeft(max(2, p.vp.Width/6))
	case "l", "right":
		p.vp.ScrollRight(max(2, p.vp.Width/6))
	case "g":
		if *pendingKey == "g" {
			p.vp.GotoTop()
			*pendingKey = ""
		} else {
			*pendingKey = "g"
		}
		return true
	case "G":
		p.vp.GotoBottom()
	case "n":
		if len(p.searchMatches) == 0 {
			return false
		}
		p.nextSearchMatch()
	case "N":
		if len(p.searchMatches) == 0 {
			return false
		}
		p.previousSearchMatch()
	default:
		return false
	}
	*pendingKey = ""
	return true
}

func (p *previewPane) enterSearchMode() {
	p.searchActive = true
	p.searchInput.SetValue(p.searchQuery)
	p.searchInput.CursorEnd()
	p.searchInput.Focus()
}

func (p *previewPane) exitSearchMode() {
	p.searchActive = false
	p.searchInput.Blur()
}

func (p *previewPane) clearSearch() {
	p.searchQuery = ""
	p.searchMatches = nil
	p.searchIndex = -1
}

func (p *previewPane) searchStatusLine() string {
	if p.searchQuery == "" {
		return ""
	}
	total := len(p.searchMatches)
	if total == 0 || p.searchIndex < 0 {
		return fmt.Sprintf("/%s (0/0)", p.searchQuery)
	}
	return fmt.Sprintf("/%s (%d/%d)", p.searchQuery, p.searchIndex+1, total)
}

// performSearch jumps to the first match of query and reports whether any
// line matched.
func (p *previewPane) performSearch(query string) bool {
	query = strings.TrimSpace(query)
	p.searchQuery = query
	p.searchMatches = findSearchMatches(p.rendered, query)
	if len(p.searchMatches) == 0 {
		p.searchIndex = -1
		return false
	}
	p.searchIndex = 0
	p.gotoSearchMatch()
	return true
}

func (p *previewPane) nextSearchMatch() {
	if len(p.searchMatches) == 0 {
		return
	}
	p.searchIndex = (p.searchIndex + 1) % len(p.searchMatches)
	p.gotoSearchMatch()
}

func (p *previewPane) previousSearchMatch() {
	if len(p.searchMatches) == 0 {
		return
	}
	if p.searchIndex <= 0 {
		p.searchIndex = len(p.searchMatches) - 1
	} else {
		p.searchIndex--
	}
	p.gotoSearchMatch()
}

func (p *previewPane) gotoSearchMatch() {
	if len(p.searchMatches) == 0 || p.searchIndex < 0 {
		return
	}
	totalLines := strings.Count(p.rendered, "\n") + 1
	targetLine := p.searchMatches[p.searchIndex]
	maxOffset := max(totalLines-p.vp.Height, 0)
	p.vp.SetYOffset(clamp(targetLine, 0, maxOffset))
}

// onContentChanged keeps the active search pointed at the match closest to
// where it was before the re-render.
func (p *previewPane) onContentChanged() {
	if p.searchQuery == "" {
		return
	}

	prevLine := -1
	if p.searchIndex >= 0 && p.searchIndex < len(p.searchMatches) {
		prevLine = p.searchMatches[p.searchIndex]
	}

	p.searchMatches = findSearchMatches(p.rendered, p.searchQuery)
	if len(p.searchMatches) == 0 {
		p.searchIndex = -1
		return
	}
	if prevLine >= 0 {
		p.searchIndex = closestMatchIndex(p.searchMatches, prevLine)
	} else {
		p.searchIndex = 0
	}
}

func findSearchMatches(content, query string) []int {
	query = strings.TrimSpace(query)
	if query == "" || content == "" {
		return nil
	}

	stripped := ansi.Strip(content)
	lowerContent := strings.ToLower(stripped)
	lowerQuery := strings.ToLower(query)

	var matches []int
	offset := 0
	for {
		pos := strings.Index(lowerContent[offset:], lowerQuery)
		if pos == -1 {
			break
		}
		absolute := offset + pos
		line := strings.Count(lowerContent[:absolute], "\n")
		matches = append(matches, line)
		offset = absolute + len(lowerQuery)
	}
	return matches
}

func closestMatchIndex(matches []int, line int) int {
	bestIndex := 0
	bestDiff := absInt(matches[0] - line)
	for i := 1; i < len(matches); i++ {
		if diff := absInt(matches[i] - line); diff < bestDiff {
			bestDiff = diff
			bestIndex = i
		}
	}
	return bestIndex
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func clamp(value, low, high int) int {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}
