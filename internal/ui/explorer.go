package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"

	"github.com/kyaoi/thoughtforge/internal/tree"
)

const (
	minTreePanelWidth = 18
	defaultTreeWidth  = 28
	minContentWidth   = 20
)

// explorerPane draws the explorer as a flat list of expanded nodes.
type explorerPane struct {
	explorer       *tree.Explorer
	vp             viewport.Model
	lines          []treeLine
	selection      int
	preferredWidth int
}

type treeLine struct {
	entry *tree.Node
	label string
}

func newExplorerPane(explorer *tree.Explorer, preferredWidth int) explorerPane {
	vp := viewport.New(0, 0)
	vp.Style = treePanelStyle(blurBorderColor)
	vp.MouseWheelEnabled = false
	return explorerPane{
		explorer:       explorer,
		vp:             vp,
		preferredWidth: preferredWidth,
	}
}

// width is the panel width for a terminal totalWidth cells wide.
func (p *explorerPane) width(totalWidth int) int {
	if p.explorer == nil || !p.explorer.Visible() {
		return 0
	}
	preferred := p.preferredWidth
	if preferred <= 0 {
		preferred = defaultTreeWidth
	}

	frame := p.vp.Style.GetHorizontalFrameSize()
	minPanel := max(minTreePanelWidth-frame, 0)
	maxPanel := max(totalWidth/2-frame, minPanel)
	panelContentWidth := clamp(preferred, minPanel, maxPanel)

	width := panelContentWidth + frame
	if totalWidth-width < minContentWidth {
		width = max(totalWidth-minContentWidth, 0)
	}
	return min(width, totalWidth)
}

// rebuild re-flattens the tree and selects path when it is visible.
func (p *explorerPane) rebuild(selectPath string, focused bool) error {
	if p.explorer == nil {
		p.lines = nil
		return nil
	}
	nodes, err := p.explorer.Lines()
	lines := make([]treeLine, 0, len(nodes))
	for _, n := range nodes {
		lines = append(lines, treeLine{entry: n.Node, label: formatTreeLabel(n.Node, n.Depth)})
	}
	p.lines = lines

	if idx := p.indexForPath(selectPath); idx >= 0 {
		p.selection = idx
	} else {
		p.selection = clamp(p.selection, 0, max(len(p.lines)-1, 0))
	}
	p.draw(focused)
	return err
}

func (p *explorerPane) draw(focused bool) {
	p.vp.Style = treePanelStyle(borderColor(focused))
	var b strings.Builder
	for i, line := range p.lines {
		switch {
		case i == p.selection && focused:
			b.WriteString(treeSelectedActive.Render(line.label))
		case i == p.selection:
			b.WriteString(treeSelectedInactive.Render(line.label))
		default:
			b.WriteString(treeLineStyle.Render(line.label))
		}
		if i < len(p.lines)-1 {
			b.WriteByte('\n')
		}
	}
	p.vp.SetContent(b.String())
	p.ensureSelectionVisible()
}

func (p *explorerPane) move(delta int, focused bool) {
	if len(p.lines) == 0 {
		return
	}
	p.selection = clamp(p.selection+delta, 0, len(p.lines)-1)
	p.draw(focused)
}

func (p *explorerPane) current() *tree.Node {
	if p.selection < 0 || p.selection >= len(p.lines) {
		return nil
	}
	return p.lines[p.selection].entry
}

func (p *explorerPane) selectedPath() string {
	if n := p.current(); n != nil {
		return n.Path
	}
	return ""
}

func (p *explorerPane) indexForPath(path string) int {
	for i, line := range p.lines {
		if line.entry.Path == path {
			return i
		}
	}
	return -1
}

func (p *explorerPane) ensureSelectionVisible() {
	if len(p.lines) == 0 || p.vp.Height == 0 {
		return
	}
	if p.selection < p.vp.YOffset {
		p.vp.SetYOffset(p.selection)
		return
	}
	bottom := p.vp.YOffset + p.vp.Height - 1
	if p.selection > bottom {
		p.vp.SetYOffset(p.selection - p.vp.Height + 1)
	}
}

func formatTreeLabel(entry *tree.Node, depth int) string {
	if depth == 0 {
		return entry.Name + "/"
	}
	indent := strings.Repeat("  ", depth-1)
	indicator := "  "
	if entry.IsDir {
		if entry.Open {
			indicator = "- "
		} else {
			indicator = "+ "
		}
	}
	label := indent + indicator + entry.Name
	if entry.IsDir {
		label += "/"
	}
	return label
}
