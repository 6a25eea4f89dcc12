package render

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	styles "github.com/charmbracelet/glamour/styles"
)

// DefaultStyle is the glamour style used when none is configured.
const DefaultStyle = styles.TokyoNightStyle

// ValidStyle reports whether name is one of glamour's built-in styles.
func ValidStyle(name string) bool {
	_, ok := styles.DefaultStyles[name]
	return ok
}

// Terminal renders markdown to ANSI text for the preview pane.
type Terminal struct {
	renderer    *glamour.TermRenderer
	frontMatter bool
}

// NewTerminal builds a renderer wrapping at width cells. A width of zero
// disables wrapping. With frontMatter set, a leading metadata block is shown
// as a table instead of raw text.
func NewTerminal(style string, width int, frontMatter bool) (*Terminal, error) {
	if style == "" {
		style = DefaultStyle
	}
	if !ValidStyle(style) {
		return nil, fmt.Errorf("unknown preview style %q", style)
	}
	if width < 0 {
		width = 0
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	return &Terminal{renderer: r, frontMatter: frontMatter}, nil
}

// Render implements Renderer.
func (t *Terminal) Render(markdown string) (string, error) {
	if t.frontMatter {
		doc := SplitFrontMatter(markdown)
		markdown = metaTable(doc.Meta) + doc.Body
	}
	return t.renderer.Render(markdown)
}
