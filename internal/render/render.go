// Package render turns markdown source into displayable output: ANSI text
// for the preview pane and HTML for export.
package render

// Renderer converts markdown text into rich text.
type Renderer interface {
	Render(markdown string) (string, error)
}

// Func adapts a plain function to Renderer.
type Func func(markdown string) (string, error)

func (f Func) Render(markdown string) (string, error) { return f(markdown) }
