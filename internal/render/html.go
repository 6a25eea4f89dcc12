package render

import (
	"bytes"
	"fmt"
	"html"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	ghtml "github.com/yuin/goldmark/renderer/html"
)

// HTML renders markdown to HTML with GitHub flavoured extensions.
type HTML struct {
	engine goldmark.Markdown
}

// NewHTML builds an HTML renderer. Raw HTML in the source is passed through
// only when unsafe is set.
func NewHTML(unsafe bool) *HTML {
	var rendererOptions []goldmark.Option
	if unsafe {
		rendererOptions = append(rendererOptions, goldmark.WithRendererOptions(ghtml.WithUnsafe()))
	}
	opts := append([]goldmark.Option{
		goldmark.WithExtensions(extension.GFM, extension.Linkify, extension.TaskList),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	}, rendererOptions...)
	return &HTML{engine: goldmark.New(opts...)}
}

// Render implements Renderer. Front matter is dropped from the output.
func (h *HTML) Render(markdown string) (string, error) {
	doc := SplitFrontMatter(markdown)
	var buf bytes.Buffer
	if err := h.engine.Convert([]byte(doc.Body), &buf); err != nil {
		return "", fmt.Errorf("markdown convert: %w", err)
	}
	return buf.String(), nil
}

// Page renders a standalone HTML document. The front matter title is used
// for <title>, falling back to fallbackTitle.
func (h *HTML) Page(markdown, fallbackTitle string) ([]byte, error) {
	body, err := h.Render(markdown)
	if err != nil {
		return nil, err
	}
	title := SplitFrontMatter(markdown).Title()
	if title == "" {
		title = fallbackTitle
	}

	var buf bytes.Buffer
	buf.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&buf, "<title>%s</title>\n", html.EscapeString(title))
	buf.WriteString("</head>\n<body>\n")
	buf.WriteString(body)
	buf.WriteString("</body>\n</html>\n")
	return buf.Bytes(), nil
}
