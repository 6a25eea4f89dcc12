package render

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/adrg/frontmatter"
)

// Document is markdown source split into front matter and body.
type Document struct {
	Meta map[string]any
	Body string
}

// Title returns the front matter title, if any.
func (d Document) Title() string {
	if v, ok := d.Meta["title"]; ok {
		return strings.TrimSpace(fmt.Sprint(v))
	}
	return ""
}

// SplitFrontMatter separates a leading YAML/TOML/JSON front matter block from
// the body. Text without front matter, or with a block that does not parse,
// comes back unchanged as the body.
func SplitFrontMatter(source string) Document {
	var meta map[string]any
	body, err := frontmatter.Parse(strings.NewReader(source), &meta)
	if err != nil {
		return Document{Body: source}
	}
	return Document{Meta: meta, Body: string(body)}
}

// metaTable renders front matter as a two column markdown table.
func metaTable(meta map[string]any) string {
	if len(meta) == 0 {
		return ""
	}
	keys := make([]string, 0, len(meta))
	for k := range meta {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b bytes.Buffer
	b.WriteString("| key | value |\n|---|---|\n")
	for _, k := range keys {
		fmt.Fprintf(&b, "| %s | %s |\n", escapeCell(k), escapeCell(formatValue(meta[k])))
	}
	b.WriteString("\n")
	return b.String()
}

func formatValue(v any) string {
	switch val := v.(type) {
	case []any:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			parts = append(parts, fmt.Sprint(item))
		}
		return strings.Join(parts, ", ")
	case nil:
		return ""
	default:
		return fmt.Sprint(val)
	}
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "|", `\|`)
}
