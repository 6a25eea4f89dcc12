package config

import (
	"fmt"
	"strconv"
	"strings"
)

// RenderDefaultTOML renders a TOML config with defaults from GetConfigOptions.
func RenderDefaultTOML() string {
	var b strings.Builder
	b.WriteString("# ThoughtForge configuration (TOML)\n\n")

	sections := make(map[string][]ConfigOption)
	var sectionOrder []string
	for _, o := range GetConfigOptions() {
		section, key, ok := strings.Cut(o.Key, ".")
		if !ok {
			writeTOMLOption(&b, o.Key, o.Default, o.Comment)
			continue
		}
		if _, seen := sections[section]; !seen {
			sectionOrder = append(sectionOrder, section)
		}
		sections[section] = append(sections[section], ConfigOption{Key: key, Default: o.Default, Comment: o.Comment})
	}

	for _, section := range sectionOrder {
		b.WriteString("[" + section + "]\n")
		for _, o := range sections[section] {
			writeTOMLOption(&b, o.Key, o.Default, o.Comment)
		}
	}
	return b.String()
}

func writeTOMLOption(b *strings.Builder, key string, value any, comment string) {
	if comment != "" {
		b.WriteString("# " + comment + "\n")
	}
	switch v := value.(type) {
	case string:
		fmt.Fprintf(b, "%s = %s\n\n", key, strconv.Quote(v))
	case bool, int, int64:
		fmt.Fprintf(b, "%s = %v\n\n", key, v)
	case []string:
		quoted := make([]string, 0, len(v))
		for _, s := range v {
			quoted = append(quoted, strconv.Quote(s))
		}
		fmt.Fprintf(b, "%s = [%s]\n\n", key, strings.Join(quoted, ", "))
	}
}
