package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/kyaoi/thoughtforge/internal/logger"
	"github.com/kyaoi/thoughtforge/internal/render"
)

// ConfigOption is one documented configuration key and its default.
type ConfigOption struct {
	Key     string
	Default any
	Comment string
}

// GetConfigOptions returns the configuration options and their meanings.
func GetConfigOptions() []ConfigOption {
	return []ConfigOption{
		{Key: "preview.style", Default: render.DefaultStyle, Comment: "Glamour style for the preview: ascii, dark, dracula, light, notty, pink, tokyo-night"},
		{Key: "preview.debounce", Default: "0s", Comment: "Delay before re-rendering the preview after an edit; 0s renders on every change"},
		{Key: "preview.frontmatter", Default: true, Comment: "Show front matter as a table instead of raw text"},

		{Key: "explorer.visible", Default: true, Comment: "Show the file explorer at startup"},
		{Key: "explorer.width", Default: 28, Comment: "Preferred explorer width in cells"},
		{Key: "explorer.skip_dirs", Default: []string{".git", "node_modules", ".hg", ".svn", ".idea", ".vscode"}, Comment: "Directory names hidden from the explorer"},

		{Key: "editor.line_numbers", Default: true, Comment: "Show line numbers in the editor"},
		{Key: "editor.history_limit", Default: 200, Comment: "Maximum undo steps kept for the editor"},

		{Key: "status.timeout", Default: "3s", Comment: "How long status messages stay visible"},

		{Key: "log.file", Default: "", Comment: "Log file path; empty uses $XDG_STATE_HOME/thoughtforge/thoughtforge.log"},
		{Key: "log.level", Default: "info", Comment: "Log level: debug, info, warn, error"},
	}
}

// applyDefaults seeds Viper with defaults defined in GetConfigOptions.
func applyDefaults(v *viper.Viper) {
	for _, o := range GetConfigOptions() {
		v.SetDefault(o.Key, o.Default)
	}
}

// Load resolves configuration with precedence: defaults < file < env.
func Load(ctx context.Context, v *viper.Viper) error {
	explicit := v.ConfigFileUsed() != ""
	if !explicit {
		v.SetConfigName("config")
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			v.AddConfigPath(filepath.Join(xdg, "thoughtforge"))
		}
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "thoughtforge"))
		}
	}

	applyDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}

	v.SetEnvPrefix("thoughtforge")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Allow comma-separated env override for skip_dirs
	if raw, ok := os.LookupEnv("THOUGHTFORGE_EXPLORER_SKIP_DIRS"); ok {
		v.Set("explorer.skip_dirs", splitList(raw))
	}
	return nil
}

// DefaultConfigPath resolves the standard config.toml location.
func DefaultConfigPath() string {
	xdg := os.Getenv("XDG_CONFIG_HOME")
	if xdg == "" {
		home, _ := os.UserHomeDir()
		xdg = filepath.Join(home, ".config")
	}
	return filepath.Join(xdg, "thoughtforge", "config.toml")
}

// Settings is the typed view of a loaded configuration.
type Settings struct {
	PreviewStyle       string
	PreviewDebounce    time.Duration
	PreviewFrontMatter bool

	ExplorerVisible  bool
	ExplorerWidth    int
	ExplorerSkipDirs []string

	LineNumbers  bool
	HistoryLimit int

	StatusTimeout time.Duration

	LogFile  string
	LogLevel string
}

// FromViper reads Settings out of a loaded Viper instance.
func FromViper(v *viper.Viper) Settings {
	return Settings{
		PreviewStyle:       strings.TrimSpace(v.GetString("preview.style")),
		PreviewDebounce:    v.GetDuration("preview.debounce"),
		PreviewFrontMatter: v.GetBool("preview.frontmatter"),
		ExplorerVisible:    v.GetBool("explorer.visible"),
		ExplorerWidth:      v.GetInt("explorer.width"),
		ExplorerSkipDirs:   v.GetStringSlice("explorer.skip_dirs"),
		LineNumbers:        v.GetBool("editor.line_numbers"),
		HistoryLimit:       v.GetInt("editor.history_limit"),
		StatusTimeout:      v.GetDuration("status.timeout"),
		LogFile:            strings.TrimSpace(v.GetString("log.file")),
		LogLevel:           strings.TrimSpace(v.GetString("log.level")),
	}
}

// Defaults returns Settings built from the option table alone.
func Defaults() Settings {
	v := viper.New()
	applyDefaults(v)
	return FromViper(v)
}

// CheckConfigValidity reports every invalid option at once.
func CheckConfigValidity(v *viper.Viper) error {
	var errs []error
	s := FromViper(v)

	if !render.ValidStyle(s.PreviewStyle) {
		errs = append(errs, fmt.Errorf("preview.style %q is not a known style", s.PreviewStyle))
	}
	if _, err := time.ParseDuration(durationString(v, "preview.debounce")); err != nil || s.PreviewDebounce < 0 {
		errs = append(errs, errors.New("preview.debounce must be a non-negative duration"))
	}
	if s.ExplorerWidth <= 0 {
		errs = append(errs, errors.New("explorer.width must be greater than 0"))
	}
	if s.HistoryLimit <= 0 {
		errs = append(errs, errors.New("editor.history_limit must be greater than 0"))
	}
	if _, err := time.ParseDuration(durationString(v, "status.timeout")); err != nil || s.StatusTimeout <= 0 {
		errs = append(errs, errors.New("status.timeout must be a positive duration"))
	}
	if _, err := logger.ParseLevel(s.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	return errors.Join(errs...)
}

// durationString normalizes a duration option for strict parsing; values set
// programmatically as time.Duration are accepted as-is.
func durationString(v *viper.Viper, key string) string {
	switch val := v.Get(key).(type) {
	case time.Duration:
		return val.String()
	case int, int64:
		return fmt.Sprintf("%dns", val)
	default:
		return strings.TrimSpace(fmt.Sprint(val))
	}
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
