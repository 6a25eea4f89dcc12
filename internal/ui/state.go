package ui

import (
	"log/slog"
	"time"

	"github.com/kyaoi/thoughtforge/internal/logger"
	"github.com/kyaoi/thoughtforge/internal/render"
)

// State contains the data required to bootstrap the Bubble Tea model.
type State struct {
	RootDir            string
	InitialFile        string
	TreeVisible        bool
	TreePreferredWidth int
}

// Options tunes the model. Zero values fall back to defaults.
type Options struct {
	PreviewStyle       string
	PreviewDebounce    time.Duration
	PreviewFrontMatter bool
	LineNumbers        bool
	HistoryLimit       int
	StatusTimeout      time.Duration
	SkipDirs           []string

	Logger *slog.Logger

	// NewRenderer builds the preview renderer for a wrap width.
	NewRenderer func(width int) (render.Renderer, error)
	Clipboard   Clipboard
}

const (
	defaultStatusTimeout = 3 * time.Second
	defaultHistoryLimit  = 200
)

func (o Options) withDefaults() Options {
	if o.StatusTimeout <= 0 {
		o.StatusTimeout = defaultStatusTimeout
	}
	if o.HistoryLimit <= 0 {
		o.HistoryLimit = defaultHistoryLimit
	}
	if o.NewRenderer == nil {
		style, frontMatter := o.PreviewStyle, o.PreviewFrontMatter
		o.NewRenderer = func(width int) (render.Renderer, error) {
			return render.NewTerminal(style, width, frontMatter)
		}
	}
	if o.Clipboard == nil {
		o.Clipboard = systemClipboard{}
	}
	if o.Logger == nil {
		o.Logger = logger.Discard()
	}
	return o
}
