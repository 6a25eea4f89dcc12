package app

import (
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kyaoi/thoughtforge/internal/config"
	"github.com/kyaoi/thoughtforge/internal/logger"
	"github.com/kyaoi/thoughtforge/internal/ui"
)

// Run executes the Bubble Tea program for the editor.
func Run(target string, settings config.Settings, log *slog.Logger) error {
	if log == nil {
		log = logger.Discard()
	}
	state, err := LoadInitialState(target)
	if err != nil {
		return err
	}
	state.TreeVisible = settings.ExplorerVisible
	state.TreePreferredWidth = settings.ExplorerWidth

	log.Info("starting editor", "root", state.RootDir, "file", state.InitialFile)
	return runProgram(state, Options(settings, log))
}

// Options maps loaded settings onto the model options.
func Options(settings config.Settings, log *slog.Logger) ui.Options {
	return ui.Options{
		PreviewStyle:       settings.PreviewStyle,
		PreviewDebounce:    settings.PreviewDebounce,
		PreviewFrontMatter: settings.PreviewFrontMatter,
		LineNumbers:        settings.LineNumbers,
		HistoryLimit:       settings.HistoryLimit,
		StatusTimeout:      settings.StatusTimeout,
		SkipDirs:           settings.ExplorerSkipDirs,
		Logger:             log,
	}
}

func runProgram(state ui.State, opts ui.Options) error {
	model := ui.NewModel(state, opts)
	defer func() {
		if err := model.Close(); err != nil {
			opts.Logger.Warn("closing watcher failed", "err", err)
		}
	}()
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
