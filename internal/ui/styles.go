package ui

import "github.com/charmbracelet/lipgloss"

var (
	blurBorderColor  = lipgloss.Color("#3b4261")
	focusBorderColor = lipgloss.Color("#7aa2f7")
	errorColor       = lipgloss.Color("#ff6b6b")

	treeLineStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#a9b1d6"))
	treeSelectedActive = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#1a1b26")).
				Background(lipgloss.Color("#7aa2f7")).
				Bold(true)
	treeSelectedInactive = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#c0caf5")).
				Background(lipgloss.Color("#283457"))
	helpBoxStyle = lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7aa2f7")).
			Background(lipgloss.Color("#1f2335"))
	errorBoxStyle = helpBoxStyle.
			BorderForeground(errorColor)
	errorTitleStyle  = lipgloss.NewStyle().Foreground(errorColor).Bold(true)
	dialogTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7aa2f7")).Bold(true)
	dialogHintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#565f89"))
	headerStyle      = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#c0caf5")).
				Background(lipgloss.Color("#1f2335")).
				Bold(true).
				Padding(0, 1)
	statusBarStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("#a9b1d6")).
			Background(lipgloss.Color("#1f2335"))
	statusErrorStyle = statusBarStyle.Foreground(errorColor)
)

func treePanelStyle(color lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().
		Padding(0, 1).
		BorderStyle(lipgloss.NormalBorder()).
		BorderRight(true).
		BorderForeground(color)
}

// editorPanelStyle separates the editor from the preview with a border on
// the side that faces it.
func editorPanelStyle(color lipgloss.Color, right, bottom bool) lipgloss.Style {
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderRight(right).
		BorderBottom(bottom).
		BorderForeground(color)
}

func previewPanelStyle() lipgloss.Style {
	return lipgloss.NewStyle().Padding(0, 1)
}

func borderColor(focused bool) lipgloss.Color {
	if focused {
		return focusBorderColor
	}
	return blurBorderColor
}
