package main

import "github.com/charmbracelet/lipgloss"

// UI styles for the TUI interface
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#E0AF68")).
			MarginBottom(1)

	cursorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#1a1a1a")).
			Background(lipgloss.Color("#7DCFFF"))

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#c0c0c0"))

	checkedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	checkboxChecked   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Render("[x]")
	checkboxUnchecked = lipgloss.NewStyle().Foreground(lipgloss.Color("#626262")).Render("[ ]")

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#626262"))

	cmdDetailStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#565656")).
			Italic(true)

	filterLabelStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#9ECE6A"))

	helpStyle = lipgloss.NewStyle().
			MarginTop(1)

	confirmStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginTop(1)

	noticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9ECE6A"))

	errorNoticeStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#FF6B6B"))

	emptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262")).
			Italic(true)

	selectedCountStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#FF6B6B"))

	popupStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#E0AF68")).
			Padding(1, 2)

	buttonBase = lipgloss.NewStyle().
			Padding(0, 1).
			MarginRight(1)
)

// buttonStyles colors each button like its desktop counterpart
var buttonStyles = map[action]lipgloss.Style{
	actionSortByName:     buttonBase.Foreground(lipgloss.Color("#1a1a1a")).Background(lipgloss.Color("#c0c0c0")),
	actionSortByCPU:      buttonBase.Foreground(lipgloss.Color("#ffffff")).Background(lipgloss.Color("#EE7600")),
	actionKillSelected:   buttonBase.Foreground(lipgloss.Color("#ffffff")).Background(lipgloss.Color("#CC0000")),
	actionKillAll:        buttonBase.Foreground(lipgloss.Color("#CC0000")).Background(lipgloss.Color("#ffffff")),
	actionKillAllAndExit: buttonBase.Foreground(lipgloss.Color("#CC0000")).Background(lipgloss.Color("#ffffff")),
	actionExit:           buttonBase.Foreground(lipgloss.Color("#ffffff")).Background(lipgloss.Color("#2E8B57")),
}

// focusedButton marks the button that enter would press
func focusedButton(a action) lipgloss.Style {
	return buttonStyles[a].Bold(true).Underline(true)
}
