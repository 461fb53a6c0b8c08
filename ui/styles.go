package ui

import "github.com/charmbracelet/lipgloss"

// 16-color ANSI Dracula palette
var (
	DraculaBackground = lipgloss.AdaptiveColor{Light: "0", Dark: "0"}
	DraculaForeground = lipgloss.AdaptiveColor{Light: "255", Dark: "255"}
	DraculaPurple     = lipgloss.AdaptiveColor{Light: "5", Dark: "5"}
	DraculaPink       = lipgloss.AdaptiveColor{Light: "13", Dark: "13"}
	DraculaCyan       = lipgloss.AdaptiveColor{Light: "14", Dark: "14"}
	DraculaGreen      = lipgloss.AdaptiveColor{Light: "10", Dark: "10"}
	DraculaComment    = lipgloss.AdaptiveColor{Light: "7", Dark: "7"}
	DraculaOrange     = lipgloss.AdaptiveColor{Light: "3", Dark: "3"}
	DraculaRed        = lipgloss.AdaptiveColor{Light: "1", Dark: "1"}

	// Page tab bar styles
	ActiveTabStyle = lipgloss.NewStyle().
			Foreground(DraculaPink).
			Bold(true).
			Underline(true).
			Padding(0, 1)
	InactiveTabStyle = lipgloss.NewStyle().
				Foreground(DraculaComment).
				Padding(0, 1)

	// List styles
	TitleStyle = lipgloss.NewStyle().
			Foreground(DraculaPink).
			Bold(true).
			Padding(0, 1)

	// Search input
	SearchPromptStyle = lipgloss.NewStyle().
				Foreground(DraculaPink).
				Bold(true)
	SearchTextStyle = lipgloss.NewStyle().
			Foreground(DraculaForeground)

	// Modal viewer
	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(DraculaPurple).
			Padding(0, 2)
	ModalTitleStyle = lipgloss.NewStyle().
			Foreground(DraculaPink).
			Bold(true)
	ModalCloseStyle = lipgloss.NewStyle().
			Foreground(DraculaRed)
	ModalPathStyle = lipgloss.NewStyle().
			Foreground(DraculaCyan).
			Italic(true)
	ModalTagStyle = lipgloss.NewStyle().
			Foreground(DraculaBackground).
			Background(DraculaGreen).
			Padding(0, 1)
	ModalCounterStyle = lipgloss.NewStyle().
				Foreground(DraculaOrange)

	// Status bar
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(DraculaComment)
	ErrorStyle = lipgloss.NewStyle().
			Foreground(DraculaRed)

	// Help
	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(DraculaPink).
			Bold(true)
	HelpDescStyle = lipgloss.NewStyle().
			Foreground(DraculaForeground)

	SelectedItemStyle = lipgloss.NewStyle().
				BorderLeft(true).
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(DraculaPink).
				PaddingLeft(1)
)
