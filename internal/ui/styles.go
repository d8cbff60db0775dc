package ui

import "github.com/charmbracelet/lipgloss"

var (
	ColorPrimary = lipgloss.Color("#6366F1")
	ColorSuccess = lipgloss.Color("#10B981")
	ColorError   = lipgloss.Color("#EF4444")
	ColorWarning = lipgloss.Color("#F59E0B")
	ColorInfo    = lipgloss.Color("#3B82F6")
	ColorMuted   = lipgloss.Color("#6B7280")
	ColorBorder  = lipgloss.Color("#374151")

	StylePane = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	StyleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F9FAFB")).
			Background(ColorPrimary).
			Padding(0, 1)

	StyleLabel   = lipgloss.NewStyle().Foreground(ColorMuted)
	StyleValue   = lipgloss.NewStyle().Bold(true)
	StyleHeading = lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)

	StyleSuccess = lipgloss.NewStyle().Foreground(ColorSuccess)
	StyleError   = lipgloss.NewStyle().Foreground(ColorError)
	StyleWarning = lipgloss.NewStyle().Foreground(ColorWarning)
	StyleInfo    = lipgloss.NewStyle().Foreground(ColorInfo)
	StyleMuted   = lipgloss.NewStyle().Foreground(ColorMuted)

	StyleTabActive = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F9FAFB")).
			Background(ColorPrimary).
			Padding(0, 1)

	StyleTab = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 1)

	StyleButtonDisabled = lipgloss.NewStyle().Foreground(ColorBorder)
)
