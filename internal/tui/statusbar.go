package tui

import (
	"github.com/charmbracelet/lipgloss"

	"revwhoix-cli/internal/notify"
	"revwhoix-cli/internal/ui"
)

// RenderStatusBar shows the live notification, or status when there is none,
// on the left and key hints on the right.
func RenderStatusBar(n *notify.Notifier, status, hints string, width int) string {
	left := lipgloss.NewStyle().Foreground(ui.ColorMuted).Render("  " + status)
	if current, ok := n.Current(); ok {
		left = "  " + notify.Render(current)
	}

	help := lipgloss.NewStyle().Foreground(ui.ColorMuted).
		Render(hints + " ")

	if lipgloss.Width(left)+lipgloss.Width(help) > width {
		help = ""
	}
	gap := width - lipgloss.Width(left) - lipgloss.Width(help)
	if gap < 0 {
		gap = 0
	}
	padding := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.NewStyle().
		Background(lipgloss.Color("#111827")).
		Width(width).
		MaxHeight(1).
		Render(left + padding + help)
}
