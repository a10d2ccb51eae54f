package cli

import "github.com/charmbracelet/lipgloss"

var (
	syncedStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	pendingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("3"))
	offlineStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
	idStyle      = lipgloss.NewStyle().Faint(true)
	stationStyle = lipgloss.NewStyle().Bold(true)
)

func syncBadge(synced bool) string {
	if synced {
		return syncedStyle.Render("[synced]")
	}
	return pendingStyle.Render("[pending]")
}

func onlineBadge(online bool) string {
	if online {
		return syncedStyle.Render("online")
	}
	return offlineStyle.Render("offline")
}
