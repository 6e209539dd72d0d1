package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/appdeck/internal/state"
)

// renderHeader renders the status bar: logo, fetch badge and last update.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	parts := []string{
		styles.Logo.Render("appdeck"),
		m.renderBadge(styles),
	}

	if updated := m.snapshot.LastUpdated; !updated.IsZero() {
		parts = append(parts, styles.MutedText.Render("updated "+formatUpdated(updated, time.Now())))
	}
	if n := m.snapshot.ConsecutiveFailures; n > 1 {
		parts = append(parts, styles.WarningText.Render(fmt.Sprintf("%d failures in a row", n)))
	}
	if m.currentView == ViewLogs {
		parts = append(parts, styles.AccentText.Render("logs"))
	}

	return styles.Header.Width(m.width).Render(strings.Join(parts, "  "))
}

func (m Model) renderBadge(styles Styles) string {
	badge := styles.Badge
	switch m.snapshot.Phase() {
	case state.PhaseLoading:
		return badge.Background(lipgloss.Color(m.theme.Info)).Render("Loading")
	case state.PhaseFailure:
		return badge.Background(lipgloss.Color(m.theme.Danger)).Render("Error")
	case state.PhaseIdle:
		return badge.Background(lipgloss.Color(m.theme.Muted)).Render("Idle")
	default:
		count := len(m.snapshot.Records)
		label := fmt.Sprintf("%d apps", count)
		if count == 1 {
			label = "1 app"
		}
		return badge.Background(lipgloss.Color(m.theme.Success)).Render(label)
	}
}

// formatUpdated renders a clock time with a coarse age suffix.
func formatUpdated(t, now time.Time) string {
	out := t.Format("15:04:05")
	since := now.Sub(t)
	switch {
	case since < time.Minute:
		out += " (now)"
	case since < time.Hour:
		out += fmt.Sprintf(" (%dm ago)", int(since.Minutes()))
	case since < 24*time.Hour:
		out += fmt.Sprintf(" (%dh ago)", int(since.Hours()))
	}
	return out
}
