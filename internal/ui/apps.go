package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/appdeck/internal/catalog"
)

const (
	loadingText = "Loading apps..."
	retryHint   = "Press r to retry"
	emptyText   = "No apps found"
)

// handleAppsKey processes keyboard input for the apps view.
func (m Model) handleAppsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Refresh) {
		m.refresh()
		return m, nil
	}
	if key.Matches(msg, m.keys.ToggleImages) {
		m.showImages = !m.showImages
		m.savePrefs()
		m.updateListViewport()
		return m, nil
	}

	count := len(m.snapshot.Records)
	if count == 0 {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Down):
		if m.selected < count-1 {
			m.selected++
		}
	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
		}
	case key.Matches(msg, m.keys.Top):
		m.selected = 0
	case key.Matches(msg, m.keys.Bottom):
		m.selected = count - 1
	default:
		return m, nil
	}
	m.updateListViewport()
	return m, nil
}

// clampSelection keeps the cursor on a record after the list changes size.
func (m *Model) clampSelection() {
	count := len(m.snapshot.Records)
	if m.selected >= count {
		m.selected = count - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

// cardHeight is the number of lines one card occupies, separator included.
func (m Model) cardHeight() int {
	if m.showImages {
		return 4
	}
	return 3
}

// updateListViewport refreshes the card list and scrolls the selected card
// into view.
func (m *Model) updateListViewport() {
	if !m.ready {
		return
	}
	m.listViewport.SetContent(m.appsContent())
	if !m.showingCards() {
		m.listViewport.GotoTop()
		return
	}

	top := m.selected * m.cardHeight()
	bottom := top + m.cardHeight() - 1
	switch {
	case top < m.listViewport.YOffset:
		m.listViewport.SetYOffset(top)
	case bottom >= m.listViewport.YOffset+m.listViewport.Height:
		m.listViewport.SetYOffset(bottom - m.listViewport.Height + 1)
	}
}

func (m Model) showingCards() bool {
	return !m.snapshot.Loading && !m.snapshot.HasError() && len(m.snapshot.Records) > 0
}

// renderApps renders the apps view.
func (m Model) renderApps() string {
	vp := m.listViewport
	vp.SetContent(m.appsContent())
	return vp.View()
}

// appsContent renders the body of the apps view. Loading wins over an
// error, and an error wins over the record list.
func (m Model) appsContent() string {
	styles := m.theme.Styles()
	pad := lipgloss.NewStyle().Padding(1, 2)

	switch {
	case m.snapshot.Loading:
		return pad.Render(m.spinner.View() + " " + styles.Text.Render(loadingText))
	case m.snapshot.HasError():
		return pad.Render(
			styles.DangerText.Render("Error: "+m.snapshot.Error) + "\n\n" +
				styles.MutedText.Render(retryHint),
		)
	case len(m.snapshot.Records) == 0:
		return pad.Render(styles.MutedText.Render(emptyText))
	}

	var b strings.Builder
	for i, rec := range m.snapshot.Records {
		b.WriteString(m.renderCard(rec, i == m.selected, styles))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// renderCard renders one record. The trailing blank line separates cards.
func (m Model) renderCard(rec catalog.Record, selected bool, styles Styles) string {
	marker := "  "
	name := styles.Text.Bold(true)
	if selected {
		marker = styles.AccentText.Render("▸ ")
		name = styles.Selected.Bold(true)
	}

	lines := []string{
		marker + name.Render(rec.Name),
		"  " + styles.MutedText.Render("ID: "+rec.ID),
	}
	if m.showImages {
		if url := rec.ImageURL(m.baseURL); url != "" {
			lines = append(lines, "  "+styles.FaintText.Render(url))
		} else {
			lines = append(lines, "  "+styles.FaintText.Render("(no image)"))
		}
	}
	return strings.Join(lines, "\n") + "\n\n"
}
