package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/appdeck/internal/logtail"
)

const logFetchLimit = 2000

// levelCycle is the order the minimum-level filter steps through. The empty
// level shows everything.
var levelCycle = []string{"", "info", "warning", "error"}

// logState holds log view state.
type logState struct {
	path     string
	entries  []logtail.Entry
	minLevel string
	follow   bool
	err      error
	dirty    bool
}

type logLinesMsg struct {
	lines []string
	err   error
}

// loadLogs reads the tail of the log file off the UI goroutine.
func (m Model) loadLogs() tea.Cmd {
	path := m.logState.path
	if path == "" {
		return nil
	}
	return func() tea.Msg {
		lines, err := logtail.Read(path, logFetchLimit)
		return logLinesMsg{lines: lines, err: err}
	}
}

func (m *Model) handleLogLines(msg logLinesMsg) {
	m.logState.err = msg.err
	if msg.err == nil {
		entries := make([]logtail.Entry, 0, len(msg.lines))
		for _, line := range msg.lines {
			if strings.TrimSpace(line) == "" {
				continue
			}
			entries = append(entries, logtail.Parse(line))
		}
		m.logState.entries = entries
	}
	m.logState.dirty = true
	m.updateLogViewport()
}

// handleLogsKey processes keyboard input for the log view.
func (m Model) handleLogsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Refresh):
		return m, m.loadLogs()
	case key.Matches(msg, m.keys.CycleLevel):
		m.logState.minLevel = nextLevel(m.logState.minLevel)
		m.logState.dirty = true
		m.updateLogViewport()
		return m, nil
	case key.Matches(msg, m.keys.Top):
		m.logViewport.GotoTop()
		m.logState.follow = false
		return m, nil
	case key.Matches(msg, m.keys.Bottom):
		m.logViewport.GotoBottom()
		m.logState.follow = true
		return m, nil
	}

	var cmd tea.Cmd
	m.logViewport, cmd = m.logViewport.Update(msg)
	m.logState.follow = m.logViewport.AtBottom()
	return m, cmd
}

func nextLevel(current string) string {
	for i, level := range levelCycle {
		if level == current {
			return levelCycle[(i+1)%len(levelCycle)]
		}
	}
	return levelCycle[0]
}

// visibleEntries applies the minimum-level filter.
func (m Model) visibleEntries() []logtail.Entry {
	return logtail.Filter(m.logState.entries, m.logState.minLevel)
}

// updateLogViewport re-renders log content when it changed.
func (m *Model) updateLogViewport() {
	if !m.ready || !m.logState.dirty {
		return
	}
	m.logViewport.SetContent(m.renderLogContent())
	m.logState.dirty = false
	if m.logState.follow {
		m.logViewport.GotoBottom()
	}
}

// renderLogs renders the log view with a status line under the viewport.
func (m Model) renderLogs() string {
	return m.logViewport.View() + "\n" + m.renderLogStatus()
}

func (m Model) renderLogStatus() string {
	styles := m.theme.Styles()
	level := m.logState.minLevel
	if level == "" {
		level = "all"
	}
	parts := []string{
		styles.FaintText.Render(m.logState.path),
		styles.MutedText.Render("level ≥ ") + styles.LevelStyle(level).Render(level),
	}
	if m.logState.follow {
		parts = append(parts, styles.SuccessText.Render("following"))
	}
	return " " + strings.Join(parts, "  ")
}

func (m Model) renderLogContent() string {
	styles := m.theme.Styles()
	if m.logState.err != nil {
		return styles.DangerText.Render(m.logState.err.Error())
	}
	if m.logState.path == "" {
		return styles.MutedText.Render("Logging to a file is disabled")
	}

	entries := m.visibleEntries()
	if len(entries) == 0 {
		return styles.MutedText.Render("No log entries")
	}

	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, m.renderLogEntry(e, styles))
	}
	return strings.Join(lines, "\n")
}

// renderLogEntry colours one line by level. Unparsed lines are shown raw.
func (m Model) renderLogEntry(e logtail.Entry, styles Styles) string {
	if e.Level == "" {
		return styles.Text.Render(e.Raw)
	}

	var b strings.Builder
	if e.Time != "" {
		b.WriteString(styles.FaintText.Render(e.Time))
		b.WriteString(" ")
	}
	b.WriteString(styles.LevelStyle(e.Level).Bold(true).Render(levelLabel(e.Level)))
	b.WriteString(" ")
	b.WriteString(styles.Text.Render(e.Message))
	for _, f := range e.Fields {
		b.WriteString(" ")
		b.WriteString(styles.MutedText.Render(f.Key + "=" + f.Value))
	}
	return b.String()
}

func levelLabel(level string) string {
	if level == "warning" {
		return "WARN"
	}
	return strings.ToUpper(level)
}
