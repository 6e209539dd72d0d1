package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/appdeck/internal/prefs"
	"github.com/five82/appdeck/internal/state"
)

// View represents the current active view.
type View int

const (
	ViewApps View = iota
	ViewLogs
)

// Fetcher starts a fetch without blocking.
type Fetcher interface {
	Fetch()
}

// Options configures the UI.
type Options struct {
	Context    context.Context
	Store      *state.Store
	Fetcher    Fetcher
	BaseURL    string
	LogPath    string
	ThemeName  string
	ShowImages bool
	PrefsPath  string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	store     *state.Store
	fetcher   Fetcher
	baseURL   string
	prefsPath string
	keys      keyMap

	// Store subscription
	updates     <-chan state.Snapshot
	unsubscribe func()

	// UI state
	theme       Theme
	currentView View
	width       int
	height      int
	ready       bool
	showHelp    bool
	showImages  bool

	// Data state
	snapshot state.Snapshot
	selected int

	spinner      spinner.Model
	listViewport viewport.Model

	logViewport viewport.Model
	logState    logState
}

// New creates a new Bubble Tea model subscribed to opts.Store.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = prefs.DefaultTheme
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	m := Model{
		ctx:         ctx,
		store:       opts.Store,
		fetcher:     opts.Fetcher,
		baseURL:     opts.BaseURL,
		prefsPath:   prefsPath,
		keys:        DefaultKeyMap(),
		theme:       GetTheme(themeName),
		currentView: ViewApps,
		showImages:  opts.ShowImages,
		spinner:     spinner.New(spinner.WithSpinner(spinner.Dot)),
		logState:    logState{path: opts.LogPath},
	}
	m.spinner.Style = m.theme.Styles().AccentText

	if m.store != nil {
		// Subscribe before reading so no publication falls between the two.
		m.updates, m.unsubscribe = m.store.Subscribe()
		m.snapshot = m.store.Snapshot()
	}
	return m
}

// Close releases the store subscription.
func (m Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		waitForSnapshot(m.updates),
		watchContext(m.ctx),
	}
	if m.snapshot.Loading {
		cmds = append(cmds, m.spinner.Tick)
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resizeViewports()
		m.updateListViewport()
		m.updateLogViewport()
		return m, nil

	case snapshotMsg:
		wasLoading := m.snapshot.Loading
		m.snapshot = state.Snapshot(msg)
		m.clampSelection()
		m.updateListViewport()

		cmds := []tea.Cmd{waitForSnapshot(m.updates)}
		if m.snapshot.Loading && !wasLoading {
			cmds = append(cmds, m.spinner.Tick)
		}
		// A finished fetch writes to the log; pick it up while watching.
		if m.currentView == ViewLogs && !m.snapshot.Loading {
			cmds = append(cmds, m.loadLogs())
		}
		return m, tea.Batch(cmds...)

	case spinner.TickMsg:
		if !m.snapshot.Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case logLinesMsg:
		m.handleLogLines(msg)
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")
	b.WriteString(m.renderContent())
	return b.String()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.spinner.Style = m.theme.Styles().AccentText
		m.savePrefs()
		m.updateListViewport()
		m.logState.dirty = true
		m.updateLogViewport()
		return m, nil

	case key.Matches(msg, m.keys.ViewLogs):
		m.currentView = ViewLogs
		m.logState.follow = true
		return m, m.loadLogs()

	case key.Matches(msg, m.keys.Back):
		m.currentView = ViewApps
		return m, nil
	}

	switch m.currentView {
	case ViewLogs:
		return m.handleLogsKey(msg)
	default:
		return m.handleAppsKey(msg)
	}
}

// refresh asks the controller for a new fetch. The resulting Loading
// snapshot arrives through the subscription.
func (m Model) refresh() {
	if m.fetcher != nil {
		m.fetcher.Fetch()
	}
}

func (m Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	_ = prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name, ShowImages: m.showImages})
}

func (m *Model) resizeViewports() {
	width := max(m.width, 1)
	height := max(m.height-2, 1) // header + command bar
	m.listViewport = viewport.New(width, height)
	m.logViewport = viewport.New(width, max(height-1, 1)) // status line
	m.logState.dirty = true
}

// renderContent renders the main content area based on current view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewLogs:
		return m.renderLogs()
	default:
		return m.renderApps()
	}
}

// renderCommandBar renders the short key hints.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles()
	bindings := m.keys.ShortHelp()
	if m.currentView == ViewLogs {
		bindings = []key.Binding{m.keys.Back, m.keys.CycleLevel, m.keys.Refresh, m.keys.Help, m.keys.Quit}
	}
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, styles.WarningText.Render(h.Key)+" "+styles.MutedText.Render(h.Desc))
	}
	return lipgloss.NewStyle().Width(m.width).Padding(0, 1).Render(strings.Join(parts, "  "))
}

// Messages

type snapshotMsg state.Snapshot

// Commands

// waitForSnapshot blocks on the next published snapshot. A closed channel
// ends the chain.
func waitForSnapshot(updates <-chan state.Snapshot) tea.Cmd {
	if updates == nil {
		return nil
	}
	return func() tea.Msg {
		snap, ok := <-updates
		if !ok {
			return nil
		}
		return snapshotMsg(snap)
	}
}

func watchContext(ctx context.Context) tea.Cmd {
	if ctx == nil || ctx.Done() == nil {
		return nil
	}
	return func() tea.Msg {
		<-ctx.Done()
		return tea.Quit()
	}
}

// Run starts the Bubble Tea program and blocks until the user quits or the
// context is cancelled.
func Run(opts Options) error {
	if opts.Store == nil {
		return fmt.Errorf("ui requires a data store")
	}
	m := New(opts)
	defer m.Close()

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
