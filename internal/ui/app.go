// Package ui provides terminal user interface components for the weektrack app.
// This file contains the main App model which coordinates all panes and
// routes messages using the Bubble Tea architecture.
package ui

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"weektrack/internal/config"
	"weektrack/internal/storage"
	"weektrack/internal/tracker"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"
)

// PaneID identifies each pane in the application.
type PaneID int

const (
	PaneHabits PaneID = iota
	PaneTasks
	PaneStats
)

// LayoutMode determines how panes are arranged based on terminal width.
type LayoutMode int

const (
	// LayoutWide shows all three panes side-by-side.
	LayoutWide LayoutMode = iota
	// LayoutNarrow shows only the focused pane with a tab bar.
	LayoutNarrow
)

// AppConfig holds user configuration for the app behavior.
type AppConfig struct {
	Keys                  *config.KeysConfig
	ConfirmDeletions      bool
	ConfirmQuitUnsaved    bool
	NarrowLayoutThreshold int
}

// App is the main application model that coordinates all panes.
type App struct {
	storage     *storage.Storage
	tracker     *tracker.Tracker
	log         logrus.FieldLogger
	styles      *Styles
	config      *AppConfig
	habitsPane  *HabitsPane
	tasksPane   *TasksPane
	statsPane   *StatsPane
	helpOverlay *HelpOverlay
	confirm     *confirmState
	activePane  PaneID
	layoutMode  LayoutMode
	showHelp    bool
	width       int
	height      int
	status      string
	statusErr   bool
	statusUntil time.Time
	quitting    bool
	now         func() time.Time

	// Key bindings
	keys     GlobalKeyMap
	helpKeys HelpKeyMap

	// Pane positions for mouse click detection (x coordinates)
	habitsPaneStart int
	habitsPaneEnd   int
	tasksPaneStart  int
	tasksPaneEnd    int
	statsPaneStart  int
	statsPaneEnd    int
	contentTop      int // Y coordinate where content starts
}

// confirmState holds a pending destructive action awaiting confirmation.
type confirmState struct {
	title  string
	body   string
	action func() tea.Cmd
}

// NewApp creates a new application. Data loading is deferred to Init()
// to keep the constructor non-blocking.
func NewApp(store *storage.Storage, styles *Styles, cfg *AppConfig, log logrus.FieldLogger) *App {
	// Use default config if nil
	if cfg == nil {
		cfg = &AppConfig{
			Keys:                  &config.KeysConfig{},
			ConfirmDeletions:      true,
			ConfirmQuitUnsaved:    true,
			NarrowLayoutThreshold: 100,
		}
	}
	if cfg.Keys == nil {
		cfg.Keys = &config.KeysConfig{}
	}
	if log == nil {
		logger := logrus.New()
		logger.SetOutput(discardWriter{})
		log = logger
	}

	// Create panes with config-aware key bindings
	habitsPane := NewHabitsPaneWithKeys(styles, cfg.Keys)
	tasksPane := NewTasksPaneWithKeys(styles, cfg.Keys)
	statsPane := NewStatsPane(styles)
	helpOverlay := NewHelpOverlay(styles)

	app := &App{
		storage:     store,
		log:         log,
		styles:      styles,
		config:      cfg,
		habitsPane:  habitsPane,
		tasksPane:   tasksPane,
		statsPane:   statsPane,
		helpOverlay: helpOverlay,
		activePane:  PaneHabits,
		now:         time.Now,
		keys:        NewGlobalKeyMap(cfg.Keys),
		helpKeys:    DefaultHelpKeyMap(),
	}

	// Set initial focus
	habitsPane.SetFocused(true)
	tasksPane.SetFocused(false)
	statsPane.SetFocused(false)

	return app
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }

// SetNowFunc overrides the clock used for the title bar and week anchoring.
// Passing nil resets it to time.Now.
func (a *App) SetNowFunc(now func() time.Time) {
	if now == nil {
		a.now = time.Now
		return
	}
	a.now = now
}

// tickMsg is sent periodically for time updates.
type tickMsg time.Time

// tickCmd returns a command that sends a tick every second.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init initializes the app and loads the document asynchronously.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		loadDocumentCmd(a.storage),
	)
}

// Update handles all messages and routes them appropriately.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// Async I/O results are handled before key routing so they are
	// processed regardless of which pane is active.
	switch msg := msg.(type) {
	case documentLoadedMsg:
		if msg.doc == nil {
			a.SetStatus("Load failed: "+msg.err.Error(), true)
			return a, nil
		}
		a.attachDocument(msg.doc)
		if msg.err != nil {
			a.SetStatus(msg.err.Error(), true)
		}
		return a, nil

	case documentSavedMsg:
		if msg.err != nil {
			a.log.WithError(msg.err).Error("save failed")
			a.SetStatus("Save failed: "+msg.err.Error(), true)
		} else if a.tracker != nil {
			a.tracker.MarkSaved()
			a.SetStatus("Saved", false)
		}
		return a, nil

	case workbookExportedMsg:
		if msg.err != nil {
			a.log.WithError(msg.err).Error("export failed")
			a.SetStatus("Export failed: "+msg.err.Error(), true)
		} else {
			a.SetStatus("Exported to "+msg.path, false)
		}
		return a, nil

	case statusMsg:
		a.SetStatus(msg.text, msg.isErr)
		return a, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if a.confirm != nil {
			switch msg.String() {
			case "y", "Y", "enter":
				action := a.confirm.action
				a.confirm = nil
				return a, action()
			case "n", "N", "esc":
				a.confirm = nil
				a.SetStatus("Canceled", false)
				return a, nil
			default:
				return a, nil
			}
		}

		// Help overlay takes priority
		if a.showHelp {
			if key.Matches(msg, a.helpKeys.Close) {
				a.showHelp = false
				return a, nil
			}
			return a, nil
		}

		// Check if any pane is in input mode
		inInputMode := a.habitsPane.IsEditing() || a.tasksPane.IsEditing()

		if !inInputMode {
			if cmd, handled := a.interceptDestructive(msg); handled {
				return a, cmd
			}

			// Global keys only when not in input mode
			switch {
			case key.Matches(msg, a.keys.Quit):
				return a, a.requestQuit()

			case key.Matches(msg, a.keys.Help):
				a.showHelp = true
				return a, nil

			case key.Matches(msg, a.keys.Save):
				if a.tracker != nil {
					return a, saveDocumentCmd(a.storage, a.tracker.Document())
				}
				return a, nil

			case key.Matches(msg, a.keys.Export):
				if a.tracker != nil {
					return a, exportWorkbookCmd(a.tracker, a.exportPath())
				}
				return a, nil

			case key.Matches(msg, a.keys.NextPane):
				a.switchPane()
				return a, nil

			case key.Matches(msg, a.keys.Pane1):
				a.setActivePane(PaneHabits)
				return a, nil

			case key.Matches(msg, a.keys.Pane2):
				a.setActivePane(PaneTasks)
				return a, nil

			case key.Matches(msg, a.keys.Pane3):
				a.setActivePane(PaneStats)
				return a, nil
			}
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.updateLayout()
		return a, nil

	case tea.MouseMsg:
		return a.handleMouse(msg)

	case tickMsg:
		if a.status != "" && !a.statusUntil.IsZero() && time.Now().After(a.statusUntil) {
			a.status = ""
			a.statusErr = false
			a.statusUntil = time.Time{}
		}
		return a, tickCmd()
	}

	// Forward to active pane (only if help is not shown)
	if !a.showHelp {
		switch a.activePane {
		case PaneHabits:
			if cmd := a.habitsPane.Update(msg); cmd != nil {
				cmds = append(cmds, cmd)
			}
		case PaneTasks:
			if cmd := a.tasksPane.Update(msg); cmd != nil {
				cmds = append(cmds, cmd)
			}
		case PaneStats:
			if cmd := a.statsPane.Update(msg); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
	}

	return a, tea.Batch(cmds...)
}

// attachDocument builds the tracker for the loaded document and hands it
// to the panes.
func (a *App) attachDocument(doc *tracker.Document) {
	today := a.now()
	a.tracker = tracker.New(doc, today, a.log)
	a.habitsPane.SetTracker(a.tracker)
	a.tasksPane.SetTracker(a.tracker)
	a.statsPane.SetTracker(a.tracker)

	// Open the tasks pane on today's weekday.
	a.tasksPane.SetDay((int(today.Weekday()) + 6) % 7)
}

// interceptDestructive shows a confirmation overlay for delete and
// clear-all keys when confirmations are enabled. Returns handled=false
// when the key should continue through normal routing.
func (a *App) interceptDestructive(msg tea.KeyMsg) (tea.Cmd, bool) {
	if !a.config.ConfirmDeletions || a.tracker == nil {
		return nil, false
	}

	switch a.activePane {
	case PaneHabits:
		switch {
		case key.Matches(msg, a.habitsPane.keys.Delete):
			name, ok := a.habitsPane.SelectedHabit()
			if !ok {
				a.SetStatus("No habit selected", true)
				return nil, true
			}
			a.confirm = &confirmState{
				title:  "Delete habit?",
				body:   truncateText(name, 60),
				action: a.habitsPane.DeleteSelected,
			}
			return nil, true

		case key.Matches(msg, a.habitsPane.keys.ClearAll):
			if len(a.tracker.Document().Habits) == 0 {
				return nil, true
			}
			a.confirm = &confirmState{
				title:  "Clear all habits?",
				body:   "Every habit and its history for all days will be removed.",
				action: a.habitsPane.ClearAll,
			}
			return nil, true
		}

	case PaneTasks:
		switch {
		case key.Matches(msg, a.tasksPane.keys.Delete):
			name, ok := a.tasksPane.SelectedTask()
			if !ok {
				a.SetStatus("No task selected", true)
				return nil, true
			}
			a.confirm = &confirmState{
				title:  "Delete task?",
				body:   truncateText(name, 60),
				action: a.tasksPane.DeleteSelected,
			}
			return nil, true

		case key.Matches(msg, a.tasksPane.keys.ClearAll):
			a.confirm = &confirmState{
				title:  "Clear all tasks?",
				body:   "Every task and template for all days will be removed.",
				action: a.tasksPane.ClearAll,
			}
			return nil, true
		}
	}

	return nil, false
}

// requestQuit quits immediately, or prompts first when there are unsaved
// changes and the prompt is enabled.
func (a *App) requestQuit() tea.Cmd {
	if a.tracker != nil && a.tracker.Dirty() && a.config.ConfirmQuitUnsaved {
		a.confirm = &confirmState{
			title: "Quit without saving?",
			body:  "Unsaved changes will be lost. Save with ctrl+s first.",
			action: func() tea.Cmd {
				a.quitting = true
				return tea.Quit
			},
		}
		return nil
	}
	a.quitting = true
	return tea.Quit
}

// exportPath returns the workbook destination for the displayed week.
func (a *App) exportPath() string {
	name := fmt.Sprintf("weektrack-%s.xlsx", a.tracker.WeekDates()[0])
	return filepath.Join(a.storage.DataDir(), name)
}

// handleMouse routes mouse events to overlays, the tab bar, and panes.
func (a *App) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if a.confirm != nil {
		if msg.Action == tea.MouseActionPress {
			a.confirm = nil
			a.SetStatus("Canceled", false)
		}
		return a, nil
	}

	if a.showHelp {
		// Any click closes help
		if msg.Action == tea.MouseActionPress {
			a.showHelp = false
		}
		return a, nil
	}

	if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
		// In narrow mode, check for tab bar clicks
		if a.layoutMode == LayoutNarrow && msg.Y == a.contentTop-1 {
			tabWidth := a.width / 3
			if msg.X < tabWidth {
				a.setActivePane(PaneHabits)
			} else if msg.X < tabWidth*2 {
				a.setActivePane(PaneTasks)
			} else {
				a.setActivePane(PaneStats)
			}
			return a, nil
		}

		// Determine which pane was clicked (in wide mode)
		clickedPane := a.paneAtPosition(msg.X)
		if clickedPane >= 0 && clickedPane != a.activePane {
			a.setActivePane(clickedPane)
		}
	}

	// Forward to the active pane with adjusted coordinates.
	if msg.Y >= a.contentTop {
		localMsg := msg
		localMsg.Y = msg.Y - a.contentTop
		if a.layoutMode == LayoutWide {
			switch a.activePane {
			case PaneTasks:
				localMsg.X = msg.X - a.tasksPaneStart
			case PaneStats:
				localMsg.X = msg.X - a.statsPaneStart
			}
		}

		switch a.activePane {
		case PaneHabits:
			return a, a.habitsPane.Update(localMsg)
		case PaneTasks:
			return a, a.tasksPane.Update(localMsg)
		case PaneStats:
			return a, a.statsPane.Update(localMsg)
		}
	}

	return a, nil
}

// switchPane cycles through panes.
func (a *App) switchPane() {
	switch a.activePane {
	case PaneHabits:
		a.setActivePane(PaneTasks)
	case PaneTasks:
		a.setActivePane(PaneStats)
	case PaneStats:
		a.setActivePane(PaneHabits)
	}
}

// setActivePane sets the active pane and updates focus states.
func (a *App) setActivePane(pane PaneID) {
	a.activePane = pane

	a.habitsPane.SetFocused(pane == PaneHabits)
	a.tasksPane.SetFocused(pane == PaneTasks)
	a.statsPane.SetFocused(pane == PaneStats)
}

// paneAtPosition returns which pane is at the given X coordinate.
// Returns -1 if no pane is at that position.
func (a *App) paneAtPosition(x int) PaneID {
	if a.layoutMode == LayoutNarrow {
		// In narrow mode, return the active pane
		return a.activePane
	}

	if x >= a.habitsPaneStart && x < a.habitsPaneEnd {
		return PaneHabits
	}
	if x >= a.tasksPaneStart && x < a.tasksPaneEnd {
		return PaneTasks
	}
	if x >= a.statsPaneStart && x < a.statsPaneEnd {
		return PaneStats
	}
	return -1
}

// updateLayout recalculates pane sizes based on terminal dimensions.
func (a *App) updateLayout() {
	// Leave room for title bar (2) and help bar (1)
	contentHeight := a.height - 4
	if contentHeight < 10 {
		contentHeight = 10
	}

	// Content starts after title bar (1 line title + 1 line space)
	a.contentTop = 1

	// Update help overlay size
	a.helpOverlay.SetSize(a.width, a.height)

	totalWidth := a.width - 4

	// Determine layout mode based on configured threshold
	threshold := a.config.NarrowLayoutThreshold
	if threshold <= 0 {
		threshold = 100 // Default threshold
	}

	if a.width < threshold {
		// Narrow mode: single focused pane with tab bar
		a.layoutMode = LayoutNarrow

		// In narrow mode, leave room for tab bar (1 line)
		narrowHeight := contentHeight - 1
		if narrowHeight < 8 {
			narrowHeight = 8
		}

		// Give full width to all panes (only focused one will be shown)
		paneWidth := totalWidth
		if paneWidth < 20 {
			paneWidth = 20
		}

		a.habitsPane.SetSize(paneWidth, narrowHeight)
		a.tasksPane.SetSize(paneWidth, narrowHeight)
		a.statsPane.SetSize(paneWidth, narrowHeight)

		// In narrow mode, all panes occupy the same space
		a.habitsPaneStart = 0
		a.habitsPaneEnd = a.width
		a.tasksPaneStart = 0
		a.tasksPaneEnd = a.width
		a.statsPaneStart = 0
		a.statsPaneEnd = a.width
		// Content starts after tab bar in narrow mode
		a.contentTop = 2
	} else {
		// Wide mode: three panes side-by-side
		a.layoutMode = LayoutWide

		// The habit grid needs the widest column.
		habitsWidth := (totalWidth * 40) / 100
		tasksWidth := (totalWidth * 32) / 100
		statsWidth := totalWidth - habitsWidth - tasksWidth - 2

		a.habitsPane.SetSize(habitsWidth, contentHeight)
		a.tasksPane.SetSize(tasksWidth, contentHeight)
		a.statsPane.SetSize(statsWidth, contentHeight)

		// Calculate pane positions (with 1 space gaps between panes)
		a.habitsPaneStart = 0
		a.habitsPaneEnd = habitsWidth
		a.tasksPaneStart = habitsWidth + 1
		a.tasksPaneEnd = a.tasksPaneStart + tasksWidth
		a.statsPaneStart = a.tasksPaneEnd + 1
		a.statsPaneEnd = a.statsPaneStart + statsWidth
	}
}

// View renders the entire app.
func (a *App) View() string {
	if a.quitting {
		return a.renderGoodbye()
	}

	if a.confirm != nil {
		return a.renderConfirm()
	}

	// Show help overlay if active
	if a.showHelp {
		return a.helpOverlay.View()
	}

	var b strings.Builder

	// Title bar
	b.WriteString(a.renderTitleBar())
	b.WriteString("\n")

	// Main content - switch based on layout mode
	switch a.layoutMode {
	case LayoutNarrow:
		b.WriteString(a.renderNarrowContent())
	default:
		b.WriteString(a.renderWideContent())
	}
	b.WriteString("\n")

	// Help bar
	b.WriteString(a.renderHelpBar())

	return b.String()
}

func (a *App) renderConfirm() string {
	overlayWidth := 60
	if a.width > 0 {
		overlayWidth = min(60, max(20, a.width-4))
	}

	overlayStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(a.styles.ColorDanger).
		Padding(1, 2).
		Width(overlayWidth)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(a.styles.ColorDanger).
		MarginBottom(1)

	bodyStyle := lipgloss.NewStyle().
		Foreground(a.styles.ColorText)

	hintStyle := lipgloss.NewStyle().
		Foreground(a.styles.ColorTextMuted)

	var b strings.Builder
	b.WriteString(titleStyle.Render(a.confirm.title))
	b.WriteString("\n\n")
	b.WriteString(bodyStyle.Render(a.confirm.body))
	b.WriteString("\n\n")
	b.WriteString(hintStyle.Render("[y/enter] confirm    [n/esc] cancel"))

	content := overlayStyle.Render(b.String())
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, content)
}

// renderWideContent renders all three panes side by side.
func (a *App) renderWideContent() string {
	return lipgloss.JoinHorizontal(lipgloss.Top,
		a.habitsPane.View(), " ", a.tasksPane.View(), " ", a.statsPane.View())
}

// renderNarrowContent renders the focused pane with a tab bar.
func (a *App) renderNarrowContent() string {
	var b strings.Builder

	// Tab bar at top
	b.WriteString(a.renderPaneTabs())
	b.WriteString("\n")

	// Only render the active pane
	switch a.activePane {
	case PaneHabits:
		b.WriteString(a.habitsPane.View())
	case PaneTasks:
		b.WriteString(a.tasksPane.View())
	case PaneStats:
		b.WriteString(a.statsPane.View())
	}

	return b.String()
}

// renderPaneTabs renders a tab bar showing available panes.
func (a *App) renderPaneTabs() string {
	// Tab labels
	tabs := []struct {
		id    PaneID
		label string
	}{
		{PaneHabits, "Habits"},
		{PaneTasks, "Tasks"},
		{PaneStats, "Stats"},
	}

	// Create tab styles
	activeTabStyle := lipgloss.NewStyle().
		Foreground(a.styles.ColorPrimary).
		Bold(true)
	inactiveTabStyle := lipgloss.NewStyle().
		Foreground(a.styles.ColorTextMuted)

	var parts []string
	for _, tab := range tabs {
		label := tab.label
		if tab.id == a.activePane {
			// Active tab: highlighted with brackets
			label = activeTabStyle.Render("[" + label + "]")
		} else {
			// Inactive tab: muted
			label = inactiveTabStyle.Render(" " + label + " ")
		}
		parts = append(parts, label)
	}

	// Center the tabs
	tabBar := strings.Join(parts, "  ")
	padding := (a.width - lipgloss.Width(tabBar)) / 2
	if padding > 0 {
		tabBar = strings.Repeat(" ", padding) + tabBar
	}

	return tabBar
}

// renderGoodbye shows an exit message with today's progress.
func (a *App) renderGoodbye() string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  See you later!\n")
	b.WriteString("\n")

	if a.tracker != nil {
		today := a.now().Format(tracker.DateFormat)
		tasksDone, tasksTotal := a.tracker.DayTaskCounts(today)
		habitsDone, habitsTotal := a.todayHabitCounts()

		if tasksTotal > 0 || habitsTotal > 0 {
			b.WriteString("  Today's progress:\n")
			if tasksTotal > 0 {
				b.WriteString(fmt.Sprintf("     Tasks:  %d/%d (%d%%)\n",
					tasksDone, tasksTotal, a.tracker.DayCompletionRate(today)))
			}
			if habitsTotal > 0 {
				pct := (habitsDone * 100) / habitsTotal
				b.WriteString(fmt.Sprintf("     Habits: %d/%d (%d%%)\n", habitsDone, habitsTotal, pct))
			}
			b.WriteString("\n")
		}
	}

	return b.String()
}

// todayHabitCounts counts habits done today.
func (a *App) todayHabitCounts() (done, total int) {
	doc := a.tracker.Document()
	total = len(doc.Habits)
	rec := doc.Day(a.now().Format(tracker.DateFormat))
	if rec == nil {
		return 0, total
	}
	for _, h := range doc.Habits {
		if rec.Habits[h] {
			done++
		}
	}
	return done, total
}

// renderTitleBar creates the top title bar with the week range and stats.
func (a *App) renderTitleBar() string {
	title := a.styles.TitleStyle.Render(" weektrack ")

	var weekRange, dirty, stats string
	if a.tracker != nil {
		dates := a.tracker.WeekDates()
		weekRange = a.styles.DateStyle.Render(dates[0] + " - " + dates[6])

		if a.tracker.Dirty() {
			dirty = a.styles.DirtyStyle.Render(" *")
		}

		today := a.now().Format(tracker.DateFormat)
		tasksDone, tasksTotal := a.tracker.DayTaskCounts(today)
		habitsDone, habitsTotal := a.todayHabitCounts()

		var statsItems []string
		if tasksTotal > 0 {
			statsItems = append(statsItems, fmt.Sprintf("Tasks: %d/%d", tasksDone, tasksTotal))
		}
		if habitsTotal > 0 {
			statsItems = append(statsItems, fmt.Sprintf("Habits: %d/%d", habitsDone, habitsTotal))
		}
		stats = a.styles.StatLabelStyle.Render(strings.Join(statsItems, "  "))
	}

	date := a.styles.DateStyle.Render(a.now().Format("Mon Jan 2"))

	// Calculate spacing
	usedWidth := lipgloss.Width(title) + lipgloss.Width(weekRange) + lipgloss.Width(dirty) +
		lipgloss.Width(stats) + lipgloss.Width(date)
	spacerWidth := a.width - usedWidth - 8
	if spacerWidth < 2 {
		spacerWidth = 2
	}

	var parts []string
	parts = append(parts, title)
	if weekRange != "" {
		parts = append(parts, "  "+weekRange+dirty)
	}

	leftSpacer := strings.Repeat(" ", spacerWidth/2)
	rightSpacer := strings.Repeat(" ", spacerWidth-spacerWidth/2)

	parts = append(parts, leftSpacer)
	if stats != "" {
		parts = append(parts, stats)
	}
	parts = append(parts, rightSpacer)
	parts = append(parts, date)

	return strings.Join(parts, "")
}

// renderHelpBar creates the bottom help bar with context-sensitive hints.
func (a *App) renderHelpBar() string {
	if a.status != "" {
		if a.statusErr {
			return a.styles.ErrorStyle.Render(a.status)
		}
		return a.styles.StatusStyle.Render(a.status)
	}

	// Input mode help
	if a.habitsPane.IsEditing() || a.tasksPane.IsEditing() {
		return a.styles.RenderHelp(
			"enter", "save",
			"esc", "cancel",
		)
	}

	// Normal mode help based on active pane
	switch a.activePane {
	case PaneHabits:
		return a.styles.RenderHelp(
			"a", "add",
			"d", "toggle",
			"r", "rename",
			"x", "del",
			"hjkl", "nav",
			"tab", "pane",
			"?", "help",
		)
	case PaneTasks:
		return a.styles.RenderHelp(
			"a", "add",
			"A", "all days",
			"d", "done",
			"x", "del",
			"h/l", "day",
			"tab", "pane",
			"?", "help",
		)
	case PaneStats:
		return a.styles.RenderHelp(
			"ctrl+s", "save",
			"e", "export",
			"tab", "pane",
			"?", "help",
		)
	}

	return ""
}

// SetStatus sets a status message to display to the user.
func (a *App) SetStatus(msg string, isErr bool) {
	a.status = msg
	a.statusErr = isErr
	ttl := 5 * time.Second
	if isErr {
		ttl = 8 * time.Second
	}
	a.statusUntil = time.Now().Add(ttl)
}

// truncateText shortens text to at most n characters.
func truncateText(text string, n int) string {
	if len(text) <= n {
		return text
	}
	if n <= 1 {
		return "…"
	}
	return text[:n-1] + "…"
}

// Run starts the Bubble Tea program with the given storage backend, styles,
// config, and logger.
func Run(store *storage.Storage, styles *Styles, cfg *AppConfig, log logrus.FieldLogger) error {
	app := NewApp(store, styles, cfg, log)
	p := tea.NewProgram(app,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(), // Enable mouse support
	)
	_, err := p.Run()
	return err
}
