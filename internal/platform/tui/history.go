package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/atmosim/internal/registry"
	"github.com/vovakirdan/atmosim/internal/storage"
)

// History browser layout constants
const (
	minWidthForSidebar = 100 // Minimum width to show scenario sidebar
	sidebarWidth       = 24
	maxRuns            = 100
)

// HistoryModel is the Bubble Tea model for browsing stored runs.
type HistoryModel struct {
	scenarios   []registry.ScenarioInfo // First entry is "all scenarios"
	cursor      int
	store       *storage.Store
	runs        []storage.Run
	worst       bool // Order by lowest concentration instead of recency
	table       table.Model
	help        help.Model
	keys        HistoryKeyMap
	width       int
	height      int
	quitting    bool
	showSidebar bool
	err         error
}

// NewHistoryModel creates a run history browser.
func NewHistoryModel(store *storage.Store, width, height int) HistoryModel {
	scenarios := append([]registry.ScenarioInfo{{Title: "All scenarios"}}, registry.List()...)

	m := HistoryModel{
		scenarios:   scenarios,
		store:       store,
		keys:        DefaultHistoryKeyMap(),
		help:        help.New(),
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	m.table = m.createTable()
	m.loadRuns()
	return m
}

// createTable creates a new table sized for the current window.
func (m *HistoryModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "When", Width: 14},
		{Title: "Scenario", Width: 11},
		{Title: "Seed", Width: 8},
		{Title: "Ticks", Width: 7},
		{Title: "Min DU", Width: 8},
		{Title: "Risk", Width: 6},
		{Title: "Cost", Width: 14},
		{Title: "Regime", Width: 9},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// loadRuns loads runs for the selected scenario.
func (m *HistoryModel) loadRuns() {
	m.runs = nil
	m.err = nil
	if m.store != nil {
		scenario := m.scenarios[m.cursor].ID
		if m.worst {
			m.runs, m.err = m.store.WorstRuns(scenario, maxRuns)
		} else {
			m.runs, m.err = m.store.RecentRuns(scenario, maxRuns)
		}
	}
	m.updateTableRows()
}

// updateTableRows updates the table with the loaded runs.
func (m *HistoryModel) updateTableRows() {
	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		rows[i] = table.Row{
			humanize.Time(r.CreatedAt()),
			r.Scenario,
			fmt.Sprintf("%d", r.Seed),
			humanize.Comma(r.Ticks),
			fmt.Sprintf("%.1f", r.MinConcentration),
			fmt.Sprintf("%.2f", r.PeakRisk),
			FormatCost(r.TotalCost),
			r.Regime,
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the browser.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextScenario):
			m.cursor = (m.cursor + 1) % len(m.scenarios)
			m.loadRuns()
			return m, nil

		case key.Matches(msg, m.keys.PrevScenario):
			m.cursor = (m.cursor - 1 + len(m.scenarios)) % len(m.scenarios)
			m.loadRuns()
			return m, nil

		case key.Matches(msg, m.keys.ToggleOrder):
			m.worst = !m.worst
			m.loadRuns()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the browser.
func (m HistoryModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	order := "most recent"
	if m.worst {
		order = "worst depletion"
	}
	title := fmt.Sprintf("RUN HISTORY - %s (%s)", m.scenarios[m.cursor].Title, order)
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	content := panelStyle.Render(m.renderTableContent())
	if m.showSidebar {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), "  ", content))
	} else {
		b.WriteString(centerText(fmt.Sprintf("< %s >", m.scenarios[m.cursor].Title), m.width))
		b.WriteString("\n\n")
		b.WriteString(content)
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderSidebar renders the scenario list.
func (m HistoryModel) renderSidebar() string {
	style := panelStyle.Width(sidebarWidth)

	var sb strings.Builder
	sb.WriteString("Scenarios\n")
	sb.WriteString(strings.Repeat("-", sidebarWidth-4))
	sb.WriteString("\n")

	for i, s := range m.scenarios {
		cursor := "  "
		itemStyle := lipgloss.NewStyle()
		if i == m.cursor {
			cursor = "> "
			itemStyle = itemStyle.Bold(true).Foreground(lipgloss.Color("229"))
		}

		name := s.Title
		maxLen := sidebarWidth - 6
		if len(name) > maxLen {
			name = name[:maxLen-1] + "."
		}
		sb.WriteString(itemStyle.Render(cursor + name))
		sb.WriteString("\n")
	}

	return style.Render(sb.String())
}

// renderTableContent renders the table or an empty message.
func (m HistoryModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	if m.err != nil {
		return emptyStyle.Render("Could not load runs: " + m.err.Error())
	}
	if len(m.runs) == 0 {
		return emptyStyle.Render("No runs recorded yet.\nFinish a run or watch session to record one.")
	}
	return m.table.View()
}

// Runs returns the runs currently listed.
func (m HistoryModel) Runs() []storage.Run {
	return m.runs
}

// RunHistory runs the history browser.
func RunHistory(store *storage.Store, width, height int) error {
	model := NewHistoryModel(store, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
