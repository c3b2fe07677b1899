package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/atmosim/internal/engine"
	"github.com/vovakirdan/atmosim/internal/storage"
)

// Tick rate limits for the live dashboard.
const (
	minTickRate = 1
	maxTickRate = 240
	perturbStep = 10.0 // DU removed by the perturb key
)

// WatchModel is the Bubble Tea model for the live dashboard.
type WatchModel struct {
	sim      *engine.Simulation
	history  *engine.History // Registered as an observer on sim
	store    *storage.Store  // May be nil
	preset   string
	snap     engine.Snapshot
	keys     WatchKeyMap
	help     help.Model
	ledger   table.Model
	tickRate int
	paused   bool
	width    int
	height   int
	quitting bool
	saved    bool // Whether the current run has been stored
	status   string
}

// NewWatchModel creates a dashboard for sim. history must already observe sim.
func NewWatchModel(sim *engine.Simulation, history *engine.History, store *storage.Store, preset string) WatchModel {
	tickRate := sim.Runtime().TickRate
	if tickRate <= 0 {
		tickRate = 30
	}

	m := WatchModel{
		sim:      sim,
		history:  history,
		store:    store,
		preset:   preset,
		snap:     sim.Snapshot(),
		keys:     DefaultWatchKeyMap(),
		help:     help.New(),
		ledger:   newLedgerTable(),
		tickRate: tickRate,
		width:    100,
		height:   30,
	}
	m.updateLedger()
	return m
}

// Init starts the tick loop.
func (m WatchModel) Init() tea.Cmd {
	return tickCmd(m.tickRate)
}

// Update handles messages and updates the model state.
func (m WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m WatchModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.saveRun()
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Pause):
		m.paused = !m.paused

	case key.Matches(msg, m.keys.Step):
		if m.paused {
			m.step()
		}

	case key.Matches(msg, m.keys.Reset):
		m.sim.Reset()
		m.history.Clear()
		m.snap = m.sim.Snapshot()
		m.saved = false
		m.status = "reset"
		m.updateLedger()

	case key.Matches(msg, m.keys.Faster):
		m.tickRate = min(m.tickRate*2, maxTickRate)

	case key.Matches(msg, m.keys.Slower):
		m.tickRate = max(m.tickRate/2, minTickRate)

	case key.Matches(msg, m.keys.Perturb):
		m.sim.SetConcentration(m.snap.State.Concentration - perturbStep)
		m.snap = m.sim.Snapshot()
		m.status = fmt.Sprintf("concentration forced to %.1f DU", m.snap.State.Concentration)

	case key.Matches(msg, m.keys.Save):
		m.saved = false
		m.saveRun()

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}

	return m, nil
}

// handleTick advances the simulation unless paused.
func (m WatchModel) handleTick() (tea.Model, tea.Cmd) {
	if !m.paused {
		m.step()
	}
	return m, tickCmd(m.tickRate)
}

func (m *WatchModel) step() {
	m.snap = m.sim.Step()
	m.saved = false
	m.updateLedger()
}

// saveRun stores the current run once. Runs with no ticks are skipped.
func (m *WatchModel) saveRun() {
	if m.store == nil || m.saved || m.snap.Tick == 0 {
		return
	}
	run := storage.NewRun(m.snap, m.history, m.preset)
	id, err := m.store.SaveRun(run, storage.NewSamples(m.history.Samples()))
	if err != nil {
		m.status = "save failed: " + err.Error()
		return
	}
	m.saved = true
	m.status = "saved run " + id[:8]
}

// Snapshot returns the last snapshot shown.
func (m WatchModel) Snapshot() engine.Snapshot {
	return m.snap
}

// Paused reports whether the clock is paused.
func (m WatchModel) Paused() bool {
	return m.paused
}

// TickRate returns the current ticks per second.
func (m WatchModel) TickRate() int {
	return m.tickRate
}

// View renders the dashboard.
func (m WatchModel) View() string {
	if m.quitting {
		return ""
	}
	return m.renderDashboard()
}

// RunWatch starts the live dashboard.
func RunWatch(sim *engine.Simulation, history *engine.History, store *storage.Store, preset string) error {
	model := NewWatchModel(sim, history, store, preset)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
