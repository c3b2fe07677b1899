package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/atmosim/internal/threshold"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	sparkStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
)

// regimeStyles colors regimes from calm to alarming.
var regimeStyles = map[threshold.Regime]lipgloss.Style{
	threshold.RegimeStable:   lipgloss.NewStyle().Foreground(lipgloss.Color("82")),
	threshold.RegimeDegraded: lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
	threshold.RegimeCritical: lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	threshold.RegimeCascade:  lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	threshold.RegimeCollapse: lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("1")).Bold(true),
}

var sparkChars = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline renders the last width values as block characters scaled
// between their minimum and maximum.
func Sparkline(data []float64, width int) string {
	if len(data) == 0 || width <= 0 {
		return ""
	}
	if len(data) > width {
		data = data[len(data)-width:]
	}
	lo, hi := data[0], data[0]
	for _, v := range data {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}

	var sb strings.Builder
	for _, v := range data {
		idx := int((v-lo)/span*float64(len(sparkChars)-1) + 0.5)
		sb.WriteRune(sparkChars[max(0, min(idx, len(sparkChars)-1))])
	}
	return sb.String()
}

// Bar renders a horizontal bar for a value in [0, 1].
func Bar(frac float64, width int) string {
	filled := int(frac*float64(width) + 0.5)
	filled = max(0, min(filled, width))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// FormatCost formats a cost with thousands separators and two decimals.
func FormatCost(v float64) string {
	return humanize.FormatFloat("#,###.##", v)
}

// RegimeBadge renders a regime name in its color.
func RegimeBadge(r threshold.Regime) string {
	style, ok := regimeStyles[r]
	if !ok {
		style = valueStyle
	}
	return style.Render(" " + strings.ToUpper(r.String()) + " ")
}

// centerText centers text within the given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

func newLedgerTable() table.Model {
	columns := []table.Column{
		{Title: "Category", Width: 22},
		{Title: "Per tick", Width: 14},
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithHeight(12),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = lipgloss.NewStyle()
	t.SetStyles(s)
	return t
}

// updateLedger refreshes the ledger table from the current snapshot.
func (m *WatchModel) updateLedger() {
	cats := m.snap.Ledger.Categories()
	rows := make([]table.Row, 0, len(cats)+2)
	for _, c := range cats {
		rows = append(rows, table.Row{c.Name, FormatCost(c.Value)})
	}
	rows = append(rows,
		table.Row{"Total", FormatCost(m.snap.Ledger.Total)},
		table.Row{"Cumulative", FormatCost(m.snap.CumulativeCost)},
	)
	m.ledger.SetRows(rows)
}

func line(label, value string) string {
	return labelStyle.Render(fmt.Sprintf("%-16s", label)) + valueStyle.Render(value)
}

// renderDashboard lays out the state, coupling and ledger panels.
func (m WatchModel) renderDashboard() string {
	snap := m.snap
	st := snap.State
	cfg := m.sim.Config()

	var b strings.Builder

	status := fmt.Sprintf("tick %d  seed %d  %d tps", snap.Tick, snap.Seed, m.tickRate)
	if m.paused {
		status += "  PAUSED"
	}
	header := titleStyle.Render("ATMOSIM · "+cfg.Title) + "  " + labelStyle.Render(status)
	b.WriteString(centerText(header, m.width))
	b.WriteString("\n\n")

	var atmos strings.Builder
	atmos.WriteString(titleStyle.Render("Atmosphere") + "\n")
	atmos.WriteString(line("Concentration", fmt.Sprintf("%.2f DU", st.Concentration)) + "\n")
	atmos.WriteString(line("Floor", fmt.Sprintf("%.0f DU", m.sim.Floor())) + "\n")
	atmos.WriteString(line("Mean temp", fmt.Sprintf("%.2f °C", st.MeanTemperature)) + "\n")
	atmos.WriteString(line("Field strength", fmt.Sprintf("%.4f", st.FieldStrength)) + "\n")
	atmos.WriteString(line("Amplification", fmt.Sprintf("%.3f×", st.Amplification)) + "\n")
	atmos.WriteString(line("Power law", fmt.Sprintf("%.3f", st.PowerLaw)) + "\n")
	atmos.WriteString(line("Cascade risk", Bar(st.CascadeRisk, 12)+fmt.Sprintf(" %3.0f%%", st.CascadeRisk*100)) + "\n")
	atmos.WriteString(line("Regime", RegimeBadge(st.Regime)))

	if m.history != nil {
		samples := m.history.Samples()
		conc := make([]float64, len(samples))
		for i, s := range samples {
			conc[i] = s.Concentration
		}
		if len(conc) > 1 {
			atmos.WriteString("\n" + line("History", sparkStyle.Render(Sparkline(conc, 30))))
		}
	}

	var coup strings.Builder
	c := snap.Coupling
	coup.WriteString(titleStyle.Render("Coupling") + "\n")
	coup.WriteString(line("Electromagnetic", fmt.Sprintf("%.4f", c.EM)) + "\n")
	coup.WriteString(line("Thermodynamic", fmt.Sprintf("%.4f", c.Thermo)) + "\n")
	coup.WriteString(line("Photochemical", fmt.Sprintf("%.4f", c.Photo)) + "\n")
	coup.WriteString(line("Geometric", fmt.Sprintf("%.4f", c.Geo)) + "\n")
	coup.WriteString(line("Nonlinearity", fmt.Sprintf("%.4f", c.Nonlinearity)) + "\n")
	coup.WriteString(line("Interactions", humanize.Comma(int64(c.Interactions))) + "\n")
	coup.WriteString(line("Activations", humanize.Comma(int64(c.Activations))) + "\n")
	coup.WriteString(line("Agents", fmt.Sprintf("%d (+%d)", len(snap.Agents), c.Spawned)))
	for _, p := range snap.Populations {
		coup.WriteString("\n" + line(p.Name, humanize.Comma(int64(len(p.Particles)))))
	}

	ledger := titleStyle.Render("Economic impact") + "\n" + m.ledger.View()

	panels := lipgloss.JoinHorizontal(lipgloss.Top,
		panelStyle.Render(atmos.String()), " ",
		panelStyle.Render(coup.String()), " ",
		panelStyle.Render(ledger),
	)
	b.WriteString(panels)
	b.WriteString("\n")

	if m.status != "" {
		b.WriteString(labelStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}
