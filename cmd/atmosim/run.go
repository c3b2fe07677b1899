package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/atmosim/internal/engine"
	"github.com/vovakirdan/atmosim/internal/platform/tui"
	"github.com/vovakirdan/atmosim/internal/storage"
)

var (
	flagTicks  int
	flagConfig string
	flagPreset string
	flagEvery  int
	flagNoSave bool
)

var (
	reportTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	reportLabel = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
)

var runCmd = &cobra.Command{
	Use:   "run <scenario>",
	Short: "Run a scenario headless and print a report",
	Long: `Run the specified scenario for a number of ticks without a dashboard,
printing a progress line every --every ticks and a summary at the end.
The run is stored in the history database unless --no-save is given.

Preset options:
  calm     - Half the populations and spawn probability
  baseline - Scenario as configured
  severe   - 1.5x populations, double spawn probability

Examples:
  atmosim run coupling
  atmosim run silica --ticks 1000 --every 100 --seed 7
  atmosim run integrated --preset severe
  atmosim run coupling --config ./my-coupling.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runRun,
}

func init() {
	runCmd.Flags().IntVar(&flagTicks, "ticks", 500, "Number of ticks to simulate")
	runCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom scenario config YAML")
	runCmd.Flags().StringVar(&flagPreset, "preset", "", "Preset: calm, baseline, severe")
	runCmd.Flags().IntVar(&flagEvery, "every", 0, "Print progress every N ticks (0 = ten lines per run)")
	runCmd.Flags().BoolVar(&flagNoSave, "no-save", false, "Do not store the run in the history database")
}

func runRun(cmd *cobra.Command, args []string) {
	if flagTicks <= 0 {
		exitf("--ticks must be positive")
	}

	cfg, preset, err := scenarioConfig(args[0], flagConfig, flagPreset)
	if err != nil {
		exitf("%v", err)
	}

	sim, history, err := newSimulation(cfg)
	if err != nil {
		exitf("%v", err)
	}

	every := flagEvery
	if every <= 0 {
		every = max(flagTicks/10, 1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	width := 80
	if w, _, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
	}

	fmt.Println(reportTitle.Render(fmt.Sprintf("%s (%s)", cfg.Title, preset)))
	fmt.Println(reportLabel.Render(fmt.Sprintf("seed %d  ticks %s  floor %.0f DU",
		sim.Runtime().Seed, humanize.Comma(int64(flagTicks)), sim.Floor())))
	fmt.Println()
	fmt.Printf("  %8s  %9s  %7s  %5s  %7s  %16s  %s\n",
		"Tick", "DU", "Amp", "Risk", "Agents", "Cost/tick", "Regime")

	snap := sim.Snapshot()
	concentration := []float64{snap.State.Concentration}
	for done := 0; done < flagTicks; {
		n := min(every, flagTicks-done)
		snap, err = sim.Run(ctx, n)
		if errors.Is(err, context.Canceled) {
			fmt.Println()
			fmt.Println(reportLabel.Render("interrupted"))
			break
		}
		done += n
		concentration = append(concentration, snap.State.Concentration)
		printProgress(snap)
	}

	run := storage.NewRun(snap, history, string(preset))
	fmt.Println()
	printSummary(snap, run, concentration, width)

	if flagNoSave || snap.Tick == 0 {
		return
	}
	store := openStore()
	if store == nil {
		return
	}
	defer store.Close()

	id, err := store.SaveRun(run, storage.NewSamples(history.Samples()))
	if err != nil {
		logger.Error("could not save run", "error", err)
		return
	}
	logger.Info("run saved", "id", id, "db", flagDBPath)
	fmt.Println(reportLabel.Render("saved as run " + id))
}

func printProgress(snap engine.Snapshot) {
	st := snap.State
	fmt.Printf("  %8s  %9.2f  %7.3f  %5.2f  %7s  %16s  %s\n",
		humanize.Comma(int64(snap.Tick)), //#nosec G115 -- tick counts fit in int64
		st.Concentration,
		st.Amplification,
		st.CascadeRisk,
		humanize.Comma(int64(len(snap.Agents))),
		tui.FormatCost(snap.Ledger.Total),
		st.Regime,
	)
}

func printSummary(snap engine.Snapshot, run storage.Run, concentration []float64, width int) {
	st := snap.State
	line := func(label, value string) {
		fmt.Println("  " + reportLabel.Render(fmt.Sprintf("%-20s", label)) + value)
	}

	fmt.Println(reportTitle.Render("Summary"))
	line("Final concentration", fmt.Sprintf("%.2f DU", st.Concentration))
	line("Minimum", fmt.Sprintf("%.2f DU", run.MinConcentration))
	line("Peak amplification", fmt.Sprintf("%.3f", run.PeakAmplification))
	line("Peak cascade risk", fmt.Sprintf("%.2f", run.PeakRisk))
	line("Power law", fmt.Sprintf("%.3f", st.PowerLaw))
	line("Regime", tui.RegimeBadge(st.Regime))
	line("Agents", humanize.Comma(int64(len(snap.Agents))))
	line("Particles", humanize.Comma(int64(snap.ParticleCount())))
	line("Cumulative cost", tui.FormatCost(snap.CumulativeCost))
	if len(concentration) > 1 {
		line("Trajectory", tui.Sparkline(concentration, max(width-26, 10)))
	}

	fmt.Println()
	fmt.Println(reportTitle.Render("Last tick costs"))
	cats := snap.Ledger.Categories()
	nameW := 0
	for _, c := range cats {
		nameW = max(nameW, len(c.Name))
	}
	for _, c := range cats {
		fmt.Printf("  %s  %16s\n", reportLabel.Render(c.Name+strings.Repeat(" ", nameW-len(c.Name))), tui.FormatCost(c.Value))
	}
	fmt.Printf("  %s  %16s\n", reportLabel.Render("Total"+strings.Repeat(" ", nameW-len("Total"))), tui.FormatCost(snap.Ledger.Total))
}
