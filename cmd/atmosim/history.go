package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/atmosim/internal/platform/tui"
	"github.com/vovakirdan/atmosim/internal/registry"
	"github.com/vovakirdan/atmosim/internal/storage"
)

var (
	flagWorst bool
	flagStats bool
	flagPlain bool
	flagLimit int
	flagPurge bool
)

var historyCmd = &cobra.Command{
	Use:   "history [scenario]",
	Short: "Browse stored runs",
	Long: `Browse runs stored in the history database.

Without flags an interactive browser opens when stdout is a terminal.
--plain prints a table instead, --stats prints per-scenario aggregates.

Examples:
  atmosim history
  atmosim history coupling --plain --worst
  atmosim history --stats
  atmosim history silica --purge`,
	Args: cobra.MaximumNArgs(1),
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().BoolVar(&flagWorst, "worst", false, "Order by lowest concentration instead of recency")
	historyCmd.Flags().BoolVar(&flagStats, "stats", false, "Print per-scenario aggregates")
	historyCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print a plain table instead of the browser")
	historyCmd.Flags().IntVar(&flagLimit, "limit", 20, "Maximum runs to print")
	historyCmd.Flags().BoolVar(&flagPurge, "purge", false, "Delete stored runs of the scenario (all runs if none given)")
}

func runHistory(cmd *cobra.Command, args []string) {
	scenarioID := ""
	if len(args) == 1 {
		scenarioID = args[0]
		if !registry.Exists(scenarioID) {
			exitf("unknown scenario %q (run 'atmosim list' to see available scenarios)", scenarioID)
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		exitf("opening run history database: %v", err)
	}
	defer store.Close()

	switch {
	case flagPurge:
		if err := store.DeleteRuns(scenarioID); err != nil {
			exitf("deleting runs: %v", err)
		}
		fmt.Println("Stored runs deleted.")

	case flagStats:
		printStats(store)

	case flagPlain || !term.IsTerminal(int(os.Stdout.Fd())):
		printRuns(store, scenarioID)

	default:
		width, height := 100, 30
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		if err := tui.RunHistory(store, width, height); err != nil {
			exitf("%v", err)
		}
	}
}

func printRuns(store *storage.Store, scenarioID string) {
	var (
		runs []storage.Run
		err  error
	)
	if flagWorst {
		runs, err = store.WorstRuns(scenarioID, flagLimit)
	} else {
		runs, err = store.RecentRuns(scenarioID, flagLimit)
	}
	if err != nil {
		exitf("retrieving runs: %v", err)
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Run 'atmosim run <scenario>' to record one.")
		return
	}

	fmt.Printf("  %-8s  %-11s  %-14s  %7s  %8s  %5s  %16s  %s\n",
		"ID", "Scenario", "When", "Ticks", "Min DU", "Risk", "Cost", "Regime")
	fmt.Printf("  %-8s  %-11s  %-14s  %7s  %8s  %5s  %16s  %s\n",
		"--", "--------", "----", "-----", "------", "----", "----", "------")
	for _, r := range runs {
		fmt.Printf("  %-8s  %-11s  %-14s  %7s  %8.2f  %5.2f  %16s  %s\n",
			r.ID[:8],
			r.Scenario,
			humanize.Time(r.CreatedAt()),
			humanize.Comma(r.Ticks),
			r.MinConcentration,
			r.PeakRisk,
			tui.FormatCost(r.TotalCost),
			r.Regime,
		)
	}
}

func printStats(store *storage.Store) {
	stats, err := store.AllScenarioStats()
	if err != nil {
		exitf("retrieving stats: %v", err)
	}

	if len(stats) == 0 {
		fmt.Println("No runs recorded yet.")
		return
	}

	fmt.Printf("  %-11s  %5s  %8s  %5s  %16s  %16s  %s\n",
		"Scenario", "Runs", "Min DU", "Risk", "Avg cost", "Max cost", "Last run")
	for _, s := range stats {
		fmt.Printf("  %-11s  %5d  %8.2f  %5.2f  %16s  %16s  %s\n",
			s.Scenario,
			s.Runs,
			s.MinConcentration,
			s.PeakRisk,
			tui.FormatCost(s.AvgCost),
			tui.FormatCost(s.MaxCost),
			humanize.Time(s.LastRun()),
		)
	}
}
