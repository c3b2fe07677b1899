// atmosim runs deterministic atmospheric coupling simulations in the terminal.
//
// Usage:
//
//	atmosim list                 - List available scenarios
//	atmosim run <scenario>       - Run a scenario headless and print a report
//	atmosim watch <scenario>     - Watch a scenario on a live dashboard
//	atmosim history [scenario]   - Browse stored runs
//	atmosim config <scenario>    - Print the effective scenario config
//
// Global flags:
//
//	--seed <value>       - RNG seed (0 = random based on time)
//	--tps <rate>         - Dashboard ticks per second (default: 30)
//	--workers <n>        - Goroutines for the coupling pass (0 = scenario default)
//	--db <path>          - Run history database (default: ~/.atmosim/runs.db)
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	// Import scenarios to register them
	_ "github.com/vovakirdan/atmosim/internal/scenarios"
)

var (
	// Global flags
	flagSeed     int64
	flagTPS      int
	flagWorkers  int
	flagDBPath   string
	flagLogLevel string

	logger *log.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "atmosim",
	Short: "Atmosim - agent-based ozone depletion and coupling simulator",
	Long: `Atmosim simulates interacting particle populations, the catalytic
agents they spawn, threshold amplification of ozone depletion and the
economic costs that follow. Runs are deterministic for a given seed.

Available commands:
  list     - Show all scenarios
  run      - Run a scenario headless and print a report
  watch    - Live dashboard for a scenario
  history  - Browse stored runs
  config   - Print the effective config of a scenario

Examples:
  atmosim list
  atmosim run coupling --ticks 500 --seed 42
  atmosim watch silica --preset severe
  atmosim history --worst
  atmosim config satellite > satellite.yaml`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := log.ParseLevel(flagLogLevel)
		if err != nil {
			return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
		}
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "atmosim",
			Level:           level,
		})
		return nil
	},
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().IntVar(&flagTPS, "tps", 30, "Dashboard tick rate (ticks per second)")
	rootCmd.PersistentFlags().IntVar(&flagWorkers, "workers", 0, "Goroutines for the coupling pass (0 = scenario default)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.atmosim/runs.db", "Path to run history database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(configCmd)
}
