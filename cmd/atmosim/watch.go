package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/atmosim/internal/platform/tui"
)

var watchCmd = &cobra.Command{
	Use:   "watch <scenario>",
	Short: "Watch a scenario on a live dashboard",
	Long: `Run the specified scenario on a live numeric dashboard.

Controls:
  Space/P  - Pause
  N        - Step once while paused
  R        - Reset from config and seed
  +/-      - Faster/slower
  X        - Force concentration down by 10 DU
  S        - Save the run
  Q/Ctrl+C - Quit (saves the run)

Examples:
  atmosim watch coupling
  atmosim watch satellite --tps 60 --seed 3
  atmosim watch silica --preset calm`,
	Args: cobra.ExactArgs(1),
	Run:  runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom scenario config YAML")
	watchCmd.Flags().StringVar(&flagPreset, "preset", "", "Preset: calm, baseline, severe")
}

func runWatch(cmd *cobra.Command, args []string) {
	cfg, preset, err := scenarioConfig(args[0], flagConfig, flagPreset)
	if err != nil {
		exitf("%v", err)
	}

	sim, history, err := newSimulation(cfg)
	if err != nil {
		exitf("%v", err)
	}

	// Continue without storage - the dashboard still works
	store := openStore()
	if store != nil {
		defer store.Close()
	}

	if err := tui.RunWatch(sim, history, store, string(preset)); err != nil {
		exitf("%v", err)
	}
}
