package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/atmosim/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config <scenario>",
	Short: "Print the effective config of a scenario",
	Long: `Print the scenario config after the search order and preset are
applied, as YAML. The output can be edited and passed back with --config.

Config search order:
  1. --config path
  2. ~/.atmosim/scenarios/<id>.yaml
  3. ./scenarios/<id>.yaml
  4. Embedded default

Examples:
  atmosim config coupling
  atmosim config silica --preset severe > silica.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runConfig,
}

func init() {
	configCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom scenario config YAML")
	configCmd.Flags().StringVar(&flagPreset, "preset", "", "Preset: calm, baseline, severe")
}

func runConfig(cmd *cobra.Command, args []string) {
	cfg, _, err := scenarioConfig(args[0], flagConfig, flagPreset)
	if err != nil {
		exitf("%v", err)
	}
	if err := config.Validate(&cfg); err != nil {
		exitf("%v", err)
	}

	data, err := config.Marshal(cfg)
	if err != nil {
		exitf("%v", err)
	}
	if _, err := os.Stdout.Write(data); err != nil {
		exitf("%v", err)
	}
}
