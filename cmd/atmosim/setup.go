package main

import (
	"fmt"
	"os"
	"time"

	"github.com/vovakirdan/atmosim/internal/config"
	"github.com/vovakirdan/atmosim/internal/core"
	"github.com/vovakirdan/atmosim/internal/engine"
	"github.com/vovakirdan/atmosim/internal/registry"
	"github.com/vovakirdan/atmosim/internal/storage"
)

const defaultHistory = 100

// scenarioConfig loads a scenario config and applies a preset.
func scenarioConfig(id, customPath, preset string) (config.Config, config.Preset, error) {
	if !registry.Exists(id) {
		return config.Config{}, "", fmt.Errorf("unknown scenario %q (run 'atmosim list' to see available scenarios)", id)
	}

	p, err := config.ParsePreset(preset)
	if err != nil {
		return config.Config{}, "", err
	}

	scenario, err := registry.Create(id)
	if err != nil {
		return config.Config{}, "", err
	}

	cfg, err := scenario.Config(customPath)
	if err != nil {
		return config.Config{}, "", err
	}
	config.ApplyPreset(&cfg, p)
	return cfg, p, nil
}

// runtimeConfig builds run settings from the global flags.
func runtimeConfig() core.RuntimeConfig {
	rc := core.DefaultConfig()
	rc.TickRate = flagTPS
	rc.Workers = flagWorkers
	rc.Seed = flagSeed
	if rc.Seed == 0 {
		rc.Seed = time.Now().UnixNano()
	}
	return rc
}

// newSimulation builds a simulation with a history recorder attached.
func newSimulation(cfg config.Config) (*engine.Simulation, *engine.History, error) {
	capacity := cfg.History
	if capacity <= 0 {
		capacity = defaultHistory
	}
	history := engine.NewHistory(capacity)

	sim, err := engine.New(cfg, runtimeConfig(),
		engine.WithLogger(logger),
		engine.WithObserver(history),
	)
	if err != nil {
		return nil, nil, err
	}
	return sim, history, nil
}

// openStore opens the run store, or returns nil with a warning.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open run history database", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}

func exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
