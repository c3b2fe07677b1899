package config

import (
	"fmt"
	"math"
)

// Preset represents a named intensity level applied on top of a scenario.
type Preset string

const (
	PresetCalm     Preset = "calm"
	PresetBaseline Preset = "baseline"
	PresetSevere   Preset = "severe"
)

// presetScale returns the population and spawn multipliers for a preset.
func presetScale(preset Preset) (population, spawn float64) {
	switch preset {
	case PresetCalm:
		return 0.5, 0.5
	case PresetSevere:
		return 1.5, 2.0
	default:
		return 1.0, 1.0
	}
}

// ParsePreset converts a flag value into a Preset.
func ParsePreset(s string) (Preset, error) {
	switch p := Preset(s); p {
	case "", PresetBaseline:
		return PresetBaseline, nil
	case PresetCalm, PresetSevere:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown preset %q (want calm, baseline or severe)", s)
	}
}

// ApplyPreset scales initial populations, caps and spawn probability.
func ApplyPreset(cfg *Config, preset Preset) {
	population, spawn := presetScale(preset)
	if population == 1 && spawn == 1 {
		return
	}

	for i := range cfg.Species {
		s := &cfg.Species[i]
		s.Count = int(math.Round(float64(s.Count) * population))
		if s.MaxCount > 0 {
			s.MaxCount = max(s.Count, int(math.Round(float64(s.MaxCount)*population)))
		}
	}
	cfg.Coupling.SpawnProbability = math.Min(1, cfg.Coupling.SpawnProbability*spawn)
}
