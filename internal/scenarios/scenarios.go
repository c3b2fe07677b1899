// Package scenarios registers the built-in simulation scenarios.
// Import it for side effects:
//
//	import _ "github.com/vovakirdan/atmosim/internal/scenarios"
//
// Every scenario runs on the same engine; they differ only in their
// species lists and constants, which live in YAML.
package scenarios

import (
	"fmt"

	"github.com/vovakirdan/atmosim/internal/config"
	"github.com/vovakirdan/atmosim/internal/registry"
)

// Scenario is a data-driven scenario backed by a YAML config.
type Scenario struct {
	id          string
	title       string
	description string
}

// ID returns the scenario identifier.
func (s Scenario) ID() string {
	return s.id
}

// Title returns the display name.
func (s Scenario) Title() string {
	return s.title
}

// Description returns a one-line summary.
func (s Scenario) Description() string {
	return s.description
}

// Config loads the scenario config through the standard search order.
func (s Scenario) Config(customPath string) (config.Config, error) {
	cfg, err := config.Load(s.id, customPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("scenarios: %s: %w", s.id, err)
	}
	if cfg.Title == "" {
		cfg.Title = s.title
	}
	return cfg, nil
}

var builtin = []Scenario{
	{
		id:          "coupling",
		title:       "Aluminum / Sulfur Coupling",
		description: "Resonant aluminum particles coupling with sulfur aerosol",
	},
	{
		id:          "economics",
		title:       "Coupling Economics",
		description: "Aluminum, sulfur and photon flux with full cost accounting",
	},
	{
		id:          "satellite",
		title:       "Satellite Reentry Debris",
		description: "Accumulating aluminum oxide from reentries with navigation and forcing costs",
	},
	{
		id:          "silica",
		title:       "Silica Settling",
		description: "Injected silica that settles out and is recycled, over a high ozone floor",
	},
	{
		id:          "integrated",
		title:       "Integrated Silica / Water Vapor",
		description: "Silica and water vapor over a varying thermal field",
	},
}

func init() {
	for _, s := range builtin {
		registry.Register(s.id, func() registry.Scenario { return s })
	}
}
