// Package registry provides a global registry for simulation scenarios.
// Scenarios register themselves in init() functions, allowing the CLI
// to discover and build runs without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/atmosim/internal/config"
)

// Scenario describes a runnable simulation setup.
// Scenarios carry no run state; the engine owns that.
type Scenario interface {
	// ID returns a unique identifier (e.g., "coupling", "silica").
	// Used for CLI arguments, config file names and the run store.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Description returns a one-line summary.
	Description() string

	// Config loads the scenario config. customPath overrides the search
	// order when non-empty.
	Config(customPath string) (config.Config, error)
}

// ScenarioInfo contains metadata about a registered scenario.
type ScenarioInfo struct {
	ID          string
	Title       string
	Description string
}

// Factory is a function that creates a scenario.
type Factory func() Scenario

var (
	factories = make(map[string]Factory)
	infos     = make(map[string]ScenarioInfo)
	mu        sync.RWMutex
)

// Register adds a scenario factory to the registry.
// Panics if a scenario with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: scenario %q already registered", id))
	}

	factories[id] = f

	s := f()
	infos[id] = ScenarioInfo{ID: id, Title: s.Title(), Description: s.Description()}
}

// List returns all registered scenarios, sorted by ID.
func List() []ScenarioInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]ScenarioInfo, 0, len(infos))
	for _, info := range infos {
		result = append(result, info)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a scenario by its ID.
func Create(id string) (Scenario, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown scenario %q", id)
	}

	return f(), nil
}

// Exists checks if a scenario with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
