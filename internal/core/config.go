package core

// RuntimeConfig contains run-level settings that are not part of a scenario.
type RuntimeConfig struct {
	TickRate int   // Ticks per second when driven by a live front end (default 30)
	Seed     int64 // RNG seed for deterministic runs
	Workers  int   // Goroutines used by the coupling pass (0 = one per CPU)
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		TickRate: 30,
		Seed:     1,
		Workers:  0,
	}
}
