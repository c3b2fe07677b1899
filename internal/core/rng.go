package core

// SimpleRNG is a deterministic pseudo-random number generator.
// Uses a 64-bit LCG so runs are reproducible across platforms.
type SimpleRNG struct {
	state uint64
}

// NewSimpleRNG creates a new RNG with the given seed.
func NewSimpleRNG(seed int64) *SimpleRNG {
	s := uint64(seed) //#nosec G115 -- intentional conversion for RNG seeding
	if s == 0 {
		s = 1
	}
	return &SimpleRNG{state: s}
}

// Next generates the next random uint64.
func (r *SimpleRNG) Next() uint64 {
	r.state = r.state*6364136223846793005 + 1442695040888963407
	return r.state
}

// Intn returns a random int in [0, n).
func (r *SimpleRNG) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Next() % uint64(n)) //#nosec G115 -- n is always positive
}

// Float64 returns a random float64 in [0, 1).
func (r *SimpleRNG) Float64() float64 {
	return float64(r.Next()>>11) / float64(1<<53)
}

// Range returns a random float64 in [lo, hi). Equal bounds return lo
// without consuming a draw.
func (r *SimpleRNG) Range(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + r.Float64()*(hi-lo)
}

// Symmetric returns a random float64 in [-amp, amp).
func (r *SimpleRNG) Symmetric(amp float64) float64 {
	return r.Range(-amp, amp)
}

// Chance returns true with probability p.
func (r *SimpleRNG) Chance(p float64) bool {
	if p <= 0 {
		return false
	}
	return r.Float64() < p
}

// State returns the internal state for snapshots and hashing.
func (r *SimpleRNG) State() uint64 {
	return r.state
}
