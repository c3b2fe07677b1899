// Package threshold maps a concentration onto nonlinear amplification,
// cascade risk and a power-law exponent using a descending table of
// critical concentrations.
package threshold

import (
	"fmt"

	"github.com/vovakirdan/atmosim/internal/config"
)

// Table is an immutable, strictly decreasing list of critical concentrations.
type Table struct {
	values []float64
}

// NewTable validates and copies the given thresholds.
func NewTable(values []float64) (Table, error) {
	if err := config.ValidateThresholds(values); err != nil {
		return Table{}, err
	}
	return Table{values: append([]float64(nil), values...)}, nil
}

// Values returns a copy of the thresholds in descending order.
func (t Table) Values() []float64 {
	return append([]float64(nil), t.values...)
}

// Len returns the number of thresholds.
func (t Table) Len() int {
	return len(t.values)
}

// RegimeMap assigns regimes from descending boundaries. A concentration at
// or below boundary i is in regime i+1 or worse.
type RegimeMap struct {
	bounds Table
}

// NewRegimeMap validates one boundary per regime after stable.
func NewRegimeMap(bounds []float64) (RegimeMap, error) {
	if err := config.ValidateRegimes(bounds); err != nil {
		return RegimeMap{}, err
	}
	table, err := NewTable(bounds)
	if err != nil {
		return RegimeMap{}, err
	}
	return RegimeMap{bounds: table}, nil
}

// Boundaries returns a copy of the regime boundaries.
func (m RegimeMap) Boundaries() []float64 {
	return m.bounds.Values()
}

// Regime returns the regime for concentration c.
func (m RegimeMap) Regime(c float64) Regime {
	r := RegimeStable
	for _, b := range m.bounds.values {
		if c > b {
			break
		}
		r++
	}
	return r
}

// Regime is the qualitative state of the system.
type Regime int

const (
	RegimeStable Regime = iota
	RegimeDegraded
	RegimeCritical
	RegimeCascade
	RegimeCollapse
)

// String returns the regime name.
func (r Regime) String() string {
	switch r {
	case RegimeStable:
		return "stable"
	case RegimeDegraded:
		return "degraded"
	case RegimeCritical:
		return "critical"
	case RegimeCascade:
		return "cascade"
	case RegimeCollapse:
		return "collapse"
	default:
		return fmt.Sprintf("regime(%d)", int(r))
	}
}

// ParseRegime converts a stored regime name back into a Regime.
func ParseRegime(s string) (Regime, error) {
	for r := RegimeStable; r <= RegimeCollapse; r++ {
		if r.String() == s {
			return r, nil
		}
	}
	return RegimeStable, fmt.Errorf("threshold: unknown regime %q", s)
}

// Escalate returns the worse of r and next. Regimes never recover within a run.
func (r Regime) Escalate(next Regime) Regime {
	return max(r, next)
}
