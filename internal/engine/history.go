package engine

import (
	"github.com/vovakirdan/atmosim/internal/threshold"
)

// Observer is notified with every snapshot the simulation produces.
// Observers must not retain the pointer past the call.
type Observer interface {
	Observe(snap *Snapshot)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(snap *Snapshot)

// Observe calls f(snap).
func (f ObserverFunc) Observe(snap *Snapshot) {
	f(snap)
}

// Sample is the scalar state recorded for one tick.
type Sample struct {
	Tick          uint64
	Concentration float64
	Amplification float64
	CascadeRisk   float64
	PowerLaw      float64
	Cost          float64
	Agents        int
	Regime        threshold.Regime
}

// SampleOf extracts the recorded scalars from a snapshot.
func SampleOf(snap *Snapshot) Sample {
	return Sample{
		Tick:          snap.Tick,
		Concentration: snap.State.Concentration,
		Amplification: snap.State.Amplification,
		CascadeRisk:   snap.State.CascadeRisk,
		PowerLaw:      snap.State.PowerLaw,
		Cost:          snap.Ledger.Total,
		Agents:        len(snap.Agents),
		Regime:        snap.State.Regime,
	}
}

// History keeps the most recent samples in a ring buffer and tracks run
// extrema over every observed tick. It is not safe for concurrent use.
type History struct {
	samples []Sample
	next    int
	full    bool

	count             int
	minConcentration  float64
	peakRisk          float64
	peakAmplification float64
}

// NewHistory creates a history holding up to capacity samples.
func NewHistory(capacity int) *History {
	if capacity < 1 {
		capacity = 1
	}
	return &History{samples: make([]Sample, capacity)}
}

// Observe records a snapshot.
func (h *History) Observe(snap *Snapshot) {
	s := SampleOf(snap)
	h.samples[h.next] = s
	h.next = (h.next + 1) % len(h.samples)
	if h.next == 0 {
		h.full = true
	}

	if h.count == 0 || s.Concentration < h.minConcentration {
		h.minConcentration = s.Concentration
	}
	h.peakRisk = max(h.peakRisk, s.CascadeRisk)
	h.peakAmplification = max(h.peakAmplification, s.Amplification)
	h.count++
}

// Samples returns the retained samples, oldest first.
func (h *History) Samples() []Sample {
	if !h.full {
		return append([]Sample(nil), h.samples[:h.next]...)
	}
	out := make([]Sample, 0, len(h.samples))
	out = append(out, h.samples[h.next:]...)
	return append(out, h.samples[:h.next]...)
}

// Len returns the number of retained samples.
func (h *History) Len() int {
	if h.full {
		return len(h.samples)
	}
	return h.next
}

// Observed returns the number of snapshots seen since the last Clear.
func (h *History) Observed() int {
	return h.count
}

// MinConcentration returns the lowest concentration observed.
func (h *History) MinConcentration() float64 {
	return h.minConcentration
}

// PeakRisk returns the highest cascade risk observed.
func (h *History) PeakRisk() float64 {
	return h.peakRisk
}

// PeakAmplification returns the highest amplification observed.
func (h *History) PeakAmplification() float64 {
	return h.peakAmplification
}

// Clear drops all samples and extrema.
func (h *History) Clear() {
	clear(h.samples)
	h.next = 0
	h.full = false
	h.count = 0
	h.minConcentration = 0
	h.peakRisk = 0
	h.peakAmplification = 0
}
