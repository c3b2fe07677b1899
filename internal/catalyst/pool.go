// Package catalyst tracks short-lived catalytic agents spawned by strong
// pairwise coupling. Agents drift, decay one lifetime unit per tick and
// contribute their destruction rate to depletion while alive.
package catalyst

import (
	"gonum.org/v1/gonum/floats"

	"github.com/vovakirdan/atmosim/internal/core"
)

// Agent is a catalytic agent.
type Agent struct {
	Pos             core.Vec2
	Vel             core.Vec2
	DestructionRate float64
	Lifetime        int // Ticks remaining
}

// Pool is the set of live agents at a given tick. Pools are values;
// Advance returns a new pool and never touches the receiver's storage.
type Pool struct {
	Agents    []Agent
	MaxAgents int // 0 = unbounded
}

// NewPool creates an empty pool with an optional cap.
func NewPool(maxAgents int) Pool {
	return Pool{MaxAgents: maxAgents}
}

// Advance adds spawned agents, moves every agent by its velocity,
// decrements lifetimes and drops agents whose lifetime reached zero.
// An agent spawned with lifetime L is removed by the L-th call.
// When the pool is capped the newest agents are kept.
func (p Pool) Advance(spawns []Agent) Pool {
	next := make([]Agent, 0, len(p.Agents)+len(spawns))
	for _, list := range [][]Agent{p.Agents, spawns} {
		for _, a := range list {
			a.Pos = a.Pos.Add(a.Vel)
			a.Lifetime--
			if a.Lifetime <= 0 {
				continue
			}
			next = append(next, a)
		}
	}

	if p.MaxAgents > 0 && len(next) > p.MaxAgents {
		next = next[len(next)-p.MaxAgents:]
	}
	return Pool{Agents: next, MaxAgents: p.MaxAgents}
}

// Len returns the number of live agents.
func (p Pool) Len() int {
	return len(p.Agents)
}

// Potency returns the summed destruction rate of all live agents.
func (p Pool) Potency() float64 {
	rates := make([]float64, len(p.Agents))
	for i, a := range p.Agents {
		rates[i] = a.DestructionRate
	}
	return floats.Sum(rates)
}

// Clone returns a copy that shares no storage with p.
func (p Pool) Clone() Pool {
	return Pool{
		Agents:    append([]Agent(nil), p.Agents...),
		MaxAgents: p.MaxAgents,
	}
}
