// Package core provides fundamental types and utilities for the simulation.
// It has no UI dependencies so that every simulation package stays pure and
// testable.
package core

import "math"

// Vec2 is a point or displacement in the 2D simulation domain.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns v multiplied by s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Midpoint returns the point halfway between v and o.
func (v Vec2) Midpoint(o Vec2) Vec2 {
	return Vec2{X: (v.X + o.X) / 2, Y: (v.Y + o.Y) / 2}
}

// Bounds is an axis-aligned rectangle limiting particle motion.
type Bounds struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// NewBounds creates bounds anchored at the origin with the given size.
func NewBounds(w, h float64) Bounds {
	return Bounds{MaxX: w, MaxY: h}
}

// Contains returns true if p lies inside the bounds (edges included).
func (b Bounds) Contains(p Vec2) bool {
	return p.X >= b.MinX && p.X <= b.MaxX && p.Y >= b.MinY && p.Y <= b.MaxY
}

// Reflect keeps pos inside the bounds. A velocity component that pushed the
// position out is negated and scaled by restitution.
func (b Bounds) Reflect(pos, vel Vec2, restitution float64) (Vec2, Vec2) {
	if pos.X < b.MinX || pos.X > b.MaxX {
		vel.X = -vel.X * restitution
		pos.X = ClampF(pos.X, b.MinX, b.MaxX)
	}
	if pos.Y < b.MinY || pos.Y > b.MaxY {
		vel.Y = -vel.Y * restitution
		pos.Y = ClampF(pos.Y, b.MinY, b.MaxY)
	}
	return pos, vel
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Sign returns -1, 0 or 1 according to the sign of x.
func Sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}
