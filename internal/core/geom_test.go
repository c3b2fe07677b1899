package core

import (
	"math"
	"testing"
)

func TestBoundsReflect(t *testing.T) {
	b := NewBounds(800, 400)

	tests := []struct {
		name    string
		pos     Vec2
		vel     Vec2
		wantPos Vec2
		wantVel Vec2
	}{
		{
			name:    "inside untouched",
			pos:     Vec2{X: 100, Y: 100},
			vel:     Vec2{X: 1, Y: -1},
			wantPos: Vec2{X: 100, Y: 100},
			wantVel: Vec2{X: 1, Y: -1},
		},
		{
			name:    "left edge",
			pos:     Vec2{X: -5, Y: 100},
			vel:     Vec2{X: -2, Y: 1},
			wantPos: Vec2{X: 0, Y: 100},
			wantVel: Vec2{X: 1.4, Y: 1},
		},
		{
			name:    "bottom edge",
			pos:     Vec2{X: 10, Y: 405},
			vel:     Vec2{X: 0, Y: 1},
			wantPos: Vec2{X: 10, Y: 400},
			wantVel: Vec2{X: 0, Y: -0.7},
		},
		{
			name:    "corner",
			pos:     Vec2{X: 801, Y: -1},
			vel:     Vec2{X: 1, Y: -1},
			wantPos: Vec2{X: 800, Y: 0},
			wantVel: Vec2{X: -0.7, Y: 0.7},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pos, vel := b.Reflect(tc.pos, tc.vel, 0.7)
			if !near(pos.X, tc.wantPos.X) || !near(pos.Y, tc.wantPos.Y) {
				t.Errorf("pos = %+v, expected %+v", pos, tc.wantPos)
			}
			if !near(vel.X, tc.wantVel.X) || !near(vel.Y, tc.wantVel.Y) {
				t.Errorf("vel = %+v, expected %+v", vel, tc.wantVel)
			}
			if !b.Contains(pos) {
				t.Errorf("reflected position %+v outside bounds", pos)
			}
		})
	}
}

func TestVec2(t *testing.T) {
	a := Vec2{X: 3, Y: 4}
	if a.Len() != 5 {
		t.Errorf("Len() = %v, expected 5", a.Len())
	}
	m := a.Midpoint(Vec2{X: 5, Y: 0})
	if m.X != 4 || m.Y != 2 {
		t.Errorf("Midpoint() = %+v, expected {4 2}", m)
	}
	if d := a.Sub(Vec2{X: 1, Y: 1}).Add(Vec2{X: 1, Y: 1}); d != a {
		t.Errorf("Sub/Add round trip = %+v", d)
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		val, min, max, expected float64
	}{
		{5, 0, 10, 5},
		{-1, 0, 10, 0},
		{11, 0, 10, 10},
	}

	for _, tc := range tests {
		if got := ClampF(tc.val, tc.min, tc.max); got != tc.expected {
			t.Errorf("ClampF(%v, %v, %v) = %v, expected %v", tc.val, tc.min, tc.max, got, tc.expected)
		}
	}
}

func TestSign(t *testing.T) {
	if Sign(2) != 1 || Sign(-0.1) != -1 || Sign(0) != 0 {
		t.Error("Sign() returned unexpected values")
	}
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
