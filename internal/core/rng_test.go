package core

import "testing"

func TestSimpleRNGDeterminism(t *testing.T) {
	a := NewSimpleRNG(42)
	b := NewSimpleRNG(42)
	for i := range 1000 {
		if a.Next() != b.Next() {
			t.Fatalf("sequences diverged at draw %d", i)
		}
	}
}

func TestSimpleRNGZeroSeed(t *testing.T) {
	if NewSimpleRNG(0).State() != NewSimpleRNG(1).State() {
		t.Error("seed 0 should behave like seed 1")
	}
}

func TestSimpleRNGRanges(t *testing.T) {
	r := NewSimpleRNG(7)
	for range 10000 {
		f := r.Float64()
		if f < 0 || f >= 1 {
			t.Fatalf("Float64() = %v out of [0, 1)", f)
		}
		v := r.Range(-2, 3)
		if v < -2 || v >= 3 {
			t.Fatalf("Range(-2, 3) = %v", v)
		}
		if n := r.Intn(5); n < 0 || n >= 5 {
			t.Fatalf("Intn(5) = %d", n)
		}
	}
}

func TestSimpleRNGRangeDegenerate(t *testing.T) {
	r := NewSimpleRNG(9)
	before := r.State()
	if v := r.Range(4, 4); v != 4 {
		t.Errorf("Range(4, 4) = %v, expected 4", v)
	}
	if r.State() != before {
		t.Error("degenerate Range should not consume a draw")
	}
	if r.Chance(0) {
		t.Error("Chance(0) returned true")
	}
}

func TestThermalField(t *testing.T) {
	f := NewThermalField(3, 2.5, 0.01, 3)
	g := NewThermalField(3, 2.5, 0.01, 3)
	for x := 0.0; x < 800; x += 37 {
		p := Vec2{X: x, Y: x / 2}
		o := f.Offset(p)
		if o < -2.5 || o > 2.5 {
			t.Fatalf("Offset(%v) = %v outside amplitude", p, o)
		}
		if o != g.Offset(p) {
			t.Fatalf("same seed produced different offsets at %v", p)
		}
	}

	var flat *ThermalField
	if flat.Offset(Vec2{X: 1, Y: 1}) != 0 {
		t.Error("nil field should yield zero offset")
	}
}
