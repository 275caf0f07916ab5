package model

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestVectorArithmetic(t *testing.T) {
	a := Vector3{1, 2, 3}
	b := Vector3{4, 5, 6}

	if got := a.Add(b); got != (Vector3{5, 7, 9}) {
		t.Errorf("Add = %v, want {5 7 9}", got)
	}
	if got := b.Sub(a); got != (Vector3{3, 3, 3}) {
		t.Errorf("Sub = %v, want {3 3 3}", got)
	}
	if got := a.Scale(2); got != (Vector3{2, 4, 6}) {
		t.Errorf("Scale = %v, want {2 4 6}", got)
	}
	if got := a.WithZ(0); got != (Vector3{1, 2, 0}) {
		t.Errorf("WithZ = %v, want {1 2 0}", got)
	}
}

func TestVectorRhoPhi(t *testing.T) {
	v := Vector3{3, 4, 7}
	if got := v.Rho(); !almostEqual(got, 5) {
		t.Errorf("Rho = %v, want 5", got)
	}
	if got := (Vector3{0, 2, 0}).Phi(); !almostEqual(got, math.Pi/2) {
		t.Errorf("Phi = %v, want pi/2", got)
	}
}

func TestVectorCross(t *testing.T) {
	x := Vector3{1, 0, 0}
	y := Vector3{0, 1, 0}
	if got := x.Cross(y); got != (Vector3{0, 0, 1}) {
		t.Errorf("x cross y = %v, want {0 0 1}", got)
	}
	if got := y.Cross(x); got != (Vector3{0, 0, -1}) {
		t.Errorf("y cross x = %v, want {0 0 -1}", got)
	}
}

func TestVectorUnit(t *testing.T) {
	v := Vector3{3, 0, 4}
	u := v.Unit()
	if !almostEqual(u.Distance(Vector3{}), 1) {
		t.Errorf("unit vector length = %v, want 1", u.Distance(Vector3{}))
	}
	if !almostEqual(u.X, 0.6) || !almostEqual(u.Z, 0.8) {
		t.Errorf("Unit = %v, want {0.6 0 0.8}", u)
	}

	// The zero vector has no direction and comes back unchanged.
	if got := (Vector3{}).Unit(); got != (Vector3{}) {
		t.Errorf("zero Unit = %v, want zero", got)
	}
}

func TestMidpoint(t *testing.T) {
	got := Midpoint(Vector3{0, 0, 0}, Vector3{2, 4, 6})
	if got != (Vector3{1, 2, 3}) {
		t.Errorf("Midpoint = %v, want {1 2 3}", got)
	}
}

func TestPolygonVertexWraps(t *testing.T) {
	p := Polygon{
		{0, 0, 0}, {0, 1, 0}, {1, 1, 0}, {1, 0, 0},
	}
	if got := p.Vertex(4); got != p[0] {
		t.Errorf("Vertex(4) = %v, want %v", got, p[0])
	}
	if got := p.Vertex(-1); got != p[3] {
		t.Errorf("Vertex(-1) = %v, want %v", got, p[3])
	}
}
