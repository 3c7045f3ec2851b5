package geom

import (
	"math"
	"testing"
)

func TestEnclosingOrderIndependent(t *testing.T) {
	tests := []struct {
		name string
		a, b Point
	}{
		{"min first", Pt(0, 0), Pt(100, 100)},
		{"max first", Pt(100, 100), Pt(0, 0)},
		{"anti-diagonal", Pt(0, 100), Pt(100, 0)},
		{"anti-diagonal reversed", Pt(100, 0), Pt(0, 100)},
	}

	want := Rect{Min: Pt(0, 0), Max: Pt(100, 100)}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Enclosing(tt.a, tt.b); got != want {
				t.Errorf("Enclosing(%v, %v) = %v, want %v", tt.a, tt.b, got, want)
			}
		})
	}
}

func TestEmptyRectExpand(t *testing.T) {
	r := EmptyRect()
	if !r.IsEmpty() {
		t.Fatal("EmptyRect() should be empty")
	}

	r.Expand(Pt(5, -3))
	r.Expand(Pt(-1, 7))
	if r.IsEmpty() {
		t.Fatal("rect should not be empty after Expand")
	}
	if r.Min != Pt(-1, -3) || r.Max != Pt(5, 7) {
		t.Errorf("rect = %v, want min (-1,-3) max (5,7)", r)
	}
	if r.Width() != 6 || r.Height() != 10 {
		t.Errorf("size = %vx%v, want 6x10", r.Width(), r.Height())
	}
	if c := r.Center(); c != Pt(2, 2) {
		t.Errorf("Center() = %v, want (2,2)", c)
	}

	// Empty rects do not contribute
	before := r
	r.ExpandRect(EmptyRect())
	if r != before {
		t.Errorf("ExpandRect(empty) changed rect to %v", r)
	}
}

func TestRectContainsIntersects(t *testing.T) {
	r := Enclosing(Pt(0, 0), Pt(10, 10))

	if !r.Contains(Pt(10, 0)) {
		t.Error("edge point should be contained")
	}
	if r.Contains(Pt(10.1, 5)) {
		t.Error("outside point should not be contained")
	}
	if !r.Intersects(Enclosing(Pt(5, 5), Pt(20, 20))) {
		t.Error("overlapping rects should intersect")
	}
	if r.Intersects(Enclosing(Pt(11, 11), Pt(20, 20))) {
		t.Error("disjoint rects should not intersect")
	}
	if got := r.Inflate(1); got.Min != Pt(-1, -1) || got.Max != Pt(11, 11) {
		t.Errorf("Inflate(1) = %v", got)
	}
}

func TestPointRotate(t *testing.T) {
	p := Pt(1, 0).Rotate(90)
	if math.Abs(p.X) > 1e-9 || math.Abs(p.Y-1) > 1e-9 {
		t.Errorf("Rotate(90) = %v, want (0,1)", p)
	}
	if got := Pt(2, 3).Rotate(0); got != Pt(2, 3) {
		t.Errorf("Rotate(0) = %v, want unchanged", got)
	}
	if got := Pt(2, 3).MirrorX(); got != Pt(-2, 3) {
		t.Errorf("MirrorX() = %v", got)
	}
	if got := Pt(1, 2).Add(Pt(3, 4)); got != Pt(4, 6) {
		t.Errorf("Add() = %v", got)
	}
}
