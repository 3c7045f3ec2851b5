// Package geom provides the 2D primitives shared by the DSN parser and renderer.
// Coordinates are kept in whatever unit the source document declares; nothing here converts.
package geom

import "math"

// Point represents a 2D coordinate
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns p translated by q
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Rotate rotates p around the origin by the given angle in degrees (counter-clockwise)
func (p Point) Rotate(degrees float64) Point {
	if degrees == 0 {
		return p
	}
	rad := degrees * math.Pi / 180.0
	cos := math.Cos(rad)
	sin := math.Sin(rad)
	return Point{
		X: p.X*cos - p.Y*sin,
		Y: p.X*sin + p.Y*cos,
	}
}

// MirrorX mirrors p across the Y axis (negates X)
func (p Point) MirrorX() Point {
	return Point{X: -p.X, Y: p.Y}
}

// Rect is an axis-aligned rectangle. Min holds the smallest coordinates.
type Rect struct {
	Min Point `json:"min" yaml:"min"`
	Max Point `json:"max" yaml:"max"`
}

// Enclosing returns the smallest rectangle containing both points.
// The points may be any pair of opposite corners, in either order.
func Enclosing(a, b Point) Rect {
	return Rect{
		Min: Point{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y)},
		Max: Point{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y)},
	}
}

// EmptyRect returns an inverted rectangle that any Expand call will replace
func EmptyRect() Rect {
	return Rect{
		Min: Point{X: math.Inf(1), Y: math.Inf(1)},
		Max: Point{X: math.Inf(-1), Y: math.Inf(-1)},
	}
}

// IsEmpty checks if the rectangle encloses nothing
func (r Rect) IsEmpty() bool {
	return r.Min.X > r.Max.X || r.Min.Y > r.Max.Y
}

// Expand grows the rectangle to include a point
func (r *Rect) Expand(p Point) {
	if p.X < r.Min.X {
		r.Min.X = p.X
	}
	if p.Y < r.Min.Y {
		r.Min.Y = p.Y
	}
	if p.X > r.Max.X {
		r.Max.X = p.X
	}
	if p.Y > r.Max.Y {
		r.Max.Y = p.Y
	}
}

// ExpandRect grows the rectangle to include another rectangle
func (r *Rect) ExpandRect(other Rect) {
	if !other.IsEmpty() {
		r.Expand(other.Min)
		r.Expand(other.Max)
	}
}

// Inflate grows the rectangle by d on every side
func (r Rect) Inflate(d float64) Rect {
	if r.IsEmpty() {
		return r
	}
	return Rect{
		Min: Point{X: r.Min.X - d, Y: r.Min.Y - d},
		Max: Point{X: r.Max.X + d, Y: r.Max.Y + d},
	}
}

// Contains checks if a point lies within the rectangle (edges included)
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X &&
		p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Intersects checks if two rectangles overlap
func (r Rect) Intersects(other Rect) bool {
	return r.Min.X <= other.Max.X && r.Max.X >= other.Min.X &&
		r.Min.Y <= other.Max.Y && r.Max.Y >= other.Min.Y
}

func (r Rect) Width() float64 {
	return r.Max.X - r.Min.X
}

func (r Rect) Height() float64 {
	return r.Max.Y - r.Min.Y
}

// Center returns the center point of the rectangle
func (r Rect) Center() Point {
	return Point{
		X: (r.Min.X + r.Max.X) / 2.0,
		Y: (r.Min.Y + r.Max.Y) / 2.0,
	}
}
