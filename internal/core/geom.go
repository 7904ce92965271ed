// Package core provides fundamental types and utilities for the horde game.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

import "math"

// Vec2 is a point or displacement in arena space.
// The origin is the top-left corner, +X points right and +Y points down.
type Vec2 struct {
	X, Y float64
}

// V is shorthand for constructing a Vec2.
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns v multiplied by k.
func (v Vec2) Scale(k float64) Vec2 {
	return Vec2{X: v.X * k, Y: v.Y * k}
}

// Len returns the euclidean length of v.
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Distance returns the euclidean distance between a and b.
func Distance(a, b Vec2) float64 {
	return b.Sub(a).Len()
}

// Direction returns the unit vector pointing from a to b.
// Coincident points yield the zero vector rather than NaN.
func Direction(a, b Vec2) Vec2 {
	d := b.Sub(a)
	l := d.Len()
	if l == 0 {
		return Vec2{}
	}
	return d.Scale(1 / l)
}

// AngleTo returns the angle in radians of the ray from one point to another.
func AngleTo(from, to Vec2) float64 {
	return math.Atan2(to.Y-from.Y, to.X-from.X)
}

// FromAngle returns a vector of the given length pointing along angle.
func FromAngle(angle, length float64) Vec2 {
	return Vec2{X: math.Cos(angle) * length, Y: math.Sin(angle) * length}
}

// Overlaps reports whether two circles intersect (strictly closer than the
// sum of their radii).
func Overlaps(a Vec2, ra float64, b Vec2, rb float64) bool {
	return Distance(a, b) < ra+rb
}

// Rect represents an axis-aligned box in screen cells, used for layout.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
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

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
