// Package core provides fundamental types shared by the game logic and the
// frontends. It has no frontend dependencies (no Bubble Tea, no Ebiten) so the
// simulation stays pure and testable.
package core

import "math"

// Rect is an integer rectangle in screen cells.
type Rect struct {
	X, Y int // Top-left corner
	W, H int
}

// NewRect creates a new cell rectangle.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate one past the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate one past the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Intersects returns true if the two cell rectangles share at least one cell.
func (r Rect) Intersects(other Rect) bool {
	return r.X < other.Right() && other.X < r.Right() &&
		r.Y < other.Bottom() && other.Y < r.Bottom()
}

// RectF is an axis-aligned rectangle in world pixels.
// Positions are float64 so sub-pixel movement accumulates between frames.
type RectF struct {
	X, Y float64 // Top-left corner
	W, H float64
}

// NewRectF creates a world rectangle from its top-left corner and size.
func NewRectF(x, y, w, h float64) RectF {
	return RectF{X: x, Y: y, W: w, H: h}
}

// Left returns the x-coordinate of the left edge.
func (r RectF) Left() float64 { return r.X }

// Top returns the y-coordinate of the top edge.
func (r RectF) Top() float64 { return r.Y }

// Right returns the x-coordinate of the right edge.
func (r RectF) Right() float64 { return r.X + r.W }

// Bottom returns the y-coordinate of the bottom edge.
func (r RectF) Bottom() float64 { return r.Y + r.H }

// SetLeft moves the rectangle so its left edge is at x.
func (r *RectF) SetLeft(x float64) { r.X = x }

// SetRight moves the rectangle so its right edge is at x.
func (r *RectF) SetRight(x float64) { r.X = x - r.W }

// SetTop moves the rectangle so its top edge is at y.
func (r *RectF) SetTop(y float64) { r.Y = y }

// SetBottom moves the rectangle so its bottom edge is at y.
func (r *RectF) SetBottom(y float64) { r.Y = y - r.H }

// Center returns the center point.
func (r RectF) Center() (float64, float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

// MidLeft returns the midpoint of the left edge.
func (r RectF) MidLeft() (float64, float64) {
	return r.X, r.Y + r.H/2
}

// MidRight returns the midpoint of the right edge.
func (r RectF) MidRight() (float64, float64) {
	return r.Right(), r.Y + r.H/2
}

// Intersects reports whether the rectangles overlap.
// Rectangles that only touch along an edge do not intersect, so an entity
// standing exactly on top of a tile is not "inside" it.
func (r RectF) Intersects(other RectF) bool {
	if r.X >= other.Right() || other.X >= r.Right() {
		return false
	}
	if r.Y >= other.Bottom() || other.Y >= r.Bottom() {
		return false
	}
	return true
}

// Translate returns the rectangle moved by (dx, dy).
func (r RectF) Translate(dx, dy float64) RectF {
	r.X += dx
	r.Y += dy
	return r
}

// ToCells converts a world rectangle into screen cells, given the world
// offset of the viewport and the cell size in pixels. Partially covered cells
// are included so thin sprites never vanish.
func (r RectF) ToCells(offX, offY, cellW, cellH float64) Rect {
	x0 := int(math.Floor((r.X - offX) / cellW))
	y0 := int(math.Floor((r.Y - offY) / cellH))
	x1 := int(math.Ceil((r.Right() - offX) / cellW))
	y1 := int(math.Ceil((r.Bottom() - offY) / cellH))
	return NewRect(x0, y0, Max(1, x1-x0), Max(1, y1-y0))
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
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
