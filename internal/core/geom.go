// Package core provides fundamental types and utilities for the arcade platform.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

import "math"

// Span is a horizontal interval described by its centre and width.
// Blocks, fragments, pickups and paddles all reduce to a Span when their
// horizontal extents are compared.
type Span struct {
	CenterX float64
	Width   float64
}

// NewSpan creates a span centred at x with the given width.
func NewSpan(centerX, width float64) Span {
	return Span{CenterX: centerX, Width: width}
}

// Left returns the x-coordinate of the left edge.
func (s Span) Left() float64 {
	return s.CenterX - s.Width/2
}

// Right returns the x-coordinate of the right edge.
func (s Span) Right() float64 {
	return s.CenterX + s.Width/2
}

// Alignment is the result of comparing a falling span against the span
// beneath it.
type Alignment struct {
	Amount    float64 // Length of the shared interval, 0 on a miss
	LeftEdge  float64 // Left bound of the shared interval
	RightEdge float64 // Right bound of the shared interval

	CurrentLeft  float64
	CurrentRight float64
	LastLeft     float64
	LastRight    float64
}

// Hit reports whether the spans share a positive-length interval.
func (a Alignment) Hit() bool {
	return a.Amount > 0
}

// Overlap computes the horizontal intersection of current and last.
// Spans that are disjoint or touch at a single point give Amount == 0.
// The comparison is exact; there is no tolerance.
func Overlap(current, last Span) Alignment {
	a := Alignment{
		CurrentLeft:  current.Left(),
		CurrentRight: current.Right(),
		LastLeft:     last.Left(),
		LastRight:    last.Right(),
	}

	a.LeftEdge = math.Max(a.CurrentLeft, a.LastLeft)
	a.RightEdge = math.Min(a.CurrentRight, a.LastRight)
	a.Amount = math.Max(0, a.RightEdge-a.LeftEdge)
	if a.Amount == 0 {
		// Nothing shared: collapse the interval so callers never see an
		// inverted range.
		a.RightEdge = a.LeftEdge
	}
	return a
}

// Rect represents an axis-aligned box in screen cells.
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

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Cell converts a world coordinate to the screen cell that contains it.
func Cell(v float64) int {
	return int(math.Floor(v))
}
