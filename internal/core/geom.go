// Package core provides fundamental types and utilities for the arcade engine.
// It contains no external dependencies (especially no Bubble Tea or Ebiten) to
// keep game logic pure and testable.
package core

// Rect is an integer box in surface cells, used for layout: touch pad
// buttons and message boxes.
type Rect struct {
	X, Y int
	W, H int
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right is the exclusive right edge.
func (r Rect) Right() int { return r.X + r.W }

// Bottom is the exclusive bottom edge.
func (r Rect) Bottom() int { return r.Y + r.H }

// ContainsF reports whether a fractional pointer position falls inside r.
func (r Rect) ContainsF(x, y float64) bool {
	return x >= float64(r.X) && x < float64(r.Right()) &&
		y >= float64(r.Y) && y < float64(r.Bottom())
}

// Intersects reports whether r and o share at least one cell.
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.Right() && o.X < r.Right() &&
		r.Y < o.Bottom() && o.Y < r.Bottom()
}

// Center returns the cell at the middle of r, rounding toward the origin.
func (r Rect) Center() (int, int) {
	return r.X + r.W/2, r.Y + r.H/2
}

// FRect is a continuous box for entities that move by fractions of a cell.
type FRect struct {
	X, Y float64
	W, H float64
}

func (r FRect) Right() float64  { return r.X + r.W }
func (r FRect) Bottom() float64 { return r.Y + r.H }

// Intersects reports an overlap with positive area; shared edges do not count.
func (r FRect) Intersects(o FRect) bool {
	return r.X < o.Right() && o.X < r.Right() &&
		r.Y < o.Bottom() && o.Y < r.Bottom()
}

// Union returns the smallest box covering r and o.
func (r FRect) Union(o FRect) FRect {
	x, y := min(r.X, o.X), min(r.Y, o.Y)
	return FRect{X: x, Y: y, W: max(r.Right(), o.Right()) - x, H: max(r.Bottom(), o.Bottom()) - y}
}

// Offset returns r moved by (dx, dy).
func (r FRect) Offset(dx, dy float64) FRect {
	return FRect{X: r.X + dx, Y: r.Y + dy, W: r.W, H: r.H}
}

// Overlap returns the intersection of the intervals [a, a+aw) and
// [b, b+bw). The length is zero or negative when they do not overlap.
func Overlap(a, aw, b, bw float64) (start, length float64) {
	start = max(a, b)
	end := min(a+aw, b+bw)
	return start, end - start
}

// Clamp restricts val to [lo, hi].
func Clamp(val, lo, hi int) int {
	return max(lo, min(val, hi))
}

// ClampF restricts val to [lo, hi]. When hi < lo the result is lo, which
// pins an entity to the origin on a surface smaller than itself.
func ClampF(val, lo, hi float64) float64 {
	return max(lo, min(val, hi))
}
