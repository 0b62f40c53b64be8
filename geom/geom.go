// SPDX-License-Identifier: GPL-2.0-or-later

// Package geom holds the pure value types the packing pipeline is built
// from: integer points, sizes and rectangles, a float pivot point, and an
// RGBA color. None of these types own any pixels; raster.Image does.
package geom

import (
	"fmt"

	"github.com/chewxy/math32"
)

// Point is an integer 2D coordinate.
type Point struct {
	X, Y int
}

// Size is an integer width/height pair.
type Size struct {
	W, H int
}

// Area returns W*H.
func (s Size) Area() int {
	return s.W * s.H
}

// PointF is a float pivot/anchor coordinate, sprite-local or texture-local
// depending on context.
type PointF struct {
	X, Y float32
}

// Add returns p+q.
func (p PointF) Add(q PointF) PointF {
	return PointF{p.X + q.X, p.Y + q.Y}
}

// Sub returns p-q.
func (p PointF) Sub(q PointF) PointF {
	return PointF{p.X - q.X, p.Y - q.Y}
}

// Floor floors both coordinates toward negative infinity.
func (p PointF) Floor() PointF {
	return PointF{math32.Floor(p.X), math32.Floor(p.Y)}
}

// RGBA is a non-premultiplied 8-bit-per-channel color.
type RGBA struct {
	R, G, B, A uint8
}

// Rect is an axis-aligned integer rectangle, origin at top-left, width and
// height growing right and down. A Rect is a plain value; nothing about it
// is owned by or tied to an image.
type Rect struct {
	X, Y, W, H int
}

// NewRect builds a Rect from origin and size.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

func (r Rect) String() string {
	return fmt.Sprintf("Rect(%d,%d %dx%d)", r.X, r.Y, r.W, r.H)
}

// Origin returns the rect's top-left point.
func (r Rect) Origin() Point {
	return Point{r.X, r.Y}
}

// Size returns the rect's width/height as a Size.
func (r Rect) Size() Size {
	return Size{r.W, r.H}
}

// Right returns the rect's right edge (X+W), exclusive.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the rect's bottom edge (Y+H), exclusive.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Area returns W*H. A degenerate (zero-area) rect is legal.
func (r Rect) Area() int {
	return r.W * r.H
}

// Empty reports whether the rect has no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Swapped returns the rect with width and height exchanged, origin kept.
// Used to express a 90-degree-rotated footprint without touching pixels.
func (r Rect) Swapped() Rect {
	return Rect{X: r.X, Y: r.Y, W: r.H, H: r.W}
}

// Translated returns the rect moved by (dx, dy).
func (r Rect) Translated(dx, dy int) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, W: r.W, H: r.H}
}

// Expanded returns the rect grown by n on every side (n may be negative to
// shrink). Width/height are clamped at 0.
func (r Rect) Expanded(n int) Rect {
	w := r.W + 2*n
	h := r.H + 2*n
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return Rect{X: r.X - n, Y: r.Y - n, W: w, H: h}
}

// Contains reports whether q lies fully within r.
func (r Rect) Contains(q Rect) bool {
	return q.X >= r.X && q.Y >= r.Y && q.Right() <= r.Right() && q.Bottom() <= r.Bottom()
}

// Intersects reports whether r and q share any area. Touching edges (zero
// overlap) do not count as intersection.
func (r Rect) Intersects(q Rect) bool {
	if r.Empty() || q.Empty() {
		return false
	}
	return r.X < q.Right() && q.X < r.Right() && r.Y < q.Bottom() && q.Y < r.Bottom()
}

// Intersect returns the overlapping region of r and q, which is the zero
// Rect if they do not overlap.
func (r Rect) Intersect(q Rect) Rect {
	x0, y0 := max(r.X, q.X), max(r.Y, q.Y)
	x1, y1 := min(r.Right(), q.Right()), min(r.Bottom(), q.Bottom())
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Union returns the smallest rect containing both r and q. An empty operand
// is ignored; Union of two empty rects is the zero Rect.
func (r Rect) Union(q Rect) Rect {
	if r.Empty() {
		return q
	}
	if q.Empty() {
		return r
	}
	x0, y0 := min(r.X, q.X), min(r.Y, q.Y)
	x1, y1 := max(r.Right(), q.Right()), max(r.Bottom(), q.Bottom())
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}
