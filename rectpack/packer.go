// SPDX-License-Identifier: GPL-2.0-or-later

// Package rectpack packs rectangles onto sheets: a max-rectangles bin
// packer with best-short-side-fit scoring, optional rotation, optional
// power-of-two sizing and multi-sheet overflow, plus the sprite-level
// deduplication and write-back that turn a texture's sprite list into
// packed placements.
package rectpack

import (
	stdmath "math"
	"sort"

	"atlaspack/fault"
	"atlaspack/geom"
	"atlaspack/math"
)

// Params configures one packing run.
type Params struct {
	// MaxWidth/MaxHeight bound the bin. Already clamped/rounded by the
	// caller; stdmath.MaxInt means unbounded.
	MaxWidth  int
	MaxHeight int

	// BorderPadding is the unusable margin inside the sheet perimeter.
	// Placements start at 2*BorderPadding so the write-back, which
	// subtracts one BorderPadding, leaves a symmetric border.
	BorderPadding int

	PowerOfTwo  bool
	AllowRotate bool

	// CanGrow starts the bin small and doubles the smaller dimension on
	// demand instead of opening it at MaxWidth x MaxHeight. Set when the
	// bound came from max-width/max-height rather than a fixed size.
	CanGrow bool
}

// Input is one rectangle to place. ID is an opaque caller handle.
type Input struct {
	ID   int
	W, H int
}

// Placement is where an Input landed: bin coordinates and the footprint
// actually occupied (swapped dimensions when Rotated).
type Placement struct {
	ID      int
	X, Y    int
	W, H    int
	Rotated bool
}

// Sheet is one closed bin with its placements and final dimensions.
type Sheet struct {
	Width, Height int
	Placements    []Placement
}

// Pack places every input rectangle onto as many sheets as needed.
// Rectangles are placed in descending max(w,h) order, ties broken by
// descending min(w,h); when a rectangle does not fit the current bin the
// bin grows (if permitted) or the sheet is closed and a fresh one opened.
// It fails with a capacity error when a rectangle does not fit an empty,
// fully-grown bin, and with an internal error when a closed sheet breaks
// the post-conditions verifySheet checks.
func Pack(p Params, inputs []Input) ([]Sheet, error) {
	pending := make([]Input, len(inputs))
	copy(pending, inputs)
	sort.SliceStable(pending, func(i, j int) bool {
		a, b := pending[i], pending[j]
		amax, amin := maxMin(a.W, a.H)
		bmax, bmin := maxMin(b.W, b.H)
		if amax != bmax {
			return amax > bmax
		}
		return amin > bmin
	})

	var sheets []Sheet
	for len(pending) > 0 {
		sheet, rest, err := packSheet(p, pending)
		if err != nil {
			return nil, err
		}
		if err := verifySheet(p, sheet); err != nil {
			return nil, err
		}
		sheets = append(sheets, sheet)
		pending = rest
	}
	return sheets, nil
}

func maxMin(a, b int) (int, int) {
	if a >= b {
		return a, b
	}
	return b, a
}

// packSheet fills one sheet from the front of pending and returns the
// rectangles that did not make it on.
func packSheet(p Params, pending []Input) (Sheet, []Input, error) {
	pad := 2 * p.BorderPadding
	binW, binH := p.MaxWidth, p.MaxHeight
	if p.CanGrow {
		binW = initialDim(pending[0].W+pad, p.MaxWidth, p.PowerOfTwo)
		binH = initialDim(pending[0].H+pad, p.MaxHeight, p.PowerOfTwo)
	}

	for {
		bin := newMaxRects(binW, binH, pad)
		placed := make([]Placement, 0, len(pending))
		grown := false
		var rest []Input
		for i, in := range pending {
			pl, ok := bin.insert(in, p.AllowRotate)
			if ok {
				placed = append(placed, pl)
				continue
			}
			if p.CanGrow && growBin(&binW, &binH, p.MaxWidth, p.MaxHeight, p.PowerOfTwo) {
				grown = true
				break
			}
			if i == 0 {
				return Sheet{}, nil, fault.New(fault.Capacity,
					"rectangle %dx%d can not fit a %dx%d sheet", in.W, in.H, binW, binH)
			}
			rest = pending[i:]
			break
		}
		if grown {
			continue
		}
		return finishSheet(p, placed), rest, nil
	}
}

// initialDim picks the starting bin dimension for a growable bin: just
// large enough for the first (largest) rectangle, rounded and clamped.
func initialDim(need, max int, pot bool) int {
	n := need
	if pot {
		n = math.NextPowerOfTwo(n)
	}
	if n > max {
		n = max
	}
	return n
}

// growBin doubles the smaller bin dimension, falling back to the larger
// one when the smaller is already at its bound. Reports false when the
// bin cannot grow at all.
func growBin(w, h *int, maxW, maxH int, pot bool) bool {
	grow := func(v *int, max int) bool {
		if *v >= max {
			return false
		}
		n := *v * 2
		if pot {
			n = math.NextPowerOfTwo(n)
		}
		if n > max || n < *v {
			n = max
		}
		*v = n
		return true
	}
	if *w <= *h {
		return grow(w, maxW) || grow(h, maxH)
	}
	return grow(h, maxH) || grow(w, maxW)
}

// finishSheet sizes the sheet to the smallest box containing every
// placement (border slack included, since placements start past it),
// rounded up to a power of two when required.
func finishSheet(p Params, placed []Placement) Sheet {
	w, h := 0, 0
	for _, pl := range placed {
		if r := pl.X + pl.W; r > w {
			w = r
		}
		if b := pl.Y + pl.H; b > h {
			h = b
		}
	}
	if p.PowerOfTwo {
		w = math.NextPowerOfTwo(w)
		h = math.NextPowerOfTwo(h)
	}
	return Sheet{Width: w, Height: h, Placements: placed}
}

// verifySheet checks the packer's post-conditions: every placement in
// bounds and no two footprints overlapping. A violation is a bug in the
// packer, not bad input.
func verifySheet(p Params, sheet Sheet) error {
	pad := 2 * p.BorderPadding
	for i, a := range sheet.Placements {
		ra := geom.NewRect(a.X, a.Y, a.W, a.H)
		if a.X < pad || a.Y < pad {
			return fault.New(fault.Internal,
				"rectangle %d placed at (%d,%d) inside the border padding", a.ID, a.X, a.Y)
		}
		if p.MaxWidth != stdmath.MaxInt && ra.Right() > p.MaxWidth ||
			p.MaxHeight != stdmath.MaxInt && ra.Bottom() > p.MaxHeight {
			return fault.New(fault.Internal,
				"rectangle %d placed out of bounds at %v", a.ID, ra)
		}
		for _, b := range sheet.Placements[:i] {
			rb := geom.NewRect(b.X, b.Y, b.W, b.H)
			if ra.Intersects(rb) {
				return fault.New(fault.Internal,
					"rectangles %d and %d overlap (%v, %v)", a.ID, b.ID, ra, rb)
			}
		}
	}
	return nil
}

// maxRects is the free-rectangle state of one bin. The free list is kept
// as a set of maximal rectangles whose union is the bin minus every
// placed footprint.
type maxRects struct {
	free []geom.Rect
}

func newMaxRects(w, h, pad int) *maxRects {
	return &maxRects{free: []geom.Rect{geom.NewRect(pad, pad, w-pad, h-pad)}}
}

// insert finds the best-short-side-fit position for in, considering the
// rotated orientation too when allowed. Ties break toward smaller y, then
// smaller x, then the unrotated orientation.
func (m *maxRects) insert(in Input, allowRotate bool) (Placement, bool) {
	type candidate struct {
		x, y, w, h int
		short      int
		rotated    bool
		ok         bool
	}
	best := candidate{short: stdmath.MaxInt}

	consider := func(w, h int, rotated bool) {
		for _, f := range m.free {
			if f.W < w || f.H < h {
				continue
			}
			short := min(f.W-w, f.H-h)
			c := candidate{x: f.X, y: f.Y, w: w, h: h, short: short, rotated: rotated, ok: true}
			if !best.ok ||
				c.short < best.short ||
				(c.short == best.short && (c.y < best.y ||
					(c.y == best.y && c.x < best.x))) {
				best = c
			}
		}
	}

	consider(in.W, in.H, false)
	if allowRotate && in.W != in.H {
		consider(in.H, in.W, true)
	}
	if !best.ok {
		return Placement{}, false
	}

	m.place(geom.NewRect(best.x, best.y, best.w, best.h))
	return Placement{ID: in.ID, X: best.x, Y: best.y, W: best.w, H: best.h, Rotated: best.rotated}, true
}

// place carves r out of every overlapping free rectangle and prunes the
// result back to maximal rectangles.
func (m *maxRects) place(r geom.Rect) {
	next := m.free[:0:0]
	for _, f := range m.free {
		if !f.Intersects(r) {
			next = append(next, f)
			continue
		}
		if r.X > f.X {
			next = append(next, geom.NewRect(f.X, f.Y, r.X-f.X, f.H))
		}
		if r.Right() < f.Right() {
			next = append(next, geom.NewRect(r.Right(), f.Y, f.Right()-r.Right(), f.H))
		}
		if r.Y > f.Y {
			next = append(next, geom.NewRect(f.X, f.Y, f.W, r.Y-f.Y))
		}
		if r.Bottom() < f.Bottom() {
			next = append(next, geom.NewRect(f.X, r.Bottom(), f.W, f.Bottom()-r.Bottom()))
		}
	}
	m.free = pruneContained(next)
}

// pruneContained drops empty free rectangles and any rectangle fully
// contained in another. Exact duplicates keep their first occurrence.
func pruneContained(rects []geom.Rect) []geom.Rect {
	out := rects[:0:0]
	for i, r := range rects {
		if r.Empty() {
			continue
		}
		contained := false
		for j, q := range rects {
			if i == j || q.Empty() {
				continue
			}
			if q.Contains(r) && (r != q || j < i) {
				contained = true
				break
			}
		}
		if !contained {
			out = append(out, r)
		}
	}
	return out
}
