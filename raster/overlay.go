// SPDX-License-Identifier: GPL-2.0-or-later

package raster

import "atlaspack/geom"

// DebugOverlay draws per-sprite diagnostic marks onto an already-composed
// output texture (the CLI's --debug flag). Like AlphaProcessor, this is a
// boundary contract: the core packer never calls it.
type DebugOverlay interface {
	DrawSprite(buf Buffer, trimmedRect, rect geom.Rect)
}

// DefaultDebugOverlay outlines a sprite's trimmed rect in outline color and
// its full (untrimmed) rect in a second color, which is enough to spot
// misplacement visually without needing a specific art style. It draws no
// marker for the pivot or the rect's origin.
type DefaultDebugOverlay struct {
	TrimmedOutline geom.RGBA
	FullOutline    geom.RGBA
}

// NewDefaultDebugOverlay returns an overlay with a sane default palette:
// opaque green for the trimmed (packed) rect, semi-transparent red for the
// full untrimmed rect.
func NewDefaultDebugOverlay() DefaultDebugOverlay {
	return DefaultDebugOverlay{
		TrimmedOutline: geom.RGBA{G: 255, A: 255},
		FullOutline:    geom.RGBA{R: 255, A: 160},
	}
}

// DrawSprite implements DebugOverlay.
func (o DefaultDebugOverlay) DrawSprite(buf Buffer, trimmedRect, rect geom.Rect) {
	DrawRect(buf, trimmedRect, o.TrimmedOutline)
	if rect != trimmedRect {
		DrawRect(buf, rect, o.FullOutline)
	}
}
