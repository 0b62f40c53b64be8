// SPDX-License-Identifier: GPL-2.0-or-later

package raster

import "atlaspack/geom"

// AlphaMode selects the post-processing applied to a packed texture's
// output region. These are boundary operations: the packing core only
// needs the interface below to call through, not the pixel algorithm
// itself (see AlphaProcessor doc).
type AlphaMode int

const (
	AlphaNone AlphaMode = iota
	AlphaClear
	AlphaBleed
	AlphaPremultiply
	AlphaColorkeyOpaque
)

// AlphaProcessor applies one AlphaMode to a rectangular region of buf.
// Only the contract is part of the core: a packer that never calls
// anything but AlphaNone is still a complete, correct packer.
// DefaultAlphaProcessor below is a usable, but
// intentionally unoptimized, reference implementation — real
// texture-composer pixel algorithms (dithering, edge-weighted bleed, etc.)
// are out of scope.
type AlphaProcessor interface {
	Apply(mode AlphaMode, buf Buffer, rect geom.Rect, colorkey geom.RGBA) error
}

// DefaultAlphaProcessor is a minimal, synchronous AlphaProcessor.
type DefaultAlphaProcessor struct{}

// Apply implements AlphaProcessor.
func (DefaultAlphaProcessor) Apply(mode AlphaMode, buf Buffer, rect geom.Rect, colorkey geom.RGBA) error {
	switch mode {
	case AlphaNone:
		return nil
	case AlphaClear:
		return clearTransparentColor(buf, rect)
	case AlphaBleed:
		return bleedEdges(buf, rect)
	case AlphaPremultiply:
		return premultiply(buf, rect)
	case AlphaColorkeyOpaque:
		return colorkeyOpaque(buf, rect, colorkey)
	default:
		return nil
	}
}

// clearTransparentColor zeroes the RGB channels of any fully-transparent
// pixel, so stray color data left in a cleared atlas doesn't leak through
// a bilinear sample at a trim boundary.
func clearTransparentColor(buf Buffer, rect geom.Rect) error {
	for y := rect.Y; y < rect.Bottom(); y++ {
		for x := rect.X; x < rect.Right(); x++ {
			c := buf.At(x, y)
			if c.A == 0 {
				buf.Set(x, y, geom.RGBA{})
			}
		}
	}
	return nil
}

// bleedEdges grows every opaque pixel's color one step into any
// immediately-adjacent transparent neighbor, left-to-right then
// top-to-bottom. It is a cheap approximation, not a distance transform.
func bleedEdges(buf Buffer, rect geom.Rect) error {
	for y := rect.Y; y < rect.Bottom(); y++ {
		for x := rect.X; x < rect.Right(); x++ {
			c := buf.At(x, y)
			if c.A != 0 {
				continue
			}
			if n, ok := firstOpaqueNeighbor(buf, x, y, rect); ok {
				buf.Set(x, y, geom.RGBA{R: n.R, G: n.G, B: n.B, A: 0})
			}
		}
	}
	return nil
}

func firstOpaqueNeighbor(buf Buffer, x, y int, rect geom.Rect) (geom.RGBA, bool) {
	deltas := [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	for _, d := range deltas {
		nx, ny := x+d[0], y+d[1]
		if nx < rect.X || ny < rect.Y || nx >= rect.Right() || ny >= rect.Bottom() {
			continue
		}
		c := buf.At(nx, ny)
		if c.A != 0 {
			return c, true
		}
	}
	return geom.RGBA{}, false
}

// premultiply converts straight alpha to premultiplied alpha in place.
func premultiply(buf Buffer, rect geom.Rect) error {
	for y := rect.Y; y < rect.Bottom(); y++ {
		for x := rect.X; x < rect.Right(); x++ {
			c := buf.At(x, y)
			a := uint16(c.A)
			buf.Set(x, y, geom.RGBA{
				R: uint8(uint16(c.R) * a / 255),
				G: uint8(uint16(c.G) * a / 255),
				B: uint8(uint16(c.B) * a / 255),
				A: c.A,
			})
		}
	}
	return nil
}

// colorkeyOpaque forces full opacity everywhere except pixels matching
// colorkey on RGB, which become fully transparent.
func colorkeyOpaque(buf Buffer, rect geom.Rect, key geom.RGBA) error {
	for y := rect.Y; y < rect.Bottom(); y++ {
		for x := rect.X; x < rect.Right(); x++ {
			c := buf.At(x, y)
			if c.R == key.R && c.G == key.G && c.B == key.B {
				buf.Set(x, y, geom.RGBA{})
				continue
			}
			c.A = 255
			buf.Set(x, y, c)
		}
	}
	return nil
}
