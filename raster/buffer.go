// SPDX-License-Identifier: GPL-2.0-or-later

// Package raster is the in-memory image buffer the packing pipeline reads
// and writes pixels through: a fixed-size 32-bit RGBA raster plus the
// pixel-level operations (bounds detection, equality, blit, extrude, alpha
// post-processing) the preparer, deduplicator and composer need.
package raster

import "atlaspack/geom"

// Buffer is the minimal read/write pixel surface every operation in this
// package works against. raster.Image is the concrete, owned
// implementation; a source image supplied by the (out of scope) decoder is
// expected to satisfy this interface too.
type Buffer interface {
	Width() int
	Height() int
	Bounds() geom.Rect
	At(x, y int) geom.RGBA
	Set(x, y int, c geom.RGBA)
}

// Image is a fixed-size, owned 32-bit RGBA raster, origin always (0,0).
// Pix is stored row-major, 4 bytes per pixel (R,G,B,A), matching the layout
// the rest of the ecosystem (image/color.NRGBA-like buffers) uses so a
// caller can hand the backing slice straight to a PNG encoder.
type Image struct {
	W, H int
	Pix  []uint8
}

// NewImage allocates a transparent (all-zero) w x h raster.
func NewImage(w, h int) *Image {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &Image{W: w, H: h, Pix: make([]uint8, w*h*4)}
}

// FromPix wraps an existing RGBA byte slice without copying. len(pix) must
// be exactly w*h*4.
func FromPix(w, h int, pix []uint8) *Image {
	return &Image{W: w, H: h, Pix: pix}
}

func (img *Image) Width() int  { return img.W }
func (img *Image) Height() int { return img.H }

// Bounds returns the image's own rectangle, origin (0,0).
func (img *Image) Bounds() geom.Rect {
	return geom.NewRect(0, 0, img.W, img.H)
}

func (img *Image) offset(x, y int) int {
	return (y*img.W + x) * 4
}

// inBounds reports whether (x,y) addresses a pixel in img.
func (img *Image) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < img.W && y < img.H
}

// At returns the pixel at (x,y), or the zero RGBA (transparent black) if
// out of bounds.
func (img *Image) At(x, y int) geom.RGBA {
	if !img.inBounds(x, y) {
		return geom.RGBA{}
	}
	o := img.offset(x, y)
	return geom.RGBA{R: img.Pix[o], G: img.Pix[o+1], B: img.Pix[o+2], A: img.Pix[o+3]}
}

// Set writes the pixel at (x,y). Out-of-bounds writes are silently
// ignored, matching the usual Go image.Image convention.
func (img *Image) Set(x, y int, c geom.RGBA) {
	if !img.inBounds(x, y) {
		return
	}
	o := img.offset(x, y)
	img.Pix[o], img.Pix[o+1], img.Pix[o+2], img.Pix[o+3] = c.R, c.G, c.B, c.A
}
