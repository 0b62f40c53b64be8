// SPDX-License-Identifier: GPL-2.0-or-later

package sprite

import (
	"atlaspack/geom"
	"atlaspack/raster"
)

// Divisor is the common_divisor constraint: packed width/height must be a
// multiple of each component. Both components default to 1 (no
// constraint).
type Divisor struct {
	X, Y int
}

// Tag is one ordered (key, optional value) pair attached to a sprite.
type Tag struct {
	Key   string
	Value string
}

// Source is a read-only handle to the image a sprite is cut from. The
// pipeline only needs width/height and pixel access, which raster.Buffer
// already provides; decoding lives at the boundary.
type Source interface {
	raster.Buffer
	// Name and Path identify the source image in the rendered description
	// (sourceFilename and sourcePath).
	Name() string
	Path() string
}

// Sprite is the central entity: one source-image region and its metadata,
// independently placed in exactly one output texture. Fields are grouped
// input (set once, by the parser), preparer output, packer output and
// finalizer output, matching the pipeline's phases; nothing past this
// struct's construction mutates a field out of its owning phase.
type Sprite struct {
	// --- input, from the (out of scope) parser ---

	Index int
	ID    string

	SourceImage Source
	SourceRect  geom.Rect

	Trim          TrimMode
	TrimThreshold uint8
	TrimMargin    int

	CommonDivisor Divisor

	Extrude int

	PivotMode          Pivot
	PivotPoint         geom.PointF
	IntegralPivotPoint bool

	Tags []Tag

	// Vertices is an optional polygon, sprite-local float coordinates
	// relative to TrimmedSourceRect's origin. Empty means "whole rect".
	Vertices []geom.PointF

	Texture *Texture

	// --- preparer output ---

	TrimmedSourceRect   geom.Rect
	CommonDivisorMargin geom.Size
	CommonDivisorOffset geom.Point

	// --- packer output ---

	Rotated       bool
	TextureIndex  int
	TrimmedRect   geom.Rect
	duplicateOf   *Sprite // nil unless this sprite was collapsed onto another
	isDuplicate   bool

	// --- finalizer output ---

	Rect               geom.Rect
	TrimmedPivotPoint  geom.PointF
}

// MarkDuplicate records that s shares its rectangle with primary. Called
// by the deduplicator only.
func (s *Sprite) MarkDuplicate(primary *Sprite) {
	s.duplicateOf = primary
	s.isDuplicate = true
}

// IsDuplicate reports whether s was collapsed onto an earlier sprite.
func (s *Sprite) IsDuplicate() bool {
	return s.isDuplicate
}

// DuplicateOf returns the primary sprite s was collapsed onto, or nil if s
// is not a duplicate.
func (s *Sprite) DuplicateOf() *Sprite {
	return s.duplicateOf
}

// PackingSize returns the footprint the sprite occupies in a sheet: the
// trimmed size plus divisor margin and extrude on both axes.
func (s *Sprite) PackingSize() geom.Size {
	return geom.Size{
		W: s.TrimmedSourceRect.W + s.CommonDivisorMargin.W + 2*s.Extrude,
		H: s.TrimmedSourceRect.H + s.CommonDivisorMargin.H + 2*s.Extrude,
	}
}
