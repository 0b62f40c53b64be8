// SPDX-License-Identifier: GPL-2.0-or-later

// Package prepare implements the sprite preparer: it computes each
// sprite's trimmed_source_rect and the common-divisor alignment slack a
// sprite will need once packed. The preparer never fails — a degenerate
// (zero-area) sprite is legal and simply carries zero size into the
// packer.
package prepare

import (
	"atlaspack/geom"
	"atlaspack/math"
	"atlaspack/raster"
	"atlaspack/sprite"

	"github.com/hashicorp/go-hclog"
)

// Prepare fills TrimmedSourceRect, CommonDivisorMargin and
// CommonDivisorOffset on every sprite in s, in order. Sprites are
// independent of each other at this stage, so the only ordering
// requirement is that the log lines read sensibly; correctness does not
// depend on it.
func Prepare(sprites []*sprite.Sprite, log hclog.Logger) {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	for _, s := range sprites {
		trimBounds(s, log)
		alignDivisor(s)
		log.Debug("prepared sprite",
			"index", s.Index, "id", s.ID,
			"trimmedSourceRect", s.TrimmedSourceRect,
			"divisorMargin", s.CommonDivisorMargin)
	}
}

// trimBounds resolves TrimmedSourceRect from the trim mode, threshold and
// margin.
func trimBounds(s *sprite.Sprite, log hclog.Logger) {
	if s.Trim == sprite.TrimNone {
		s.TrimmedSourceRect = s.SourceRect
		return
	}

	bounds := raster.AlphaBounds(s.SourceImage, s.SourceRect, s.TrimThreshold)
	if bounds.Empty() {
		log.Debug("sprite trims to nothing", "index", s.Index, "id", s.ID)
		s.TrimmedSourceRect = geom.NewRect(s.SourceRect.X, s.SourceRect.Y, 0, 0)
		return
	}

	expanded := bounds.Expanded(s.TrimMargin)
	s.TrimmedSourceRect = expanded.Intersect(s.SourceRect)
}

// alignDivisor computes CommonDivisorMargin/Offset based on the sprite's
// trimmed size (the size that will ultimately occupy the packed rect).
func alignDivisor(s *sprite.Sprite) {
	dx, dy := s.CommonDivisor.X, s.CommonDivisor.Y
	if dx < 1 {
		dx = 1
	}
	if dy < 1 {
		dy = 1
	}

	w, h := s.TrimmedSourceRect.W, s.TrimmedSourceRect.H
	alignedW := math.CeilDiv(w, dx) * dx
	alignedH := math.CeilDiv(h, dy) * dy

	marginW := alignedW - w
	marginH := alignedH - h

	s.CommonDivisorMargin = geom.Size{W: marginW, H: marginH}
	s.CommonDivisorOffset = geom.Point{X: marginW / 2, Y: marginH / 2}
}
