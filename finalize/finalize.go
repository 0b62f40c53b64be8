// SPDX-License-Identifier: GPL-2.0-or-later

// Package finalize reconstructs each packed sprite's untrimmed rect and
// resolves its pivot point. It runs after the packer has written back
// every placement and before the sprite list is reordered for assembly.
package finalize

import (
	"github.com/hashicorp/go-hclog"

	"atlaspack/geom"
	"atlaspack/sprite"
)

// Finalize fills Rect, PivotPoint and TrimmedPivotPoint on every sprite.
// Like the preparer it is a pure per-sprite transform and never fails.
func Finalize(sprites []*sprite.Sprite, log hclog.Logger) {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	for _, s := range sprites {
		completeSprite(s)
		log.Debug("finalized sprite",
			"index", s.Index, "id", s.ID,
			"rect", s.Rect, "pivot", s.PivotPoint)
	}
}

func completeSprite(s *sprite.Sprite) {
	if s.Trim == sprite.TrimCrop {
		s.Rect = s.TrimmedRect
	} else {
		// reposition the full untrimmed box around the trimmed placement
		s.Rect = geom.NewRect(
			s.TrimmedRect.X-(s.TrimmedSourceRect.X-s.SourceRect.X),
			s.TrimmedRect.Y-(s.TrimmedSourceRect.Y-s.SourceRect.Y),
			s.SourceRect.W,
			s.SourceRect.H)
	}

	s.Rect.X -= s.CommonDivisorOffset.X
	s.Rect.Y -= s.CommonDivisorOffset.Y
	s.Rect.W += s.CommonDivisorMargin.W
	s.Rect.H += s.CommonDivisorMargin.H

	s.PivotPoint = resolvePivot(s)
	if s.IntegralPivotPoint {
		s.PivotPoint = s.PivotPoint.Floor()
	}
	s.TrimmedPivotPoint = s.PivotPoint.Add(geom.PointF{
		X: float32(s.Rect.X - s.TrimmedRect.X),
		Y: float32(s.Rect.Y - s.TrimmedRect.Y),
	})
}

func resolvePivot(s *sprite.Sprite) geom.PointF {
	p := s.PivotPoint
	switch s.PivotMode.X {
	case sprite.AnchorLeft:
		p.X = 0
	case sprite.AnchorCenter:
		p.X = float32(s.Rect.W) / 2
	case sprite.AnchorRight:
		p.X = float32(s.Rect.W)
	case sprite.AnchorCustomX:
		// keep the supplied value
	}
	switch s.PivotMode.Y {
	case sprite.AnchorTop:
		p.Y = 0
	case sprite.AnchorMiddle:
		p.Y = float32(s.Rect.H) / 2
	case sprite.AnchorBottom:
		p.Y = float32(s.Rect.H)
	case sprite.AnchorCustomY:
		// keep the supplied value
	}
	return p
}
