// SPDX-License-Identifier: GPL-2.0-or-later

// Package compose renders a PackedTexture into pixels: a transparent
// RGBA raster the size of the sheet, every sprite blitted at its packed
// position (rotated, polygon-masked and edge-extruded as configured),
// then post-processed by the texture's alpha mode. This is the boundary
// between the geometric core and actual image output.
package compose

import (
	"github.com/hashicorp/go-hclog"
	"github.com/pkg/errors"

	"atlaspack/geom"
	"atlaspack/raster"
	"atlaspack/sprite"
)

// Options selects the boundary collaborators. Zero value composes with
// the default alpha processor and no debug overlay.
type Options struct {
	Alpha raster.AlphaProcessor
	Debug raster.DebugOverlay
}

// Texture composes one output sheet. The returned image is exclusively
// owned by the caller.
func Texture(packed *sprite.PackedTexture, opts Options, log hclog.Logger) (*raster.Image, error) {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	target := raster.NewImage(packed.Width, packed.Height)

	for _, s := range packed.Sprites() {
		copySprite(target, s)
	}

	proc := opts.Alpha
	if proc == nil {
		proc = raster.DefaultAlphaProcessor{}
	}
	key := geom.RGBA{R: packed.Colorkey[0], G: packed.Colorkey[1], B: packed.Colorkey[2], A: packed.Colorkey[3]}
	if err := proc.Apply(packed.Alpha, target, target.Bounds(), key); err != nil {
		return nil, errors.Wrapf(err, "composing texture '%s'", packed.Filename)
	}

	if opts.Debug != nil {
		for _, s := range packed.Sprites() {
			drawDebug(opts.Debug, target, s)
		}
	}

	log.Debug("composed texture",
		"filename", packed.Filename,
		"width", packed.Width, "height", packed.Height,
		"sprites", len(packed.Sprites()))
	return target, nil
}

func copySprite(target *raster.Image, s *sprite.Sprite) {
	if s.SourceImage == nil {
		return
	}
	raster.BlitPolygon(target, s.TrimmedRect.Origin(),
		s.SourceImage, s.TrimmedSourceRect, s.Rotated, s.Vertices)

	if s.Extrude > 0 {
		// replicate only the sides where the trimmed region still touches
		// the source rect's edge
		left := s.SourceRect.X == s.TrimmedSourceRect.X
		top := s.SourceRect.Y == s.TrimmedSourceRect.Y
		right := s.SourceRect.Right() == s.TrimmedSourceRect.Right()
		bottom := s.SourceRect.Bottom() == s.TrimmedSourceRect.Bottom()
		if left || top || right || bottom {
			rect := s.TrimmedRect
			if s.Rotated {
				rect = rect.Swapped()
			}
			raster.Extrude(target, rect, left, top, right, bottom, s.Extrude)
		}
	}
}

func drawDebug(overlay raster.DebugOverlay, target *raster.Image, s *sprite.Sprite) {
	rect := s.Rect
	trimmed := s.TrimmedRect
	if s.Rotated {
		rect = rect.Swapped()
		trimmed = trimmed.Swapped()
	}
	overlay.DrawSprite(target, trimmed, rect)
}
