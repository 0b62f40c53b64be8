// SPDX-License-Identifier: GPL-2.0-or-later

package rectpack

import (
	stdmath "math"
	"strconv"

	"github.com/hashicorp/go-hclog"
	"github.com/pkg/errors"

	"atlaspack/fault"
	"atlaspack/math"
	"atlaspack/raster"
	"atlaspack/sprite"
)

// PackSprites runs the deduplicator and the rectangle packer for one
// texture family: every sprite in sprites references tex. On success each
// sprite carries Rotated, TextureIndex and TrimmedRect, and the returned
// count is the number of sheets allocated. Sprites must have been
// prepared first.
func PackSprites(tex *sprite.Texture, sprites []*sprite.Sprite, log hclog.Logger) (int, error) {
	if log == nil {
		log = hclog.NewNullLogger()
	}

	packW := maxPackSize(tex.Width, tex.MaxWidth, tex.PowerOfTwo)
	packH := maxPackSize(tex.Height, tex.MaxHeight, tex.PowerOfTwo)
	innerW := packW - 2*tex.BorderPadding
	innerH := packH - 2*tex.BorderPadding
	if innerW <= 0 || innerH <= 0 {
		return 0, fault.New(fault.Configuration,
			"border padding leaves no packable area in texture '%s'", textureName(tex))
	}

	for _, s := range sprites {
		if !fitsInTexture(s, innerW, innerH, tex.AllowRotate) {
			return 0, fault.New(fault.Capacity,
				"sprite '%s' can not fit in texture '%s'", spriteName(s), textureName(tex))
		}
	}

	inputs := deduplicate(tex, sprites, innerW, innerH, log)

	sheets, err := Pack(Params{
		MaxWidth:      packW,
		MaxHeight:     packH,
		BorderPadding: tex.BorderPadding,
		PowerOfTwo:    tex.PowerOfTwo,
		AllowRotate:   tex.AllowRotate,
		CanGrow:       packW > tex.Width,
	}, inputs)
	if err != nil {
		return 0, errors.Wrapf(err, "packing texture '%s'", textureName(tex))
	}

	if tex.Filename != nil && len(sheets) > tex.Filename.Count() {
		return 0, fault.New(fault.Capacity,
			"not all sprites fit on texture '%s'", textureName(tex))
	}

	for index, sheet := range sheets {
		for _, pl := range sheet.Placements {
			s := sprites[pl.ID]
			indentX := s.CommonDivisorOffset.X + s.Extrude
			indentY := s.CommonDivisorOffset.Y + s.Extrude
			s.Rotated = pl.Rotated
			s.TextureIndex = index
			s.TrimmedRect.X = pl.X + indentX - tex.BorderPadding
			s.TrimmedRect.Y = pl.Y + indentY - tex.BorderPadding
			s.TrimmedRect.W = s.TrimmedSourceRect.W
			s.TrimmedRect.H = s.TrimmedSourceRect.H
			log.Debug("placed sprite",
				"index", s.Index, "id", s.ID, "sheet", index,
				"trimmedRect", s.TrimmedRect, "rotated", s.Rotated)
		}
		log.Info("sheet closed",
			"texture", textureName(tex), "sheet", index,
			"width", sheet.Width, "height", sheet.Height,
			"sprites", len(sheet.Placements))
	}

	for _, s := range sprites {
		if p := s.DuplicateOf(); p != nil {
			s.Rotated = p.Rotated
			s.TextureIndex = p.TextureIndex
			s.TrimmedRect = p.TrimmedRect
		}
	}
	return len(sheets), nil
}

// deduplicate collapses byte-identical sprites onto the earliest primary
// and returns the packer inputs for the survivors, shape padding applied.
// Each sprite i is compared against every earlier non-duplicate j in
// ascending order; the first match wins.
func deduplicate(tex *sprite.Texture, sprites []*sprite.Sprite, innerW, innerH int, log hclog.Logger) []Input {
	inputs := make([]Input, 0, len(sprites))
	for i, s := range sprites {
		if tex.Deduplicate {
			var primary *sprite.Sprite
			for _, t := range sprites[:i] {
				if t.IsDuplicate() {
					continue
				}
				if raster.Equal(s.SourceImage, s.TrimmedSourceRect,
					t.SourceImage, t.TrimmedSourceRect) {
					primary = t
					break
				}
			}
			if primary != nil {
				s.MarkDuplicate(primary)
				log.Debug("deduplicated sprite",
					"index", s.Index, "id", s.ID,
					"primaryIndex", primary.Index, "primaryId", primary.ID)
				continue
			}
		}

		size := s.PackingSize()
		// only add shape padding on sides where the sprite does not
		// already span the whole bin, so a full row/column wastes nothing
		if size.W < innerW {
			size.W += tex.ShapePadding
		}
		if size.H < innerH {
			size.H += tex.ShapePadding
		}
		inputs = append(inputs, Input{ID: i, W: size.W, H: size.H})
	}
	return inputs
}

// fitsInTexture reports whether the sprite's packing size fits the usable
// inner area, in either orientation when rotation is allowed.
func fitsInTexture(s *sprite.Sprite, innerW, innerH int, allowRotate bool) bool {
	size := s.PackingSize()
	if size.W <= innerW && size.H <= innerH {
		return true
	}
	return allowRotate && size.W <= innerH && size.H <= innerW
}

// maxPackSize resolves one axis's bin bound from a fixed size and a
// maximum, either of which may be zero meaning unset. A fixed size rounds
// up to a power of two, a maximum rounds down, so the bound never exceeds
// what the caller allowed.
func maxPackSize(size, maxSize int, powerOfTwo bool) int {
	if powerOfTwo && size > 0 {
		size = math.NextPowerOfTwo(size)
	}
	if powerOfTwo && maxSize > 0 {
		maxSize = math.PrevPowerOfTwo(maxSize)
	}
	switch {
	case size > 0 && maxSize > 0:
		return min(size, maxSize)
	case size > 0:
		return size
	case maxSize > 0:
		return maxSize
	}
	return stdmath.MaxInt
}

func spriteName(s *sprite.Sprite) string {
	if s.ID != "" {
		return s.ID
	}
	return "sprite_" + strconv.Itoa(s.Index)
}

func textureName(tex *sprite.Texture) string {
	if tex.Filename != nil {
		return tex.Filename.Filename(0)
	}
	return tex.Path
}
