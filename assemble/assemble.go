// SPDX-License-Identifier: GPL-2.0-or-later

// Package assemble groups packed sprites into their output sheets. It
// reorders the sprite slice by sheet ordinal (stable, so input order is
// preserved within a sheet) and sizes every sheet to the smallest box
// holding its contents.
package assemble

import (
	"sort"

	"github.com/hashicorp/go-hclog"

	"atlaspack/geom"
	"atlaspack/math"
	"atlaspack/sprite"
)

// Assemble turns one texture family's packed sprites into PackedTextures.
// sprites is reordered in place by TextureIndex; each returned texture
// borrows the sub-slice of its run, so it must not outlive the caller's
// container.
func Assemble(tex *sprite.Texture, sprites []*sprite.Sprite, log hclog.Logger) []*sprite.PackedTexture {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	if len(sprites) == 0 {
		return nil
	}

	sort.SliceStable(sprites, func(i, j int) bool {
		return sprites[i].TextureIndex < sprites[j].TextureIndex
	})

	var packed []*sprite.PackedTexture
	begin := 0
	for i := 1; i <= len(sprites); i++ {
		if i < len(sprites) && sprites[i].TextureIndex == sprites[begin].TextureIndex {
			continue
		}
		run := sprites[begin:i:i]
		sheetIndex := run[0].TextureIndex
		width, height := sheetSize(tex, run)

		filename := ""
		if tex.Filename != nil {
			filename = tex.Filename.Filename(sheetIndex)
		}
		packed = append(packed, sprite.NewPackedTexture(tex, filename, width, height, run))
		log.Info("assembled texture",
			"filename", filename, "sheet", sheetIndex,
			"width", width, "height", height, "sprites", len(run))
		begin = i
	}
	return packed
}

// sheetSize computes the sheet's final dimensions: at least the texture's
// configured size, grown to cover every sprite's right-bottom corner plus
// border slack, then rounded up to a power of two when required.
func sheetSize(tex *sprite.Texture, run []*sprite.Sprite) (int, int) {
	width, height := tex.Width, tex.Height
	for _, s := range run {
		rb := rightBottom(s)
		if w := rb.X + tex.BorderPadding; w > width {
			width = w
		}
		if h := rb.Y + tex.BorderPadding; h > height {
			height = h
		}
	}
	if tex.PowerOfTwo {
		width = math.NextPowerOfTwo(width)
		height = math.NextPowerOfTwo(height)
	}
	return width, height
}

// rightBottom is the lower-right corner of the sprite's packed footprint:
// the placed pixels (swapped dimensions when rotated) plus the trailing
// divisor margin and extrude.
func rightBottom(s *sprite.Sprite) geom.Point {
	w, h := s.TrimmedRect.W, s.TrimmedRect.H
	if s.Rotated {
		w, h = h, w
	}
	return geom.Point{
		X: s.TrimmedRect.X + w + s.CommonDivisorMargin.W - s.CommonDivisorOffset.X + s.Extrude,
		Y: s.TrimmedRect.Y + h + s.CommonDivisorMargin.H - s.CommonDivisorOffset.Y + s.Extrude,
	}
}
