// SPDX-License-Identifier: GPL-2.0-or-later

package atlaspack

import (
	"strconv"

	"atlaspack/fault"
	"atlaspack/sprite"
)

// Validate checks every sprite and texture config once, before any
// pipeline stage runs, so configuration mistakes fail fast with the name
// of the offender. It also settles zero-value defaults: an unset common
// divisor becomes 1.
func Validate(sprites []*sprite.Sprite) error {
	for _, s := range sprites {
		name := spriteName(s)
		if s.SourceImage == nil {
			return fault.New(fault.Configuration, "sprite '%s' has no source image", name)
		}
		if s.Texture == nil {
			return fault.New(fault.Configuration, "sprite '%s' references no texture", name)
		}
		if !s.SourceImage.Bounds().Contains(s.SourceRect) {
			return fault.New(fault.Configuration,
				"sprite '%s' source rect %v exceeds its %dx%d source image",
				name, s.SourceRect, s.SourceImage.Width(), s.SourceImage.Height())
		}
		if s.CommonDivisor.X == 0 {
			s.CommonDivisor.X = 1
		}
		if s.CommonDivisor.Y == 0 {
			s.CommonDivisor.Y = 1
		}
		if s.CommonDivisor.X < 1 || s.CommonDivisor.Y < 1 {
			return fault.New(fault.Configuration,
				"sprite '%s' has invalid common divisor %dx%d",
				name, s.CommonDivisor.X, s.CommonDivisor.Y)
		}
		if s.Extrude < 0 {
			return fault.New(fault.Configuration, "sprite '%s' has negative extrude", name)
		}
		if s.TrimMargin < 0 {
			return fault.New(fault.Configuration, "sprite '%s' has negative trim margin", name)
		}
		if err := validateTexture(s.Texture); err != nil {
			return err
		}
	}
	return nil
}

func validateTexture(tex *sprite.Texture) error {
	name := textureKey(tex)
	if tex.Width < 0 || tex.Height < 0 || tex.MaxWidth < 0 || tex.MaxHeight < 0 {
		return fault.New(fault.Configuration, "texture '%s' has negative dimensions", name)
	}
	if tex.BorderPadding < 0 || tex.ShapePadding < 0 {
		return fault.New(fault.Configuration, "texture '%s' has negative padding", name)
	}
	if tex.Filename != nil && tex.Filename.Count() < 1 {
		return fault.New(fault.Configuration, "texture '%s' allows no output files", name)
	}
	return nil
}

func spriteName(s *sprite.Sprite) string {
	if s.ID != "" {
		return s.ID
	}
	return "sprite_" + strconv.Itoa(s.Index)
}
