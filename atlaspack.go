// SPDX-License-Identifier: GPL-2.0-or-later

// Package atlaspack packs sprites onto texture atlases. Given sprites
// already resolved by a parser (source image, region, trim and packing
// settings) it trims them, deduplicates identical ones, places them onto
// as few sheets as their texture config permits and reports where every
// sprite landed. Image decoding, description parsing and rendering stay
// outside this module's core; see the compose, imageio and report
// packages for the boundaries.
package atlaspack

import (
	"sort"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
	"github.com/pkg/errors"

	"atlaspack/assemble"
	"atlaspack/finalize"
	"atlaspack/prepare"
	"atlaspack/rectpack"
	"atlaspack/sprite"
)

// Pack runs the whole pipeline: validate, prepare, pack per texture
// family, finalize and assemble. The sprite slice is reordered in place
// (grouped by texture, then by sheet ordinal within each group); the
// returned PackedTextures borrow sub-slices of it and must not outlive
// it. On failure nothing useful is written back and no partial output is
// returned.
func Pack(sprites []*sprite.Sprite, log hclog.Logger) ([]*sprite.PackedTexture, error) {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	log = log.With("run", uuid.Must(uuid.NewV7()).String())

	if err := Validate(sprites); err != nil {
		return nil, err
	}
	if len(sprites) == 0 {
		return nil, nil
	}
	log.Info("packing sprites", "count", len(sprites))

	prepare.Prepare(sprites, log)

	// group sprites sharing an output filename into one packing run
	sort.SliceStable(sprites, func(i, j int) bool {
		return textureKey(sprites[i].Texture) < textureKey(sprites[j].Texture)
	})

	var packed []*sprite.PackedTexture
	begin := 0
	for i := 1; i <= len(sprites); i++ {
		if i < len(sprites) && textureKey(sprites[i].Texture) == textureKey(sprites[begin].Texture) {
			continue
		}
		group := sprites[begin:i]
		tex := group[0].Texture

		if _, err := rectpack.PackSprites(tex, group, log); err != nil {
			return nil, errors.Wrap(err, "packing failed")
		}
		finalize.Finalize(group, log)
		packed = append(packed, assemble.Assemble(tex, group, log)...)
		begin = i
	}

	log.Info("packing done", "textures", len(packed))
	return packed, nil
}

func textureKey(tex *sprite.Texture) string {
	if tex.Filename != nil {
		return tex.Path + "/" + tex.Filename.Filename(0)
	}
	return tex.Path
}
