// SPDX-License-Identifier: GPL-2.0-or-later

package sprite

import "atlaspack/raster"

// FilenameSequence maps a 0-based sheet ordinal to a concrete output
// filename, and declares the maximum number of sheets it can name. It
// generalizes a parameterized template ("name-<n>.png") into a value with
// a known upper bound, so the packer can enforce the count before
// allocating a sheet rather than discovering the mistake while formatting
// a string.
type FilenameSequence interface {
	// Count returns the maximum number of sheets this sequence can name.
	Count() int
	// Filename returns the concrete filename for sheet ordinal i.
	// i must be < Count().
	Filename(i int) string
}

// Texture is the config shared by every sprite that packs into the same
// output family. Many Sprites reference one *Texture.
type Texture struct {
	Width, Height       int
	MaxWidth, MaxHeight int

	BorderPadding int
	ShapePadding  int

	PowerOfTwo  bool
	AllowRotate bool
	Deduplicate bool

	Alpha    raster.AlphaMode
	Colorkey [4]uint8 // R,G,B,A; only used when Alpha == AlphaColorkeyOpaque

	Filename FilenameSequence
	Path     string
}

// PackedTexture is one concrete output sheet: a non-owning view over a
// contiguous run of sprites sharing a TextureIndex, produced by the
// assembler. A PackedTexture must not outlive the slice it borrows from.
type PackedTexture struct {
	Path     string
	Filename string
	Width    int
	Height   int

	Alpha    raster.AlphaMode
	Colorkey [4]uint8

	sprites []*Sprite
}

// NewPackedTexture builds one output sheet over sprites, which stays
// owned by the caller's container.
func NewPackedTexture(tex *Texture, filename string, width, height int, sprites []*Sprite) *PackedTexture {
	return &PackedTexture{
		Path:     tex.Path,
		Filename: filename,
		Width:    width,
		Height:   height,
		Alpha:    tex.Alpha,
		Colorkey: tex.Colorkey,
		sprites:  sprites,
	}
}

// Sprites returns the sprites assigned to this sheet, in stable input
// order.
func (p *PackedTexture) Sprites() []*Sprite {
	return p.sprites
}
