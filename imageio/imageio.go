// SPDX-License-Identifier: GPL-2.0-or-later

// Package imageio is the thin boundary between raster.Image and the
// standard image codecs. The packing core never decodes or encodes
// anything itself; this package exists only so cmd/atlaspack has
// somewhere to turn files into raster.Images and back.
package imageio

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"

	"atlaspack/raster"
)

// WritePNG encodes img as a PNG to name. img.Pix is expected to hold
// straight (non-premultiplied) RGBA bytes; raster.Image stores exactly
// that layout, so this is a direct wrap, not a conversion.
func WritePNG(name string, img *raster.Image) error {
	if len(img.Pix) < img.W*img.H*4 {
		return fmt.Errorf("imageio: image has %d bytes, want at least %d", len(img.Pix), img.W*img.H*4)
	}
	nrgba := &image.NRGBA{
		Pix:    img.Pix,
		Stride: 4 * img.W,
		Rect:   image.Rect(0, 0, img.W, img.H),
	}

	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("imageio: create %s: %w", name, err)
	}
	defer f.Close()

	if err := png.Encode(f, nrgba); err != nil {
		return fmt.Errorf("imageio: encode %s: %w", name, err)
	}
	return nil
}

// ReadPNG decodes the PNG at name into a raster.Image with straight
// (non-premultiplied) RGBA bytes.
func ReadPNG(name string) (*raster.Image, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("imageio: open %s: %w", name, err)
	}
	defer f.Close()

	src, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("imageio: decode %s: %w", name, err)
	}

	bounds := src.Bounds()
	img := raster.NewImage(bounds.Dx(), bounds.Dy())
	nrgba := &image.NRGBA{
		Pix:    img.Pix,
		Stride: 4 * img.W,
		Rect:   image.Rect(0, 0, img.W, img.H),
	}
	draw.Draw(nrgba, nrgba.Rect, src, bounds.Min, draw.Src)
	return img, nil
}
