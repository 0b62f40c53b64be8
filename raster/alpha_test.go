// SPDX-License-Identifier: GPL-2.0-or-later

package raster

import (
	"testing"

	"atlaspack/geom"
)

func TestDefaultAlphaProcessorPremultiply(t *testing.T) {
	img := NewImage(1, 1)
	img.Set(0, 0, geom.RGBA{R: 200, G: 100, B: 50, A: 128})
	var p DefaultAlphaProcessor
	if err := p.Apply(AlphaPremultiply, img, img.Bounds(), geom.RGBA{}); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	got := img.At(0, 0)
	if got.R != 100 || got.A != 128 {
		t.Errorf("premultiply: got %v, want R halved (~100), A unchanged (128)", got)
	}
}

func TestDefaultAlphaProcessorColorkey(t *testing.T) {
	img := NewImage(2, 1)
	img.Set(0, 0, geom.RGBA{R: 255, G: 0, B: 255, A: 0})
	img.Set(1, 0, geom.RGBA{R: 10, G: 20, B: 30, A: 0})
	key := geom.RGBA{R: 255, G: 0, B: 255}
	var p DefaultAlphaProcessor
	if err := p.Apply(AlphaColorkeyOpaque, img, img.Bounds(), key); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if got := img.At(0, 0); got.A != 0 {
		t.Errorf("colorkey match should stay transparent, got %v", got)
	}
	if got := img.At(1, 0); got.A != 255 {
		t.Errorf("non-match should become opaque, got %v", got)
	}
}

func TestDefaultAlphaProcessorClear(t *testing.T) {
	img := NewImage(1, 1)
	img.Set(0, 0, geom.RGBA{R: 255, G: 255, B: 255, A: 0})
	var p DefaultAlphaProcessor
	if err := p.Apply(AlphaClear, img, img.Bounds(), geom.RGBA{}); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if got := img.At(0, 0); got != (geom.RGBA{}) {
		t.Errorf("clear should zero transparent pixel color, got %v", got)
	}
}
