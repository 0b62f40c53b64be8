// SPDX-License-Identifier: GPL-2.0-or-later

package rectpack

import (
	"testing"

	"atlaspack/fault"
	"atlaspack/geom"
	"atlaspack/prepare"
	"atlaspack/raster"
	"atlaspack/sprite"
)

type testSource struct {
	*raster.Image
	name string
}

func (s *testSource) Name() string { return s.name }
func (s *testSource) Path() string { return s.name }

// solidSource fills a w x h image with one opaque color so two sources
// built from the same seed are byte-identical.
func solidSource(w, h int, seed uint8) *testSource {
	img := raster.NewImage(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, geom.RGBA{R: seed, G: seed, B: seed, A: 255})
		}
	}
	return &testSource{Image: img, name: "test.png"}
}

func newSprite(index int, src *testSource, tex *sprite.Texture) *sprite.Sprite {
	return &sprite.Sprite{
		Index:         index,
		SourceImage:   src,
		SourceRect:    src.Bounds(),
		CommonDivisor: sprite.Divisor{X: 1, Y: 1},
		Texture:       tex,
	}
}

func packAll(t *testing.T, tex *sprite.Texture, sprites []*sprite.Sprite) int {
	t.Helper()
	prepare.Prepare(sprites, nil)
	count, err := PackSprites(tex, sprites, nil)
	if err != nil {
		t.Fatalf("PackSprites failed: %v", err)
	}
	return count
}

func TestPackSpritesWriteBack(t *testing.T) {
	tex := &sprite.Texture{MaxWidth: 64, MaxHeight: 64}
	s := newSprite(0, solidSource(16, 16, 1), tex)
	count := packAll(t, tex, []*sprite.Sprite{s})

	if count != 1 {
		t.Fatalf("sheet count = %d, want 1", count)
	}
	if want := geom.NewRect(0, 0, 16, 16); s.TrimmedRect != want {
		t.Errorf("TrimmedRect = %v, want %v", s.TrimmedRect, want)
	}
	if s.Rotated || s.TextureIndex != 0 {
		t.Errorf("Rotated=%v TextureIndex=%d, want false/0", s.Rotated, s.TextureIndex)
	}
}

func TestPackSpritesDeduplicate(t *testing.T) {
	tex := &sprite.Texture{MaxWidth: 64, MaxHeight: 64, Deduplicate: true}
	a := newSprite(0, solidSource(8, 8, 7), tex)
	b := newSprite(1, solidSource(8, 8, 7), tex)
	c := newSprite(2, solidSource(8, 8, 9), tex)
	packAll(t, tex, []*sprite.Sprite{a, b, c})

	if !b.IsDuplicate() || b.DuplicateOf() != a {
		t.Fatalf("sprite 1 should be a duplicate of sprite 0")
	}
	if c.IsDuplicate() {
		t.Fatalf("sprite 2 with distinct pixels marked duplicate")
	}
	if b.TrimmedRect != a.TrimmedRect || b.Rotated != a.Rotated || b.TextureIndex != a.TextureIndex {
		t.Errorf("duplicate placement diverges: %v vs %v", b.TrimmedRect, a.TrimmedRect)
	}
	if a.TrimmedRect.Intersects(c.TrimmedRect) {
		t.Errorf("distinct sprites overlap: %v %v", a.TrimmedRect, c.TrimmedRect)
	}
}

func TestPackSpritesDedupFirstMatchWins(t *testing.T) {
	tex := &sprite.Texture{MaxWidth: 64, MaxHeight: 64, Deduplicate: true}
	a := newSprite(0, solidSource(8, 8, 3), tex)
	b := newSprite(1, solidSource(8, 8, 3), tex)
	c := newSprite(2, solidSource(8, 8, 3), tex)
	packAll(t, tex, []*sprite.Sprite{a, b, c})

	if b.DuplicateOf() != a || c.DuplicateOf() != a {
		t.Errorf("duplicates should collapse onto the earliest primary")
	}
}

func TestPackSpritesTooLargeFails(t *testing.T) {
	tex := &sprite.Texture{MaxWidth: 8, MaxHeight: 8}
	s := newSprite(0, solidSource(16, 16, 1), tex)
	prepare.Prepare([]*sprite.Sprite{s}, nil)
	_, err := PackSprites(tex, []*sprite.Sprite{s}, nil)
	if err == nil {
		t.Fatal("PackSprites succeeded, want capacity error")
	}
	if fault.KindOf(err) != fault.Capacity {
		t.Errorf("error kind = %v, want capacity", fault.KindOf(err))
	}
}

func TestPackSpritesBorderPaddingCanMakeSpriteUnfittable(t *testing.T) {
	tex := &sprite.Texture{MaxWidth: 16, MaxHeight: 16, BorderPadding: 1}
	s := newSprite(0, solidSource(16, 16, 1), tex)
	prepare.Prepare([]*sprite.Sprite{s}, nil)
	if _, err := PackSprites(tex, []*sprite.Sprite{s}, nil); err == nil {
		t.Fatal("16x16 sprite fit a 16x16 texture with border padding 1")
	}
}

func TestPackSpritesSheetLimitFails(t *testing.T) {
	tex := &sprite.Texture{
		MaxWidth: 16, MaxHeight: 16,
		Filename: sprite.NewTemplateSequence("out", ".png", 1),
	}
	a := newSprite(0, solidSource(16, 16, 1), tex)
	b := newSprite(1, solidSource(16, 16, 2), tex)
	prepare.Prepare([]*sprite.Sprite{a, b}, nil)
	_, err := PackSprites(tex, []*sprite.Sprite{a, b}, nil)
	if err == nil {
		t.Fatal("PackSprites succeeded, want sheet-count error")
	}
	if fault.KindOf(err) != fault.Capacity {
		t.Errorf("error kind = %v, want capacity", fault.KindOf(err))
	}
}

func TestPackSpritesShapePaddingSkipsSpanningSide(t *testing.T) {
	tex := &sprite.Texture{MaxWidth: 16, MaxHeight: 64, ShapePadding: 4}
	a := newSprite(0, solidSource(16, 16, 1), tex)
	b := newSprite(1, solidSource(16, 16, 2), tex)
	packAll(t, tex, []*sprite.Sprite{a, b})

	// both sprites span the full inner width, so padding applies only
	// vertically: second sprite starts 16+4 below the first
	ys := []int{a.TrimmedRect.Y, b.TrimmedRect.Y}
	if ys[0] > ys[1] {
		ys[0], ys[1] = ys[1], ys[0]
	}
	if ys[0] != 0 || ys[1] != 20 {
		t.Errorf("placement ys = %v, want [0 20]", ys)
	}
	if a.TrimmedRect.X != 0 || b.TrimmedRect.X != 0 {
		t.Errorf("spanning sprites should not be padded horizontally")
	}
}

func TestPackSpritesRotatedWriteBack(t *testing.T) {
	tex := &sprite.Texture{MaxWidth: 16, MaxHeight: 32, AllowRotate: true}
	s := newSprite(0, solidSource(32, 16, 1), tex)
	packAll(t, tex, []*sprite.Sprite{s})

	if !s.Rotated {
		t.Fatal("sprite should be rotated to fit")
	}
	// TrimmedRect keeps the source orientation; Rotated says the pixels
	// were turned on the sheet
	if s.TrimmedRect.W != 32 || s.TrimmedRect.H != 16 {
		t.Errorf("TrimmedRect = %v, want source-sized 32x16", s.TrimmedRect)
	}
}

func TestPackSpritesMultipleSheets(t *testing.T) {
	tex := &sprite.Texture{MaxWidth: 16, MaxHeight: 16}
	var sprites []*sprite.Sprite
	for i := 0; i < 3; i++ {
		sprites = append(sprites, newSprite(i, solidSource(16, 16, uint8(i+1)), tex))
	}
	count := packAll(t, tex, sprites)
	if count != 3 {
		t.Fatalf("sheet count = %d, want 3", count)
	}
	seen := map[int]bool{}
	for _, s := range sprites {
		seen[s.TextureIndex] = true
	}
	for i := 0; i < 3; i++ {
		if !seen[i] {
			t.Errorf("no sprite landed on sheet %d", i)
		}
	}
}
