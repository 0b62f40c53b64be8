// SPDX-License-Identifier: GPL-2.0-or-later

package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"atlaspack/fault"
	"atlaspack/geom"
	"atlaspack/imageio"
	"atlaspack/raster"
	"atlaspack/sprite"
)

// writeTestSheet writes a 32x32 PNG whose top-left 16x16 cell is opaque
// and whose other three 16x16 cells are fully transparent.
func writeTestSheet(t *testing.T, dir string) string {
	t.Helper()
	img := raster.NewImage(32, 32)
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			img.Set(x, y, geom.RGBA{R: 200, A: 255})
		}
	}
	name := filepath.Join(dir, "sheet.png")
	if err := imageio.WritePNG(name, img); err != nil {
		t.Fatalf("writing test sheet: %v", err)
	}
	return name
}

func loadFrom(t *testing.T, dir, doc string, autocomplete bool) ([]*sprite.Sprite, error) {
	t.Helper()
	return loadInput(strings.NewReader(doc), dir, autocomplete, nil)
}

func TestLoadInputWholeImageDefault(t *testing.T) {
	dir := t.TempDir()
	writeTestSheet(t, dir)

	sprites, err := loadFrom(t, dir, `{
		"textures": [{"id": "main", "filename": "atlas.png"}],
		"sprites": [{"id": "hero", "source": "sheet.png", "tags": [{"key": "set", "value": "a"}]}]
	}`, false)
	if err != nil {
		t.Fatalf("loadInput failed: %v", err)
	}
	if len(sprites) != 1 {
		t.Fatalf("got %d sprites, want 1", len(sprites))
	}
	s := sprites[0]
	if s.ID != "hero" || s.SourceRect != geom.NewRect(0, 0, 32, 32) {
		t.Errorf("sprite = id %q rect %v", s.ID, s.SourceRect)
	}
	if s.SourceImage.Name() != "sheet.png" {
		t.Errorf("source name = %q", s.SourceImage.Name())
	}
	if s.Texture == nil || s.Texture.Filename.Filename(0) != "atlas.png" {
		t.Errorf("texture not resolved: %+v", s.Texture)
	}
	if len(s.Tags) != 1 || s.Tags[0] != (sprite.Tag{Key: "set", Value: "a"}) {
		t.Errorf("tags = %+v", s.Tags)
	}
}

func TestLoadInputGridExpansion(t *testing.T) {
	dir := t.TempDir()
	writeTestSheet(t, dir)
	doc := `{
		"textures": [{"id": "main", "filename": "atlas.png"}],
		"sprites": [{"source": "sheet.png", "grid": {"x": 16, "y": 16}}]
	}`

	all, err := loadFrom(t, dir, doc, false)
	if err != nil {
		t.Fatalf("loadInput failed: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("got %d sprites, want 4", len(all))
	}
	if all[1].SourceRect != geom.NewRect(16, 0, 16, 16) {
		t.Errorf("cell 1 rect = %v", all[1].SourceRect)
	}
	for i, s := range all {
		if s.Index != i {
			t.Errorf("sprite %d has index %d", i, s.Index)
		}
	}

	// autocomplete drops the three transparent cells
	filled, err := loadFrom(t, dir, doc, true)
	if err != nil {
		t.Fatalf("loadInput failed: %v", err)
	}
	if len(filled) != 1 {
		t.Fatalf("autocompleted sprites = %d, want 1", len(filled))
	}
	if filled[0].SourceRect != geom.NewRect(0, 0, 16, 16) {
		t.Errorf("autocompleted rect = %v", filled[0].SourceRect)
	}
}

func TestLoadInputSharedSource(t *testing.T) {
	dir := t.TempDir()
	writeTestSheet(t, dir)

	sprites, err := loadFrom(t, dir, `{
		"textures": [{"id": "main", "filename": "atlas.png"}],
		"sprites": [
			{"id": "a", "source": "sheet.png", "rect": {"x": 0, "y": 0, "w": 16, "h": 16}},
			{"id": "b", "source": "sheet.png", "rect": {"x": 16, "y": 0, "w": 16, "h": 16}}
		]
	}`, false)
	if err != nil {
		t.Fatalf("loadInput failed: %v", err)
	}
	if sprites[0].SourceImage != sprites[1].SourceImage {
		t.Error("sprites from the same file should share one source image")
	}
}

func TestLoadInputPivotAndModes(t *testing.T) {
	dir := t.TempDir()
	writeTestSheet(t, dir)

	sprites, err := loadFrom(t, dir, `{
		"textures": [{"id": "main", "filename": "atlas.png", "alpha": "clear"}],
		"sprites": [{
			"id": "p", "source": "sheet.png",
			"trim": "crop",
			"pivot": {"anchorX": "center", "y": 3.5},
			"integralPivot": true
		}]
	}`, false)
	if err != nil {
		t.Fatalf("loadInput failed: %v", err)
	}
	s := sprites[0]
	if s.Trim != sprite.TrimCrop {
		t.Errorf("trim = %v, want crop", s.Trim)
	}
	if s.PivotMode.X != sprite.AnchorCenter || s.PivotMode.Y != sprite.AnchorCustomY {
		t.Errorf("pivot mode = %+v", s.PivotMode)
	}
	if s.PivotPoint.Y != 3.5 {
		t.Errorf("pivot y = %v, want 3.5", s.PivotPoint.Y)
	}
	if !s.IntegralPivotPoint {
		t.Error("integral pivot not set")
	}
	if s.Texture.Alpha != raster.AlphaClear {
		t.Errorf("alpha = %v, want clear", s.Texture.Alpha)
	}
}

func TestLoadInputErrors(t *testing.T) {
	dir := t.TempDir()
	writeTestSheet(t, dir)

	cases := []struct {
		name string
		doc  string
		kind fault.Kind
	}{
		{"bad json", `{`, fault.Configuration},
		{"no textures", `{"sprites": []}`, fault.Configuration},
		{"unknown texture", `{
			"textures": [{"id": "main", "filename": "atlas.png"}],
			"sprites": [{"source": "sheet.png", "texture": "missing"}]
		}`, fault.Configuration},
		{"missing source", `{
			"textures": [{"id": "main", "filename": "atlas.png"}],
			"sprites": [{"source": "nope.png"}]
		}`, fault.IO},
		{"bad trim", `{
			"textures": [{"id": "main", "filename": "atlas.png"}],
			"sprites": [{"source": "sheet.png", "trim": "shave"}]
		}`, fault.Configuration},
		{"rect and grid", `{
			"textures": [{"id": "main", "filename": "atlas.png"}],
			"sprites": [{"source": "sheet.png", "rect": {"w": 1, "h": 1}, "grid": {"x": 1, "y": 1}}]
		}`, fault.Configuration},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := loadFrom(t, dir, tc.doc, false)
			if err == nil {
				t.Fatal("expected error")
			}
			if got := fault.KindOf(err); got != tc.kind {
				t.Errorf("kind = %v, want %v (err: %v)", got, tc.kind, err)
			}
		})
	}
}

func TestReadPNGRoundTrip(t *testing.T) {
	dir := t.TempDir()
	name := writeTestSheet(t, dir)

	img, err := imageio.ReadPNG(name)
	if err != nil {
		t.Fatalf("ReadPNG failed: %v", err)
	}
	if img.W != 32 || img.H != 32 {
		t.Fatalf("decoded size = %dx%d, want 32x32", img.W, img.H)
	}
	if got := img.At(0, 0); got != (geom.RGBA{R: 200, A: 255}) {
		t.Errorf("pixel (0,0) = %+v", got)
	}
	if got := img.At(20, 20); got != (geom.RGBA{}) {
		t.Errorf("pixel (20,20) = %+v, want transparent", got)
	}
	if err := os.Remove(name); err != nil {
		t.Fatalf("cleanup: %v", err)
	}
}
