// SPDX-License-Identifier: GPL-2.0-or-later

package main

import (
	"encoding/json"
	"io"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-hclog"

	"atlaspack/fault"
	"atlaspack/geom"
	"atlaspack/imageio"
	"atlaspack/math"
	"atlaspack/raster"
	"atlaspack/sprite"
)

// inputDoc is the pre-parsed packing description the CLI consumes. It is
// deliberately plain JSON: textures first, then sprites referencing them
// by id.
type inputDoc struct {
	Textures []textureConfig `json:"textures"`
	Sprites  []spriteConfig  `json:"sprites"`
}

type textureConfig struct {
	ID       string `json:"id"`
	Path     string `json:"path"`
	Filename string `json:"filename"`
	Count    int    `json:"count"`

	Width     int `json:"width"`
	Height    int `json:"height"`
	MaxWidth  int `json:"maxWidth"`
	MaxHeight int `json:"maxHeight"`

	BorderPadding int `json:"borderPadding"`
	ShapePadding  int `json:"shapePadding"`

	PowerOfTwo  bool `json:"powerOfTwo"`
	AllowRotate bool `json:"allowRotate"`
	Deduplicate bool `json:"deduplicate"`

	Alpha    string   `json:"alpha"`
	Colorkey [4]uint8 `json:"colorkey"`
}

type rectConfig struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

type pointConfig struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type pointFConfig struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
}

type pivotConfig struct {
	AnchorX string   `json:"anchorX"`
	AnchorY string   `json:"anchorY"`
	X       *float32 `json:"x"`
	Y       *float32 `json:"y"`
}

type tagConfig struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type spriteConfig struct {
	ID      string       `json:"id"`
	Source  string       `json:"source"`
	Rect    *rectConfig  `json:"rect"`
	Grid    *pointConfig `json:"grid"`
	Texture string       `json:"texture"`

	Trim          string `json:"trim"`
	TrimThreshold int    `json:"trimThreshold"`
	TrimMargin    int    `json:"trimMargin"`

	CommonDivisor *pointConfig `json:"commonDivisor"`
	Extrude       int          `json:"extrude"`

	Pivot         *pivotConfig `json:"pivot"`
	IntegralPivot bool         `json:"integralPivot"`

	Tags     []tagConfig    `json:"tags"`
	Vertices []pointFConfig `json:"vertices"`
}

// fileSource is a decoded source image plus the names the description
// output reports for it.
type fileSource struct {
	*raster.Image
	name string
	path string
}

func (s *fileSource) Name() string { return s.name }
func (s *fileSource) Path() string { return s.path }

// loadInput decodes the JSON packing description from r and resolves it
// into fully-constructed sprites. Source image paths are taken relative
// to dir. When autocomplete is set, grid entries skip fully-transparent
// cells instead of emitting a sprite for every cell.
func loadInput(r io.Reader, dir string, autocomplete bool, log hclog.Logger) ([]*sprite.Sprite, error) {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	var doc inputDoc
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fault.New(fault.Configuration, "decoding input description: %v", err)
	}
	if len(doc.Textures) == 0 {
		return nil, fault.New(fault.Configuration, "input description declares no textures")
	}

	textures := map[string]*sprite.Texture{}
	for _, tc := range doc.Textures {
		if tc.ID == "" {
			return nil, fault.New(fault.Configuration, "texture without id")
		}
		if _, ok := textures[tc.ID]; ok {
			return nil, fault.New(fault.Configuration, "duplicate texture id '%s'", tc.ID)
		}
		tex, err := buildTexture(tc)
		if err != nil {
			return nil, err
		}
		textures[tc.ID] = tex
	}

	sources := map[string]*fileSource{}
	loadSource := func(rel string) (*fileSource, error) {
		if rel == "" {
			return nil, fault.New(fault.Configuration, "sprite without source image")
		}
		if src, ok := sources[rel]; ok {
			return src, nil
		}
		img, err := imageio.ReadPNG(filepath.Join(dir, rel))
		if err != nil {
			return nil, fault.New(fault.IO, "loading source image '%s': %v", rel, err)
		}
		src := &fileSource{Image: img, name: filepath.Base(rel), path: rel}
		sources[rel] = src
		log.Debug("loaded source image", "path", rel, "width", img.W, "height", img.H)
		return src, nil
	}

	var sprites []*sprite.Sprite
	for _, sc := range doc.Sprites {
		src, err := loadSource(sc.Source)
		if err != nil {
			return nil, err
		}
		tex, err := resolveTexture(textures, doc.Textures, sc)
		if err != nil {
			return nil, err
		}

		rects, err := spriteRects(sc, src, autocomplete)
		if err != nil {
			return nil, err
		}
		for _, rect := range rects {
			s, err := buildSprite(sc, src, tex, rect, len(sprites))
			if err != nil {
				return nil, err
			}
			sprites = append(sprites, s)
		}
	}
	log.Info("input loaded",
		"textures", len(textures), "sources", len(sources), "sprites", len(sprites))
	return sprites, nil
}

func buildTexture(tc textureConfig) (*sprite.Texture, error) {
	alpha, err := alphaMode(tc.Alpha)
	if err != nil {
		return nil, fault.New(fault.Configuration, "texture '%s': %v", tc.ID, err)
	}
	tex := &sprite.Texture{
		Width:         tc.Width,
		Height:        tc.Height,
		MaxWidth:      tc.MaxWidth,
		MaxHeight:     tc.MaxHeight,
		BorderPadding: tc.BorderPadding,
		ShapePadding:  tc.ShapePadding,
		PowerOfTwo:    tc.PowerOfTwo,
		AllowRotate:   tc.AllowRotate,
		Deduplicate:   tc.Deduplicate,
		Alpha:         alpha,
		Colorkey:      tc.Colorkey,
		Path:          tc.Path,
	}
	if tc.Filename != "" {
		count := tc.Count
		if count == 0 {
			count = 1
		}
		ext := filepath.Ext(tc.Filename)
		base := strings.TrimSuffix(tc.Filename, ext)
		tex.Filename = sprite.NewTemplateSequence(base, ext, count)
	}
	return tex, nil
}

func resolveTexture(textures map[string]*sprite.Texture, order []textureConfig, sc spriteConfig) (*sprite.Texture, error) {
	if sc.Texture == "" {
		return textures[order[0].ID], nil
	}
	tex, ok := textures[sc.Texture]
	if !ok {
		return nil, fault.New(fault.Configuration,
			"sprite '%s' references unknown texture '%s'", sc.ID, sc.Texture)
	}
	return tex, nil
}

// spriteRects resolves one config entry into source rects: the explicit
// rect, a grid of cells, or the whole source image.
func spriteRects(sc spriteConfig, src *fileSource, autocomplete bool) ([]geom.Rect, error) {
	switch {
	case sc.Rect != nil && sc.Grid != nil:
		return nil, fault.New(fault.Configuration,
			"sprite '%s' declares both rect and grid", sc.ID)
	case sc.Rect != nil:
		return []geom.Rect{geom.NewRect(sc.Rect.X, sc.Rect.Y, sc.Rect.W, sc.Rect.H)}, nil
	case sc.Grid != nil:
		if sc.Grid.X < 1 || sc.Grid.Y < 1 {
			return nil, fault.New(fault.Configuration,
				"sprite '%s' has invalid grid %dx%d", sc.ID, sc.Grid.X, sc.Grid.Y)
		}
		var rects []geom.Rect
		for y := 0; y+sc.Grid.Y <= src.Height(); y += sc.Grid.Y {
			for x := 0; x+sc.Grid.X <= src.Width(); x += sc.Grid.X {
				cell := geom.NewRect(x, y, sc.Grid.X, sc.Grid.Y)
				if autocomplete && cellEmpty(src, cell) {
					continue
				}
				rects = append(rects, cell)
			}
		}
		return rects, nil
	default:
		return []geom.Rect{geom.NewRect(0, 0, src.Width(), src.Height())}, nil
	}
}

func cellEmpty(src *fileSource, rect geom.Rect) bool {
	for y := rect.Y; y < rect.Bottom(); y++ {
		for x := rect.X; x < rect.Right(); x++ {
			if src.At(x, y).A != 0 {
				return false
			}
		}
	}
	return true
}

func buildSprite(sc spriteConfig, src *fileSource, tex *sprite.Texture, rect geom.Rect, index int) (*sprite.Sprite, error) {
	trim, err := trimMode(sc.Trim)
	if err != nil {
		return nil, fault.New(fault.Configuration, "sprite '%s': %v", sc.ID, err)
	}
	s := &sprite.Sprite{
		Index:         index,
		ID:            sc.ID,
		SourceImage:   src,
		SourceRect:    rect,
		Trim:          trim,
		TrimThreshold: uint8(math.Clamp(0, sc.TrimThreshold, 255)),
		TrimMargin:    sc.TrimMargin,
		Extrude:       sc.Extrude,
		Texture:       tex,
	}
	// grid cells share one config entry; only a single sprite may carry
	// the configured id
	if sc.Grid != nil {
		s.ID = ""
	}
	if sc.CommonDivisor != nil {
		s.CommonDivisor = sprite.Divisor{X: sc.CommonDivisor.X, Y: sc.CommonDivisor.Y}
	}
	if sc.Pivot != nil {
		if err := applyPivot(s, sc.Pivot); err != nil {
			return nil, fault.New(fault.Configuration, "sprite '%s': %v", sc.ID, err)
		}
	}
	s.IntegralPivotPoint = sc.IntegralPivot
	for _, t := range sc.Tags {
		s.Tags = append(s.Tags, sprite.Tag{Key: t.Key, Value: t.Value})
	}
	for _, v := range sc.Vertices {
		s.Vertices = append(s.Vertices, geom.PointF{X: v.X, Y: v.Y})
	}
	return s, nil
}

func applyPivot(s *sprite.Sprite, pc *pivotConfig) error {
	switch {
	case pc.X != nil:
		s.PivotMode.X = sprite.AnchorCustomX
		s.PivotPoint.X = *pc.X
	case pc.AnchorX == "" || pc.AnchorX == "left":
		s.PivotMode.X = sprite.AnchorLeft
	case pc.AnchorX == "center":
		s.PivotMode.X = sprite.AnchorCenter
	case pc.AnchorX == "right":
		s.PivotMode.X = sprite.AnchorRight
	default:
		return fault.New(fault.Configuration, "unknown pivot anchor '%s'", pc.AnchorX)
	}
	switch {
	case pc.Y != nil:
		s.PivotMode.Y = sprite.AnchorCustomY
		s.PivotPoint.Y = *pc.Y
	case pc.AnchorY == "" || pc.AnchorY == "top":
		s.PivotMode.Y = sprite.AnchorTop
	case pc.AnchorY == "middle":
		s.PivotMode.Y = sprite.AnchorMiddle
	case pc.AnchorY == "bottom":
		s.PivotMode.Y = sprite.AnchorBottom
	default:
		return fault.New(fault.Configuration, "unknown pivot anchor '%s'", pc.AnchorY)
	}
	return nil
}

func trimMode(name string) (sprite.TrimMode, error) {
	switch name {
	case "", "none":
		return sprite.TrimNone, nil
	case "trim":
		return sprite.TrimTrim, nil
	case "crop":
		return sprite.TrimCrop, nil
	}
	return sprite.TrimNone, fault.New(fault.Configuration, "unknown trim mode '%s'", name)
}

func alphaMode(name string) (raster.AlphaMode, error) {
	switch name {
	case "", "keep":
		return raster.AlphaNone, nil
	case "clear":
		return raster.AlphaClear, nil
	case "bleed":
		return raster.AlphaBleed, nil
	case "premultiply":
		return raster.AlphaPremultiply, nil
	case "colorkey":
		return raster.AlphaColorkeyOpaque, nil
	}
	return raster.AlphaNone, fault.New(fault.Configuration, "unknown alpha mode '%s'", name)
}
