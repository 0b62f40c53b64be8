// SPDX-License-Identifier: GPL-2.0-or-later

// Package report renders the structured description of a packing run:
// where every sprite landed, which tags group them and which textures
// were emitted. The default output is indented JSON; a template engine
// can be plugged in through TemplateRenderer but is not part of the
// packing core.
package report

import (
	"encoding/json"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"atlaspack/geom"
	"atlaspack/sprite"
)

// Point is a float coordinate pair as rendered in the description.
type Point struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
}

// Rect is a rectangle as rendered in the description.
type Rect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// Sprite is one sprite's entry in the description.
type Sprite struct {
	Index             int               `json:"index"`
	ID                string            `json:"id"`
	Rect              Rect              `json:"rect"`
	TrimmedRect       Rect              `json:"trimmedRect"`
	SourceFilename    string            `json:"sourceFilename"`
	SourcePath        string            `json:"sourcePath"`
	SourceRect        Rect              `json:"sourceRect"`
	SourceSpriteIndex *int              `json:"sourceSpriteIndex,omitempty"`
	TrimmedSourceRect Rect              `json:"trimmedSourceRect"`
	Pivot             Point             `json:"pivot"`
	Filename          string            `json:"filename"`
	Rotated           bool              `json:"rotated"`
	Tags              map[string]string `json:"tags"`
	Vertices          []Point           `json:"vertices,omitempty"`
}

// Tag groups the sprites carrying one (key, value) pair.
type Tag struct {
	Key     string    `json:"key"`
	Value   string    `json:"value,omitempty"`
	Sprites []*Sprite `json:"sprites"`
}

// Texture is one emitted sheet with its sprites inlined.
type Texture struct {
	Filename string    `json:"filename"`
	Width    int       `json:"width"`
	Height   int       `json:"height"`
	Sprites  []*Sprite `json:"sprites"`
}

// Document is the full description of a packing run.
type Document struct {
	Sprites  []*Sprite  `json:"sprites"`
	Tags     []*Tag     `json:"tags"`
	Textures []*Texture `json:"textures"`
}

// TemplateRenderer renders a Document through a user-supplied template.
// Implementations are expected to expose getId, getIdOrFilename and
// removeExtension helpers (GetID, GetIDOrFilename, RemoveExtension
// below) to the template; the engine itself is outside this module.
type TemplateRenderer interface {
	Render(w io.Writer, doc *Document) error
}

// Build assembles the description for packed sprites and their emitted
// textures. Sprites without a source or texture are skipped.
func Build(sprites []*sprite.Sprite, textures []*sprite.PackedTexture) *Document {
	doc := &Document{
		Sprites:  []*Sprite{},
		Tags:     []*Tag{},
		Textures: []*Texture{},
	}

	type tagKey struct{ key, value string }
	tagged := map[tagKey][]*Sprite{}
	var tagOrder []tagKey
	byTexture := map[string][]*Sprite{}

	for _, s := range sprites {
		if s.SourceImage == nil || s.Texture == nil {
			continue
		}
		filename := ""
		if s.Texture.Filename != nil {
			filename = s.Texture.Filename.Filename(s.TextureIndex)
		}

		entry := &Sprite{
			Index:             s.Index,
			ID:                s.ID,
			Rect:              rect(s.Rect),
			TrimmedRect:       rect(s.TrimmedRect),
			SourceFilename:    s.SourceImage.Name(),
			SourcePath:        s.SourceImage.Path(),
			SourceRect:        rect(s.SourceRect),
			TrimmedSourceRect: rect(s.TrimmedSourceRect),
			Pivot:             Point{X: s.PivotPoint.X, Y: s.PivotPoint.Y},
			Filename:          filename,
			Rotated:           s.Rotated,
			Tags:              tagMap(s.Tags),
		}
		// ordinal among all sprites emitted onto the same output texture so
		// far, whole-image sprites included; the field itself only appears
		// on cutouts
		if s.SourceImage.Width() != s.SourceRect.W || s.SourceImage.Height() != s.SourceRect.H {
			ordinal := len(byTexture[filename])
			entry.SourceSpriteIndex = &ordinal
		}
		for _, v := range s.Vertices {
			entry.Vertices = append(entry.Vertices, Point{X: v.X, Y: v.Y})
		}

		doc.Sprites = append(doc.Sprites, entry)
		byTexture[filename] = append(byTexture[filename], entry)
		for _, tag := range s.Tags {
			k := tagKey{tag.Key, tag.Value}
			if _, ok := tagged[k]; !ok {
				tagOrder = append(tagOrder, k)
			}
			tagged[k] = append(tagged[k], entry)
		}
	}

	sort.Slice(tagOrder, func(i, j int) bool {
		if tagOrder[i].key != tagOrder[j].key {
			return tagOrder[i].key < tagOrder[j].key
		}
		return tagOrder[i].value < tagOrder[j].value
	})
	for _, k := range tagOrder {
		doc.Tags = append(doc.Tags, &Tag{Key: k.key, Value: k.value, Sprites: tagged[k]})
	}

	for _, t := range textures {
		doc.Textures = append(doc.Textures, &Texture{
			Filename: t.Filename,
			Width:    t.Width,
			Height:   t.Height,
			Sprites:  byTexture[t.Filename],
		})
	}
	return doc
}

// WriteJSON emits the document as indented JSON, the output used when no
// template is configured.
func (d *Document) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return errors.Wrap(err, "writing description")
	}
	return nil
}

// GetID returns the sprite's id, or sprite_<index> when it has none.
func GetID(s *Sprite) string {
	if s.ID != "" {
		return s.ID
	}
	return "sprite_" + strconv.Itoa(s.Index)
}

// GetIDOrFilename returns the sprite's id, or its source filename when it
// has none.
func GetIDOrFilename(s *Sprite) string {
	if s.ID != "" {
		return s.ID
	}
	return s.SourceFilename
}

// RemoveExtension strips the final extension from a filename.
func RemoveExtension(name string) string {
	if dot := strings.LastIndexByte(name, '.'); dot >= 0 {
		return name[:dot]
	}
	return name
}

func rect(r geom.Rect) Rect {
	return Rect{X: r.X, Y: r.Y, W: r.W, H: r.H}
}

func tagMap(tags []sprite.Tag) map[string]string {
	m := map[string]string{}
	for _, t := range tags {
		m[t.Key] = t.Value
	}
	return m
}
