// SPDX-License-Identifier: GPL-2.0-or-later

// Package sprite holds the central data model the packing pipeline reads
// and progressively fills in: Sprite, Texture (a config shared by many
// sprites) and PackedTexture (the final output view). Fields are grouped
// input-first, packer-output-second, finalizer-output-last, keeping the
// fixed configuration and the derived placement apart.
package sprite

// TrimMode selects how a sprite's trimmed_source_rect is derived from its
// source_rect.
type TrimMode int

const (
	// TrimNone leaves trimmed_source_rect equal to source_rect.
	TrimNone TrimMode = iota
	// TrimTrim removes transparent border but keeps the sprite's logical
	// rect at its original, untrimmed size.
	TrimTrim
	// TrimCrop removes transparent border and shrinks the sprite's
	// logical rect to the trimmed bounds.
	TrimCrop
)

func (m TrimMode) String() string {
	switch m {
	case TrimNone:
		return "none"
	case TrimTrim:
		return "trim"
	case TrimCrop:
		return "crop"
	default:
		return "unknown"
	}
}

// HorizontalAnchor is the horizontal half of a Pivot.
type HorizontalAnchor int

const (
	AnchorLeft HorizontalAnchor = iota
	AnchorCenter
	AnchorRight
	AnchorCustomX
)

// VerticalAnchor is the vertical half of a Pivot.
type VerticalAnchor int

const (
	AnchorTop VerticalAnchor = iota
	AnchorMiddle
	AnchorBottom
	AnchorCustomY
)

// Pivot is the symbolic per-sprite anchor point; PointF carries the actual
// coordinates once resolved (or the caller-supplied value, when either
// half is Custom).
type Pivot struct {
	X HorizontalAnchor
	Y VerticalAnchor
}
