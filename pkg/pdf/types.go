package pdf

import (
	"strings"
	"time"
)

// BoundingBox represents a rectangular area with coordinates
type BoundingBox struct {
	X0 float64 // Left
	Y0 float64 // Top
	X1 float64 // Right
	Y1 float64 // Bottom
}

// Width returns the width of the bounding box
func (b BoundingBox) Width() float64 {
	return b.X1 - b.X0
}

// Height returns the height of the bounding box
func (b BoundingBox) Height() float64 {
	return b.Y1 - b.Y0
}

// Union returns the smallest box containing both b and other
func (b BoundingBox) Union(other BoundingBox) BoundingBox {
	return BoundingBox{
		X0: min(b.X0, other.X0),
		Y0: min(b.Y0, other.Y0),
		X1: max(b.X1, other.X1),
		Y1: max(b.Y1, other.Y1),
	}
}

// Metadata represents PDF document metadata
type Metadata struct {
	Title        string
	Author       string
	Subject      string
	Keywords     string
	Creator      string
	Producer     string
	CreationDate time.Time
	ModDate      time.Time
	PageCount    int
}

// FontFlags is a style bitmask attached to every character.
//
// The bit values follow the layout-toolkit convention used by recipe title
// heuristics, where the value 2 marks bold text. They are not the raw
// FontDescriptor /Flags of the PDF; see StyleFromDescriptor.
type FontFlags int

const (
	FlagItalic    FontFlags = 1 << 0
	FlagBold      FontFlags = 1 << 1
	FlagMonospace FontFlags = 1 << 2
	FlagSerif     FontFlags = 1 << 3
)

// Has reports whether all bits of f are set.
func (ff FontFlags) Has(f FontFlags) bool {
	return ff&f == f
}

// String renders the set flags, e.g. "bold|italic".
func (ff FontFlags) String() string {
	var parts []string
	if ff.Has(FlagBold) {
		parts = append(parts, "bold")
	}
	if ff.Has(FlagItalic) {
		parts = append(parts, "italic")
	}
	if ff.Has(FlagMonospace) {
		parts = append(parts, "mono")
	}
	if ff.Has(FlagSerif) {
		parts = append(parts, "serif")
	}
	if len(parts) == 0 {
		return "regular"
	}
	return strings.Join(parts, "|")
}

// Objects represents a collection of PDF objects
type Objects struct {
	Chars []CharObject
}

// CharObject represents a character in the PDF, in content stream order.
// Coordinates use a top-left origin.
type CharObject struct {
	Text     string
	Font     string
	FontSize float64
	Flags    FontFlags
	X0       float64
	Y0       float64
	X1       float64
	Y1       float64
	Width    float64
	Height   float64
	// Baseline is the text baseline in top-left coordinates.
	Baseline float64
}

// GetBBox returns the character's bounding box
func (c CharObject) GetBBox() BoundingBox {
	return BoundingBox{X0: c.X0, Y0: c.Y0, X1: c.X1, Y1: c.Y1}
}

// IsSpace reports whether the character is blank.
func (c CharObject) IsSpace() bool {
	return strings.TrimSpace(c.Text) == ""
}
