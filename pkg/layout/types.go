// Package layout turns the characters of a PDF page into the page, block,
// line and span hierarchy that title heuristics work on.
package layout

import (
	"strings"

	"github.com/pyhub-apps/cookbook-pdf/pkg/pdf"
)

// Span is a run of text with uniform font, size and style on one baseline.
type Span struct {
	// Text is trimmed and NFC-normalized; it is never empty.
	Text     string
	Font     string
	FontSize float64
	Flags    pdf.FontFlags
	// PageIndex is the 0-based page the span appears on.
	PageIndex int
	BBox      pdf.BoundingBox

	baseline float64
}

// IsBold reports whether the span's font is bold, either by name or by
// descriptor flags.
func (s Span) IsBold() bool {
	return s.Flags.Has(pdf.FlagBold)
}

// WordCount returns the number of whitespace separated words in the span.
func (s Span) WordCount() int {
	return len(strings.Fields(s.Text))
}

// Line is a sequence of spans sharing a baseline.
type Line struct {
	Spans []Span
	BBox  pdf.BoundingBox
}

// Text joins the spans of the line with single spaces.
func (l Line) Text() string {
	parts := make([]string, len(l.Spans))
	for i, s := range l.Spans {
		parts[i] = s.Text
	}
	return strings.Join(parts, " ")
}

// Block is a group of vertically adjacent lines.
type Block struct {
	Lines []Line
	BBox  pdf.BoundingBox
}

// HasText reports whether the block carries any text. Blocks built from
// images or vector graphics alone have none.
func (b Block) HasText() bool {
	for _, l := range b.Lines {
		if len(l.Spans) > 0 {
			return true
		}
	}
	return false
}
