package layout

import (
	"math"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/pyhub-apps/cookbook-pdf/pkg/pdf"
)

// sizeTolerance is the font size difference below which two characters are
// considered to share a size.
const sizeTolerance = 0.1

// spanBuilder accumulates characters of one span
type spanBuilder struct {
	text         strings.Builder
	font         string
	fontSize     float64
	flags        pdf.FontFlags
	baseline     float64
	bbox         pdf.BoundingBox
	lastX1       float64
	pendingSpace bool
}

func newSpanBuilder(c pdf.CharObject) *spanBuilder {
	b := &spanBuilder{
		font:     c.Font,
		fontSize: c.FontSize,
		flags:    c.Flags,
		baseline: c.Baseline,
		bbox:     c.GetBBox(),
		lastX1:   c.X1,
	}
	b.text.WriteString(c.Text)
	return b
}

func (b *spanBuilder) add(c pdf.CharObject) {
	b.text.WriteString(c.Text)
	b.bbox = b.bbox.Union(c.GetBBox())
	b.lastX1 = max(b.lastX1, c.X1)
	b.pendingSpace = false
}

func (b *spanBuilder) span(pageIndex int) (Span, bool) {
	text := norm.NFC.String(strings.TrimSpace(b.text.String()))
	if text == "" {
		return Span{}, false
	}
	return Span{
		Text:      text,
		Font:      b.font,
		FontSize:  b.fontSize,
		Flags:     b.flags,
		PageIndex: pageIndex,
		BBox:      b.bbox,
		baseline:  b.baseline,
	}, true
}

// groupIntoSpans walks the characters in content stream order. A change of
// font, size, style or baseline, or a jump backwards or far forwards, closes
// the current span.
func (s *Scanner) groupIntoSpans(chars []pdf.CharObject, pageIndex int) []Span {
	var spans []Span
	var cur *spanBuilder

	flush := func() {
		if cur == nil {
			return
		}
		if span, ok := cur.span(pageIndex); ok {
			spans = append(spans, span)
		}
		cur = nil
	}

	for _, c := range chars {
		if c.IsSpace() {
			// Explicit spaces only separate words; their font does not matter
			if cur != nil {
				cur.pendingSpace = true
				cur.lastX1 = max(cur.lastX1, c.X1)
			}
			continue
		}

		if cur != nil && !s.continues(cur, c) {
			flush()
		}
		if cur == nil {
			cur = newSpanBuilder(c)
			continue
		}

		gap := c.X0 - cur.lastX1
		if cur.pendingSpace || gap > s.cfg.WordSpaceRatio*c.FontSize {
			cur.text.WriteByte(' ')
		}
		cur.add(c)
	}
	flush()

	return spans
}

func (s *Scanner) continues(b *spanBuilder, c pdf.CharObject) bool {
	if c.Font != b.font || c.Flags != b.flags {
		return false
	}
	if math.Abs(c.FontSize-b.fontSize) > sizeTolerance {
		return false
	}
	if math.Abs(c.Baseline-b.baseline) > s.cfg.YTolerance {
		return false
	}
	gap := c.X0 - b.lastX1
	return gap >= -c.FontSize && gap <= s.cfg.ColumnGapRatio*c.FontSize
}

// groupIntoLines joins consecutive spans on the same baseline
func (s *Scanner) groupIntoLines(spans []Span) []Line {
	var lines []Line
	for _, span := range spans {
		if n := len(lines); n > 0 {
			last := &lines[n-1]
			prev := last.Spans[len(last.Spans)-1]
			if math.Abs(span.baseline-prev.baseline) <= s.cfg.YTolerance &&
				span.BBox.X0 >= prev.BBox.X0 {
				last.Spans = append(last.Spans, span)
				last.BBox = last.BBox.Union(span.BBox)
				continue
			}
		}
		lines = append(lines, Line{Spans: []Span{span}, BBox: span.BBox})
	}
	return lines
}

// groupIntoBlocks starts a new block when the vertical gap to the previous
// line exceeds BlockGapRatio line heights, or when text moves back up the page.
func (s *Scanner) groupIntoBlocks(lines []Line) []Block {
	var blocks []Block
	for _, line := range lines {
		if n := len(blocks); n > 0 {
			last := &blocks[n-1]
			prev := last.Lines[len(last.Lines)-1]
			gap := line.BBox.Y0 - prev.BBox.Y1
			movedUp := line.BBox.Y0 < prev.BBox.Y0-s.cfg.YTolerance
			if !movedUp && gap <= s.cfg.BlockGapRatio*prev.BBox.Height() {
				last.Lines = append(last.Lines, line)
				last.BBox = last.BBox.Union(line.BBox)
				continue
			}
		}
		blocks = append(blocks, Block{Lines: []Line{line}, BBox: line.BBox})
	}
	return blocks
}
