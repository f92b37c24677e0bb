package layout

import (
	"fmt"
	"iter"

	"github.com/pyhub-apps/cookbook-pdf/pkg/pdf"
)

// Config holds the grouping tolerances of the Scanner. Ratios are relative to
// the font size (or line height for BlockGapRatio).
type Config struct {
	// YTolerance is the baseline difference in points still treated as the same line
	YTolerance float64 `yaml:"y_tolerance"`
	// WordSpaceRatio of the font size; a wider horizontal gap inserts a space
	WordSpaceRatio float64 `yaml:"word_space_ratio"`
	// ColumnGapRatio of the font size; a wider horizontal gap ends the span
	ColumnGapRatio float64 `yaml:"column_gap_ratio"`
	// BlockGapRatio of the line height; a wider vertical gap starts a new block
	BlockGapRatio float64 `yaml:"block_gap_ratio"`
}

// DefaultConfig returns the tolerances used when a Config field is zero.
func DefaultConfig() Config {
	return Config{
		YTolerance:     3.0,
		WordSpaceRatio: 0.3,
		ColumnGapRatio: 3.0,
		BlockGapRatio:  1.0,
	}
}

// Scanner produces the spans of a document in reading order: pages in
// document order, then blocks, lines and spans as the content stream draws
// them.
type Scanner struct {
	cfg Config
}

// NewScanner creates a Scanner, filling zero fields of cfg with defaults.
func NewScanner(cfg Config) *Scanner {
	def := DefaultConfig()
	if cfg.YTolerance <= 0 {
		cfg.YTolerance = def.YTolerance
	}
	if cfg.WordSpaceRatio <= 0 {
		cfg.WordSpaceRatio = def.WordSpaceRatio
	}
	if cfg.ColumnGapRatio <= 0 {
		cfg.ColumnGapRatio = def.ColumnGapRatio
	}
	if cfg.BlockGapRatio <= 0 {
		cfg.BlockGapRatio = def.BlockGapRatio
	}
	return &Scanner{cfg: cfg}
}

// Page returns the text blocks of one page. index is the 0-based page index
// recorded on every span.
func (s *Scanner) Page(page pdf.Page, index int) []Block {
	spans := s.groupIntoSpans(page.GetObjects().Chars, index)
	lines := s.groupIntoLines(spans)

	var blocks []Block
	for _, b := range s.groupIntoBlocks(lines) {
		if b.HasText() {
			blocks = append(blocks, b)
		}
	}
	return blocks
}

// Spans returns a single-use sequence over every span of doc. Pages are
// decoded one at a time as the sequence advances. If a page cannot be
// decoded the error is yielded once and the sequence ends.
func (s *Scanner) Spans(doc pdf.Document) iter.Seq2[Span, error] {
	return func(yield func(Span, error) bool) {
		for i := 0; i < doc.PageCount(); i++ {
			page, err := doc.GetPage(i)
			if err != nil {
				yield(Span{}, fmt.Errorf("page %d: %w", i+1, err))
				return
			}

			for _, block := range s.Page(page, i) {
				for _, line := range block.Lines {
					for _, span := range line.Spans {
						if !yield(span, nil) {
							return
						}
					}
				}
			}
		}
	}
}
