package titles

import (
	"iter"
	"sort"

	"github.com/pyhub-apps/cookbook-pdf/pkg/layout"
)

// Collector keeps the first occurrence of every title it is given.
// Equality is exact: case and inner whitespace matter.
type Collector struct {
	sorted bool
	seen   map[string]struct{}
	titles []string
}

// NewCollector creates a Collector ordering its result the way p does.
func NewCollector(p Policy) *Collector {
	return &Collector{
		sorted: p.Sorted,
		seen:   make(map[string]struct{}),
	}
}

// Add records text and reports whether it had not been seen before.
func (c *Collector) Add(text string) bool {
	if _, ok := c.seen[text]; ok {
		return false
	}
	c.seen[text] = struct{}{}
	c.titles = append(c.titles, text)
	return true
}

// Len returns the number of unique titles collected so far.
func (c *Collector) Len() int {
	return len(c.titles)
}

// Result returns a copy of the collected titles. It is never nil.
func (c *Collector) Result() []string {
	out := make([]string, len(c.titles))
	copy(out, c.titles)
	if c.sorted {
		sort.Strings(out)
	}
	return out
}

// Collect classifies every span of spans with p and returns the unique
// titles. On the first error from spans it stops and returns the titles
// found so far together with the error.
func Collect(spans iter.Seq2[layout.Span, error], p Policy) ([]string, error) {
	c := NewCollector(p)
	for span, err := range spans {
		if err != nil {
			return c.Result(), err
		}
		if p.Accept(span) {
			c.Add(span.Text)
		}
	}
	return c.Result(), nil
}
