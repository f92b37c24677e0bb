// Package titles decides which spans of a cookbook are recipe titles and
// collects the unique ones.
package titles

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pyhub-apps/cookbook-pdf/pkg/layout"
)

// DefaultMaxWords is the longest title, in words, either policy accepts.
const DefaultMaxWords = 12

// Policy is a complete classification and collection rule set.
type Policy struct {
	Name string
	// Pattern must match the whole span text
	Pattern *regexp.Regexp
	// MaxWords rejects longer spans; 0 disables the check
	MaxWords int
	// MinFontSize is inclusive; 0 disables the check
	MinFontSize float64
	// RequireBold accepts only spans whose font name starts with "bold" or
	// whose style flags carry the bold bit
	RequireBold bool
	// Sorted results are returned in ascending order, otherwise first-seen
	Sorted bool
}

var (
	// SizeBased accepts short capitalized spans set in 11pt or larger.
	SizeBased = Policy{
		Name:        "size",
		Pattern:     regexp.MustCompile(`^\p{Lu}[\p{L}\s,'’()&-]+$`),
		MaxWords:    DefaultMaxWords,
		MinFontSize: 11.0,
	}

	// StyleBased accepts short capitalized spans set in a bold font, whatever
	// their size. Results are sorted.
	StyleBased = Policy{
		Name:        "style",
		Pattern:     regexp.MustCompile(`^\p{Lu}[\p{L}\s,-]{3,}$`),
		MaxWords:    DefaultMaxWords,
		RequireBold: true,
		Sorted:      true,
	}
)

var aliases = map[string]Policy{
	"size":  SizeBased,
	"a":     SizeBased,
	"style": StyleBased,
	"b":     StyleBased,
}

// Policies returns the built-in policies.
func Policies() []Policy {
	return []Policy{SizeBased, StyleBased}
}

// Lookup returns the built-in policy called name ("size"/"a" or
// "style"/"b", case-insensitive). An empty name selects SizeBased.
func Lookup(name string) (Policy, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return SizeBased, nil
	}
	p, ok := aliases[name]
	if !ok {
		return Policy{}, fmt.Errorf("unknown title policy %q (want size or style)", name)
	}
	return p, nil
}

// String returns the policy name.
func (p Policy) String() string {
	return p.Name
}

// Accept reports whether span is a title under p.
func (p Policy) Accept(span layout.Span) bool {
	if span.Text == "" {
		return false
	}
	if p.MaxWords > 0 && span.WordCount() > p.MaxWords {
		return false
	}
	if span.FontSize < p.MinFontSize {
		return false
	}
	if p.RequireBold && !isBold(span) {
		return false
	}
	return p.Pattern != nil && p.Pattern.MatchString(span.Text)
}

func isBold(span layout.Span) bool {
	return strings.HasPrefix(strings.ToLower(span.Font), "bold") || span.IsBold()
}
