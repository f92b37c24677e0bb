package pdf

import "strings"

// FontDescriptor /Flags bits (PDF 32000-1, table 123).
const (
	descFixedPitch = 1 << 0
	descSerif      = 1 << 1
	descItalic     = 1 << 6
	descForceBold  = 1 << 18
)

// boldWeight is the /FontWeight at and above which a font counts as bold.
const boldWeight = 700

var (
	boldMarkers   = []string{"bold", "black", "heavy"}
	italicMarkers = []string{"italic", "oblique"}
	monoMarkers   = []string{"courier", "mono"}
)

// StripSubset removes a subset tag such as "ABCDEF+" from a BaseFont name.
func StripSubset(baseFont string) string {
	if i := strings.IndexByte(baseFont, '+'); i == 6 {
		return baseFont[i+1:]
	}
	return baseFont
}

// textFontName returns the font name the way the text backends report it on
// decoded text, which drops everything up to the first '+'.
func textFontName(baseFont string) string {
	if i := strings.IndexByte(baseFont, '+'); i >= 0 {
		return baseFont[i+1:]
	}
	return baseFont
}

// StyleFromDescriptor derives the character style flags for a font from its
// BaseFont name, the FontDescriptor /Flags value and /FontWeight. Zero values
// mean "not present".
func StyleFromDescriptor(baseFont string, descFlags int64, weight float64) FontFlags {
	var flags FontFlags
	name := strings.ToLower(StripSubset(baseFont))

	if descFlags&descForceBold != 0 || weight >= boldWeight || containsAny(name, boldMarkers) {
		flags |= FlagBold
	}
	if descFlags&descItalic != 0 || containsAny(name, italicMarkers) {
		flags |= FlagItalic
	}
	if descFlags&descFixedPitch != 0 || containsAny(name, monoMarkers) {
		flags |= FlagMonospace
	}
	if descFlags&descSerif != 0 {
		flags |= FlagSerif
	}
	return flags
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
