package pdf

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// US Letter, used when a page has no readable MediaBox
const (
	defaultPageWidth  = 612.0
	defaultPageHeight = 792.0
)

// Backend selects the library that decodes page content
type Backend string

const (
	// BackendLedongthuc has the most accurate text positions and is the default
	BackendLedongthuc Backend = "ledongthuc"
	BackendDslipak    Backend = "dslipak"
	// BackendAuto tries ledongthuc first and falls back to dslipak
	BackendAuto Backend = "auto"
)

// ParseBackend validates a backend name. The empty string selects BackendLedongthuc.
func ParseBackend(name string) (Backend, error) {
	switch b := Backend(strings.ToLower(strings.TrimSpace(name))); b {
	case "":
		return BackendLedongthuc, nil
	case BackendLedongthuc, BackendDslipak, BackendAuto:
		return b, nil
	default:
		return "", fmt.Errorf("unknown pdf backend %q (want ledongthuc, dslipak or auto)", name)
	}
}

// Open opens a PDF file with the given backend. The file stays open until
// Document.Close is called.
func Open(filepath string, backend Backend) (Document, error) {
	f, err := os.Open(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	doc, err := NewReader(f, info.Size(), filepath, backend, f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return doc, nil
}

// NewReader parses the PDF held by ra. source names the document in errors.
// closer, if not nil, is released by Document.Close; on error the caller
// keeps ownership of it.
func NewReader(ra io.ReaderAt, size int64, source string, backend Backend, closer io.Closer) (Document, error) {
	switch backend {
	case BackendLedongthuc, "":
		return newLedongthucDocument(ra, size, source, closer)
	case BackendDslipak:
		return newDsliPakDocument(ra, size, source, closer)
	case BackendAuto:
		// Try ledongthuc implementation first as it has the most accurate text extraction
		doc, err := newLedongthucDocument(ra, size, source, closer)
		if err == nil {
			return doc, nil
		}
		doc, err2 := newDsliPakDocument(ra, size, source, closer)
		if err2 == nil {
			return doc, nil
		}
		return nil, &ParseError{Source: source, Err: errors.Join(err, err2)}
	default:
		return nil, fmt.Errorf("unknown pdf backend %q", backend)
	}
}

// appendChars splits a decoded text run into one CharObject per rune.
// x, y are in PDF user space (bottom-left origin); the result uses a top-left
// origin. Width is spread evenly over the runes.
func appendChars(chars []CharObject, s, font string, fontSize, x, y, w, pageHeight float64, flags FontFlags) []CharObject {
	runes := []rune(s)
	if len(runes) == 0 {
		return chars
	}

	baseline := pageHeight - y
	// Baseline is typically at 80% of font height
	top := baseline - fontSize*0.8
	charWidth := w / float64(len(runes))

	for _, ch := range runes {
		chars = append(chars, CharObject{
			Text:     string(ch),
			Font:     font,
			FontSize: fontSize,
			Flags:    flags,
			X0:       x,
			Y0:       top,
			X1:       x + charWidth,
			Y1:       top + fontSize,
			Width:    charWidth,
			Height:   fontSize,
			Baseline: baseline,
		})
		x += charWidth
	}
	return chars
}

// parsePDFDate parses the PDF date format D:YYYYMMDDHHmmSSOHH'mm.
// Only the local date and time part is kept.
func parsePDFDate(dateStr string) time.Time {
	dateStr = strings.TrimPrefix(dateStr, "D:")

	layouts := []struct {
		n      int
		layout string
	}{
		{14, "20060102150405"},
		{12, "200601021504"},
		{8, "20060102"},
		{4, "2006"},
	}
	for _, l := range layouts {
		if len(dateStr) < l.n {
			continue
		}
		if t, err := time.Parse(l.layout, dateStr[:l.n]); err == nil {
			return t
		}
	}

	return time.Time{}
}
