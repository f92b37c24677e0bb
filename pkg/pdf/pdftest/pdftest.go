// Package pdftest builds small, well-formed PDF files for tests.
//
// Every document uses a US Letter media box and three WinAnsi-encoded fonts
// with a uniform advance width of half the font size.
package pdftest

import (
	"bytes"
	"fmt"
	"strings"
)

// Font resource names available to Text.Font.
const (
	Regular   = "F1" // Helvetica
	Bold      = "F2" // Helvetica-Bold
	ForceBold = "F3" // Georgia with the FontDescriptor ForceBold flag set
)

// Text is a single run of text drawn with Tj at baseline (X, Y) in PDF user
// space (bottom-left origin).
type Text struct {
	Font string
	Size float64
	X, Y float64
	S    string
}

// Page is the content of one page, drawn in order.
type Page struct {
	Texts []Text
}

// Options tune the generated file.
type Options struct {
	// Info becomes the trailer /Info dictionary, e.g. {"Title": "Cookbook"}.
	Info map[string]string
}

// Build returns a PDF with the given pages.
func Build(pages ...Page) []byte {
	return BuildWithOptions(Options{}, pages...)
}

// BuildWithOptions returns a PDF with the given pages and options.
func BuildWithOptions(opts Options, pages ...Page) []byte {
	w := &writer{}
	w.buf.WriteString("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n")

	// 1 catalog, 2 pages, 3-5 fonts, 6 descriptor, then page/content pairs, then info
	const firstPage = 7
	kids := make([]string, len(pages))
	for i := range pages {
		kids[i] = fmt.Sprintf("%d 0 R", firstPage+2*i)
	}

	w.object("<< /Type /Catalog /Pages 2 0 R >>")
	w.object(fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d /MediaBox [0 0 612 792] >>",
		strings.Join(kids, " "), len(pages)))
	w.object(fontDict("Helvetica", ""))
	w.object(fontDict("Helvetica-Bold", ""))
	w.object(fontDict("Georgia", "/FontDescriptor 6 0 R"))
	w.object("<< /Type /FontDescriptor /FontName /Georgia /Flags 262178 " +
		"/FontBBox [0 -200 1000 800] /ItalicAngle 0 /Ascent 800 /Descent -200 " +
		"/CapHeight 700 /StemV 80 >>")

	for i, p := range pages {
		content := p.content()
		w.object(fmt.Sprintf("<< /Type /Page /Parent 2 0 R /Contents %d 0 R "+
			"/Resources << /Font << /F1 3 0 R /F2 4 0 R /F3 5 0 R >> >> >>", firstPage+2*i+1))
		w.object(fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content))
	}

	info := 0
	if len(opts.Info) > 0 {
		var dict strings.Builder
		dict.WriteString("<<")
		for _, key := range []string{"Title", "Author", "Subject", "Creator", "Producer", "CreationDate"} {
			if v, ok := opts.Info[key]; ok {
				fmt.Fprintf(&dict, " /%s (%s)", key, escape(v))
			}
		}
		dict.WriteString(" >>")
		info = w.object(dict.String())
	}

	w.finish(info)
	return w.buf.Bytes()
}

func (p Page) content() string {
	var b strings.Builder
	for _, t := range p.Texts {
		fmt.Fprintf(&b, "BT /%s %g Tf %g %g Td (%s) Tj ET\n", t.Font, t.Size, t.X, t.Y, escape(t.S))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func fontDict(baseFont, extra string) string {
	widths := strings.TrimSpace(strings.Repeat("500 ", 224))
	return fmt.Sprintf("<< /Type /Font /Subtype /Type1 /BaseFont /%s /Encoding /WinAnsiEncoding "+
		"/FirstChar 32 /LastChar 255 /Widths [%s] %s>>", baseFont, widths, extra)
}

// escape encodes s as the body of a PDF literal string in WinAnsi (Latin-1
// for the runes used in tests).
func escape(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r == '(' || r == ')' || r == '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		case r < 0x80:
			b.WriteRune(r)
		case r <= 0xff:
			fmt.Fprintf(&b, "\\%03o", r)
		default:
			b.WriteByte('?')
		}
	}
	return b.String()
}

type writer struct {
	buf     bytes.Buffer
	offsets []int
}

// object appends an indirect object and returns its number.
func (w *writer) object(body string) int {
	w.offsets = append(w.offsets, w.buf.Len())
	n := len(w.offsets)
	fmt.Fprintf(&w.buf, "%d 0 obj\n%s\nendobj\n", n, body)
	return n
}

func (w *writer) finish(info int) {
	xref := w.buf.Len()
	size := len(w.offsets) + 1
	fmt.Fprintf(&w.buf, "xref\n0 %d\n0000000000 65535 f \n", size)
	for _, off := range w.offsets {
		fmt.Fprintf(&w.buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&w.buf, "trailer\n<< /Size %d /Root 1 0 R", size)
	if info > 0 {
		fmt.Fprintf(&w.buf, " /Info %d 0 R", info)
	}
	fmt.Fprintf(&w.buf, " >>\nstartxref\n%d\n%%%%EOF\n", xref)
}
