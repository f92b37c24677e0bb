package pdf

import (
	"fmt"
	"io"

	lpdf "github.com/ledongthuc/pdf"
)

// LedongthucDocument implements the Document interface using ledongthuc/pdf library
type LedongthucDocument struct {
	file     io.Closer
	reader   *lpdf.Reader
	source   string
	metadata Metadata
}

// OpenWithLedongthuc opens a PDF file using the ledongthuc/pdf library
func OpenWithLedongthuc(filepath string) (Document, error) {
	return Open(filepath, BackendLedongthuc)
}

// newLedongthucDocument parses the PDF in ra. closer, if not nil, is closed
// by Document.Close; it is left open when an error is returned.
func newLedongthucDocument(ra io.ReaderAt, size int64, source string, closer io.Closer) (doc Document, err error) {
	defer func() {
		if r := recover(); r != nil {
			doc, err = nil, panicError(source, r)
		}
	}()

	r, err := lpdf.NewReader(ra, size)
	if err != nil {
		return nil, &ParseError{Source: source, Err: fmt.Errorf("ledongthuc: %w", err)}
	}

	d := &LedongthucDocument{
		file:   closer,
		reader: r,
		source: source,
	}
	d.extractMetadata()

	return d, nil
}

// extractMetadata reads the trailer /Info dictionary
func (d *LedongthucDocument) extractMetadata() {
	info := d.reader.Trailer().Key("Info")
	d.metadata = Metadata{
		Title:        info.Key("Title").Text(),
		Author:       info.Key("Author").Text(),
		Subject:      info.Key("Subject").Text(),
		Keywords:     info.Key("Keywords").Text(),
		Creator:      info.Key("Creator").Text(),
		Producer:     info.Key("Producer").Text(),
		CreationDate: parsePDFDate(info.Key("CreationDate").RawString()),
		ModDate:      parsePDFDate(info.Key("ModDate").RawString()),
		PageCount:    d.reader.NumPage(),
	}
}

// GetMetadata returns the PDF metadata
func (d *LedongthucDocument) GetMetadata() Metadata {
	return d.metadata
}

// GetPage returns a specific page by index (0-based)
func (d *LedongthucDocument) GetPage(index int) (page Page, err error) {
	if index < 0 || index >= d.reader.NumPage() {
		return nil, fmt.Errorf("page index %d out of range [0, %d)", index, d.reader.NumPage())
	}
	defer func() {
		if r := recover(); r != nil {
			page, err = nil, panicError(fmt.Sprintf("%s page %d", d.source, index+1), r)
		}
	}()
	return newLedongthucPage(d.reader, index+1)
}

// PageCount returns the total number of pages
func (d *LedongthucDocument) PageCount() int {
	return d.reader.NumPage()
}

// Backend returns BackendLedongthuc
func (d *LedongthucDocument) Backend() Backend {
	return BackendLedongthuc
}

// Close releases resources associated with the document
func (d *LedongthucDocument) Close() error {
	if d.file != nil {
		return d.file.Close()
	}
	return nil
}

// LedongthucPage implements the Page interface using ledongthuc/pdf
type LedongthucPage struct {
	pageNumber int
	width      float64
	height     float64
	objects    Objects
}

func newLedongthucPage(reader *lpdf.Reader, pageNumber int) (*LedongthucPage, error) {
	page := reader.Page(pageNumber)
	if page.V.IsNull() {
		return nil, fmt.Errorf("page %d has no page dictionary", pageNumber)
	}

	// MediaBox is inheritable from the page tree
	width, height := defaultPageWidth, defaultPageHeight
	for v := page.V; !v.IsNull(); v = v.Key("Parent") {
		mediaBox := v.Key("MediaBox")
		if mediaBox.Kind() == lpdf.Array && mediaBox.Len() == 4 {
			width = mediaBox.Index(2).Float64() - mediaBox.Index(0).Float64()
			height = mediaBox.Index(3).Float64() - mediaBox.Index(1).Float64()
			break
		}
	}

	p := &LedongthucPage{
		pageNumber: pageNumber,
		width:      width,
		height:     height,
	}

	styles := ledongthucFontStyles(page)
	for _, text := range page.Content().Text {
		flags, ok := styles[textFontName(text.Font)]
		if !ok {
			flags = StyleFromDescriptor(text.Font, 0, 0)
		}
		p.objects.Chars = appendChars(p.objects.Chars, text.S, text.Font, text.FontSize,
			text.X, text.Y, text.W, height, flags)
	}

	return p, nil
}

// ledongthucFontStyles maps each BaseFont in the page resources to its style
func ledongthucFontStyles(page lpdf.Page) map[string]FontFlags {
	styles := make(map[string]FontFlags)
	for _, name := range page.Fonts() {
		font := page.Font(name)
		desc := font.V.Key("FontDescriptor")
		if desc.IsNull() {
			// Type0 fonts keep the descriptor on the descendant CIDFont
			desc = font.V.Key("DescendantFonts").Index(0).Key("FontDescriptor")
		}
		base := font.BaseFont()
		styles[textFontName(base)] = StyleFromDescriptor(base, desc.Key("Flags").Int64(), desc.Key("FontWeight").Float64())
	}
	return styles
}

// GetPageNumber returns the page number (1-based)
func (p *LedongthucPage) GetPageNumber() int {
	return p.pageNumber
}

// GetWidth returns the page width
func (p *LedongthucPage) GetWidth() float64 {
	return p.width
}

// GetHeight returns the page height
func (p *LedongthucPage) GetHeight() float64 {
	return p.height
}

// GetBBox returns the page bounding box
func (p *LedongthucPage) GetBBox() BoundingBox {
	return BoundingBox{X1: p.width, Y1: p.height}
}

// GetObjects returns all objects on the page
func (p *LedongthucPage) GetObjects() Objects {
	return p.objects
}
