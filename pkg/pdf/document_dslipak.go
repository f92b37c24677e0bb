package pdf

import (
	"fmt"
	"io"

	gopdf "github.com/dslipak/pdf"
)

// DsliPakDocument implements the Document interface using dslipak/pdf library
type DsliPakDocument struct {
	file     io.Closer
	reader   *gopdf.Reader
	source   string
	metadata Metadata
}

// OpenWithDslipak opens a PDF file using the dslipak/pdf library
func OpenWithDslipak(filepath string) (Document, error) {
	return Open(filepath, BackendDslipak)
}

func newDsliPakDocument(ra io.ReaderAt, size int64, source string, closer io.Closer) (doc Document, err error) {
	defer func() {
		if r := recover(); r != nil {
			doc, err = nil, panicError(source, r)
		}
	}()

	r, err := gopdf.NewReader(ra, size)
	if err != nil {
		return nil, &ParseError{Source: source, Err: fmt.Errorf("dslipak: %w", err)}
	}

	d := &DsliPakDocument{
		file:   closer,
		reader: r,
		source: source,
	}
	d.extractMetadata()

	return d, nil
}

func (d *DsliPakDocument) extractMetadata() {
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
func (d *DsliPakDocument) GetMetadata() Metadata {
	return d.metadata
}

// GetPage returns a specific page by index (0-based)
func (d *DsliPakDocument) GetPage(index int) (page Page, err error) {
	if index < 0 || index >= d.reader.NumPage() {
		return nil, fmt.Errorf("page index %d out of range [0, %d)", index, d.reader.NumPage())
	}
	defer func() {
		if r := recover(); r != nil {
			page, err = nil, panicError(fmt.Sprintf("%s page %d", d.source, index+1), r)
		}
	}()
	return newDsliPakPage(d.reader, index+1)
}

// PageCount returns the total number of pages
func (d *DsliPakDocument) PageCount() int {
	return d.reader.NumPage()
}

// Backend returns BackendDslipak
func (d *DsliPakDocument) Backend() Backend {
	return BackendDslipak
}

// Close releases resources associated with the document
func (d *DsliPakDocument) Close() error {
	d.reader = nil
	if d.file != nil {
		return d.file.Close()
	}
	return nil
}

// DsliPakPage implements the Page interface using dslipak/pdf
type DsliPakPage struct {
	pageNumber int
	width      float64
	height     float64
	objects    Objects
}

func newDsliPakPage(reader *gopdf.Reader, pageNumber int) (*DsliPakPage, error) {
	page := reader.Page(pageNumber)
	if page.V.IsNull() {
		return nil, fmt.Errorf("page %d has no page dictionary", pageNumber)
	}

	width, height := defaultPageWidth, defaultPageHeight
	for v := page.V; !v.IsNull(); v = v.Key("Parent") {
		mediaBox := v.Key("MediaBox")
		if mediaBox.Kind() == gopdf.Array && mediaBox.Len() == 4 {
			width = mediaBox.Index(2).Float64() - mediaBox.Index(0).Float64()
			height = mediaBox.Index(3).Float64() - mediaBox.Index(1).Float64()
			break
		}
	}

	p := &DsliPakPage{
		pageNumber: pageNumber,
		width:      width,
		height:     height,
	}

	styles := make(map[string]FontFlags)
	for _, name := range page.Fonts() {
		font := page.Font(name)
		desc := font.V.Key("FontDescriptor")
		if desc.IsNull() {
			desc = font.V.Key("DescendantFonts").Index(0).Key("FontDescriptor")
		}
		base := font.BaseFont()
		styles[textFontName(base)] = StyleFromDescriptor(base, desc.Key("Flags").Int64(), desc.Key("FontWeight").Float64())
	}

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

// GetPageNumber returns the page number (1-based)
func (p *DsliPakPage) GetPageNumber() int {
	return p.pageNumber
}

// GetWidth returns the page width
func (p *DsliPakPage) GetWidth() float64 {
	return p.width
}

// GetHeight returns the page height
func (p *DsliPakPage) GetHeight() float64 {
	return p.height
}

// GetBBox returns the page bounding box
func (p *DsliPakPage) GetBBox() BoundingBox {
	return BoundingBox{X1: p.width, Y1: p.height}
}

// GetObjects returns all objects on the page
func (p *DsliPakPage) GetObjects() Objects {
	return p.objects
}
