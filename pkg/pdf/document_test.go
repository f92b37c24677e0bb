package pdf_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pyhub-apps/cookbook-pdf/pkg/pdf"
	"github.com/pyhub-apps/cookbook-pdf/pkg/pdf/pdftest"
)

func samplePDF() []byte {
	return pdftest.BuildWithOptions(pdftest.Options{
		Info: map[string]string{"Title": "French Canadian Recipes", "Author": "Test Kitchen", "CreationDate": "D:20210105120000Z"},
	},
		pdftest.Page{Texts: []pdftest.Text{
			{Font: pdftest.Bold, Size: 14, X: 72, Y: 700, S: "Tourtière"},
			{Font: pdftest.Regular, Size: 9, X: 72, Y: 680, S: "ingredients"},
		}},
		pdftest.Page{Texts: []pdftest.Text{
			{Font: pdftest.ForceBold, Size: 12, X: 72, Y: 700, S: "Pouding"},
		}},
	)
}

func openSample(t *testing.T, backend pdf.Backend) pdf.Document {
	t.Helper()
	data := samplePDF()
	doc, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)), "sample.pdf", backend, nil)
	if err != nil {
		t.Fatalf("Failed to open PDF with %s: %v", backend, err)
	}
	t.Cleanup(func() { doc.Close() })
	return doc
}

func pageText(chars []pdf.CharObject) string {
	var b strings.Builder
	for _, c := range chars {
		b.WriteString(c.Text)
	}
	return b.String()
}

func TestBackendsDecodeCharacters(t *testing.T) {
	for _, backend := range []pdf.Backend{pdf.BackendLedongthuc, pdf.BackendDslipak, pdf.BackendAuto} {
		t.Run(string(backend), func(t *testing.T) {
			doc := openSample(t, backend)

			if doc.PageCount() != 2 {
				t.Fatalf("Expected 2 pages, got %d", doc.PageCount())
			}

			page, err := doc.GetPage(0)
			if err != nil {
				t.Fatalf("Failed to get page: %v", err)
			}
			if page.GetPageNumber() != 1 {
				t.Errorf("Expected page number 1, got %d", page.GetPageNumber())
			}
			if page.GetWidth() != 612 || page.GetHeight() != 792 {
				t.Errorf("Unexpected page size %.2f x %.2f", page.GetWidth(), page.GetHeight())
			}

			chars := page.GetObjects().Chars
			if got := pageText(chars); got != "Tourtièreingredients" {
				t.Fatalf("Expected decoded text %q, got %q", "Tourtièreingredients", got)
			}

			first := chars[0]
			if first.FontSize != 14 {
				t.Errorf("Expected font size 14, got %.2f", first.FontSize)
			}
			if first.Font != "Helvetica-Bold" {
				t.Errorf("Expected font Helvetica-Bold, got %q", first.Font)
			}
			if !first.Flags.Has(pdf.FlagBold) {
				t.Errorf("Expected bold flag on %q, got %v", first.Font, first.Flags)
			}
			if first.Baseline != 92 {
				t.Errorf("Expected baseline 92 (top-left origin), got %.2f", first.Baseline)
			}

			last := chars[len(chars)-1]
			if last.FontSize != 9 || last.Flags.Has(pdf.FlagBold) {
				t.Errorf("Expected regular 9pt body text, got size %.2f flags %v", last.FontSize, last.Flags)
			}
		})
	}
}

func TestForceBoldDescriptor(t *testing.T) {
	doc := openSample(t, pdf.BackendLedongthuc)

	page, err := doc.GetPage(1)
	if err != nil {
		t.Fatalf("Failed to get page: %v", err)
	}
	chars := page.GetObjects().Chars
	if len(chars) == 0 {
		t.Fatal("Expected characters on page 2")
	}
	if !chars[0].Flags.Has(pdf.FlagBold) {
		t.Errorf("Expected ForceBold descriptor to set the bold flag, got %v", chars[0].Flags)
	}
	if !chars[0].Flags.Has(pdf.FlagSerif) {
		t.Errorf("Expected serif flag, got %v", chars[0].Flags)
	}
}

func TestMetadata(t *testing.T) {
	doc := openSample(t, pdf.BackendLedongthuc)

	meta := doc.GetMetadata()
	if meta.Title != "French Canadian Recipes" {
		t.Errorf("Expected title, got %q", meta.Title)
	}
	if meta.Author != "Test Kitchen" {
		t.Errorf("Expected author, got %q", meta.Author)
	}
	if meta.PageCount != 2 {
		t.Errorf("Expected 2 pages, got %d", meta.PageCount)
	}
	want := time.Date(2021, 1, 5, 12, 0, 0, 0, time.UTC)
	if !meta.CreationDate.Equal(want) {
		t.Errorf("Expected creation date %v, got %v", want, meta.CreationDate)
	}
}

func TestGetPageOutOfRange(t *testing.T) {
	doc := openSample(t, pdf.BackendDslipak)

	if _, err := doc.GetPage(2); err == nil {
		t.Error("Expected error for page index 2")
	}
	if _, err := doc.GetPage(-1); err == nil {
		t.Error("Expected error for page index -1")
	}
}

func TestNewReaderRejectsGarbage(t *testing.T) {
	data := []byte("this is not a pdf at all")
	for _, backend := range []pdf.Backend{pdf.BackendLedongthuc, pdf.BackendDslipak, pdf.BackendAuto} {
		t.Run(string(backend), func(t *testing.T) {
			_, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)), "junk.pdf", backend, nil)
			var parseErr *pdf.ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("Expected *pdf.ParseError, got %T: %v", err, err)
			}
			if parseErr.Source != "junk.pdf" {
				t.Errorf("Expected source junk.pdf, got %q", parseErr.Source)
			}
		})
	}
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cookbook.pdf")
	if err := os.WriteFile(path, samplePDF(), 0o644); err != nil {
		t.Fatal(err)
	}

	doc, err := pdf.OpenWithLedongthuc(path)
	if err != nil {
		t.Fatalf("Failed to open PDF: %v", err)
	}
	if doc.Backend() != pdf.BackendLedongthuc {
		t.Errorf("Expected ledongthuc backend, got %s", doc.Backend())
	}
	if err := doc.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}

	if _, err := pdf.OpenWithDslipak(filepath.Join(t.TempDir(), "missing.pdf")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestParseBackend(t *testing.T) {
	tests := []struct {
		in      string
		want    pdf.Backend
		wantErr bool
	}{
		{"", pdf.BackendLedongthuc, false},
		{"Dslipak", pdf.BackendDslipak, false},
		{" auto ", pdf.BackendAuto, false},
		{"pdfium", "", true},
	}
	for _, tt := range tests {
		got, err := pdf.ParseBackend(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseBackend(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseBackend(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestValidatorRejectsGarbage(t *testing.T) {
	v := pdf.NewValidator(nil, "")
	err := v.Validate(strings.NewReader("%PDF-1.4\nnothing here\n"), "broken.pdf")
	var parseErr *pdf.ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("Expected *pdf.ParseError, got %T: %v", err, err)
	}
}

func TestValidatorInspect(t *testing.T) {
	v := pdf.NewValidator(nil, "")
	meta, err := v.Inspect(bytes.NewReader(samplePDF()), "sample.pdf")
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}
	if meta.Title != "French Canadian Recipes" {
		t.Errorf("Expected title, got %q", meta.Title)
	}
	if meta.PageCount != 2 {
		t.Errorf("Expected 2 pages, got %d", meta.PageCount)
	}
	if meta.CreationDate.Year() != 2021 {
		t.Errorf("Expected a 2021 creation date, got %v", meta.CreationDate)
	}
}
