// Package cookbook extracts recipe titles from PDF cookbooks using font size
// and font style heuristics.
package cookbook

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"os"
	"regexp"
	"strings"

	"github.com/pyhub-apps/cookbook-pdf/pkg/config"
	"github.com/pyhub-apps/cookbook-pdf/pkg/fetch"
	"github.com/pyhub-apps/cookbook-pdf/pkg/layout"
	"github.com/pyhub-apps/cookbook-pdf/pkg/pdf"
	"github.com/pyhub-apps/cookbook-pdf/pkg/titles"
)

// Re-export types from the sub packages for the public API
type (
	Document   = pdf.Document
	Metadata   = pdf.Metadata
	Span       = layout.Span
	Policy     = titles.Policy
	FetchError = fetch.FetchError
	ParseError = pdf.ParseError
)

// Re-export the built-in policies
var (
	SizeBased    = titles.SizeBased
	StyleBased   = titles.StyleBased
	LookupPolicy = titles.Lookup
)

// Result is the outcome of one extraction. Titles is never nil; when Err is
// set it is empty.
type Result struct {
	Source string
	Policy string
	Titles []string
	Err    error
}

// Extractor runs the fetch, scan, classify and collect pipeline. Each call
// is independent; an Extractor holds configuration only.
type Extractor struct {
	cfg       *config.AppConfig
	logger    *slog.Logger
	fetcher   *fetch.Fetcher
	scanner   *layout.Scanner
	backend   pdf.Backend
	validator *pdf.Validator
}

// New creates an Extractor. A nil cfg selects config.Default and a nil
// logger selects slog.Default.
func New(cfg *config.AppConfig, logger *slog.Logger) *Extractor {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = slog.Default()
	}

	backend, err := pdf.ParseBackend(cfg.PDF.Backend)
	if err != nil {
		logger.Warn("falling back to default pdf backend", "error", err)
		backend = pdf.BackendLedongthuc
	}

	e := &Extractor{
		cfg:     cfg,
		logger:  logger,
		fetcher: fetch.New(cfg.FetchOptions()),
		scanner: layout.NewScanner(cfg.Layout),
		backend: backend,
	}
	if cfg.PDF.Validate {
		e.validator = pdf.NewValidator(nil, cfg.PDF.Password)
	}
	return e
}

// ExtractFromURL downloads the cookbook at url and extracts its titles.
// Failures are logged and reported in Result.Err, never returned as panics.
func (e *Extractor) ExtractFromURL(ctx context.Context, url string, policy Policy) Result {
	e.logger.Debug("fetching cookbook", "url", url)
	data, err := e.fetcher.Fetch(ctx, url)
	if err != nil {
		return e.fail(url, policy, err)
	}
	e.logger.Debug("fetched cookbook", "url", url, "bytes", len(data))
	return e.ExtractFromBytes(ctx, url, data, policy)
}

// ExtractFromPath extracts the titles of a local cookbook file.
func (e *Extractor) ExtractFromPath(ctx context.Context, path string, policy Policy) Result {
	f, err := os.Open(path)
	if err != nil {
		return e.fail(path, policy, fmt.Errorf("failed to open file: %w", err))
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return e.fail(path, policy, fmt.Errorf("failed to stat file: %w", err))
	}
	return e.extract(ctx, path, f, info.Size(), policy)
}

// ExtractFromBytes extracts the titles of a cookbook held in memory. name
// identifies it in logs and errors.
func (e *Extractor) ExtractFromBytes(ctx context.Context, name string, data []byte, policy Policy) Result {
	return e.extract(ctx, name, bytes.NewReader(data), int64(len(data)), policy)
}

// Inspect returns the document information of a local cookbook as read by
// pdfcpu, falling back to the text backend when pdfcpu cannot read it.
func (e *Extractor) Inspect(path string) (Metadata, error) {
	f, err := os.Open(path)
	if err != nil {
		return Metadata{}, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return Metadata{}, fmt.Errorf("failed to stat file: %w", err)
	}
	return e.inspect(path, f, info.Size())
}

// InspectBytes is Inspect for a cookbook held in memory.
func (e *Extractor) InspectBytes(name string, data []byte) (Metadata, error) {
	return e.inspect(name, bytes.NewReader(data), int64(len(data)))
}

func (e *Extractor) inspect(source string, ra io.ReaderAt, size int64) (Metadata, error) {
	v := e.validator
	if v == nil {
		v = pdf.NewValidator(nil, e.cfg.PDF.Password)
	}
	meta, err := v.Inspect(io.NewSectionReader(ra, 0, size), source)
	if err == nil {
		return meta, nil
	}
	e.logger.Debug("pdfcpu could not read document, using text backend", "source", source, "error", err)

	doc, derr := pdf.NewReader(ra, size, source, e.backend, nil)
	if derr != nil {
		return Metadata{}, err
	}
	defer doc.Close()
	return doc.GetMetadata(), nil
}

func (e *Extractor) extract(ctx context.Context, source string, ra io.ReaderAt, size int64, policy Policy) Result {
	if e.validator != nil {
		if err := e.validator.Validate(io.NewSectionReader(ra, 0, size), source); err != nil {
			return e.fail(source, policy, err)
		}
	}

	doc, err := pdf.NewReader(ra, size, source, e.backend, nil)
	if err != nil {
		return e.fail(source, policy, err)
	}
	defer doc.Close()

	found, err := titles.Collect(withContext(ctx, e.scanner.Spans(doc)), policy)
	if err != nil {
		return e.fail(source, policy, err)
	}

	e.logger.Info("extracted titles",
		"source", source,
		"policy", policy.Name,
		"backend", doc.Backend(),
		"pages", doc.PageCount(),
		"titles", len(found))
	return Result{Source: source, Policy: policy.Name, Titles: found}
}

func (e *Extractor) fail(source string, policy Policy, err error) Result {
	e.logger.Error("title extraction failed", "source", source, "policy", policy.Name, "error", err)
	return Result{Source: source, Policy: policy.Name, Titles: []string{}, Err: err}
}

// withContext ends spans early with ctx.Err() once ctx is done.
func withContext(ctx context.Context, spans iter.Seq2[Span, error]) iter.Seq2[Span, error] {
	return func(yield func(Span, error) bool) {
		if err := ctx.Err(); err != nil {
			yield(Span{}, err)
			return
		}
		for span, err := range spans {
			if cerr := ctx.Err(); cerr != nil {
				yield(Span{}, cerr)
				return
			}
			if !yield(span, err) {
				return
			}
		}
	}
}

// ExtractTitlesFromURL downloads the PDF at url and returns its titles under
// policy using the default configuration. Any failure is logged and yields
// an empty list.
func ExtractTitlesFromURL(url string, policy Policy) []string {
	return New(nil, nil).ExtractFromURL(context.Background(), url, policy).Titles
}

// ExtractTitlesFromPath is ExtractTitlesFromURL for a local file.
func ExtractTitlesFromPath(path string, policy Policy) []string {
	return New(nil, nil).ExtractFromPath(context.Background(), path, policy).Titles
}

var separators = regexp.MustCompile(`[-_\s]+`)

// Describe returns a one sentence description of a cookbook from its
// document title, or from the file name in url when the title is empty.
func Describe(meta Metadata, url string) string {
	name := strings.TrimSpace(meta.Title)
	if name == "" {
		name = fetch.FilenameFromURL(url)
		name = strings.TrimSuffix(name, ".pdf")
		name = strings.TrimSuffix(name, ".PDF")
		name = strings.TrimSpace(separators.ReplaceAllString(name, " "))
	}
	if name == "" {
		return "This cookbook contains a collection of recipes and cooking instructions."
	}
	return fmt.Sprintf("This cookbook '%s' contains a collection of recipes and cooking instructions.", name)
}
