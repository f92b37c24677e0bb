package pdf

import (
	"fmt"
	"io"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Validator checks PDF structure with pdfcpu before the content is handed to
// a text backend. It is safe for sequential reuse.
type Validator struct {
	conf *model.Configuration
}

// NewValidator returns a Validator using conf. A nil conf selects pdfcpu's
// defaults in relaxed validation mode. password, if set, is used to open
// encrypted files.
func NewValidator(conf *model.Configuration, password string) *Validator {
	if conf == nil {
		conf = model.NewDefaultConfiguration()
		conf.ValidationMode = model.ValidationRelaxed
	}
	if password != "" {
		conf.UserPW = password
		conf.OwnerPW = password
	}
	return &Validator{conf: conf}
}

// Validate parses and validates rs, returning a *ParseError on failure.
func (v *Validator) Validate(rs io.ReadSeeker, source string) error {
	_, err := v.read(rs, source)
	return err
}

// Inspect validates rs and returns the document information dictionary and
// page count as seen by pdfcpu.
func (v *Validator) Inspect(rs io.ReadSeeker, source string) (Metadata, error) {
	ctx, err := v.read(rs, source)
	if err != nil {
		return Metadata{}, err
	}

	return Metadata{
		Title:        ctx.Title,
		Author:       ctx.Author,
		Subject:      ctx.Subject,
		Keywords:     ctx.Keywords,
		Creator:      ctx.Creator,
		Producer:     ctx.Producer,
		// Configuration also has a CreationDate field
		CreationDate: parsePDFDate(ctx.XRefTable.CreationDate),
		ModDate:      parsePDFDate(ctx.XRefTable.ModDate),
		PageCount:    ctx.PageCount,
	}, nil
}

func (v *Validator) read(rs io.ReadSeeker, source string) (ctx *model.Context, err error) {
	defer func() {
		if r := recover(); r != nil {
			ctx, err = nil, panicError(source, r)
		}
	}()

	ctx, err = api.ReadContext(rs, v.conf)
	if err != nil {
		return nil, &ParseError{Source: source, Err: fmt.Errorf("failed to read PDF context: %w", err)}
	}
	if err := api.ValidateContext(ctx); err != nil {
		return nil, &ParseError{Source: source, Err: fmt.Errorf("invalid PDF: %w", err)}
	}
	return ctx, nil
}
