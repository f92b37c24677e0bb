package pdf

import "fmt"

// ParseError reports content that is not a valid or readable PDF.
type ParseError struct {
	Source string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("parse pdf: %v", e.Err)
	}
	return fmt.Sprintf("parse pdf %s: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// panicError converts a value recovered from a parsing library panic into a
// *ParseError. Both ledongthuc/pdf and dslipak/pdf panic on malformed objects
// instead of returning errors.
func panicError(source string, r any) error {
	cause, ok := r.(error)
	if !ok {
		cause = fmt.Errorf("%v", r)
	}
	return &ParseError{Source: source, Err: cause}
}
