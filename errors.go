package clipmeta

import (
	"github.com/pkg/errors"

	"clipmeta/formats"
)

// ErrorKind classifies why an image header could not be read.
type ErrorKind string

const (
	// ErrorNone is the zero value: no parse failure.
	ErrorNone ErrorKind = ""

	// ErrorTruncated means the buffer ends before a required structure.
	ErrorTruncated ErrorKind = "truncated"

	// ErrorMalformed means a structure is present but inconsistent.
	ErrorMalformed ErrorKind = "malformed"
)

// kindOf maps a parser error onto the record taxonomy. Anything that is
// not explicitly a truncation is reported as malformed.
func kindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return ErrorNone
	case errors.Is(err, formats.ErrTruncated):
		return ErrorTruncated
	default:
		return ErrorMalformed
	}
}
