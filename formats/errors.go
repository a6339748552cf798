package formats

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrTruncated indicates the data ends before a structure the parser must read.
	ErrTruncated = errors.New("formats: truncated data")

	// ErrMalformed indicates a structure is present but internally inconsistent.
	ErrMalformed = errors.New("formats: malformed data")

	// ErrUnsupportedFormat is returned when a parser is not available.
	ErrUnsupportedFormat = errors.New("formats: unsupported format")
)

func truncated(format Format, need, have int) error {
	return errors.Wrapf(ErrTruncated, "%s: need %d bytes, have %d", format, need, have)
}

func malformed(format Format, msg string, args ...interface{}) error {
	return errors.Wrapf(ErrMalformed, "%s: %s", format, fmt.Sprintf(msg, args...))
}
