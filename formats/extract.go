package formats

import "github.com/pkg/errors"

// parsers maps each format tag to its header parser.
var parsers = map[Format]func([]byte) (Dimensions, error){
	PNG:  ParsePNG,
	JPEG: ParseJPEG,
	GIF:  ParseGIF,
	BMP:  ParseBMP,
	WebP: ParseWebP,
	TIFF: ParseTIFF,
	HEIC: ParseHEIC,
}

// Parse dispatches to the header parser for format. The buffer is never
// modified and no parser allocates in proportion to sizes read from it.
func Parse(format Format, b []byte) (Dimensions, error) {
	parse, ok := parsers[format]
	if !ok {
		return Dimensions{}, errors.Wrapf(ErrUnsupportedFormat, "%s", format)
	}
	return parse(b)
}

// Supported reports whether format has a header parser.
func Supported(format Format) bool {
	_, ok := parsers[format]
	return ok
}
