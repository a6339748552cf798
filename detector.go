package clipmeta

import (
	"strings"

	"clipmeta/formats"
)

// hintFormats maps declared content types to the format they announce.
// Keys are lower-case MIME types and Uniform Type Identifiers.
var hintFormats = map[string]Format{
	"image/png":            FormatPNG,
	"public.png":           FormatPNG,
	"image/jpeg":           FormatJPEG,
	"image/jpg":            FormatJPEG,
	"image/pjpeg":          FormatJPEG,
	"public.jpeg":          FormatJPEG,
	"image/gif":            FormatGIF,
	"com.compuserve.gif":   FormatGIF,
	"image/bmp":            FormatBMP,
	"image/x-bmp":          FormatBMP,
	"image/x-ms-bmp":       FormatBMP,
	"com.microsoft.bmp":    FormatBMP,
	"image/webp":           FormatWebP,
	"org.webmproject.webp": FormatWebP,
	"image/tiff":           FormatTIFF,
	"public.tiff":          FormatTIFF,
	"image/heic":           FormatHEIC,
	"image/heif":           FormatHEIC,
	"image/avif":           FormatHEIC,
	"public.heic":          FormatHEIC,
	"public.heif":          FormatHEIC,
	"public.avif":          FormatHEIC,
	"public.heic-sequence": FormatHEIC,
	"public.heif-standard": FormatHEIC,
}

// Sniff identifies the encoding of b. The byte signature decides; hint is
// advisory and can neither override a signature nor produce a match on
// its own, so a mislabeled item never selects the wrong parser.
func Sniff(b []byte, hint string) Format {
	return formats.Detect(b)
}

// HintFormat returns the format a declared content type announces, or
// FormatUnknown. Parameters such as "; charset=" are ignored.
func HintFormat(hint string) Format {
	if i := strings.IndexByte(hint, ';'); i >= 0 {
		hint = hint[:i]
	}
	if f, ok := hintFormats[strings.ToLower(strings.TrimSpace(hint))]; ok {
		return f
	}
	return FormatUnknown
}

// HintConflicts reports whether hint announces a format other than the
// sniffed one. Unknown on either side is never a conflict.
func HintConflicts(sniffed Format, hint string) bool {
	announced := HintFormat(hint)
	return sniffed != FormatUnknown && announced != FormatUnknown && announced != sniffed
}
