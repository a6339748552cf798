package clipmeta

import "clipmeta/formats"

// Format is the encoding tag assigned to a clipboard item.
type Format = formats.Format

const (
	FormatUnknown = formats.Unknown
	FormatPNG     = formats.PNG
	FormatJPEG    = formats.JPEG
	FormatGIF     = formats.GIF
	FormatBMP     = formats.BMP
	FormatWebP    = formats.WebP
	FormatTIFF    = formats.TIFF
	FormatHEIC    = formats.HEIC
)

// Dimensions is the pixel size of an image; both fields are positive.
type Dimensions = formats.Dimensions

// RawItem is one clipboard item as handed over by a Source.
type RawItem struct {
	Index int

	// Hint is the declared content type (MIME type or platform type
	// identifier). Empty means the source declared none.
	Hint string

	Bytes []byte
}

// ImageInfo is the metadata record produced for one clipboard item.
//
// For a recognized format exactly one of Dimensions and Error is set. For
// FormatUnknown both are empty.
type ImageInfo struct {
	Index        int
	Format       Format
	SizeBytes    int
	Dimensions   *Dimensions
	Error        ErrorKind
	DeclaredType string
}

// IsImage reports whether the item carried a recognized image signature.
func (info ImageInfo) IsImage() bool {
	return info.Format != FormatUnknown
}
