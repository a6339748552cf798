package formats

// Format is the tag assigned to a buffer by its signature.
type Format string

const (
	Unknown Format = "unknown"
	PNG     Format = "png"
	JPEG    Format = "jpeg"
	GIF     Format = "gif"
	BMP     Format = "bmp"
	WebP    Format = "webp"
	TIFF    Format = "tiff"
	HEIC    Format = "heic"
)

// Dimensions holds the pixel size recovered from a header. Both fields are
// positive whenever a parser returns a nil error.
type Dimensions struct {
	Width  uint32 `json:"width"`
	Height uint32 `json:"height"`
}

func dimensions(format Format, width, height uint32) (Dimensions, error) {
	if width == 0 || height == 0 {
		return Dimensions{}, malformed(format, "zero dimension %dx%d", width, height)
	}
	return Dimensions{Width: width, Height: height}, nil
}
