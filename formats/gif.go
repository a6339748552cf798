package formats

import "encoding/binary"

// header (6 bytes) plus the width and height of the logical screen descriptor
const gifMinHeader = 6 + 4

// ParseGIF reads the logical screen size.
func ParseGIF(b []byte) (Dimensions, error) {
	if len(b) < gifMinHeader {
		return Dimensions{}, truncated(GIF, gifMinHeader, len(b))
	}
	if sig := string(b[:6]); sig != "GIF87a" && sig != "GIF89a" {
		return Dimensions{}, malformed(GIF, "invalid signature %q", sig)
	}

	// Width and Height (little-endian, 2 bytes each)
	width := binary.LittleEndian.Uint16(b[6:8])
	height := binary.LittleEndian.Uint16(b[8:10])
	return dimensions(GIF, uint32(width), uint32(height))
}
