package formats

import (
	"encoding/binary"
	"math"
)

const (
	bmpFileHeaderLen = 14

	// DIB header sizes
	bmpCoreHeaderLen = 12 // BITMAPCOREHEADER
	bmpMinInfoLen    = 16 // OS/2 BITMAPINFOHEADER2, the shortest with 32-bit fields
)

// ParseBMP reads the dimensions from the DIB header that follows the
// 14-byte file header. A negative height marks a top-down bitmap.
func ParseBMP(b []byte) (Dimensions, error) {
	r := reader{buf: b}
	if len(b) < bmpFileHeaderLen+4 {
		return Dimensions{}, truncated(BMP, bmpFileHeaderLen+4, len(b))
	}
	if b[0] != 'B' || b[1] != 'M' {
		return Dimensions{}, malformed(BMP, "invalid signature")
	}

	dibSize, _ := r.u32(bmpFileHeaderLen, binary.LittleEndian)
	switch {
	case dibSize == bmpCoreHeaderLen:
		const need = bmpFileHeaderLen + 8
		if len(b) < need {
			return Dimensions{}, truncated(BMP, need, len(b))
		}
		width := binary.LittleEndian.Uint16(b[18:20])
		height := binary.LittleEndian.Uint16(b[20:22])
		return dimensions(BMP, uint32(width), uint32(height))

	case dibSize >= bmpMinInfoLen:
		const need = bmpFileHeaderLen + 12
		if len(b) < need {
			return Dimensions{}, truncated(BMP, need, len(b))
		}
		width := int32(binary.LittleEndian.Uint32(b[18:22]))
		height := int32(binary.LittleEndian.Uint32(b[22:26]))
		if width < 0 {
			return Dimensions{}, malformed(BMP, "negative width %d", width)
		}
		if height == math.MinInt32 {
			return Dimensions{}, malformed(BMP, "height %d out of range", height)
		}
		if height < 0 {
			height = -height
		}
		return dimensions(BMP, uint32(width), uint32(height))

	default:
		return Dimensions{}, malformed(BMP, "unsupported DIB header size %d", dibSize)
	}
}
