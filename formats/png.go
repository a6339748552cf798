package formats

import "encoding/binary"

const pngMagic = "\x89PNG\r\n\x1a\n"

const (
	pngSignatureLen = len(pngMagic)
	pngIHDRLen      = 13

	// signature, chunk length, chunk type and IHDR payload
	pngMinHeader = pngSignatureLen + 4 + 4 + pngIHDRLen

	pngMaxDimension = 1<<31 - 1
)

// ParsePNG reads the dimensions from the IHDR chunk, which must directly
// follow the signature.
func ParsePNG(b []byte) (Dimensions, error) {
	if len(b) < pngMinHeader {
		return Dimensions{}, truncated(PNG, pngMinHeader, len(b))
	}
	if string(b[:pngSignatureLen]) != pngMagic {
		return Dimensions{}, malformed(PNG, "invalid signature")
	}

	// Read chunk length (4 bytes, big-endian)
	length := binary.BigEndian.Uint32(b[8:12])
	if length != pngIHDRLen {
		return Dimensions{}, malformed(PNG, "IHDR length %d, want %d", length, pngIHDRLen)
	}
	if chunkType := string(b[12:16]); chunkType != "IHDR" {
		return Dimensions{}, malformed(PNG, "first chunk is %q, want IHDR", chunkType)
	}

	width := binary.BigEndian.Uint32(b[16:20])
	height := binary.BigEndian.Uint32(b[20:24])
	if width > pngMaxDimension || height > pngMaxDimension {
		return Dimensions{}, malformed(PNG, "dimension %dx%d exceeds 2^31-1", width, height)
	}
	return dimensions(PNG, width, height)
}
