package formats

import "encoding/binary"

const (
	// RIFF header plus the FourCC and size of the first chunk
	webpMinHeader = 12 + 8
	webpPayload   = webpMinHeader

	vp8FrameHeaderLen = 10 // frame tag, start code, width, height
	vp8lHeaderLen     = 5  // signature byte plus 32 bits of packed fields
	vp8xHeaderLen     = 10 // flags, reserved, canvas width and height
)

// ParseWebP branches on the first chunk. Simple lossy (VP8), lossless (VP8L)
// and extended (VP8X) files each store the size differently.
func ParseWebP(b []byte) (Dimensions, error) {
	if len(b) < webpMinHeader {
		return Dimensions{}, truncated(WebP, webpMinHeader, len(b))
	}
	if string(b[0:4]) != "RIFF" || string(b[8:12]) != "WEBP" {
		return Dimensions{}, malformed(WebP, "missing RIFF/WEBP header")
	}

	chunkType := string(b[12:16])
	switch chunkType {
	case "VP8 ":
		return parseVP8(b)
	case "VP8L":
		return parseVP8L(b)
	case "VP8X":
		return parseVP8X(b)
	default:
		return Dimensions{}, malformed(WebP, "unsupported first chunk %q", chunkType)
	}
}

// parseVP8 reads the key frame header of a lossy bitstream.
func parseVP8(b []byte) (Dimensions, error) {
	if err := checkChunk(b, vp8FrameHeaderLen); err != nil {
		return Dimensions{}, err
	}
	frame := b[webpPayload : webpPayload+vp8FrameHeaderLen]

	// key frames clear bit 0 of the frame tag
	if frame[0]&0x01 != 0 {
		return Dimensions{}, malformed(WebP, "VP8 bitstream does not start with a key frame")
	}
	if frame[3] != 0x9D || frame[4] != 0x01 || frame[5] != 0x2A {
		return Dimensions{}, malformed(WebP, "invalid VP8 start code")
	}

	// 14-bit sizes, the top two bits hold the upscaling mode
	width := binary.LittleEndian.Uint16(frame[6:8]) & 0x3FFF
	height := binary.LittleEndian.Uint16(frame[8:10]) & 0x3FFF
	return dimensions(WebP, uint32(width), uint32(height))
}

// parseVP8L reads the lossless header: 14 bits width-1, 14 bits height-1.
func parseVP8L(b []byte) (Dimensions, error) {
	if err := checkChunk(b, vp8lHeaderLen); err != nil {
		return Dimensions{}, err
	}
	header := b[webpPayload : webpPayload+vp8lHeaderLen]
	if header[0] != 0x2F {
		return Dimensions{}, malformed(WebP, "invalid VP8L signature 0x%02X", header[0])
	}

	bits := binary.LittleEndian.Uint32(header[1:5])
	width := bits&0x3FFF + 1
	height := (bits>>14)&0x3FFF + 1
	return dimensions(WebP, width, height)
}

// parseVP8X reads the 24-bit canvas size of an extended file.
func parseVP8X(b []byte) (Dimensions, error) {
	if err := checkChunk(b, vp8xHeaderLen); err != nil {
		return Dimensions{}, err
	}
	header := b[webpPayload : webpPayload+vp8xHeaderLen]

	width := uint32(header[4]) | uint32(header[5])<<8 | uint32(header[6])<<16
	height := uint32(header[7]) | uint32(header[8])<<8 | uint32(header[9])<<16
	return dimensions(WebP, width+1, height+1)
}

// checkChunk verifies the first chunk can hold need bytes and that the
// buffer actually contains them.
func checkChunk(b []byte, need int) error {
	size := binary.LittleEndian.Uint32(b[16:20])
	if size < uint32(need) {
		return malformed(WebP, "%s chunk size %d, want at least %d", b[12:16], size, need)
	}
	if len(b) < webpPayload+need {
		return truncated(WebP, webpPayload+need, len(b))
	}
	return nil
}
