package formats

import "encoding/binary"

// JPEG markers that matter while scanning for the frame header.
const (
	markerTEM  = 0x01
	markerRST0 = 0xD0
	markerRST7 = 0xD7
	markerSOI  = 0xD8
	markerEOI  = 0xD9
	markerSOS  = 0xDA

	// segment length, precision, height and width
	sofMinLen = 2 + 1 + 2 + 2
)

// isSOF reports whether marker belongs to the Start-Of-Frame family.
// C4 (DHT), C8 (JPG) and CC (DAC) share the range but are not frames.
func isSOF(marker byte) bool {
	if marker < 0xC0 || marker > 0xCF {
		return false
	}
	return marker != 0xC4 && marker != 0xC8 && marker != 0xCC
}

// ParseJPEG walks marker segments from the end of the SOI marker until the
// first frame header and reads its height and width.
func ParseJPEG(b []byte) (Dimensions, error) {
	if len(b) < 4 {
		return Dimensions{}, truncated(JPEG, 4, len(b))
	}
	if b[0] != 0xFF || b[1] != markerSOI {
		return Dimensions{}, malformed(JPEG, "missing SOI marker")
	}

	r := reader{buf: b}
	pos := uint64(2)
	for {
		prefix, ok := r.u8(pos)
		if !ok {
			return Dimensions{}, truncated(JPEG, int(pos)+1, len(b))
		}
		if prefix != 0xFF {
			return Dimensions{}, malformed(JPEG, "expected marker at offset %d, found 0x%02X", pos, prefix)
		}
		pos++

		// Skip padding bytes (0xFF)
		marker, ok := r.u8(pos)
		for ok && marker == 0xFF {
			pos++
			marker, ok = r.u8(pos)
		}
		if !ok {
			return Dimensions{}, truncated(JPEG, int(pos)+1, len(b))
		}
		pos++

		switch {
		case marker == markerTEM, marker == markerSOI, marker >= markerRST0 && marker <= markerRST7:
			// no payload
			continue
		case marker == markerEOI, marker == markerSOS:
			return Dimensions{}, malformed(JPEG, "marker 0x%02X before frame header", marker)
		case marker == 0x00:
			return Dimensions{}, malformed(JPEG, "stuffed byte outside entropy-coded data at offset %d", pos-1)
		}

		length, ok := r.u16(pos, binary.BigEndian)
		if !ok {
			return Dimensions{}, truncated(JPEG, int(pos)+2, len(b))
		}
		if length < 2 {
			return Dimensions{}, malformed(JPEG, "segment 0x%02X has length %d", marker, length)
		}
		if !r.has(pos, uint64(length)) {
			return Dimensions{}, malformed(JPEG, "segment 0x%02X length %d exceeds data", marker, length)
		}

		if isSOF(marker) {
			if length < sofMinLen {
				return Dimensions{}, malformed(JPEG, "frame header length %d, want at least %d", length, sofMinLen)
			}
			// Height and Width (big-endian) follow the precision byte
			height := binary.BigEndian.Uint16(b[pos+3 : pos+5])
			width := binary.BigEndian.Uint16(b[pos+5 : pos+7])
			return dimensions(JPEG, uint32(width), uint32(height))
		}

		pos += uint64(length)
	}
}
