package formats

import "encoding/binary"

// TIFF header and Image File Directory layout. An IFD is a 2-byte entry
// count followed by 12-byte entries of tag, type, count and value/offset.
const (
	tiffHeaderLen = 8
	tiffMagic     = 42
	ifdEntryLen   = 12

	tagImageWidth  = 256
	tagImageLength = 257
)

// TIFF field types that may carry an image dimension.
const (
	tiffTypeShort = 3
	tiffTypeLong  = 4
)

// ParseTIFF follows the header to the first IFD and reads the ImageWidth
// and ImageLength tags.
func ParseTIFF(b []byte) (Dimensions, error) {
	if len(b) < tiffHeaderLen {
		return Dimensions{}, truncated(TIFF, tiffHeaderLen, len(b))
	}

	// Check byte order (II for little-endian, MM for big-endian)
	var order binary.ByteOrder
	switch string(b[0:2]) {
	case "II":
		order = binary.LittleEndian
	case "MM":
		order = binary.BigEndian
	default:
		return Dimensions{}, malformed(TIFF, "invalid byte order %q", b[0:2])
	}
	if magic := order.Uint16(b[2:4]); magic != tiffMagic {
		return Dimensions{}, malformed(TIFF, "invalid magic number %d", magic)
	}

	r := reader{buf: b}
	ifdOffset := uint64(order.Uint32(b[4:8]))
	if ifdOffset < tiffHeaderLen {
		return Dimensions{}, malformed(TIFF, "IFD offset %d overlaps header", ifdOffset)
	}
	numEntries, ok := r.u16(ifdOffset, order)
	if !ok {
		return Dimensions{}, malformed(TIFF, "IFD offset %d outside data of %d bytes", ifdOffset, len(b))
	}
	entries, ok := r.slice(ifdOffset+2, uint64(numEntries)*ifdEntryLen)
	if !ok {
		return Dimensions{}, malformed(TIFF, "IFD with %d entries at offset %d exceeds data", numEntries, ifdOffset)
	}

	var width, height uint32
	var haveWidth, haveHeight bool
	for off := 0; off < len(entries) && !(haveWidth && haveHeight); off += ifdEntryLen {
		entry := entries[off : off+ifdEntryLen]
		switch order.Uint16(entry[0:2]) {
		case tagImageWidth:
			v, err := dimensionTag(entry, order, "ImageWidth")
			if err != nil {
				return Dimensions{}, err
			}
			width, haveWidth = v, true
		case tagImageLength:
			v, err := dimensionTag(entry, order, "ImageLength")
			if err != nil {
				return Dimensions{}, err
			}
			height, haveHeight = v, true
		}
	}

	if !haveWidth || !haveHeight {
		return Dimensions{}, malformed(TIFF, "first IFD lacks ImageWidth or ImageLength")
	}
	return dimensions(TIFF, width, height)
}

// dimensionTag reads a single SHORT or LONG value stored inline in the
// entry's value field.
func dimensionTag(entry []byte, order binary.ByteOrder, name string) (uint32, error) {
	dataType := order.Uint16(entry[2:4])
	count := order.Uint32(entry[4:8])
	if count == 0 {
		return 0, malformed(TIFF, "%s has no values", name)
	}
	switch dataType {
	case tiffTypeShort:
		return uint32(order.Uint16(entry[8:10])), nil
	case tiffTypeLong:
		return order.Uint32(entry[8:12]), nil
	default:
		return 0, malformed(TIFF, "%s has unsupported type %d", name, dataType)
	}
}
