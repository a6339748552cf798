// Package testimages builds small, well-formed image buffers with known
// dimensions for tests. Formats the standard library and golang.org/x/image
// can encode are produced by those encoders; WebP and HEIC headers are
// assembled by hand.
package testimages

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

func canvas(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 0x80, A: 0xFF})
		}
	}
	return img
}

func encode(fn func(*bytes.Buffer) error) []byte {
	var buf bytes.Buffer
	if err := fn(&buf); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

// PNG encodes a w x h image with image/png.
func PNG(w, h int) []byte {
	return encode(func(buf *bytes.Buffer) error { return png.Encode(buf, canvas(w, h)) })
}

// BlackPNG encodes a single black pixel.
func BlackPNG() []byte {
	img := image.NewGray(image.Rect(0, 0, 1, 1))
	return encode(func(buf *bytes.Buffer) error { return png.Encode(buf, img) })
}

// JPEG encodes a w x h baseline JPEG with image/jpeg.
func JPEG(w, h int) []byte {
	return encode(func(buf *bytes.Buffer) error { return jpeg.Encode(buf, canvas(w, h), nil) })
}

// GIF encodes a w x h GIF89a with image/gif.
func GIF(w, h int) []byte {
	return encode(func(buf *bytes.Buffer) error { return gif.Encode(buf, canvas(w, h), nil) })
}

// BMP encodes a w x h bottom-up bitmap with golang.org/x/image/bmp.
func BMP(w, h int) []byte {
	return encode(func(buf *bytes.Buffer) error { return bmp.Encode(buf, canvas(w, h)) })
}

// TopDownBMP returns a BMP whose DIB header stores a negative height.
func TopDownBMP(w, h int) []byte {
	b := BMP(w, h)
	binary.LittleEndian.PutUint32(b[22:26], uint32(-int32(h)))
	return b
}

// CoreBMP returns a 24-bit BMP with a 12-byte BITMAPCOREHEADER, which
// x/image/bmp never writes.
func CoreBMP(w, h uint16) []byte {
	stride := (int(w)*3 + 3) &^ 3
	pixels := make([]byte, stride*int(h))
	b := []byte("BM")
	b = binary.LittleEndian.AppendUint32(b, uint32(26+len(pixels)))
	b = binary.LittleEndian.AppendUint32(b, 0)
	b = binary.LittleEndian.AppendUint32(b, 26)
	b = binary.LittleEndian.AppendUint32(b, 12)
	b = binary.LittleEndian.AppendUint16(b, w)
	b = binary.LittleEndian.AppendUint16(b, h)
	b = binary.LittleEndian.AppendUint16(b, 1)
	b = binary.LittleEndian.AppendUint16(b, 24)
	return append(b, pixels...)
}

// TIFF encodes a w x h little-endian TIFF with golang.org/x/image/tiff.
func TIFF(w, h int) []byte {
	return encode(func(buf *bytes.Buffer) error { return tiff.Encode(buf, canvas(w, h), nil) })
}

// BigEndianTIFF hand-assembles a big-endian TIFF header and IFD in which
// ImageWidth is a SHORT and ImageLength a LONG.
func BigEndianTIFF(w, h int) []byte {
	order := binary.BigEndian
	b := []byte{'M', 'M', 0x00, 0x2A, 0, 0, 0, 8}
	b = order.AppendUint16(b, 3)

	// NewSubfileType, ImageWidth (SHORT), ImageLength (LONG)
	b = ifdEntry(b, order, 254, 4, 1, 0)
	b = ifdEntry(b, order, 256, 3, 1, uint32(w)<<16)
	b = ifdEntry(b, order, 257, 4, 1, uint32(h))
	return order.AppendUint32(b, 0)
}

func ifdEntry(b []byte, order binary.AppendByteOrder, tag, typ uint16, count, value uint32) []byte {
	b = order.AppendUint16(b, tag)
	b = order.AppendUint16(b, typ)
	b = order.AppendUint32(b, count)
	return order.AppendUint32(b, value)
}

func riff(fourCC string, payload []byte) []byte {
	chunk := []byte(fourCC)
	chunk = binary.LittleEndian.AppendUint32(chunk, uint32(len(payload)))
	chunk = append(chunk, payload...)
	if len(payload)%2 == 1 {
		chunk = append(chunk, 0)
	}
	b := []byte("RIFF")
	b = binary.LittleEndian.AppendUint32(b, uint32(4+len(chunk)))
	b = append(b, "WEBP"...)
	return append(b, chunk...)
}

// WebPLossy returns a RIFF/WEBP file whose first chunk is a VP8 key frame
// header.
func WebPLossy(w, h int) []byte {
	payload := []byte{
		0x50, 0x02, 0x00, // frame tag: key frame, version 0, shown
		0x9D, 0x01, 0x2A, // start code
	}
	payload = binary.LittleEndian.AppendUint16(payload, uint16(w)&0x3FFF)
	payload = binary.LittleEndian.AppendUint16(payload, uint16(h)&0x3FFF)
	payload = append(payload, make([]byte, 8)...)
	return riff("VP8 ", payload)
}

// WebPLossless returns a RIFF/WEBP file with a VP8L header.
func WebPLossless(w, h int) []byte {
	bits := uint32(w-1)&0x3FFF | (uint32(h-1)&0x3FFF)<<14
	payload := []byte{0x2F}
	payload = binary.LittleEndian.AppendUint32(payload, bits)
	payload = append(payload, 0x00)
	return riff("VP8L", payload)
}

// WebPExtended returns a RIFF/WEBP file with a VP8X header.
func WebPExtended(w, h int) []byte {
	payload := []byte{0x10, 0, 0, 0} // alpha flag, reserved
	payload = append(payload, le24(uint32(w-1))...)
	payload = append(payload, le24(uint32(h-1))...)
	return riff("VP8X", payload)
}

func le24(v uint32) []byte {
	return []byte{byte(v), byte(v >> 8), byte(v >> 16)}
}

// Box returns an ISO-BMFF box with a 32-bit size.
func Box(typ string, payload ...[]byte) []byte {
	body := bytes.Join(payload, nil)
	b := binary.BigEndian.AppendUint32(nil, uint32(8+len(body)))
	b = append(b, typ...)
	return append(b, body...)
}

// FullBox returns an ISO-BMFF box whose payload starts with version and flags.
func FullBox(typ string, version uint8, flags uint32, payload ...[]byte) []byte {
	head := []byte{version, byte(flags >> 16), byte(flags >> 8), byte(flags)}
	return Box(typ, append([][]byte{head}, payload...)...)
}

func u16(v uint16) []byte { return binary.BigEndian.AppendUint16(nil, v) }
func u32(v uint32) []byte { return binary.BigEndian.AppendUint32(nil, v) }

// ISPE returns an image spatial extents property.
func ISPE(w, h uint32) []byte {
	return FullBox("ispe", 0, 0, u32(w), u32(h))
}

// Ftyp returns an ftyp box with the given major brand and mif1/heic as
// compatible brands.
func Ftyp(major string) []byte {
	return Box("ftyp", []byte(major), u32(0), []byte("mif1"), []byte("heic"))
}

// HEIC assembles a minimal HEIF still image. Item 1 is primary and carries
// a w x h ispe; item 2 is a 64x64 thumbnail whose ispe comes first in the
// property container.
func HEIC(w, h uint32) []byte {
	hdlr := FullBox("hdlr", 0, 0, u32(0), []byte("pict"), make([]byte, 12), []byte{0})
	pitm := FullBox("pitm", 0, 0, u16(1))
	ipco := Box("ipco",
		ISPE(64, 64),
		Box("hvcC", make([]byte, 4)),
		ISPE(w, h),
	)
	ipma := FullBox("ipma", 0, 0,
		u32(2),
		u16(2), []byte{1, 0x81},       // thumbnail -> ispe #1 (essential)
		u16(1), []byte{2, 0x82, 0x03}, // primary -> hvcC #2 (essential), ispe #3
	)
	meta := FullBox("meta", 0, 0, hdlr, pitm, Box("iprp", ipco, ipma))
	return bytes.Join([][]byte{Ftyp("heic"), meta, Box("mdat", make([]byte, 16))}, nil)
}
