package formats

import "encoding/binary"

// Signature is one entry of the signature table. Magic is matched at offset
// zero; a '?' in Magic matches any byte.
type Signature struct {
	Format Format
	Magic  string
	Name   string

	// check, when set, must also accept the buffer.
	check func(b []byte) bool
}

// Signatures is the ordered signature table consulted by Detect.
var Signatures = []Signature{
	{Format: PNG, Magic: pngMagic, Name: "PNG"},
	{Format: JPEG, Magic: "\xff\xd8\xff", Name: "JPEG SOI"},
	{Format: GIF, Magic: "GIF87a", Name: "GIF87a"},
	{Format: GIF, Magic: "GIF89a", Name: "GIF89a"},
	{Format: WebP, Magic: "RIFF????WEBP", Name: "RIFF WEBP"},
	{Format: TIFF, Magic: "II\x2a\x00", Name: "TIFF little-endian"},
	{Format: TIFF, Magic: "MM\x00\x2a", Name: "TIFF big-endian"},
	{Format: HEIC, Magic: "????ftyp", Name: "ISO-BMFF ftyp", check: hasImageBrand},
	{Format: BMP, Magic: "BM", Name: "BMP", check: hasBMPFileHeader},
}

// imageBrands are the ftyp brands of still-image ISO-BMFF files.
var imageBrands = map[string]bool{
	"heic": true, "heix": true, "hevc": true, "hevx": true,
	"heim": true, "heis": true, "hevm": true, "hevs": true,
	"mif1": true, "msf1": true, "avif": true, "avis": true,
}

// Detect identifies the image format by examining the magic bytes.
// It returns Unknown if no signature matches in full.
func Detect(magicBytes []byte) Format {
	for _, sig := range Signatures {
		if sig.matches(magicBytes) {
			return sig.Format
		}
	}
	return Unknown
}

func (s Signature) matches(b []byte) bool {
	if len(b) < len(s.Magic) {
		return false
	}
	for i := 0; i < len(s.Magic); i++ {
		if s.Magic[i] != '?' && s.Magic[i] != b[i] {
			return false
		}
	}
	return s.check == nil || s.check(b)
}

// hasBMPFileHeader requires the whole 14-byte file header, so short text
// starting with "BM" is not taken for a bitmap.
func hasBMPFileHeader(b []byte) bool {
	return len(b) >= bmpFileHeaderLen
}

// hasImageBrand accepts an ftyp box whose major brand or one of its
// compatible brands names a still-image format.
func hasImageBrand(b []byte) bool {
	r := reader{buf: b}
	major, ok := r.tag(8)
	if !ok {
		return false
	}
	if imageBrands[major] {
		return true
	}
	size, _ := r.u32(0, binary.BigEndian)
	end := uint64(size)
	if end > r.size() {
		end = r.size()
	}
	// compatible brands follow the 4-byte minor version
	for off := uint64(16); off+4 <= end; off += 4 {
		if brand, _ := r.tag(off); imageBrands[brand] {
			return true
		}
	}
	return false
}
