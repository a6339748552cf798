package formats

import "encoding/binary"

// reader performs bounds-checked reads over an immutable buffer. Offsets are
// uint64 so that offset+length arithmetic on values taken from the buffer
// cannot wrap before it is compared against the real length.
type reader struct {
	buf []byte
}

func (r reader) size() uint64 {
	return uint64(len(r.buf))
}

// has reports whether n bytes starting at off lie inside the buffer.
func (r reader) has(off, n uint64) bool {
	return off <= r.size() && n <= r.size()-off
}

func (r reader) slice(off, n uint64) ([]byte, bool) {
	if !r.has(off, n) {
		return nil, false
	}
	return r.buf[off : off+n], true
}

func (r reader) u8(off uint64) (uint8, bool) {
	if !r.has(off, 1) {
		return 0, false
	}
	return r.buf[off], true
}

func (r reader) u16(off uint64, order binary.ByteOrder) (uint16, bool) {
	b, ok := r.slice(off, 2)
	if !ok {
		return 0, false
	}
	return order.Uint16(b), true
}

func (r reader) u32(off uint64, order binary.ByteOrder) (uint32, bool) {
	b, ok := r.slice(off, 4)
	if !ok {
		return 0, false
	}
	return order.Uint32(b), true
}

func (r reader) u64(off uint64, order binary.ByteOrder) (uint64, bool) {
	b, ok := r.slice(off, 8)
	if !ok {
		return 0, false
	}
	return order.Uint64(b), true
}

func (r reader) tag(off uint64) (string, bool) {
	b, ok := r.slice(off, 4)
	if !ok {
		return "", false
	}
	return string(b), true
}
