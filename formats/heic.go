package formats

import "encoding/binary"

const (
	// ftyp box header, major brand and minor version
	heicMinHeader = 8 + 4 + 4

	boxHeaderLen      = 8
	largeBoxHeaderLen = 16
	fullBoxHeaderLen  = 4 // version and flags
)

// box is one ISO-BMFF box. The payload runs from body to end.
type box struct {
	typ  string
	body uint64
	end  uint64
}

// readBox parses the box header at off. The declared size must fit between
// off and limit; size 0 extends the box to limit.
func readBox(r reader, off, limit uint64) (box, error) {
	if limit-off < boxHeaderLen {
		return box{}, malformed(HEIC, "box header at offset %d crosses end of container", off)
	}
	size32, _ := r.u32(off, binary.BigEndian)
	typ, _ := r.tag(off + 4)

	size := uint64(size32)
	header := uint64(boxHeaderLen)
	switch size32 {
	case 0:
		size = limit - off
	case 1:
		if limit-off < largeBoxHeaderLen {
			return box{}, malformed(HEIC, "%q large size at offset %d crosses end of container", typ, off)
		}
		size, _ = r.u64(off+8, binary.BigEndian)
		header = largeBoxHeaderLen
	}

	if size < header || size > limit-off {
		return box{}, malformed(HEIC, "%q box at offset %d declares size %d, %d bytes available", typ, off, size, limit-off)
	}
	return box{typ: typ, body: off + header, end: off + size}, nil
}

// findBox walks sibling boxes in [off, limit) and returns the first of type typ.
func findBox(r reader, off, limit uint64, typ string) (box, bool, error) {
	for off < limit {
		bx, err := readBox(r, off, limit)
		if err != nil {
			return box{}, false, err
		}
		if bx.typ == typ {
			return bx, true, nil
		}
		off = bx.end
	}
	return box{}, false, nil
}

// ParseHEIC locates the image spatial extents ('ispe') property associated
// with the primary item of an ISO-BMFF still image.
func ParseHEIC(b []byte) (Dimensions, error) {
	if len(b) < heicMinHeader {
		return Dimensions{}, truncated(HEIC, heicMinHeader, len(b))
	}
	r := reader{buf: b}

	meta, ok, err := findBox(r, 0, r.size(), "meta")
	if err != nil {
		return Dimensions{}, err
	}
	if !ok {
		return Dimensions{}, malformed(HEIC, "no meta box")
	}
	if meta.end-meta.body < fullBoxHeaderLen {
		return Dimensions{}, malformed(HEIC, "meta box too short")
	}
	children := meta.body + fullBoxHeaderLen

	pitm, ok, err := findBox(r, children, meta.end, "pitm")
	if err != nil {
		return Dimensions{}, err
	}
	if !ok {
		return Dimensions{}, malformed(HEIC, "no primary item box")
	}
	primary, err := primaryItem(r, pitm)
	if err != nil {
		return Dimensions{}, err
	}

	iprp, ok, err := findBox(r, children, meta.end, "iprp")
	if err != nil {
		return Dimensions{}, err
	}
	if !ok {
		return Dimensions{}, malformed(HEIC, "no item properties box")
	}
	ipco, ok, err := findBox(r, iprp.body, iprp.end, "ipco")
	if err != nil {
		return Dimensions{}, err
	}
	if !ok {
		return Dimensions{}, malformed(HEIC, "no item property container")
	}
	ipma, ok, err := findBox(r, iprp.body, iprp.end, "ipma")
	if err != nil {
		return Dimensions{}, err
	}
	if !ok {
		return Dimensions{}, malformed(HEIC, "no item property association box")
	}

	found := false
	var dims Dimensions
	err = eachAssociation(r, ipma, primary, func(index uint16) (bool, error) {
		prop, ok, err := nthBox(r, ipco, index)
		if err != nil || !ok || prop.typ != "ispe" {
			return false, err
		}
		dims, err = parseISPE(r, prop)
		found = err == nil
		return true, err
	})
	if err != nil {
		return Dimensions{}, err
	}
	if !found {
		return Dimensions{}, malformed(HEIC, "no ispe property for primary item %d", primary)
	}
	return dims, nil
}

// primaryItem reads the item id from a 'pitm' full box.
func primaryItem(r reader, pitm box) (uint32, error) {
	version, ok := r.u8(pitm.body)
	if !ok || pitm.body >= pitm.end {
		return 0, malformed(HEIC, "empty pitm box")
	}
	id := pitm.body + fullBoxHeaderLen
	if version == 0 {
		if pitm.end < id+2 {
			return 0, malformed(HEIC, "pitm box too short")
		}
		v, _ := r.u16(id, binary.BigEndian)
		return uint32(v), nil
	}
	if pitm.end < id+4 {
		return 0, malformed(HEIC, "pitm box too short")
	}
	v, _ := r.u32(id, binary.BigEndian)
	return v, nil
}

// eachAssociation calls fn with every 1-based property index associated
// with item, in order, until fn reports it is done.
func eachAssociation(r reader, ipma box, item uint32, fn func(index uint16) (bool, error)) error {
	cur := cursor{r: r, pos: ipma.body, end: ipma.end}
	version := cur.u8()
	flags := uint32(cur.u8())<<16 | uint32(cur.u8())<<8 | uint32(cur.u8())
	entryCount := cur.u32()

	for i := uint32(0); i < entryCount && cur.err == nil; i++ {
		var itemID uint32
		if version < 1 {
			itemID = uint32(cur.u16())
		} else {
			itemID = cur.u32()
		}
		count := cur.u8()
		for j := uint8(0); j < count && cur.err == nil; j++ {
			var index uint16
			if flags&1 != 0 {
				index = cur.u16() & 0x7FFF
			} else {
				index = uint16(cur.u8() & 0x7F)
			}
			if cur.err != nil || itemID != item {
				continue
			}
			done, err := fn(index)
			if err != nil || done {
				return err
			}
		}
	}
	return cur.err
}

// nthBox returns the 1-based index-th child of container. Index 0 means
// "no property" and never matches.
func nthBox(r reader, container box, index uint16) (box, bool, error) {
	if index == 0 {
		return box{}, false, nil
	}
	off := container.body
	for n := uint16(1); off < container.end; n++ {
		bx, err := readBox(r, off, container.end)
		if err != nil {
			return box{}, false, err
		}
		if n == index {
			return bx, true, nil
		}
		off = bx.end
	}
	return box{}, false, nil
}

// parseISPE reads image_width and image_height from an 'ispe' full box.
func parseISPE(r reader, ispe box) (Dimensions, error) {
	if ispe.end-ispe.body < fullBoxHeaderLen+8 {
		return Dimensions{}, malformed(HEIC, "ispe box too short")
	}
	width, _ := r.u32(ispe.body+fullBoxHeaderLen, binary.BigEndian)
	height, _ := r.u32(ispe.body+fullBoxHeaderLen+4, binary.BigEndian)
	return dimensions(HEIC, width, height)
}

// cursor reads big-endian fields sequentially inside one box and latches
// the first out-of-bounds read.
type cursor struct {
	r   reader
	pos uint64
	end uint64
	err error
}

func (c *cursor) take(n uint64) uint64 {
	if c.err != nil {
		return 0
	}
	if c.end < c.pos || c.end-c.pos < n {
		c.err = malformed(HEIC, "field at offset %d crosses end of box", c.pos)
		return 0
	}
	off := c.pos
	c.pos += n
	return off
}

func (c *cursor) u8() uint8 {
	off := c.take(1)
	if c.err != nil {
		return 0
	}
	v, _ := c.r.u8(off)
	return v
}

func (c *cursor) u16() uint16 {
	off := c.take(2)
	if c.err != nil {
		return 0
	}
	v, _ := c.r.u16(off, binary.BigEndian)
	return v
}

func (c *cursor) u32() uint32 {
	off := c.take(4)
	if c.err != nil {
		return 0
	}
	v, _ := c.r.u32(off, binary.BigEndian)
	return v
}
