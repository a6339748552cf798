package clipmeta

import "clipmeta/formats"

// Process sniffs one clipboard item and, for recognized formats, reads the
// dimensions from its header.
//
// Process never fails: parser errors are captured in the record's Error
// field as ErrorTruncated or ErrorMalformed, and the item bytes are never
// modified.
//
// Example:
//
//	info := clipmeta.Process(clipmeta.RawItem{Index: 0, Hint: "public.png", Bytes: data})
//	if info.Dimensions != nil {
//		fmt.Printf("%s %dx%d\n", info.Format, info.Dimensions.Width, info.Dimensions.Height)
//	}
func Process(item RawItem) (info ImageInfo) {
	info = ImageInfo{
		Index:        item.Index,
		Format:       Sniff(item.Bytes, item.Hint),
		SizeBytes:    len(item.Bytes),
		DeclaredType: item.Hint,
	}
	if info.Format == FormatUnknown {
		return info
	}

	// A parser bug must not take down the caller; report the item as malformed.
	defer func() {
		if r := recover(); r != nil {
			info.Dimensions = nil
			info.Error = ErrorMalformed
		}
	}()

	dims, err := formats.Parse(info.Format, item.Bytes)
	if err != nil {
		info.Error = kindOf(err)
		return info
	}
	info.Dimensions = &dims
	return info
}
