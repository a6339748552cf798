package clipmeta

import "encoding/json"

// Record returns the mapping form of info used by the public entry point.
// width and height are present only when dimensions were recovered, error
// only when parsing failed, declaredType only when the source supplied one.
func (info ImageInfo) Record() map[string]interface{} {
	rec := map[string]interface{}{
		"index":     info.Index,
		"format":    string(info.Format),
		"sizeBytes": info.SizeBytes,
	}
	if info.Dimensions != nil {
		rec["width"] = info.Dimensions.Width
		rec["height"] = info.Dimensions.Height
	}
	if info.Error != ErrorNone {
		rec["error"] = string(info.Error)
	}
	if info.DeclaredType != "" {
		rec["declaredType"] = info.DeclaredType
	}
	return rec
}

// Records converts an extraction result into its mapping form.
func Records(infos []ImageInfo) []map[string]interface{} {
	out := make([]map[string]interface{}, len(infos))
	for i, info := range infos {
		out[i] = info.Record()
	}
	return out
}

type wireRecord struct {
	Index        int       `json:"index"`
	Format       Format    `json:"format"`
	Width        *uint32   `json:"width,omitempty"`
	Height       *uint32   `json:"height,omitempty"`
	SizeBytes    int       `json:"sizeBytes"`
	Error        ErrorKind `json:"error,omitempty"`
	DeclaredType string    `json:"declaredType,omitempty"`
}

// MarshalJSON emits the same keys as Record, in a stable order.
func (info ImageInfo) MarshalJSON() ([]byte, error) {
	w := wireRecord{
		Index:        info.Index,
		Format:       info.Format,
		SizeBytes:    info.SizeBytes,
		Error:        info.Error,
		DeclaredType: info.DeclaredType,
	}
	if info.Dimensions != nil {
		w.Width = &info.Dimensions.Width
		w.Height = &info.Dimensions.Height
	}
	return json.Marshal(w)
}

// UnmarshalJSON reads the form written by MarshalJSON.
func (info *ImageInfo) UnmarshalJSON(data []byte) error {
	var w wireRecord
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*info = ImageInfo{
		Index:        w.Index,
		Format:       w.Format,
		SizeBytes:    w.SizeBytes,
		Error:        w.Error,
		DeclaredType: w.DeclaredType,
	}
	if w.Width != nil && w.Height != nil {
		info.Dimensions = &Dimensions{Width: *w.Width, Height: *w.Height}
	}
	return nil
}
