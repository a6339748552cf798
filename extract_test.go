package clipmeta

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clipmeta/internal/testimages"
)

type fakeItem struct {
	data []byte
	hint string
}

// fakeSource is an in-memory Source whose onRead hook may mutate the
// clipboard while the driver iterates it.
type fakeSource struct {
	items  []fakeItem
	gen    uint64
	passes int
	onRead func(s *fakeSource, i int)
}

func (s *fakeSource) ItemCount() int {
	s.passes++
	return len(s.items)
}

func (s *fakeSource) ItemBytes(i int) []byte {
	if s.onRead != nil {
		s.onRead(s, i)
	}
	if i >= len(s.items) {
		return nil
	}
	return s.items[i].data
}

func (s *fakeSource) ItemHint(i int) (string, bool) {
	if i >= len(s.items) || s.items[i].hint == "" {
		return "", false
	}
	return s.items[i].hint, true
}

func (s *fakeSource) ChangeGeneration() uint64 {
	return s.gen
}

func (s *fakeSource) replace(items ...fakeItem) {
	s.items = items
	s.gen++
}

func mixedItems() []fakeItem {
	truncated := testimages.PNG(4, 4)[:20]
	return []fakeItem{
		{data: testimages.PNG(640, 480), hint: "public.png"},
		{data: []byte("copied text"), hint: "public.utf8-plain-text"},
		{data: testimages.JPEG(32, 16)},
		{data: truncated, hint: "image/png"},
		{data: testimages.HEIC(4032, 3024), hint: "public.heic"},
	}
}

func TestExtractImageInfo_EmptyClipboard(t *testing.T) {
	infos := ExtractImageInfo(&fakeSource{})
	assert.NotNil(t, infos)
	assert.Empty(t, infos)
}

func TestExtractImageInfo_OrderAndLength(t *testing.T) {
	src := &fakeSource{items: mixedItems()}
	infos := ExtractImageInfo(src)

	require.Len(t, infos, 5)
	for i, info := range infos {
		assert.Equal(t, i, info.Index)
		assert.Equal(t, len(src.items[i].data), info.SizeBytes)
	}

	assert.Equal(t, FormatPNG, infos[0].Format)
	assert.Equal(t, &Dimensions{Width: 640, Height: 480}, infos[0].Dimensions)
	assert.Equal(t, "public.png", infos[0].DeclaredType)

	assert.Equal(t, FormatUnknown, infos[1].Format)
	assert.Nil(t, infos[1].Dimensions)
	assert.Equal(t, ErrorNone, infos[1].Error)

	assert.Equal(t, FormatJPEG, infos[2].Format)
	assert.Equal(t, &Dimensions{Width: 32, Height: 16}, infos[2].Dimensions)
	assert.Empty(t, infos[2].DeclaredType)

	assert.Equal(t, FormatPNG, infos[3].Format)
	assert.Equal(t, ErrorTruncated, infos[3].Error)
	assert.Nil(t, infos[3].Dimensions)

	assert.Equal(t, FormatHEIC, infos[4].Format)
	assert.Equal(t, &Dimensions{Width: 4032, Height: 3024}, infos[4].Dimensions)

	assert.Equal(t, 1, src.passes)
}

func TestExtractImageInfo_Idempotent(t *testing.T) {
	src := &fakeSource{items: mixedItems()}
	assert.Equal(t, ExtractImageInfo(src), ExtractImageInfo(src))
}

func TestExtract_RetriesOnceAfterChange(t *testing.T) {
	replacement := []fakeItem{
		{data: testimages.GIF(3, 2)},
		{data: testimages.BMP(5, 4)},
	}
	changed := false
	src := &fakeSource{
		items: mixedItems(),
		onRead: func(s *fakeSource, i int) {
			if i == 1 && !changed {
				changed = true
				s.replace(replacement...)
			}
		},
	}

	infos := ExtractImageInfo(src)

	assert.Equal(t, 2, src.passes)
	require.Len(t, infos, 2)
	assert.Equal(t, FormatGIF, infos[0].Format)
	assert.Equal(t, &Dimensions{Width: 3, Height: 2}, infos[0].Dimensions)
	assert.Equal(t, FormatBMP, infos[1].Format)
	assert.Equal(t, &Dimensions{Width: 5, Height: 4}, infos[1].Dimensions)
}

func TestExtract_ChangeAfterLastItemRetries(t *testing.T) {
	changed := false
	src := &fakeSource{
		items: mixedItems(),
		onRead: func(s *fakeSource, i int) {
			if i == 4 && !changed {
				changed = true
				s.gen++
			}
		},
	}

	infos := ExtractImageInfo(src)

	assert.Equal(t, 2, src.passes)
	assert.Len(t, infos, 5)
}

// A clipboard that keeps changing yields the partial second pass instead of
// looping.
func TestExtract_ReturnsPartialWhenChangedTwice(t *testing.T) {
	src := &fakeSource{
		items: mixedItems(),
		onRead: func(s *fakeSource, i int) {
			if i == 1 {
				s.gen++
			}
		},
	}

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	infos := NewExtractor(src, WithLogger(logger)).Extract()

	assert.Equal(t, 2, src.passes)
	require.Len(t, infos, 2)
	assert.Equal(t, 0, infos[0].Index)
	assert.Equal(t, 1, infos[1].Index)
	assert.Equal(t, FormatPNG, infos[0].Format)

	assert.Contains(t, logs.String(), "retrying")
	assert.Contains(t, logs.String(), "partial result")
	assert.Contains(t, logs.String(), "run=")
}

func TestExtract_LogsHintConflict(t *testing.T) {
	src := &fakeSource{items: []fakeItem{{data: testimages.PNG(2, 2), hint: "image/jpeg"}}}

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	infos := NewExtractor(src, WithLogger(logger)).Extract()

	require.Len(t, infos, 1)
	assert.Equal(t, FormatPNG, infos[0].Format)
	assert.Contains(t, logs.String(), "declared type disagrees with signature")
}

func TestWithLogger_NilKeepsDefault(t *testing.T) {
	e := NewExtractor(&fakeSource{}, WithLogger(nil))
	assert.NotNil(t, e.log)
	assert.Empty(t, e.Extract())
}
