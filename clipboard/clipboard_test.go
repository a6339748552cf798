package clipboard

import (
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.design/x/clipboard"

	"clipmeta"
	"clipmeta/internal/testimages"
)

func TestMemory_Source(t *testing.T) {
	png := testimages.PNG(12, 7)
	m := NewMemory(
		Item{Data: png, Hint: "image/png"},
		Item{Data: []byte("hello")},
	)

	assert.Equal(t, 2, m.ItemCount())
	assert.Equal(t, png, m.ItemBytes(0))
	assert.Nil(t, m.ItemBytes(2))
	assert.Nil(t, m.ItemBytes(-1))

	hint, ok := m.ItemHint(0)
	assert.True(t, ok)
	assert.Equal(t, "image/png", hint)
	_, ok = m.ItemHint(1)
	assert.False(t, ok)

	infos := clipmeta.ExtractImageInfo(m)
	require.Len(t, infos, 2)
	assert.Equal(t, clipmeta.FormatPNG, infos[0].Format)
	assert.Equal(t, &clipmeta.Dimensions{Width: 12, Height: 7}, infos[0].Dimensions)
	assert.Equal(t, clipmeta.FormatUnknown, infos[1].Format)
}

func TestMemory_SetBumpsGeneration(t *testing.T) {
	m := NewMemory()
	g0 := m.ChangeGeneration()

	m.Set(Item{Data: testimages.GIF(1, 1)})
	g1 := m.ChangeGeneration()
	assert.Greater(t, g1, g0)

	m.Clear()
	assert.Greater(t, m.ChangeGeneration(), g1)
	assert.Zero(t, m.ItemCount())

	infos := clipmeta.ExtractImageInfo(m)
	assert.NotNil(t, infos)
	assert.Empty(t, infos)
}

func TestMemory_SetCopiesSlice(t *testing.T) {
	items := []Item{{Data: []byte("a")}}
	m := NewMemory(items...)
	items[0] = Item{Data: []byte("b")}

	assert.Equal(t, []byte("a"), m.ItemBytes(0))
	got := m.Items()
	got[0].Hint = "changed"
	_, ok := m.ItemHint(0)
	assert.False(t, ok)
}

func TestMemory_ConcurrentSet(t *testing.T) {
	m := NewMemory(Item{Data: testimages.PNG(2, 2)})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			m.Set(Item{Data: testimages.BlackPNG()}, Item{Data: []byte("x")})
		}
	}()
	for i := 0; i < 20; i++ {
		for _, info := range clipmeta.ExtractImageInfo(m) {
			assert.NotEqual(t, clipmeta.ErrorMalformed, info.Error)
		}
	}
	wg.Wait()
}

func TestFromFiles(t *testing.T) {
	dir := t.TempDir()
	files := map[string][]byte{
		"a.png":  testimages.PNG(10, 20),
		"b.heic": testimages.HEIC(30, 40),
		"c.txt":  []byte("plain"),
		"d":      testimages.JPEG(5, 6),
	}
	var paths []string
	for _, name := range []string{"a.png", "b.heic", "c.txt", "d"} {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, files[name], 0644))
		paths = append(paths, p)
	}

	m, err := FromFiles(paths...)
	require.NoError(t, err)
	require.Equal(t, 4, m.ItemCount())

	hint, ok := m.ItemHint(0)
	assert.True(t, ok)
	assert.Equal(t, "image/png", hint)
	hint, ok = m.ItemHint(1)
	assert.True(t, ok)
	assert.Contains(t, hint, "image/hei")
	_, ok = m.ItemHint(3)
	assert.False(t, ok)

	infos := clipmeta.ExtractImageInfo(m)
	require.Len(t, infos, 4)
	assert.Equal(t, &clipmeta.Dimensions{Width: 10, Height: 20}, infos[0].Dimensions)
	assert.Equal(t, clipmeta.FormatHEIC, infos[1].Format)
	assert.Equal(t, &clipmeta.Dimensions{Width: 30, Height: 40}, infos[1].Dimensions)
	assert.Equal(t, clipmeta.FormatUnknown, infos[2].Format)
	assert.Equal(t, clipmeta.FormatJPEG, infos[3].Format)
	assert.Equal(t, &clipmeta.Dimensions{Width: 5, Height: 6}, infos[3].Dimensions)
}

func TestFromFiles_Missing(t *testing.T) {
	_, err := FromFiles(filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)
}

// fakeBoard stands in for the platform clipboard.
type fakeBoard struct {
	mu   sync.Mutex
	data map[clipboard.Format][]byte
}

func (b *fakeBoard) read(f clipboard.Format) []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.data[f]
}

func (b *fakeBoard) set(f clipboard.Format, data []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.data[f] = data
}

func TestSystem_Refresh(t *testing.T) {
	board := &fakeBoard{data: map[clipboard.Format][]byte{}}
	s := newSystem(board.read, discardLogger())

	g0 := s.ChangeGeneration()
	assert.Equal(t, uint64(1), g0)
	assert.Zero(t, s.ItemCount())
	assert.Equal(t, g0, s.ChangeGeneration())

	png := testimages.PNG(8, 9)
	board.set(clipboard.FmtImage, png)
	board.set(clipboard.FmtText, []byte("caption"))
	g1 := s.ChangeGeneration()
	assert.Greater(t, g1, g0)
	assert.Equal(t, g1, s.ChangeGeneration())

	require.Equal(t, 2, s.ItemCount())
	hint, _ := s.ItemHint(0)
	assert.Equal(t, HintImage, hint)
	hint, _ = s.ItemHint(1)
	assert.Equal(t, HintText, hint)

	select {
	case <-s.Changes():
		t.Fatal("change seen through ChangeGeneration must not be signalled")
	default:
	}

	infos := clipmeta.ExtractImageInfo(s)
	require.Len(t, infos, 2)
	assert.Equal(t, &clipmeta.Dimensions{Width: 8, Height: 9}, infos[0].Dimensions)
	assert.Equal(t, clipmeta.FormatUnknown, infos[1].Format)

	board.set(clipboard.FmtImage, testimages.PNG(8, 10))
	assert.Greater(t, s.ChangeGeneration(), g1)
	assert.NoError(t, s.Close())
}

// A change that lands while the extractor iterates is picked up through
// the fingerprint, and the retry sees the new content.
func TestSystem_ChangeDuringExtract(t *testing.T) {
	board := &fakeBoard{data: map[clipboard.Format][]byte{
		clipboard.FmtImage: testimages.PNG(1, 1),
		clipboard.FmtText:  []byte("first"),
	}}

	swapped := false
	read := func(f clipboard.Format) []byte {
		data := board.read(f)
		if f == clipboard.FmtText && !swapped && string(data) == "first" {
			swapped = true
			board.set(clipboard.FmtImage, testimages.GIF(4, 3))
		}
		return data
	}
	s := newSystem(read, discardLogger())

	infos := clipmeta.ExtractImageInfo(s)
	require.Len(t, infos, 2)
	assert.Equal(t, clipmeta.FormatGIF, infos[0].Format)
	assert.Equal(t, &clipmeta.Dimensions{Width: 4, Height: 3}, infos[0].Dimensions)
}

func TestSystem_ChangesOnlyFromWatchEvents(t *testing.T) {
	board := &fakeBoard{data: map[clipboard.Format][]byte{}}
	s := newSystem(board.read, discardLogger())
	s.refresh()

	// an extraction notices the change first; the watch event that
	// follows finds nothing new
	board.set(clipboard.FmtImage, testimages.PNG(2, 2))
	g := s.ChangeGeneration()
	s.handleEvent()
	assert.Equal(t, g, s.ChangeGeneration())
	assert.Empty(t, s.Changes())

	board.set(clipboard.FmtImage, testimages.PNG(3, 3))
	s.handleEvent()
	assert.Greater(t, s.ChangeGeneration(), g)
	assert.Len(t, s.Changes(), 1)

	// events without new content are not signalled
	<-s.Changes()
	s.handleEvent()
	assert.Empty(t, s.Changes())
}

// discardLogger is the Go 1.21 equivalent of slog.New(slog.DiscardHandler).
func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(math.MaxInt)}))
}
