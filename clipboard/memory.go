// Package clipboard provides Sources for the extraction engine: an
// in-memory clipboard, a clipboard populated from files, and the system
// clipboard.
package clipboard

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"sync"
)

// Item is one clipboard entry.
type Item struct {
	Data []byte
	Hint string // declared content type, empty if none
}

// Memory is an in-process clipboard. Every Set bumps the change
// generation. It is safe for concurrent use.
type Memory struct {
	mu    sync.RWMutex
	items []Item
	gen   uint64
}

// NewMemory returns a clipboard holding items.
func NewMemory(items ...Item) *Memory {
	m := &Memory{}
	m.Set(items...)
	return m
}

// FromFiles loads each file as one clipboard item, in argument order. The
// hint is the MIME type registered for the file extension.
func FromFiles(paths ...string) (*Memory, error) {
	items := make([]Item, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", p, err)
		}
		items = append(items, Item{Data: data, Hint: hintForPath(p)})
	}
	return NewMemory(items...), nil
}

func hintForPath(p string) string {
	ext := filepath.Ext(p)
	if ext == "" {
		return ""
	}
	t := mime.TypeByExtension(ext)
	if t == "" {
		return fallbackTypes[ext]
	}
	return t
}

// fallbackTypes covers image extensions missing from minimal mime tables.
var fallbackTypes = map[string]string{
	".heic": "image/heic",
	".heif": "image/heif",
	".avif": "image/avif",
	".bmp":  "image/bmp",
	".tif":  "image/tiff",
	".tiff": "image/tiff",
	".webp": "image/webp",
}

// Set replaces the clipboard content.
func (m *Memory) Set(items ...Item) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = append([]Item(nil), items...)
	m.gen++
}

// Clear empties the clipboard.
func (m *Memory) Clear() {
	m.Set()
}

// Items returns a copy of the current item list.
func (m *Memory) Items() []Item {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]Item(nil), m.items...)
}

func (m *Memory) ItemCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}

func (m *Memory) ItemBytes(i int) []byte {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if i < 0 || i >= len(m.items) {
		return nil
	}
	return m.items[i].Data
}

func (m *Memory) ItemHint(i int) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if i < 0 || i >= len(m.items) || m.items[i].Hint == "" {
		return "", false
	}
	return m.items[i].Hint, true
}

func (m *Memory) ChangeGeneration() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.gen
}
