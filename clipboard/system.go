package clipboard

import (
	"context"
	"encoding/binary"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
	"golang.design/x/clipboard"

	"clipmeta/internal/logger"
)

// Hints reported for the two representations the system clipboard exposes.
const (
	HintImage = "image/png"
	HintText  = "text/plain"
)

type readFunc func(clipboard.Format) []byte

// channel order is also item order
var systemFormats = []struct {
	format clipboard.Format
	hint   string
}{
	{clipboard.FmtImage, HintImage},
	{clipboard.FmtText, HintText},
}

// System is a Source backed by the platform clipboard. Each non-empty
// representation (image, then text) is one item.
//
// The generation advances whenever the content fingerprint changes. The
// fingerprint is recomputed on every ChangeGeneration call and whenever
// the platform reports a change, so a swap between watch ticks is still
// observed.
type System struct {
	read readFunc
	log  *slog.Logger

	mu    sync.RWMutex
	items []Item
	sum   uint64
	gen   atomic.Uint64

	changes chan struct{}
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// OpenSystem initializes the platform clipboard and starts watching it
// until ctx is done or Close is called.
func OpenSystem(ctx context.Context) (*System, error) {
	if err := clipboard.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize clipboard: %w", err)
	}

	s := newSystem(clipboard.Read, logger.Component("clipboard"))
	s.refresh()

	ctx, s.cancel = context.WithCancel(ctx)
	for _, f := range systemFormats {
		ch := clipboard.Watch(ctx, f.format)
		s.wg.Add(1)
		go s.watch(ctx, ch)
	}

	s.log.Debug("clipboard: opened", "items", s.ItemCount())
	return s, nil
}

func newSystem(read readFunc, log *slog.Logger) *System {
	return &System{
		read:    read,
		log:     log,
		changes: make(chan struct{}, 1),
		cancel:  func() {},
	}
}

func (s *System) watch(ctx context.Context, ch <-chan []byte) {
	defer s.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-ch:
			if !ok {
				return
			}
			s.handleEvent()
		}
	}
}

// handleEvent refreshes after a platform watch event and signals Changes
// if the content moved.
func (s *System) handleEvent() {
	if s.refresh() {
		s.notify()
	}
}

// refresh re-reads the clipboard and bumps the generation if the content
// differs from the last snapshot. It reports whether the generation moved.
func (s *System) refresh() bool {
	items := make([]Item, 0, len(systemFormats))
	for _, f := range systemFormats {
		if data := s.read(f.format); len(data) > 0 {
			items = append(items, Item{Data: data, Hint: f.hint})
		}
	}
	sum := fingerprint(items)

	s.mu.Lock()
	if sum == s.sum && s.items != nil {
		s.mu.Unlock()
		return false
	}
	s.items = items
	s.sum = sum
	gen := s.gen.Add(1)
	s.mu.Unlock()

	s.log.Debug("clipboard: content changed", "generation", gen, "items", len(items))
	return true
}

func (s *System) notify() {
	select {
	case s.changes <- struct{}{}:
	default:
	}
}

func fingerprint(items []Item) uint64 {
	d := xxhash.New()
	var n [8]byte
	for _, it := range items {
		d.WriteString(it.Hint)
		binary.LittleEndian.PutUint64(n[:], uint64(len(it.Data)))
		d.Write(n[:])
		d.Write(it.Data)
	}
	return d.Sum64()
}

// Changes delivers a signal when a platform watch event finds new content.
// A change first noticed through ChangeGeneration is not signalled again,
// since the extraction that noticed it already retried on it. Signals
// coalesce while the receiver is busy.
func (s *System) Changes() <-chan struct{} {
	return s.changes
}

// Close stops the watchers.
func (s *System) Close() error {
	s.cancel()
	s.wg.Wait()
	return nil
}

func (s *System) ItemCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

func (s *System) ItemBytes(i int) []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i < 0 || i >= len(s.items) {
		return nil
	}
	return s.items[i].Data
}

func (s *System) ItemHint(i int) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i < 0 || i >= len(s.items) {
		return "", false
	}
	return s.items[i].Hint, true
}

func (s *System) ChangeGeneration() uint64 {
	_ = s.refresh()
	return s.gen.Load()
}
