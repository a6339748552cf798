package clipmeta

import (
	"io"
	"log/slog"
	"math"

	"github.com/google/uuid"
)

// Source is the clipboard collaborator. Implementations expose the items
// currently on the clipboard and a generation counter that increases
// whenever the clipboard content changes.
type Source interface {
	// ItemCount returns the number of items currently on the clipboard.
	ItemCount() int

	// ItemBytes returns the raw bytes of item i. Callers do not modify them.
	ItemBytes(i int) []byte

	// ItemHint returns the declared content type of item i, if any.
	ItemHint(i int) (string, bool)

	// ChangeGeneration returns a monotonically increasing counter.
	ChangeGeneration() uint64
}

// maxPrealloc caps the result capacity reserved up front from ItemCount.
const maxPrealloc = 64

// Extractor runs the extraction over a Source.
type Extractor struct {
	src Source
	log *slog.Logger
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithLogger sets the logger used for retry and hint diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(e *Extractor) {
		if l != nil {
			e.log = l
		}
	}
}

// NewExtractor creates an Extractor over src.
func NewExtractor(src Source, opts ...Option) *Extractor {
	e := &Extractor{
		src: src,
		// Equivalent of slog.DiscardHandler (Go 1.24+) for the Go 1.21 toolchain.
		log: slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(math.MaxInt)})),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExtractImageInfo is the public entry point: it returns one record per
// clipboard item, in clipboard index order.
func ExtractImageInfo(src Source) []ImageInfo {
	return NewExtractor(src).Extract()
}

// Extract processes every item on the clipboard.
//
// The source's change generation is recorded before iterating and checked
// before each item and after the last one. If the clipboard changed, the
// partial result is discarded and extraction restarts once. If it changes
// again during the retry, the records gathered before the change was seen
// are returned.
func (e *Extractor) Extract() []ImageInfo {
	log := e.log.With("run", uuid.NewString())

	infos, complete := e.collect(log)
	if complete {
		log.Debug("extract: complete", "items", len(infos))
		return infos
	}

	log.Debug("extract: clipboard changed during iteration, retrying", "discarded", len(infos))
	infos, complete = e.collect(log)
	if !complete {
		log.Warn("extract: clipboard changed again, returning partial result", "items", len(infos))
	}
	return infos
}

// collect makes one pass over the source. The boolean is false when the
// generation moved during the pass.
func (e *Extractor) collect(log *slog.Logger) ([]ImageInfo, bool) {
	gen := e.src.ChangeGeneration()
	n := max(e.src.ItemCount(), 0)

	infos := make([]ImageInfo, 0, min(n, maxPrealloc))
	for i := 0; i < n; i++ {
		if e.src.ChangeGeneration() != gen {
			return infos, false
		}

		item := RawItem{Index: i, Bytes: e.src.ItemBytes(i)}
		if hint, ok := e.src.ItemHint(i); ok {
			item.Hint = hint
		}

		info := Process(item)
		if HintConflicts(info.Format, item.Hint) {
			log.Debug("extract: declared type disagrees with signature",
				"index", i, "declared", item.Hint, "format", info.Format)
		}
		if info.Error != ErrorNone {
			log.Debug("extract: header unreadable", "index", i, "format", info.Format, "error", info.Error)
		}
		infos = append(infos, info)
	}
	return infos, e.src.ChangeGeneration() == gen
}
