// Package tape implements an off-heap float64 tape for reverse-mode
// workloads. Values are recorded into fixed-capacity blocks backed by
// anonymous memory mappings, so the garbage collector never scans or moves
// them and a *float64 returned by Push stays valid until Close.
//
// The tape is the write-heavy sibling of blockpool.Pool: it trades the
// pool's generation-checked refs for raw pointers and adds the mark/rewind
// cycle typical of adjoint evaluation. Rewinding moves the write cursor
// back and reuses slots in place; pointers into the rewound region then
// alias newly recorded values.
//
// Tape is not safe for concurrent use.
package tape

import (
	"errors"
	"fmt"
	"iter"
	"unsafe"

	"github.com/hupe1980/blockpool/internal/mmap"
)

var (
	// ErrClosed is returned when using a tape after Close.
	ErrClosed = errors.New("tape: tape is closed")
	// ErrInvalidCapacity is returned for a non-positive block capacity.
	ErrInvalidCapacity = errors.New("tape: invalid block capacity")
	// ErrAllocFailed wraps mapping failures reported by the OS.
	ErrAllocFailed = errors.New("tape: block allocation failed")
)

const elemSize = int(unsafe.Sizeof(float64(0)))

type block struct {
	mapping *mmap.Mapping
	data    []float64
}

// Tape is an append-only sequence of float64 values in off-heap blocks.
type Tape struct {
	capacity int
	blocks   []*block
	cur      int // next free global slot index
	markIdx  int
	marked   bool
	closed   bool
	stats    Stats
}

// Stats tracks tape memory usage.
type Stats struct {
	BlocksMapped  uint64 // Historical: total blocks ever mapped
	ActiveBlocks  int
	BytesReserved uint64
	TotalPushes   uint64
	TotalRewinds  uint64
}

// New creates a Tape with the given per-block capacity (in values).
func New(capacity int) (*Tape, error) {
	if capacity < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCapacity, capacity)
	}
	return &Tape{capacity: capacity}, nil
}

// BlockCapacity returns the per-block capacity in values.
func (t *Tape) BlockCapacity() int { return t.capacity }

// NumBlocks returns the number of blocks currently mapped.
func (t *Tape) NumBlocks() int { return len(t.blocks) }

// Len returns the number of recorded values.
func (t *Tape) Len() int { return t.cur }

// Stats returns a snapshot of tape statistics.
func (t *Tape) Stats() Stats {
	s := t.stats
	s.ActiveBlocks = len(t.blocks)
	s.BytesReserved = uint64(len(t.blocks)) * uint64(t.capacity*elemSize)
	return s
}

// Push records value and returns a pointer to its off-heap slot. The
// pointer stays valid until Close; a rewind past the slot reuses it.
func (t *Tape) Push(value float64) (*float64, error) {
	if t.closed {
		return nil, ErrClosed
	}
	b := t.cur / t.capacity
	if b >= len(t.blocks) {
		if err := t.addBlock(); err != nil {
			return nil, err
		}
	}
	slot := &t.blocks[b].data[t.cur%t.capacity]
	*slot = value
	t.cur++
	t.stats.TotalPushes++
	return slot, nil
}

// Mark records the current write position for a later RewindToMark.
func (t *Tape) Mark() {
	t.markIdx = t.cur
	t.marked = true
}

// RewindToMark moves the write cursor back to the position recorded by
// Mark, discarding every value recorded since. Mapped blocks are retained
// for reuse. Without a prior Mark it behaves like Reset.
func (t *Tape) RewindToMark() {
	if !t.marked {
		t.Reset()
		return
	}
	t.cur = t.markIdx
	t.stats.TotalRewinds++
}

// Reset discards all values while retaining mapped blocks for reuse.
func (t *Tape) Reset() {
	t.cur = 0
	t.marked = false
	t.markIdx = 0
	t.stats.TotalRewinds++
}

// Values returns a restartable, lazy sequence of the recorded values in
// push order.
func (t *Tape) Values() iter.Seq[float64] {
	return func(yield func(float64) bool) {
		for idx := 0; idx < t.cur; idx++ {
			if !yield(t.blocks[idx/t.capacity].data[idx%t.capacity]) {
				return
			}
		}
	}
}

// Close unmaps every block. It is idempotent. All pointers returned by
// Push are invalid afterwards.
func (t *Tape) Close() error {
	if t.closed {
		return nil
	}
	t.closed = true
	var err error
	for _, b := range t.blocks {
		if closeErr := b.mapping.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}
	t.blocks = nil
	t.cur = 0
	return err
}

func (t *Tape) addBlock() error {
	m, err := mmap.MapAnon(t.capacity * elemSize)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrAllocFailed, err)
	}
	raw := m.Bytes()
	data := unsafe.Slice((*float64)(unsafe.Pointer(&raw[0])), t.capacity) //nolint:gosec // off-heap view requires unsafe
	t.blocks = append(t.blocks, &block{mapping: m, data: data})
	t.stats.BlocksMapped++
	return nil
}
