package blockpool

import (
	"math"

	"github.com/RoaringBitmap/roaring/v2"
)

// maxSlots limits the pool to what a 32-bit global slot index can address.
const maxSlots = math.MaxUint32

// Ref is a handle to one slot of a Pool. It stays valid for as long as the
// element it names is neither removed nor rewound away, no matter how many
// pushes follow: growth only appends blocks, it never relocates elements.
//
// The zero Ref is invalid.
type Ref struct {
	Block uint32
	Slot  uint32
	Gen   uint32
}

// endRef is the canonical one-past-last sentinel. Block indexes near
// MaxUint32 are unreachable because of the maxSlots limit.
var endRef = Ref{Block: math.MaxUint32, Slot: math.MaxUint32, Gen: math.MaxUint32}

// Pool is a block-based object pool. Storage is an ordered sequence of
// fixed-capacity blocks; growth appends a new block and leaves existing
// blocks untouched. Elements are addressed by (block, slot) pairs carried
// in a Ref together with a per-slot generation counter that detects stale
// refs after Remove, RewindToMark or Reset.
//
// Pool is not safe for concurrent use.
type Pool[T any] struct {
	capacity uint32
	blocks   [][]T
	gens     [][]uint32
	cur      uint32 // next free global slot index
	markIdx  uint32
	marked   bool
	removed  *roaring.Bitmap
	length   int
	stats    PoolStats
	logger   *Logger
	metrics  MetricsCollector
}

// PoolStats tracks pool allocation metrics.
type PoolStats struct {
	BlocksAllocated uint64 // Historical: total blocks ever created
	ActiveBlocks    int    // Current: blocks held (including rewound spares)
	TotalPushes     uint64
	TotalRemoves    uint64
	TotalRewinds    uint64
}

// New creates a Pool with the given fixed block capacity.
func New[T any](capacity int, opts ...Option) (*Pool[T], error) {
	if capacity < 1 || uint64(capacity) > maxSlots {
		return nil, &ErrInvalidCapacity{Capacity: capacity}
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Pool[T]{
		capacity: uint32(capacity),
		removed:  roaring.New(),
		logger:   o.logger,
		metrics:  o.metrics,
	}, nil
}

// BlockCapacity returns the fixed per-block capacity N.
func (p *Pool[T]) BlockCapacity() int { return int(p.capacity) }

// NumBlocks returns the number of blocks currently held.
func (p *Pool[T]) NumBlocks() int { return len(p.blocks) }

// Len returns the number of live elements.
func (p *Pool[T]) Len() int { return p.length }

// Stats returns a snapshot of pool statistics.
func (p *Pool[T]) Stats() PoolStats {
	s := p.stats
	s.ActiveBlocks = len(p.blocks)
	return s
}

// Push appends value to the pool and returns the Ref of its slot. If the
// last block is full, a new block is allocated; no existing element moves.
func (p *Pool[T]) Push(value T) (Ref, error) {
	b := p.cur / p.capacity
	if int(b) >= len(p.blocks) {
		if err := p.addBlock(); err != nil {
			return Ref{}, err
		}
	}
	s := p.cur % p.capacity
	p.blocks[b][s] = value
	ref := Ref{Block: b, Slot: s, Gen: p.gens[b][s]}
	p.cur++
	p.length++
	p.stats.TotalPushes++
	p.metrics.RecordPush()
	return ref, nil
}

// InsertAfter appends value if h names the last live element. General
// insertion would require relocating elements, which the pool refuses by
// design; non-tail positions return ErrUnsupported.
func (p *Pool[T]) InsertAfter(h Ref, value T) (Ref, error) {
	next, err := p.Next(h)
	if err != nil {
		return Ref{}, err
	}
	if next != endRef {
		return Ref{}, ErrUnsupported
	}
	return p.Push(value)
}

// At dereferences h, returning a pointer to the element's storage. The
// pointer stays valid for the life of the element.
func (p *Pool[T]) At(h Ref) (*T, error) {
	if err := p.validate(h); err != nil {
		return nil, err
	}
	return &p.blocks[h.Block][h.Slot], nil
}

// Begin returns the ref of the first live element, or End() when empty.
func (p *Pool[T]) Begin() Ref { return p.refAt(0) }

// End returns the one-past-last sentinel.
func (p *Pool[T]) End() Ref { return endRef }

// Next returns the ref of the live element after h, crossing block
// boundaries transparently and skipping removed slots. Advancing past the
// last element yields End(); advancing from End() fails with ErrOutOfRange.
func (p *Pool[T]) Next(h Ref) (Ref, error) {
	if h == endRef {
		return Ref{}, ErrOutOfRange
	}
	if err := p.validate(h); err != nil {
		return Ref{}, err
	}
	return p.refAt(p.index(h) + 1), nil
}

// Prev returns the ref of the live element before h. Prev(End()) yields the
// last element; stepping before the first fails with ErrOutOfRange.
func (p *Pool[T]) Prev(h Ref) (Ref, error) {
	var idx uint32
	if h == endRef {
		idx = p.cur
	} else {
		if err := p.validate(h); err != nil {
			return Ref{}, err
		}
		idx = p.index(h)
	}
	for idx > 0 {
		idx--
		if !p.removed.Contains(idx) {
			b, s := idx/p.capacity, idx%p.capacity
			return Ref{Block: b, Slot: s, Gen: p.gens[b][s]}, nil
		}
	}
	return Ref{}, ErrOutOfRange
}

// Remove tombstones the slot named by h. No element is relocated, so every
// other ref stays valid; the removed slot's generation is bumped so stale
// refs fail with ErrUseAfterFree. The slot is skipped by iteration and is
// not reused until a rewind passes over it.
func (p *Pool[T]) Remove(h Ref) error {
	if err := p.validate(h); err != nil {
		return err
	}
	p.gens[h.Block][h.Slot]++
	p.removed.Add(p.index(h))
	p.length--
	p.stats.TotalRemoves++
	p.metrics.RecordRemove()
	return nil
}

// Mark records the current write position for a later RewindToMark.
func (p *Pool[T]) Mark() {
	p.markIdx = p.cur
	p.marked = true
}

// RewindToMark moves the write cursor back to the position recorded by
// Mark, discarding every element pushed since. Blocks are retained for
// reuse; refs into the discarded tail fail with ErrUseAfterFree. Without a
// prior Mark it behaves like Reset.
func (p *Pool[T]) RewindToMark() {
	if !p.marked {
		p.Reset()
		return
	}
	p.rewind(p.markIdx)
}

// Reset discards all elements while retaining allocated blocks for reuse.
// Every previously issued ref fails with ErrUseAfterFree afterwards.
func (p *Pool[T]) Reset() {
	p.rewind(0)
	p.marked = false
	p.markIdx = 0
}

func (p *Pool[T]) index(h Ref) uint32 {
	return h.Block*p.capacity + h.Slot
}

func (p *Pool[T]) validate(h Ref) error {
	if uint64(h.Block) >= uint64(len(p.blocks)) || h.Slot >= p.capacity {
		return ErrInvalidRef
	}
	if h.Gen != p.gens[h.Block][h.Slot] {
		return ErrUseAfterFree
	}
	if p.index(h) >= p.cur {
		return ErrInvalidRef
	}
	return nil
}

// refAt returns the ref of the first live slot at or after idx, or endRef.
func (p *Pool[T]) refAt(idx uint32) Ref {
	for ; idx < p.cur; idx++ {
		if !p.removed.Contains(idx) {
			b, s := idx/p.capacity, idx%p.capacity
			return Ref{Block: b, Slot: s, Gen: p.gens[b][s]}
		}
	}
	return endRef
}

func (p *Pool[T]) addBlock() error {
	if uint64(len(p.blocks)+1)*uint64(p.capacity) > maxSlots {
		return ErrMaxBlocksExceeded
	}
	block := make([]T, p.capacity)
	gens := make([]uint32, p.capacity)
	for i := range gens {
		gens[i] = 1 // generation 0 never names a live slot
	}
	p.blocks = append(p.blocks, block)
	p.gens = append(p.gens, gens)
	p.stats.BlocksAllocated++
	p.metrics.RecordBlockAlloc(int(p.capacity))
	p.logger.Debug("allocated block", "block", len(p.blocks)-1, "capacity", p.capacity)
	return nil
}

func (p *Pool[T]) rewind(to uint32) {
	for idx := to; idx < p.cur; idx++ {
		p.gens[idx/p.capacity][idx%p.capacity]++
	}
	live := int(to)
	if to > 0 {
		live -= int(p.removed.Rank(to - 1))
		p.removed.RemoveRange(uint64(to), uint64(p.cur))
	} else {
		p.removed.Clear()
	}
	p.cur = to
	p.length = live
	p.stats.TotalRewinds++
}
