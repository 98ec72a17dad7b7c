package blockpool

import "math"

// Index is a handle to one slot of an Array. Unlike a Pool Ref it does not
// survive growth: every growth event bumps the array's generation, so an
// Index issued before the event fails with ErrUseAfterFree afterwards. This
// container exists to make the instability the Pool avoids observable.
//
// The zero Index is invalid.
type Index struct {
	Slot uint32
	Gen  uint32
}

// endIndex is the canonical one-past-last sentinel.
var endIndex = Index{Slot: math.MaxUint32, Gen: math.MaxUint32}

// initialArrayCapacity is the buffer size allocated on the first push.
const initialArrayCapacity = 4

// Array is the contiguous baseline container: one resizable buffer, growth
// by doubling with a full copy. Push is amortized O(1) with periodic O(n)
// moves and the largest single allocation of the three designs.
//
// Array is not safe for concurrent use.
type Array[T any] struct {
	buf     []T
	n       uint32
	gen     uint32
	stats   ArrayStats
	logger  *Logger
	metrics MetricsCollector
}

// ArrayStats tracks buffer growth metrics.
type ArrayStats struct {
	GrowthEvents uint64 // buffer allocations, including the first
	MovedElems   uint64 // elements copied across all growth events
	TotalPushes  uint64
	Capacity     int
}

// NewArray creates an empty Array.
func NewArray[T any](opts ...Option) *Array[T] {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Array[T]{
		gen:     1, // generation 0 never names a live slot
		logger:  o.logger,
		metrics: o.metrics,
	}
}

// Len returns the number of elements.
func (a *Array[T]) Len() int { return int(a.n) }

// Cap returns the current buffer capacity.
func (a *Array[T]) Cap() int { return len(a.buf) }

// Stats returns a snapshot of array statistics.
func (a *Array[T]) Stats() ArrayStats {
	s := a.stats
	s.Capacity = len(a.buf)
	return s
}

// Push appends value. If the buffer is full, a buffer of twice the capacity
// is allocated and every element is moved into it; all previously issued
// indexes are invalidated by that move.
func (a *Array[T]) Push(value T) (Index, error) {
	if int(a.n) == len(a.buf) {
		if err := a.grow(); err != nil {
			return Index{}, err
		}
	}
	a.buf[a.n] = value
	ix := Index{Slot: a.n, Gen: a.gen}
	a.n++
	a.stats.TotalPushes++
	a.metrics.RecordPush()
	return ix, nil
}

// InsertAfter appends value if h names the last element; other positions
// would shift elements and return ErrUnsupported.
func (a *Array[T]) InsertAfter(h Index, value T) (Index, error) {
	next, err := a.Next(h)
	if err != nil {
		return Index{}, err
	}
	if next != endIndex {
		return Index{}, ErrUnsupported
	}
	return a.Push(value)
}

// At dereferences h. The returned pointer is only valid until the next
// push; hold the Index, not the pointer.
func (a *Array[T]) At(h Index) (*T, error) {
	if err := a.validate(h); err != nil {
		return nil, err
	}
	return &a.buf[h.Slot], nil
}

// Begin returns the index of the first element, or End() when empty.
func (a *Array[T]) Begin() Index {
	if a.n == 0 {
		return endIndex
	}
	return Index{Slot: 0, Gen: a.gen}
}

// End returns the one-past-last sentinel.
func (a *Array[T]) End() Index { return endIndex }

// Next returns the index after h. Advancing past the last element yields
// End(); advancing from End() fails with ErrOutOfRange.
func (a *Array[T]) Next(h Index) (Index, error) {
	if h == endIndex {
		return Index{}, ErrOutOfRange
	}
	if err := a.validate(h); err != nil {
		return Index{}, err
	}
	if h.Slot+1 == a.n {
		return endIndex, nil
	}
	return Index{Slot: h.Slot + 1, Gen: a.gen}, nil
}

// Prev returns the index before h. Prev(End()) yields the last element;
// stepping before the first fails with ErrOutOfRange.
func (a *Array[T]) Prev(h Index) (Index, error) {
	if h == endIndex {
		if a.n == 0 {
			return Index{}, ErrOutOfRange
		}
		return Index{Slot: a.n - 1, Gen: a.gen}, nil
	}
	if err := a.validate(h); err != nil {
		return Index{}, err
	}
	if h.Slot == 0 {
		return Index{}, ErrOutOfRange
	}
	return Index{Slot: h.Slot - 1, Gen: a.gen}, nil
}

func (a *Array[T]) validate(h Index) error {
	if h == endIndex {
		return ErrInvalidRef
	}
	if h.Gen != a.gen {
		return ErrUseAfterFree
	}
	if h.Slot >= a.n {
		return ErrInvalidRef
	}
	return nil
}

func (a *Array[T]) grow() error {
	newCap := initialArrayCapacity
	if len(a.buf) > 0 {
		newCap = len(a.buf) * 2
	}
	if uint64(newCap) > maxSlots {
		return ErrMaxBlocksExceeded
	}
	buf := make([]T, newCap)
	copy(buf, a.buf)
	a.buf = buf
	a.gen++
	a.stats.GrowthEvents++
	a.stats.MovedElems += uint64(a.n)
	a.metrics.RecordGrow(int(a.n))
	a.logger.Debug("grew buffer", "capacity", newCap, "moved", a.n)
	return nil
}
