package blockpool

// Node is one element of a List. A *Node is the list's handle type: it
// stays valid for the lifetime of the list regardless of later pushes,
// because nodes are never moved. nil is the end sentinel.
type Node[T any] struct {
	value T
	next  *Node[T]
}

// List is the linked baseline container: one independently allocated node
// per element, singly linked from a head owned by the list. Handles are
// maximally stable but every push allocates and traversal chases pointers.
//
// List is not safe for concurrent use.
type List[T any] struct {
	head    *Node[T]
	tail    *Node[T]
	n       int
	stats   ListStats
	logger  *Logger
	metrics MetricsCollector
}

// ListStats tracks node allocation metrics.
type ListStats struct {
	NodesAllocated uint64
	TotalPushes    uint64
}

// NewList creates an empty List.
func NewList[T any](opts ...Option) *List[T] {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &List[T]{
		logger:  o.logger,
		metrics: o.metrics,
	}
}

// Len returns the number of elements.
func (l *List[T]) Len() int { return l.n }

// Stats returns a snapshot of list statistics.
func (l *List[T]) Stats() ListStats { return l.stats }

// Push appends value, allocating exactly one node.
func (l *List[T]) Push(value T) (*Node[T], error) {
	node := &Node[T]{value: value}
	if l.tail == nil {
		l.head = node
	} else {
		l.tail.next = node
	}
	l.tail = node
	l.n++
	l.stats.NodesAllocated++
	l.stats.TotalPushes++
	l.metrics.RecordBlockAlloc(1)
	l.metrics.RecordPush()
	return node, nil
}

// InsertAfter splices a new node after h. The list supports general
// insertion because no element ever moves.
func (l *List[T]) InsertAfter(h *Node[T], value T) (*Node[T], error) {
	if h == nil {
		return nil, ErrInvalidRef
	}
	node := &Node[T]{value: value, next: h.next}
	h.next = node
	if l.tail == h {
		l.tail = node
	}
	l.n++
	l.stats.NodesAllocated++
	l.metrics.RecordBlockAlloc(1)
	return node, nil
}

// At dereferences h. The pointer stays valid for the life of the node.
func (l *List[T]) At(h *Node[T]) (*T, error) {
	if h == nil {
		return nil, ErrInvalidRef
	}
	return &h.value, nil
}

// Begin returns the head node, or nil when empty.
func (l *List[T]) Begin() *Node[T] { return l.head }

// End returns the nil end sentinel.
func (l *List[T]) End() *Node[T] { return nil }

// Next returns the node after h. Advancing past the tail yields End();
// advancing from End() fails with ErrOutOfRange.
func (l *List[T]) Next(h *Node[T]) (*Node[T], error) {
	if h == nil {
		return nil, ErrOutOfRange
	}
	return h.next, nil
}

// Prev walks from the head to the node before h. It is O(n); the list is
// singly linked on purpose, backward navigation is not its strong suit.
// Prev(End()) yields the tail; stepping before the head fails with
// ErrOutOfRange; a node not reachable from the head fails with
// ErrInvalidRef.
func (l *List[T]) Prev(h *Node[T]) (*Node[T], error) {
	if h == nil {
		if l.tail == nil {
			return nil, ErrOutOfRange
		}
		return l.tail, nil
	}
	if h == l.head {
		return nil, ErrOutOfRange
	}
	for node := l.head; node != nil; node = node.next {
		if node.next == h {
			return node, nil
		}
	}
	return nil, ErrInvalidRef
}
