package blockpool

// Container is the navigation contract shared by all backends. H is the
// container's handle type: an opaque, comparable locator for one element's
// storage slot. Two handles compare equal iff they name the same slot.
//
// Begin returns the handle of the first element, End the one-past-last
// sentinel; on an empty container Begin() == End(). Next and Prev fail
// with ErrOutOfRange at the respective sentinel and with ErrInvalidRef or
// ErrUseAfterFree when the handle does not name a live slot.
//
// At returns a pointer to the element's storage. For Pool and List that
// pointer is stable for the life of the element; for Array it is only
// valid until the next push.
type Container[T any, H comparable] interface {
	// Push appends value and returns the handle of its slot.
	Push(value T) (H, error)

	// InsertAfter inserts value logically after h. Containers that
	// cannot serve a non-tail position without relocating elements
	// return ErrUnsupported.
	InsertAfter(h H, value T) (H, error)

	// Begin returns the handle of the first element.
	Begin() H

	// End returns the one-past-last sentinel.
	End() H

	// Next returns the handle of the element after h.
	Next(h H) (H, error)

	// Prev returns the handle of the element before h.
	Prev(h H) (H, error)

	// At dereferences h.
	At(h H) (*T, error)

	// Len returns the number of live elements.
	Len() int
}

// Distance returns the number of advances needed to get from one handle to
// another. It fails with ErrOutOfRange if to is not reachable from from.
func Distance[T any, H comparable](c Container[T, H], from, to H) (int, error) {
	n := 0
	for h := from; h != to; n++ {
		next, err := c.Next(h)
		if err != nil {
			return 0, err
		}
		h = next
	}
	return n, nil
}

var (
	_ Container[int, Ref]        = (*Pool[int])(nil)
	_ Container[int, Index]      = (*Array[int])(nil)
	_ Container[int, *Node[int]] = (*List[int])(nil)
)
