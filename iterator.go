package blockpool

import "iter"

// Values returns a restartable, lazy sequence of the container's elements
// in push order. Iteration stops silently if the container is mutated in a
// way that invalidates the cursor.
func Values[T any, H comparable](c Container[T, H]) iter.Seq[T] {
	return func(yield func(T) bool) {
		end := c.End()
		for h := c.Begin(); h != end; {
			v, err := c.At(h)
			if err != nil {
				return
			}
			if !yield(*v) {
				return
			}
			next, err := c.Next(h)
			if err != nil {
				return
			}
			h = next
		}
	}
}

// All returns a restartable, lazy sequence of (handle, element) pairs in
// push order.
func All[T any, H comparable](c Container[T, H]) iter.Seq2[H, T] {
	return func(yield func(H, T) bool) {
		end := c.End()
		for h := c.Begin(); h != end; {
			v, err := c.At(h)
			if err != nil {
				return
			}
			if !yield(h, *v) {
				return
			}
			next, err := c.Next(h)
			if err != nil {
				return
			}
			h = next
		}
	}
}
