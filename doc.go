// Package blockpool provides pointer-stable growable containers for Go.
//
// The core type is Pool, a block-based object pool: storage grows by
// appending fixed-capacity blocks, so an element never changes location
// once pushed. This matters for workloads (e.g. tape-based adjoint
// simulation) that hand out long-lived references into the container and
// cannot tolerate invalidation by reallocation.
//
// Two baseline containers exist to make the pool's trade-offs measurable:
// Array (one contiguous buffer, cheapest iteration, references invalidated
// by growth) and List (one allocation per element, stable nodes, highest
// per-element overhead).
//
// # Quick Start
//
//	pool, _ := blockpool.New[float64](1024)
//	ref, _ := pool.Push(3.14)
//	// ... any number of further pushes; ref stays valid
//	v, _ := pool.At(ref)
//	fmt.Println(*v)
//
// All three containers implement the same navigation contract:
//
//	for v := range blockpool.Values[float64](pool) {
//	    fmt.Println(v)
//	}
//
// # Safety
//
// Handles are generation-checked: dereferencing a handle whose slot was
// removed or rewound fails with ErrUseAfterFree instead of reading stale
// memory. Containers are single-threaded; they perform no internal locking.
//
// For an off-heap float64 tape with raw stable pointers, see the tape
// subpackage.
package blockpool
