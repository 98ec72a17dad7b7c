package blockpool

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRef is returned when a ref does not name a live slot.
	ErrInvalidRef = errors.New("blockpool: ref does not name a live slot")
	// ErrOutOfRange is returned when navigating past a sentinel.
	ErrOutOfRange = errors.New("blockpool: out of range")
	// ErrUseAfterFree is returned when a ref outlives its slot.
	ErrUseAfterFree = errors.New("blockpool: use after free")
	// ErrUnsupported is returned for general insertion positions a
	// container cannot serve without relocating elements.
	ErrUnsupported = errors.New("blockpool: operation not supported by this container")
	// ErrMaxBlocksExceeded is returned when the pool exceeds the maximum
	// addressable number of slots.
	ErrMaxBlocksExceeded = errors.New("blockpool: max blocks exceeded")
)

// ErrInvalidCapacity indicates an invalid block capacity.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrInvalidCapacity struct {
	Capacity int
	cause    error
}

func (e *ErrInvalidCapacity) Error() string {
	return fmt.Sprintf("invalid block capacity: %d", e.Capacity)
}

func (e *ErrInvalidCapacity) Unwrap() error { return e.cause }
