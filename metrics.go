package blockpool

import (
	"sync/atomic"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordPush is called after each successful push.
	RecordPush()

	// RecordBlockAlloc is called when a container allocates a new block
	// or node. capacity is the number of element slots allocated.
	RecordBlockAlloc(capacity int)

	// RecordGrow is called when a container relocates its storage.
	// moved is the number of elements copied into the new buffer.
	RecordGrow(moved int)

	// RecordRemove is called after each successful removal.
	RecordRemove()
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordPush()          {}
func (NoopMetricsCollector) RecordBlockAlloc(int) {}
func (NoopMetricsCollector) RecordGrow(int)       {}
func (NoopMetricsCollector) RecordRemove()        {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	PushCount   atomic.Int64
	AllocCount  atomic.Int64
	AllocSlots  atomic.Int64
	GrowCount   atomic.Int64
	MovedElems  atomic.Int64
	RemoveCount atomic.Int64
}

// RecordPush implements MetricsCollector.
func (b *BasicMetricsCollector) RecordPush() {
	b.PushCount.Add(1)
}

// RecordBlockAlloc implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBlockAlloc(capacity int) {
	b.AllocCount.Add(1)
	b.AllocSlots.Add(int64(capacity))
}

// RecordGrow implements MetricsCollector.
func (b *BasicMetricsCollector) RecordGrow(moved int) {
	b.GrowCount.Add(1)
	b.MovedElems.Add(int64(moved))
}

// RecordRemove implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRemove() {
	b.RemoveCount.Add(1)
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		PushCount:   b.PushCount.Load(),
		AllocCount:  b.AllocCount.Load(),
		AllocSlots:  b.AllocSlots.Load(),
		GrowCount:   b.GrowCount.Load(),
		MovedElems:  b.MovedElems.Load(),
		RemoveCount: b.RemoveCount.Load(),
	}
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	PushCount   int64
	AllocCount  int64
	AllocSlots  int64
	GrowCount   int64
	MovedElems  int64
	RemoveCount int64
}
