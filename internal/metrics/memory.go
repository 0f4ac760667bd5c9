package metrics

import "runtime"

// MemorySnapshot is resmon's own runtime memory at one instant. It is shown
// in the dashboard footer so the cost of a full-day history stays visible.
type MemorySnapshot struct {
	HeapAlloc   uint64 // bytes in use by the process
	Sys         uint64 // total bytes obtained from the OS
	NumGC       uint32
	HeapObjects uint64
}

// MemoryCollector reads runtime memory statistics.
type MemoryCollector struct{}

// NewMemoryCollector creates a new memory collector.
func NewMemoryCollector() *MemoryCollector {
	return &MemoryCollector{}
}

// Snapshot reads current memory statistics.
func (mc *MemoryCollector) Snapshot() MemorySnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return MemorySnapshot{
		HeapAlloc:   m.HeapAlloc,
		Sys:         m.Sys,
		NumGC:       m.NumGC,
		HeapObjects: m.HeapObjects,
	}
}
