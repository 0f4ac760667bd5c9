package metrics

import "testing"

func TestMemoryCollector_Snapshot(t *testing.T) {
	t.Parallel()

	snap := NewMemoryCollector().Snapshot()
	if snap.HeapAlloc == 0 {
		t.Error("HeapAlloc should be > 0")
	}
	if snap.Sys < snap.HeapAlloc {
		t.Errorf("Sys %d should not be below HeapAlloc %d", snap.Sys, snap.HeapAlloc)
	}
}
