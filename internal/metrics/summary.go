package metrics

import (
	"fmt"

	"github.com/agbru/resmon/internal/monitor"
)

const gib = 1 << 30

// CPUSummary is the headline CPU figure: mean usage across cores and mean
// frequency.
type CPUSummary struct {
	UsagePercent float64
	FreqGHz      float64
}

// SummarizeCPU averages usage and frequency over cores. No cores yields zeros.
func SummarizeCPU(cores []monitor.Core) CPUSummary {
	if len(cores) == 0 {
		return CPUSummary{}
	}
	var usage, mhz float64
	for _, c := range cores {
		usage += float64(c.Usage)
		mhz += float64(c.Freq)
	}
	n := float64(len(cores))
	return CPUSummary{UsagePercent: usage / n, FreqGHz: mhz / n / 1000}
}

// String renders e.g. "37% 3.42 GHz".
func (s CPUSummary) String() string {
	return fmt.Sprintf("%.0f%% %.2f GHz", s.UsagePercent, s.FreqGHz)
}

// MemorySummary is used and total memory with the derived percentage.
type MemorySummary struct {
	Used    uint64
	Total   uint64
	Percent float64
}

// SummarizeMemory computes the used percentage; a zero total yields 0%.
func SummarizeMemory(used, total uint64) MemorySummary {
	s := MemorySummary{Used: used, Total: total}
	if total > 0 {
		s.Percent = float64(used) / float64(total) * 100
	}
	return s
}

// String renders e.g. "5.2/15.5 GiB (34%)".
func (s MemorySummary) String() string {
	return fmt.Sprintf("%.1f/%.1f GiB (%.0f%%)", float64(s.Used)/gib, float64(s.Total)/gib, s.Percent)
}

// MeanUsage returns the mean core usage of every snapshot, oldest first. It
// is the series plotted by the CPU chart.
func MeanUsage(snaps []monitor.Snapshot) []float64 {
	out := make([]float64, len(snaps))
	for i, s := range snaps {
		out[i] = SummarizeCPU(s.CPUs).UsagePercent
	}
	return out
}

// MemoryPercent returns the memory usage percentage of every snapshot.
func MemoryPercent(snaps []monitor.Snapshot) []float64 {
	out := make([]float64, len(snaps))
	for i, s := range snaps {
		out[i] = SummarizeMemory(s.Mem, s.MemMax).Percent
	}
	return out
}
