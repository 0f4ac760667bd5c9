package tui

import (
	"time"

	"github.com/agbru/resmon/internal/metrics"
	"github.com/agbru/resmon/internal/monitor"
)

// TickMsg fires when the next poll is due.
type TickMsg time.Time

// StatsMsg carries the result of one WindowedStats poll.
type StatsMsg struct {
	Snapshots []monitor.Snapshot
	// Latency is how long the poll took, sampling included.
	Latency time.Duration
	// Self is resmon's own memory right after the poll.
	Self metrics.MemorySnapshot
	Err  error
}

// ContextCancelledMsg reports that the parent context ended.
type ContextCancelledMsg struct {
	Err error
}
