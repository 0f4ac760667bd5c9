// Package monitor is the sampling and aggregation engine of resmon.
//
// A Collector turns one round of probe readings into an immutable Snapshot,
// deriving network throughput from cumulative counters. A Monitor owns the
// Collector together with a bounded History and serializes every
// sample-and-append behind a single lock. Window decimates the History to a
// caller-chosen point budget by stride selection, so a day of one-second
// samples can be drawn on an 80-column chart.
package monitor
