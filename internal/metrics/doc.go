// Package metrics derives display figures from snapshots (CPU and memory
// summaries, chart series) and reports resmon's own runtime memory.
package metrics
