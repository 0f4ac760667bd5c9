// Package ui holds resmon's color themes. A Theme carries the ANSI escapes
// for the one-shot printer and the lipgloss palette for the dashboard, and
// LoadOf gives both the same utilization bands.
package ui
