// Package format holds the human-readable magnitude formatters shared by the
// dashboard, the one-shot printer and the HTTP text endpoints.
package format
