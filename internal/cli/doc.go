// Package cli implements resmon's non-interactive output: the one-shot
// snapshot printed by -once, the system description printed by -info, both
// as text or JSON, and the spinner shown while the one-shot warms up.
package cli
