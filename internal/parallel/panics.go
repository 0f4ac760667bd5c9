// Package parallel holds helpers for fanning work out over goroutines.
package parallel

import "sync"

// PanicCollector keeps the first panic raised by goroutines started through
// Wrap so the goroutine waiting on them can re-raise it. Without it a panic in
// a worker goroutine kills the process before any caller can recover.
//
// The zero value is ready to use. Repanic must only be called after every
// wrapped function has returned.
type PanicCollector struct {
	once  sync.Once
	value any
	set   bool
}

// Wrap adapts fn to the errgroup signature and records a panic instead of
// letting it escape the goroutine. The returned function always returns nil.
func (p *PanicCollector) Wrap(fn func()) func() error {
	return func() error {
		defer func() {
			if r := recover(); r != nil {
				p.once.Do(func() {
					p.value = r
					p.set = true
				})
			}
		}()
		fn()
		return nil
	}
}

// Recovered returns the first recorded panic value, if any.
func (p *PanicCollector) Recovered() (any, bool) {
	return p.value, p.set
}

// Repanic re-raises the first recorded panic on the calling goroutine.
func (p *PanicCollector) Repanic() {
	if p.set {
		panic(p.value)
	}
}
