package monitor

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	apperrors "github.com/agbru/resmon/internal/errors"
	"github.com/agbru/resmon/internal/logging"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/agbru/resmon/internal/monitor"

// ErrNoSamples is returned by Latest before the first tick.
var ErrNoSamples = errors.New("no samples recorded yet")

// Monitor is the guarded measurement state: a Collector and a History behind
// one lock, plus the SystemInfo read at startup.
//
// Stats holds the exclusive lock for the whole sample-and-append, so
// concurrent callers are serialized and History stays in timestamp order.
// Readers take the shared lock. If a panic escapes the exclusive section the
// Monitor is poisoned: the panic is re-raised and every later call returns
// apperrors.ErrStatePoisoned.
type Monitor struct {
	mu        sync.RWMutex
	collector *Collector
	history   *History[Snapshot]
	last      time.Time

	info     SystemInfo
	poisoned atomic.Bool
	tracer   trace.Tracer
	logger   logging.Logger
}

// Option configures a Monitor.
type Option func(*Monitor)

// WithLogger sets the monitor's logger.
func WithLogger(l logging.Logger) Option {
	return func(m *Monitor) { m.logger = l }
}

// WithTracer overrides the tracer taken from the global otel provider.
func WithTracer(t trace.Tracer) Option {
	return func(m *Monitor) { m.tracer = t }
}

// New creates a Monitor. info must be fully populated; it is never modified
// afterwards. retention is the History capacity.
func New(collector *Collector, info SystemInfo, retention int, opts ...Option) *Monitor {
	m := &Monitor{
		collector: collector,
		history:   NewHistory[Snapshot](retention),
		info:      info,
		tracer:    otel.Tracer(tracerName),
		logger:    logging.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Stats samples every domain, appends the Snapshot to the History and returns
// it. Timestamps are forced to be strictly increasing across calls. The probe
// reads always complete: cancelling ctx does not cut a tick short.
func (m *Monitor) Stats(ctx context.Context) (snap Snapshot, err error) {
	ctx, span := m.tracer.Start(ctx, "monitor.Stats")
	defer span.End()

	if m.poisoned.Load() {
		span.SetStatus(codes.Error, apperrors.ErrStatePoisoned.Error())
		return Snapshot{}, apperrors.ErrStatePoisoned
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.poisoned.Load() {
		span.SetStatus(codes.Error, apperrors.ErrStatePoisoned.Error())
		return Snapshot{}, apperrors.ErrStatePoisoned
	}
	defer func() {
		if r := recover(); r != nil {
			m.poisoned.Store(true)
			m.logger.Error("sampling panicked, monitor poisoned", fmt.Errorf("%v", r))
			span.SetStatus(codes.Error, "panic")
			panic(r)
		}
	}()

	// A caller going away must not turn the tick into a degraded sample.
	snap = m.collector.SampleAll(context.WithoutCancel(ctx))
	if !snap.Timestamp.After(m.last) {
		snap.Timestamp = m.last.Add(time.Nanosecond)
	}
	m.last = snap.Timestamp
	m.history.Push(snap)

	span.SetAttributes(
		attribute.Int("resmon.history.len", m.history.Len()),
		attribute.Int("resmon.cpus", len(snap.CPUs)),
		attribute.Int("resmon.gpus", len(snap.GPUs)),
	)
	return snap, nil
}

// Info returns the static host description.
func (m *Monitor) Info() SystemInfo {
	return m.info
}

// Window returns at most points Snapshots spanning the last lookback samples.
// See the package-level Window for the selection rule.
func (m *Monitor) Window(lookback, points int) ([]Snapshot, error) {
	if m.poisoned.Load() {
		return nil, apperrors.ErrStatePoisoned
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return Window(m.history, lookback, points), nil
}

// WindowedStats takes a fresh sample and then returns the window ending at it.
// This is the dashboard's per-tick poll, so even a brand new Monitor answers
// with one sample.
func (m *Monitor) WindowedStats(ctx context.Context, lookback, points int) ([]Snapshot, error) {
	if _, err := m.Stats(ctx); err != nil {
		return nil, err
	}
	return m.Window(lookback, points)
}

// Latest returns the most recent Snapshot without sampling.
func (m *Monitor) Latest() (Snapshot, error) {
	if m.poisoned.Load() {
		return Snapshot{}, apperrors.ErrStatePoisoned
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	snap, ok := m.history.Last()
	if !ok {
		return Snapshot{}, ErrNoSamples
	}
	return snap, nil
}

// Len returns the number of Snapshots in the History, or zero once the
// Monitor is poisoned.
func (m *Monitor) Len() int {
	if m.poisoned.Load() {
		return 0
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.history.Len()
}

// Retention returns the History capacity.
func (m *Monitor) Retention() int {
	return m.history.Cap()
}

// Poisoned reports whether an earlier panic poisoned the Monitor.
func (m *Monitor) Poisoned() bool {
	return m.poisoned.Load()
}
