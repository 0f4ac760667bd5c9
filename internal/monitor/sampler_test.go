package monitor_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	apperrors "github.com/agbru/resmon/internal/errors"
	"github.com/agbru/resmon/internal/monitor"
)

type countingSource struct {
	calls   atomic.Int64
	failAt  int64
	sawDone atomic.Bool
}

func (c *countingSource) Stats(ctx context.Context) (monitor.Snapshot, error) {
	n := c.calls.Add(1)
	if ctx.Err() != nil {
		c.sawDone.Store(true)
	}
	if c.failAt > 0 && n >= c.failAt {
		return monitor.Snapshot{}, apperrors.ErrStatePoisoned
	}
	return monitor.Snapshot{Timestamp: time.Unix(n, 0)}, nil
}

func TestSampler_TicksUntilCanceled(t *testing.T) {
	src := &countingSource{}
	s := monitor.NewSampler(src, 5*time.Millisecond, nil)
	var observed atomic.Int64
	s.Observe(func(monitor.Snapshot) { observed.Add(1) })

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
	defer cancel()
	if err := s.Run(ctx); err != nil {
		t.Fatalf("Run() error = %v, want nil on cancellation", err)
	}
	if src.calls.Load() < 2 {
		t.Errorf("expected several ticks, got %d", src.calls.Load())
	}
	if observed.Load() != src.calls.Load() {
		t.Errorf("observer saw %d snapshots, source produced %d", observed.Load(), src.calls.Load())
	}
	if src.sawDone.Load() {
		t.Error("a tick observed a canceled context")
	}
}

func TestSampler_StopsOnPoison(t *testing.T) {
	src := &countingSource{failAt: 3}
	s := monitor.NewSampler(src, time.Millisecond, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Run(ctx); !errors.Is(err, apperrors.ErrStatePoisoned) {
		t.Fatalf("Run() error = %v, want ErrStatePoisoned", err)
	}
	if src.calls.Load() != 3 {
		t.Errorf("calls = %d, want 3", src.calls.Load())
	}
}

func TestNewSampler_DefaultInterval(t *testing.T) {
	src := &countingSource{failAt: 1}
	s := monitor.NewSampler(src, 0, nil)
	if err := s.Run(context.Background()); !errors.Is(err, apperrors.ErrStatePoisoned) {
		t.Fatalf("Run() error = %v", err)
	}
}
