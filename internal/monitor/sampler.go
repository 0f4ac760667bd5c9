package monitor

import (
	"context"
	"time"

	"github.com/agbru/resmon/internal/logging"
)

// DefaultInterval is the sampling cadence.
const DefaultInterval = time.Second

// StatsTaker is anything that samples on demand. *Monitor implements it.
type StatsTaker interface {
	Stats(ctx context.Context) (Snapshot, error)
}

// Observer receives every Snapshot produced by a Sampler.
type Observer func(Snapshot)

// Sampler drives a StatsTaker on a fixed interval. It is the recurring timer
// of headless modes; the dashboard polls on its own tick instead.
type Sampler struct {
	source    StatsTaker
	interval  time.Duration
	observers []Observer
	logger    logging.Logger
}

// NewSampler creates a sampler ticking every interval (DefaultInterval if
// non-positive).
func NewSampler(source StatsTaker, interval time.Duration, logger logging.Logger) *Sampler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Sampler{source: source, interval: interval, logger: logger}
}

// Observe registers fn to be called after each successful tick. It must be
// called before Run.
func (s *Sampler) Observe(fn Observer) {
	s.observers = append(s.observers, fn)
}

// Run samples once immediately and then on every tick until ctx is done, in
// which case it returns nil. A tick in progress is never interrupted: the
// sample runs on a context detached from ctx's cancellation. Run returns the
// first sampling error, which only happens once the source is poisoned.
func (s *Sampler) Run(ctx context.Context) error {
	s.logger.Info("sampler started", logging.String("interval", s.interval.String()))
	defer s.logger.Info("sampler stopped")

	if err := s.tick(ctx); err != nil {
		return err
	}
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := s.tick(ctx); err != nil {
				return err
			}
		}
	}
}

func (s *Sampler) tick(ctx context.Context) error {
	snap, err := s.source.Stats(context.WithoutCancel(ctx))
	if err != nil {
		s.logger.Error("sampling failed", err)
		return err
	}
	for _, fn := range s.observers {
		fn(snap)
	}
	return nil
}
