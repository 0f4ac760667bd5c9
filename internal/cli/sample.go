package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/agbru/resmon/internal/monitor"
)

// StatsTaker is the part of the Monitor that SampleOnce drives.
type StatsTaker interface {
	Stats(ctx context.Context) (monitor.Snapshot, error)
}

// SampleOnce takes a warm-up sample, waits one interval with a spinner on
// progress, and returns the second sample. Rates and CPU usage are computed
// between consecutive samples, so the first one alone reads as idle.
//
// Parameters:
//   - ctx: Cancels the wait between the two samples.
//   - src: The measurement source.
//   - interval: The wait between the warm-up and the reported sample.
//   - progress: Where the spinner is drawn, usually stderr; nil disables it.
//
// Returns:
//   - monitor.Snapshot: The reported sample.
//   - error: A source error or the context error.
func SampleOnce(ctx context.Context, src StatsTaker, interval time.Duration, progress io.Writer) (monitor.Snapshot, error) {
	if progress != nil {
		sp := newSpinner(progress)
		sp.UpdateSuffix(fmt.Sprintf(" sampling for %s...", interval))
		sp.Start()
		defer sp.Stop()
	}

	if _, err := src.Stats(ctx); err != nil {
		return monitor.Snapshot{}, err
	}

	timer := time.NewTimer(interval)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return monitor.Snapshot{}, ctx.Err()
	case <-timer.C:
	}

	return src.Stats(ctx)
}
