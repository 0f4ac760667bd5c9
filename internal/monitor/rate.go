package monitor

import (
	"time"

	"github.com/agbru/resmon/internal/sysmon"
)

// RateState converts cumulative network counters into per-second rates.
// The zero value is ready to use; its first Update yields a zero rate.
type RateState struct {
	prev   sysmon.NetCounters
	prevAt time.Time
	rate   Network
	primed bool
}

// Update records the counters observed at now and returns the rate since the
// previous update. When no time has elapsed the previous rate is returned and
// the baseline is kept, so bytes counted in between are attributed to the next
// tick. A counter that went backwards (interface reset, wrap) yields zero for
// that direction and becomes the new baseline.
func (r *RateState) Update(cur sysmon.NetCounters, now time.Time) Network {
	if !r.primed {
		r.prev, r.prevAt, r.primed = cur, now, true
		return r.rate
	}
	elapsed := now.Sub(r.prevAt).Seconds()
	if elapsed <= 0 {
		return r.rate
	}
	r.rate = Network{
		Down: perSecond(r.prev.RxBytes, cur.RxBytes, elapsed),
		Up:   perSecond(r.prev.TxBytes, cur.TxBytes, elapsed),
	}
	r.prev, r.prevAt = cur, now
	return r.rate
}

// Rate returns the most recently computed rate.
func (r *RateState) Rate() Network { return r.rate }

func perSecond(prev, cur uint64, elapsed float64) uint64 {
	if cur < prev {
		return 0
	}
	return uint64(float64(cur-prev) / elapsed)
}
