package sysmon

import (
	"context"
	"errors"
	"math"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/net"
	"github.com/shirou/gopsutil/v4/process"
)

var errNoCounters = errors.New("no counters reported")

// HostProbe implements Probe for the local machine using gopsutil.
type HostProbe struct {
	// sysfsRoot is where per-core cpufreq files are read from on Linux.
	sysfsRoot string
}

// NewHostProbe returns a probe for the local machine.
func NewHostProbe() *HostProbe {
	return &HostProbe{sysfsRoot: "/sys"}
}

// CPUs returns usage since the previous call and the current frequency for
// every logical core. The first call after process start measures against
// the counters captured when gopsutil was initialized.
func (h *HostProbe) CPUs(ctx context.Context) ([]CoreReading, error) {
	pcts, err := cpu.PercentWithContext(ctx, 0, true)
	if err != nil {
		return nil, err
	}
	if len(pcts) == 0 {
		return nil, errNoCounters
	}
	freqs := h.coreFrequencies(ctx, len(pcts))
	cores := make([]CoreReading, len(pcts))
	for i, p := range pcts {
		cores[i] = CoreReading{Usage: float32(clampPercent(p)), FreqMHz: freqs[i]}
	}
	return cores, nil
}

// Memory returns used and total physical memory.
func (h *HostProbe) Memory(ctx context.Context) (MemoryReading, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return MemoryReading{}, err
	}
	return MemoryReading{Used: vm.Used, Total: vm.Total}, nil
}

// Processes walks the process table. Processes whose I/O counters cannot be
// read (exited, or owned by another user) still count but contribute no bytes.
func (h *HostProbe) Processes(ctx context.Context) (ProcessReading, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return ProcessReading{}, err
	}
	r := ProcessReading{Count: uint32(len(procs))}
	for _, p := range procs {
		if ctx.Err() != nil {
			return r, ctx.Err()
		}
		io, err := p.IOCountersWithContext(ctx)
		if err != nil || io == nil {
			continue
		}
		r.ReadBytes += io.ReadBytes
		r.WrittenBytes += io.WriteBytes
	}
	return r, nil
}

// Network returns cumulative byte counters summed over all interfaces.
func (h *HostProbe) Network(ctx context.Context) (NetCounters, error) {
	stats, err := net.IOCountersWithContext(ctx, false)
	if err != nil {
		return NetCounters{}, err
	}
	if len(stats) == 0 {
		return NetCounters{}, errNoCounters
	}
	return NetCounters{RxBytes: stats[0].BytesRecv, TxBytes: stats[0].BytesSent}, nil
}

// infoFrequencies falls back to the per-CPU MHz reported by cpu.Info. Some
// platforms report a single entry per package; that value is then shared by
// every core.
func infoFrequencies(ctx context.Context, n int) []uint64 {
	freqs := make([]uint64, n)
	infos, err := cpu.InfoWithContext(ctx)
	if err != nil || len(infos) == 0 {
		return freqs
	}
	for i := range freqs {
		info := infos[0]
		if i < len(infos) {
			info = infos[i]
		}
		if info.Mhz > 0 {
			freqs[i] = uint64(info.Mhz)
		}
	}
	return freqs
}

func clampPercent(p float64) float64 {
	switch {
	case p < 0 || math.IsNaN(p):
		return 0
	case p > 100:
		return 100
	default:
		return p
	}
}
