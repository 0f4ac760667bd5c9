package monitor

import (
	"context"
	"time"

	apperrors "github.com/agbru/resmon/internal/errors"
	"github.com/agbru/resmon/internal/logging"
	"github.com/agbru/resmon/internal/parallel"
	"github.com/agbru/resmon/internal/sysmon"
	"golang.org/x/sync/errgroup"
)

// Collector runs every probe once per tick and assembles a Snapshot. It keeps
// the network RateState between ticks and is therefore not safe for
// concurrent use; Monitor serializes calls to SampleAll.
type Collector struct {
	probe  sysmon.Probe
	gpu    sysmon.GPUBackend
	cores  int
	rates  RateState
	now    func() time.Time
	logger logging.Logger
}

// CollectorOption configures a Collector.
type CollectorOption func(*Collector)

// WithGPU attaches a GPU backend. Without one, Snapshots carry no GPUs.
func WithGPU(gpu sysmon.GPUBackend) CollectorOption {
	return func(c *Collector) { c.gpu = gpu }
}

// WithCoreCount fixes the length of every Snapshot's CPU list. Readings with
// more cores are truncated and readings with fewer are padded with zeros.
// When unset, the first successful CPU reading fixes the length.
func WithCoreCount(n int) CollectorOption {
	return func(c *Collector) { c.cores = n }
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) CollectorOption {
	return func(c *Collector) { c.now = now }
}

// WithCollectorLogger sets the logger receiving degraded-probe reports.
func WithCollectorLogger(l logging.Logger) CollectorOption {
	return func(c *Collector) { c.logger = l }
}

// NewCollector creates a collector reading from probe.
func NewCollector(probe sysmon.Probe, opts ...CollectorOption) *Collector {
	c := &Collector{
		probe:  probe,
		now:    time.Now,
		logger: logging.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SampleAll reads every domain and returns the tick's Snapshot. It never
// fails: a domain that cannot be read contributes zero values, and a GPU that
// cannot be read contributes a zero entry at its index. The independent host
// domains are read concurrently.
func (c *Collector) SampleAll(ctx context.Context) Snapshot {
	var (
		cores     []sysmon.CoreReading
		memory    sysmon.MemoryReading
		procs     sysmon.ProcessReading
		counters  sysmon.NetCounters
		uptime    uint64
		gpus      []GPU
		netFailed bool
	)

	// A probe panic must reach the Monitor on this goroutine.
	var pc parallel.PanicCollector
	g, gctx := errgroup.WithContext(ctx)
	g.Go(pc.Wrap(func() {
		var err error
		if cores, err = c.probe.CPUs(gctx); err != nil {
			c.degraded(sysmon.DomainCPU, err)
			cores = nil
		}
	}))
	g.Go(pc.Wrap(func() {
		var err error
		if memory, err = c.probe.Memory(gctx); err != nil {
			c.degraded(sysmon.DomainMemory, err)
			memory = sysmon.MemoryReading{}
		}
	}))
	g.Go(pc.Wrap(func() {
		var err error
		if procs, err = c.probe.Processes(gctx); err != nil {
			c.degraded(sysmon.DomainProcess, err)
			procs = sysmon.ProcessReading{}
		}
	}))
	g.Go(pc.Wrap(func() {
		var err error
		if counters, err = c.probe.Network(gctx); err != nil {
			c.degraded(sysmon.DomainNetwork, err)
			netFailed = true
		}
	}))
	g.Go(pc.Wrap(func() {
		var err error
		if uptime, err = c.probe.Uptime(gctx); err != nil {
			c.degraded(sysmon.DomainUptime, err)
			uptime = 0
		}
	}))
	if c.gpu != nil {
		g.Go(pc.Wrap(func() {
			gpus = c.sampleGPUs(gctx)
		}))
	}
	_ = g.Wait()
	pc.Repanic()

	now := c.now()
	snap := Snapshot{
		Timestamp: now,
		CPUs:      c.normalizeCores(cores),
		Mem:       memory.Used,
		MemMax:    memory.Total,
		Disk:      DiskIO{ReadBytes: procs.ReadBytes, WrittenBytes: procs.WrittenBytes},
		GPUs:      gpus,
		UpTime:    uptime,
		Processes: procs.Count,
	}
	if !netFailed {
		snap.Network = c.rates.Update(counters, now)
	}
	if snap.GPUs == nil {
		snap.GPUs = []GPU{}
	}
	return snap
}

func (c *Collector) sampleGPUs(ctx context.Context) []GPU {
	devices := len(c.gpu.Devices())
	readings, errs := c.gpu.Sample(ctx)
	out := make([]GPU, devices)
	for i := range out {
		if i < len(errs) && errs[i] != nil {
			c.degraded(sysmon.DomainGPU, errs[i], logging.Int("device", i))
			continue
		}
		if i >= len(readings) {
			continue
		}
		r := readings[i]
		out[i] = GPU{Usage: r.Usage, Mem: r.MemUsed, MaxMem: r.MemTotal, Temp: r.TempC}
	}
	return out
}

func (c *Collector) normalizeCores(readings []sysmon.CoreReading) []Core {
	if c.cores == 0 && len(readings) > 0 {
		c.cores = len(readings)
	}
	if c.cores != 0 && len(readings) != 0 && len(readings) != c.cores {
		c.logger.Debug("core count changed; normalizing",
			logging.Int("reported", len(readings)), logging.Int("expected", c.cores))
	}
	out := make([]Core, c.cores)
	for i := range min(len(readings), c.cores) {
		out[i] = Core{Usage: readings[i].Usage, Freq: readings[i].FreqMHz}
	}
	return out
}

func (c *Collector) degraded(domain string, err error, fields ...logging.Field) {
	c.logger.Debug("probe degraded to zero",
		append([]logging.Field{logging.String("domain", domain), logging.Err(apperrors.NewProbeError(domain, err))}, fields...)...)
}
