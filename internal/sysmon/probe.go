// Package sysmon reads hardware and operating-system counters: per-core CPU
// usage and frequency, memory, cumulative process disk I/O, network counters,
// uptime, process count and, when a backend is present, GPU telemetry.
//
// Readings are best effort. A probe returns an error when a domain cannot be
// read; callers degrade that domain to zero values for the current tick.
package sysmon

//go:generate mockgen -source=probe.go -destination=mocks/mock_probe.go -package=mocks

import "context"

// Domain names used in logs and ProbeError values.
const (
	DomainCPU     = "cpu"
	DomainMemory  = "memory"
	DomainProcess = "process"
	DomainNetwork = "network"
	DomainUptime  = "uptime"
	DomainGPU     = "gpu"
)

// CoreReading is the instantaneous state of one logical core.
type CoreReading struct {
	Usage   float32 // percent, 0..100
	FreqMHz uint64
}

// MemoryReading holds used and total physical memory in bytes.
type MemoryReading struct {
	Used  uint64
	Total uint64
}

// ProcessReading aggregates the process table at one instant. ReadBytes and
// WrittenBytes are cumulative totals summed over every readable process.
type ProcessReading struct {
	ReadBytes    uint64
	WrittenBytes uint64
	Count        uint32
}

// NetCounters are the cumulative received and transmitted byte counters
// summed over all interfaces.
type NetCounters struct {
	RxBytes uint64
	TxBytes uint64
}

// GPUReading is one device's telemetry at one instant.
type GPUReading struct {
	Usage    uint32 // percent, 0..100
	MemUsed  uint64 // bytes
	MemTotal uint64 // bytes
	TempC    uint32
}

// Probe reads one host domain per method.
type Probe interface {
	CPUs(ctx context.Context) ([]CoreReading, error)
	Memory(ctx context.Context) (MemoryReading, error)
	Processes(ctx context.Context) (ProcessReading, error)
	Network(ctx context.Context) (NetCounters, error)
	Uptime(ctx context.Context) (uint64, error)
}

// GPUBackend reads a fixed set of GPUs discovered at startup.
type GPUBackend interface {
	// Devices returns the device names in index order. The slice never changes.
	Devices() []string
	// Sample returns exactly one reading and one error slot per device. A
	// non-nil errs[i] means readings[i] must be treated as zero.
	Sample(ctx context.Context) (readings []GPUReading, errs []error)
}
