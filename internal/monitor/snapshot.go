package monitor

import (
	"time"

	"github.com/agbru/resmon/internal/sysmon"
)

// SystemInfo is the static host description served by Monitor.Info.
type SystemInfo = sysmon.SystemInfo

// Snapshot is the complete measurement produced by one tick. Snapshots are
// shared between the history and its readers and must not be modified.
type Snapshot struct {
	Timestamp time.Time `json:"timestamp"`
	CPUs      []Core    `json:"cpus"`
	Mem       uint64    `json:"mem"`
	MemMax    uint64    `json:"mem_max"`
	Disk      DiskIO    `json:"disk"`
	GPUs      []GPU     `json:"gpus"`
	UpTime    uint64    `json:"up_time"` // seconds
	Processes uint32    `json:"processes"`
	Network   Network   `json:"network"`
}

// Core is one logical core: usage in percent and frequency in MHz.
type Core struct {
	Usage float32 `json:"usage"`
	Freq  uint64  `json:"freq"`
}

// GPU is one device: usage in percent, memory in bytes, temperature in °C.
type GPU struct {
	Usage  uint32 `json:"usage"`
	Mem    uint64 `json:"mem"`
	MaxMem uint64 `json:"max_mem"`
	Temp   uint32 `json:"temp"`
}

// DiskIO holds cumulative bytes read and written by all visible processes.
// The JSON name of WrittenBytes keeps the historical wire spelling.
type DiskIO struct {
	ReadBytes    uint64 `json:"read_bytes"`
	WrittenBytes uint64 `json:"writen_bytes"`
}

// Network is throughput in bytes per second.
type Network struct {
	Down uint64 `json:"down"`
	Up   uint64 `json:"up"`
}
