package sysmon

import (
	"context"
	"strings"

	"github.com/klauspost/cpuid/v2"
	"github.com/shirou/gopsutil/v4/cpu"
)

// SystemInfo is the static description of the host, read once at startup.
// Cache sizes are in KiB and are nil when the platform does not report them.
type SystemInfo struct {
	CPUBrand     string   `json:"cpu_brand"`
	CPUCoreCount uint32   `json:"cpu_core_count"`
	CacheL1      *uint32  `json:"cache_l1"`
	CacheL2      *uint32  `json:"cache_l2"`
	CacheL3      *uint32  `json:"cache_l3"`
	MaxMem       uint64   `json:"max_mem"`
	GPUCount     uint32   `json:"gpu_count"`
	GPUNames     []string `json:"gpu_names"`
}

// ReadSystemInfo gathers the static host description. Each field falls back
// independently: cpuid first, then gopsutil, then whatever the probe reports.
// gpu may be nil.
func ReadSystemInfo(ctx context.Context, probe Probe, gpu GPUBackend) SystemInfo {
	info := SystemInfo{
		CPUBrand: strings.TrimSpace(cpuid.CPU.BrandName),
		CacheL1:  cacheKiB(cpuid.CPU.Cache.L1D),
		CacheL2:  cacheKiB(cpuid.CPU.Cache.L2),
		CacheL3:  cacheKiB(cpuid.CPU.Cache.L3),
		GPUNames: []string{},
	}
	if cpuid.CPU.LogicalCores > 0 {
		info.CPUCoreCount = uint32(cpuid.CPU.LogicalCores)
	}

	if info.CPUBrand == "" {
		if infos, err := cpu.InfoWithContext(ctx); err == nil && len(infos) > 0 {
			info.CPUBrand = strings.TrimSpace(infos[0].ModelName)
		}
	}
	if info.CPUCoreCount == 0 {
		if n, err := cpu.CountsWithContext(ctx, true); err == nil && n > 0 {
			info.CPUCoreCount = uint32(n)
		}
	}
	if info.CPUCoreCount == 0 {
		if cores, err := probe.CPUs(ctx); err == nil {
			info.CPUCoreCount = uint32(len(cores))
		}
	}

	if m, err := probe.Memory(ctx); err == nil {
		info.MaxMem = m.Total
	}

	if gpu != nil {
		names := gpu.Devices()
		info.GPUCount = uint32(len(names))
		info.GPUNames = append(info.GPUNames, names...)
	}
	return info
}

func cacheKiB(bytes int) *uint32 {
	if bytes <= 0 {
		return nil
	}
	kib := uint32(bytes / 1024)
	return &kib
}
