//go:build linux

package sysmon

import (
	"context"

	"github.com/shirou/gopsutil/v4/host"
	"golang.org/x/sys/unix"
)

// Uptime returns seconds since boot via sysinfo(2), falling back to gopsutil.
func (h *HostProbe) Uptime(ctx context.Context) (uint64, error) {
	var info unix.Sysinfo_t
	if err := unix.Sysinfo(&info); err == nil && info.Uptime >= 0 {
		return uint64(info.Uptime), nil
	}
	return host.UptimeWithContext(ctx)
}
