//go:build !linux

package sysmon

import (
	"context"

	"github.com/shirou/gopsutil/v4/host"
)

// Uptime returns seconds since boot.
func (h *HostProbe) Uptime(ctx context.Context) (uint64, error) {
	return host.UptimeWithContext(ctx)
}
