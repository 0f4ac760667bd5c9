//go:build !linux

package sysmon

import "context"

func (h *HostProbe) coreFrequencies(ctx context.Context, n int) []uint64 {
	return infoFrequencies(ctx, n)
}
