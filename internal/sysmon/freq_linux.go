//go:build linux

package sysmon

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// coreFrequencies reads the current scaling frequency of each core from
// sysfs. cpu.Info reports the maximum frequency on Linux, which does not move
// with load, so it is only used for cores without a cpufreq directory.
func (h *HostProbe) coreFrequencies(ctx context.Context, n int) []uint64 {
	freqs := make([]uint64, n)
	missing := false
	for i := range freqs {
		path := filepath.Join(h.sysfsRoot, "devices", "system", "cpu", fmt.Sprintf("cpu%d", i), "cpufreq", "scaling_cur_freq")
		raw, err := os.ReadFile(path)
		if err != nil {
			missing = true
			continue
		}
		khz, err := strconv.ParseUint(strings.TrimSpace(string(raw)), 10, 64)
		if err != nil {
			missing = true
			continue
		}
		freqs[i] = khz / 1000
	}
	if missing {
		fallback := infoFrequencies(ctx, n)
		for i := range freqs {
			if freqs[i] == 0 {
				freqs[i] = fallback[i]
			}
		}
	}
	return freqs
}
