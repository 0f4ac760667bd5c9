// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted, colorized output to an [io.Writer].
//     Examples: [DisplaySnapshot], [DisplaySystemInfo].
//
//   - Format* functions return a formatted string without performing I/O.
//     Examples: [FormatCache], [FormatGPUNames].
//
//   - Write* functions write machine-readable data.
//     Examples: [WriteJSON].

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/agbru/resmon/internal/format"
	"github.com/agbru/resmon/internal/metrics"
	"github.com/agbru/resmon/internal/monitor"
	"github.com/agbru/resmon/internal/ui"
)

const labelWidth = 10

func label(out io.Writer, name string) {
	fmt.Fprintf(out, "%s%-*s%s", ui.Heading(), labelWidth, name, ui.Reset())
}

func loadColored(percent float64, text string) string {
	return ui.ForLoad(percent) + text + ui.Reset()
}

// DisplaySnapshot prints one snapshot in human-readable form. info supplies
// the GPU names.
func DisplaySnapshot(out io.Writer, snap monitor.Snapshot, info monitor.SystemInfo) {
	cpu := metrics.SummarizeCPU(snap.CPUs)
	label(out, "CPU")
	fmt.Fprintf(out, "%s (%d cores)\n", loadColored(cpu.UsagePercent, cpu.String()), len(snap.CPUs))
	for i, c := range snap.CPUs {
		fmt.Fprintf(out, "%s  core %-3d%s %s %5d MHz\n", ui.Muted(), i, ui.Reset(),
			loadColored(float64(c.Usage), fmt.Sprintf("%5.1f%%", c.Usage)), c.Freq)
	}

	mem := metrics.SummarizeMemory(snap.Mem, snap.MemMax)
	label(out, "Memory")
	fmt.Fprintln(out, loadColored(mem.Percent, mem.String()))

	label(out, "Disk")
	fmt.Fprintf(out, "read %s  written %s\n",
		format.FormatBytes(snap.Disk.ReadBytes), format.FormatBytes(snap.Disk.WrittenBytes))

	label(out, "Network")
	fmt.Fprintf(out, "down %s  up %s\n",
		format.FormatRate(snap.Network.Down), format.FormatRate(snap.Network.Up))

	for i, g := range snap.GPUs {
		name := fmt.Sprintf("GPU %d", i)
		if i < len(info.GPUNames) {
			name = info.GPUNames[i]
		}
		label(out, fmt.Sprintf("GPU %d", i))
		gm := metrics.SummarizeMemory(g.Mem, g.MaxMem)
		fmt.Fprintf(out, "%s  %s  %s  %d°C\n", name,
			loadColored(float64(g.Usage), fmt.Sprintf("%d%%", g.Usage)), gm, g.Temp)
	}

	label(out, "Processes")
	fmt.Fprintln(out, snap.Processes)
	label(out, "Uptime")
	fmt.Fprintln(out, format.FormatDuration(snap.UpTime))
}

// DisplaySystemInfo prints the static host description.
func DisplaySystemInfo(out io.Writer, info monitor.SystemInfo) {
	brand := info.CPUBrand
	if brand == "" {
		brand = "unknown"
	}
	label(out, "CPU")
	fmt.Fprintf(out, "%s%s%s\n", ui.Bold(), brand, ui.Reset())
	label(out, "Threads")
	fmt.Fprintln(out, info.CPUCoreCount)
	label(out, "Cache")
	fmt.Fprintf(out, "L1 %s  L2 %s  L3 %s\n",
		FormatCache(info.CacheL1), FormatCache(info.CacheL2), FormatCache(info.CacheL3))
	label(out, "Memory")
	fmt.Fprintln(out, format.FormatBytes(info.MaxMem))
	label(out, "GPUs")
	fmt.Fprintln(out, FormatGPUNames(info.GPUNames))
}

// FormatCache renders a cache size given in KiB, or "unknown".
func FormatCache(kib *uint32) string {
	if kib == nil {
		return "unknown"
	}
	return format.FormatBytes(uint64(*kib) * 1024)
}

// FormatGPUNames renders the device list, or "none".
func FormatGPUNames(names []string) string {
	if len(names) == 0 {
		return "none"
	}
	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = fmt.Sprintf("%d: %s", i, n)
	}
	return strings.Join(parts, ", ")
}

// WriteJSON writes v as indented JSON followed by a newline.
func WriteJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}
