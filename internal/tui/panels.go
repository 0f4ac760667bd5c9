package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/resmon/internal/format"
	"github.com/agbru/resmon/internal/metrics"
	"github.com/agbru/resmon/internal/monitor"
)

// panelBox draws a bordered panel whose outer size is width x height. Lines
// beyond the available height are dropped.
func panelBox(title string, lines []string, width, height int) string {
	innerW, innerH := innerSize(width, height)
	if len(lines) > innerH-1 {
		lines = lines[:max(innerH-1, 0)]
	}
	body := panelTitleStyle.Render(title)
	if len(lines) > 0 {
		body += "\n" + strings.Join(lines, "\n")
	}
	return panelStyle.Width(innerW).Height(innerH).Render(body)
}

func innerSize(width, height int) (int, int) {
	return max(width-2, 1), max(height-2, 1)
}

// chartLines renders a percentage area chart, or a single placeholder line
// when there is nothing to plot yet.
func chartLines(values []float64, width, rows int, style lipgloss.Style) []string {
	if rows <= 0 {
		return nil
	}
	chart := AreaChart(values, 100, width, rows)
	if chart == nil {
		return []string{labelStyle.Render("waiting for samples")}
	}
	for i := range chart {
		chart[i] = style.Render(chart[i])
	}
	return chart
}

// tail keeps the last n values.
func tail(values []float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if len(values) > n {
		return values[len(values)-n:]
	}
	return values
}

func latest(snaps []monitor.Snapshot) (monitor.Snapshot, bool) {
	if len(snaps) == 0 {
		return monitor.Snapshot{}, false
	}
	return snaps[len(snaps)-1], true
}

// coreSeries extracts the usage of one core across the window. Snapshots
// missing that core contribute zero.
func coreSeries(snaps []monitor.Snapshot, core int) []float64 {
	out := make([]float64, len(snaps))
	for i, s := range snaps {
		if core < len(s.CPUs) {
			out[i] = float64(s.CPUs[core].Usage)
		}
	}
	return out
}

// renderCPUPanel shows the mean usage chart with one sparkline per core
// underneath, as many cores as fit in half the panel.
func renderCPUPanel(snaps []monitor.Snapshot, width, height int) string {
	innerW, innerH := innerSize(width, height)
	last, _ := latest(snaps)
	sum := metrics.SummarizeCPU(last.CPUs)
	title := "CPU " + loadStyle(sum.UsagePercent).Render(sum.String())

	bodyRows := innerH - 1
	coreRows := min(len(last.CPUs), bodyRows/2)
	lines := chartLines(metrics.MeanUsage(snaps), innerW, bodyRows-coreRows, cpuChartStyle)

	sparkWidth := innerW - 10
	for i := range coreRows {
		usage := float64(last.CPUs[i].Usage)
		lines = append(lines, fmt.Sprintf("%s %s %s",
			labelStyle.Render(fmt.Sprintf("c%-2d", i)),
			cpuChartStyle.Render(Sparkline(tail(coreSeries(snaps, i), sparkWidth), 100)),
			loadStyle(usage).Render(fmt.Sprintf("%3.0f%%", usage))))
	}
	return panelBox(title, lines, width, height)
}

// renderMemoryPanel shows the memory usage chart.
func renderMemoryPanel(snaps []monitor.Snapshot, width, height int) string {
	innerW, innerH := innerSize(width, height)
	last, _ := latest(snaps)
	sum := metrics.SummarizeMemory(last.Mem, last.MemMax)
	title := "Memory " + loadStyle(sum.Percent).Render(sum.String())
	return panelBox(title, chartLines(metrics.MemoryPercent(snaps), innerW, innerH-1, memChartStyle), width, height)
}

// renderGPUPanel shows two lines per device: the readings and a usage
// sparkline. names may be shorter than the device list.
func renderGPUPanel(snaps []monitor.Snapshot, names []string, width, height int) string {
	innerW, _ := innerSize(width, height)
	last, _ := latest(snaps)

	var lines []string
	for i, g := range last.GPUs {
		name := fmt.Sprintf("GPU %d", i)
		if i < len(names) && names[i] != "" {
			name = names[i]
		}
		mem := metrics.SummarizeMemory(g.Mem, g.MaxMem)
		lines = append(lines, fmt.Sprintf("%s %s %s %s",
			valueStyle.Render(name),
			loadStyle(float64(g.Usage)).Render(fmt.Sprintf("%d%%", g.Usage)),
			labelStyle.Render(mem.String()),
			labelStyle.Render(fmt.Sprintf("%d°C", g.Temp))))

		series := make([]float64, len(snaps))
		for j, s := range snaps {
			if i < len(s.GPUs) {
				series[j] = float64(s.GPUs[i].Usage)
			}
		}
		lines = append(lines, gpuChartStyle.Render(Sparkline(tail(series, innerW), 100)))
	}
	return panelBox("GPU", lines, width, height)
}

// renderIOPanel shows network throughput, cumulative disk I/O and the
// process count. Both network sparklines share the window's peak rate.
func renderIOPanel(snaps []monitor.Snapshot, width, height int) string {
	innerW, _ := innerSize(width, height)
	last, _ := latest(snaps)

	down := make([]float64, len(snaps))
	up := make([]float64, len(snaps))
	var peak float64
	for i, s := range snaps {
		down[i], up[i] = float64(s.Network.Down), float64(s.Network.Up)
		peak = max(peak, down[i], up[i])
	}
	spark := max(innerW-16, 1)

	lines := []string{
		fmt.Sprintf("%s %s %s", labelStyle.Render("down"),
			valueStyle.Render(fmt.Sprintf("%-10s", format.FormatRate(last.Network.Down))),
			netStyle.Render(Sparkline(tail(down, spark), peak))),
		fmt.Sprintf("%s %s %s", labelStyle.Render("up  "),
			valueStyle.Render(fmt.Sprintf("%-10s", format.FormatRate(last.Network.Up))),
			netStyle.Render(Sparkline(tail(up, spark), peak))),
		fmt.Sprintf("%s %s  %s %s",
			labelStyle.Render("read"), valueStyle.Render(format.FormatBytes(last.Disk.ReadBytes)),
			labelStyle.Render("written"), valueStyle.Render(format.FormatBytes(last.Disk.WrittenBytes))),
		fmt.Sprintf("%s %s", labelStyle.Render("processes"), valueStyle.Render(fmt.Sprintf("%d", last.Processes))),
	}
	return panelBox("Network & Disk", lines, width, height)
}
