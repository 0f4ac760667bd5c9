package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/resmon/internal/format"
	"github.com/agbru/resmon/internal/monitor"
)

// HeaderModel renders the top bar: title, CPU model, uptime and period.
type HeaderModel struct {
	version string
	info    monitor.SystemInfo
	uptime  uint64
	period  time.Duration
	width   int
}

// NewHeaderModel creates a new header.
func NewHeaderModel(version string, info monitor.SystemInfo) HeaderModel {
	return HeaderModel{version: version, info: info}
}

// SetUptime records the host uptime in seconds from the latest snapshot.
func (h *HeaderModel) SetUptime(seconds uint64) {
	h.uptime = seconds
}

// SetPeriod records the time span currently displayed.
func (h *HeaderModel) SetPeriod(d time.Duration) {
	h.period = d
}

// SetWidth updates the available width.
func (h *HeaderModel) SetWidth(w int) {
	h.width = w
}

// View renders the header.
func (h HeaderModel) View() string {
	titleText := "resmon"
	if h.version != "" && h.version != "dev" {
		titleText += " " + h.version
	}
	pipe := versionStyle.Render(" | ")

	left := titleStyle.Render(titleText)
	if h.info.CPUBrand != "" {
		left += pipe + valueStyle.Render(h.info.CPUBrand)
	}
	left += pipe + labelStyle.Render(fmt.Sprintf("%d threads", h.info.CPUCoreCount))
	left += pipe + labelStyle.Render("up ") + valueStyle.Render(format.FormatDuration(h.uptime))

	right := labelStyle.Render("period ") + titleStyle.Render(formatPeriod(h.period))

	innerWidth := max(h.width-2, 0)
	gap := max(innerWidth-lipgloss.Width(left)-lipgloss.Width(right), 1)

	return headerStyle.Width(h.width).Render(left + spaces(gap) + right)
}

// formatPeriod renders whole hours and minutes compactly ("5m", "24h").
func formatPeriod(d time.Duration) string {
	switch {
	case d <= 0:
		return "-"
	case d%time.Hour == 0:
		return fmt.Sprintf("%dh", d/time.Hour)
	case d%time.Minute == 0:
		return fmt.Sprintf("%dm", d/time.Minute)
	default:
		return d.String()
	}
}

// spaces returns a string of n space characters.
func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}
