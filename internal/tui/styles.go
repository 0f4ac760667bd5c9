package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/resmon/internal/ui"
)

// Dashboard styles, rebuilt by applyTheme.
var (
	panelStyle      lipgloss.Style
	panelTitleStyle lipgloss.Style
	headerStyle     lipgloss.Style
	titleStyle      lipgloss.Style
	versionStyle    lipgloss.Style
	labelStyle      lipgloss.Style
	valueStyle      lipgloss.Style

	cpuChartStyle lipgloss.Style
	memChartStyle lipgloss.Style
	gpuChartStyle lipgloss.Style
	netStyle      lipgloss.Style

	footerKeyStyle    lipgloss.Style
	footerDescStyle   lipgloss.Style
	statusLiveStyle   lipgloss.Style
	statusPausedStyle lipgloss.Style
	statusErrorStyle  lipgloss.Style

	loadStyles [3]lipgloss.Style
)

func init() { applyTheme(ui.Current()) }

// applyTheme derives every dashboard style from the theme's palette. Chart
// and status colors reuse the load bands: memory and a paused sampler read
// as elevated, a failing probe as saturated.
func applyTheme(t ui.Theme) {
	p := t.Palette
	fg := func(c lipgloss.TerminalColor) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }
	strong := func(c lipgloss.TerminalColor) lipgloss.Style { return fg(c).Bold(true) }

	panelStyle = fg(p.Text).Border(lipgloss.RoundedBorder()).BorderForeground(p.Frame)
	panelTitleStyle = strong(p.Accent)
	titleStyle = strong(p.Accent)
	headerStyle = strong(p.Accent).Padding(0, 1)
	versionStyle = fg(p.Muted)
	labelStyle = fg(p.Muted)
	valueStyle = strong(p.Text)

	cpuChartStyle = fg(p.Accent)
	memChartStyle = fg(p.Load[ui.LoadElevated])
	gpuChartStyle = fg(p.Load[ui.LoadLow])
	netStyle = fg(p.Net)

	footerKeyStyle = strong(p.Accent)
	footerDescStyle = fg(p.Muted)
	statusLiveStyle = strong(p.Load[ui.LoadLow])
	statusPausedStyle = strong(p.Load[ui.LoadElevated])
	statusErrorStyle = strong(p.Load[ui.LoadSaturated])

	for band, c := range p.Load {
		loadStyles[band] = fg(c)
	}
}

// loadStyle colors a utilization percentage by its band.
func loadStyle(percent float64) lipgloss.Style { return loadStyles[ui.LoadOf(percent)] }
