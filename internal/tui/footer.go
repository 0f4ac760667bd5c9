package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/resmon/internal/format"
	"github.com/agbru/resmon/internal/metrics"
)

// FooterModel renders the key help on the left and the poll status on the
// right: live/paused/error, the last poll latency and resmon's own heap.
type FooterModel struct {
	keys    []key.Binding
	paused  bool
	err     error
	latency time.Duration
	self    metrics.MemorySnapshot
	width   int
}

// NewFooterModel creates a footer listing the given bindings.
func NewFooterModel(km KeyMap) FooterModel {
	return FooterModel{keys: []key.Binding{km.Quit, km.Pause, km.NextPeriod, km.PrevPeriod, km.Reset}}
}

// SetPaused updates the paused indicator.
func (f *FooterModel) SetPaused(paused bool) { f.paused = paused }

// SetError records the last poll error; nil clears it.
func (f *FooterModel) SetError(err error) { f.err = err }

// SetPoll records the latency and self memory of the last poll.
func (f *FooterModel) SetPoll(latency time.Duration, self metrics.MemorySnapshot) {
	f.latency = latency
	f.self = self
}

// SetWidth updates the available width.
func (f *FooterModel) SetWidth(w int) { f.width = w }

// View renders the footer.
func (f FooterModel) View() string {
	help := make([]string, 0, len(f.keys))
	for _, k := range f.keys {
		h := k.Help()
		help = append(help, footerKeyStyle.Render(h.Key)+" "+footerDescStyle.Render(h.Desc))
	}
	left := " " + strings.Join(help, "  ")

	var status string
	switch {
	case f.err != nil:
		status = statusErrorStyle.Render("ERROR: " + f.err.Error())
	case f.paused:
		status = statusPausedStyle.Render("PAUSED")
	default:
		status = statusLiveStyle.Render("LIVE")
	}
	right := fmt.Sprintf("%s %s %s %s %s ",
		status,
		footerDescStyle.Render("tick"), footerKeyStyle.Render(format.FormatExecutionDuration(f.latency)),
		footerDescStyle.Render("heap"), footerKeyStyle.Render(format.FormatBytes(f.self.HeapAlloc)))

	gap := max(f.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + spaces(gap) + right
}
