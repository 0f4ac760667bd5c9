package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/resmon/internal/config"
	apperrors "github.com/agbru/resmon/internal/errors"
	"github.com/agbru/resmon/internal/metrics"
	"github.com/agbru/resmon/internal/monitor"
	"github.com/agbru/resmon/internal/ui"
)

// StatsSource is what the dashboard polls. *monitor.Monitor satisfies it.
type StatsSource interface {
	Info() monitor.SystemInfo
	WindowedStats(ctx context.Context, lookback, points int) ([]monitor.Snapshot, error)
}

var _ StatsSource = (*monitor.Monitor)(nil)

// LayoutManager holds terminal dimensions and provides layout calculations.
type LayoutManager struct {
	width  int
	height int
}

// Layout constants for the dashboard.
const (
	headerHeight        = 1
	footerHeight        = 1
	minBodyHeight       = 8
	LeftPanelPercent    = 60
	TopRowHeightPercent = 60
)

// bodyHeight returns the available height for the panels.
func (l LayoutManager) bodyHeight() int {
	return max(l.height-headerHeight-footerHeight, minBodyHeight)
}

func (l LayoutManager) leftWidth() int {
	return l.width * LeftPanelPercent / 100
}

func (l LayoutManager) rightWidth() int {
	return l.width - l.leftWidth()
}

func (l LayoutManager) topHeight() int {
	return l.bodyHeight() * TopRowHeightPercent / 100
}

func (l LayoutManager) bottomHeight() int {
	return l.bodyHeight() - l.topHeight()
}

// Model is the root bubbletea model for the dashboard. Every tick it asks the
// source for a fresh windowed sample covering the selected period.
type Model struct {
	header HeaderModel
	footer FooterModel
	keymap KeyMap

	LayoutManager

	ctx    context.Context
	source StatsSource
	config config.AppConfig
	memory *metrics.MemoryCollector
	info   monitor.SystemInfo

	snaps    []monitor.Snapshot
	period   int // index into config.Periods; -1 while a custom lookback is shown
	lookback time.Duration
	paused   bool
	exitCode int
}

// NewModel creates a dashboard model polling source.
func NewModel(ctx context.Context, source StatsSource, cfg config.AppConfig, version string) Model {
	km := DefaultKeyMap()
	info := source.Info()
	m := Model{
		header:   NewHeaderModel(version, info),
		footer:   NewFooterModel(km),
		keymap:   km,
		ctx:      ctx,
		source:   source,
		config:   cfg,
		memory:   metrics.NewMemoryCollector(),
		info:     info,
		exitCode: apperrors.ExitSuccess,
	}
	m.setLookback(cfg.Lookback)
	return m
}

// Init starts polling immediately and watches the parent context.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.pollCmd(), watchContextCmd(m.ctx))
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.header.SetWidth(m.width)
		m.footer.SetWidth(m.width)
		return m, nil

	case TickMsg:
		if m.paused {
			return m, tickCmd(m.config.Interval)
		}
		return m, m.pollCmd()

	case StatsMsg:
		if msg.Err != nil {
			m.footer.SetError(msg.Err)
			if errors.Is(msg.Err, apperrors.ErrStatePoisoned) {
				m.exitCode = apperrors.ExitErrorPoisoned
				return m, tea.Quit
			}
			return m, tickCmd(m.config.Interval)
		}
		m.footer.SetError(nil)
		m.footer.SetPoll(msg.Latency, msg.Self)
		if !m.paused {
			m.snaps = msg.Snapshots
			if last, ok := latest(m.snaps); ok {
				m.header.SetUptime(last.UpTime)
			}
		}
		return m, tickCmd(m.config.Interval)

	case ContextCancelledMsg:
		return m, tea.Quit
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Pause):
		m.paused = !m.paused
		m.footer.SetPaused(m.paused)
		return m, nil

	case key.Matches(msg, m.keymap.NextPeriod):
		m.stepPeriod(1)
		return m, nil

	case key.Matches(msg, m.keymap.PrevPeriod):
		m.stepPeriod(-1)
		return m, nil

	case key.Matches(msg, m.keymap.Reset):
		m.setLookback(m.config.Lookback)
		m.paused = false
		m.footer.SetPaused(false)
		m.footer.SetError(nil)
		return m, nil
	}
	return m, nil
}

// setLookback selects d, matching it to a preset period when possible.
func (m *Model) setLookback(d time.Duration) {
	m.lookback = d
	m.period = -1
	for i, p := range config.Periods {
		if p == d {
			m.period = i
			break
		}
	}
	m.header.SetPeriod(d)
}

// stepPeriod moves to the neighbouring preset, clamping at both ends. From a
// custom lookback it moves to the nearest preset in that direction.
func (m *Model) stepPeriod(dir int) {
	next := m.period + dir
	if m.period < 0 {
		next = -1
		for i, p := range config.Periods {
			if dir > 0 && p > m.lookback {
				next = i
				break
			}
			if dir < 0 && p < m.lookback {
				next = i
			}
		}
		if next < 0 {
			return
		}
	}
	next = min(max(next, 0), len(config.Periods)-1)
	m.setLookback(config.Periods[next])
}

// Lookback returns the time span currently displayed.
func (m Model) Lookback() time.Duration { return m.lookback }

// ExitCode returns the exit code the dashboard finished with.
func (m Model) ExitCode() int { return m.exitCode }

// pollCmd takes one windowed sample. A panic inside the source poisons the
// Monitor; it is reported as ErrStatePoisoned so the program can exit cleanly
// and restore the terminal.
func (m Model) pollCmd() tea.Cmd {
	ctx, source, memory := m.ctx, m.source, m.memory
	lookback := m.config.LookbackSamples(m.lookback)
	points := m.config.Points
	return func() (msg tea.Msg) {
		start := time.Now()
		defer func() {
			if r := recover(); r != nil {
				msg = StatsMsg{Err: fmt.Errorf("%w: %v", apperrors.ErrStatePoisoned, r)}
			}
		}()
		snaps, err := source.WindowedStats(context.WithoutCancel(ctx), lookback, points)
		return StatsMsg{
			Snapshots: snaps,
			Latency:   time.Since(start),
			Self:      memory.Snapshot(),
			Err:       err,
		}
	}
}

// View renders the entire dashboard.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	top := lipgloss.JoinHorizontal(lipgloss.Top,
		renderCPUPanel(m.snaps, m.leftWidth(), m.topHeight()),
		renderMemoryPanel(m.snaps, m.rightWidth(), m.topHeight()),
	)

	var bottom string
	if m.hasGPUs() {
		bottom = lipgloss.JoinHorizontal(lipgloss.Top,
			renderGPUPanel(m.snaps, m.info.GPUNames, m.leftWidth(), m.bottomHeight()),
			renderIOPanel(m.snaps, m.rightWidth(), m.bottomHeight()),
		)
	} else {
		bottom = renderIOPanel(m.snaps, m.width, m.bottomHeight())
	}

	return lipgloss.JoinVertical(lipgloss.Left, m.header.View(), top, bottom, m.footer.View())
}

func (m Model) hasGPUs() bool {
	last, ok := latest(m.snaps)
	return ok && len(last.GPUs) > 0
}

// Run is the public entry point for the dashboard mode.
// It creates the bubbletea program, runs it, and returns the exit code.
func Run(ctx context.Context, source StatsSource, cfg config.AppConfig, version string) int {
	applyTheme(ui.Current())

	p := tea.NewProgram(NewModel(ctx, source, cfg, version), tea.WithAltScreen(), tea.WithContext(ctx))
	finalModel, err := p.Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return apperrors.ExitErrorGeneric
	}
	if m, ok := finalModel.(Model); ok {
		return m.exitCode
	}
	return apperrors.ExitSuccess
}

// tickCmd schedules the next poll after interval.
func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// watchContextCmd waits for context cancellation and sends a message.
func watchContextCmd(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		<-ctx.Done()
		return ContextCancelledMsg{Err: ctx.Err()}
	}
}
