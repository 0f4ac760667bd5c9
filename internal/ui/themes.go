package ui

import (
	"fmt"
	"os"
	"sync/atomic"

	"github.com/charmbracelet/lipgloss"
)

// Load is the utilization band a percentage falls into.
type Load int

const (
	LoadLow Load = iota
	LoadElevated
	LoadSaturated
)

// Band thresholds, in percent.
const (
	ElevatedPercent  = 60
	SaturatedPercent = 85
)

// LoadOf classifies a utilization percentage.
func LoadOf(percent float64) Load {
	switch {
	case percent >= SaturatedPercent:
		return LoadSaturated
	case percent >= ElevatedPercent:
		return LoadElevated
	default:
		return LoadLow
	}
}

// ANSI holds the escape sequences used by plain output. The zero value
// writes no escapes at all.
type ANSI struct {
	Heading string
	Muted   string
	Bold    string
	Reset   string
	Load    [3]string
}

// Palette holds the dashboard colors.
type Palette struct {
	Text   lipgloss.TerminalColor
	Frame  lipgloss.TerminalColor
	Accent lipgloss.TerminalColor
	Muted  lipgloss.TerminalColor
	Net    lipgloss.TerminalColor
	Load   [3]lipgloss.TerminalColor
}

// Theme pairs the plain-output escapes with the dashboard palette so both
// presentations agree on what each band looks like.
type Theme struct {
	Name    string
	ANSI    ANSI
	Palette Palette
}

func fg256(code int) string { return fmt.Sprintf("\033[38;5;%dm", code) }

func hex(codes ...string) []lipgloss.TerminalColor {
	out := make([]lipgloss.TerminalColor, len(codes))
	for i, c := range codes {
		out[i] = lipgloss.Color(c)
	}
	return out
}

func palette(text, frame, accent, muted, net string, low, elevated, saturated string) Palette {
	c := hex(text, frame, accent, muted, net, low, elevated, saturated)
	return Palette{Text: c[0], Frame: c[1], Accent: c[2], Muted: c[3], Net: c[4], Load: [3]lipgloss.TerminalColor{c[5], c[6], c[7]}}
}

var (
	Dark = Theme{
		Name: "dark",
		ANSI: ANSI{
			Heading: fg256(208), Muted: fg256(245), Bold: "\033[1m", Reset: "\033[0m",
			Load: [3]string{fg256(82), fg256(214), fg256(196)},
		},
		Palette: palette("#E0E0E0", "#FF6600", "#FF8C00", "#666666", "#4488FF", "#9ECE6A", "#FFB347", "#FF4444"),
	}

	Light = Theme{
		Name: "light",
		ANSI: ANSI{
			Heading: fg256(27), Muted: fg256(240), Bold: "\033[1m", Reset: "\033[0m",
			Load: [3]string{fg256(28), fg256(130), fg256(124)},
		},
		Palette: palette("#202020", "#1F5FBF", "#0050A0", "#808080", "#5E35B1", "#2E7D32", "#B35C00", "#B00020"),
	}

	// Plain emits no escapes and leaves the dashboard in terminal colors.
	Plain = Theme{
		Name: "none",
		Palette: Palette{
			Text: lipgloss.NoColor{}, Frame: lipgloss.NoColor{}, Accent: lipgloss.NoColor{},
			Muted: lipgloss.NoColor{}, Net: lipgloss.NoColor{},
			Load: [3]lipgloss.TerminalColor{lipgloss.NoColor{}, lipgloss.NoColor{}, lipgloss.NoColor{}},
		},
	}
)

var active atomic.Pointer[Theme]

func init() { Use(Dark) }

// Current returns the active theme.
func Current() Theme { return *active.Load() }

// Use makes t the active theme.
func Use(t Theme) { active.Store(&t) }

// Select activates a theme by name and returns it. The noColor flag and a
// NO_COLOR variable with any value force Plain (https://no-color.org/).
// Unknown names select Dark.
func Select(name string, noColor bool) Theme {
	t := Dark
	switch _, env := os.LookupEnv("NO_COLOR"); {
	case noColor || env || name == Plain.Name:
		t = Plain
	case name == Light.Name:
		t = Light
	}
	Use(t)
	return t
}

func Heading() string { return Current().ANSI.Heading }
func Muted() string   { return Current().ANSI.Muted }
func Bold() string    { return Current().ANSI.Bold }
func Reset() string   { return Current().ANSI.Reset }

// ForLoad returns the escape for the band percent falls into.
func ForLoad(percent float64) string { return Current().ANSI.Load[LoadOf(percent)] }
