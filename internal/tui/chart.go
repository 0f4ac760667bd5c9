package tui

import (
	"math"
	"strings"
)

// Charts scale samples against a ceiling. Values are clamped to
// [0, ceiling]; a ceiling of zero or less means the largest value in the
// series, so rates without a natural maximum still fill the chart.

var levels = []rune("▁▂▃▄▅▆▇█")

const brailleBase = 0x2800

// dotBit[y][x] is the braille bit for dot row y (top down) and column x of
// a cell.
var dotBit = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

func resolveCeiling(values []float64, ceiling float64) float64 {
	if ceiling > 0 {
		return ceiling
	}
	for _, v := range values {
		if v > ceiling {
			ceiling = v
		}
	}
	return ceiling
}

// share returns v as a fraction of ceiling in [0, 1].
func share(v, ceiling float64) float64 {
	if ceiling <= 0 || math.IsNaN(v) || v <= 0 {
		return 0
	}
	return min(v/ceiling, 1)
}

// Sparkline renders one block rune per value.
func Sparkline(values []float64, ceiling float64) string {
	ceiling = resolveCeiling(values, ceiling)
	var b strings.Builder
	for _, v := range values {
		b.WriteRune(levels[int(share(v, ceiling)*float64(len(levels)-1))])
	}
	return b.String()
}

// AreaChart renders values as a filled braille chart of rows lines, each
// width cells wide. A cell holds two samples, so the newest 2*width values
// are drawn with the latest at the right edge. Every sample lights at least
// its baseline dot. It returns nil when there is nothing to draw.
func AreaChart(values []float64, ceiling float64, width, rows int) []string {
	if width <= 0 || rows <= 0 || len(values) == 0 {
		return nil
	}
	ceiling = resolveCeiling(values, ceiling)
	height := rows * 4
	values = tail(values, width*2)
	first := width*2 - len(values)

	cells := make([][]rune, rows)
	for r := range cells {
		cells[r] = []rune(strings.Repeat(string(rune(brailleBase)), width))
	}
	for i, v := range values {
		x := first + i
		fill := max(int(math.Round(share(v, ceiling)*float64(height))), 1)
		for y := height - fill; y < height; y++ {
			cells[y/4][x/2] |= dotBit[y%4][x%2]
		}
	}

	out := make([]string, rows)
	for r, line := range cells {
		out[r] = string(line)
	}
	return out
}
