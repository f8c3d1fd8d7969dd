package render

import (
	"math"
	"strings"
)

const (
	sparkWindow      = 12
	placeholderWidth = 8
)

// sparkRamp runs from the thinnest to the tallest bar.
var sparkRamp = []rune("▁▂▃▄▆█")

// Placeholder is the flat run shown when no sparkline can be drawn.
var Placeholder = strings.Repeat("─", placeholderWidth)

type sparkCell struct {
	glyph rune
	up    bool
}

// sparkCells encodes the step-to-step deltas of series. Bar height follows the
// size of each move relative to the largest move in the whole series, not the
// price level. ok is false when there is nothing to draw.
func sparkCells(series []float64) (cells []sparkCell, ok bool) {
	clean := make([]float64, 0, len(series))
	for _, v := range series {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			clean = append(clean, v)
		}
	}
	if len(clean) < 2 {
		return nil, false
	}

	deltas := make([]float64, len(clean)-1)
	maxAbs := 0.0
	for i := 1; i < len(clean); i++ {
		deltas[i-1] = clean[i] - clean[i-1]
		maxAbs = math.Max(maxAbs, math.Abs(deltas[i-1]))
	}
	if maxAbs == 0 {
		return nil, false
	}
	if len(deltas) > sparkWindow {
		deltas = deltas[len(deltas)-sparkWindow:]
	}

	top := len(sparkRamp) - 1
	cells = make([]sparkCell, len(deltas))
	for i, d := range deltas {
		idx := min(int(math.Ceil(math.Abs(d)*float64(top)/maxAbs)), top)
		cells[i] = sparkCell{glyph: sparkRamp[idx], up: d >= 0}
	}
	return cells, true
}

// Sparkline renders delta-encoded sparklines.
type Sparkline struct {
	Styler *Styler
}

// Render returns up to 12 glyphs, green for rises and red for falls, or the
// dim placeholder.
func (s Sparkline) Render(series []float64) string {
	cells, ok := sparkCells(series)
	if !ok {
		return s.Styler.Dim(Placeholder)
	}

	var b strings.Builder
	var run []rune
	runUp := cells[0].up
	flush := func() {
		if len(run) == 0 {
			return
		}
		if runUp {
			b.WriteString(s.Styler.Fg(colorGreen, string(run)))
		} else {
			b.WriteString(s.Styler.Fg(colorRed, string(run)))
		}
		run = run[:0]
	}
	for _, c := range cells {
		if c.up != runUp {
			flush()
			runUp = c.up
		}
		run = append(run, c.glyph)
	}
	flush()
	return b.String()
}
