package render

import (
	"math"
	"strings"
	"unicode/utf8"
)

// Cell is one position of a chart grid. A zero Glyph is transparent.
type Cell struct {
	Glyph  rune
	Bucket int
}

// Grid is a Height x Width matrix of cells. Row 0 is the highest price band.
type Grid struct {
	Width  int
	Height int
	Min    float64
	Max    float64
	cells  []Cell
}

// At returns the cell at row, col. Out of range positions are transparent.
func (g *Grid) At(row, col int) Cell {
	if row < 0 || row >= g.Height || col < 0 || col >= g.Width {
		return Cell{}
	}
	return g.cells[row*g.Width+col]
}

// RowValue returns the price at the centre of row.
func (g *Grid) RowValue(row int) float64 {
	if g.Max == g.Min || g.Height == 1 {
		return g.Max
	}
	return g.Max - float64(row)*(g.Max-g.Min)/float64(g.Height-1)
}

func (g *Grid) flat() bool { return g.Max == g.Min }

func (g *Grid) rowOf(v float64) int {
	if g.flat() || math.IsNaN(v) {
		return (g.Height - 1) / 2
	}
	r := int(math.Round((g.Max - v) / (g.Max - g.Min) * float64(g.Height-1)))
	return max(0, min(r, g.Height-1))
}

// norm is 1 at the top row and 0 at the bottom; a flat grid sits at 0.5.
func (g *Grid) norm(row int) float64 {
	if g.flat() {
		return 0.5
	}
	if g.Height == 1 {
		return 1
	}
	return 1 - float64(row)/float64(g.Height-1)
}

// column is the slice of the series drawn in one grid column.
type column struct {
	open, close, lo, hi float64
}

// resample maps series onto width columns. When the series fits, each column
// takes the nearest sample. Otherwise each column covers a contiguous bucket of
// samples and keeps its first, last, lowest and highest value. Either way the
// first column opens on series[0] and the last closes on series[n-1].
func resample(series []float64, width int) []column {
	n := len(series)
	cols := make([]column, width)
	if n <= width {
		for c := range cols {
			idx := 0
			if width > 1 {
				idx = int(math.Round(float64(c*(n-1)) / float64(width-1)))
			}
			v := series[idx]
			cols[c] = column{open: v, close: v, lo: v, hi: v}
		}
		return cols
	}
	for c := range cols {
		start, end := c*n/width, (c+1)*n/width
		col := column{open: series[start], close: series[end-1], lo: series[start], hi: series[start]}
		for _, v := range series[start:end] {
			col.lo = math.Min(col.lo, v)
			col.hi = math.Max(col.hi, v)
		}
		cols[c] = col
	}
	return cols
}

// AxisChart draws series into a fixed-size grid.
type AxisChart struct {
	Width   int
	Height  int
	Palette Palette
}

// Render builds the grid for series, which must be non-empty.
func (a AxisChart) Render(series []float64) *Grid {
	g := &Grid{
		Width:  a.Width,
		Height: a.Height,
		Min:    math.Inf(1),
		Max:    math.Inf(-1),
	}
	if a.Width <= 0 || a.Height <= 0 || len(series) == 0 {
		g.Width, g.Height, g.Min, g.Max = max(a.Width, 0), max(a.Height, 0), 0, 0
		g.cells = make([]Cell, g.Width*g.Height)
		return g
	}
	g.cells = make([]Cell, a.Width*a.Height)
	for _, v := range series {
		if math.IsNaN(v) {
			continue
		}
		g.Min = math.Min(g.Min, v)
		g.Max = math.Max(g.Max, v)
	}
	if math.IsInf(g.Min, 1) {
		g.Min, g.Max = 0, 0
	}

	cols := resample(series, a.Width)
	prev := g.rowOf(cols[0].open)
	for c, col := range cols {
		entry, exit := prev, g.rowOf(col.close)
		top := min(entry, g.rowOf(col.hi))
		bottom := max(entry, g.rowOf(col.lo))
		if top == bottom {
			a.set(g, top, c, '─')
		} else {
			for r := top; r <= bottom; r++ {
				a.set(g, r, c, '│')
			}
			switch {
			case exit < entry:
				a.set(g, entry, c, '╯')
				a.set(g, exit, c, '╭')
			case exit > entry:
				a.set(g, entry, c, '╮')
				a.set(g, exit, c, '╰')
			default:
				a.set(g, entry, c, '┼')
			}
		}
		prev = exit
	}
	return g
}

func (a AxisChart) set(g *Grid, row, col int, glyph rune) {
	g.cells[row*g.Width+col] = Cell{Glyph: glyph, Bucket: a.Palette.Bucket(g.norm(row))}
}

// axisTick separates a row value from the plot.
const axisTick = " ┤"

func (g *Grid) axisLabels() []string {
	labels := make([]string, g.Height)
	for r := range labels {
		labels[r] = FormatValue(g.RowValue(r))
	}
	return labels
}

// AxisWidth is the number of columns the row value gutter takes in front of
// each line when the axis is drawn.
func (g *Grid) AxisWidth() int {
	w := 0
	for _, l := range g.axisLabels() {
		w = max(w, utf8.RuneCountInString(l))
	}
	return w + utf8.RuneCountInString(axisTick)
}

// Lines serializes the grid into Height text lines. Runs of cells sharing a
// bucket are styled together; transparent cells are spaces and trailing
// spaces are dropped. With axis set each line is prefixed by its row value.
func (g *Grid) Lines(st *Styler, p Palette, axis bool) []string {
	var labels []string
	labelWidth := 0
	if axis {
		labels = g.axisLabels()
		labelWidth = g.AxisWidth() - utf8.RuneCountInString(axisTick)
	}

	lines := make([]string, g.Height)
	for r := 0; r < g.Height; r++ {
		var b strings.Builder
		if axis {
			b.WriteString(strings.Repeat(" ", labelWidth-utf8.RuneCountInString(labels[r])))
			b.WriteString(st.Dim(labels[r] + axisTick))
		}

		var run strings.Builder
		runBucket := -1
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if runBucket < 0 {
				b.WriteString(run.String())
			} else {
				b.WriteString(st.Fg(p.Color(runBucket), run.String()))
			}
			run.Reset()
		}

		for c := 0; c < g.Width; c++ {
			cell := g.At(r, c)
			bucket := cell.Bucket
			if cell.Glyph == 0 {
				bucket = -1
			}
			if bucket != runBucket {
				flush()
				runBucket = bucket
			}
			if cell.Glyph == 0 {
				run.WriteByte(' ')
			} else {
				run.WriteRune(cell.Glyph)
			}
		}
		flush()
		lines[r] = strings.TrimRight(b.String(), " ")
	}
	return lines
}
