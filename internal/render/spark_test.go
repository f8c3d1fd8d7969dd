package render

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSparkline_Placeholder(t *testing.T) {
	plain := Sparkline{Styler: NewStyler(false)}
	for _, series := range [][]float64{nil, {1}, {1, 1, 1}} {
		assert.Equal(t, Placeholder, plain.Render(series))
	}
	assert.Equal(t, 8, utf8.RuneCountInString(Placeholder))

	colored := Sparkline{Styler: NewStyler(true)}
	out := colored.Render([]float64{1, 1, 1})
	assert.Contains(t, out, Placeholder)
	assert.Contains(t, out, "\x1b[")
}

func TestSparkline_GlyphCount(t *testing.T) {
	plain := Sparkline{Styler: NewStyler(false)}
	for _, n := range []int{2, 5, 13, 14, 40} {
		series := make([]float64, n)
		for i := range series {
			series[i] = float64(i * i % 7)
		}
		series[1] = 100
		want := min(n-1, 12)
		assert.Equalf(t, want, utf8.RuneCountInString(plain.Render(series)), "n=%d", n)
	}
}

func TestSparkCells_Buckets(t *testing.T) {
	cells, ok := sparkCells([]float64{0, 1, 3, 2, 2})
	require.True(t, ok)
	require.Len(t, cells, 4)
	assert.Equal(t, []sparkCell{
		{glyph: '▄', up: true},
		{glyph: '█', up: true},
		{glyph: '▄', up: false},
		{glyph: '▁', up: true},
	}, cells)
}

func TestSparkCells_KeepsLastTwelve(t *testing.T) {
	// The largest move is outside the window but still scales the bars.
	series := []float64{0, 10}
	for i := 0; i < 12; i++ {
		series = append(series, series[len(series)-1]+1)
	}
	cells, ok := sparkCells(series)
	require.True(t, ok)
	require.Len(t, cells, 12)
	for _, c := range cells {
		assert.Equal(t, '▂', c.glyph)
	}
}

func TestSparkline_Colors(t *testing.T) {
	out := Sparkline{Styler: NewStyler(true)}.Render([]float64{1, 2, 1})
	assert.Contains(t, out, "\x1b[32m")
	assert.Contains(t, out, "\x1b[31m")
}
