package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"QuoteBoard/internal/calculator"
	"QuoteBoard/internal/model"
)

const (
	chartMargin  = "  │ "
	footerLayout = "Mon 02 15:04"
	headerLayout = "Mon 02"
)

// ChartInput is everything needed to draw one symbol's chart.
type ChartInput struct {
	Code   string
	Name   string
	Period model.PeriodSpec
	Ticks  []model.Tick // chronological, closes present
}

// ChartComposer assembles the framed single-symbol chart block.
type ChartComposer struct {
	Options ChartOptions
	Palette Palette
	Styler  *Styler
	Host    string // shown in the usage line
}

// NewChartComposer resolves the palette named by opts.
func NewChartComposer(opts ChartOptions, palettes *Palettes, host string) (*ChartComposer, error) {
	if err := opts.Validate(palettes); err != nil {
		return nil, err
	}
	p, _ := palettes.Lookup(opts.Palette)
	return &ChartComposer{
		Options: opts,
		Palette: p,
		Styler:  NewStyler(opts.Color),
		Host:    host,
	}, nil
}

// Compose renders the chart block. It fails only when in has no ticks.
func (c *ChartComposer) Compose(in ChartInput) (string, error) {
	stats, err := calculator.Summarize(in.Ticks)
	if err != nil {
		return "", fmt.Errorf("summarize %s: %w", in.Code, err)
	}
	st := c.Styler
	width := c.Options.Width
	ts := func(i int) string { return in.Ticks[i].Time.Format(footerLayout) }

	var b strings.Builder

	// Header
	headerStyle := st.NewStyle().
		Background(lipgloss.Color(colorWhite)).
		Foreground(lipgloss.Color(colorBlack))
	b.WriteString("\n")
	b.WriteString(st.Render(headerStyle, fmt.Sprintf("▶ %s %s ", in.Code, in.Name)))
	b.WriteString(st.Fg(colorWhite, "▶"))
	b.WriteString(fmt.Sprintf("  %s +%s", in.Ticks[0].Time.Format(headerLayout), in.Period.Label))
	b.WriteString("  " + st.Signed(stats.Change, FormatChangePct(stats.ChangePct)))
	b.WriteString("\n\n")

	// Body
	closes := make([]float64, len(in.Ticks))
	for i, t := range in.Ticks {
		closes[i] = t.Close
	}
	chart := AxisChart{Width: width, Height: c.Options.Height, Palette: c.Palette}
	grid := chart.Render(closes)

	high := AlignLabel(FormatValue(stats.High), stats.HighIndex, len(closes), width)
	low := AlignLabel(FormatValue(stats.Low), stats.LowIndex, len(closes), width)
	if c.Options.Axis {
		gutter := grid.AxisWidth()
		high.Offset += gutter
		low.Offset += gutter
	}

	b.WriteString(chartMargin + high.String() + "\n")
	for _, line := range grid.Lines(st, c.Palette, c.Options.Axis) {
		b.WriteString(chartMargin + line + "\n")
	}
	b.WriteString(chartMargin + low.String() + "\n")
	b.WriteString("  └" + strings.Repeat("─", width) + "\n")

	// Footer
	sep := st.Dim(" // ")
	b.WriteString(fmt.Sprintf("\n%s %s (%s)", st.Dim("begin:"), FormatValue(stats.Begin), ts(0)))
	b.WriteString(sep)
	b.WriteString(fmt.Sprintf("%s %s (%s)\n", st.Dim("end:"), FormatValue(stats.End), ts(len(in.Ticks)-1)))

	b.WriteString(fmt.Sprintf("%s %s (%s)", st.Dim("high:"), st.Fg(colorGreen, FormatValue(stats.High)), ts(stats.HighIndex)))
	b.WriteString(sep)
	b.WriteString(fmt.Sprintf("%s %s (%s)\n", st.Dim("low:"), st.Fg(colorRed, FormatValue(stats.Low)), ts(stats.LowIndex)))

	b.WriteString(fmt.Sprintf("%s %s", st.Dim("avg:"), FormatValue(stats.Avg)))
	b.WriteString(sep)
	b.WriteString(fmt.Sprintf("%s %s", st.Dim("median:"), FormatValue(stats.Median)))
	b.WriteString(sep)
	b.WriteString(fmt.Sprintf("%s %s (%s)\n", st.Dim("change:"),
		st.Signed(stats.Change, fmt.Sprintf("%+.3f", stats.Change)),
		st.Signed(stats.Change, FormatChangePct(stats.ChangePct))))

	b.WriteString("\n" + st.Dim(Usage(c.Host)) + "\n\n")
	return b.String(), nil
}

// Usage is the one-line hint printed under every chart.
func Usage(host string) string {
	return fmt.Sprintf("用法: curl %s/<代码>[@时间范围]  时间范围: %s", host, model.SupportedPeriods())
}

// UnsupportedPeriod is the diagnostic for an unknown period key.
func UnsupportedPeriod(key string) string {
	return fmt.Sprintf("不支持的时间范围: %s\n支持: %s\n", key, model.SupportedPeriods())
}

// SymbolNotFound is the diagnostic for a symbol the provider does not know.
func SymbolNotFound(code, symbol string) string {
	return fmt.Sprintf("未找到股票数据: %s (%s)\n", code, symbol)
}

// NoPriceData is the diagnostic for a series without any close.
func NoPriceData(code string) string {
	return fmt.Sprintf("无价格数据: %s\n", code)
}
