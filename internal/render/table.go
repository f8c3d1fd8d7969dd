package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"QuoteBoard/internal/model"
)

const (
	tableTitle       = "港股实时行情"
	indexUnavailable = "获取指数数据失败"
)

var tableHeaders = []string{"代码", "名称", "现价(HKD)", "涨跌幅", "成交量", "市值", "走势(5日)"}

// rightAligned marks the numeric columns of tableHeaders.
var rightAligned = []bool{false, false, true, true, true, true, false}

// TableInput is one snapshot of the multi-symbol view.
type TableInput struct {
	Rows      []model.QuoteRow
	Indices   []model.IndexRow
	UpdatedAt time.Time
	Status    string // trading session status, optional
}

// TableComposer assembles the quote table with its index summary panel.
type TableComposer struct {
	Styler *Styler
	Spark  Sparkline
	Width  int
}

// NewTableComposer creates a TableComposer laid out for width columns.
func NewTableComposer(color bool, width int) *TableComposer {
	st := NewStyler(color)
	return &TableComposer{Styler: st, Spark: Sparkline{Styler: st}, Width: width}
}

// Compose renders in. The table always has exactly one row per input row;
// rows without data are drawn as dashes.
func (t *TableComposer) Compose(in TableInput) string {
	var b strings.Builder
	b.WriteString(t.indexPanel(in.Indices))
	b.WriteString("\n")
	b.WriteString(t.quoteTable(in.Rows))
	b.WriteString("\n")

	footer := fmt.Sprintf("更新时间: %s  数据来源: Yahoo Finance", in.UpdatedAt.Format("2006-01-02 15:04:05"))
	if in.Status != "" {
		footer += "  " + in.Status
	}
	b.WriteString(t.Styler.Dim(footer) + "\n\n")
	return b.String()
}

func (t *TableComposer) indexPanel(indices []model.IndexRow) string {
	st := t.Styler
	parts := make([]string, 0, len(indices))
	for _, idx := range indices {
		if !idx.Available {
			continue
		}
		arrow := "▲"
		if idx.ChangePct < 0 {
			arrow = "▼"
		}
		parts = append(parts, fmt.Sprintf("%s  %s  %s",
			st.Bold(idx.Name),
			st.Fg(colorCyan, FormatIndexPrice(idx.Price)),
			st.Signed(idx.ChangePct, arrow+" "+FormatChangePct(idx.ChangePct))))
	}
	body := indexUnavailable
	if len(parts) > 0 {
		body = strings.Join(parts, "     ")
	}

	title := st.Render(st.NewStyle().Bold(true).Foreground(lipgloss.Color(colorYellow)), tableTitle)
	panel := st.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(colorYellow)).
		Padding(0, 1).
		Width(max(t.Width-2, 1))

	return lipgloss.PlaceHorizontal(t.Width, lipgloss.Center, title) + "\n" + panel.Render(body) + "\n"
}

func (t *TableComposer) quoteTable(rows []model.QuoteRow) string {
	st := t.Styler
	headers := make([]string, len(tableHeaders))
	for i, h := range tableHeaders {
		headers[i] = st.Render(st.NewStyle().Bold(true).Foreground(lipgloss.Color(colorYellow)), h)
	}

	cells := make([][]string, 0, len(rows))
	for _, r := range rows {
		cells = append(cells, t.rowCells(r))
	}

	tbl := table.New().
		Border(lipgloss.ThickBorder()).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderColumn(false).
		BorderRow(false).
		BorderHeader(true).
		BorderStyle(st.NewStyle().Faint(true)).
		StyleFunc(func(_, col int) lipgloss.Style {
			s := st.NewStyle().Padding(0, 1)
			if col >= 0 && col < len(rightAligned) && rightAligned[col] {
				s = s.Align(lipgloss.Right)
			}
			return s
		}).
		Headers(headers...).
		Rows(cells...)
	return tbl.Render() + "\n"
}

func (t *TableComposer) rowCells(r model.QuoteRow) []string {
	st := t.Styler
	code := st.Fg(colorCyan, r.Code)
	if !r.Available {
		return []string{code, r.Name, "-", "-", "-", "-", st.Dim(Placeholder)}
	}
	price := "-"
	if r.Price != 0 {
		price = st.Fg(colorCyan, FormatValue(r.Price))
	}
	return []string{
		code,
		r.Name,
		price,
		t.changeText(r.ChangePct),
		Human(r.Volume),
		Human(r.MarketCap),
		t.Spark.Render(r.SparkSeries),
	}
}

func (t *TableComposer) changeText(pct float64) string {
	st := t.Styler
	s := FormatChangePct(pct)
	switch {
	case pct > 0:
		return st.Render(st.NewStyle().Bold(true).Foreground(lipgloss.Color(colorGreen)), s)
	case pct < 0:
		return st.Render(st.NewStyle().Bold(true).Foreground(lipgloss.Color(colorRed)), s)
	}
	return st.Dim(s)
}
