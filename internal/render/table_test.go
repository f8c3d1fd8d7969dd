package render

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"QuoteBoard/internal/model"
)

func testRows() []model.QuoteRow {
	stocks := []model.Stock{
		{Code: "0700", Name: "腾讯控股", Symbol: "0700.HK"},
		{Code: "9988", Name: "阿里巴巴-W", Symbol: "9988.HK"},
		{Code: "0005", Name: "汇丰控股", Symbol: "0005.HK"},
		{Code: "1299", Name: "友邦保险", Symbol: "1299.HK"},
		{Code: "0941", Name: "中国移动", Symbol: "0941.HK"},
	}
	rows := make([]model.QuoteRow, len(stocks))
	for i, s := range stocks {
		var q *model.Quote
		if i != 2 {
			q = &model.Quote{
				Symbol:       s.Symbol,
				Price:        100 + float64(i),
				ChangePct:    float64(i) - 2,
				Volume:       1.5e7,
				MarketCap:    3.2e12,
				RecentCloses: []float64{1, 2, 3, 2},
			}
		}
		rows[i] = model.NewQuoteRow(s, q)
	}
	return rows
}

func linesWith(out, needle string) []string {
	var found []string
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, needle) {
			found = append(found, line)
		}
	}
	return found
}

func TestTableComposer_RowPerSymbol(t *testing.T) {
	tc := NewTableComposer(false, 100)
	rows := testRows()
	out := tc.Compose(TableInput{
		Rows:      rows,
		UpdatedAt: time.Date(2024, 3, 4, 15, 0, 0, 0, time.UTC),
	})

	total := 0
	for _, r := range rows {
		found := linesWith(out, r.Code)
		require.Lenf(t, found, 1, "code %s", r.Code)
		total++
	}
	assert.Equal(t, 5, total)

	placeholder := linesWith(out, "0005")[0]
	assert.Contains(t, placeholder, Placeholder)
	assert.GreaterOrEqual(t, strings.Count(placeholder, " - "), 3)
	assert.NotContains(t, placeholder, "%")

	populated := linesWith(out, "0700")[0]
	assert.Contains(t, populated, "100.00")
	assert.Contains(t, populated, "-2.00%")
	assert.Contains(t, populated, "15.00M")
	assert.Contains(t, populated, "3.20T")
	assert.Contains(t, populated, "███")

	assert.Contains(t, out, "更新时间: 2024-03-04 15:00:00  数据来源: Yahoo Finance")
	for _, h := range tableHeaders {
		assert.Contains(t, out, h)
	}
}

func TestTableComposer_IndexPanel(t *testing.T) {
	tc := NewTableComposer(false, 100)

	out := tc.Compose(TableInput{Indices: []model.IndexRow{
		{Symbol: "^HSI", Name: "恒生指数", Price: 26345.1, ChangePct: 1.2, Available: true},
		{Symbol: "^HSCE", Name: "国企指数"},
		{Symbol: "HSTECH.HK", Name: "恒生科技指数", Price: 5600, ChangePct: -0.4, Available: true},
	}})
	assert.Contains(t, out, tableTitle)
	assert.Contains(t, out, "恒生指数  26,345.10  ▲ +1.20%")
	assert.Contains(t, out, "恒生科技指数  5,600.00  ▼ -0.40%")
	assert.NotContains(t, out, "国企指数")
	assert.NotContains(t, out, indexUnavailable)

	out = tc.Compose(TableInput{Indices: []model.IndexRow{{Symbol: "^HSI", Name: "恒生指数"}}})
	assert.Contains(t, out, indexUnavailable)
}

func TestTableComposer_Status(t *testing.T) {
	tc := NewTableComposer(true, 100)
	out := tc.Compose(TableInput{Rows: testRows(), Status: "交易中"})
	assert.Contains(t, out, "交易中")
	assert.Contains(t, out, "\x1b[")
}
