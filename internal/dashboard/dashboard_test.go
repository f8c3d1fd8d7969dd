package dashboard

import (
	"context"
	"math"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"QuoteBoard/internal/collector"
	"QuoteBoard/internal/model"
	"QuoteBoard/internal/recorder"
	"QuoteBoard/internal/render"
)

var fixedNow = time.Date(2024, 3, 6, 2, 0, 0, 0, time.UTC)

type countingFetcher struct {
	collector.StaticFetcher
	quotes atomic.Int32
}

func (c *countingFetcher) FetchQuote(ctx context.Context, symbol string) (*model.Quote, error) {
	c.quotes.Add(1)
	return c.StaticFetcher.FetchQuote(ctx, symbol)
}

// ctxFetcher fails every call made on a done context.
type ctxFetcher struct{ collector.StaticFetcher }

func (c *ctxFetcher) FetchQuote(ctx context.Context, symbol string) (*model.Quote, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return c.StaticFetcher.FetchQuote(ctx, symbol)
}

type emptyFetcher struct{ collector.StaticFetcher }

func (emptyFetcher) FetchSeries(_ context.Context, symbol, period, interval string) (*model.PriceSeries, error) {
	nan := math.NaN()
	return &model.PriceSeries{Symbol: symbol, Ticks: []model.Tick{
		{Time: fixedNow, Open: nan, High: nan, Low: nan, Close: nan},
	}}, nil
}

type memRecorder struct {
	mu     sync.Mutex
	quotes []recorder.QuoteSnapshot
	views  []recorder.ChartView
}

func (m *memRecorder) RecordQuotes(_ time.Time, q []recorder.QuoteSnapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.quotes = append(m.quotes, q...)
	return nil
}

func (m *memRecorder) RecordChartView(v *recorder.ChartView) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.views = append(m.views, *v)
	return nil
}

func (m *memRecorder) Close() error { return nil }

func testOptions() Options {
	chart := render.DefaultChartOptions()
	chart.Color = false
	return Options{
		Chart:        chart,
		TableWidth:   100,
		TableTTL:     time.Minute,
		StockWorkers: 4,
		IndexWorkers: 2,
		FetchTimeout: 5 * time.Second,
		Host:         "quotes.example",
	}
}

func newTestService(t *testing.T, f collector.Fetcher, rec recorder.Recorder) *Service {
	t.Helper()
	s, err := NewService(f, rec, testOptions())
	require.NoError(t, err)
	s.Now = func() time.Time { return fixedNow }
	return s
}

func TestRenderChart(t *testing.T) {
	rec := &memRecorder{}
	s := newTestService(t, &collector.StaticFetcher{Now: func() time.Time { return fixedNow }}, rec)

	out := s.RenderChart(context.Background(), "700", "1MO")
	assert.Contains(t, out, "▶ 0700 腾讯控股 ")
	assert.Contains(t, out, "+1个月")
	assert.Contains(t, out, "用法: curl quotes.example/<代码>[@时间范围]")
	assert.NotContains(t, out, "\x1b[")

	body := 0
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "  │ ") {
			body++
		}
	}
	assert.Equal(t, 25+2, body)

	require.Len(t, rec.views, 1)
	assert.Equal(t, "ok", rec.views[0].Outcome)
	assert.Equal(t, "1mo", rec.views[0].Period)
	assert.Equal(t, 60, rec.views[0].Points)
}

func TestRenderChart_EveryPeriod(t *testing.T) {
	s := newTestService(t, &collector.StaticFetcher{Now: func() time.Time { return fixedNow }}, nil)
	for _, p := range model.Periods() {
		out := s.RenderChart(context.Background(), "0005", p.Key)
		assert.Contains(t, out, "+"+p.Label, p.Key)
		assert.Contains(t, out, "median:", p.Key)
	}
}

func TestRenderChart_Diagnostics(t *testing.T) {
	rec := &memRecorder{}
	s := newTestService(t, &collector.StaticFetcher{Missing: map[string]bool{"9999.HK": true}}, rec)
	ctx := context.Background()

	assert.Equal(t, render.UnsupportedPeriod("10y"), s.RenderChart(ctx, "0700", "10y"))
	assert.Equal(t, render.SymbolNotFound("9999", "9999.HK"), s.RenderChart(ctx, "9999", "1mo"))

	empty := newTestService(t, &emptyFetcher{}, rec)
	assert.Equal(t, render.NoPriceData("0700"), empty.RenderChart(ctx, "0700", "1d"))

	require.Len(t, rec.views, 3)
	assert.Equal(t, "bad_period", rec.views[0].Outcome)
	assert.Equal(t, "not_found", rec.views[1].Outcome)
	assert.Equal(t, "no_data", rec.views[2].Outcome)
}

func TestRenderChart_UnknownCodeFallsBackToCode(t *testing.T) {
	f := &collector.StaticFetcher{}
	s := newTestService(t, f, nil)
	out := s.RenderChart(context.Background(), "8888", "5d")
	assert.Contains(t, out, "▶ 8888 8888 ")
}

func TestRenderTable(t *testing.T) {
	rec := &memRecorder{}
	f := &countingFetcher{StaticFetcher: collector.StaticFetcher{
		Missing: map[string]bool{"0005.HK": true},
	}}
	s := newTestService(t, f, rec)

	out, err := s.RenderTable(context.Background(), 5)
	require.NoError(t, err)
	assert.Contains(t, out, "港股实时行情")
	assert.Contains(t, out, "恒生指数")
	assert.Contains(t, out, "腾讯控股")
	assert.Contains(t, out, "更新时间: 2024-03-06 10:00:00")
	assert.Contains(t, out, "────────")
	assert.Equal(t, int32(5+3), f.quotes.Load())
	assert.Len(t, rec.quotes, 4)
}

func TestRenderTable_CachedPerTop(t *testing.T) {
	f := &countingFetcher{}
	s := newTestService(t, f, nil)
	now := fixedNow
	s.Now = func() time.Time { return now }
	ctx := context.Background()

	first, err := s.RenderTable(ctx, 3)
	require.NoError(t, err)
	second, err := s.RenderTable(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, int32(6), f.quotes.Load())

	_, err = s.RenderTable(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, int32(6+7), f.quotes.Load())

	now = now.Add(2 * time.Minute)
	_, err = s.RenderTable(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, int32(6+7+6), f.quotes.Load())
}

func TestWarm(t *testing.T) {
	f := &countingFetcher{}
	s := newTestService(t, f, nil)
	ctx := context.Background()

	_, err := s.RenderTable(ctx, 2)
	require.NoError(t, err)
	s.Warm(ctx, []int{2})
	assert.Equal(t, int32(10), f.quotes.Load())

	_, err = s.RenderTable(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, int32(10), f.quotes.Load())
}

func TestRenderTable_CancelledCallerDoesNotPoisonCache(t *testing.T) {
	rec := &memRecorder{}
	s := newTestService(t, &ctxFetcher{}, rec)

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	first, err := s.RenderTable(cancelled, 5)
	require.NoError(t, err)
	assert.NotContains(t, first, "获取指数数据失败")
	assert.Len(t, rec.quotes, 5)

	second, err := s.RenderTable(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.NotContains(t, second, "获取指数数据失败")
}

func TestWarm_CancelledContext(t *testing.T) {
	rec := &memRecorder{}
	s := newTestService(t, &ctxFetcher{}, rec)

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	s.Warm(cancelled, []int{3})

	out, err := s.RenderTable(context.Background(), 3)
	require.NoError(t, err)
	assert.NotContains(t, out, "获取指数数据失败")
	assert.Len(t, rec.quotes, 3)
}
