package collector

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"QuoteBoard/internal/model"
)

func TestCollector_FetchStocks_FailureIsRowScoped(t *testing.T) {
	ctrl := gomock.NewController(t)
	fetcher := NewMockFetcher(ctrl)

	stocks := []model.Stock{
		{Code: "0700", Name: "腾讯控股", Symbol: "0700.HK"},
		{Code: "9988", Name: "阿里巴巴-W", Symbol: "9988.HK"},
		{Code: "0005", Name: "汇丰控股", Symbol: "0005.HK"},
		{Code: "1299", Name: "友邦保险", Symbol: "1299.HK"},
		{Code: "0941", Name: "中国移动", Symbol: "0941.HK"},
	}
	for i, s := range stocks {
		if i == 2 {
			fetcher.EXPECT().FetchQuote(gomock.Any(), s.Symbol).
				Return(nil, model.ErrFetchUnavailable)
			continue
		}
		fetcher.EXPECT().FetchQuote(gomock.Any(), s.Symbol).
			Return(&model.Quote{Symbol: s.Symbol, Price: float64(100 + i)}, nil)
	}
	fetcher.EXPECT().Name().Return("mock").AnyTimes()

	rows := NewCollector(fetcher).FetchStocks(context.Background(), stocks, 12)
	require.Len(t, rows, 5)
	for i, r := range rows {
		assert.Equal(t, stocks[i].Code, r.Code)
		if i == 2 {
			assert.False(t, r.Available)
			continue
		}
		assert.True(t, r.Available)
		assert.Equal(t, float64(100+i), r.Price)
	}
}

// slowFetcher records the peak number of concurrent FetchQuote calls.
type slowFetcher struct {
	inFlight atomic.Int32
	peak     atomic.Int32
}

func (s *slowFetcher) Name() string { return "slow" }

func (s *slowFetcher) FetchSeries(context.Context, string, string, string) (*model.PriceSeries, error) {
	return nil, errors.New("unused")
}

func (s *slowFetcher) FetchQuote(_ context.Context, symbol string) (*model.Quote, error) {
	n := s.inFlight.Add(1)
	defer s.inFlight.Add(-1)
	for {
		p := s.peak.Load()
		if n <= p || s.peak.CompareAndSwap(p, n) {
			break
		}
	}
	time.Sleep(5 * time.Millisecond)
	if symbol == "panic" {
		panic("boom")
	}
	return &model.Quote{Symbol: symbol}, nil
}

func TestCollector_FetchQuotes_Bounded(t *testing.T) {
	f := &slowFetcher{}
	symbols := make([]string, 20)
	for i := range symbols {
		symbols[i] = string(rune('A' + i))
	}
	quotes := NewCollector(f).FetchQuotes(context.Background(), symbols, 4)

	require.Len(t, quotes, 20)
	for i, q := range quotes {
		require.NotNil(t, q)
		assert.Equal(t, symbols[i], q.Symbol)
	}
	assert.LessOrEqual(t, f.peak.Load(), int32(4))
}

func TestCollector_FetchQuotes_PanicIsIsolated(t *testing.T) {
	quotes := NewCollector(&slowFetcher{}).FetchQuotes(context.Background(), []string{"a", "panic", "b"}, 2)
	require.Len(t, quotes, 3)
	assert.NotNil(t, quotes[0])
	assert.Nil(t, quotes[1])
	assert.NotNil(t, quotes[2])
}

func TestCollector_FetchIndices(t *testing.T) {
	f := &StaticFetcher{Missing: map[string]bool{"^HSCE": true}}
	rows := NewCollector(f).FetchIndices(context.Background(), []model.Index{
		{Symbol: "^HSI", Name: "恒生指数"},
		{Symbol: "^HSCE", Name: "国企指数"},
	}, 4)
	require.Len(t, rows, 2)
	assert.True(t, rows[0].Available)
	assert.False(t, rows[1].Available)
	assert.Equal(t, "国企指数", rows[1].Name)
}

func TestStaticFetcher(t *testing.T) {
	now := time.Date(2024, 3, 4, 16, 0, 0, 0, time.UTC)
	f := &StaticFetcher{Now: func() time.Time { return now }}

	s, err := f.FetchSeries(context.Background(), "0700.HK", "1mo", "1d")
	require.NoError(t, err)
	require.Len(t, s.Ticks, 60)
	assert.Equal(t, now, s.Ticks[59].Time)
	assert.True(t, s.Ticks[0].Time.Before(s.Ticks[1].Time))

	again, err := f.FetchSeries(context.Background(), "0700.HK", "1mo", "1d")
	require.NoError(t, err)
	assert.Equal(t, s.Ticks, again.Ticks)

	q, err := f.FetchQuote(context.Background(), "0700.HK")
	require.NoError(t, err)
	assert.NotZero(t, q.Price)
	assert.Len(t, q.RecentCloses, 35)

	f.Missing = map[string]bool{"0700.HK": true}
	_, err = f.FetchSeries(context.Background(), "0700.HK", "1mo", "1d")
	assert.True(t, errors.Is(err, model.ErrSymbolNotFound))
}

func TestNewFetcher(t *testing.T) {
	f, err := NewFetcher("", "", time.Second)
	require.NoError(t, err)
	assert.Equal(t, "yahoo", f.Name())

	f, err = NewFetcher("static", "", time.Second)
	require.NoError(t, err)
	assert.Equal(t, "static", f.Name())

	_, err = NewFetcher("bloomberg", "", time.Second)
	assert.Error(t, err)
}
