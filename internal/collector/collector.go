package collector

import (
	"context"
	"fmt"
	"hash/fnv"
	"math"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"QuoteBoard/internal/model"
)

// StaticFetcher returns deterministic synthetic data derived from the symbol.
// It backs the offline provider and tests.
type StaticFetcher struct {
	Base    float64
	Missing map[string]bool // symbols reported as not found
	Now     func() time.Time
}

func (s *StaticFetcher) Name() string { return "static" }

func (s *StaticFetcher) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *StaticFetcher) seed(symbol string) float64 {
	h := fnv.New32a()
	h.Write([]byte(symbol))
	return float64(h.Sum32() % 1000)
}

func (s *StaticFetcher) closes(symbol string, count int) []float64 {
	base := s.Base
	if base == 0 {
		base = 50 + s.seed(symbol)/4
	}
	phase := s.seed(symbol) / 100
	out := make([]float64, count)
	for i := range out {
		x := float64(i)/3 + phase
		out[i] = base * (1 + 0.03*math.Sin(x) + 0.01*math.Cos(2.7*x))
	}
	return out
}

var staticSteps = map[string]time.Duration{
	"5m":  5 * time.Minute,
	"1h":  time.Hour,
	"1d":  24 * time.Hour,
	"1wk": 7 * 24 * time.Hour,
	"1mo": 30 * 24 * time.Hour,
}

func (s *StaticFetcher) FetchSeries(_ context.Context, symbol, period, interval string) (*model.PriceSeries, error) {
	if s.Missing[symbol] {
		return nil, fmt.Errorf("static %s: %w", symbol, model.ErrSymbolNotFound)
	}
	step, ok := staticSteps[interval]
	if !ok {
		step = 24 * time.Hour
	}
	const count = 60
	end := s.now()
	closes := s.closes(symbol+period, count)
	ticks := make([]model.Tick, count)
	for i, c := range closes {
		ticks[i] = model.Tick{
			Time:   end.Add(-time.Duration(count-1-i) * step),
			Open:   c * 0.999,
			High:   c * 1.004,
			Low:    c * 0.996,
			Close:  c,
			Volume: 1e6,
		}
	}
	return &model.PriceSeries{Symbol: symbol, Period: period, Interval: interval, Ticks: ticks, FetchedAt: end}, nil
}

func (s *StaticFetcher) FetchQuote(_ context.Context, symbol string) (*model.Quote, error) {
	if s.Missing[symbol] {
		return nil, fmt.Errorf("static %s: %w", symbol, model.ErrFetchUnavailable)
	}
	spark := s.closes(symbol, 35)
	q := &model.Quote{
		Symbol:       symbol,
		Price:        spark[len(spark)-1],
		PrevClose:    spark[len(spark)-8],
		Volume:       1e6 + s.seed(symbol)*1e4,
		MarketCap:    1e11 + s.seed(symbol)*1e9,
		RecentCloses: spark,
		FetchedAt:    s.now(),
	}
	q.ComputeChange()
	return q, nil
}

// Collector fetches quote batches over a bounded pool.
type Collector struct {
	Fetcher Fetcher
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher) *Collector {
	return &Collector{Fetcher: fetcher}
}

// FetchQuotes fetches every symbol with at most workers requests in flight.
// The result is aligned with symbols; a symbol whose fetch failed is nil and
// never affects the others.
func (c *Collector) FetchQuotes(ctx context.Context, symbols []string, workers int) []*model.Quote {
	results := make([]*model.Quote, len(symbols))

	var g errgroup.Group
	g.SetLimit(max(workers, 1))
	for i, sym := range symbols {
		g.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					log.Error().Str("symbol", sym).Interface("panic", r).Msg("quote fetch panicked")
				}
			}()
			q, err := c.Fetcher.FetchQuote(ctx, sym)
			if err != nil {
				log.Warn().Str("symbol", sym).Str("fetcher", c.Fetcher.Name()).Err(err).Msg("quote fetch failed")
				return nil
			}
			results[i] = q
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// FetchStocks returns one table row per stock, in order.
func (c *Collector) FetchStocks(ctx context.Context, stocks []model.Stock, workers int) []model.QuoteRow {
	symbols := make([]string, len(stocks))
	for i, s := range stocks {
		symbols[i] = s.Symbol
	}
	quotes := c.FetchQuotes(ctx, symbols, workers)
	rows := make([]model.QuoteRow, len(stocks))
	for i, s := range stocks {
		rows[i] = model.NewQuoteRow(s, quotes[i])
	}
	return rows
}

// FetchIndices returns one header entry per index, in order.
func (c *Collector) FetchIndices(ctx context.Context, indices []model.Index, workers int) []model.IndexRow {
	symbols := make([]string, len(indices))
	for i, idx := range indices {
		symbols[i] = idx.Symbol
	}
	quotes := c.FetchQuotes(ctx, symbols, workers)
	rows := make([]model.IndexRow, len(indices))
	for i, idx := range indices {
		rows[i] = model.NewIndexRow(idx, quotes[i])
	}
	return rows
}
