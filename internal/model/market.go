package model

import (
	"math"
	"time"
)

// Tick represents a single sampled observation. Missing provider values are NaN.
type Tick struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// PriceSeries holds the ticks of one symbol for one period/interval pair.
type PriceSeries struct {
	Symbol    string
	Name      string // provider short/long name, may be empty
	Period    string
	Interval  string
	Ticks     []Tick
	FetchedAt time.Time
}

// Valid returns the ticks that carry a close, in order. A missing high or low
// is replaced by the close of the same tick.
func (s *PriceSeries) Valid() []Tick {
	out := make([]Tick, 0, len(s.Ticks))
	for _, t := range s.Ticks {
		if math.IsNaN(t.Close) {
			continue
		}
		if math.IsNaN(t.High) {
			t.High = t.Close
		}
		if math.IsNaN(t.Low) {
			t.Low = t.Close
		}
		out = append(out, t)
	}
	return out
}

// Closes returns the non-missing closes in order.
func (s *PriceSeries) Closes() []float64 {
	closes := make([]float64, 0, len(s.Ticks))
	for _, t := range s.Ticks {
		if !math.IsNaN(t.Close) {
			closes = append(closes, t.Close)
		}
	}
	return closes
}

// Quote is the latest snapshot of a symbol plus its recent intraday closes.
type Quote struct {
	Symbol       string
	Name         string
	Price        float64
	PrevClose    float64
	ChangePct    float64
	Volume       float64
	MarketCap    float64
	RecentCloses []float64
	FetchedAt    time.Time
}

// ComputeChange fills ChangePct from Price and PrevClose.
func (q *Quote) ComputeChange() {
	if q.PrevClose == 0 {
		q.ChangePct = 0
		return
	}
	q.ChangePct = (q.Price - q.PrevClose) / q.PrevClose * 100
}

// Stock is one entry of the tracked equity list.
type Stock struct {
	Code   string
	Name   string
	Symbol string
}

// Index is one tracked market index.
type Index struct {
	Symbol string
	Name   string
}

// QuoteRow is one row of the summary table. Available is false when the
// symbol's fetch failed; the row then renders as placeholders.
type QuoteRow struct {
	Code        string
	Name        string
	Price       float64
	ChangePct   float64
	Volume      float64
	MarketCap   float64
	SparkSeries []float64
	Available   bool
}

// NewQuoteRow builds a table row for stock from q, which may be nil.
func NewQuoteRow(stock Stock, q *Quote) QuoteRow {
	row := QuoteRow{Code: stock.Code, Name: stock.Name}
	if q == nil {
		return row
	}
	row.Price = q.Price
	row.ChangePct = q.ChangePct
	row.Volume = q.Volume
	row.MarketCap = q.MarketCap
	row.SparkSeries = q.RecentCloses
	row.Available = true
	return row
}

// IndexRow is one entry of the index summary header.
type IndexRow struct {
	Symbol    string
	Name      string
	Price     float64
	ChangePct float64
	Available bool
}

// NewIndexRow builds a header entry for idx from q, which may be nil.
func NewIndexRow(idx Index, q *Quote) IndexRow {
	row := IndexRow{Symbol: idx.Symbol, Name: idx.Name}
	if q == nil {
		return row
	}
	row.Price = q.Price
	row.ChangePct = q.ChangePct
	row.Available = true
	return row
}

// SummaryStats are the statistics shown around a single-symbol chart.
// HighIndex and LowIndex point at the first tick attaining the extremum.
type SummaryStats struct {
	Begin     float64
	End       float64
	High      float64
	Low       float64
	HighIndex int
	LowIndex  int
	Avg       float64
	Median    float64
	Change    float64
	ChangePct float64
}
