package calculator

import (
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"QuoteBoard/internal/model"
)

// Summarize derives the chart statistics from ticks that all carry a close,
// high and low (see model.PriceSeries.Valid).
func Summarize(ticks []model.Tick) (model.SummaryStats, error) {
	if len(ticks) == 0 {
		return model.SummaryStats{}, model.ErrNoPriceData
	}
	closes := extractCloses(ticks)
	highs := extractHighs(ticks)
	lows := extractLows(ticks)

	hi := floats.MaxIdx(highs)
	lo := floats.MinIdx(lows)

	sorted := make([]float64, len(closes))
	copy(sorted, closes)
	sort.Float64s(sorted)

	s := model.SummaryStats{
		Begin:     closes[0],
		End:       closes[len(closes)-1],
		High:      highs[hi],
		Low:       lows[lo],
		HighIndex: hi,
		LowIndex:  lo,
		Avg:       stat.Mean(closes, nil),
		Median:    sorted[len(sorted)/2],
	}
	s.Change = s.End - s.Begin
	if s.Begin != 0 {
		s.ChangePct = s.Change / s.Begin * 100
	}
	return s, nil
}
