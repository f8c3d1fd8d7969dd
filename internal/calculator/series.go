package calculator

import "QuoteBoard/internal/model"

func extractCloses(ticks []model.Tick) []float64 {
	closes := make([]float64, len(ticks))
	for i, t := range ticks {
		closes[i] = t.Close
	}
	return closes
}

func extractHighs(ticks []model.Tick) []float64 {
	highs := make([]float64, len(ticks))
	for i, t := range ticks {
		highs[i] = t.High
	}
	return highs
}

func extractLows(ticks []model.Tick) []float64 {
	lows := make([]float64, len(ticks))
	for i, t := range ticks {
		lows[i] = t.Low
	}
	return lows
}
