package recorder

import "time"

// QuoteSnapshot is one symbol's quote at a table refresh.
type QuoteSnapshot struct {
	Symbol    string
	Price     float64
	ChangePct float64
	Volume    float64
	MarketCap float64
}

// ChartView records one rendered chart request.
type ChartView struct {
	Code      string
	Period    string
	Points    int
	ChangePct float64
	Outcome   string // "ok", "not_found", "no_data", "bad_period"
}

// Recorder persists quote history and chart requests for later analysis.
type Recorder interface {
	RecordQuotes(at time.Time, quotes []QuoteSnapshot) error
	RecordChartView(evt *ChartView) error
	Close() error
}
