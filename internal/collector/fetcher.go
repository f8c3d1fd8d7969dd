package collector

import (
	"context"
	"fmt"
	"time"

	"QuoteBoard/internal/model"
)

//go:generate mockgen -source=fetcher.go -destination=mock_fetcher_test.go -package=collector

// Fetcher retrieves market data for a single symbol.
type Fetcher interface {
	// FetchSeries returns the ticks of symbol over a provider period at the
	// given interval. An unknown symbol yields model.ErrSymbolNotFound.
	FetchSeries(ctx context.Context, symbol, period, interval string) (*model.PriceSeries, error)
	// FetchQuote returns the latest quote of symbol with its recent intraday closes.
	FetchQuote(ctx context.Context, symbol string) (*model.Quote, error)
	Name() string
}

// NewFetcher returns the fetcher for a configured provider name.
func NewFetcher(provider, proxyURL string, timeout time.Duration) (Fetcher, error) {
	switch provider {
	case "", "yahoo":
		return NewYahooFetcher(proxyURL, timeout), nil
	case "static":
		return &StaticFetcher{}, nil
	default:
		return nil, fmt.Errorf("unknown data provider %q", provider)
	}
}
