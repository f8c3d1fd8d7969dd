package model

import "errors"

var (
	ErrUnsupportedPeriod = errors.New("unsupported period")
	ErrSymbolNotFound    = errors.New("symbol not found")
	ErrNoPriceData       = errors.New("no price data")
	ErrFetchUnavailable  = errors.New("fetch unavailable")
)
