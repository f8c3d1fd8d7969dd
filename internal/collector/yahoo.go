package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"sort"
	"time"
	_ "time/tzdata"

	finance "github.com/piquette/finance-go"
	"github.com/piquette/finance-go/equity"
	"github.com/rs/zerolog/log"

	"QuoteBoard/internal/model"
)

const defaultYahooBaseURL = "https://query1.finance.yahoo.com"

// EquityLookup returns the provider's equity record for a symbol.
type EquityLookup func(symbol string) (*finance.Equity, error)

// YahooFetcher implements Fetcher using the Yahoo Finance chart API. Market cap
// and names come from the quote API through Equity, when set.
type YahooFetcher struct {
	Client  *http.Client
	BaseURL string
	Equity  EquityLookup
}

// NewYahooFetcher creates a new Yahoo Finance fetcher.
func NewYahooFetcher(proxyURL string, timeout time.Duration) *YahooFetcher {
	transport := &http.Transport{
		MaxIdleConns:        64,
		MaxIdleConnsPerHost: 16,
		IdleConnTimeout:     90 * time.Second,
	}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &YahooFetcher{
		Client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		BaseURL: defaultYahooBaseURL,
		Equity:  equity.Get,
	}
}

func (f *YahooFetcher) Name() string { return "yahoo" }

// yahooChart is the response structure from Yahoo Finance chart API.
type yahooChart struct {
	Chart struct {
		Result []yahooResult `json:"result"`
		Error  *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

type yahooResult struct {
	Meta struct {
		Symbol               string   `json:"symbol"`
		ShortName            string   `json:"shortName"`
		LongName             string   `json:"longName"`
		ExchangeTimezoneName string   `json:"exchangeTimezoneName"`
		GMTOffset            int      `json:"gmtoffset"`
		RegularMarketPrice   *float64 `json:"regularMarketPrice"`
		RegularMarketVolume  *float64 `json:"regularMarketVolume"`
		ChartPreviousClose   *float64 `json:"chartPreviousClose"`
		PreviousClose        *float64 `json:"previousClose"`
	} `json:"meta"`
	Timestamp  []int64 `json:"timestamp"`
	Indicators struct {
		Quote []struct {
			Open   []*float64 `json:"open"`
			High   []*float64 `json:"high"`
			Low    []*float64 `json:"low"`
			Close  []*float64 `json:"close"`
			Volume []*float64 `json:"volume"`
		} `json:"quote"`
	} `json:"indicators"`
}

func (r *yahooResult) location() *time.Location {
	if r.Meta.ExchangeTimezoneName != "" {
		if loc, err := time.LoadLocation(r.Meta.ExchangeTimezoneName); err == nil {
			return loc
		}
	}
	return time.FixedZone("exchange", r.Meta.GMTOffset)
}

func at(vals []*float64, i int) float64 {
	if i >= len(vals) || vals[i] == nil {
		return math.NaN()
	}
	return *vals[i]
}

func (f *YahooFetcher) fetchChart(ctx context.Context, symbol, rng, interval string) (*yahooResult, error) {
	u := fmt.Sprintf("%s/v8/finance/chart/%s?interval=%s&range=%s",
		f.BaseURL, url.PathEscape(symbol), url.QueryEscape(interval), url.QueryEscape(rng))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("yahoo fetch %s: %w: %w", symbol, model.ErrFetchUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("yahoo read body: %w: %w", model.ErrFetchUnavailable, err)
	}

	var chart yahooChart
	decodeErr := json.Unmarshal(body, &chart)
	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("yahoo %s: %w", symbol, model.ErrSymbolNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("yahoo: status %d: %w", resp.StatusCode, model.ErrFetchUnavailable)
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("yahoo decode: %w: %w", model.ErrFetchUnavailable, decodeErr)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error %s: %s: %w", chart.Chart.Error.Code, chart.Chart.Error.Description, model.ErrSymbolNotFound)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Timestamp) == 0 {
		return nil, fmt.Errorf("yahoo %s: no data returned: %w", symbol, model.ErrSymbolNotFound)
	}
	return &chart.Chart.Result[0], nil
}

func toTicks(r *yahooResult) []model.Tick {
	loc := r.location()
	ticks := make([]model.Tick, 0, len(r.Timestamp))
	if len(r.Indicators.Quote) == 0 {
		return ticks
	}
	q := r.Indicators.Quote[0]
	for i, ts := range r.Timestamp {
		ticks = append(ticks, model.Tick{
			Time:   time.Unix(ts, 0).In(loc),
			Open:   at(q.Open, i),
			High:   at(q.High, i),
			Low:    at(q.Low, i),
			Close:  at(q.Close, i),
			Volume: at(q.Volume, i),
		})
	}
	sort.SliceStable(ticks, func(i, j int) bool { return ticks[i].Time.Before(ticks[j].Time) })
	return ticks
}

// FetchSeries fetches one chart. Bars with null prices are kept as NaN so the
// caller can tell "no such symbol" from "no usable prices".
func (f *YahooFetcher) FetchSeries(ctx context.Context, symbol, period, interval string) (*model.PriceSeries, error) {
	r, err := f.fetchChart(ctx, symbol, period, interval)
	if err != nil {
		return nil, err
	}
	name := r.Meta.ShortName
	if name == "" {
		name = r.Meta.LongName
	}
	return &model.PriceSeries{
		Symbol:    symbol,
		Name:      name,
		Period:    period,
		Interval:  interval,
		Ticks:     toTicks(r),
		FetchedAt: time.Now(),
	}, nil
}

// FetchQuote combines the intraday chart (price, previous close, volume), the
// 5-day hourly chart (spark series) and, when available, the equity record
// (market cap, name).
func (f *YahooFetcher) FetchQuote(ctx context.Context, symbol string) (*model.Quote, error) {
	day, err := f.fetchChart(ctx, symbol, "1d", "5m")
	if err != nil {
		return nil, fmt.Errorf("fetch quote %s: %w", symbol, err)
	}

	q := &model.Quote{Symbol: symbol, Name: day.Meta.ShortName, FetchedAt: time.Now()}
	switch {
	case day.Meta.RegularMarketPrice != nil:
		q.Price = *day.Meta.RegularMarketPrice
	default:
		closes := (&model.PriceSeries{Ticks: toTicks(day)}).Closes()
		if len(closes) == 0 {
			return nil, fmt.Errorf("fetch quote %s: %w", symbol, model.ErrNoPriceData)
		}
		q.Price = closes[len(closes)-1]
	}
	switch {
	case day.Meta.PreviousClose != nil:
		q.PrevClose = *day.Meta.PreviousClose
	case day.Meta.ChartPreviousClose != nil:
		q.PrevClose = *day.Meta.ChartPreviousClose
	}
	if day.Meta.RegularMarketVolume != nil {
		q.Volume = *day.Meta.RegularMarketVolume
	}

	if week, err := f.fetchChart(ctx, symbol, "5d", "1h"); err != nil {
		log.Warn().Str("symbol", symbol).Err(err).Msg("spark series unavailable")
	} else {
		q.RecentCloses = (&model.PriceSeries{Ticks: toTicks(week)}).Closes()
	}

	if f.Equity != nil {
		if eq, err := f.Equity(symbol); err != nil {
			log.Debug().Str("symbol", symbol).Err(err).Msg("equity lookup failed")
		} else if eq != nil {
			q.MarketCap = float64(eq.MarketCap)
			if eq.ShortName != "" {
				q.Name = eq.ShortName
			}
			if q.Volume == 0 {
				q.Volume = float64(eq.RegularMarketVolume)
			}
			if q.PrevClose == 0 {
				q.PrevClose = eq.RegularMarketPreviousClose
			}
		}
	}

	q.ComputeChange()
	return q, nil
}
