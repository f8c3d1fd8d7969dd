package dashboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"QuoteBoard/internal/cache"
	"QuoteBoard/internal/calculator"
	"QuoteBoard/internal/catalog"
	"QuoteBoard/internal/collector"
	"QuoteBoard/internal/model"
	"QuoteBoard/internal/recorder"
	"QuoteBoard/internal/render"
	"QuoteBoard/internal/session"
)

// Options configures a Service.
type Options struct {
	Chart        render.ChartOptions
	TableWidth   int
	TableTTL     time.Duration
	StockWorkers int
	IndexWorkers int
	FetchTimeout time.Duration // bounds one table refresh; zero means unbounded
	Host         string        // public host shown in the usage line
}

// Service renders charts and the quote table for the serving layer.
type Service struct {
	Fetcher   collector.Fetcher
	Collector *collector.Collector
	Recorder  recorder.Recorder
	Session   *session.Calendar
	Now       func() time.Time

	opts   Options
	charts *render.ChartComposer
	tables *render.TableComposer
	views  *cache.Views[int, string]
}

// NewService wires a Service around fetcher. rec may be nil.
func NewService(fetcher collector.Fetcher, rec recorder.Recorder, opts Options) (*Service, error) {
	charts, err := render.NewChartComposer(opts.Chart, render.DefaultPalettes(), opts.Host)
	if err != nil {
		return nil, fmt.Errorf("chart composer: %w", err)
	}
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	s := &Service{
		Fetcher:   fetcher,
		Collector: collector.NewCollector(fetcher),
		Recorder:  rec,
		Session:   session.NewHKEX(),
		opts:      opts,
		charts:    charts,
		tables:    render.NewTableComposer(opts.Chart.Color, opts.TableWidth),
	}
	s.views = &cache.Views[int, string]{TTL: opts.TableTTL, Now: s.now}
	return s, nil
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// RenderChart returns the chart block for code over periodKey, or a localized
// diagnostic. It never fails.
func (s *Service) RenderChart(ctx context.Context, code, periodKey string) string {
	code = catalog.Normalize(code)
	view := &recorder.ChartView{Code: code, Period: periodKey}
	defer s.recordView(view)

	period, err := model.LookupPeriod(periodKey)
	if err != nil {
		view.Outcome = "bad_period"
		return render.UnsupportedPeriod(periodKey)
	}
	view.Period = period.Key

	symbol := catalog.Symbol(code)
	series, err := s.Fetcher.FetchSeries(ctx, symbol, period.ProviderPeriod, period.ProviderInterval)
	if err != nil {
		if !errors.Is(err, model.ErrSymbolNotFound) {
			log.Warn().Str("symbol", symbol).Err(err).Msg("chart fetch failed")
		}
		view.Outcome = "not_found"
		return render.SymbolNotFound(code, symbol)
	}

	ticks := series.Valid()
	if len(ticks) == 0 {
		view.Outcome = "no_data"
		return render.NoPriceData(code)
	}

	out, err := s.charts.Compose(render.ChartInput{
		Code:   code,
		Name:   displayName(code, series),
		Period: period,
		Ticks:  ticks,
	})
	if err != nil {
		view.Outcome = "no_data"
		return render.NoPriceData(code)
	}

	view.Outcome = "ok"
	view.Points = len(ticks)
	if stats, err := calculator.Summarize(ticks); err == nil {
		view.ChangePct = stats.ChangePct
	}
	return out
}

func displayName(code string, series *model.PriceSeries) string {
	if name, ok := catalog.Name(code); ok {
		return name
	}
	if series.Name != "" {
		return series.Name
	}
	return code
}

func (s *Service) recordView(v *recorder.ChartView) {
	if err := s.Recorder.RecordChartView(v); err != nil {
		log.Error().Str("code", v.Code).Err(err).Msg("record chart view")
	}
}

// RenderTable returns the quote table of the top n stocks. The rendered text
// is cached per n for the table TTL.
func (s *Service) RenderTable(ctx context.Context, top int) (string, error) {
	stocks := catalog.Top(top)
	return s.views.Get(ctx, len(stocks), s.tableRefresh(stocks))
}

// Warm refreshes the cached table of every n in tops.
func (s *Service) Warm(ctx context.Context, tops []int) {
	for _, n := range tops {
		stocks := catalog.Top(n)
		slot := s.views.Slot(len(stocks))
		slot.Invalidate()
		if _, err := slot.Get(ctx, s.tableRefresh(stocks)); err != nil {
			log.Error().Int("top", n).Err(err).Msg("warm table")
		}
	}
}

// tableRefresh builds a shared table. The result is cached for every caller,
// so it runs detached from the triggering request's cancellation.
func (s *Service) tableRefresh(stocks []model.Stock) func(context.Context) (string, error) {
	return func(ctx context.Context) (string, error) {
		ctx = context.WithoutCancel(ctx)
		if s.opts.FetchTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, s.opts.FetchTimeout)
			defer cancel()
		}
		return s.buildTable(ctx, stocks), nil
	}
}

func (s *Service) buildTable(ctx context.Context, stocks []model.Stock) string {
	started := time.Now()
	rows := s.Collector.FetchStocks(ctx, stocks, s.opts.StockWorkers)
	indices := s.Collector.FetchIndices(ctx, catalog.Indices, s.opts.IndexWorkers)
	now := s.now()

	out := s.tables.Compose(render.TableInput{
		Rows:      rows,
		Indices:   indices,
		UpdatedAt: now.In(s.Session.Location()),
		Status:    s.Session.Status(now),
	})

	available := 0
	snaps := make([]recorder.QuoteSnapshot, 0, len(rows))
	for i, r := range rows {
		if !r.Available {
			continue
		}
		available++
		snaps = append(snaps, recorder.QuoteSnapshot{
			Symbol:    stocks[i].Symbol,
			Price:     r.Price,
			ChangePct: r.ChangePct,
			Volume:    r.Volume,
			MarketCap: r.MarketCap,
		})
	}
	if err := s.Recorder.RecordQuotes(now, snaps); err != nil {
		log.Error().Err(err).Msg("record quotes")
	}

	log.Info().
		Int("stocks", len(stocks)).
		Int("available", available).
		Dur("took", time.Since(started)).
		Msg("table refreshed")
	return out
}
