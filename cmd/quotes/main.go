package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"QuoteBoard/internal/collector"
	"QuoteBoard/internal/config"
	"QuoteBoard/internal/dashboard"
	"QuoteBoard/internal/logging"
	"QuoteBoard/internal/recorder"
)

func main() {
	_ = godotenv.Load()

	cfgPath := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	var top int
	flag.IntVar(&top, "top", cfg.Table.DefaultTop, "number of stocks to show")
	flag.Parse()

	// stdout carries the table only
	logging.Setup(cfg.Log.Level, true)
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("config validation")
	}

	fetcher, err := collector.NewFetcher(cfg.DataSource.Provider, cfg.DataSource.Proxy, cfg.Timeout())
	if err != nil {
		log.Fatal().Err(err).Msg("init fetcher")
	}
	rec := recorder.Open(cfg.Database.SQLitePath)
	defer rec.Close()

	svc, err := dashboard.NewService(fetcher, rec, dashboard.Options{
		Chart:        cfg.Chart,
		TableWidth:   cfg.Table.Width,
		TableTTL:     cfg.TableTTL(),
		StockWorkers: cfg.DataSource.StockWorkers,
		IndexWorkers: cfg.DataSource.IndexWorkers,
		FetchTimeout: cfg.Timeout(),
		Host:         cfg.Server.PublicHost,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("init dashboard")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Fprint(os.Stderr, "正在获取行情数据...\r")
	out, err := svc.RenderTable(ctx, top)
	fmt.Fprint(os.Stderr, "\r\x1b[K")
	if err != nil {
		log.Fatal().Err(err).Msg("render table")
	}
	fmt.Fprint(os.Stdout, out)
}
