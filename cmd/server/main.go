package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"QuoteBoard/internal/collector"
	"QuoteBoard/internal/config"
	"QuoteBoard/internal/dashboard"
	"QuoteBoard/internal/logging"
	"QuoteBoard/internal/recorder"
	"QuoteBoard/internal/scheduler"
	"QuoteBoard/internal/server"
)

func main() {
	_ = godotenv.Load()

	// Load config
	cfgPath := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	logging.Setup(cfg.Log.Level, cfg.Log.Pretty)
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("config validation")
	}
	log.Info().Str("config", cfgPath).Msg("QuoteBoard starting")

	fetcher, err := collector.NewFetcher(cfg.DataSource.Provider, cfg.DataSource.Proxy, cfg.Timeout())
	if err != nil {
		log.Fatal().Err(err).Msg("init fetcher")
	}
	log.Info().Str("fetcher", fetcher.Name()).Msg("data source ready")

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

	// Context for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Schedule.WarmCron != "" {
		sched := scheduler.NewScheduler(ctx, svc, cfg.Schedule.WarmTops)
		if err := sched.RegisterWarm(cfg.Schedule.WarmCron); err != nil {
			log.Fatal().Err(err).Msg("register cron tasks")
		}
		sched.Start()
		defer sched.Stop()
		go sched.RunWarmNow()
	}

	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	srv := server.NewServer(svc, cfg.Table.DefaultTop).HTTPServer(fmt.Sprintf(":%d", cfg.Server.Port))

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msgf("curl %s  # 行情列表", cfg.Server.PublicHost)
		log.Info().Msgf("curl %s/0700@5d  # 个股走势", cfg.Server.PublicHost)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("http server")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received, stopping...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	log.Info().Msg("QuoteBoard stopped")
}
