package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"QuoteBoard/internal/render"
)

// Config holds all application configuration.
type Config struct {
	Server struct {
		Port       int    `yaml:"port"`
		PublicHost string `yaml:"public_host"`
	} `yaml:"server"`
	DataSource struct {
		Provider     string `yaml:"provider"` // "yahoo" or "static"
		Proxy        string `yaml:"proxy"`
		TimeoutSec   int    `yaml:"timeout_sec"`
		StockWorkers int    `yaml:"stock_workers"`
		IndexWorkers int    `yaml:"index_workers"`
	} `yaml:"data_source"`
	Cache struct {
		TableTTLSec int `yaml:"table_ttl_sec"`
	} `yaml:"cache"`
	Chart render.ChartOptions `yaml:"chart"`
	Table struct {
		DefaultTop int `yaml:"default_top"`
		Width      int `yaml:"width"`
	} `yaml:"table"`
	Schedule struct {
		WarmCron string `yaml:"warm_cron"`
		WarmTops []int  `yaml:"warm_tops"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Log struct {
		Level  string `yaml:"level"`
		Pretty bool   `yaml:"pretty"`
	} `yaml:"log"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{}
	cfg.Server.Port = 8080
	cfg.Server.PublicHost = "localhost:8080"
	cfg.DataSource.Provider = "yahoo"
	cfg.DataSource.TimeoutSec = 30
	cfg.DataSource.StockWorkers = 12
	cfg.DataSource.IndexWorkers = 4
	cfg.Cache.TableTTLSec = 60
	cfg.Chart = render.DefaultChartOptions()
	cfg.Table.DefaultTop = 30
	cfg.Table.Width = 100
	cfg.Schedule.WarmTops = []int{30}
	cfg.Log.Level = "info"
	return cfg
}

// Load reads config from a YAML file over the defaults, then applies
// environment variable overrides. A missing file is not an error; unknown
// keys are.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if v := os.Getenv("PUBLIC_HOST"); v != "" {
		cfg.Server.PublicHost = v
	}
	if v := os.Getenv("HTTP_PROXY_URL"); v != "" {
		cfg.DataSource.Proxy = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("WARM_CRON"); v != "" {
		cfg.Schedule.WarmCron = v
	}

	return cfg, nil
}

// Validate checks sizes, worker counts and the chart options.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	switch c.DataSource.Provider {
	case "yahoo", "static":
	default:
		return fmt.Errorf("data_source.provider must be yahoo or static, got %q", c.DataSource.Provider)
	}
	if c.DataSource.TimeoutSec <= 0 {
		return fmt.Errorf("data_source.timeout_sec must be positive")
	}
	if c.DataSource.StockWorkers <= 0 || c.DataSource.IndexWorkers <= 0 {
		return fmt.Errorf("data_source worker counts must be positive")
	}
	if c.Cache.TableTTLSec <= 0 {
		return fmt.Errorf("cache.table_ttl_sec must be positive")
	}
	if c.Table.DefaultTop <= 0 {
		return fmt.Errorf("table.default_top must be positive")
	}
	if c.Table.Width <= 0 {
		return fmt.Errorf("table.width must be positive")
	}
	for _, n := range c.Schedule.WarmTops {
		if n <= 0 {
			return fmt.Errorf("schedule.warm_tops must be positive, got %d", n)
		}
	}
	return c.Chart.Validate(render.DefaultPalettes())
}

// Timeout is the data source request timeout.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.DataSource.TimeoutSec) * time.Second
}

// TableTTL is the lifetime of a cached table.
func (c *Config) TableTTL() time.Duration {
	return time.Duration(c.Cache.TableTTLSec) * time.Second
}
