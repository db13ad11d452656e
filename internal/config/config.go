package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"CryptoSentry/internal/strategy"
)

// Config holds all application configuration.
type Config struct {
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Providers struct {
		BinanceBaseURL   string `yaml:"binance_base_url"`
		CoinGeckoBaseURL string `yaml:"coingecko_base_url"`
		TimeoutSeconds   int    `yaml:"timeout_seconds"`
		MinIntervalMs    int    `yaml:"min_interval_ms"`
	} `yaml:"providers"`
	Monitor struct {
		IntervalSeconds int `yaml:"interval_seconds"`
	} `yaml:"monitor"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Strategy struct {
		Weights strategy.Weights `yaml:"weights"`
	} `yaml:"strategy"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides, then fills defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("BINANCE_BASE_URL"); v != "" {
		cfg.Providers.BinanceBaseURL = v
	}
	if v := os.Getenv("COINGECKO_BASE_URL"); v != "" {
		cfg.Providers.CoinGeckoBaseURL = v
	}
	if v := os.Getenv("MONITOR_INTERVAL_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Monitor.IntervalSeconds = n
		}
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	if cfg.Providers.TimeoutSeconds <= 0 {
		cfg.Providers.TimeoutSeconds = 10
	}
	if cfg.Providers.MinIntervalMs <= 0 {
		cfg.Providers.MinIntervalMs = 200
	}
	if cfg.Monitor.IntervalSeconds <= 0 {
		cfg.Monitor.IntervalSeconds = 30
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/cryptosentry.db"
	}
	if cfg.Strategy.Weights == (strategy.Weights{}) {
		cfg.Strategy.Weights = strategy.DefaultWeights()
	}

	return cfg, nil
}

// ProviderTimeout returns the per-call timeout as a duration.
func (c *Config) ProviderTimeout() time.Duration {
	return time.Duration(c.Providers.TimeoutSeconds) * time.Second
}

// ProviderMinInterval returns the per-provider pacing interval.
func (c *Config) ProviderMinInterval() time.Duration {
	return time.Duration(c.Providers.MinIntervalMs) * time.Millisecond
}

// MonitorInterval returns the monitor cycle interval.
func (c *Config) MonitorInterval() time.Duration {
	return time.Duration(c.Monitor.IntervalSeconds) * time.Second
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("telegram.bot_token is required")
	}
	if c.Telegram.ChatID == "" {
		return fmt.Errorf("telegram.chat_id is required")
	}
	if c.Monitor.IntervalSeconds <= 0 {
		return fmt.Errorf("monitor.interval_seconds must be positive")
	}
	if err := c.Strategy.Weights.Validate(); err != nil {
		return fmt.Errorf("strategy.weights: %w", err)
	}
	return nil
}
