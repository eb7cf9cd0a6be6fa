package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultPath is used when neither --config nor CONFIG_PATH is given.
const DefaultPath = "configs/config.yaml"

// Config holds all application configuration.
type Config struct {
	Market struct {
		BaseURL   string `yaml:"base_url"`
		RateLimit int    `yaml:"rate_limit"`
	} `yaml:"market"`
	Fundamentals struct {
		BaseURL     string `yaml:"base_url"`
		APIKey      string `yaml:"api_key"`
		RateLimit   int    `yaml:"rate_limit"`
		HoldersPath string `yaml:"holders_path"`
	} `yaml:"fundamentals"`
	HTTP struct {
		Timeout string `yaml:"timeout"`
		Proxy   string `yaml:"proxy"`
	} `yaml:"http"`
	Analysis struct {
		LookbackDays     int   `yaml:"lookback_days"`
		PeerCount        int   `yaml:"peer_count"`
		TopHolders       int   `yaml:"top_holders"`
		EarningsQuarters int   `yaml:"earnings_quarters"`
		RatingWindow     int   `yaml:"rating_window"`
		ManualBackfill   *bool `yaml:"manual_backfill"`
	} `yaml:"analysis"`
	Peers    map[string][]string `yaml:"peers"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Log struct {
		Level string `yaml:"level"`
		Color *bool  `yaml:"color"`
	} `yaml:"log"`
	Report struct {
		HTMLPath string `yaml:"html_path"`
	} `yaml:"report"`
}

// ResolvePath picks the config file: the flag value, then CONFIG_PATH, then DefaultPath.
func ResolvePath(flag string) string {
	if flag != "" {
		return flag
	}
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		return v
	}
	return DefaultPath
}

// Load reads config from a YAML file, then applies .env and environment
// variable overrides, then defaults. A missing file is not an error.
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

	// .env never overrides variables already set in the process environment
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("FMP_API_KEY"); v != "" {
		c.Fundamentals.APIKey = v
	}
	if v := os.Getenv("FMP_BASE_URL"); v != "" {
		c.Fundamentals.BaseURL = v
	}
	if v := os.Getenv("YAHOO_BASE_URL"); v != "" {
		c.Market.BaseURL = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		c.HTTP.Proxy = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		c.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		c.Telegram.ChatID = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
}

func (c *Config) applyDefaults() {
	if c.Market.RateLimit == 0 {
		c.Market.RateLimit = 5
	}
	if c.Fundamentals.RateLimit == 0 {
		c.Fundamentals.RateLimit = 5
	}
	if c.HTTP.Timeout == "" {
		c.HTTP.Timeout = "30s"
	}
	if c.Analysis.LookbackDays == 0 {
		c.Analysis.LookbackDays = 365
	}
	if c.Analysis.PeerCount == 0 {
		c.Analysis.PeerCount = 3
	}
	if c.Analysis.TopHolders == 0 {
		c.Analysis.TopHolders = 3
	}
	if c.Analysis.EarningsQuarters == 0 {
		c.Analysis.EarningsQuarters = 4
	}
	if c.Analysis.RatingWindow == 0 {
		c.Analysis.RatingWindow = 20
	}
	if c.Analysis.ManualBackfill == nil {
		c.Analysis.ManualBackfill = boolPtr(true)
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Color == nil {
		c.Log.Color = boolPtr(true)
	}
	if c.Peers == nil {
		c.Peers = map[string][]string{}
	}
}

// Validate checks that all values are usable.
func (c *Config) Validate() error {
	if _, err := c.Timeout(); err != nil {
		return fmt.Errorf("http.timeout: %w", err)
	}
	if c.Market.RateLimit < 0 || c.Fundamentals.RateLimit < 0 {
		return fmt.Errorf("rate_limit must not be negative")
	}
	if c.Analysis.LookbackDays < 0 {
		return fmt.Errorf("analysis.lookback_days must be positive")
	}
	if c.Analysis.PeerCount < 0 {
		return fmt.Errorf("analysis.peer_count must be positive")
	}
	if c.Analysis.TopHolders < 0 || c.Analysis.EarningsQuarters < 0 || c.Analysis.RatingWindow < 0 {
		return fmt.Errorf("analysis window sizes must be positive")
	}
	if (c.Telegram.BotToken == "") != (c.Telegram.ChatID == "") {
		return fmt.Errorf("telegram.bot_token and telegram.chat_id must be set together")
	}
	switch strings.ToLower(c.Log.Level) {
	case "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level %q is not one of trace, debug, info, warn, error", c.Log.Level)
	}
	return nil
}

// Timeout parses http.timeout.
func (c *Config) Timeout() (time.Duration, error) {
	return time.ParseDuration(c.HTTP.Timeout)
}

// Backfill reports whether unavailable peer metrics are offered for manual entry.
func (c *Config) Backfill() bool {
	return c.Analysis.ManualBackfill == nil || *c.Analysis.ManualBackfill
}

// Color reports whether console logging is colored.
func (c *Config) Color() bool {
	return c.Log.Color == nil || *c.Log.Color
}

// TelegramEnabled reports whether reports are delivered to Telegram.
func (c *Config) TelegramEnabled() bool {
	return c.Telegram.BotToken != "" && c.Telegram.ChatID != ""
}

// PeersFor returns the configured peers of ticker, case-insensitively.
func (c *Config) PeersFor(ticker string) []string {
	if p, ok := c.Peers[ticker]; ok {
		return p
	}
	for k, p := range c.Peers {
		if strings.EqualFold(k, ticker) {
			return p
		}
	}
	return nil
}

func boolPtr(b bool) *bool { return &b }
