// Package common provides shared utilities for FinBot
package common

import (
	"fmt"
	"os"
	"strconv"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for FinBot
type Config struct {
	Environment string         `toml:"environment"`
	Telegram    TelegramConfig `toml:"telegram"`
	Clients     ClientsConfig  `toml:"clients"`
	Market      MarketConfig   `toml:"market"`
	Logging     LoggingConfig  `toml:"logging"`
}

// TelegramConfig holds Telegram bot configuration
type TelegramConfig struct {
	Token          string `toml:"token"`
	PollTimeout    int    `toml:"poll_timeout"`    // long-poll timeout in seconds
	RequestTimeout string `toml:"request_timeout"` // outbound call budget per handler
}

// GetRequestTimeout parses and returns the per-request timeout duration
func (c *TelegramConfig) GetRequestTimeout() time.Duration {
	d, err := time.ParseDuration(c.RequestTimeout)
	if err != nil {
		return 90 * time.Second
	}
	return d
}

// ClientsConfig holds API client configurations
type ClientsConfig struct {
	Rapid  RapidConfig  `toml:"rapid"`
	Yahoo  YahooConfig  `toml:"yahoo"`
	Gemini GeminiConfig `toml:"gemini"`
}

// RapidConfig holds YH Finance (RapidAPI) configuration
type RapidConfig struct {
	BaseURL   string `toml:"base_url"`
	Host      string `toml:"host"`
	APIKey    string `toml:"api_key"`
	Region    string `toml:"region"`
	RateLimit int    `toml:"rate_limit"`
	Timeout   string `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration
func (c *RapidConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// YahooConfig holds the Yahoo quoteSummary endpoint configuration
type YahooConfig struct {
	BaseURL string `toml:"base_url"`
	Timeout string `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration
func (c *YahooConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// GeminiConfig holds Gemini API configuration
type GeminiConfig struct {
	APIKey string `toml:"api_key"`
	Model  string `toml:"model"`
}

// MarketConfig holds market overview configuration
type MarketConfig struct {
	CacheTTL     string            `toml:"cache_ttl"`
	Indices      map[string]string `toml:"indices"`
	Sectors      map[string]string `toml:"sectors"`
	Global       map[string]string `toml:"global"`
	Commodities  map[string]string `toml:"commodities"`
	Currencies   map[string]string `toml:"currencies"`
	Constituents []string          `toml:"constituents"`
}

// GetCacheTTL parses and returns the cache TTL duration
func (c *MarketConfig) GetCacheTTL() time.Duration {
	d, err := time.ParseDuration(c.CacheTTL)
	if err != nil {
		return 5 * time.Minute
	}
	return d
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `toml:"level"`
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Telegram: TelegramConfig{
			PollTimeout:    30,
			RequestTimeout: "90s",
		},
		Clients: ClientsConfig{
			Rapid: RapidConfig{
				BaseURL:   "https://yh-finance.p.rapidapi.com",
				Host:      "yh-finance.p.rapidapi.com",
				Region:    "IN",
				RateLimit: 5,
				Timeout:   "30s",
			},
			Yahoo: YahooConfig{
				BaseURL: "https://query2.finance.yahoo.com",
				Timeout: "30s",
			},
			Gemini: GeminiConfig{
				Model: "gemini-2.0-flash",
			},
		},
		Market: MarketConfig{
			CacheTTL: "5m",
			Indices: map[string]string{
				"NIFTY 50":   "^NSEI",
				"SENSEX":     "^BSESN",
				"BANK NIFTY": "^NSEBANK",
				"INDIA VIX":  "^INDIAVIX",
			},
			Sectors: map[string]string{
				"NIFTY IT":            "^CNXIT",
				"NIFTY AUTO":          "^CNXAUTO",
				"NIFTY PHARMA":        "^CNXPHARMA",
				"NIFTY MIDCAP SELECT": "NIFTY_MID_SELECT.NS",
				"NIFTY SMALLCAP":      "^CNXSC",
			},
			Global: map[string]string{
				"S&P 500":    "^GSPC",
				"NASDAQ":     "^IXIC",
				"DOW JONES":  "^DJI",
				"FTSE 100":   "^FTSE",
				"NIKKEI 225": "^N225",
			},
			Commodities: map[string]string{
				"GOLD":              "GC=F",
				"CRUDE OIL (BRENT)": "BZ=F",
			},
			Currencies: map[string]string{
				"USD/INR": "INR=X",
			},
			Constituents: []string{
				"RELIANCE.NS", "TCS.NS", "HDFCBANK.NS", "INFY.NS", "ICICIBANK.NS",
				"HINDUNILVR.NS", "ADANIPORTS.NS", "KOTAKBANK.NS", "BAJFINANCE.NS", "SBIN.NS",
				"BHARTIARTL.NS", "ITC.NS", "AXISBANK.NS", "ASIANPAINT.NS", "MARUTI.NS",
				"HCLTECH.NS", "LT.NS", "SUNPHARMA.NS", "ULTRACEMCO.NS", "TITAN.NS",
				"BAJAJFINSV.NS", "NTPC.NS", "POWERGRID.NS", "TATASTEEL.NS", "TECHM.NS",
				"TATAMOTORS.NS", "M&M.NS", "INDUSINDBK.NS", "NESTLEIND.NS", "WIPRO.NS",
			},
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadConfig loads configuration from files with environment overrides
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	// Load and merge each config file in order (later files override earlier)
	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue // Skip missing files
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("FINBOT_ENV"); env != "" {
		config.Environment = env
	}

	if level := os.Getenv("FINBOT_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if timeout := os.Getenv("FINBOT_POLL_TIMEOUT"); timeout != "" {
		if t, err := strconv.Atoi(timeout); err == nil {
			config.Telegram.PollTimeout = t
		}
	}

	if model := os.Getenv("FINBOT_GEMINI_MODEL"); model != "" {
		config.Clients.Gemini.Model = model
	}

	if ttl := os.Getenv("FINBOT_MARKET_CACHE_TTL"); ttl != "" {
		config.Market.CacheTTL = ttl
	}

	if region := os.Getenv("FINBOT_MARKET_REGION"); region != "" {
		config.Clients.Rapid.Region = region
	}
}

// ResolveAPIKey resolves an API key from environment or config fallback
func ResolveAPIKey(name string, fallback string) (string, error) {
	keyToEnvMapping := map[string][]string{
		"telegram_bot_token": {"TELEGRAM_BOT_TOKEN", "FINBOT_TELEGRAM_TOKEN"},
		"gemini_api_key":     {"GEMINI_API_KEY", "FINBOT_GEMINI_API_KEY", "GOOGLE_API_KEY"},
		"rapid_api_key":      {"RAPID_API_KEY", "FINBOT_RAPID_API_KEY"},
	}

	if envVarNames, ok := keyToEnvMapping[name]; ok {
		for _, envVarName := range envVarNames {
			if envValue := os.Getenv(envVarName); envValue != "" {
				return envValue, nil
			}
		}
	}

	if fallback != "" {
		return fallback, nil
	}

	return "", fmt.Errorf("API key '%s' not found in environment or config", name)
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production" || c.Environment == "prod"
}
