package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"StockSentinel/internal/strategy"
)

// Config holds all application configuration.
type Config struct {
	Discord struct {
		WebhookURL string `yaml:"webhook_url"`
	} `yaml:"discord"`
	DataSource struct {
		Provider  string `yaml:"provider"` // "yahoo" or "alpaca"
		BaseURL   string `yaml:"base_url"`
		KeyID     string `yaml:"key_id"`
		SecretKey string `yaml:"secret_key"`
	} `yaml:"data_source"`
	Watchlist []string `yaml:"watchlist"`
	Macro     struct {
		Disabled     bool   `yaml:"disabled"`
		YieldSymbol  string `yaml:"yield_symbol"`
		DollarSymbol string `yaml:"dollar_symbol"`
	} `yaml:"macro"`
	Schedule struct {
		WeeklyCron string `yaml:"weekly_cron"`
		DailyCron  string `yaml:"daily_cron"`
	} `yaml:"schedule"`
	Engineer     strategy.EngineerConfig `yaml:"engineer"`
	Watchdog     strategy.WatchdogConfig `yaml:"watchdog"`
	Sizer        strategy.SizerConfig    `yaml:"sizer"`
	LookbackDays int                     `yaml:"lookback_days"`
	Database     struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
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
	if v := os.Getenv("DISCORD_WEBHOOK_URL"); v != "" {
		cfg.Discord.WebhookURL = v
	}
	if v := os.Getenv("ALPACA_KEY_ID"); v != "" {
		cfg.DataSource.KeyID = v
	}
	if v := os.Getenv("ALPACA_SECRET_KEY"); v != "" {
		cfg.DataSource.SecretKey = v
	}
	if v := os.Getenv("DATA_PROVIDER"); v != "" {
		cfg.DataSource.Provider = v
	}
	if v := os.Getenv("WATCHLIST"); v != "" {
		cfg.Watchlist = nil
		for _, sym := range strings.Split(v, ",") {
			if sym = strings.TrimSpace(sym); sym != "" {
				cfg.Watchlist = append(cfg.Watchlist, sym)
			}
		}
	}
	if v := os.Getenv("CRON_WEEKLY"); v != "" {
		cfg.Schedule.WeeklyCron = v
	}
	if v := os.Getenv("CRON_DAILY"); v != "" {
		cfg.Schedule.DailyCron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("ACCOUNT_SIZE"); v != "" {
		var size float64
		if _, err := fmt.Sscanf(v, "%f", &size); err == nil {
			cfg.Sizer.AccountSize = size
		}
	}

	// Defaults
	if cfg.DataSource.Provider == "" {
		cfg.DataSource.Provider = "yahoo"
	}
	if len(cfg.Watchlist) == 0 {
		cfg.Watchlist = []string{"SPY"}
	}
	if cfg.Macro.YieldSymbol == "" {
		cfg.Macro.YieldSymbol = "^TNX"
	}
	if cfg.Macro.DollarSymbol == "" {
		cfg.Macro.DollarSymbol = "DX-Y.NYB"
	}
	if cfg.Schedule.WeeklyCron == "" {
		cfg.Schedule.WeeklyCron = "0 0 8 * * 6" // Saturday morning, after Friday close
	}
	if cfg.Schedule.DailyCron == "" {
		cfg.Schedule.DailyCron = "0 30 22 * * 1-5" // weekday evenings
	}
	if cfg.LookbackDays == 0 {
		cfg.LookbackDays = 730
	}

	def := strategy.DefaultEngineerConfig()
	if cfg.Engineer.EMAPeriod == 0 {
		cfg.Engineer.EMAPeriod = def.EMAPeriod
	}
	if cfg.Engineer.RSIPeriod == 0 {
		cfg.Engineer.RSIPeriod = def.RSIPeriod
	}
	if cfg.Engineer.ATRPeriod == 0 {
		cfg.Engineer.ATRPeriod = def.ATRPeriod
	}
	if cfg.Engineer.StopATRMult == 0 {
		cfg.Engineer.StopATRMult = def.StopATRMult
	}
	if cfg.Engineer.RSIOverbought == 0 {
		cfg.Engineer.RSIOverbought = def.RSIOverbought
	}
	if cfg.Engineer.RSIBuyGate == 0 {
		cfg.Engineer.RSIBuyGate = def.RSIBuyGate
	}

	wdef := strategy.DefaultWatchdogConfig()
	if cfg.Watchdog.CrashThresholdPct == 0 {
		cfg.Watchdog.CrashThresholdPct = wdef.CrashThresholdPct
	}
	if cfg.Watchdog.SurgeThresholdPct == 0 {
		cfg.Watchdog.SurgeThresholdPct = wdef.SurgeThresholdPct
	}
	if cfg.Watchdog.VolumeSpikeMult == 0 {
		cfg.Watchdog.VolumeSpikeMult = wdef.VolumeSpikeMult
	}
	if cfg.Watchdog.Lookback == 0 {
		cfg.Watchdog.Lookback = wdef.Lookback
	}
	if cfg.Watchdog.RSIPeriod == 0 {
		cfg.Watchdog.RSIPeriod = wdef.RSIPeriod
	}
	if cfg.Watchdog.RSIOversold == 0 {
		cfg.Watchdog.RSIOversold = wdef.RSIOversold
	}

	sdef := strategy.DefaultSizerConfig()
	if cfg.Sizer.AccountSize == 0 {
		cfg.Sizer.AccountSize = sdef.AccountSize
	}
	if cfg.Sizer.BaseRiskPct == 0 {
		cfg.Sizer.BaseRiskPct = sdef.BaseRiskPct
	}
	if cfg.Sizer.MaxAllocationPct == 0 {
		cfg.Sizer.MaxAllocationPct = sdef.MaxAllocationPct
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.Discord.WebhookURL == "" {
		return fmt.Errorf("discord.webhook_url is required")
	}
	if len(c.Watchlist) == 0 {
		return fmt.Errorf("watchlist must not be empty")
	}
	switch c.DataSource.Provider {
	case "yahoo":
	case "alpaca":
		if c.DataSource.KeyID == "" || c.DataSource.SecretKey == "" {
			return fmt.Errorf("data_source.key_id and secret_key are required for alpaca")
		}
	default:
		return fmt.Errorf("data_source.provider must be yahoo or alpaca, got %q", c.DataSource.Provider)
	}
	if c.Watchdog.CrashThresholdPct >= 0 {
		return fmt.Errorf("watchdog.crash_threshold_pct must be negative")
	}
	if c.Sizer.AccountSize <= 0 {
		return fmt.Errorf("sizer.account_size must be positive")
	}
	return nil
}
