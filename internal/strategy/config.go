package strategy

// EngineerConfig parameterizes the weekly trend-following engine. Configs
// are plain values passed into each engine, never process-wide state.
type EngineerConfig struct {
	EMAPeriod      int     `yaml:"ema_period"`
	RSIPeriod      int     `yaml:"rsi_period"`
	ATRPeriod      int     `yaml:"atr_period"`
	StopATRMult    float64 `yaml:"stop_atr_mult"`
	RSIOverbought  float64 `yaml:"rsi_overbought"`
	RSIBuyGate     float64 `yaml:"rsi_buy_gate"`
	IncludePartial bool    `yaml:"include_partial"` // evaluate a still-forming weekly bucket
}

// DefaultEngineerConfig returns the standard weekly parameters.
func DefaultEngineerConfig() EngineerConfig {
	return EngineerConfig{
		EMAPeriod:     20,
		RSIPeriod:     14,
		ATRPeriod:     14,
		StopATRMult:   1.0,
		RSIOverbought: 75,
		RSIBuyGate:    55,
	}
}

// WatchdogConfig parameterizes the daily anomaly detector.
type WatchdogConfig struct {
	CrashThresholdPct float64 `yaml:"crash_threshold_pct"` // negative, e.g. -6.0
	SurgeThresholdPct float64 `yaml:"surge_threshold_pct"` // positive, e.g. +6.0
	VolumeSpikeMult   float64 `yaml:"volume_spike_mult"`
	Lookback          int     `yaml:"lookback"` // trailing window for volume average and rolling high
	RSIPeriod         int     `yaml:"rsi_period"`
	RSIOversold       float64 `yaml:"rsi_oversold"`
}

// DefaultWatchdogConfig returns the standard daily parameters.
func DefaultWatchdogConfig() WatchdogConfig {
	return WatchdogConfig{
		CrashThresholdPct: -6.0,
		SurgeThresholdPct: 6.0,
		VolumeSpikeMult:   2.5,
		Lookback:          20,
		RSIPeriod:         14,
		RSIOversold:       30,
	}
}

// SizerConfig parameterizes risk-based position sizing.
type SizerConfig struct {
	AccountSize      float64 `yaml:"account_size"`
	BaseRiskPct      float64 `yaml:"base_risk_pct"`      // fraction, e.g. 0.01 = 1% risk per trade
	MaxAllocationPct float64 `yaml:"max_allocation_pct"` // fraction of account per position
}

// DefaultSizerConfig returns conservative sizing defaults.
func DefaultSizerConfig() SizerConfig {
	return SizerConfig{
		AccountSize:      10000,
		BaseRiskPct:      0.01,
		MaxAllocationPct: 0.25,
	}
}
