package model

// Action is the discrete outcome of a strategy evaluation.
type Action string

const (
	ActionBuy        Action = "BUY"
	ActionSell       Action = "SELL"
	ActionWarning    Action = "WARNING"
	ActionProfitTake Action = "PROFIT_TAKE"
	ActionHold       Action = "HOLD"

	// Daily anomaly classes emitted by the watchdog engine.
	ActionFlashCrash  Action = "FLASH_CRASH"
	ActionVolumeSpike Action = "VOLUME_SPIKE"
	ActionBreakout    Action = "BREAKOUT"
	ActionSurge       Action = "SURGE"
	ActionOversold    Action = "OVERSOLD"
)

// Severity drives notification urgency and coloring.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityDanger  Severity = "danger"
)

// Verdict is the immutable output of one strategy evaluation: what fired,
// on which bar, the numeric levels that justified it, and a human-readable
// reason for the notification channel.
type Verdict struct {
	Symbol   string
	Action   Action
	Severity Severity
	Bar      Bar
	Reason   string
	Levels   map[string]float64
}
