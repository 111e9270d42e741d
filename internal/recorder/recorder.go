package recorder

// WeeklyRecord is the persisted outcome of one weekly evaluation.
type WeeklyRecord struct {
	Symbol        string
	Action        string
	Severity      string
	Reason        string
	Close         float64
	EMA           float64
	RSI           float64
	ATR           float64
	HardStop      float64
	Shares        int
	PositionValue float64
	Regime        string
}

// DailyRecord is one persisted watchdog alert.
type DailyRecord struct {
	Symbol    string
	Action    string
	Severity  string
	Reason    string
	Close     float64
	ChangePct float64
	VolRatio  float64
}

// Recorder persists the verdict audit trail for dashboards. The engines
// never read this data back; it exists for post-hoc review only.
type Recorder interface {
	RecordWeekly(rec *WeeklyRecord) error
	RecordDaily(rec *DailyRecord) error
	Close() error
}
