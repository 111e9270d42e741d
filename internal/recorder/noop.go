package recorder

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordWeekly(_ *WeeklyRecord) error { return nil }
func (n *NoopRecorder) RecordDaily(_ *DailyRecord) error   { return nil }
func (n *NoopRecorder) Close() error                       { return nil }
