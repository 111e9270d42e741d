package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists verdicts to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so external readers do not block writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS weekly_signals (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp      INTEGER NOT NULL,
			symbol         TEXT NOT NULL,
			action         TEXT,
			severity       TEXT,
			reason         TEXT,
			close          REAL,
			ema            REAL,
			rsi            REAL,
			atr            REAL,
			hard_stop      REAL,
			shares         INTEGER,
			position_value REAL,
			regime         TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_weekly_ts ON weekly_signals(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_weekly_symbol ON weekly_signals(symbol)`,

		`CREATE TABLE IF NOT EXISTS daily_alerts (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp  INTEGER NOT NULL,
			symbol     TEXT NOT NULL,
			action     TEXT,
			severity   TEXT,
			reason     TEXT,
			close      REAL,
			change_pct REAL,
			vol_ratio  REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_daily_ts ON daily_alerts(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_daily_symbol ON daily_alerts(symbol)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordWeekly(rec *WeeklyRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO weekly_signals
		(timestamp, symbol, action, severity, reason, close, ema, rsi, atr, hard_stop, shares, position_value, regime)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), rec.Symbol, rec.Action, rec.Severity, rec.Reason,
		rec.Close, rec.EMA, rec.RSI, rec.ATR, rec.HardStop,
		rec.Shares, rec.PositionValue, rec.Regime,
	)
	return err
}

func (r *SQLiteRecorder) RecordDaily(rec *DailyRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO daily_alerts
		(timestamp, symbol, action, severity, reason, close, change_pct, vol_ratio)
		VALUES (?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), rec.Symbol, rec.Action, rec.Severity, rec.Reason,
		rec.Close, rec.ChangePct, rec.VolRatio,
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	return r.db.Close()
}
