// Package storage persists run history in SQLite. The pipeline core owns no
// on-disk state; this store belongs to the scheduler side, which uses it for
// the duplicate-run guard across process restarts.
package storage

import (
	"database/sql"
	"time"

	// Register sqlite3 driver
	_ "github.com/mattn/go-sqlite3"

	"mt5-summary-bot/internal/types"
)

type DB interface {
	Exec(query string, args ...any) (sql.Result, error)
	QueryRow(query string, args ...any) *sql.Row
	Close() error
}

type Store struct{ db DB }

func OpenSQLite(dsn string) (DB, error) {
	return sql.Open("sqlite3", dsn)
}

func InitSchema(db DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS runs(
		ts INTEGER, status TEXT, stage TEXT, error TEXT,
		daily_profit REAL, daily_trades INTEGER, narrated INTEGER
	)`)
	return err
}

func NewStore(db DB) *Store { return &Store{db: db} }

func (s *Store) RecordRun(at time.Time, res types.RunResult) error {
	var profit float64
	var trades, narrated int
	if res.Report != nil {
		profit = res.Report.Daily.Profit
		trades = res.Report.Daily.TradeCount
		if res.Report.Narrative != "" {
			narrated = 1
		}
	}
	errText := ""
	if res.Err != nil {
		errText = res.Err.Error()
	}
	_, err := s.db.Exec(`INSERT INTO runs(ts,status,stage,error,daily_profit,daily_trades,narrated) VALUES(?,?,?,?,?,?,?)`,
		at.Unix(), string(res.Status), string(res.Stage), errText, profit, trades, narrated)
	return err
}

// LastRunAt returns the time of the most recent recorded run, ok=false when
// none exists yet.
func (s *Store) LastRunAt() (time.Time, bool, error) {
	var ts sql.NullInt64
	err := s.db.QueryRow(`SELECT MAX(ts) FROM runs`).Scan(&ts)
	if err != nil {
		return time.Time{}, false, err
	}
	if !ts.Valid {
		return time.Time{}, false, nil
	}
	return time.Unix(ts.Int64, 0), true, nil
}
