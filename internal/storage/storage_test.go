package storage

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"mt5-summary-bot/internal/types"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	if err := InitSchema(db); err != nil {
		t.Fatal(err)
	}
	return NewStore(db)
}

func TestLastRunAtEmpty(t *testing.T) {
	store := newTestStore(t)

	_, ok, err := store.LastRunAt()
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("empty store must report no previous run")
	}
}

func TestRecordAndLastRun(t *testing.T) {
	store := newTestStore(t)

	first := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	second := first.Add(4 * time.Hour)

	for _, at := range []time.Time{first, second} {
		res := types.RunResult{
			Status: types.RunSuccess,
			Stage:  types.StageSessionClosed,
			Report: &types.CompositeReport{
				Daily:     types.WindowSummary{Profit: 33.5, TradeCount: 4},
				Narrative: "steady day",
			},
		}
		if err := store.RecordRun(at, res); err != nil {
			t.Fatal(err)
		}
	}

	got, ok, err := store.LastRunAt()
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("expected a previous run")
	}
	if !got.Equal(second) {
		t.Errorf("LastRunAt = %v, want %v", got, second)
	}
}

func TestRecordFailedRunWithoutReport(t *testing.T) {
	store := newTestStore(t)

	res := types.RunResult{
		Status: types.RunFailed,
		Stage:  types.StageSessionOpen,
		Err:    &types.ConnectionError{Err: errors.New("bridge unreachable")},
	}
	if err := store.RecordRun(time.Now(), res); err != nil {
		t.Fatal(err)
	}

	if _, ok, err := store.LastRunAt(); err != nil || !ok {
		t.Errorf("failed runs still count for the duplicate guard: ok=%v err=%v", ok, err)
	}
}
