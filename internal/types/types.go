package types

import "time"

// RawDeal is one deal entry as returned by the MT5 bridge. A position
// produces two deals: an opening one (Entry=0) and a closing one (Entry=1).
type RawDeal struct {
	Ticket     int64   `json:"ticket"`
	PositionID int64   `json:"position_id"`
	Entry      int     `json:"entry"`
	Symbol     string  `json:"symbol"`
	Volume     float64 `json:"volume"`
	Profit     float64 `json:"profit"`
	Swap       float64 `json:"swap"`
	Commission float64 `json:"commission"`
	Fee        float64 `json:"fee"`
	Comment    string  `json:"comment"`
	TimeMsc    int64   `json:"time_msc"`
}

// TradeRecord is one closed round trip, produced by the normalizer.
// Profit is net: deal profit + swap - commission - fee. Immutable once built.
type TradeRecord struct {
	PositionID int64
	Symbol     string
	Volume     float64
	OpenTime   time.Time
	CloseTime  time.Time
	Profit     float64
	Strategy   string
}

// StrategyStats aggregates trades that share an entry-comment tag.
type StrategyStats struct {
	Trades int
	PnL    float64
	Wins   int
	Losses int
}

// WindowSummary holds metrics for one closed time window.
// Zero-profit trades count toward TradeCount but neither WinCount nor
// LossCount, so WinCount+LossCount <= TradeCount always holds.
type WindowSummary struct {
	Profit     float64
	TradeCount int
	WinCount   int
	LossCount  int
	WinRate    float64
	Strategies map[string]StrategyStats
}

// CompositeReport bundles the four window summaries of one pipeline run.
// Narrative is empty until (and unless) the annotate stage fills it.
type CompositeReport struct {
	Daily       WindowSummary
	Weekly      WindowSummary
	Monthly     WindowSummary
	Yearly      WindowSummary
	GeneratedAt time.Time
	Narrative   string
}

type RunStatus string

const (
	RunSuccess        RunStatus = "SUCCESS"
	RunPartialSuccess RunStatus = "PARTIAL_SUCCESS"
	RunFailed         RunStatus = "FAILED"
)

// Stage names the pipeline states. For a failed run, RunResult.Stage is the
// stage that failed; for a partial success it is StageDispatched.
type Stage string

const (
	StageIdle          Stage = "IDLE"
	StageSessionOpen   Stage = "SESSION_OPEN"
	StageSummarizing   Stage = "SUMMARIZING"
	StageAnnotated     Stage = "ANNOTATED"
	StageDispatched    Stage = "DISPATCHED"
	StageSessionClosed Stage = "SESSION_CLOSED"
)

// RunResult is what one pipeline run hands back to the caller. Report is nil
// only when the run failed before a composite report was built.
type RunResult struct {
	Status RunStatus
	Stage  Stage
	Report *CompositeReport
	Err    error
}
