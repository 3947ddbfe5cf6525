package summary

import (
	"math"
	"time"

	"mt5-summary-bot/internal/types"
)

// Aggregate computes the metrics for records whose close time falls inside
// [windowStart, now], both bounds inclusive. Pure: no I/O, no retries.
//
// A trade with exactly zero profit counts toward TradeCount but is neither a
// win nor a loss. Win rate is WinCount/TradeCount, 0 for an empty window.
func Aggregate(records []types.TradeRecord, windowStart, now time.Time) (types.WindowSummary, error) {
	s := types.WindowSummary{Strategies: make(map[string]types.StrategyStats)}
	for _, r := range records {
		if err := validateRecord(r); err != nil {
			return types.WindowSummary{}, err
		}
		if r.CloseTime.Before(windowStart) || r.CloseTime.After(now) {
			continue
		}
		s.TradeCount++
		s.Profit += r.Profit

		st := s.Strategies[r.Strategy]
		st.Trades++
		st.PnL += r.Profit
		switch {
		case r.Profit > 0:
			s.WinCount++
			st.Wins++
		case r.Profit < 0:
			s.LossCount++
			st.Losses++
		}
		s.Strategies[r.Strategy] = st
	}
	if s.TradeCount > 0 {
		s.WinRate = float64(s.WinCount) / float64(s.TradeCount)
	}
	return s, nil
}

func validateRecord(r types.TradeRecord) error {
	if r.CloseTime.IsZero() {
		return &types.ValidationError{PositionID: r.PositionID, Reason: "missing close time"}
	}
	if math.IsNaN(r.Profit) || math.IsInf(r.Profit, 0) {
		return &types.ValidationError{PositionID: r.PositionID, Reason: "profit is not a finite number"}
	}
	return nil
}
