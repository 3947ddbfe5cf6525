package summary

import (
	"context"
	"time"

	"mt5-summary-bot/internal/interfaces"
	"mt5-summary-bot/internal/logger"
	"mt5-summary-bot/internal/trace"
	"mt5-summary-bot/internal/types"
)

// Builder assembles a composite report from one terminal session. Each
// window gets its own history call: the boundaries differ, and the terminal
// is free to return overlapping sets per call.
type Builder struct {
	loc *time.Location
}

func NewBuilder(loc *time.Location) *Builder {
	return &Builder{loc: loc}
}

// Build summarizes the four windows against the given session. Any window
// failure is fatal for the whole composite: trading summaries must be a
// consistent snapshot, so no partial report is emitted.
func (b *Builder) Build(ctx context.Context, sess interfaces.Session, now time.Time) (*types.CompositeReport, error) {
	ctx, span := trace.StartSpan(ctx, "summary.Build")
	defer span.End()

	report := &types.CompositeReport{GeneratedAt: now}
	windows := []struct {
		name  string
		start time.Time
		dst   *types.WindowSummary
	}{
		{"daily", StartOfDay(now, b.loc), &report.Daily},
		{"weekly", StartOfISOWeek(now, b.loc), &report.Weekly},
		{"monthly", StartOfMonth(now, b.loc), &report.Monthly},
		{"yearly", StartOfYear(now, b.loc), &report.Yearly},
	}

	for _, w := range windows {
		deals, err := sess.History(ctx, w.start, now)
		if err != nil {
			return nil, &types.DataRetrievalError{Window: w.name, Err: err}
		}
		records := Normalize(deals, b.loc)
		agg, err := Aggregate(records, w.start, now)
		if err != nil {
			return nil, &types.DataRetrievalError{Window: w.name, Err: err}
		}
		*w.dst = agg
		logger.Debug(ctx, "Window summarized",
			"window", w.name,
			"from", w.start.Format(time.RFC3339),
			"trades", agg.TradeCount,
			"profit", agg.Profit,
		)
	}
	return report, nil
}
