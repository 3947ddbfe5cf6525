package narrate

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"mt5-summary-bot/internal/types"
)

// BuildPrompt serializes a composite report into a deterministic analysis
// prompt: fixed window order (daily, weekly, monthly, yearly), fixed field
// order, strategies sorted by PnL with a name tie-break.
func BuildPrompt(report *types.CompositeReport, loc *time.Location) string {
	var b strings.Builder
	b.WriteString("Analyze this forex trading performance:\n\n")

	now := report.GeneratedAt.In(loc)
	if wd := now.Weekday(); wd == time.Saturday || wd == time.Sunday {
		b.WriteString("TODAY IS WEEKEND - Forex markets are closed. Zero trades today is NORMAL and EXPECTED. Do not mention this as a concern.\n\n")
	}

	writeWindow(&b, "TODAY", report.Daily)
	writeWindow(&b, "WEEK", report.Weekly)
	writeWindow(&b, "MONTH", report.Monthly)
	writeWindow(&b, "YEAR", report.Yearly)

	if top := topStrategies(report.Yearly.Strategies, 5); len(top) > 0 {
		b.WriteString("\nSTRATEGY BREAKDOWN (Year-to-Date):\n")
		for _, s := range top {
			status := "LOSING"
			if s.stats.PnL > 0 {
				status = "PROFITABLE"
			}
			wr := 0.0
			if s.stats.Trades > 0 {
				wr = float64(s.stats.Wins) / float64(s.stats.Trades) * 100
			}
			fmt.Fprintf(&b, "- %s [%s]: P&L $%.2f | %d trades | %.1f%% win rate | Wins: %d Losses: %d\n",
				s.name, status, s.stats.PnL, s.stats.Trades, wr, s.stats.Wins, s.stats.Losses)
		}
	}

	b.WriteString("\nCONTEXT: 'Untagged (Old Trades)' = historical trades from before the strategy tagging system. Focus on current tagged strategies.\n")
	b.WriteString(`
MAX 800 CHARS. Give me:
1. **Key Insight** (1 line): Main takeaway
2. **Best Performers** (1-2 lines): Only list strategies with POSITIVE P&L. If none, say "No profitable tagged strategies yet"
3. **Risks** (1-2 lines): Biggest concerns
4. **Actions** (1-2 lines): What to do next

Be direct. Negative P&L = LOSING.
`)
	return b.String()
}

func writeWindow(b *strings.Builder, label string, s types.WindowSummary) {
	fmt.Fprintf(b, "**%s** P&L: $%.2f | %d trades | Win Rate: %.1f%% | Wins: %d | Losses: %d\n",
		label, s.Profit, s.TradeCount, s.WinRate*100, s.WinCount, s.LossCount)
}

type rankedStrategy struct {
	name  string
	stats types.StrategyStats
}

// topStrategies ranks tagged strategies by PnL, excluding balance movements.
func topStrategies(strategies map[string]types.StrategyStats, n int) []rankedStrategy {
	out := make([]rankedStrategy, 0, len(strategies))
	for name, st := range strategies {
		if name == "Deposit/Withdrawal" {
			continue
		}
		out = append(out, rankedStrategy{name: name, stats: st})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].stats.PnL == out[j].stats.PnL {
			return out[i].name < out[j].name
		}
		return out[i].stats.PnL > out[j].stats.PnL
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}
