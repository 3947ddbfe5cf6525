package telegram

import (
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"mt5-summary-bot/internal/types"
)

// Telegram caps messages at 4096 characters; truncate with headroom so the
// marker always fits.
const (
	messageLimit   = 4000
	truncateMarker = "\n\n...[truncated]"
)

// Render produces the HTML report message: header with the generation
// timestamp, one block per window, the yearly strategy breakdown, and the
// narrative when present.
func Render(report *types.CompositeReport, loc *time.Location) string {
	var b strings.Builder

	fmt.Fprintf(&b, "<b>📊 Trading Summary</b> | %s\n\n",
		report.GeneratedAt.In(loc).Format("2006-01-02 15:04:05"))

	writeSection(&b, "Today", "📅", report.Daily)
	writeSection(&b, "Week", "📆", report.Weekly)
	writeSection(&b, "Month", "📆", report.Monthly)
	writeSection(&b, "Year", "📆", report.Yearly)

	if top := topStrategies(report.Yearly.Strategies, 5); len(top) > 0 {
		b.WriteString("\n<b>📈 Strategy Performance (YTD)</b>\n")
		for _, s := range top {
			wr := 0.0
			if s.stats.Trades > 0 {
				wr = float64(s.stats.Wins) / float64(s.stats.Trades) * 100
			}
			fmt.Fprintf(&b, "%s <b>%s</b>: $%.2f | %d trades | %.1f%% WR | W:%d L:%d\n",
				pnlEmoji(s.stats.PnL), s.name, s.stats.PnL, s.stats.Trades, wr, s.stats.Wins, s.stats.Losses)
		}
	}

	if report.Narrative != "" {
		fmt.Fprintf(&b, "\n<b>🤖 AI Insights</b>\n<i>%s</i>\n", report.Narrative)
	}

	msg := b.String()
	if len(msg) > messageLimit {
		cut := messageLimit - len(truncateMarker)
		// Telegram rejects invalid UTF-8, so never cut inside a rune.
		for cut > 0 && !utf8.RuneStart(msg[cut]) {
			cut--
		}
		msg = msg[:cut] + truncateMarker
	}
	return msg
}

func writeSection(b *strings.Builder, title, emoji string, s types.WindowSummary) {
	fmt.Fprintf(b, "<b>%s %s</b>\n%s $%.2f | %d trades (W:%d L:%d) | WR: %.1f%%\n",
		emoji, title, pnlEmoji(s.Profit), s.Profit, s.TradeCount, s.WinCount, s.LossCount, s.WinRate*100)
}

func pnlEmoji(pnl float64) string {
	if pnl >= 0 {
		return "🟢"
	}
	return "🔴"
}

type rankedStrategy struct {
	name  string
	stats types.StrategyStats
}

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
