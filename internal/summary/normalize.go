package summary

import (
	"sort"
	"strings"
	"time"

	"mt5-summary-bot/internal/types"
)

const (
	dealEntryIn  = 0
	dealEntryOut = 1
)

// Normalize pairs opening and closing deals by position id and emits one
// TradeRecord per closed round trip. Deals without a matching counterpart
// (still-open positions, orphaned exits) are dropped. Profit is net of swap,
// commission and fee, all taken from the closing deal.
func Normalize(deals []types.RawDeal, loc *time.Location) []types.TradeRecord {
	entries := make(map[int64]types.RawDeal)
	exits := make(map[int64]types.RawDeal)
	for _, d := range deals {
		switch d.Entry {
		case dealEntryIn:
			entries[d.PositionID] = d
		case dealEntryOut:
			exits[d.PositionID] = d
		}
	}

	records := make([]types.TradeRecord, 0, len(exits))
	for id, out := range exits {
		in, ok := entries[id]
		if !ok {
			continue
		}
		records = append(records, types.TradeRecord{
			PositionID: id,
			Symbol:     out.Symbol,
			Volume:     in.Volume,
			OpenTime:   msToTime(in.TimeMsc, loc),
			CloseTime:  msToTime(out.TimeMsc, loc),
			Profit:     out.Profit + out.Swap - out.Commission - out.Fee,
			Strategy:   strategyTag(in.Comment, out.Comment),
		})
	}

	sort.Slice(records, func(i, j int) bool {
		if records[i].CloseTime.Equal(records[j].CloseTime) {
			return records[i].PositionID < records[j].PositionID
		}
		return records[i].CloseTime.Before(records[j].CloseTime)
	})
	return records
}

func msToTime(ms int64, loc *time.Location) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms).In(loc)
}

// strategyTag categorizes a round trip by its broker comment. Exits closed
// by the terminal carry an "[sl ...]" or "[tp ...]" marker instead of the
// strategy tag, so the entry comment is recovered in that case.
func strategyTag(entryComment, exitComment string) string {
	c := exitComment
	lower := strings.ToLower(c)
	if strings.Contains(lower, "[sl ") || strings.Contains(lower, "[tp ") {
		if strings.TrimSpace(entryComment) != "" {
			c = entryComment
		}
	}
	switch {
	case strings.Contains(c, "Checkout"):
		return "Deposit/Withdrawal"
	case strings.TrimSpace(c) == "":
		return "Untagged (Old Trades)"
	default:
		return c
	}
}
