package interfaces

import (
	"context"
	"time"

	"mt5-summary-bot/internal/types"
)

// Pipeline runs one full summary-and-report cycle. Not reentrant: callers
// must finish one run before starting the next.
type Pipeline interface {
	RunOnce(ctx context.Context, now time.Time) types.RunResult
}
