package interfaces

import (
	"context"
	"time"

	"mt5-summary-bot/internal/types"
)

// Session is one live authenticated connection to the trading terminal,
// scoped to a single pipeline run.
type Session interface {
	// History returns all deals whose close time falls in [from, to].
	History(ctx context.Context, from, to time.Time) ([]types.RawDeal, error)
	// Close releases the session. Idempotent; never fails observably.
	Close()
}

// SessionOpener opens terminal sessions. Credentials are fixed at
// construction time from config. The terminal supports one active session,
// so Open must not be called again before the previous session is closed.
type SessionOpener interface {
	Open(ctx context.Context) (Session, error)
}
