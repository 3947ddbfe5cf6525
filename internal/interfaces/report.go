package interfaces

import (
	"context"

	"mt5-summary-bot/internal/types"
)

// Annotator optionally attaches a narrative to a composite report. It never
// fails the run: on collaborator error the report comes back unannotated.
type Annotator interface {
	Annotate(ctx context.Context, report *types.CompositeReport) *types.CompositeReport
}

// Dispatcher delivers a finished report to the messaging channel.
type Dispatcher interface {
	Dispatch(ctx context.Context, report *types.CompositeReport) error
}
