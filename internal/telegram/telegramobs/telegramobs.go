// Package telegramobs wraps a Dispatcher with logging and tracing.
package telegramobs

import (
	"context"

	"mt5-summary-bot/internal/interfaces"
	"mt5-summary-bot/internal/logger"
	"mt5-summary-bot/internal/trace"
	"mt5-summary-bot/internal/types"
)

type observableDispatcher struct {
	dispatcher interfaces.Dispatcher
}

var _ interfaces.Dispatcher = (*observableDispatcher)(nil)

func Wrap(dispatcher interfaces.Dispatcher) interfaces.Dispatcher {
	return &observableDispatcher{dispatcher: dispatcher}
}

func (od *observableDispatcher) Dispatch(ctx context.Context, report *types.CompositeReport) error {
	ctx, span := trace.StartSpan(ctx, "telegram.Dispatch")
	defer span.End()

	if err := od.dispatcher.Dispatch(ctx, report); err != nil {
		logger.ErrorWithErr(ctx, "Report delivery failed", err)
		return err
	}
	logger.Info(ctx, "Report dispatched", "narrated", report.Narrative != "")
	return nil
}
