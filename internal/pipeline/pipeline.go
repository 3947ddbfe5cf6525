// Package pipeline sequences one summary-and-report run as a linear state
// machine: Idle -> SessionOpen -> Summarizing -> Annotated -> Dispatched ->
// SessionClosed, with a terminal Failed(stage, error) branch. Single pass,
// no loops, stateless across invocations.
package pipeline

import (
	"context"
	"time"

	"mt5-summary-bot/internal/interfaces"
	"mt5-summary-bot/internal/logger"
	"mt5-summary-bot/internal/metrics"
	"mt5-summary-bot/internal/summary"
	"mt5-summary-bot/internal/types"
)

type Controller struct {
	opener     interfaces.SessionOpener
	builder    *summary.Builder
	annotator  interfaces.Annotator
	dispatcher interfaces.Dispatcher
}

var _ interfaces.Pipeline = (*Controller)(nil)

func New(opener interfaces.SessionOpener, builder *summary.Builder, annotator interfaces.Annotator, dispatcher interfaces.Dispatcher) *Controller {
	return &Controller{
		opener:     opener,
		builder:    builder,
		annotator:  annotator,
		dispatcher: dispatcher,
	}
}

// RunOnce executes one full cycle. Error policy per stage:
//
//   - session open failure is terminal; nothing was acquired, nothing to
//     release
//   - a summarizing failure aborts the run, but the session is still closed
//     on the way out
//   - narrative failure is absorbed inside the annotator
//   - dispatch failure downgrades the run to PARTIAL_SUCCESS; the report is
//     still returned for inspection or retry by the caller
//
// The session is released exactly once on every path past a successful open.
func (c *Controller) RunOnce(ctx context.Context, now time.Time) types.RunResult {
	sess, err := c.opener.Open(ctx)
	if err != nil {
		metrics.StageFailures.WithLabelValues(string(types.StageSessionOpen)).Inc()
		return types.RunResult{Status: types.RunFailed, Stage: types.StageSessionOpen, Err: err}
	}
	defer sess.Close()

	report, err := c.builder.Build(ctx, sess, now)
	if err != nil {
		metrics.StageFailures.WithLabelValues(string(types.StageSummarizing)).Inc()
		return types.RunResult{Status: types.RunFailed, Stage: types.StageSummarizing, Err: err}
	}

	report = c.annotator.Annotate(ctx, report)

	if err := c.dispatcher.Dispatch(ctx, report); err != nil {
		metrics.StageFailures.WithLabelValues(string(types.StageDispatched)).Inc()
		logger.Warn(ctx, "Run completed but report was not delivered", "error", err)
		return types.RunResult{Status: types.RunPartialSuccess, Stage: types.StageDispatched, Report: report, Err: err}
	}

	return types.RunResult{Status: types.RunSuccess, Stage: types.StageSessionClosed, Report: report}
}
