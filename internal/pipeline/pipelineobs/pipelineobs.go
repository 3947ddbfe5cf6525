// Package pipelineobs wraps a Pipeline with logging, tracing and metrics.
package pipelineobs

import (
	"context"
	"time"

	"mt5-summary-bot/internal/interfaces"
	"mt5-summary-bot/internal/logger"
	"mt5-summary-bot/internal/metrics"
	"mt5-summary-bot/internal/trace"
	"mt5-summary-bot/internal/types"
)

type observablePipeline struct {
	pipe interfaces.Pipeline
}

var _ interfaces.Pipeline = (*observablePipeline)(nil)

func Wrap(pipe interfaces.Pipeline) interfaces.Pipeline {
	return &observablePipeline{pipe: pipe}
}

func (op *observablePipeline) RunOnce(ctx context.Context, now time.Time) types.RunResult {
	ctx, span := trace.StartSpan(ctx, "pipeline.RunOnce")
	defer span.End()

	logger.Info(ctx, "Pipeline run starting", "now", now.Format(time.RFC3339))
	start := time.Now()

	res := op.pipe.RunOnce(ctx, now)

	metrics.RunDuration.Observe(time.Since(start).Seconds())
	metrics.RunsTotal.WithLabelValues(string(res.Status)).Inc()

	switch res.Status {
	case types.RunFailed:
		logger.ErrorWithErr(ctx, "Pipeline run failed", res.Err, "stage", res.Stage)
	case types.RunPartialSuccess:
		logger.Warn(ctx, "Pipeline run partially succeeded", "stage", res.Stage, "error", res.Err)
	default:
		logger.Info(ctx, "Pipeline run complete",
			"duration_ms", time.Since(start).Milliseconds(),
			"narrated", res.Report != nil && res.Report.Narrative != "",
		)
	}
	return res
}
