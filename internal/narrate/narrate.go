// Package narrate turns a composite report into an LLM commentary request.
// The narrative is an enhancement, never a required deliverable: any model
// failure leaves the report unannotated and the run continues.
package narrate

import (
	"context"
	"time"

	"mt5-summary-bot/internal/interfaces"
	"mt5-summary-bot/internal/logger"
	"mt5-summary-bot/internal/trace"
	"mt5-summary-bot/internal/types"
)

type Requester struct {
	enabled bool
	llm     interfaces.Completer
	loc     *time.Location
}

var _ interfaces.Annotator = (*Requester)(nil)

func New(enabled bool, llm interfaces.Completer, loc *time.Location) *Requester {
	return &Requester{enabled: enabled, llm: llm, loc: loc}
}

// Annotate makes exactly one completion attempt. Disabled means no network
// call at all. The input report is never mutated; a fresh copy carries the
// narrative.
func (r *Requester) Annotate(ctx context.Context, report *types.CompositeReport) *types.CompositeReport {
	if !r.enabled {
		logger.Debug(ctx, "Narrative stage disabled")
		return report
	}

	ctx, span := trace.StartSpan(ctx, "narrate.Annotate")
	defer span.End()

	text, err := r.llm.Complete(ctx, BuildPrompt(report, r.loc))
	if err != nil {
		logger.Warn(ctx, "Narrative unavailable, continuing without it", "error", err)
		return report
	}
	if text == "" {
		logger.Debug(ctx, "Narrative empty, leaving report unannotated")
		return report
	}

	annotated := *report
	annotated.Narrative = text
	logger.Info(ctx, "Narrative attached", "chars", len(text))
	return &annotated
}
