// Package llmobs wraps a Completer with observability (logging & tracing).
package llmobs

import (
	"context"

	"mt5-summary-bot/internal/interfaces"
	"mt5-summary-bot/internal/logger"
	"mt5-summary-bot/internal/trace"
)

type observableCompleter struct {
	llm interfaces.Completer
}

var _ interfaces.Completer = (*observableCompleter)(nil)

func Wrap(llm interfaces.Completer) interfaces.Completer {
	return &observableCompleter{llm: llm}
}

func (oc *observableCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	ctx, span := trace.StartSpan(ctx, "llm.Complete")
	defer span.End()

	logger.Debug(ctx, "Requesting completion", "prompt_chars", len(prompt))

	out, err := oc.llm.Complete(ctx, prompt)
	if err != nil {
		logger.ErrorWithErr(ctx, "Completion failed", err)
		return "", err
	}
	logger.Debug(ctx, "Completion received", "reply_chars", len(out))
	return out, nil
}
