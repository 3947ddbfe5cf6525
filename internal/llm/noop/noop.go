package noop

import (
	"context"

	"mt5-summary-bot/internal/logger"
)

// Completer is the fallback when no LLM provider is configured. It returns
// an empty completion, which the annotate stage treats as "no narrative".
type Completer struct{}

func NewCompleter() *Completer {
	return &Completer{}
}

func (c *Completer) Complete(ctx context.Context, prompt string) (string, error) {
	logger.Debug(ctx, "Noop completer called - narrative will be absent")
	return "", nil
}
