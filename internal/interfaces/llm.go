package interfaces

import "context"

// Completer sends one prompt to a language model and returns its reply.
// Model, temperature and system prompt come from config at construction.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
