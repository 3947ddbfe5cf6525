package openai

import (
	"context"
	"errors"
	"os"
	"strings"

	oa "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"mt5-summary-bot/internal/store"
	"mt5-summary-bot/internal/types"
)

// Client is the hosted alternative to the local Ollama provider.
type Client struct {
	cfg *store.Config
	cli oa.Client
}

func NewClient(cfg *store.Config) *Client {
	return &Client{
		cfg: cfg,
		cli: oa.NewClient(option.WithAPIKey(os.Getenv("OPENAI_API_KEY"))),
	}
}

func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	if os.Getenv("OPENAI_API_KEY") == "" {
		return "", &types.ModelError{Err: errors.New("OPENAI_API_KEY missing")}
	}

	resp, err := c.cli.Chat.Completions.New(ctx, oa.ChatCompletionNewParams{
		Model: oa.ChatModel(c.cfg.LLM.Model),
		Messages: []oa.ChatCompletionMessageParamUnion{
			oa.SystemMessage(c.cfg.LLM.System),
			oa.UserMessage(prompt),
		},
		Temperature: oa.Float(c.cfg.LLM.Temperature),
	})
	if err != nil {
		return "", &types.ModelError{Err: err}
	}
	if len(resp.Choices) == 0 {
		return "", &types.ModelError{Err: errors.New("no choices")}
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
