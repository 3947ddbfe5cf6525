package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"mt5-summary-bot/internal/store"
	"mt5-summary-bot/internal/types"
)

// Client talks to a local Ollama server. Timeouts are the transport's
// responsibility; a timeout surfaces as an ordinary ModelError.
type Client struct {
	cfg *store.Config
	hc  *http.Client
}

func NewClient(cfg *store.Config) *Client {
	return &Client{cfg: cfg, hc: http.DefaultClient}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	body := map[string]any{
		"model":  c.cfg.LLM.Model,
		"stream": false,
		"messages": []chatMessage{
			{Role: "system", Content: c.cfg.LLM.System},
			{Role: "user", Content: prompt},
		},
		"options": map[string]any{"temperature": c.cfg.LLM.Temperature},
	}
	bb, _ := json.Marshal(body)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.LLM.BaseURL+"/api/chat", bytes.NewReader(bb))
	if err != nil {
		return "", &types.ModelError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return "", &types.ModelError{Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return "", &types.ModelError{Err: fmt.Errorf("ollama http %d", resp.StatusCode)}
	}

	var r struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return "", &types.ModelError{Err: err}
	}

	out := strings.TrimSpace(r.Message.Content)
	if out == "" {
		return "", &types.ModelError{Err: errors.New("empty completion")}
	}
	return out, nil
}
