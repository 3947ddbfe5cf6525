package main

import (
	"fmt"
	"os"

	"mt5-summary-bot/internal/interfaces"
	"mt5-summary-bot/internal/llm/llmobs"
	"mt5-summary-bot/internal/llm/noop"
	"mt5-summary-bot/internal/llm/ollama"
	"mt5-summary-bot/internal/llm/openai"
	"mt5-summary-bot/internal/logger"
	"mt5-summary-bot/internal/narrate"
	"mt5-summary-bot/internal/pipeline"
	"mt5-summary-bot/internal/pipeline/pipelineobs"
	"mt5-summary-bot/internal/store"
	"mt5-summary-bot/internal/summary"
	"mt5-summary-bot/internal/telegram"
	"mt5-summary-bot/internal/telegram/telegramobs"
	"mt5-summary-bot/internal/terminal/mt5"
	"mt5-summary-bot/internal/terminal/terminalobs"
	"mt5-summary-bot/internal/trace"
)

// initializeSystem initializes the logger and tracer.
func initializeSystem() error {
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	if err := trace.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize tracer: %v\n", err)
	}
	return nil
}

// buildPipeline wires the collaborators, each behind its observability
// middleware, into one pipeline controller.
func buildPipeline(cfg *store.Config) (interfaces.Pipeline, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	opener := terminalobs.Wrap(mt5.NewOpener(mt5.Params{
		BaseURL:  cfg.MT5.BridgeURL,
		Login:    cfg.MT5.Login,
		Password: cfg.MT5.Password,
		Server:   cfg.MT5.Server,
	}))

	var completer interfaces.Completer
	switch cfg.LLM.Provider {
	case "OLLAMA":
		completer = ollama.NewClient(cfg)
	case "OPENAI":
		completer = openai.NewClient(cfg)
	default:
		completer = noop.NewCompleter()
	}
	completer = llmobs.Wrap(completer)

	dispatcher, err := telegram.NewDispatcher(cfg.Telegram.Enabled, cfg.Telegram.Token, cfg.Telegram.ChatID, loc)
	if err != nil {
		return nil, fmt.Errorf("telegram init: %w", err)
	}

	ctrl := pipeline.New(
		opener,
		summary.NewBuilder(loc),
		narrate.New(cfg.LLM.Enabled, completer, loc),
		telegramobs.Wrap(dispatcher),
	)
	return pipelineobs.Wrap(ctrl), nil
}
