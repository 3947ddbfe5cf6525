// Package telegram delivers finished reports to a Telegram chat.
package telegram

import (
	"context"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"mt5-summary-bot/internal/interfaces"
	"mt5-summary-bot/internal/logger"
	"mt5-summary-bot/internal/types"
)

type Dispatcher struct {
	enabled bool
	api     *tgbotapi.BotAPI
	chatID  int64
	loc     *time.Location
}

var _ interfaces.Dispatcher = (*Dispatcher)(nil)

// NewDispatcher connects the bot API when messaging is enabled. Disabled
// dispatchers never touch the network.
func NewDispatcher(enabled bool, token string, chatID int64, loc *time.Location) (*Dispatcher, error) {
	d := &Dispatcher{enabled: enabled, chatID: chatID, loc: loc}
	if !enabled {
		return d, nil
	}
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	d.api = api
	return d, nil
}

// Dispatch renders and sends the report. A delivery failure does not roll
// back anything: the report was already computed, only notification failed.
func (d *Dispatcher) Dispatch(ctx context.Context, report *types.CompositeReport) error {
	if !d.enabled {
		logger.Debug(ctx, "Telegram dispatch disabled")
		return nil
	}

	msg := tgbotapi.NewMessage(d.chatID, Render(report, d.loc))
	msg.ParseMode = tgbotapi.ModeHTML
	if _, err := d.api.Send(msg); err != nil {
		return &types.DeliveryError{Err: err}
	}
	return nil
}
