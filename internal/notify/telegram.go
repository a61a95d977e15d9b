package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/MatthewCK/CALBOT/internal/metrics"
)

// messageSender is the slice of the Telegram bot API the notifier needs.
type messageSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramConfig wires a Telegram notifier.
type TelegramConfig struct {
	Token       string
	ChatIDs     []int64
	GroupChatID int64
	Logger      *slog.Logger
	Metrics     *metrics.Recorder
}

// Telegram fans one message out to every configured recipient chat and an
// optional group chat. Per-recipient failures are logged and collected; a
// partial delivery still reports the failures.
type Telegram struct {
	bot     messageSender
	chatIDs []int64
	logger  *slog.Logger
	metrics *metrics.Recorder
}

// NewTelegram connects to the Telegram bot API. An empty token yields a Nop
// notifier so an unconfigured bot still runs.
func NewTelegram(cfg TelegramConfig) (Notifier, error) {
	if cfg.Token == "" {
		if cfg.Logger != nil {
			cfg.Logger.Warn("telegram token not configured, notifications disabled")
		}
		return Nop{}, nil
	}
	bot, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("telegram connect: %w", err)
	}
	return newTelegram(bot, cfg), nil
}

func newTelegram(bot messageSender, cfg TelegramConfig) *Telegram {
	chatIDs := append([]int64(nil), cfg.ChatIDs...)
	if cfg.GroupChatID != 0 {
		chatIDs = append(chatIDs, cfg.GroupChatID)
	}
	return &Telegram{
		bot:     bot,
		chatIDs: chatIDs,
		logger:  cfg.Logger,
		metrics: cfg.Metrics,
	}
}

// Send delivers the text to every chat. Delivery continues past individual
// failures; the combined error covers all chats that failed.
func (t *Telegram) Send(ctx context.Context, text string) error {
	if len(t.chatIDs) == 0 {
		if t.logger != nil {
			t.logger.Warn("no telegram chats configured, dropping message")
		}
		return nil
	}

	var errs []error
	for _, chatID := range t.chatIDs {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		msg := tgbotapi.NewMessage(chatID, text)
		_, err := t.bot.Send(msg)
		t.metrics.RecordNotification("telegram", err)
		if err != nil {
			errs = append(errs, fmt.Errorf("chat %d: %w", chatID, err))
			if t.logger != nil {
				t.logger.Error("telegram send failed",
					slog.Int64("chat_id", chatID),
					slog.Any("err", err),
				)
			}
			continue
		}
		if t.logger != nil {
			t.logger.Debug("telegram message sent", slog.Int64("chat_id", chatID))
		}
	}
	return errors.Join(errs...)
}
