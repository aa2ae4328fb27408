package notify

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramSink delivers the alarm as a Telegram bot message. Telegram has
// no native alarm clock, so the sink sends the wake-up message immediately
// and states the alarm time in the text; a pinned chat with notifications
// on is the alarm surface.
type TelegramSink struct {
	token  string
	chatID int64

	mu  sync.Mutex
	bot *tgbotapi.BotAPI
}

// NewTelegramSink creates a TelegramSink for the bot token and chat.
func NewTelegramSink(token string, chatID int64) *TelegramSink {
	return &TelegramSink{token: token, chatID: chatID}
}

func (t *TelegramSink) connect() (*tgbotapi.BotAPI, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.bot != nil {
		return t.bot, nil
	}
	if t.token == "" {
		return nil, fmt.Errorf("telegram: bot token not configured")
	}
	bot, err := tgbotapi.NewBotAPI(t.token)
	if err != nil {
		return nil, fmt.Errorf("telegram: create bot: %w", err)
	}
	slog.Info("telegram: connected", "username", bot.Self.UserName)
	t.bot = bot
	return bot, nil
}

// ScheduleAlarm sends the alarm message to the configured chat.
func (t *TelegramSink) ScheduleAlarm(_ context.Context, title string, hour, minute int) error {
	bot, err := t.connect()
	if err != nil {
		return err
	}

	text := fmt.Sprintf("⏰ %s\nAlarm set for %02d:%02d", title, hour, minute)
	msg := tgbotapi.NewMessage(t.chatID, text)
	if _, err := bot.Send(msg); err != nil {
		return fmt.Errorf("telegram: send alarm: %w", err)
	}
	return nil
}
