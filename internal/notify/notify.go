// Package notify provides alarm sink implementations: the collaborators
// that turn a computed alarm request into something the user will actually
// wake up to.
package notify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/calalarm/calalarm/internal/config"
	"github.com/calalarm/calalarm/internal/scheduler"
)

// AlarmSink is the one-shot alarm facility. Fire-and-forget: no handle is
// returned and the alarm cannot be cancelled through this interface.
// Only hour/minute granularity is representable.
type AlarmSink interface {
	ScheduleAlarm(ctx context.Context, title string, hour, minute int) error
}

// New picks the sink named by cfg.Notify.Channel. An unset or unknown
// channel falls back to the console sink so the background path never goes
// dark silently.
func New(cfg *config.Config, clock scheduler.Clock) AlarmSink {
	switch cfg.Notify.Channel {
	case "telegram":
		slog.Info("notify: using telegram sink")
		return NewTelegramSink(cfg.Notify.Telegram.Token, cfg.Notify.Telegram.ChatID)
	case "slack":
		slog.Info("notify: using slack sink")
		return NewSlackSink(cfg.Notify.Slack.BotToken, cfg.Notify.Slack.Channel, clock)
	default:
		if cfg.Notify.Channel != "" && cfg.Notify.Channel != "console" {
			slog.Warn("notify: unknown channel, using console", "channel", cfg.Notify.Channel)
		}
		return ConsoleSink{}
	}
}

// ConsoleSink writes the alarm to the log. Useful for dry runs and tests.
type ConsoleSink struct{}

// ScheduleAlarm logs the alarm request.
func (ConsoleSink) ScheduleAlarm(_ context.Context, title string, hour, minute int) error {
	slog.Info("notify: alarm scheduled", "title", title, "at", fmt.Sprintf("%02d:%02d", hour, minute))
	return nil
}
