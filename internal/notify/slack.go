package notify

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	slackgo "github.com/slack-go/slack"

	"github.com/calalarm/calalarm/internal/scheduler"
	"github.com/calalarm/calalarm/internal/timeofday"
)

// SlackSink delivers the alarm through chat.scheduleMessage: Slack itself
// holds the message until the alarm instant, so the notification arrives at
// alarm time even if this process is gone by then.
type SlackSink struct {
	client  *slackgo.Client
	channel string
	clock   scheduler.Clock
}

// NewSlackSink creates a SlackSink posting to the given channel.
func NewSlackSink(botToken, channel string, clock scheduler.Clock) *SlackSink {
	return &SlackSink{
		client:  slackgo.New(botToken),
		channel: channel,
		clock:   clock,
	}
}

// ScheduleAlarm schedules the alarm message for today at hour:minute.
func (s *SlackSink) ScheduleAlarm(ctx context.Context, title string, hour, minute int) error {
	if s.channel == "" {
		return fmt.Errorf("slack: channel not configured")
	}

	postAt := timeofday.DayAt(s.clock.Now(), hour, minute)
	_, _, err := s.client.ScheduleMessageContext(ctx, s.channel,
		strconv.FormatInt(postAt.Unix(), 10),
		slackgo.MsgOptionText(fmt.Sprintf("⏰ %s", title), false))
	if err != nil {
		return fmt.Errorf("slack: schedule message: %w", err)
	}

	slog.Info("slack: alarm message scheduled", "channel", s.channel, "post_at", postAt)
	return nil
}
