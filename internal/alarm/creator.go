// Package alarm selects today's relevant calendar event and turns it into
// a one-shot alarm request.
package alarm

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/calalarm/calalarm/internal/calendar"
	"github.com/calalarm/calalarm/internal/notify"
	"github.com/calalarm/calalarm/internal/scheduler"
	"github.com/calalarm/calalarm/internal/timeofday"
)

// Request is the ephemeral alarm request handed to the alarm facility.
// Only hour and minute are representable in the destination system.
type Request struct {
	Title  string
	Hour   int
	Minute int
}

// SelectEarliest picks the earliest non-all-day event whose start falls in
// the window on ref's day. Ties on start time keep input order. The false
// return is the common "no qualifying event today" case, not an error.
func SelectEarliest(events []calendar.Event, window timeofday.Window, ref time.Time) (calendar.Event, bool) {
	var best calendar.Event
	found := false
	for _, ev := range events {
		if ev.AllDay {
			continue
		}
		if !window.Contains(ev.StartDate, ref) {
			continue
		}
		if !found || ev.StartDate.Before(best.StartDate) {
			best = ev
			found = true
		}
	}
	return best, found
}

// Compute derives the alarm request for ev: the event's start minus the
// lead time. Returns false when that instant has already passed — the
// alarm must not be scheduled and the run is not a failure.
func Compute(ev calendar.Event, preAlarm time.Duration, now time.Time) (Request, bool) {
	at := ev.StartDate.Add(-preAlarm)
	if at.Before(now) {
		return Request{}, false
	}

	start := timeofday.FromTime(ev.StartDate)
	hour, minute := timeofday.FromTime(at).HourMinute()
	return Request{
		Title:  fmt.Sprintf("[%s] %s (Calendar Alarm)", start, ev.Title),
		Hour:   hour,
		Minute: minute,
	}, true
}

// Creator is the alarm pipeline: fetch today's events, select, compute,
// hand off to the sink. Its Run method is the callback registered with the
// daily scheduler.
type Creator struct {
	source      calendar.Source
	sink        notify.AlarmSink
	clock       scheduler.Clock
	window      timeofday.Window
	preAlarm    time.Duration
	calendarIDs []string
}

// NewCreator creates a Creator.
func NewCreator(
	source calendar.Source,
	sink notify.AlarmSink,
	clock scheduler.Clock,
	window timeofday.Window,
	preAlarm time.Duration,
	calendarIDs []string,
) *Creator {
	return &Creator{
		source:      source,
		sink:        sink,
		clock:       clock,
		window:      window,
		preAlarm:    preAlarm,
		calendarIDs: calendarIDs,
	}
}

// Window returns the configured event start window.
func (c *Creator) Window() timeofday.Window { return c.window }

// PreAlarm returns the configured alarm lead time.
func (c *Creator) PreAlarm() time.Duration { return c.preAlarm }

// FetchToday returns all of today's events after verifying authorization.
func (c *Creator) FetchToday(ctx context.Context) ([]calendar.Event, error) {
	status, err := c.source.AuthorizationStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("authorization status: %w", err)
	}
	if status != calendar.StatusAuthorized {
		return nil, fmt.Errorf("%w: status %q", calendar.ErrNotAuthorized, status)
	}

	now := c.clock.Now()
	start := timeofday.DayAt(now, 0, 0)
	end := timeofday.DayAt(now, 24, 0) // tomorrow midnight

	events, err := c.source.FetchEvents(ctx, start, end, c.calendarIDs)
	if err != nil {
		return nil, fmt.Errorf("fetch calendar events: %w", err)
	}
	return events, nil
}

// Run executes one pass of the pipeline. "No qualifying event" and "alarm
// already past" both end the run successfully with nothing scheduled; only
// source and sink failures are errors.
func (c *Creator) Run(ctx context.Context) error {
	events, err := c.FetchToday(ctx)
	if err != nil {
		return err
	}
	logEvents("alarm: all events", events)

	now := c.clock.Now()
	ev, ok := SelectEarliest(events, c.window, now)
	if !ok {
		slog.Info("alarm: no calendar events for today, not creating alarms")
		return nil
	}
	slog.Info("alarm: selected event", "event", ev.String())

	req, ok := Compute(ev, c.preAlarm, now)
	if !ok {
		slog.Warn("alarm: skipping creation, alarm would be in the past",
			"event", ev.String(), "pre_alarm", c.preAlarm)
		return nil
	}

	if err := c.sink.ScheduleAlarm(ctx, req.Title, req.Hour, req.Minute); err != nil {
		return fmt.Errorf("schedule alarm: %w", err)
	}
	slog.Info("alarm: created",
		"at", fmt.Sprintf("%02d:%02d", req.Hour, req.Minute), "event", ev.String())
	return nil
}

func logEvents(msg string, events []calendar.Event) {
	strs := make([]string, 0, len(events))
	for _, ev := range events {
		strs = append(strs, ev.String())
	}
	slog.Info(msg, "count", len(events), "events", strs)
}
