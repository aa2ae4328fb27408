// Package scheduler implements the daily, idempotent, time-windowed job
// scheduler. A job's callback runs at most once per calendar day, on the
// first wake-up at or after the scheduled time, no matter how often the
// periodic trigger fires or how many days of wake-ups were missed.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/calalarm/calalarm/internal/prefs"
	"github.com/calalarm/calalarm/internal/timeofday"
)

const (
	defaultCheckInterval   = 3600 * time.Second
	defaultCallbackTimeout = 30 * time.Second

	keyPrefix = "scheduler"
)

// ErrInvalidConfig is returned when a job config is missing a required
// field or names an impossible time of day.
var ErrInvalidConfig = errors.New("invalid job config")

// JobConfig is the scheduler's persisted per-job configuration.
// Enabled, ScheduledHour and ScheduledMinute are required; pointers
// distinguish an absent field from a zero value.
type JobConfig struct {
	Enabled                *bool `json:"enabled"`
	ScheduledHour          *int  `json:"scheduledHour"`
	ScheduledMinute        *int  `json:"scheduledMinute"`
	CheckIntervalSeconds   int   `json:"checkIntervalSeconds,omitempty"`
	CallbackTimeoutSeconds int   `json:"callbackTimeoutSeconds,omitempty"`
}

// Validate checks that the required fields are present and the scheduled
// time is a valid time of day.
func (c JobConfig) Validate() error {
	if c.Enabled == nil || c.ScheduledHour == nil || c.ScheduledMinute == nil {
		return fmt.Errorf("%w: enabled, scheduledHour and scheduledMinute are required", ErrInvalidConfig)
	}
	if _, err := timeofday.New(*c.ScheduledHour, *c.ScheduledMinute); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

func (c JobConfig) checkInterval() time.Duration {
	if c.CheckIntervalSeconds > 0 {
		return time.Duration(c.CheckIntervalSeconds) * time.Second
	}
	return defaultCheckInterval
}

func (c JobConfig) callbackTimeout() time.Duration {
	if c.CallbackTimeoutSeconds > 0 {
		return time.Duration(c.CallbackTimeoutSeconds) * time.Second
	}
	return defaultCallbackTimeout
}

// Callback is the effectful work a DailyJob runs once per day.
// It must respect ctx: the scheduler imposes the configured timeout.
type Callback func(ctx context.Context) error

// JobKey identifies one job's persisted state and trigger registration.
type JobKey string

func (k JobKey) configKey() string  { return keyPrefix + "." + string(k) + ".config" }
func (k JobKey) lastRunKey() string { return keyPrefix + "." + string(k) + ".lastRun" }

// DailyJob owns the run state of one daily job. It is the only writer of
// the job's lastRun key.
type DailyJob struct {
	key     JobKey
	store   prefs.Store
	trigger Trigger
	clock   Clock

	// Serializes RunIfScheduled cycles so concurrent wake-ups for the
	// same key cannot both see a stale lastRun.
	runMu sync.Mutex

	regMu      sync.Mutex
	registered bool
}

// NewDailyJob creates a DailyJob for jobKey.
func NewDailyJob(jobKey string, store prefs.Store, trigger Trigger, clock Clock) *DailyJob {
	return &DailyJob{
		key:     JobKey(jobKey),
		store:   store,
		trigger: trigger,
		clock:   clock,
	}
}

// Schedule validates and persists cfg, then re-arms the periodic trigger.
// A disabled config cancels the wake-ups without re-arming.
func (j *DailyJob) Schedule(cfg JobConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := j.store.Save(j.key.configKey(), cfg); err != nil {
		return fmt.Errorf("persist config for %q: %w", j.key, err)
	}

	// Cancel before every re-schedule so a config change can never leave
	// two live wake-up entries for one key.
	j.trigger.CancelAll()
	if !*cfg.Enabled {
		slog.Info("scheduler: job disabled, trigger cancelled", "job", j.key)
		return nil
	}
	return j.trigger.Schedule(TriggerSpec{
		JobKey:  string(j.key),
		Period:  cfg.checkInterval(),
		Timeout: cfg.callbackTimeout(),
		Persist: true,
	})
}

// Register wires cb to this job's trigger wake-ups. It may be called at
// most once per job for the life of the process.
func (j *DailyJob) Register(cb Callback) error {
	j.regMu.Lock()
	defer j.regMu.Unlock()
	if j.registered {
		return fmt.Errorf("%w: %q", ErrAlreadyRegistered, j.key)
	}

	err := j.trigger.Register(string(j.key), func() {
		slog.Info("scheduler: wake-up", "job", j.key)
		j.RunIfScheduled(context.Background(), cb)
	})
	if err != nil {
		return err
	}
	j.registered = true
	return nil
}

// RunIfScheduled performs one wake-up cycle: load {config, lastRun}, decide
// whether today's run is due, and if so execute cb exactly once, persisting
// the new lastRun even when cb fails. Reports whether cb was invoked.
//
// Safe to call any number of times per day; every failure mode is logged
// and swallowed here so the trigger never sees an error.
func (j *DailyJob) RunIfScheduled(ctx context.Context, cb Callback) bool {
	j.runMu.Lock()
	defer j.runMu.Unlock()

	// One now per cycle; every midnight-relative instant below derives
	// from it so a cycle straddling midnight cannot mix two days.
	now := j.clock.Now()

	cfg, lastRun, err := j.loadState(ctx, now)
	if err != nil {
		slog.Warn("scheduler: not configured, skipping", "job", j.key, "err", err)
		return false
	}

	run, reason := shouldRun(cfg, lastRun, now)
	if !run {
		slog.Info("scheduler: not due", "job", j.key, "reason", reason)
		return false
	}

	j.execute(ctx, cfg, cb, now)
	return true
}

// LastRun returns the persisted last successful decision instant, if any.
func (j *DailyJob) LastRun() (time.Time, bool) {
	var iso string
	if err := j.store.Load(j.key.lastRunKey(), &iso); err != nil {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, iso)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Config returns the persisted job config, if present and valid.
func (j *DailyJob) Config() (JobConfig, bool) {
	var cfg JobConfig
	if err := j.store.Load(j.key.configKey(), &cfg); err != nil {
		return JobConfig{}, false
	}
	if err := cfg.Validate(); err != nil {
		return JobConfig{}, false
	}
	return cfg, true
}

// loadState reads config and lastRun concurrently. A missing or corrupt
// lastRun falls back to yesterday midnight, which errs toward running; a
// missing config is fatal for the cycle.
func (j *DailyJob) loadState(ctx context.Context, now time.Time) (JobConfig, time.Time, error) {
	var (
		cfg     JobConfig
		lastRun time.Time
	)

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := j.store.Load(j.key.configKey(), &cfg); err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("persisted config: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		lastRun = timeofday.DayAt(now, -24, 0) // yesterday midnight
		var iso string
		if err := j.store.Load(j.key.lastRunKey(), &iso); err != nil {
			return nil
		}
		if t, err := time.Parse(time.RFC3339, iso); err == nil {
			lastRun = t
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return JobConfig{}, time.Time{}, err
	}
	return cfg, lastRun, nil
}

// shouldRun is the idempotency-critical run predicate: run iff enabled, the
// last run predates today's scheduled instant, and that instant has been
// reached. Once lastRun advances past the instant the predicate stays false
// until tomorrow's instant exists.
func shouldRun(cfg JobConfig, lastRun, now time.Time) (bool, string) {
	if !*cfg.Enabled {
		return false, "config not enabled"
	}
	scheduled := timeofday.DayAt(now, *cfg.ScheduledHour, *cfg.ScheduledMinute)
	if lastRun.Before(scheduled) && !now.Before(scheduled) {
		return true, ""
	}
	return false, fmt.Sprintf("lastRun %s, scheduled %s, now %s",
		lastRun.Format(time.RFC3339), scheduled.Format(time.RFC3339), now.Format(time.RFC3339))
}

// execute runs cb under the configured timeout and persists lastRun = now
// unconditionally, even on error or panic. A failed run does not retry
// until the next day's scheduled instant.
func (j *DailyJob) execute(ctx context.Context, cfg JobConfig, cb Callback, now time.Time) {
	defer func() {
		if err := j.store.Save(j.key.lastRunKey(), now.Format(time.RFC3339)); err != nil {
			slog.Error("scheduler: persist lastRun failed", "job", j.key, "err", err)
		}
	}()
	defer func() {
		if r := recover(); r != nil {
			slog.Error("scheduler: callback panicked", "job", j.key, "panic", r)
		}
	}()

	cctx, cancel := context.WithTimeout(ctx, cfg.callbackTimeout())
	defer cancel()

	slog.Info("scheduler: executing callback", "job", j.key)
	if err := cb(cctx); err != nil {
		slog.Error("scheduler: callback failed", "job", j.key, "err", err)
	}
}
