package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	robfigcron "github.com/robfig/cron/v3"
)

// ErrAlreadyRegistered is returned when a job key is registered twice.
// Registration is once per key for the life of the process; silently
// overwriting an earlier registration would orphan its callback.
var ErrAlreadyRegistered = errors.New("job key already registered")

// TriggerSpec describes how often the trigger should wake a registered job.
type TriggerSpec struct {
	JobKey  string
	Period  time.Duration
	Timeout time.Duration
	Persist bool
}

// Trigger is the periodic wake-up collaborator. Wake-ups are approximate:
// "at least every period", with no cadence guarantee beyond that. Jobs must
// tolerate being invoked zero or many times per day.
type Trigger interface {
	// Register associates a job function with a key. At most once per key.
	Register(jobKey string, job func()) error

	// Schedule arms the periodic wake-up for a registered key.
	Schedule(spec TriggerSpec) error

	// CancelAll disarms every scheduled wake-up. Registrations survive.
	CancelAll()
}

// CronTrigger implements Trigger on a robfig/cron instance.
// The Persist field of TriggerSpec is ignored: a process-local trigger
// cannot outlive the process, which is exactly why jobs re-derive their
// state from persistence on every wake-up.
type CronTrigger struct {
	cron *robfigcron.Cron

	mu      sync.Mutex
	jobs    map[string]func()
	entries map[string]robfigcron.EntryID
}

// NewCronTrigger creates a stopped CronTrigger. Call Start to run it.
func NewCronTrigger() *CronTrigger {
	return &CronTrigger{
		cron:    robfigcron.New(),
		jobs:    make(map[string]func()),
		entries: make(map[string]robfigcron.EntryID),
	}
}

// Register associates job with jobKey.
func (t *CronTrigger) Register(jobKey string, job func()) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.jobs[jobKey]; ok {
		return fmt.Errorf("%w: %q", ErrAlreadyRegistered, jobKey)
	}
	t.jobs[jobKey] = job
	return nil
}

// Schedule arms a periodic wake-up for spec.JobKey, replacing any earlier
// entry for the same key.
func (t *CronTrigger) Schedule(spec TriggerSpec) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	job, ok := t.jobs[spec.JobKey]
	if !ok {
		return fmt.Errorf("schedule %q: job not registered", spec.JobKey)
	}
	if spec.Period <= 0 {
		return fmt.Errorf("schedule %q: period must be positive, got %v", spec.JobKey, spec.Period)
	}

	if id, ok := t.entries[spec.JobKey]; ok {
		t.cron.Remove(id)
	}
	id := t.cron.Schedule(robfigcron.Every(spec.Period), robfigcron.FuncJob(job))
	t.entries[spec.JobKey] = id

	slog.Info("trigger: scheduled", "job", spec.JobKey, "period", spec.Period, "timeout", spec.Timeout)
	return nil
}

// CancelAll disarms every wake-up.
func (t *CronTrigger) CancelAll() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for key, id := range t.entries {
		t.cron.Remove(id)
		delete(t.entries, key)
	}
}

// Start runs the trigger until ctx is cancelled, then waits for in-flight
// jobs to finish.
func (t *CronTrigger) Start(ctx context.Context) error {
	t.cron.Start()
	slog.Info("trigger: started")

	<-ctx.Done()

	<-t.cron.Stop().Done()
	slog.Info("trigger: stopped")
	return ctx.Err()
}
