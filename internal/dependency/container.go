// Package dependency wires core calalarm services using go.uber.org/dig.
package dependency

import (
	"fmt"

	"go.uber.org/dig"

	"github.com/calalarm/calalarm/internal/alarm"
	"github.com/calalarm/calalarm/internal/calendar"
	"github.com/calalarm/calalarm/internal/config"
	"github.com/calalarm/calalarm/internal/notify"
	"github.com/calalarm/calalarm/internal/prefs"
	"github.com/calalarm/calalarm/internal/scheduler"
)

// JobKey is the single daily job this binary owns.
const JobKey = "alarmcreator"

// Container holds the resolved core service singletons.
// Callers use the typed getter methods; they never need to import dig directly.
type Container struct {
	store   prefs.Store
	trigger *scheduler.CronTrigger
	creator *alarm.Creator
	job     *scheduler.DailyJob
}

func (c *Container) Store() prefs.Store              { return c.store }
func (c *Container) Trigger() *scheduler.CronTrigger { return c.trigger }
func (c *Container) Creator() *alarm.Creator         { return c.creator }
func (c *Container) DailyJob() *scheduler.DailyJob   { return c.job }

// New builds and wires all core services from cfg.
func New(cfg *config.Config) (*Container, error) {
	d := dig.New()

	if err := d.Provide(func() *config.Config { return cfg }); err != nil {
		return nil, err
	}
	if err := d.Provide(newClock); err != nil {
		return nil, err
	}
	if err := d.Provide(newStore); err != nil {
		return nil, err
	}
	if err := d.Provide(newSource); err != nil {
		return nil, err
	}
	if err := d.Provide(notify.New); err != nil {
		return nil, err
	}
	if err := d.Provide(newCreator); err != nil {
		return nil, err
	}
	if err := d.Provide(scheduler.NewCronTrigger); err != nil {
		return nil, err
	}
	if err := d.Provide(func(t *scheduler.CronTrigger) scheduler.Trigger { return t }); err != nil {
		return nil, err
	}
	if err := d.Provide(newDailyJob); err != nil {
		return nil, err
	}

	var result *Container
	err := d.Invoke(func(
		store prefs.Store,
		trigger *scheduler.CronTrigger,
		creator *alarm.Creator,
		job *scheduler.DailyJob,
	) {
		result = &Container{
			store:   store,
			trigger: trigger,
			creator: creator,
			job:     job,
		}
	})
	return result, err
}

func newClock() scheduler.Clock { return scheduler.RealClock{} }

func newStore() prefs.Store {
	return prefs.NewFileStore(config.PrefsPath())
}

func newSource(cfg *config.Config) (calendar.Source, error) {
	switch cfg.Calendar.Provider {
	case "", "local":
		return calendar.NewLocalSource(cfg.Calendar.AgendaPath), nil
	case "remote":
		if cfg.Calendar.BaseURL == "" {
			return nil, fmt.Errorf("calendar provider %q requires baseUrl", cfg.Calendar.Provider)
		}
		return calendar.NewRemoteSource(cfg.Calendar.BaseURL, cfg.Calendar.APIToken), nil
	default:
		return nil, fmt.Errorf("unknown calendar provider %q", cfg.Calendar.Provider)
	}
}

func newCreator(
	cfg *config.Config,
	source calendar.Source,
	sink notify.AlarmSink,
	clock scheduler.Clock,
) (*alarm.Creator, error) {
	window, err := cfg.Window()
	if err != nil {
		return nil, fmt.Errorf("event window: %w", err)
	}
	return alarm.NewCreator(source, sink, clock, window, cfg.PreAlarm(), cfg.Calendar.CalendarIDs), nil
}

func newDailyJob(store prefs.Store, trigger scheduler.Trigger, clock scheduler.Clock) *scheduler.DailyJob {
	return scheduler.NewDailyJob(JobKey, store, trigger, clock)
}
