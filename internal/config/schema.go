// Package config defines the calalarm configuration schema.
//
// JSON keys use camelCase to stay compatible with preference payloads
// written by earlier versions of the app.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/calalarm/calalarm/internal/scheduler"
	"github.com/calalarm/calalarm/internal/timeofday"
)

// JobSettings configures the daily background job.
type JobSettings struct {
	Enabled                bool `json:"enabled"`
	ScheduledHour          int  `json:"scheduledHour"`
	ScheduledMinute        int  `json:"scheduledMinute"`
	CheckIntervalSeconds   int  `json:"checkIntervalSeconds,omitempty"`
	CallbackTimeoutSeconds int  `json:"callbackTimeoutSeconds,omitempty"`
}

// AlarmSettings configures event selection and the alarm lead time.
// Window bounds are stored as minutes since midnight, like the original
// preference payloads.
type AlarmSettings struct {
	PreAlarmMinutes           int `json:"preAlarmMinutes"`
	EarliestEventStartMinutes int `json:"earliestEventStartMinutes"`
	LatestEventStartMinutes   int `json:"latestEventStartMinutes"`
}

// CalendarSettings selects and configures the calendar source.
type CalendarSettings struct {
	Provider    string   `json:"provider"` // "local" or "remote"
	AgendaPath  string   `json:"agendaPath,omitempty"`
	BaseURL     string   `json:"baseUrl,omitempty"`
	APIToken    string   `json:"apiToken,omitempty"`
	CalendarIDs []string `json:"calendarIds"`
}

// TelegramSettings configures the Telegram alarm sink.
type TelegramSettings struct {
	Token  string `json:"token"`
	ChatID int64  `json:"chatId"`
}

// SlackSettings configures the Slack alarm sink.
type SlackSettings struct {
	BotToken string `json:"botToken"`
	Channel  string `json:"channel"`
}

// NotifySettings selects the alarm sink.
type NotifySettings struct {
	Channel  string           `json:"channel"` // "console", "telegram" or "slack"
	Telegram TelegramSettings `json:"telegram"`
	Slack    SlackSettings    `json:"slack"`
}

// Config is the full calalarm configuration.
type Config struct {
	Job      JobSettings      `json:"job"`
	Alarm    AlarmSettings    `json:"alarm"`
	Calendar CalendarSettings `json:"calendar"`
	Notify   NotifySettings   `json:"notify"`
}

// DefaultConfig returns the defaults the original app shipped with:
// check at 02:00, wake for events starting 04:00–09:30, alarm 45 minutes
// before the event.
func DefaultConfig() Config {
	return Config{
		Job: JobSettings{
			ScheduledHour:   2,
			ScheduledMinute: 0,
		},
		Alarm: AlarmSettings{
			PreAlarmMinutes:           45,
			EarliestEventStartMinutes: 4 * 60,
			LatestEventStartMinutes:   9*60 + 30,
		},
		Calendar: CalendarSettings{
			Provider:    "local",
			AgendaPath:  filepath.Join(DataDir(), "agenda.yaml"),
			CalendarIDs: []string{},
		},
		Notify: NotifySettings{
			Channel: "console",
		},
	}
}

// JobConfig converts the job settings to the scheduler's config type.
func (c *Config) JobConfig() scheduler.JobConfig {
	enabled := c.Job.Enabled
	hour := c.Job.ScheduledHour
	minute := c.Job.ScheduledMinute
	return scheduler.JobConfig{
		Enabled:                &enabled,
		ScheduledHour:          &hour,
		ScheduledMinute:        &minute,
		CheckIntervalSeconds:   c.Job.CheckIntervalSeconds,
		CallbackTimeoutSeconds: c.Job.CallbackTimeoutSeconds,
	}
}

// Window converts the alarm settings to a time-of-day window.
func (c *Config) Window() (timeofday.Window, error) {
	earliest, err := timeofday.FromMinutes(c.Alarm.EarliestEventStartMinutes)
	if err != nil {
		return timeofday.Window{}, err
	}
	latest, err := timeofday.FromMinutes(c.Alarm.LatestEventStartMinutes)
	if err != nil {
		return timeofday.Window{}, err
	}
	return timeofday.Window{Earliest: earliest, Latest: latest}, nil
}

// PreAlarm returns the alarm lead time.
func (c *Config) PreAlarm() time.Duration {
	return time.Duration(c.Alarm.PreAlarmMinutes) * time.Minute
}

// DataDir returns the calalarm data directory: ~/.calalarm.
func DataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".calalarm"
	}
	return filepath.Join(home, ".calalarm")
}

// ConfigPath returns the default configuration file path:
// ~/.calalarm/config.json.
func ConfigPath() string {
	return filepath.Join(DataDir(), "config.json")
}

// PrefsPath returns the default preferences store path:
// ~/.calalarm/prefs.json.
func PrefsPath() string {
	return filepath.Join(DataDir(), "prefs.json")
}
