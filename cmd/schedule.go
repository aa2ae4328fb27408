package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/calalarm/calalarm/internal/config"
	"github.com/calalarm/calalarm/internal/dependency"
	"github.com/calalarm/calalarm/internal/timeofday"
)

var (
	scheduleEnable   bool
	scheduleDisable  bool
	scheduleAt       string
	scheduleWindow   string
	schedulePreAlarm int
	scheduleInterval int
	scheduleTimeout  int
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Configure and arm the daily job",
	Long: `Configure and arm the daily alarm-creation job.

Updates the configuration file, persists the job config to the
preferences store, and (if the job is enabled) arms the periodic
trigger. Flags not given keep their current values.`,
	RunE: runSchedule,
}

func init() {
	scheduleCmd.Flags().BoolVar(&scheduleEnable, "enable", false, "enable the daily job")
	scheduleCmd.Flags().BoolVar(&scheduleDisable, "disable", false, "disable the daily job")
	scheduleCmd.Flags().StringVar(&scheduleAt, "at", "", "daily check time as HH:MM")
	scheduleCmd.Flags().StringVar(&scheduleWindow, "window", "", "event start window as HH:MM-HH:MM")
	scheduleCmd.Flags().IntVar(&schedulePreAlarm, "pre-alarm", -1, "minutes before the event to set the alarm")
	scheduleCmd.Flags().IntVar(&scheduleInterval, "interval", 0, "wake-up check interval in seconds")
	scheduleCmd.Flags().IntVar(&scheduleTimeout, "timeout", 0, "callback timeout in seconds")
}

func runSchedule(_ *cobra.Command, _ []string) error {
	if scheduleEnable && scheduleDisable {
		return fmt.Errorf("--enable and --disable are mutually exclusive")
	}

	cfg, err := config.Load(config.ConfigPath())
	if err != nil {
		return err
	}

	if scheduleEnable {
		cfg.Job.Enabled = true
	}
	if scheduleDisable {
		cfg.Job.Enabled = false
	}
	if scheduleAt != "" {
		at, err := timeofday.Parse(scheduleAt)
		if err != nil {
			return fmt.Errorf("--at: %w", err)
		}
		cfg.Job.ScheduledHour, cfg.Job.ScheduledMinute = at.HourMinute()
	}
	if scheduleWindow != "" {
		win, err := parseWindow(scheduleWindow)
		if err != nil {
			return fmt.Errorf("--window: %w", err)
		}
		cfg.Alarm.EarliestEventStartMinutes = win.Earliest.Minutes()
		cfg.Alarm.LatestEventStartMinutes = win.Latest.Minutes()
	}
	if schedulePreAlarm >= 0 {
		cfg.Alarm.PreAlarmMinutes = schedulePreAlarm
	}
	if scheduleInterval > 0 {
		cfg.Job.CheckIntervalSeconds = scheduleInterval
	}
	if scheduleTimeout > 0 {
		cfg.Job.CallbackTimeoutSeconds = scheduleTimeout
	}

	if err := config.Save(cfg, config.ConfigPath()); err != nil {
		return err
	}

	c, err := dependency.New(cfg)
	if err != nil {
		return err
	}
	job := c.DailyJob()
	if err := job.Register(c.Creator().Run); err != nil {
		return fmt.Errorf("register job: %w", err)
	}
	if err := job.Schedule(cfg.JobConfig()); err != nil {
		return fmt.Errorf("schedule job: %w", err)
	}

	win, err := cfg.Window()
	if err != nil {
		return err
	}
	state := "disabled"
	if cfg.Job.Enabled {
		state = "enabled"
	}
	fmt.Printf("%s Job %s\n", logo, state)
	fmt.Printf("  Daily check at: %02d:%02d\n", cfg.Job.ScheduledHour, cfg.Job.ScheduledMinute)
	fmt.Printf("  Event window:   %s\n", win)
	fmt.Printf("  Pre-alarm:      %s\n", timeofday.FormatDuration(cfg.Alarm.PreAlarmMinutes))
	return nil
}

// parseWindow parses "HH:MM-HH:MM" into a half-open window and rejects
// empty or inverted windows.
func parseWindow(s string) (timeofday.Window, error) {
	parts := strings.SplitN(s, "-", 2)
	if len(parts) != 2 {
		return timeofday.Window{}, fmt.Errorf("want HH:MM-HH:MM, got %q", s)
	}
	earliest, err := timeofday.Parse(parts[0])
	if err != nil {
		return timeofday.Window{}, err
	}
	latest, err := timeofday.Parse(parts[1])
	if err != nil {
		return timeofday.Window{}, err
	}
	if !earliest.Before(latest) {
		return timeofday.Window{}, fmt.Errorf("window %q is empty or inverted", s)
	}
	return timeofday.Window{Earliest: earliest, Latest: latest}, nil
}
