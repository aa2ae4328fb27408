package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/calalarm/calalarm/internal/config"
	"github.com/calalarm/calalarm/internal/dependency"
	"github.com/calalarm/calalarm/internal/timeofday"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show calalarm status",
	RunE:  runStatus,
}

func runStatus(_ *cobra.Command, _ []string) error {
	cfgPath := config.ConfigPath()

	fmt.Printf("%s calalarm Status\n\n", logo)

	_, statErr := os.Stat(cfgPath)
	cfgMark := "✗"
	if statErr == nil {
		cfgMark = "✓"
	}
	fmt.Printf("Config:     %s %s\n", cfgPath, cfgMark)

	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Printf("  (could not load config: %v)\n", err)
		return nil
	}

	state := "disabled"
	if cfg.Job.Enabled {
		state = "enabled"
	}
	win, err := cfg.Window()
	if err != nil {
		return err
	}

	fmt.Printf("Job:        %s\n", state)
	fmt.Printf("Check at:   %02d:%02d daily\n", cfg.Job.ScheduledHour, cfg.Job.ScheduledMinute)
	fmt.Printf("Window:     %s\n", win)
	fmt.Printf("Pre-alarm:  %s\n", timeofday.FormatDuration(cfg.Alarm.PreAlarmMinutes))
	fmt.Printf("Calendar:   %s\n", cfg.Calendar.Provider)
	fmt.Printf("Notify:     %s\n", cfg.Notify.Channel)

	c, err := dependency.New(cfg)
	if err != nil {
		return err
	}
	if last, ok := c.DailyJob().LastRun(); ok {
		fmt.Printf("Last run:   %s\n", last.Format("2006-01-02 15:04:05"))
	} else {
		fmt.Println("Last run:   (never)")
	}
	return nil
}
