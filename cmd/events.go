package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/calalarm/calalarm/internal/alarm"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "List today's calendar events",
	Long: `List today's calendar events, marking the one the daily job
would wake you for and the alarm it would set.`,
	RunE: runEvents,
}

func runEvents(_ *cobra.Command, _ []string) error {
	_, c, err := loadServices()
	if err != nil {
		return err
	}

	creator := c.Creator()
	events, err := creator.FetchToday(context.Background())
	if err != nil {
		return fmt.Errorf("fetch events: %w", err)
	}
	if len(events) == 0 {
		fmt.Println("No events today.")
		return nil
	}

	now := time.Now()
	selected, found := alarm.SelectEarliest(events, creator.Window(), now)

	fmt.Printf("%s Today's events (window %s):\n\n", logo, creator.Window())
	for _, ev := range events {
		mark := " "
		if found && ev == selected {
			mark = "*"
		}
		kind := ""
		if ev.AllDay {
			kind = " (all-day)"
		}
		fmt.Printf("  %s %s  %s%s\n", mark, ev.StartDate.Format("15:04"), ev.Title, kind)
	}

	if !found {
		fmt.Println("\nNo event in the wake-up window; no alarm would be set.")
		return nil
	}
	req, ok := alarm.Compute(selected, creator.PreAlarm(), now)
	if !ok {
		fmt.Println("\nAlarm time already passed; no alarm would be set.")
		return nil
	}
	fmt.Printf("\nAlarm: %02d:%02d — %s\n", req.Hour, req.Minute, req.Title)
	return nil
}
