package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var checkForce bool

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Perform a single wake-up check",
	Long: `Perform a single wake-up check against the persisted run state.

Runs the alarm-creation callback only if the job is enabled, today's
scheduled time has passed, and it has not already run today. Use
--force to bypass the run state and compute the alarm unconditionally.`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().BoolVar(&checkForce, "force", false, "run the callback regardless of run state")
}

func runCheck(_ *cobra.Command, _ []string) error {
	cfg, c, err := loadServices()
	if err != nil {
		return err
	}

	ctx := context.Background()

	if checkForce {
		if err := c.Creator().Run(ctx); err != nil {
			return fmt.Errorf("alarm creation: %w", err)
		}
		fmt.Println("✓ Alarm check completed (forced)")
		return nil
	}

	job := c.DailyJob()
	if err := job.Register(c.Creator().Run); err != nil {
		return fmt.Errorf("register job: %w", err)
	}
	if err := job.Schedule(cfg.JobConfig()); err != nil {
		return fmt.Errorf("schedule job: %w", err)
	}

	if job.RunIfScheduled(ctx, c.Creator().Run) {
		fmt.Println("✓ Scheduled run executed")
	} else {
		fmt.Println("No run due (disabled, before scheduled time, or already ran today)")
	}
	return nil
}
