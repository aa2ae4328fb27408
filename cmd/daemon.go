package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Run the background alarm scheduler",
	RunE:  runDaemon,
}

func runDaemon(_ *cobra.Command, _ []string) error {
	cfg, c, err := loadServices()
	if err != nil {
		return err
	}

	fmt.Printf("%s Starting calalarm daemon...\n", logo)

	job := c.DailyJob()
	if err := job.Register(c.Creator().Run); err != nil {
		return fmt.Errorf("register job: %w", err)
	}
	if err := job.Schedule(cfg.JobConfig()); err != nil {
		return fmt.Errorf("schedule job: %w", err)
	}
	if !cfg.Job.Enabled {
		fmt.Println("Warning: job is disabled — the daemon will idle until 'calalarm schedule --enable'")
	}

	// Graceful shutdown context.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return c.Trigger().Start(gctx) })

	fmt.Printf("%s Daemon running. Press Ctrl+C to stop.\n", logo)

	if err := g.Wait(); err != nil && err != context.Canceled {
		fmt.Fprintf(os.Stderr, "daemon error: %v\n", err)
		return err
	}
	fmt.Println("\nShutdown complete.")
	return nil
}
