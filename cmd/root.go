// Package cmd implements the calalarm CLI using cobra.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/calalarm/calalarm/internal/config"
	"github.com/calalarm/calalarm/internal/dependency"
)

const version = "0.1.0"
const logo = "⏰"

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "calalarm",
	Short: logo + " calalarm — calendar wake-up alarms",
	Long: logo + " calalarm — sets one wake-up alarm per day, a configurable " +
		"lead time before your first morning appointment",
}

// Execute runs the root command and exits on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = version

	rootCmd.AddCommand(daemonCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(scheduleCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(eventsCmd)
}

// loadServices loads the config file and builds the service container.
func loadServices() (*config.Config, *dependency.Container, error) {
	cfg, err := config.Load(config.ConfigPath())
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	c, err := dependency.New(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("wire services: %w", err)
	}
	return cfg, c, nil
}
