package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/crewbench/crewgen/app"
	"github.com/crewbench/crewgen/config"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "crewgen",
	Short: "Generate synthetic auxiliary inputs for crew-scheduling benchmark instances",
	RunE:  run,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "config.yaml", "configuration file")
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }

func run(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	return app.New(cfg).Run(ctx)
}

// loadWith loads the configuration and forces a single generator on,
// disabling the others. The subcommands use it so one tool of the chain can
// be re-run in isolation.
func loadWith(enable func(*config.Config)) (*config.Config, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg.Availability.Enabled = false
	cfg.LegPreferences.Enabled = false
	cfg.Vacations.Enabled = false
	cfg.Credit.Enabled = false
	enable(cfg)
	return cfg, nil
}

func runOnly(enable func(*config.Config)) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadWith(enable)
	if err != nil {
		return err
	}
	return app.New(cfg).Run(ctx)
}
