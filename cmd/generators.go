package cmd

import (
	"github.com/spf13/cobra"

	"github.com/crewbench/crewgen/config"
)

var availabilityCmd = &cobra.Command{
	Use:   "availability",
	Short: "Generate crew availability constraints only",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOnly(func(c *config.Config) { c.Availability.Enabled = true })
	},
}

var legprefsCmd = &cobra.Command{
	Use:   "legprefs",
	Short: "Generate preferred airlegs only",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOnly(func(c *config.Config) { c.LegPreferences.Enabled = true })
	},
}

var vacationsCmd = &cobra.Command{
	Use:   "vacations",
	Short: "Generate preferred vacations only",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOnly(func(c *config.Config) { c.Vacations.Enabled = true })
	},
}

var creditCmd = &cobra.Command{
	Use:   "credit",
	Short: "Generate credit constraints only",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOnly(func(c *config.Config) { c.Credit.Enabled = true })
	},
}

func init() {
	rootCmd.AddCommand(availabilityCmd, legprefsCmd, vacationsCmd, creditCmd)
}
