package config

import "fmt"

// MainBaseSentinel selects the shape-preserving mode instead of a skew
// toward the main base.
const MainBaseSentinel = -1

// AvailabilityConfig parametrizes the crew availability generator.
type AvailabilityConfig struct {
	Enabled bool `json:"enabled"`
	// SlackPercent is the over-provisioning added to observed duty
	// counts, e.g. 10 for 10%.
	SlackPercent float64 `json:"slack_percent"`
	// MainBasePercent is the capacity share of the busiest base under the
	// monthly average mode; -1 keeps each base's daily shape instead.
	MainBasePercent float64 `json:"main_base_percent"`
}

// SetDefaults applies sane defaults.
func (c *AvailabilityConfig) SetDefaults() {
	if c.MainBasePercent == 0 {
		c.MainBasePercent = MainBaseSentinel
	}
}

// Validate checks the ranges.
func (c AvailabilityConfig) Validate() error {
	if c.SlackPercent < 0 {
		return fmt.Errorf("slack_percent must not be negative")
	}
	return validateMainBase(c.MainBasePercent)
}

// LegPrefsConfig parametrizes the preferred-airleg generator.
type LegPrefsConfig struct {
	Enabled bool `json:"enabled"`
	// PercentChosen is the share of a base's legs granted to each of its
	// employees.
	PercentChosen float64 `json:"percent_chosen"`
}

func (c *LegPrefsConfig) SetDefaults() {}

// Validate checks the ranges.
func (c LegPrefsConfig) Validate() error {
	return validatePercent("percent_chosen", c.PercentChosen)
}

// VacationsConfig parametrizes the vacation-window generator.
type VacationsConfig struct {
	Enabled bool `json:"enabled"`
	// PercentChosen is the share of all employees that receives a
	// vacation window.
	PercentChosen float64 `json:"percent_chosen"`
}

func (c *VacationsConfig) SetDefaults() {}

// Validate checks the ranges.
func (c VacationsConfig) Validate() error {
	return validatePercent("percent_chosen", c.PercentChosen)
}

// CreditConfig parametrizes the credit-constraint generator.
type CreditConfig struct {
	Enabled      bool    `json:"enabled"`
	SlackPercent float64 `json:"slack_percent"`
	// MainBasePercent is the credit share of the busiest base; -1 keeps
	// the observed distribution.
	MainBasePercent float64 `json:"main_base_percent"`
}

// SetDefaults applies sane defaults.
func (c *CreditConfig) SetDefaults() {
	if c.MainBasePercent == 0 {
		c.MainBasePercent = MainBaseSentinel
	}
}

// Validate checks the ranges.
func (c CreditConfig) Validate() error {
	if c.SlackPercent < 0 {
		return fmt.Errorf("slack_percent must not be negative")
	}
	return validateMainBase(c.MainBasePercent)
}

func validateMainBase(v float64) error {
	if v == MainBaseSentinel {
		return nil
	}
	if v <= 0 || v > 100 {
		return fmt.Errorf("main_base_percent must be in (0, 100] or the sentinel -1")
	}
	return nil
}

func validatePercent(name string, v float64) error {
	if v < 0 || v > 100 {
		return fmt.Errorf("%s must be in [0, 100]", name)
	}
	return nil
}
