// Package availability derives crew availability constraints from a
// previous solution's schedule: duty-days are counted per base and per day,
// inflated by a slack margin and apportioned back to integer capacities.
package availability

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/crewbench/crewgen/core/apportion"
	"github.com/crewbench/crewgen/core/generate"
	"github.com/crewbench/crewgen/core/logger"
	"github.com/crewbench/crewgen/core/model"
	"github.com/crewbench/crewgen/core/registry"
	"github.com/crewbench/crewgen/core/schedule"
)

const (
	// SolutionName is the schedule file of the previous solution.
	SolutionName = "solution_0"
	// OutputName is the generated constraint table.
	OutputName = "crew_avail_const.csv"
)

// Config selects the slack margin and the distribution policy.
type Config struct {
	SlackPercent float64
	// MainBasePercent skews the monthly average toward the busiest base.
	// The sentinel -1 selects the per-day policy instead.
	MainBasePercent float64
}

// Generator produces one availability constraint table per instance.
type Generator struct {
	cfg  Config
	log  logger.Logger
	rand *rand.Rand
}

// New returns a generator. The random source drives the per-day policy's
// tie-breaking and is shared across instances.
func New(cfg Config, log logger.Logger, rnd *rand.Rand) *Generator {
	return &Generator{cfg: cfg, log: log, rand: rnd}
}

// Run generates the constraint table for one instance directory and
// returns the slack percentage actually achieved after rounding.
//
// A missing base registry aborts the remaining batch, not just this
// instance; every other failure abandons only the instance.
func (g *Generator) Run(dir string) (float64, error) {
	entries, err := registry.Load(dir)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", generate.ErrAbortBatch, err)
	}
	bases := registry.Bases(entries)
	if len(bases) == 0 {
		return 0, fmt.Errorf("%w: registry of %s flags no airport as a base", generate.ErrMissingInput, dir)
	}

	numDays := registry.NumDays(dir)
	if numDays == 0 {
		return 0, fmt.Errorf("%w: no day files in %s", generate.ErrMissingInput, dir)
	}

	matrix, err := g.countDuties(dir, bases, numDays)
	if err != nil {
		return 0, err
	}

	alloc, err := g.policy().Apportion(matrix)
	if err != nil {
		return 0, err
	}

	path := filepath.Join(dir, OutputName)
	out, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", generate.ErrWriteFailure, err)
	}
	if err := WriteTable(out, alloc); err != nil {
		out.Close()
		return 0, fmt.Errorf("%w: %v", generate.ErrWriteFailure, err)
	}
	if err := out.Close(); err != nil {
		return 0, fmt.Errorf("%w: %v", generate.ErrWriteFailure, err)
	}

	g.log.Infof("wrote %s (%d bases, %d days, %.2f%% slack achieved)",
		path, len(bases), numDays, alloc.AchievedSlackPercent)
	return alloc.AchievedSlackPercent, nil
}

func (g *Generator) countDuties(dir string, bases []model.Base, numDays int) (*model.DutyCountMatrix, error) {
	f, err := os.Open(filepath.Join(dir, SolutionName))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", generate.ErrMissingInput, err)
	}
	defer f.Close()
	return schedule.Aggregate(f, bases, numDays)
}

func (g *Generator) policy() apportion.Policy {
	if g.cfg.MainBasePercent < 0 {
		return apportion.PerDayPreserveShape{
			SlackFraction: g.cfg.SlackPercent / 100,
			Rand:          g.rand,
		}
	}
	return apportion.MonthlySkewedAverage{
		SlackFraction:   g.cfg.SlackPercent / 100,
		MainBasePercent: g.cfg.MainBasePercent,
	}
}
