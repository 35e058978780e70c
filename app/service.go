// Package app wires the configured generators into one batch run over the
// instance directories.
package app

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/crewbench/crewgen/config"
	"github.com/crewbench/crewgen/core/generate"
	"github.com/crewbench/crewgen/core/generate/availability"
	"github.com/crewbench/crewgen/core/generate/credit"
	"github.com/crewbench/crewgen/core/generate/legprefs"
	"github.com/crewbench/crewgen/core/generate/vacations"
	corelogger "github.com/crewbench/crewgen/core/logger"
	"github.com/crewbench/crewgen/infra/logger"
	"github.com/crewbench/crewgen/infra/metrics"
)

// runner is one enabled generator, ready to process an instance directory.
type runner struct {
	name string
	run  func(dir string) error
}

// Service processes every configured instance sequentially. The random
// source is shared by all generators and seeded once per process, so
// repeated runs only reproduce under an explicit seed.
type Service struct {
	cfg     *config.Config
	log     corelogger.Logger
	runID   string
	runners []runner
}

// New builds a Service from the configuration.
func New(cfg *config.Config) *Service {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rnd := rand.New(rand.NewSource(seed))
	logg := logger.New("batch")

	s := &Service{cfg: cfg, log: logg, runID: uuid.NewString()}
	logg.Debugw("seeded", map[string]any{"seed": seed, "run_id": s.runID})
	if cfg.Availability.Enabled {
		gen := availability.New(availability.Config{
			SlackPercent:    cfg.Availability.SlackPercent,
			MainBasePercent: cfg.Availability.MainBasePercent,
		}, logger.New("availability"), rnd)
		s.runners = append(s.runners, runner{name: "availability", run: func(dir string) error {
			slack, err := gen.Run(dir)
			if err == nil {
				metrics.RecordAchievedSlack("availability", slack)
			}
			return err
		}})
	}
	if cfg.LegPreferences.Enabled {
		gen := legprefs.New(legprefs.Config{PercentChosen: cfg.LegPreferences.PercentChosen},
			logger.New("legprefs"), rnd)
		s.runners = append(s.runners, runner{name: "legprefs", run: gen.Run})
	}
	if cfg.Vacations.Enabled {
		gen := vacations.New(vacations.Config{PercentChosen: cfg.Vacations.PercentChosen},
			logger.New("vacations"), rnd)
		s.runners = append(s.runners, runner{name: "vacations", run: gen.Run})
	}
	if cfg.Credit.Enabled {
		gen := credit.New(credit.Config{
			SlackPercent:    cfg.Credit.SlackPercent,
			MainBasePercent: cfg.Credit.MainBasePercent,
		}, logger.New("credit"))
		s.runners = append(s.runners, runner{name: "credit", run: gen.Run})
	}
	return s
}

// Run processes all instances. Per-instance failures are logged and the
// batch moves on, with one exception: a generator reporting ErrAbortBatch
// (missing base registry in the availability or credit generators) stops
// the remaining batch.
func (s *Service) Run(ctx context.Context) error {
	if s.cfg.Metrics.PrometheusEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, s.cfg.Metrics.PrometheusPort); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}

	for _, dir := range s.cfg.Instances {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err := s.runInstance(dir); err != nil {
			s.log.Errorf("run %s: instance %s aborted the batch: %v", s.runID, dir, err)
			metrics.RecordInstance("aborted")
			return err
		}
	}
	return nil
}

// runInstance runs every enabled generator on one directory. A non-nil
// return means the whole batch must stop.
func (s *Service) runInstance(dir string) error {
	for _, r := range s.runners {
		err := r.run(dir)
		switch {
		case err == nil:
			metrics.RecordArtifact(r.name)
		case errors.Is(err, generate.ErrAbortBatch):
			return err
		default:
			// MissingInput, WriteFailure and degenerate single-base
			// configurations abandon the instance.
			s.log.Errorf("run %s: instance %s: %s: %v", s.runID, dir, r.name, err)
			metrics.RecordInstance("skipped")
			return nil
		}
	}
	metrics.RecordInstance("ok")
	s.log.Infof("run %s: instance %s done", s.runID, dir)
	return nil
}
