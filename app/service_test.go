package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crewbench/crewgen/config"
	"github.com/crewbench/crewgen/core/generate"
	"github.com/crewbench/crewgen/core/generate/availability"
	"github.com/crewbench/crewgen/core/generate/vacations"
	"github.com/crewbench/crewgen/core/registry"
	"github.com/crewbench/crewgen/infra/logger"
)

const serviceRegistry = `airport , base , employees
BASE1 , 1 , 4
BASE2 , 1 , 2
`

const serviceSolution = `solution file
cost 1234
schedule 1 EMP001 (BASE1) : LEG_01_00100_0--->LEG_02_00101_0;
schedule 1 EMP002 (BASE2) : LEG_01_00102_0;
`

// writeServiceInstance creates a directory the availability and vacations
// generators can both consume.
func writeServiceInstance(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, registry.FileName), []byte(serviceRegistry), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "day_1.csv"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "day_2.csv"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, availability.SolutionName), []byte(serviceSolution), 0o644))
	return dir
}

func baseConfig(instances ...string) *config.Config {
	cfg := &config.Config{Instances: instances, Seed: 1}
	cfg.Availability.SetDefaults()
	cfg.Credit.SetDefaults()
	cfg.Metrics.SetDefaults()
	return cfg
}

func TestRunProcessesAllInstances(t *testing.T) {
	dirA := writeServiceInstance(t)
	dirB := writeServiceInstance(t)

	cfg := baseConfig(dirA, dirB)
	cfg.Availability.Enabled = true
	cfg.Availability.SlackPercent = 10
	cfg.Vacations.Enabled = true
	cfg.Vacations.PercentChosen = 50

	svc := New(cfg)
	require.NoError(t, svc.Run(context.Background()))

	for _, dir := range []string{dirA, dirB} {
		assert.FileExists(t, filepath.Join(dir, availability.OutputName))
		assert.FileExists(t, filepath.Join(dir, vacations.OutputName))
	}
}

func TestRunMissingRegistryAbortsBatch(t *testing.T) {
	empty := t.TempDir()
	untouched := writeServiceInstance(t)

	cfg := baseConfig(empty, untouched)
	cfg.Availability.Enabled = true

	svc := New(cfg)
	err := svc.Run(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, generate.ErrAbortBatch))
	assert.NoFileExists(t, filepath.Join(untouched, availability.OutputName))
}

func TestRunSkipsInstanceOnMissingSolution(t *testing.T) {
	broken := writeServiceInstance(t)
	require.NoError(t, os.Remove(filepath.Join(broken, availability.SolutionName)))
	healthy := writeServiceInstance(t)

	cfg := baseConfig(broken, healthy)
	cfg.Availability.Enabled = true
	cfg.Availability.SlackPercent = 5

	svc := New(cfg)
	require.NoError(t, svc.Run(context.Background()))
	assert.NoFileExists(t, filepath.Join(broken, availability.OutputName))
	assert.FileExists(t, filepath.Join(healthy, availability.OutputName))
}

func TestRunSkipStopsRemainingGenerators(t *testing.T) {
	dir := writeServiceInstance(t)

	svc := &Service{
		cfg: baseConfig(dir),
		log: logger.NopLogger{},
	}
	calls := 0
	svc.runners = []runner{
		{name: "broken", run: func(string) error { return generate.ErrMissingInput }},
		{name: "after", run: func(string) error { calls++; return nil }},
	}
	require.NoError(t, svc.Run(context.Background()))
	assert.Zero(t, calls, "generators after a skip must not run on that instance")
}

func TestNewAssignsRunID(t *testing.T) {
	cfg := baseConfig("some-instance")
	a := New(cfg)
	b := New(cfg)
	assert.NotEmpty(t, a.runID)
	assert.NotEqual(t, a.runID, b.runID, "each batch gets its own run id")
}

func TestRunHonorsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := baseConfig(writeServiceInstance(t))
	cfg.Availability.Enabled = true

	svc := New(cfg)
	err := svc.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
