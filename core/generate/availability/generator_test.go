package availability

import (
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crewbench/crewgen/core/generate"
	"github.com/crewbench/crewgen/infra/logger"
)

const testRegistry = `airport , base , employees
BASE1 , 1 , 4
BASE2 , 1 , 2
`

const testSolution = `solution file
cost 1234
schedule 1 EMP001 (BASE1) : LEG_01_00100_0--->LEG_01_00101_0;
schedule 1 EMP002 (BASE1) : LEG_01_00102_0;
schedule 1 EMP003 (BASE2) : TDH_LEG_01_00103_0--->LEG_01_00104_0;
`

func writeInstance(t *testing.T, numDays int) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "listOfBases.csv"), []byte(testRegistry), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, SolutionName), []byte(testSolution), 0o644))
	for i := 1; i <= numDays; i++ {
		require.NoError(t, os.WriteFile(filepath.Join(dir, fmt.Sprintf("day_%d.csv", i)), nil, 0o644))
	}
	return dir
}

func TestRunPerDay(t *testing.T) {
	dir := writeInstance(t, 1)
	gen := New(Config{SlackPercent: 0, MainBasePercent: -1},
		logger.NopLogger{}, rand.New(rand.NewSource(1)))

	slack, err := gen.Run(dir)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, OutputName))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 4)

	assert.Contains(t, lines[0], "slack added")
	assert.Empty(t, lines[1])

	header := splitRow(lines[2])
	assert.Equal(t, []string{"base", "BASE1", "BASE2"}, header)

	row := splitRow(lines[3])
	require.Len(t, row, 3)
	assert.Equal(t, "Day1", row[0])

	// Raw counts are 2 and 1; with zero slack exactly one extra unit is
	// forced somewhere.
	var total int
	for _, cell := range row[1:] {
		var v int
		_, err := fmt.Sscan(cell, &v)
		require.NoError(t, err)
		total += v
	}
	assert.Equal(t, 4, total)
	assert.InDelta(t, slack, 100.0/3, 1e-9)
}

func TestRunMonthlyIsFlat(t *testing.T) {
	dir := writeInstance(t, 3)
	gen := New(Config{SlackPercent: 10, MainBasePercent: 60},
		logger.NopLogger{}, rand.New(rand.NewSource(1)))

	_, err := gen.Run(dir)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, OutputName))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, splitRow(lines[3])[1:], splitRow(lines[4])[1:])
	assert.Equal(t, splitRow(lines[3])[1:], splitRow(lines[5])[1:])
}

func TestRunMissingRegistryAbortsBatch(t *testing.T) {
	gen := New(Config{MainBasePercent: -1}, logger.NopLogger{}, rand.New(rand.NewSource(1)))
	_, err := gen.Run(t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.Is(err, generate.ErrAbortBatch))
}

func TestRunMissingSolutionSkipsInstance(t *testing.T) {
	dir := writeInstance(t, 1)
	require.NoError(t, os.Remove(filepath.Join(dir, SolutionName)))

	gen := New(Config{MainBasePercent: -1}, logger.NopLogger{}, rand.New(rand.NewSource(1)))
	_, err := gen.Run(dir)
	require.Error(t, err)
	assert.True(t, errors.Is(err, generate.ErrMissingInput))
	assert.False(t, errors.Is(err, generate.ErrAbortBatch))
}

func TestRunRegistryWithoutBasesSkipsInstance(t *testing.T) {
	// Every airport flagged 0: no base may receive capacity, so the
	// instance is rejected before the apportionment engine runs.
	dir := writeInstance(t, 1)
	noBases := "airport , base , employees\nAPT01 , 0 , 4\nAPT02 , 0 , 2\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "listOfBases.csv"), []byte(noBases), 0o644))

	gen := New(Config{MainBasePercent: -1}, logger.NopLogger{}, rand.New(rand.NewSource(1)))
	_, err := gen.Run(dir)
	require.Error(t, err)
	assert.True(t, errors.Is(err, generate.ErrMissingInput))
	assert.False(t, errors.Is(err, generate.ErrAbortBatch))
}

func TestRunNoDayFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "listOfBases.csv"), []byte(testRegistry), 0o644))

	gen := New(Config{MainBasePercent: -1}, logger.NopLogger{}, rand.New(rand.NewSource(1)))
	_, err := gen.Run(dir)
	assert.True(t, errors.Is(err, generate.ErrMissingInput))
}

func splitRow(line string) []string {
	cells := strings.Split(line, ",")
	for i := range cells {
		cells[i] = strings.TrimSpace(cells[i])
	}
	return cells
}
