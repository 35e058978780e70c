package vacations

import (
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crewbench/crewgen/core/generate"
	"github.com/crewbench/crewgen/core/registry"
	"github.com/crewbench/crewgen/infra/logger"
)

const testRegistry = `airport , base , employees
BASE1 , 1 , 6
APT99 , 0 , 0
BASE2 , 1 , 4
`

func TestRun(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, registry.FileName), []byte(testRegistry), 0o644))

	gen := New(Config{PercentChosen: 50}, logger.NopLogger{}, rand.New(rand.NewSource(11)))
	require.NoError(t, gen.Run(dir))

	data, err := os.ReadFile(filepath.Join(dir, OutputName))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")

	assert.Equal(t,
		"employee , base , vacationName , startDate , startHour , endDate , endHour",
		lines[0])
	// 50% of 10 employees.
	require.Len(t, lines, 6)

	for i, line := range lines[1:] {
		cells := strings.Split(line, generate.Separator)
		require.Len(t, cells, 7)

		assert.True(t, strings.HasPrefix(cells[0], "EMP"), "employee id %q", cells[0])
		assert.Contains(t, []string{"BASE1", "BASE2"}, cells[1], "row %d base", i)
		assert.True(t, strings.HasPrefix(cells[2], "Vacation_"))
		assert.Equal(t, "00:00", cells[4])
		assert.Equal(t, "23:59", cells[6])

		start, err := time.Parse("2006-01-02", cells[3])
		require.NoError(t, err)
		end, err := time.Parse("2006-01-02", cells[5])
		require.NoError(t, err)

		days := int(end.Sub(start).Hours() / 24)
		assert.GreaterOrEqual(t, days, minDuration, "row %d too short", i)
		assert.LessOrEqual(t, days, maxDuration, "row %d too long", i)
		assert.Equal(t, time.January, start.Month())
		assert.Equal(t, time.January, end.Month())
	}
}

func TestRunMissingRegistrySkipsInstance(t *testing.T) {
	gen := New(Config{PercentChosen: 50}, logger.NopLogger{}, rand.New(rand.NewSource(1)))
	err := gen.Run(t.TempDir())
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "abort")
}

func TestSampleNeverExceedsBaseSlots(t *testing.T) {
	// Non-base airports inflate the head count that sizes the sample, but
	// only base employees can be drawn. The generator must stop when the
	// slots run out instead of panicking.
	reg := "airport , base , employees\nBASE1 , 1 , 2\nAPT99 , 0 , 50\n"
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, registry.FileName), []byte(reg), 0o644))

	gen := New(Config{PercentChosen: 100}, logger.NopLogger{}, rand.New(rand.NewSource(2)))
	require.NoError(t, gen.Run(dir))

	data, err := os.ReadFile(filepath.Join(dir, OutputName))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	assert.Len(t, lines, 3) // header + the two BASE1 employees
}
