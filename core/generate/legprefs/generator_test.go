package legprefs

import (
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crewbench/crewgen/core/generate"
	"github.com/crewbench/crewgen/core/registry"
	"github.com/crewbench/crewgen/infra/logger"
)

const testRegistry = `airport , base , employees
BASE1 , 1 , 2
BASE2 , 1 , 1
`

const testSolutionIn = `pairings of the initial solution

pairing 1 P001 cost BASE1 : LEG_01_00100_0 , LEG_01_00101_0 , TDH_LEG_02_00102_0 , LEG_02_00103_0;

pairing 2 P002 cost BASE2 : LEG_01_00104_0 , LEG_03_00105_0;

pairing 3 P003 cost UNKNOWN : LEG_04_00106_0;
`

func writeInstance(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, registry.FileName), []byte(testRegistry), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, SolutionName), []byte(testSolutionIn), 0o644))
	return dir
}

func TestLegPools(t *testing.T) {
	entries := []registry.Entry{
		{Name: "BASE1", IsBase: true, EmployeeCount: 2},
		{Name: "BASE2", IsBase: true, EmployeeCount: 1},
	}
	pools, err := legPools(strings.NewReader(testSolutionIn), entries)
	require.NoError(t, err)

	// The deadhead is excluded and the unknown base contributes nothing.
	assert.Equal(t, []string{"LEG_01_00100_0", "LEG_01_00101_0", "LEG_02_00103_0"}, pools["BASE1"])
	assert.Equal(t, []string{"LEG_01_00104_0", "LEG_03_00105_0"}, pools["BASE2"])
	assert.NotContains(t, pools, "UNKNOWN")
}

func TestRun(t *testing.T) {
	dir := writeInstance(t)
	gen := New(Config{PercentChosen: 70}, logger.NopLogger{}, rand.New(rand.NewSource(5)))
	require.NoError(t, gen.Run(dir))

	data, err := os.ReadFile(filepath.Join(dir, OutputName))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 4) // header + 3 employees

	assert.Equal(t, "employee , legs", lines[0])

	// 70% of BASE1's 3 legs is 2 per employee; 70% of BASE2's 2 legs is 1.
	for i, wantLegs := range []int{2, 2, 1} {
		cells := strings.Split(lines[i+1], generate.Separator)
		require.Len(t, cells, wantLegs+1, "line %d", i+1)
		seen := map[string]bool{}
		for _, leg := range cells[1:] {
			assert.False(t, seen[leg], "leg repeated for one employee")
			seen[leg] = true
		}
	}
	assert.True(t, strings.HasPrefix(lines[1], "EMP001"))
	assert.True(t, strings.HasPrefix(lines[3], "EMP003"))
}

func TestRunMissingSolutionSkipsInstance(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, registry.FileName), []byte(testRegistry), 0o644))

	gen := New(Config{PercentChosen: 50}, logger.NopLogger{}, rand.New(rand.NewSource(1)))
	err := gen.Run(dir)
	assert.True(t, errors.Is(err, generate.ErrMissingInput))
	assert.False(t, errors.Is(err, generate.ErrAbortBatch))
}
