// Package legprefs assigns preferred airlegs to fictive employees: each
// employee of a base receives a fixed percentage of the legs flown by that
// base's pairings in the initial solution, sampled without replacement.
package legprefs

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	"github.com/crewbench/crewgen/core/generate"
	"github.com/crewbench/crewgen/core/logger"
	"github.com/crewbench/crewgen/core/registry"
)

const (
	// SolutionName lists all pairings with their legs and home base.
	SolutionName = "initialSolution.in"
	// OutputName is the generated preference table.
	OutputName = "PreferredAirLegs.csv"

	deadheadPrefix = "TDH"
)

// Config holds the sampling rate.
type Config struct {
	// PercentChosen is the share of a base's legs assigned to each of its
	// employees.
	PercentChosen float64
}

// Generator produces one preference table per instance.
type Generator struct {
	cfg  Config
	log  logger.Logger
	rand *rand.Rand
}

// New returns a generator sharing the process-wide random source.
func New(cfg Config, log logger.Logger, rnd *rand.Rand) *Generator {
	return &Generator{cfg: cfg, log: log, rand: rnd}
}

// Run generates preferred airlegs for one instance directory. A missing
// registry or solution file abandons the instance only.
func (g *Generator) Run(dir string) error {
	entries, err := registry.Load(dir)
	if err != nil {
		return fmt.Errorf("%w: %v", generate.ErrMissingInput, err)
	}

	f, err := os.Open(filepath.Join(dir, SolutionName))
	if err != nil {
		return fmt.Errorf("%w: %v", generate.ErrMissingInput, err)
	}
	pools, err := legPools(f, entries)
	f.Close()
	if err != nil {
		return err
	}

	path := filepath.Join(dir, OutputName)
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %v", generate.ErrWriteFailure, err)
	}
	if err := g.write(out, entries, pools); err != nil {
		out.Close()
		return fmt.Errorf("%w: %v", generate.ErrWriteFailure, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("%w: %v", generate.ErrWriteFailure, err)
	}

	g.log.Infof("wrote %s", path)
	return nil
}

// legPools gathers every non-deadhead leg of the solution into the pool of
// the pairing's base. The file starts with two preamble lines; each pairing
// line names its base in the fifth field, and the legs follow in alternating
// separator/leg fields with the final leg carrying a semicolon.
func legPools(r io.Reader, entries []registry.Entry) (map[string][]string, error) {
	index := make(map[string]int, len(entries))
	for i, e := range entries {
		index[e.Name] = i
	}

	pools := make(map[string][]string)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		if line <= 2 || strings.TrimSpace(scanner.Text()) == "" {
			continue
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) < 5 {
			continue
		}
		base := fields[4]
		if _, known := index[base]; !known {
			continue
		}
		for i := 6; i < len(fields); i += 2 {
			leg := strings.TrimSuffix(fields[i], ";")
			if !strings.HasPrefix(leg, deadheadPrefix) {
				pools[base] = append(pools[base], leg)
			}
			if leg != fields[i] {
				break
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", SolutionName, err)
	}
	return pools, nil
}

// write emits one row per employee, numbering employees consecutively
// across bases in registry order.
func (g *Generator) write(w io.Writer, entries []registry.Entry, pools map[string][]string) error {
	if _, err := fmt.Fprintf(w, "employee%slegs\n", generate.Separator); err != nil {
		return err
	}
	employee := 0
	for _, e := range entries {
		legs := pools[e.Name]
		chosen := int(float64(len(legs)) * g.cfg.PercentChosen / 100)
		for i := 0; i < e.EmployeeCount; i++ {
			employee++
			cells := make([]string, 0, chosen+1)
			cells = append(cells, fmt.Sprintf("EMP%03d", employee))
			for _, pick := range g.rand.Perm(len(legs))[:chosen] {
				cells = append(cells, legs[pick])
			}
			if _, err := fmt.Fprintln(w, strings.Join(cells, generate.Separator)); err != nil {
				return err
			}
		}
	}
	return nil
}
