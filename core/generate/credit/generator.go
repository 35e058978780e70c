// Package credit limits the credited hours available per base. Observed
// credits are read from a previous solution, stripped of briefing and
// debriefing time, inflated by a slack margin and either kept in their
// observed proportions or skewed toward the main base.
package credit

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/crewbench/crewgen/core/generate"
	"github.com/crewbench/crewgen/core/logger"
	"github.com/crewbench/crewgen/core/model"
	"github.com/crewbench/crewgen/core/registry"
	"github.com/crewbench/crewgen/core/schedule"
)

const (
	// CreditedHoursName holds per-employee credit records from a previous
	// solution.
	CreditedHoursName = "creditedHours"
	// SolutionName is the schedule used to price briefings out of the
	// observed credits.
	SolutionName = "solution_0"
	// OutputName is the generated constraint table.
	OutputName = "credit_constrains.csv"

	// briefing and debriefing cost one credit unit per duty-day.
	briefingCreditPerDuty = 1

	fieldWidth = 10
)

// Config selects the slack margin and the skew.
type Config struct {
	SlackPercent float64
	// MainBasePercent is the credit share of the busiest base; the
	// sentinel -1 keeps the observed distribution instead.
	MainBasePercent float64
}

// ErrDegenerate is reported when a skew is requested for a single-base
// instance, which leaves nothing to split among "the other bases".
var ErrDegenerate = errors.New("credit skew requires at least two bases")

// Generator produces one credit constraint table per instance.
type Generator struct {
	cfg Config
	log logger.Logger
}

// New returns a generator.
func New(cfg Config, log logger.Logger) *Generator {
	return &Generator{cfg: cfg, log: log}
}

// Run generates credit constraints for one instance directory. As with the
// availability generator, a missing base registry aborts the remaining
// batch.
func (g *Generator) Run(dir string) error {
	entries, err := registry.Load(dir)
	if err != nil {
		return fmt.Errorf("%w: %v", generate.ErrAbortBatch, err)
	}
	bases := registry.Bases(entries)
	if g.cfg.MainBasePercent >= 0 && len(bases) < 2 {
		return ErrDegenerate
	}

	credits, err := g.observedCredits(dir, bases)
	if err != nil {
		return err
	}

	path := filepath.Join(dir, OutputName)
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %v", generate.ErrWriteFailure, err)
	}
	if err := g.write(out, bases, credits); err != nil {
		out.Close()
		return fmt.Errorf("%w: %v", generate.ErrWriteFailure, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("%w: %v", generate.ErrWriteFailure, err)
	}

	g.log.Infof("wrote %s", path)
	return nil
}

// observedCredits reads per-base credited hours and subtracts the briefing
// credit implied by the solution's duty-days.
func (g *Generator) observedCredits(dir string, bases []model.Base) ([]float64, error) {
	f, err := os.Open(filepath.Join(dir, CreditedHoursName))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", generate.ErrMissingInput, err)
	}
	credits, err := readCredits(f, bases)
	f.Close()
	if err != nil {
		return nil, err
	}

	sol, err := os.Open(filepath.Join(dir, SolutionName))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", generate.ErrMissingInput, err)
	}
	duties, err := schedule.CountDuties(sol, bases)
	sol.Close()
	if err != nil {
		return nil, err
	}

	for i := range credits {
		credits[i] -= float64(duties[i] * briefingCreditPerDuty)
	}
	return credits, nil
}

// readCredits parses the credited-hours stream. Each record is one line of
// at least eight fields whose second field embeds the employee's base, as
// in "2(BASE1)", and whose eighth field is the credit; two detail lines
// follow. Reading stops at the first line matching no base.
func readCredits(r io.Reader, bases []model.Base) ([]float64, error) {
	credits := make([]float64, len(bases))

	scanner := bufio.NewScanner(r)
	skip := 0
	for scanner.Scan() {
		if skip > 0 {
			skip--
			continue
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) < 8 {
			break
		}
		idx := -1
		for _, b := range bases {
			if strings.Contains(fields[1], b.Name) {
				idx = b.Index
				break
			}
		}
		if idx < 0 {
			break
		}
		credit, err := strconv.ParseFloat(fields[7], 64)
		if err != nil {
			return nil, fmt.Errorf("parse credit %q: %w", fields[7], err)
		}
		credits[idx] += credit
		skip = 2
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", CreditedHoursName, err)
	}
	return credits, nil
}

func (g *Generator) write(w io.Writer, bases []model.Base, credits []float64) error {
	if err := generate.Comment(w, " slack added : %.6g%%", g.cfg.SlackPercent); err != nil {
		return err
	}

	labelWidth := 6 * len(bases)
	if _, err := fmt.Fprintf(w, "%-*s", labelWidth, "base"); err != nil {
		return err
	}
	for _, b := range bases {
		if _, err := fmt.Fprintf(w, "%s%-*s", generate.Separator, fieldWidth, b.Name); err != nil {
			return err
		}
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return err
	}

	var total float64
	main := 0
	for i, c := range credits {
		total += c
		if c > credits[main] {
			main = i
		}
	}
	total *= 1 + g.cfg.SlackPercent/100

	shares := make([]float64, len(bases))
	labels := make([]string, len(bases))
	if g.cfg.MainBasePercent < 0 {
		for i, c := range credits {
			shares[i] = c * (1 + g.cfg.SlackPercent/100)
			labels[i] = fmt.Sprintf("%.3g%%", safeShare(shares[i], total))
		}
	} else {
		rest := (100 - g.cfg.MainBasePercent) / float64(len(bases)-1)
		for i := range bases {
			if i == main {
				shares[i] = g.cfg.MainBasePercent / 100 * total
				labels[i] = fmt.Sprintf("%.3g%%", g.cfg.MainBasePercent)
			} else {
				shares[i] = rest / 100 * total
				labels[i] = fmt.Sprintf("%.3g%%", rest)
			}
		}
	}

	if _, err := fmt.Fprintf(w, "%-*s", labelWidth, strings.Join(labels, "/")); err != nil {
		return err
	}
	for _, s := range shares {
		if _, err := fmt.Fprintf(w, "%s%-*s", generate.Separator, fieldWidth, strconv.FormatFloat(s, 'g', 6, 64)); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// safeShare avoids a zero division when the instance carries no credit.
func safeShare(part, total float64) float64 {
	if total == 0 {
		return 0
	}
	return part / total * 100
}
