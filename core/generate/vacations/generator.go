// Package vacations assigns random vacation windows to a sampled share of
// all employees. Windows last 2 to 14 days inside a 31-day month; they start
// at midnight and end at 23:59.
package vacations

import (
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/crewbench/crewgen/core/generate"
	"github.com/crewbench/crewgen/core/logger"
	"github.com/crewbench/crewgen/core/registry"
)

// OutputName is the generated vacation table.
const OutputName = "personalizedEmployees.csv"

// monthStart anchors every generated window; the benchmark period is a
// single synthetic month.
var monthStart = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

const (
	monthDays   = 31
	minDuration = 2
	maxDuration = 14
)

// Config holds the sampling rate.
type Config struct {
	// PercentChosen is the share of all employees that receives a
	// vacation window.
	PercentChosen float64
}

// Generator produces one vacation table per instance.
type Generator struct {
	cfg  Config
	log  logger.Logger
	rand *rand.Rand
}

// New returns a generator sharing the process-wide random source.
func New(cfg Config, log logger.Logger, rnd *rand.Rand) *Generator {
	return &Generator{cfg: cfg, log: log, rand: rnd}
}

// Run generates vacations for one instance directory. Failures abandon the
// instance only.
func (g *Generator) Run(dir string) error {
	entries, err := registry.Load(dir)
	if err != nil {
		return fmt.Errorf("%w: %v", generate.ErrMissingInput, err)
	}

	path := filepath.Join(dir, OutputName)
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %v", generate.ErrWriteFailure, err)
	}
	if err := g.write(out, entries); err != nil {
		out.Close()
		return fmt.Errorf("%w: %v", generate.ErrWriteFailure, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("%w: %v", generate.ErrWriteFailure, err)
	}

	g.log.Infof("wrote %s", path)
	return nil
}

func (g *Generator) write(w io.Writer, entries []registry.Entry) error {
	header := []string{"employee", "base", "vacationName", "startDate", "startHour", "endDate", "endHour"}
	if err := writeCells(w, header); err != nil {
		return err
	}

	// One slot per employee per base; picking a slot removes it so no
	// employee is selected twice. The head count that sizes the sample
	// includes every airport, bases or not, matching the original tool.
	var headCount int
	var slots []string
	for _, e := range entries {
		headCount += e.EmployeeCount
		if !e.IsBase {
			continue
		}
		for i := 0; i < e.EmployeeCount; i++ {
			slots = append(slots, e.Name)
		}
	}

	sample := int(float64(headCount) * g.cfg.PercentChosen / 100)
	for i := 1; i <= sample && len(slots) > 0; i++ {
		pick := g.rand.Intn(len(slots))
		base := slots[pick]
		slots[pick] = slots[len(slots)-1]
		slots = slots[:len(slots)-1]

		duration := minDuration + g.rand.Intn(maxDuration-minDuration+1)
		startDay := 1 + g.rand.Intn(monthDays-duration)
		start := monthStart.AddDate(0, 0, startDay-1)
		end := start.AddDate(0, 0, duration)

		row := []string{
			fmt.Sprintf("EMP%03d", i),
			base,
			fmt.Sprintf("Vacation_%03d", i),
			start.Format("2006-01-02"),
			"00:00",
			end.Format("2006-01-02"),
			"23:59",
		}
		if err := writeCells(w, row); err != nil {
			return err
		}
	}
	return nil
}

func writeCells(w io.Writer, cells []string) error {
	for i, c := range cells {
		if i > 0 {
			if _, err := io.WriteString(w, generate.Separator); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, c); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "\n")
	return err
}
