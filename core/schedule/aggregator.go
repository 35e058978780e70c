package schedule

import (
	"bufio"
	"fmt"
	"io"

	"github.com/crewbench/crewgen/core/model"
)

// preambleLines is the number of header lines before the first record of a
// solution file.
const preambleLines = 2

// baseLookup indexes bases by name.
func baseLookup(bases []model.Base) map[string]model.Base {
	lookup := make(map[string]model.Base, len(bases))
	for _, b := range bases {
		lookup[b.Name] = b
	}
	return lookup
}

// Aggregate reads a whole schedule stream and accumulates the duty-count
// matrix. Records whose base token resolves to no known base are skipped
// silently; they belong to administrative or system employees.
func Aggregate(r io.Reader, bases []model.Base, numDays int) (*model.DutyCountMatrix, error) {
	matrix := model.NewDutyCountMatrix(bases, numDays)
	lookup := baseLookup(bases)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		if line <= preambleLines {
			continue
		}
		rec, ok := ParseRecord(scanner.Text())
		if !ok {
			continue
		}
		events, ok := Events(rec, lookup)
		if !ok {
			continue
		}
		for {
			ev, err := events.Next()
			if err == io.EOF {
				break
			}
			matrix.Add(ev)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read schedule: %w", err)
	}
	return matrix, nil
}

// CountDuties tallies duty-days per base without bounding the period. The
// credit generator uses it to price briefings and debriefings, one unit per
// duty-day.
func CountDuties(r io.Reader, bases []model.Base) ([]int, error) {
	counts := make([]int, len(bases))
	lookup := baseLookup(bases)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		if line <= preambleLines {
			continue
		}
		rec, ok := ParseRecord(scanner.Text())
		if !ok {
			continue
		}
		events, ok := Events(rec, lookup)
		if !ok {
			continue
		}
		for {
			_, err := events.Next()
			if err == io.EOF {
				break
			}
			counts[events.base.Index]++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read schedule: %w", err)
	}
	return counts, nil
}
