// Package registry reads the per-instance base registry and discovers the
// length of the planning period.
package registry

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/crewbench/crewgen/core/model"
)

// FileName is the registry file expected in every instance directory.
const FileName = "listOfBases.csv"

// ErrMissing is returned when an instance directory has no registry file.
var ErrMissing = errors.New("base registry not found")

// Entry is one airport of the registry. Only entries flagged as bases employ
// crews and take part in constraint tables, but leg pools and employee
// numbering follow the full file order.
type Entry struct {
	Name          string
	IsBase        bool
	EmployeeCount int
}

// Load reads the registry of an instance directory. The first line is a
// header. Each following line carries the airport name up to the first
// space, a 0/1 base flag two characters past the first comma, and the
// employee count after the last comma. Blank lines are skipped.
func Load(dir string) ([]Entry, error) {
	path := filepath.Join(dir, FileName)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMissing, path)
	}
	defer f.Close()

	var entries []Entry
	scanner := bufio.NewScanner(f)
	first := true
	for scanner.Scan() {
		line := scanner.Text()
		if first {
			first = false
			continue
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		entries = append(entries, parseEntry(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return entries, nil
}

func parseEntry(line string) Entry {
	var e Entry
	if cut := strings.IndexByte(line, ' '); cut >= 0 {
		e.Name = line[:cut]
	} else {
		e.Name = line
	}
	if comma := strings.IndexByte(line, ','); comma >= 0 && comma+2 < len(line) {
		e.IsBase = line[comma+2] == '1'
	}
	if comma := strings.LastIndexByte(line, ','); comma >= 0 {
		e.EmployeeCount, _ = strconv.Atoi(strings.TrimSpace(line[comma+1:]))
	}
	return e
}

// Bases filters the registry down to base entries and assigns each its
// stable column index.
func Bases(entries []Entry) []model.Base {
	var bases []model.Base
	for _, e := range entries {
		if !e.IsBase {
			continue
		}
		bases = append(bases, model.Base{
			Name:          e.Name,
			Index:         len(bases),
			EmployeeCount: e.EmployeeCount,
		})
	}
	return bases
}

// NumDays counts the contiguous daily files day_1.csv, day_2.csv, ... in
// the instance directory. The period ends at the first missing file.
func NumDays(dir string) int {
	days := 0
	for {
		path := filepath.Join(dir, fmt.Sprintf("day_%d.csv", days+1))
		if _, err := os.Stat(path); err != nil {
			return days
		}
		days++
	}
}
