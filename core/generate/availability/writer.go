package availability

import (
	"fmt"
	"io"
	"strconv"

	"github.com/crewbench/crewgen/core/generate"
	"github.com/crewbench/crewgen/core/model"
)

// fieldWidth pads the day and count cells of the table.
const fieldWidth = 5

// WriteTable renders the allocation: a quoted comment with the achieved
// slack, a blank line, the base header and one row per day. The writer does
// no computation; a monthly allocation simply repeats the same values on
// every row.
func WriteTable(w io.Writer, alloc *model.Allocation) error {
	err := generate.Comment(w,
		"Number of crews available at each base for each day of the period.  %.6g%% slack added.",
		alloc.AchievedSlackPercent)
	if err != nil {
		return err
	}

	header := make([]string, 0, len(alloc.Bases)+1)
	header = append(header, "base")
	for _, b := range alloc.Bases {
		header = append(header, b.Name)
	}
	if err := generate.Row(w, fieldWidth, header...); err != nil {
		return err
	}

	cells := make([]string, len(alloc.Bases)+1)
	for day := 1; day <= alloc.NumDays; day++ {
		cells[0] = fmt.Sprintf("Day%d", day)
		for i := range alloc.Bases {
			cells[i+1] = strconv.Itoa(alloc.Get(i, day))
		}
		if err := generate.Row(w, fieldWidth, cells...); err != nil {
			return err
		}
	}
	return nil
}
