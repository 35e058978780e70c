package schedule

import (
	"errors"
	"strconv"
	"strings"
)

// TaskKind classifies one entry of an employee's duty sequence.
type TaskKind int

const (
	// TaskLeg is a revenue flight leg; it carries the period day in its
	// identifier and is the only kind that counts toward duties.
	TaskLeg TaskKind = iota
	// TaskDeadhead is a non-revenue repositioning leg.
	TaskDeadhead
	// TaskVacation marks a vacation day.
	TaskVacation
	// TaskPost is an administrative post-duty task.
	TaskPost
)

const (
	taskDelimiter   = "--->"
	taskTerminator  = ";"
	deadheadPrefix  = "TDH"
	postPrefix      = "POST"
	vacationLiteral = "VACATION"
	preferredPrefix = "PAL_"
	dayCodeOffset   = 4
	dayCodeWidth    = 2
)

// Task is one classified entry of a duty sequence.
type Task struct {
	Kind TaskKind
	// ID is the leg identifier with any preferred-leg prefix stripped.
	// Empty for vacation, post and deadhead tasks.
	ID string
	// Day is the 1-based period day encoded in a leg identifier.
	Day int
}

var errMalformedLeg = errors.New("leg identifier too short for a day code")

// classify maps a raw task token onto the grammar
//
//	Task := Deadhead | Vacation | Post | PreferredLeg | Leg
//
// Deadheads, vacations and posts carry no day information. A preferred leg
// is a normal leg behind a fixed 4-character flag prefix. The day code of a
// leg occupies a fixed two-character field, e.g. LEG_07_00960_0 flies on
// day 7.
func classify(raw string) (Task, error) {
	switch {
	case raw == vacationLiteral:
		return Task{Kind: TaskVacation}, nil
	case strings.HasPrefix(raw, postPrefix):
		return Task{Kind: TaskPost}, nil
	case strings.HasPrefix(raw, deadheadPrefix):
		return Task{Kind: TaskDeadhead}, nil
	}
	id := strings.TrimPrefix(raw, preferredPrefix)
	if len(id) < dayCodeOffset+dayCodeWidth {
		return Task{}, errMalformedLeg
	}
	day, err := strconv.Atoi(id[dayCodeOffset : dayCodeOffset+dayCodeWidth])
	if err != nil {
		return Task{}, err
	}
	return Task{Kind: TaskLeg, ID: id, Day: day}, nil
}

// splitTasks tokenizes a task segment on the fixed delimiter and drops the
// terminator from the final task.
func splitTasks(segment string) []string {
	tasks := strings.Split(segment, taskDelimiter)
	if n := len(tasks); n > 0 {
		tasks[n-1] = strings.TrimSuffix(tasks[n-1], taskTerminator)
	}
	return tasks
}
