// Package schedule parses crew schedules written in the compact inline
// task-sequence notation of solver solution files:
//
//	schedule 1 EMP007 (BASE3) : LEG_01_00960_0--->TDH_LEG_02_00961_0--->VACATION;
//
// and turns them into duty events, one per base per worked day.
package schedule

import (
	"io"
	"strings"

	"github.com/crewbench/crewgen/core/model"
)

// Record is one employee entry of a schedule file: the employee's base plus
// the raw task segment.
type Record struct {
	Base  string
	Tasks string
}

// ParseRecord splits one schedule line into a record. The base token is the
// fourth whitespace field, wrapped in parentheses; the task segment follows
// the colon. Lines that do not match the shape are rejected.
func ParseRecord(line string) (Record, bool) {
	fields := strings.Fields(line)
	if len(fields) < 6 {
		return Record{}, false
	}
	base := fields[3]
	if len(base) < 3 || base[0] != '(' || base[len(base)-1] != ')' {
		return Record{}, false
	}
	return Record{Base: base[1 : len(base)-1], Tasks: fields[5]}, true
}

// EventReader lazily yields the duty events of a single record. It makes one
// pass over the task sequence and is not restartable.
//
// Multiple legs on the same day collapse to one event, and a leg whose day
// does not strictly exceed the running maximum yields nothing. Schedules are
// assumed chronological; days that go backwards are silently dropped rather
// than reordered, which undercounts non-chronological input.
type EventReader struct {
	base   model.Base
	tasks  []string
	pos    int
	maxDay int
}

// Events returns a reader over the record's duty events. ok is false when
// the record's base is not in the lookup, in which case the record
// contributes no events.
func Events(rec Record, bases map[string]model.Base) (*EventReader, bool) {
	base, found := bases[rec.Base]
	if !found {
		return nil, false
	}
	return &EventReader{base: base, tasks: splitTasks(rec.Tasks)}, true
}

// Next returns the next duty event, or io.EOF once the task sequence is
// exhausted. Tokens that are not legs, malformed tokens and repeated or
// non-increasing days are skipped.
func (r *EventReader) Next() (model.DutyEvent, error) {
	for r.pos < len(r.tasks) {
		raw := r.tasks[r.pos]
		r.pos++
		task, err := classify(raw)
		if err != nil || task.Kind != TaskLeg {
			continue
		}
		if task.Day <= r.maxDay {
			continue
		}
		r.maxDay = task.Day
		return model.DutyEvent{Base: r.base, Day: task.Day}, nil
	}
	return model.DutyEvent{}, io.EOF
}
