// Package model holds the data types shared by the schedule parser, the
// duty aggregator and the apportionment engine.
package model

// Base is a crew home airport. Index is the base's position in the registry
// file and fixes its column in every matrix and output table.
type Base struct {
	Name          string
	Index         int
	EmployeeCount int
}

// DutyEvent records that an employee performed at least one duty on Day,
// attributed to Base. Days are numbered from 1.
type DutyEvent struct {
	Base Base
	Day  int
}

// DutyCountMatrix accumulates duty-day counts per base and per day. Counts
// only ever increase; the matrix lives for a single instance.
type DutyCountMatrix struct {
	Bases   []Base
	NumDays int
	counts  [][]int
}

// NewDutyCountMatrix returns a zeroed |bases| x numDays matrix.
func NewDutyCountMatrix(bases []Base, numDays int) *DutyCountMatrix {
	counts := make([][]int, len(bases))
	for i := range counts {
		counts[i] = make([]int, numDays)
	}
	return &DutyCountMatrix{Bases: bases, NumDays: numDays, counts: counts}
}

// Add records one duty for the event's base and day. Events outside the
// period are dropped.
func (m *DutyCountMatrix) Add(ev DutyEvent) {
	if ev.Day < 1 || ev.Day > m.NumDays {
		return
	}
	m.counts[ev.Base.Index][ev.Day-1]++
}

// Count returns the duty count for a base index and 1-based day.
func (m *DutyCountMatrix) Count(base, day int) int {
	return m.counts[base][day-1]
}

// Day returns the counts of every base for a 1-based day, in base order.
func (m *DutyCountMatrix) Day(day int) []int {
	col := make([]int, len(m.counts))
	for i := range m.counts {
		col[i] = m.counts[i][day-1]
	}
	return col
}

// PeriodTotals returns per-base totals over the whole period, in base order.
func (m *DutyCountMatrix) PeriodTotals() []int {
	totals := make([]int, len(m.counts))
	for i, row := range m.counts {
		for _, c := range row {
			totals[i] += c
		}
	}
	return totals
}

// Total is the sum of all counts in the matrix.
func (m *DutyCountMatrix) Total() int {
	var sum int
	for _, t := range m.PeriodTotals() {
		sum += t
	}
	return sum
}

// Allocation is the integer capacity figure produced by the apportionment
// engine, per base and per day. For the monthly policy the same value is
// replicated across every day of a base.
type Allocation struct {
	Bases   []Base
	NumDays int
	values  [][]int

	// AchievedSlackPercent is the slack actually added after rounding,
	// relative to the raw duty counts.
	AchievedSlackPercent float64
}

// NewAllocation returns a zeroed allocation table.
func NewAllocation(bases []Base, numDays int) *Allocation {
	values := make([][]int, len(bases))
	for i := range values {
		values[i] = make([]int, numDays)
	}
	return &Allocation{Bases: bases, NumDays: numDays, values: values}
}

// Set assigns the capacity for a base index and 1-based day.
func (a *Allocation) Set(base, day, v int) { a.values[base][day-1] = v }

// Get returns the capacity for a base index and 1-based day.
func (a *Allocation) Get(base, day int) int { return a.values[base][day-1] }
