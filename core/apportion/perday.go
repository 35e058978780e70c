package apportion

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"

	"github.com/crewbench/crewgen/core/model"
)

// Policy produces an integer allocation from a duty-count matrix.
type Policy interface {
	Apportion(m *model.DutyCountMatrix) (*model.Allocation, error)
}

// PerDayPreserveShape keeps each base's relative daily shape and adds slack
// day by day. Every day is apportioned independently with randomized
// tie-breaking.
type PerDayPreserveShape struct {
	// SlackFraction is the over-provisioning added to raw counts,
	// e.g. 0.10 for 10%.
	SlackFraction float64
	// Rand drives the tie-break draws. Injecting it keeps test runs
	// reproducible under a fixed seed.
	Rand *rand.Rand
}

// Apportion scales each day's counts by (1+SlackFraction) and rounds them
// back to integers summing to the day's target. The target is
// floor(sum)+1 so that at least one unit of slack lands somewhere, except
// when scaling alone already lifted some base's floor above its raw count.
func (p PerDayPreserveShape) Apportion(m *model.DutyCountMatrix) (*model.Allocation, error) {
	alloc := model.NewAllocation(m.Bases, m.NumDays)
	tb := RandomTieBreak{Rand: p.Rand}

	allocated := 0
	for day := 1; day <= m.NumDays; day++ {
		raw := m.Day(day)
		scaled := make([]float64, len(raw))
		for i, c := range raw {
			scaled[i] = float64(c) * (1 + p.SlackFraction)
		}

		total := int(math.Floor(floats.Sum(scaled)))
		if !scalingAddedUnit(raw, scaled) {
			total++
		}

		rounded := Round(scaled, total, tb)
		for i, v := range rounded {
			alloc.Set(i, day, v)
			allocated += v
		}
	}

	if rawTotal := m.Total(); rawTotal > 0 {
		alloc.AchievedSlackPercent = (float64(allocated)/float64(rawTotal) - 1) * 100
	}
	return alloc, nil
}

// scalingAddedUnit reports whether scaling already produced a whole unit of
// slack for some base, i.e. its scaled floor exceeds its raw count.
func scalingAddedUnit(raw []int, scaled []float64) bool {
	for i, c := range raw {
		if int(math.Floor(scaled[i])) > c {
			return true
		}
	}
	return false
}
