package apportion

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/crewbench/crewgen/core/model"
)

// ErrDegenerateConfig is returned when the skewed-average policy is asked to
// split "the other bases" of a single-base instance.
var ErrDegenerateConfig = errors.New("skewed average requires at least two bases")

// MonthlySkewedAverage collapses every base to one period-average capacity
// figure, re-skews the total toward the main base and replicates the result
// across every day of the period.
type MonthlySkewedAverage struct {
	SlackFraction float64
	// MainBasePercent is the share of total capacity granted to the base
	// with the largest period total; the rest is split equally.
	MainBasePercent float64
}

// Apportion computes the flat per-base capacities. The target total is
// always floor(sum)+1: one extra unit of slack is forced even when the sum
// lands on an integer. Tie-breaking is deterministic, unlike the per-day
// policy.
func (p MonthlySkewedAverage) Apportion(m *model.DutyCountMatrix) (*model.Allocation, error) {
	if len(m.Bases) < 2 {
		return nil, ErrDegenerateConfig
	}

	periodTotals := m.PeriodTotals()
	main := mainBase(periodTotals)

	scaled := make([]float64, len(periodTotals))
	for i, t := range periodTotals {
		scaled[i] = float64(t) / float64(m.NumDays) * (1 + p.SlackFraction)
	}
	sum := floats.Sum(scaled)

	targets := make([]float64, len(scaled))
	for i := range targets {
		if i == main {
			targets[i] = sum * p.MainBasePercent / 100
		} else {
			targets[i] = sum * (100 - p.MainBasePercent) / 100 / float64(len(targets)-1)
		}
	}

	rounded := Round(targets, int(math.Floor(sum))+1, ScanTieBreak{})

	alloc := model.NewAllocation(m.Bases, m.NumDays)
	flatSum := 0
	for i, v := range rounded {
		flatSum += v
		for day := 1; day <= m.NumDays; day++ {
			alloc.Set(i, day, v)
		}
	}

	var rawTotal int
	for _, t := range periodTotals {
		rawTotal += t
	}
	if rawTotal > 0 {
		alloc.AchievedSlackPercent = (float64(flatSum*m.NumDays)/float64(rawTotal) - 1) * 100
	}
	return alloc, nil
}

// mainBase returns the index of the base with the largest period total,
// first occurrence winning ties.
func mainBase(totals []int) int {
	main := 0
	for i, t := range totals {
		if t > totals[main] {
			main = i
		}
	}
	return main
}
