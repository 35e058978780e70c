// Package apportion distributes slack-inflated duty targets back onto
// integer per-base capacities using largest-remainder rounding.
package apportion

import (
	"math"
	"math/rand"
)

// remainderTol is the absolute tolerance under which two fractional
// remainders count as tied.
const remainderTol = 1e-5

// TieBreak selects the entry that receives the next unit when fractional
// remainders tie for the maximum. The two implementations differ on
// purpose; each policy depends on its own tie distribution.
type TieBreak interface {
	Select(remainders []float64) int
}

// RandomTieBreak picks uniformly among the entries whose remainder ties the
// current maximum within remainderTol. Each unit distributed is an
// independent draw from the injected source.
type RandomTieBreak struct {
	Rand *rand.Rand
}

// Select returns the index of one randomly chosen entry among the highest
// remainders.
func (t RandomTieBreak) Select(remainders []float64) int {
	var best float64
	var tied []int
	for i, r := range remainders {
		switch {
		case r > best:
			best = r
			tied = append(tied[:0], i)
		case math.Abs(r-best) < remainderTol:
			tied = append(tied, i)
		}
	}
	return tied[t.Rand.Intn(len(tied))]
}

// ScanTieBreak picks the winner of a forward scan that updates on a
// non-strict comparison, so among exact ties the last scanned entry wins.
// Deterministic; used by the monthly policy.
type ScanTieBreak struct{}

// Select returns the index found by the scan.
func (ScanTieBreak) Select(remainders []float64) int {
	var idx int
	var best float64
	for i, r := range remainders {
		if r >= best {
			best = r
			idx = i
		}
	}
	return idx
}

// Round apportions the integer total across values by largest-remainder
// rounding: every value keeps its floor and the residual total-sum(floors)
// units are granted one at a time to the entry picked by tb over the current
// remainders. A granted entry's remainder drops to zero, so ties are
// re-evaluated before every unit. If total does not exceed the floor sum no
// unit is granted.
func Round(values []float64, total int, tb TieBreak) []int {
	out := make([]int, len(values))
	remainders := make([]float64, len(values))
	floorSum := 0
	for i, v := range values {
		f := math.Floor(v)
		out[i] = int(f)
		remainders[i] = v - f
		floorSum += int(f)
	}
	for k := total - floorSum; k > 0; k-- {
		i := tb.Select(remainders)
		out[i]++
		remainders[i] = 0
	}
	return out
}
