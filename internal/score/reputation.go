// Package score derives the bounded reputation score from overall web
// sentiment and confirmed failure records.
package score

import (
	"math"

	"founderlens/internal/sentiment"
)

// Penalty schedule for confirmed failures. The reduction is gated on
// confirmed records only, never on heuristic signals, and caps after the
// third failure.
const (
	basePenaltyReduction = 0.30
	perFailureStep       = 0.05
	maxExtraFailures     = 2

	neutralBase = 50.0
)

// Reputation maps the overall sentiment compound and the number of
// confirmed failures to an integer in [0,100]. A missing sentiment reading
// scores the neutral base of 50.
func Reputation(overall *sentiment.Result, confirmedFailures int) int {
	base := neutralBase
	if overall != nil {
		base = clamp(((overall.Compound + 1) / 2) * 100)
	}

	factor := 1.0
	if confirmedFailures > 0 {
		extra := confirmedFailures - 1
		if extra > maxExtraFailures {
			extra = maxExtraFailures
		}
		factor = 1.0 - (basePenaltyReduction + float64(extra)*perFailureStep)
	}

	return int(math.Round(clamp(base * factor)))
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
