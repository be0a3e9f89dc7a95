package score

import (
	"math"
	"testing"

	"founderlens/internal/sentiment"
)

func resultWithCompound(compound float64) *sentiment.Result {
	return &sentiment.Result{Compound: compound, Label: sentiment.LabelFor(compound)}
}

func TestReputationMissingSentimentDefaultsToNeutralBase(t *testing.T) {
	if got := Reputation(nil, 0); got != 50 {
		t.Fatalf("Reputation(nil, 0) = %d, want 50", got)
	}
}

func TestReputationNoFailuresNoPenalty(t *testing.T) {
	cases := []struct {
		compound float64
		want     int
	}{
		{0.8, 90},
		{0.0, 50},
		{-1.0, 0},
		{1.0, 100},
		{-0.5, 25},
	}
	for _, tc := range cases {
		if got := Reputation(resultWithCompound(tc.compound), 0); got != tc.want {
			t.Fatalf("Reputation(compound=%f, 0) = %d, want %d", tc.compound, got, tc.want)
		}
	}
}

func TestReputationPenaltySchedule(t *testing.T) {
	// Base score 90 (compound 0.8), penalty factors 0.70 / 0.65 / 0.60
	// for 1 / 2 / >=3 confirmed failures.
	overall := resultWithCompound(0.8)

	cases := []struct {
		failures int
		want     int
	}{
		{0, 90},
		{1, 63},
		{2, 59}, // round(90*0.65) = round(58.5) = 59
		{3, 54},
		{4, 54}, // capped at the 3-failure reduction
		{10, 54},
	}
	for _, tc := range cases {
		if got := Reputation(overall, tc.failures); got != tc.want {
			t.Fatalf("Reputation(0.8, %d failures) = %d, want %d", tc.failures, got, tc.want)
		}
	}
}

func TestReputationAlwaysBounded(t *testing.T) {
	for compound := -1.0; compound <= 1.0; compound += 0.1 {
		for failures := 0; failures <= 6; failures++ {
			got := Reputation(resultWithCompound(compound), failures)
			if got < 0 || got > 100 {
				t.Fatalf("Reputation(%f, %d) = %d, out of [0,100]", compound, failures, got)
			}
		}
	}
}

func TestReputationUsesStandardRounding(t *testing.T) {
	// compound 0.234 -> base 61.7 -> round to 62.
	got := Reputation(resultWithCompound(0.234), 0)
	want := int(math.Round(((0.234 + 1) / 2) * 100))
	if got != want {
		t.Fatalf("Reputation(0.234, 0) = %d, want %d", got, want)
	}
}
