package sentiment

import (
	"testing"

	"github.com/rs/zerolog"
)

func newTestScorer() *Scorer {
	return NewScorer(zerolog.Nop())
}

func TestAnalyzeEmptyInputReturnsNeutralDefault(t *testing.T) {
	scorer := newTestScorer()

	for _, input := range []string{"", "   ", "\n\t"} {
		got := scorer.Analyze(input)
		want := NeutralResult()
		if got != want {
			t.Fatalf("Analyze(%q) = %+v, want neutral default %+v", input, got, want)
		}
	}
}

func TestAnalyzePositiveText(t *testing.T) {
	scorer := newTestScorer()

	got := scorer.Analyze("This startup is wonderful, amazing and a fantastic success.")
	if got.Compound < 0.05 {
		t.Fatalf("expected compound >= 0.05 for clearly positive text, got %f", got.Compound)
	}
	if got.Label != Positive {
		t.Fatalf("expected POSITIVE label, got %s", got.Label)
	}
}

func TestAnalyzeNegativeText(t *testing.T) {
	scorer := newTestScorer()

	got := scorer.Analyze("This was a terrible, horrible disaster and a complete failure.")
	if got.Compound > -0.05 {
		t.Fatalf("expected compound <= -0.05 for clearly negative text, got %f", got.Compound)
	}
	if got.Label != Negative {
		t.Fatalf("expected NEGATIVE label, got %s", got.Label)
	}
}

func TestAnalyzeWeightsSumToOne(t *testing.T) {
	scorer := newTestScorer()

	got := scorer.Analyze("The company shipped a product last quarter.")
	sum := got.Negative + got.Neutral + got.Positive
	if sum < 0.99 || sum > 1.01 {
		t.Fatalf("expected neg+neu+pos ~= 1.0, got %f", sum)
	}
}

func TestLabelForThresholdBoundaries(t *testing.T) {
	cases := []struct {
		compound float64
		want     Label
	}{
		{0.05, Positive},
		{0.051, Positive},
		{1.0, Positive},
		{-0.05, Negative},
		{-0.051, Negative},
		{-1.0, Negative},
		{0.049, Neutral},
		{-0.049, Neutral},
		{0, Neutral},
	}

	for _, tc := range cases {
		if got := LabelFor(tc.compound); got != tc.want {
			t.Fatalf("LabelFor(%f) = %s, want %s", tc.compound, got, tc.want)
		}
	}
}
