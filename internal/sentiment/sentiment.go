// Package sentiment wraps the VADER polarity lexicon. Analysis is never
// allowed to abort a request: malformed input and internal failures both
// map to a fixed neutral result.
package sentiment

import (
	"strings"
	"sync"

	"github.com/jonreiter/govader"
	"github.com/rs/zerolog"
)

type Label string

const (
	Positive Label = "POSITIVE"
	Negative Label = "NEGATIVE"
	Neutral  Label = "NEUTRAL"
)

// Classification thresholds on the compound score, boundary inclusive.
const (
	positiveThreshold = 0.05
	negativeThreshold = -0.05
)

// Result is one polarity reading. Negative+Neutral+Positive sums to
// roughly 1.0 when produced by the lexicon; the neutral default keeps the
// same shape.
type Result struct {
	Negative float64 `json:"neg"`
	Neutral  float64 `json:"neu"`
	Positive float64 `json:"pos"`
	Compound float64 `json:"compound"`
	Label    Label   `json:"label"`
}

// NeutralResult is the fixed default returned for empty input or any
// internal analyzer failure.
func NeutralResult() Result {
	return Result{Negative: 0, Neutral: 1, Positive: 0, Compound: 0, Label: Neutral}
}

// LabelFor classifies a compound score. Ties at exactly +-0.05 resolve to
// POSITIVE/NEGATIVE respectively.
func LabelFor(compound float64) Label {
	switch {
	case compound >= positiveThreshold:
		return Positive
	case compound <= negativeThreshold:
		return Negative
	default:
		return Neutral
	}
}

// Scorer analyzes free text with the VADER lexicon.
type Scorer struct {
	logger zerolog.Logger

	initOnce sync.Once
	analyzer *govader.SentimentIntensityAnalyzer
}

func NewScorer(logger zerolog.Logger) *Scorer {
	return &Scorer{logger: logger}
}

// Analyze scores one text fragment. Empty input returns the neutral
// default without touching the lexicon.
func (s *Scorer) Analyze(text string) Result {
	if strings.TrimSpace(text) == "" {
		return NeutralResult()
	}

	result, ok := s.safePolarity(text)
	if !ok {
		return NeutralResult()
	}

	result.Label = LabelFor(result.Compound)
	return result
}

// safePolarity shields the pipeline from lexicon panics on unexpected
// input.
func (s *Scorer) safePolarity(text string) (result Result, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error().Interface("panic", r).Msg("sentiment analysis failed")
			ok = false
		}
	}()

	s.initOnce.Do(func() {
		s.analyzer = govader.NewSentimentIntensityAnalyzer()
	})

	scores := s.analyzer.PolarityScores(text)
	return Result{
		Negative: scores.Negative,
		Neutral:  scores.Neutral,
		Positive: scores.Positive,
		Compound: scores.Compound,
	}, true
}
