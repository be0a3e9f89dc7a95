package sources

import (
	"context"
	"strings"
	"unicode"

	"github.com/rs/zerolog"

	"founderlens/internal/report"
)

// ProfileProvider looks up a professional profile for a query. The
// pipeline depends on this interface so a real integration can replace the
// simulated one without changing the pipeline's shape.
type ProfileProvider interface {
	Fetch(ctx context.Context, query string) report.Profile
	Name() string
}

// SimulatedProfileProvider fabricates a plausible profile from the query
// itself. It always succeeds; the Err annotation explains the simulation.
type SimulatedProfileProvider struct {
	baseURL string
	logger  zerolog.Logger
}

func NewSimulatedProfileProvider(baseURL string, logger zerolog.Logger) *SimulatedProfileProvider {
	return &SimulatedProfileProvider{
		baseURL: strings.TrimSuffix(baseURL, "/") + "/",
		logger:  logger,
	}
}

func (p *SimulatedProfileProvider) Name() string { return "simulated" }

func (p *SimulatedProfileProvider) Fetch(_ context.Context, query string) report.Profile {
	slug := strings.Join(strings.Fields(strings.ToLower(query)), "-")
	profileURL := p.baseURL + slug
	displayName := titleCase(strings.ReplaceAll(slug, "-", " "))

	p.logger.Info().Str("profile_url", profileURL).Msg("simulating profile lookup")

	return report.Profile{
		ProfileURL: profileURL,
		Name:       displayName + " (Simulated)",
		Headline:   "Founder | Visionary (Simulated)",
		Location:   "San Francisco Bay Area (Simulated)",
		Experience: []report.Experience{
			{
				Title:       "CEO",
				Company:     displayName + " Inc (Simulated)",
				Duration:    "2020-Present",
				Description: "Building the next big thing (Simulated).",
			},
		},
		Education: []report.Education{
			{
				Institution: "University of Innovation (Simulated)",
				Degree:      "M.Sc.",
				Years:       "2015-2019",
			},
		},
		Err: "Using simulated profile data for demonstration.",
	}
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, word := range words {
		runes := []rune(word)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
