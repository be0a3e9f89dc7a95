// Package pipeline orchestrates the multi-source verification run and the
// cache-fronted entry point around it.
package pipeline

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"founderlens/internal/geo"
	"founderlens/internal/globaltime"
	"founderlens/internal/langdetect"
	"founderlens/internal/metrics"
	"founderlens/internal/report"
	"founderlens/internal/score"
	"founderlens/internal/sources"
)

type FailureFetcher interface {
	Fetch(ctx context.Context, query string) report.FailureInsights
}

type WebSentimentFetcher interface {
	Fetch(ctx context.Context, query string) report.WebSentiment
}

type ControversyFetcher interface {
	Fetch(ctx context.Context, query string) report.Controversies
}

// Runner fans a query out to all sources and folds the results into a
// single report.Record.
type Runner struct {
	profiles      sources.ProfileProvider
	failures      FailureFetcher
	webSentiment  WebSentimentFetcher
	controversies ControversyFetcher
	analyzer      sources.Analyzer
	extractor     *geo.Extractor
	logger        zerolog.Logger
}

func NewRunner(
	profiles sources.ProfileProvider,
	failures FailureFetcher,
	webSentiment WebSentimentFetcher,
	controversies ControversyFetcher,
	analyzer sources.Analyzer,
	extractor *geo.Extractor,
	logger zerolog.Logger,
) *Runner {
	return &Runner{
		profiles:      profiles,
		failures:      failures,
		webSentiment:  webSentiment,
		controversies: controversies,
		analyzer:      analyzer,
		extractor:     extractor,
		logger:        logger,
	}
}

// Run executes a full verification for query. Individual source failures
// are carried inside the record as annotations; Run itself only errors
// when a source panics.
func (r *Runner) Run(ctx context.Context, query string) (report.Record, error) {
	started := globaltime.Now()

	var (
		profile       report.Profile
		failures      report.FailureInsights
		webSentiment  report.WebSentiment
		controversies report.Controversies
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(guarded("profile", func() { profile = r.profiles.Fetch(gctx, query) }))
	g.Go(guarded("failure_insights", func() { failures = r.failures.Fetch(gctx, query) }))
	g.Go(guarded("web_sentiment", func() { webSentiment = r.webSentiment.Fetch(gctx, query) }))
	g.Go(guarded("controversies", func() { controversies = r.controversies.Fetch(gctx, query) }))
	if err := g.Wait(); err != nil {
		return report.Record{}, err
	}

	countSourceError("profile", profile.Err)
	countSourceError("failure_insights", failures.Err)
	countSourceError("web_sentiment", webSentiment.Err)
	countSourceError("controversies", controversies.Err)

	webSentiment.AnalyzedSnippets = r.analyzeSnippets(webSentiment.Snippets)
	overall := webSentiment.OverallSentiment

	rec := report.Record{
		Query:           query,
		Profile:         profile,
		FailureInsights: failures,
		WebSentiment:    webSentiment,
		Controversies:   controversies,
		ReputationScore: score.Reputation(&overall, len(failures.FailedStartups)),
		SentimentLabel:  overall.Label,
		Locations:       r.extractor.Extract(locationFragments(profile, failures, webSentiment)),
		GeneratedAt:     globaltime.UTC(),
	}

	metrics.PipelineDuration.Observe(globaltime.Now().Sub(started).Seconds())
	r.logger.Info().
		Str("query", query).
		Int("reputation_score", rec.ReputationScore).
		Str("sentiment", string(rec.SentimentLabel)).
		Bool("failure_found", failures.SpecificFailureFound).
		Int("controversy_hits", len(controversies.PotentialHits)).
		Msg("verification complete")
	return rec, nil
}

// guarded wraps a source call so a panic in one source surfaces as an
// error instead of taking down the process.
func guarded(name string, fetch func()) func() error {
	return func() (err error) {
		defer func() {
			if recovered := recover(); recovered != nil {
				err = fmt.Errorf("%s source panicked: %v", name, recovered)
			}
		}()
		fetch()
		return nil
	}
}

func countSourceError(name, errAnnotation string) {
	if errAnnotation != "" {
		metrics.SourceErrors.WithLabelValues(name).Inc()
	}
}

func (r *Runner) analyzeSnippets(snippets []string) []report.SnippetSentiment {
	analyzed := []report.SnippetSentiment{}
	for _, text := range snippets {
		analyzed = append(analyzed, report.SnippetSentiment{
			Text:      text,
			Language:  langdetect.DetectISO6391(text),
			Sentiment: r.analyzer.Analyze(text),
		})
	}
	return analyzed
}

// locationFragments collects the free text that may mention places, in a
// fixed order so extraction output is deterministic.
func locationFragments(profile report.Profile, failures report.FailureInsights, web report.WebSentiment) []string {
	fragments := []string{profile.Location, profile.Headline}
	for _, detail := range failures.FailureDetails {
		fragments = append(fragments, detail.Snippet)
	}
	fragments = append(fragments, web.Snippets...)
	return fragments
}
