package sources

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"

	"founderlens/internal/report"
	"founderlens/internal/webfetch"
)

const (
	controversySourceName = "Web Search (Controversies)"

	maxControversyHits = 7
)

// ControversySource runs a targeted search for lawsuits, scandals and
// similar signals, keeping only results whose snippet or title actually
// mentions a controversy keyword.
type ControversySource struct {
	client    *webfetch.Client
	searchURL string
	terms     []string
	keywords  []string
	logger    zerolog.Logger
}

func NewControversySource(client *webfetch.Client, searchURL string, terms, keywords []string, logger zerolog.Logger) *ControversySource {
	return &ControversySource{
		client:    client,
		searchURL: searchURL,
		terms:     terms,
		keywords:  keywords,
		logger:    logger,
	}
}

// Fetch returns up to seven confirmed hits in document order. Zero hits is
// a valid outcome recorded as an informational error.
func (s *ControversySource) Fetch(ctx context.Context, query string) report.Controversies {
	searchQuery := fmt.Sprintf("%q %s", query, strings.Join(s.terms, " OR "))
	results := report.Controversies{
		Source:        controversySourceName,
		SearchQuery:   searchQuery,
		PotentialHits: []report.ControversyHit{},
	}

	s.logger.Info().Str("query", searchQuery).Msg("searching web for controversies")

	doc, err := s.client.PostFormDocument(ctx, s.searchURL, url.Values{"q": {searchQuery}})
	if err != nil {
		s.logger.Error().Err(err).Msg("controversy search failed")
		results.Err = "controversy search request failed: " + err.Error()
		return results
	}

	doc.Find(resultBodySel).EachWithBreak(func(_ int, result *goquery.Selection) bool {
		if len(results.PotentialHits) >= maxControversyHits {
			return false
		}

		snippet := strings.TrimSpace(result.Find(resultSnippetSel).First().Text())
		if snippet == "" {
			return true
		}

		titleTag := result.Find(resultTitleSel).First()
		title := strings.TrimSpace(titleTag.Text())
		if title == "" {
			title = "Result Title"
		}
		link, exists := titleTag.Attr("href")
		if !exists || strings.TrimSpace(link) == "" {
			link = "#"
		}

		if !s.mentionsControversy(snippet + " " + title) {
			return true
		}

		results.PotentialHits = append(results.PotentialHits, report.ControversyHit{
			Title:   title,
			URL:     link,
			Snippet: snippet,
		})
		return true
	})

	if len(results.PotentialHits) == 0 {
		s.logger.Info().Str("query", query).Msg("no controversy-related snippets found")
		results.Err = "no controversy-related snippets found in preliminary web search"
	}

	return results
}

func (s *ControversySource) mentionsControversy(text string) bool {
	lower := strings.ToLower(text)
	for _, keyword := range s.keywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}
