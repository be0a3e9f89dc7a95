package sources

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"

	"founderlens/internal/report"
	"founderlens/internal/sentiment"
	"founderlens/internal/webfetch"
)

const (
	maxWebSnippets    = 10
	snippetSeparator  = " . "
	resultBodySel     = "div.result__body"
	resultSnippetSel  = "a.result__snippet"
	resultTitleSel    = "a.result__a"
)

// Analyzer scores free text for polarity.
type Analyzer interface {
	Analyze(text string) sentiment.Result
}

// WebSentimentSource runs one general web search and scores the joined
// result snippets for overall sentiment.
type WebSentimentSource struct {
	client      *webfetch.Client
	analyzer    Analyzer
	searchURL   string
	fallbackFmt string
	logger      zerolog.Logger
}

func NewWebSentimentSource(client *webfetch.Client, analyzer Analyzer, searchURL, fallbackFmt string, logger zerolog.Logger) *WebSentimentSource {
	return &WebSentimentSource{
		client:      client,
		analyzer:    analyzer,
		searchURL:   searchURL,
		fallbackFmt: fallbackFmt,
		logger:      logger,
	}
}

// Fetch returns a best-effort sentiment result. Overall sentiment is never
// missing: a failed request scores neutral, an empty result page scores a
// fixed fallback sentence.
func (s *WebSentimentSource) Fetch(ctx context.Context, query string) report.WebSentiment {
	results := report.WebSentiment{Snippets: []string{}}

	s.logger.Info().Str("query", query).Msg("searching web for general sentiment")

	doc, err := s.client.PostFormDocument(ctx, s.searchURL, url.Values{"q": {query}})
	if err != nil {
		s.logger.Error().Err(err).Msg("web sentiment search failed")
		results.Err = "web search request failed: " + err.Error()
		results.OverallSentiment = s.analyzer.Analyze("")
		return results
	}

	var joined strings.Builder
	doc.Find(resultBodySel).EachWithBreak(func(_ int, result *goquery.Selection) bool {
		if len(results.Snippets) >= maxWebSnippets {
			return false
		}
		snippet := strings.TrimSpace(result.Find(resultSnippetSel).First().Text())
		if snippet == "" {
			return true
		}
		results.Snippets = append(results.Snippets, snippet)
		joined.WriteString(snippet)
		joined.WriteString(snippetSeparator)
		return true
	})

	allText := joined.String()
	if len(results.Snippets) == 0 {
		s.logger.Warn().Str("query", query).Msg("no snippets extracted from search results")
		results.Err = "failed to parse search result snippets"
		allText = fmt.Sprintf(s.fallbackFmt, query)
	}

	results.OverallSentiment = s.analyzer.Analyze(allText)
	return results
}
