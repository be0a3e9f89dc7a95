package sources

import (
	"bytes"
	"context"
	"net/url"
	"strings"

	readability "codeberg.org/readeck/go-readability/v2"
	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"

	"founderlens/internal/industry"
	"founderlens/internal/report"
	"founderlens/internal/rules"
	"founderlens/internal/webfetch"
)

const (
	failureSourceName = "Failure Story Scrape & Internal KB"

	maxReasons = 3
	maxAdvice  = 3

	minQueryTokenLen = 2 // tokens must be longer than this to count
)

// FailureSource scrapes the failure-story archive for confirmed failure
// pages matching the query and, independently, classifies the query's
// industry. Both sub-steps always run: a failed scrape never suppresses
// the industry learnings.
type FailureSource struct {
	client     *webfetch.Client
	classifier *industry.Classifier
	tables     *rules.Tables
	baseURL    string
	logger     zerolog.Logger
}

func NewFailureSource(client *webfetch.Client, classifier *industry.Classifier, tables *rules.Tables, baseURL string, logger zerolog.Logger) *FailureSource {
	return &FailureSource{
		client:     client,
		classifier: classifier,
		tables:     tables,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		logger:     logger,
	}
}

// Fetch returns a best-effort insights result. It never returns an error:
// fetch and parse failures are recorded in the Err annotation (first one
// wins) while processing continues.
func (s *FailureSource) Fetch(ctx context.Context, query string) report.FailureInsights {
	insights := report.FailureInsights{
		Source:         failureSourceName,
		FailureDetails: []report.FailureDetail{},
		FailedStartups: []report.FailureRecord{},
	}

	tag, ok := s.classifier.Classify(query)
	if ok {
		insights.IdentifiedIndustry = tag
	}
	insights.IndustryLearnings = s.classifier.Lookup(tag)

	searchURL := s.baseURL + "/search?query=" + strings.Join(strings.Fields(query), "+")
	insights.SearchURL = searchURL

	s.logger.Info().Str("url", searchURL).Msg("searching failure stories")

	doc, err := s.client.GetDocument(ctx, searchURL)
	if err != nil {
		s.logger.Error().Err(err).Msg("failure-story search failed")
		setErr(&insights.Err, "could not reach failure-story search: "+err.Error())
		return insights
	}

	tokens := queryTokens(query)
	container := doc.Find("div.fs-cmsfilter_list")
	links := container.Find("a[href]")
	if container.Length() == 0 {
		links = doc.Find("a[href]")
	}

	links.Each(func(_ int, link *goquery.Selection) {
		href, _ := link.Attr("href")
		if !s.isConfirmableLink(href, link.Text(), tokens) {
			return
		}
		if !strings.HasPrefix(href, "http") {
			href = s.baseURL + href
		}

		detail, fetchErr := s.scrapeFailurePage(ctx, href)
		if fetchErr != "" {
			setErr(&insights.Err, fetchErr)
			return
		}

		insights.FailureDetails = append(insights.FailureDetails, detail)
		insights.FailedStartups = append(insights.FailedStartups, report.FailureRecord{
			Name:      query,
			SourceURL: href,
		})
		insights.SpecificFailureFound = true
		s.logger.Info().Str("url", href).Msg("confirmed failure story")
	})

	// Confirmation is all-or-nothing at the list level: without scraped
	// details, earlier promising links count for nothing.
	if len(insights.FailureDetails) == 0 {
		insights.FailedStartups = []report.FailureRecord{}
		insights.SpecificFailureFound = false
	}

	return insights
}

// isConfirmableLink applies the two-part heuristic: the href must carry a
// failure-indicating path fragment AND the link text or href must mention
// a query token.
func (s *FailureSource) isConfirmableLink(href, linkText string, tokens []string) bool {
	if href == "" {
		return false
	}

	isFailureLink := false
	for _, fragment := range s.tables.FailureLinkFragments {
		if strings.Contains(href, fragment) {
			isFailureLink = true
			break
		}
	}
	if !isFailureLink {
		return false
	}

	textLower := strings.ToLower(linkText)
	hrefLower := strings.ToLower(href)
	for _, token := range tokens {
		if strings.Contains(textLower, token) || strings.Contains(hrefLower, token) {
			return true
		}
	}
	return false
}

func (s *FailureSource) scrapeFailurePage(ctx context.Context, pageURL string) (report.FailureDetail, string) {
	body, err := s.client.Get(ctx, pageURL)
	if err != nil {
		s.logger.Warn().Err(err).Str("url", pageURL).Msg("could not fetch failure page")
		return report.FailureDetail{}, "error fetching failure page: " + err.Error()
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		s.logger.Warn().Err(err).Str("url", pageURL).Msg("could not parse failure page")
		return report.FailureDetail{}, "error parsing failure page: " + err.Error()
	}

	title := strings.TrimSpace(doc.Find("h1").First().Text())
	if title == "" {
		title = "Failure Story"
	}

	content := doc.Find("div.rich-text-block")
	if content.Length() == 0 {
		content = doc.Find("article")
	}

	var paragraphs []string
	content.Find("p, li").Each(func(_ int, p *goquery.Selection) {
		if text := strings.TrimSpace(p.Text()); text != "" {
			paragraphs = append(paragraphs, text)
		}
	})

	snippet := strings.Join(paragraphs, "\n")
	if snippet == "" {
		// Neither expected container exists; fall back to readability.
		snippet = s.extractReadableText(body, pageURL)
	}

	return report.FailureDetail{
		Title:            title,
		URL:              pageURL,
		Snippet:          snippet,
		PotentialReasons: matchingParagraphs(paragraphs, s.tables.FailureReasonMarkers, maxReasons),
		PotentialAdvice:  matchingParagraphs(paragraphs, s.tables.FailureAdviceMarkers, maxAdvice),
	}, ""
}

func (s *FailureSource) extractReadableText(body []byte, pageURL string) string {
	parsed, err := url.Parse(pageURL)
	if err != nil {
		return ""
	}
	article, err := readability.FromReader(bytes.NewReader(body), parsed)
	if err != nil {
		s.logger.Debug().Err(err).Str("url", pageURL).Msg("readability fallback failed")
		return ""
	}
	var rendered bytes.Buffer
	if err := article.RenderText(&rendered); err != nil {
		return ""
	}
	return strings.TrimSpace(rendered.String())
}

func matchingParagraphs(paragraphs, markers []string, limit int) []string {
	matched := []string{}
	for _, paragraph := range paragraphs {
		if len(matched) >= limit {
			break
		}
		lower := strings.ToLower(paragraph)
		for _, marker := range markers {
			if strings.Contains(lower, marker) {
				matched = append(matched, paragraph)
				break
			}
		}
	}
	return matched
}

func queryTokens(query string) []string {
	var tokens []string
	for _, part := range strings.Fields(strings.ToLower(query)) {
		if len(part) > minQueryTokenLen {
			tokens = append(tokens, part)
		}
	}
	return tokens
}

// setErr records an advisory error, keeping the first one observed.
func setErr(dst *string, msg string) {
	if *dst == "" {
		*dst = msg
	}
}
