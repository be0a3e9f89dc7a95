// Package report defines the aggregated verification record: the sole
// unit written to the cache and returned to callers. A record is immutable
// once assembled; partial records are never published.
package report

import (
	"time"

	"founderlens/internal/geo"
	"founderlens/internal/industry"
	"founderlens/internal/sentiment"
)

// Profile is the professional-profile slice of a record. Err is advisory:
// the simulated provider always fills the fields and notes the simulation
// there.
type Profile struct {
	ProfileURL string       `json:"profile_url"`
	Name       string       `json:"name"`
	Headline   string       `json:"headline"`
	Location   string       `json:"location"`
	Experience []Experience `json:"experience"`
	Education  []Education  `json:"education"`
	Err        string       `json:"error,omitempty"`
}

type Experience struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Duration    string `json:"duration"`
	Description string `json:"description"`
}

type Education struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Years       string `json:"years"`
}

// FailureRecord names one confirmed failure, backed by an actually fetched
// and parsed failure-story page.
type FailureRecord struct {
	Name      string `json:"name"`
	SourceURL string `json:"source_url"`
}

// FailureDetail is the scraped content of one confirmed failure page.
type FailureDetail struct {
	Title            string   `json:"title"`
	URL              string   `json:"url"`
	Snippet          string   `json:"snippet"`
	PotentialReasons []string `json:"potential_reasons"`
	PotentialAdvice  []string `json:"potential_advice"`
}

// FailureInsights combines the failure-story scrape with the always-run
// industry classification. FailedStartups is populated only when details
// were confirmed: an empty list means unconfirmed, not "no failure".
type FailureInsights struct {
	Source               string           `json:"source"`
	SearchURL            string           `json:"search_url"`
	SpecificFailureFound bool             `json:"specific_failure_found"`
	FailureDetails       []FailureDetail  `json:"failure_details"`
	FailedStartups       []FailureRecord  `json:"failed_startups"`
	IdentifiedIndustry   string           `json:"identified_industry,omitempty"`
	IndustryLearnings    industry.Profile `json:"industry_learnings"`
	Err                  string           `json:"error,omitempty"`
}

// SnippetSentiment is the per-snippet annotation produced after the
// sources return: an independent re-score of each web snippet, for
// inspection, distinct from the aggregate.
type SnippetSentiment struct {
	Text      string           `json:"text"`
	Language  string           `json:"language,omitempty"`
	Sentiment sentiment.Result `json:"sentiment"`
}

type WebSentiment struct {
	Snippets         []string           `json:"snippets"`
	OverallSentiment sentiment.Result   `json:"overall_sentiment"`
	AnalyzedSnippets []SnippetSentiment `json:"analyzed_snippets,omitempty"`
	Err              string             `json:"error,omitempty"`
}

type ControversyHit struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

type Controversies struct {
	Source        string           `json:"source"`
	SearchQuery   string           `json:"search_query"`
	PotentialHits []ControversyHit `json:"potential_hits"`
	Err           string           `json:"error,omitempty"`
}

// Record is the terminal aggregated entity for one query.
type Record struct {
	Query           string          `json:"query"`
	Profile         Profile         `json:"profile"`
	FailureInsights FailureInsights `json:"failure_insights"`
	WebSentiment    WebSentiment    `json:"web_sentiment"`
	Controversies   Controversies   `json:"controversies"`
	ReputationScore int             `json:"reputation_score"`
	SentimentLabel  sentiment.Label `json:"sentiment_label"`
	Locations       []geo.Hit       `json:"locations"`
	GeneratedAt     time.Time       `json:"generated_at"`
}
