// Package industry classifies a query against the fixed industry taxonomy
// and resolves the curated insights profile for the matched tag.
package industry

import (
	"strings"

	"founderlens/internal/rules"
)

// Profile is the insights blob returned for a classified industry.
type Profile struct {
	Title   string   `json:"title"`
	Content []string `json:"content"`
}

// Classifier performs first-match-wins keyword matching over the ordered
// taxonomy. Lookup never fails: unknown or absent tags resolve to the
// default profile.
type Classifier struct {
	taxonomy []rules.IndustryEntry
	profiles map[string]rules.IndustryProfile
}

func NewClassifier(tables *rules.Tables) *Classifier {
	return &Classifier{
		taxonomy: tables.Industries,
		profiles: tables.IndustryProfiles,
	}
}

// Classify returns the first industry tag in taxonomy order whose keyword
// set contains a case-insensitive substring of the query. ok is false when
// nothing matches.
func (c *Classifier) Classify(query string) (tag string, ok bool) {
	queryLower := strings.ToLower(query)
	for _, entry := range c.taxonomy {
		for _, keyword := range entry.Keywords {
			if strings.Contains(queryLower, keyword) {
				return entry.Tag, true
			}
		}
	}
	return "", false
}

// Lookup resolves the profile for a tag, falling back to the default
// profile for unknown or empty tags.
func (c *Classifier) Lookup(tag string) Profile {
	entry, ok := c.profiles[tag]
	if !ok {
		entry = c.profiles[rules.DefaultProfileKey]
	}
	return Profile{Title: entry.Title, Content: entry.Content}
}
