// Package geo extracts candidate geographic locations from free text by
// matching the ordered alias-group table in internal/rules.
package geo

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"founderlens/internal/rules"
)

// Hit is one canonical place extracted from text.
type Hit struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

type group struct {
	name    string
	lat     float64
	lon     float64
	pattern *regexp.Regexp
}

// Extractor scans text fragments against the alias groups. Matching is
// case-insensitive on word boundaries; output order follows group
// declaration order, not input order.
type Extractor struct {
	groups   []group
	fallback Hit
	logger   zerolog.Logger
}

func NewExtractor(tables *rules.Tables, logger zerolog.Logger) *Extractor {
	groups := make([]group, 0, len(tables.Locations))
	for _, loc := range tables.Locations {
		pattern, err := compileAliasPattern(loc.Aliases)
		if err != nil {
			// A bad alias disables its group only; the rest still run.
			logger.Error().Err(err).Str("location", loc.Name).Msg("location alias pattern failed to compile")
		}
		groups = append(groups, group{
			name:    loc.Name,
			lat:     loc.Lat,
			lon:     loc.Lon,
			pattern: pattern,
		})
	}

	return &Extractor{
		groups: groups,
		fallback: Hit{
			Name: tables.DefaultLocation.Name,
			Lat:  tables.DefaultLocation.Lat,
			Lon:  tables.DefaultLocation.Lon,
		},
		logger: logger,
	}
}

func compileAliasPattern(aliases []string) (*regexp.Regexp, error) {
	quoted := make([]string, 0, len(aliases))
	for _, alias := range aliases {
		alias = strings.TrimSpace(alias)
		if alias == "" {
			continue
		}
		quoted = append(quoted, regexp.QuoteMeta(alias))
	}
	if len(quoted) == 0 {
		return nil, fmt.Errorf("alias group is empty")
	}
	return regexp.Compile(`(?i)\b(?:` + strings.Join(quoted, "|") + `)\b`)
}

// Extract scans the fragments for known places. Empty fragments are
// discarded; the survivors are joined into one search text. The result is
// never empty: when nothing matches (or there is nothing to scan) a single
// default placeholder hit is returned.
func (e *Extractor) Extract(fragments []string) []Hit {
	valid := make([]string, 0, len(fragments))
	for _, fragment := range fragments {
		if strings.TrimSpace(fragment) == "" {
			continue
		}
		valid = append(valid, fragment)
	}

	combined := strings.Join(valid, " ")
	if combined == "" {
		return []Hit{e.fallback}
	}

	var hits []Hit
	emitted := make(map[string]struct{})
	for _, g := range e.groups {
		if g.pattern == nil {
			continue
		}
		if !g.pattern.MatchString(combined) {
			continue
		}
		if _, seen := emitted[g.name]; seen {
			continue
		}
		emitted[g.name] = struct{}{}
		hits = append(hits, Hit{Name: g.name, Lat: g.lat, Lon: g.lon})
	}

	if len(hits) == 0 {
		return []Hit{e.fallback}
	}
	return hits
}

// Names returns the canonical names of the hits, comma-joined. Used by the
// audit trail.
func Names(hits []Hit) string {
	names := make([]string, 0, len(hits))
	for _, hit := range hits {
		if hit.Name == "" {
			continue
		}
		names = append(names, hit.Name)
	}
	return strings.Join(names, ", ")
}
