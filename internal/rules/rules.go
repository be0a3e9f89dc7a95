// Package rules holds the declarative matching tables used by the
// heuristic components: location alias groups, the industry taxonomy and
// its insights profiles, controversy search terms, failure-link
// confirmation fragments and the outbound user-agent pool. The tables are
// data, validated once against an embedded JSON Schema; the matching
// engines elsewhere are pure functions over them.
package rules

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed tables.json
var tablesJSON []byte

//go:embed tables.schema.json
var tablesSchemaJSON string

// DefaultProfileKey is the industry_profiles entry used when a query
// matches no taxonomy tag.
const DefaultProfileKey = "Default"

// LocationGroup maps a set of case-insensitive aliases to one canonical
// place record. Groups are matched in declaration order.
type LocationGroup struct {
	Name    string   `json:"name"`
	Aliases []string `json:"aliases"`
	Lat     float64  `json:"lat"`
	Lon     float64  `json:"lon"`
}

// IndustryEntry is one ordered row of the industry taxonomy.
type IndustryEntry struct {
	Tag      string   `json:"tag"`
	Keywords []string `json:"keywords"`
}

// IndustryProfile is the curated insights blob for one industry tag.
type IndustryProfile struct {
	Title   string   `json:"title"`
	Content []string `json:"content"`
}

type Tables struct {
	Locations            []LocationGroup            `json:"locations"`
	DefaultLocation      LocationGroup              `json:"default_location"`
	Industries           []IndustryEntry            `json:"industries"`
	IndustryProfiles     map[string]IndustryProfile `json:"industry_profiles"`
	ControversyTerms     []string                   `json:"controversy_terms"`
	ControversyKeywords  []string                   `json:"controversy_keywords"`
	FailureLinkFragments []string                   `json:"failure_link_fragments"`
	FailureReasonMarkers []string                   `json:"failure_reason_markers"`
	FailureAdviceMarkers []string                   `json:"failure_advice_markers"`
	UserAgents           []string                   `json:"user_agents"`
	EmptySearchFallback  string                     `json:"empty_search_fallback"`
}

var (
	loadOnce   sync.Once
	loadedErr  error
	loadedVals *Tables
)

// Load validates the embedded tables against the embedded schema and
// returns them. The result is computed once per process.
func Load() (*Tables, error) {
	loadOnce.Do(func() {
		loadedVals, loadedErr = parseAndValidate(tablesJSON)
	})
	return loadedVals, loadedErr
}

func parseAndValidate(raw []byte) (*Tables, error) {
	value, err := decodeStrictJSON(raw)
	if err != nil {
		return nil, fmt.Errorf("decode rule tables: %w", err)
	}

	schema, err := compileSchema()
	if err != nil {
		return nil, fmt.Errorf("compile rule table schema: %w", err)
	}
	if err := schema.Validate(value); err != nil {
		return nil, fmt.Errorf("rule table validation failed: %w", err)
	}

	var tables Tables
	if err := json.Unmarshal(raw, &tables); err != nil {
		return nil, fmt.Errorf("unmarshal rule tables: %w", err)
	}

	if err := validateSemantics(&tables); err != nil {
		return nil, err
	}
	return &tables, nil
}

func compileSchema() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource("tables.schema.json", strings.NewReader(tablesSchemaJSON)); err != nil {
		return nil, fmt.Errorf("add schema resource: %w", err)
	}
	return compiler.Compile("tables.schema.json")
}

func decodeStrictJSON(raw []byte) (any, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("rule tables are empty")
	}

	decoder := json.NewDecoder(bytes.NewReader(trimmed))
	decoder.UseNumber()

	var value any
	if err := decoder.Decode(&value); err != nil {
		return nil, err
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return nil, fmt.Errorf("rule tables contain trailing content")
	}
	return value, nil
}

// validateSemantics enforces constraints the schema cannot express.
func validateSemantics(t *Tables) error {
	if _, ok := t.IndustryProfiles[DefaultProfileKey]; !ok {
		return fmt.Errorf("industry_profiles must contain the %q entry", DefaultProfileKey)
	}

	seen := make(map[string]struct{}, len(t.Locations))
	for i, group := range t.Locations {
		name := strings.TrimSpace(group.Name)
		if name == "" {
			return fmt.Errorf("locations[%d] has an empty canonical name", i)
		}
		if len(group.Aliases) == 0 {
			return fmt.Errorf("locations[%d] (%s) has no aliases", i, name)
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("locations[%d] duplicates canonical name %q", i, name)
		}
		seen[name] = struct{}{}
	}

	tags := make(map[string]struct{}, len(t.Industries))
	for i, entry := range t.Industries {
		if _, dup := tags[entry.Tag]; dup {
			return fmt.Errorf("industries[%d] duplicates tag %q", i, entry.Tag)
		}
		tags[entry.Tag] = struct{}{}
	}

	if !strings.Contains(t.EmptySearchFallback, "%s") {
		return fmt.Errorf("empty_search_fallback must contain a %%s placeholder for the query")
	}
	return nil
}
