package geo

import (
	"testing"

	"github.com/rs/zerolog"

	"founderlens/internal/rules"
)

func newTestExtractor(t *testing.T) *Extractor {
	t.Helper()
	tables, err := rules.Load()
	if err != nil {
		t.Fatalf("load rule tables: %v", err)
	}
	return NewExtractor(tables, zerolog.Nop())
}

func TestExtractEmptyInputReturnsDefaultHit(t *testing.T) {
	extractor := newTestExtractor(t)

	for _, fragments := range [][]string{nil, {}, {"", "  "}, {"", "", ""}} {
		hits := extractor.Extract(fragments)
		if len(hits) != 1 {
			t.Fatalf("Extract(%q) returned %d hits, want exactly one default", fragments, len(hits))
		}
		if hits[0].Name != "Default Location (Unknown)" {
			t.Fatalf("expected default placeholder, got %q", hits[0].Name)
		}
	}
}

func TestExtractNoMatchReturnsDefaultHit(t *testing.T) {
	extractor := newTestExtractor(t)

	hits := extractor.Extract([]string{"a startup building developer tools"})
	if len(hits) != 1 || hits[0].Name != "Default Location (Unknown)" {
		t.Fatalf("expected single default hit, got %+v", hits)
	}
}

func TestExtractDeduplicatesAliasesWithinGroup(t *testing.T) {
	extractor := newTestExtractor(t)

	hits := extractor.Extract([]string{"I live in New York and love NYC"})
	if len(hits) != 1 {
		t.Fatalf("expected exactly one hit, got %+v", hits)
	}
	if hits[0].Name != "New York, NY" {
		t.Fatalf("expected canonical New York hit, got %q", hits[0].Name)
	}
	if hits[0].Lat != 40.7128 || hits[0].Lon != -74.006 {
		t.Fatalf("unexpected coordinates: %+v", hits[0])
	}
}

func TestExtractOrdersHitsByGroupDeclaration(t *testing.T) {
	extractor := newTestExtractor(t)

	// London appears first in the text, but San Francisco is declared
	// earlier in the alias-group table.
	hits := extractor.Extract([]string{"offices in London and San Francisco"})
	if len(hits) != 2 {
		t.Fatalf("expected two hits, got %+v", hits)
	}
	if hits[0].Name != "San Francisco, CA" || hits[1].Name != "London, UK" {
		t.Fatalf("expected table order, got %q then %q", hits[0].Name, hits[1].Name)
	}
}

func TestExtractIsCaseInsensitiveOnWordBoundaries(t *testing.T) {
	extractor := newTestExtractor(t)

	hits := extractor.Extract([]string{"headquartered in BERLIN"})
	if len(hits) != 1 || hits[0].Name != "Berlin, Germany" {
		t.Fatalf("expected Berlin hit, got %+v", hits)
	}

	// "Scala" must not satisfy the "ca" alias: boundaries are required.
	hits = extractor.Extract([]string{"we write Scala all day"})
	if len(hits) != 1 || hits[0].Name != "Default Location (Unknown)" {
		t.Fatalf("expected default hit for substring-only text, got %+v", hits)
	}
}

func TestExtractCombinesFragments(t *testing.T) {
	extractor := newTestExtractor(t)

	hits := extractor.Extract([]string{"founder based in Austin", "", "previously Seattle"})
	if len(hits) != 2 {
		t.Fatalf("expected two hits, got %+v", hits)
	}
	if hits[0].Name != "Austin, TX" || hits[1].Name != "Seattle, WA" {
		t.Fatalf("unexpected hits: %+v", hits)
	}
}

func TestNames(t *testing.T) {
	hits := []Hit{{Name: "Austin, TX"}, {Name: "Seattle, WA"}}
	if got := Names(hits); got != "Austin, TX, Seattle, WA" {
		t.Fatalf("unexpected joined names: %q", got)
	}
	if got := Names(nil); got != "" {
		t.Fatalf("expected empty string for no hits, got %q", got)
	}
}
