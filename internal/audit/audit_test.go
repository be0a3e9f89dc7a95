package audit

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"founderlens/internal/geo"
	"founderlens/internal/globaltime"
	"founderlens/internal/report"
	"founderlens/internal/sentiment"
)

func sampleRecord() report.Record {
	return report.Record{
		Query: "Acme Corp",
		Profile: report.Profile{
			Name:     "Acme Corp (Simulated)",
			Location: "San Francisco Bay Area",
		},
		FailureInsights: report.FailureInsights{
			IdentifiedIndustry:   "FinTech",
			SpecificFailureFound: true,
		},
		Controversies: report.Controversies{
			PotentialHits: []report.ControversyHit{{Title: "t", URL: "u", Snippet: "lawsuit"}},
		},
		ReputationScore: 63,
		SentimentLabel:  sentiment.Positive,
		Locations:       []geo.Hit{{Name: "San Francisco, CA", Lat: 37.7749, Lon: -122.4194}},
	}
}

func readRows(t *testing.T, path string) [][]string {
	t.Helper()
	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open audit trail: %v", err)
	}
	defer file.Close()
	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("read audit trail: %v", err)
	}
	return rows
}

func TestTrailWritesHeaderOnce(t *testing.T) {
	globaltime.SetMockTime(time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC))
	defer globaltime.ResetTime()

	path := filepath.Join(t.TempDir(), "search_log.csv")
	trail := NewTrail(path, zerolog.Nop())

	trail.Record(sampleRecord(), "MISS")
	trail.Record(sampleRecord(), "HIT")

	rows := readRows(t, path)
	if len(rows) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "timestamp" || rows[0][len(rows[0])-1] != "cache_status" {
		t.Fatalf("unexpected header: %v", rows[0])
	}
	if len(rows[1]) != len(header) {
		t.Fatalf("row width %d does not match header width %d", len(rows[1]), len(header))
	}
}

func TestTrailRowContents(t *testing.T) {
	globaltime.SetMockTime(time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC))
	defer globaltime.ResetTime()

	path := filepath.Join(t.TempDir(), "search_log.csv")
	trail := NewTrail(path, zerolog.Nop())
	trail.Record(sampleRecord(), "MISS")

	rows := readRows(t, path)
	row := rows[1]
	want := []string{
		"2025-06-01 09:30:00",
		"Acme Corp",
		"63",
		"POSITIVE",
		"Acme Corp (Simulated)",
		"San Francisco Bay Area",
		"",
		"FinTech",
		"true",
		"",
		"1",
		"",
		"San Francisco, CA",
		"MISS",
	}
	for i, field := range want {
		if row[i] != field {
			t.Fatalf("field %d (%s) = %q, want %q", i, header[i], row[i], field)
		}
	}
}

func TestTrailWriteFailureIsSilent(t *testing.T) {
	trail := NewTrail(filepath.Join(t.TempDir(), "missing", "search_log.csv"), zerolog.Nop())
	// Parent dir does not exist; must not panic or error upward.
	trail.Record(sampleRecord(), "MISS")
}
