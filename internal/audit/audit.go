// Package audit appends one CSV row per completed verification. The trail
// is best effort: a write failure is logged and never surfaces to the
// caller of the pipeline.
package audit

import (
	"encoding/csv"
	"os"
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"founderlens/internal/geo"
	"founderlens/internal/globaltime"
	"founderlens/internal/report"
)

var header = []string{
	"timestamp",
	"query",
	"reputation_score",
	"sentiment_label",
	"profile_name",
	"profile_location",
	"profile_error",
	"industry_identified",
	"specific_failure_found",
	"failure_error",
	"controversy_hits_count",
	"controversies_error",
	"location_names",
	"cache_status",
}

// Trail writes verification rows to a CSV file, creating it with a header
// row on first use.
type Trail struct {
	mu     sync.Mutex
	path   string
	logger zerolog.Logger
}

func NewTrail(path string, logger zerolog.Logger) *Trail {
	return &Trail{path: path, logger: logger}
}

// Record appends one row for the given verification outcome. cacheStatus
// is "HIT" or "MISS" as seen by the caller.
func (t *Trail) Record(rec report.Record, cacheStatus string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	file, err := os.OpenFile(t.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		t.logger.Warn().Err(err).Str("path", t.path).Msg("could not open audit trail")
		return
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		t.logger.Warn().Err(err).Str("path", t.path).Msg("could not stat audit trail")
		return
	}

	writer := csv.NewWriter(file)
	if info.Size() == 0 {
		if err := writer.Write(header); err != nil {
			t.logger.Warn().Err(err).Msg("could not write audit header")
			return
		}
	}

	row := []string{
		globaltime.UTC().Format("2006-01-02 15:04:05"),
		rec.Query,
		strconv.Itoa(rec.ReputationScore),
		string(rec.SentimentLabel),
		rec.Profile.Name,
		rec.Profile.Location,
		rec.Profile.Err,
		rec.FailureInsights.IdentifiedIndustry,
		strconv.FormatBool(rec.FailureInsights.SpecificFailureFound),
		rec.FailureInsights.Err,
		strconv.Itoa(len(rec.Controversies.PotentialHits)),
		rec.Controversies.Err,
		geo.Names(rec.Locations),
		cacheStatus,
	}
	if err := writer.Write(row); err != nil {
		t.logger.Warn().Err(err).Msg("could not write audit row")
		return
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		t.logger.Warn().Err(err).Msg("could not flush audit row")
	}
}
