package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"founderlens/internal/audit"
	"founderlens/internal/cache"
	"founderlens/internal/metrics"
	"founderlens/internal/report"
)

// Cache status values as recorded in the audit trail and returned to the
// HTTP layer.
const (
	StatusHit  = "HIT"
	StatusMiss = "MISS"
)

type RecordRunner interface {
	Run(ctx context.Context, query string) (report.Record, error)
}

// Verifier is the cache-fronted entry point. Concurrent misses for the
// same key are collapsed into one pipeline run.
type Verifier struct {
	runner RecordRunner
	store  cache.Store
	ttl    time.Duration
	trail  *audit.Trail
	group  singleflight.Group
	logger zerolog.Logger
}

func NewVerifier(runner RecordRunner, store cache.Store, ttl time.Duration, trail *audit.Trail, logger zerolog.Logger) *Verifier {
	return &Verifier{
		runner: runner,
		store:  store,
		ttl:    ttl,
		trail:  trail,
		logger: logger,
	}
}

// Cached returns the cached record for query without running the
// pipeline.
func (v *Verifier) Cached(ctx context.Context, query string) (report.Record, bool, error) {
	key := cache.Key(query)
	payload, ok, err := v.store.Get(ctx, key)
	if err != nil {
		return report.Record{}, false, fmt.Errorf("cache lookup: %w", err)
	}
	if !ok {
		return report.Record{}, false, nil
	}
	var rec report.Record
	if err := json.Unmarshal(payload, &rec); err != nil {
		return report.Record{}, false, fmt.Errorf("decode cached record: %w", err)
	}
	return rec, true, nil
}

// Verify returns the record for query, from cache when fresh, otherwise
// from a full pipeline run. The returned status is StatusHit or
// StatusMiss.
func (v *Verifier) Verify(ctx context.Context, query string) (report.Record, string, error) {
	key := cache.Key(query)

	payload, ok, err := v.store.Get(ctx, key)
	if err != nil {
		// A broken cache backend degrades to always-miss.
		v.logger.Warn().Err(err).Msg("cache lookup failed")
	}
	if ok {
		var rec report.Record
		if err := json.Unmarshal(payload, &rec); err == nil {
			metrics.CacheHits.Inc()
			v.logger.Debug().Str("query", query).Msg("cache hit")
			return rec, StatusHit, nil
		}
		v.logger.Warn().Str("query", query).Msg("discarding undecodable cache entry")
	}

	result, err, _ := v.group.Do(key, func() (any, error) {
		// The run is shared by every collapsed waiter, so it must not die
		// with the first caller's request context.
		runCtx := context.WithoutCancel(ctx)
		rec, runErr := v.runner.Run(runCtx, query)
		if runErr != nil {
			return report.Record{}, runErr
		}
		metrics.CacheMisses.Inc()
		v.storeRecord(runCtx, key, rec)
		if v.trail != nil {
			v.trail.Record(rec, StatusMiss)
		}
		return rec, nil
	})
	if err != nil {
		return report.Record{}, "", err
	}
	return result.(report.Record), StatusMiss, nil
}

func (v *Verifier) storeRecord(ctx context.Context, key string, rec report.Record) {
	payload, err := json.Marshal(rec)
	if err != nil {
		v.logger.Warn().Err(err).Msg("could not encode record for cache")
		return
	}
	if err := v.store.Set(ctx, key, payload, v.ttl); err != nil {
		v.logger.Warn().Err(err).Msg("could not store record in cache")
	}
}
