package app

import (
	"fmt"

	"github.com/rs/zerolog"

	"founderlens/internal/audit"
	"founderlens/internal/cache"
	"founderlens/internal/config"
	"founderlens/internal/geo"
	"founderlens/internal/industry"
	"founderlens/internal/logging"
	"founderlens/internal/pipeline"
	"founderlens/internal/rules"
	"founderlens/internal/sentiment"
	"founderlens/internal/sources"
	"founderlens/internal/webfetch"
)

// bootstrap wires the whole verification stack from configuration.
func bootstrap(cfg *config.Config, logger zerolog.Logger) (*pipeline.Verifier, error) {
	tables, err := rules.Load()
	if err != nil {
		return nil, fmt.Errorf("load rule tables: %w", err)
	}

	client := webfetch.NewClient(cfg.FetchTimeout, tables.UserAgents)
	analyzer := sentiment.NewScorer(logger)
	classifier := industry.NewClassifier(tables)
	extractor := geo.NewExtractor(tables, logger)

	runner := pipeline.NewRunner(
		sources.NewSimulatedProfileProvider(cfg.ProfileBaseURL, logger),
		sources.NewFailureSource(client, classifier, tables, cfg.FailoryBaseURL, logger),
		sources.NewWebSentimentSource(client, analyzer, cfg.SearchBaseURL, tables.EmptySearchFallback, logger),
		sources.NewControversySource(client, cfg.SearchBaseURL, tables.ControversyTerms, tables.ControversyKeywords, logger),
		analyzer,
		extractor,
		logger,
	)

	var store cache.Store
	if cfg.RedisAddr != "" {
		store = cache.NewRedisStore(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		logger.Info().Str("addr", cfg.RedisAddr).Msg("using redis cache backend")
	} else {
		store = cache.NewMemoryStore()
	}

	trail := audit.NewTrail(cfg.AuditLogPath, logger)
	return pipeline.NewVerifier(runner, store, cfg.CacheTTL, trail, logger), nil
}

func buildLogger(cfg *config.Config) (zerolog.Logger, error) {
	return logging.NewWithOptions(cfg.Environment, cfg.LogLevel, logging.Options{
		FilePath: cfg.LogFile,
	})
}
