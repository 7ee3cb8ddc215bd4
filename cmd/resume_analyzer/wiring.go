package main

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/jonathan/resume-analyzer/internal/analysis"
	"github.com/jonathan/resume-analyzer/internal/config"
	"github.com/jonathan/resume-analyzer/internal/db"
	"github.com/jonathan/resume-analyzer/internal/fetch"
	"github.com/jonathan/resume-analyzer/internal/grammar"
)

// analyzerSetup selects the optional collaborators of an Analyzer.
type analyzerSetup struct {
	source      string
	skipGrammar bool
	skipLinks   bool
	progress    analysis.ProgressCallback
}

// newAnalyzer builds an Analyzer from configuration. The returned cleanup
// releases the Redis client when a probe cache is in use.
func newAnalyzer(ctx context.Context, cfg *config.Config, log *zap.Logger, setup analyzerSetup) (*analysis.Analyzer, func()) {
	opts := []analysis.Option{
		analysis.WithLogger(log),
		analysis.WithSource(setup.source),
		analysis.WithProbeConcurrency(cfg.ProbeConcurrency),
	}
	if setup.progress != nil {
		opts = append(opts, analysis.WithProgress(setup.progress))
	}

	if !setup.skipGrammar && cfg.GrammarEnabled() {
		opts = append(opts, analysis.WithChecker(
			grammar.NewLanguageTool(cfg.LanguageToolURL, grammar.WithLanguage(cfg.Language)),
		))
	} else {
		log.Debug("grammar check disabled")
	}

	cleanup := func() {}
	if !setup.skipLinks {
		var prober fetch.Prober = fetch.NewHTTPProber(cfg.ProbeTimeout)
		if cfg.RedisURL != "" {
			rdb, err := connectRedis(ctx, cfg.RedisURL)
			if err != nil {
				log.Warn("probe cache unavailable, probing directly", zap.Error(err))
			} else {
				prober = fetch.NewCachedProber(rdb, prober, cfg.ProbeCacheTTL, log)
				cleanup = func() { _ = rdb.Close() }
			}
		}
		opts = append(opts, analysis.WithProber(prober))
	} else {
		log.Debug("link probing disabled")
	}

	return analysis.New(opts...), cleanup
}

func connectRedis(ctx context.Context, redisURL string) (*redis.Client, error) {
	rdb, err := fetch.NewRedisClient(redisURL)
	if err != nil {
		return nil, err
	}
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return rdb, nil
}

// openStore connects to PostgreSQL and ensures the schema exists.
func openStore(ctx context.Context, databaseURL string) (*db.DB, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("database URL is required (set RESUME_DATABASE_URL or database_url in the config file)")
	}
	database, err := db.Connect(ctx, databaseURL)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(ctx); err != nil {
		database.Close()
		return nil, err
	}
	return database, nil
}
