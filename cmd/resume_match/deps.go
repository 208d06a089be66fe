package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/cache"
	"github.com/jonathan/resume-matcher/internal/config"
	"github.com/jonathan/resume-matcher/internal/embedding"
	"github.com/jonathan/resume-matcher/internal/ingestion"
	"github.com/jonathan/resume-matcher/internal/keywords"
	"github.com/jonathan/resume-matcher/internal/observability"
	"github.com/jonathan/resume-matcher/internal/pipeline"
)

// deps holds everything a command needs, built once from the configuration
type deps struct {
	cfg      *config.Config
	logger   *zap.Logger
	metrics  *observability.Metrics
	keywords keywords.KeywordSource
	analyzer *pipeline.Analyzer

	closeCache func()
}

// loadConfig reads the config file and environment, then applies the root flags
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if debugLog {
		cfg.Log.Debug = true
	}
	if logJSON {
		cfg.Log.JSON = true
	}
	if metricsFile != "" {
		cfg.MetricsFile = metricsFile
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// buildDeps wires logger, metrics, embedding provider, keyword cache and analyzer
func buildDeps(ctx context.Context) (*deps, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	logger, err := observability.NewLogger(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	metrics := observability.NewMetrics()

	var enc embedding.Encoder
	provider := embedding.ProviderName(cfg.Embedding.Provider)
	if provider != embedding.ProviderNone {
		model := cfg.Embedding.Model
		if model == "" {
			model = embedding.DefaultModel(provider)
		}
		loader := embedding.NewLoader(provider, cfg.Embedding.APIKey, cfg.Embedding.BaseURL, model)
		enc = embedding.NewProvider(loader, embedding.Options{
			Timeout:     cfg.Embedding.Timeout,
			MaxAttempts: cfg.Embedding.MaxAttempts,
			Backoff:     cfg.Embedding.Backoff,
			Cooldown:    cfg.Embedding.Cooldown,
		}, logger, metrics)
	}

	kwCache, closeCache, err := cache.New(ctx, cache.Options{
		Backend:     cache.Backend(cfg.Cache.Backend),
		TTL:         cfg.Cache.TTL,
		MaxEntries:  cfg.Cache.MaxEntries,
		RedisURL:    cfg.Cache.RedisURL,
		DatabaseURL: cfg.Cache.DatabaseURL,
	}, logger, metrics)
	if err != nil {
		return nil, fmt.Errorf("failed to create cache: %w", err)
	}

	source := keywords.NewCachedExtractor(keywords.NewExtractor(enc, logger), kwCache, cfg.Cache.TTL, logger)
	analyzer := pipeline.NewAnalyzer(source, enc, pipeline.Options{
		MinResumeChars:   cfg.Analysis.MinResumeChars,
		MinJobChars:      cfg.Analysis.MinJobChars,
		HeatmapLimit:     cfg.Analysis.HeatmapLimit,
		BatchConcurrency: cfg.Analysis.BatchConcurrency,
	}, logger, metrics)

	logger.Debug("dependencies ready",
		zap.String("embedding_provider", cfg.Embedding.Provider),
		zap.String("cache_backend", cfg.Cache.Backend),
	)

	return &deps{
		cfg:        cfg,
		logger:     logger,
		metrics:    metrics,
		keywords:   source,
		analyzer:   analyzer,
		closeCache: closeCache,
	}, nil
}

// Close releases backend connections and writes the metrics file if configured
func (d *deps) Close() {
	d.closeCache()
	if err := d.metrics.WriteTextfile(d.cfg.MetricsFile); err != nil {
		d.logger.Warn("failed to write metrics file", zap.String("path", d.cfg.MetricsFile), zap.Error(err))
	}
	_ = d.logger.Sync()
}

// readInput loads a resume or job description file. An empty path is an error
// naming the flag.
func readInput(path, flag string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("--%s is required", flag)
	}
	text, _, err := ingestion.LoadFile(path)
	if err != nil {
		var inputErr *ingestion.InputError
		if errors.As(err, &inputErr) {
			return "", err
		}
		return "", fmt.Errorf("failed to read %s: %w", flag, err)
	}
	return text, nil
}

// writeOutput writes data to path, or to stdout when path is empty
func writeOutput(stdout io.Writer, path string, data []byte) error {
	if path == "" {
		_, err := stdout.Write(append(data, '\n'))
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
