// Package app builds the shared dependencies of every command from the
// global flags and the config file.
package app

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/dtnitsch/page-rescue/internal/common"
	"github.com/dtnitsch/page-rescue/models"
	"github.com/dtnitsch/page-rescue/pkg/caching"
	"github.com/dtnitsch/page-rescue/pkg/db"
	"github.com/dtnitsch/page-rescue/pkg/evaluation"
	"github.com/dtnitsch/page-rescue/pkg/extractor"
	"github.com/dtnitsch/page-rescue/pkg/fetcher"
	"github.com/dtnitsch/page-rescue/pkg/llm"
	"github.com/dtnitsch/page-rescue/pkg/rescue"
	"github.com/dtnitsch/page-rescue/pkg/similarity"
	"github.com/dtnitsch/page-rescue/pkg/wayback"
	"github.com/urfave/cli/v2"
)

// Env is the configuration and logger one command runs with.
type Env struct {
	Config *models.Config
	Logger *slog.Logger
}

// Load reads --config, --log-level and --quiet.
func Load(c *cli.Context) (*Env, error) {
	cfg, err := models.LoadConfig(c.String("config"))
	if err != nil {
		return nil, err
	}
	return &Env{
		Config: cfg,
		Logger: common.NewLogger(c.String("log-level"), c.Bool("quiet")),
	}, nil
}

func (e *Env) OpenDB() (*db.DB, error) {
	database, err := db.Open(e.Config.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	e.Logger.Debug("Database opened", "path", database.Path())
	return database, nil
}

// RescueService wires the archive client and the LLM client around store.
func (e *Env) RescueService(store rescue.RecordStore) *rescue.Service {
	cfg := e.Config
	apiKey := os.Getenv(cfg.LLM.APIKeyEnv)
	if apiKey == "" {
		e.Logger.Warn("LLM API key not set, reconstructions will fail", "env", cfg.LLM.APIKeyEnv)
	}

	finder := wayback.NewClient(cfg.Wayback.BaseURL, cfg.Wayback.Timeout)
	client := llm.NewClient(llm.Config{
		BaseURL:     cfg.LLM.BaseURL,
		APIKey:      apiKey,
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		MaxTokens:   cfg.LLM.MaxTokens,
		Timeout:     cfg.LLM.Timeout,
		MaxRetries:  cfg.LLM.MaxRetries,
	})
	return rescue.NewService(finder, client, store, client.Model(), e.Logger)
}

// Evaluator wires extraction, scoring and the record source for a batch run.
func (e *Env) Evaluator(source evaluation.RecordSource) (*evaluation.Evaluator, error) {
	cfg := e.Config.Evaluation

	cache, err := caching.NewCache(e.Config.Cache.Dir, e.Config.Cache.TTL)
	if err != nil {
		return nil, err
	}
	languages, err := similarity.ParseLanguages(cfg.Languages)
	if err != nil {
		return nil, err
	}

	ex := extractor.New(fetcher.NewFetcher(cfg.FetchTimeout), e.Logger, extractor.Options{
		DenyTags: cfg.DenyTags,
		Mode:     cfg.ExtractMode,
		Cache:    cache,
	})
	scorer := similarity.NewScorer(similarity.Config{
		BLEUMaxOrder: cfg.BLEUMaxOrder,
		UseStemmer:   cfg.Stemming(),
		Languages:    languages,
	})
	return evaluation.NewEvaluator(source, ex, scorer, e.Logger, evaluation.Options{
		MinTextLength: cfg.MinTextLength,
	}), nil
}
