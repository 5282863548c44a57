// Package models defines data structures for configuration and report records.
package models

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Configuration validation errors.
var (
	ErrInvalidFetchTimeout   = errors.New("evaluation.fetch_timeout must be positive")
	ErrInvalidMinLength      = errors.New("evaluation.min_text_length must be non-negative")
	ErrInvalidExtractMode    = errors.New("evaluation.extract_mode must be 'denylist' or 'readability'")
	ErrInvalidBLEUOrder      = errors.New("evaluation.bleu_max_order must be between 1 and 8")
	ErrInvalidCacheTTL       = errors.New("cache.ttl must be non-negative")
	ErrMissingWaybackURL     = errors.New("wayback.base_url is required")
	ErrMissingLLMModel       = errors.New("llm.model is required")
	ErrInvalidLLMMaxTokens   = errors.New("llm.max_tokens must be at least 1")
	ErrInvalidLLMTemperature = errors.New("llm.temperature must be between 0 and 2")
)

// Extraction modes for reference snapshots.
const (
	ExtractModeDenyList    = "denylist"
	ExtractModeReadability = "readability"
)

// Config holds runtime configuration. Every field has a default, so the file is optional.
type Config struct {
	Database   DatabaseConfig   `yaml:"database"`
	Server     ServerConfig     `yaml:"server"`
	Wayback    WaybackConfig    `yaml:"wayback"`
	LLM        LLMConfig        `yaml:"llm"`
	Evaluation EvaluationConfig `yaml:"evaluation"`
	Cache      CacheConfig      `yaml:"cache"`
}

type DatabaseConfig struct {
	// Path of the SQLite file. Empty means next to the binary.
	Path string `yaml:"path"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

type WaybackConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

// LLMConfig configures the OpenAI-compatible chat completion endpoint.
type LLMConfig struct {
	BaseURL     string        `yaml:"base_url"`
	APIKeyEnv   string        `yaml:"api_key_env"`
	Model       string        `yaml:"model"`
	Temperature float64       `yaml:"temperature"`
	MaxTokens   int           `yaml:"max_tokens"`
	Timeout     time.Duration `yaml:"timeout"`
	MaxRetries  int           `yaml:"max_retries"`
}

// EvaluationConfig configures the batch similarity evaluation.
type EvaluationConfig struct {
	FetchTimeout  time.Duration `yaml:"fetch_timeout"`
	MinTextLength int           `yaml:"min_text_length"`
	DenyTags      []string      `yaml:"deny_tags"`
	ExtractMode   string        `yaml:"extract_mode"`
	UseStemmer    *bool         `yaml:"use_stemmer"`
	BLEUMaxOrder  int           `yaml:"bleu_max_order"`
	// Languages limits stemmer language detection, e.g. [english, french].
	Languages []string `yaml:"languages"`
}

// CacheConfig configures the snapshot HTML cache. A zero TTL disables it.
type CacheConfig struct {
	Dir string        `yaml:"dir"`
	TTL time.Duration `yaml:"ttl"`
}

// Stemming reports whether ROUGE tokens are stemmed. Defaults to true.
func (e EvaluationConfig) Stemming() bool {
	if e.UseStemmer == nil {
		return true
	}
	return *e.UseStemmer
}

// DefaultDenyTags are the elements removed before extracting snapshot text.
var DefaultDenyTags = []string{"script", "style", "header", "footer", "nav"}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	cfg := &Config{}
	applyConfigDefaults(cfg)
	return cfg
}

// LoadConfig reads a YAML config from path. A missing file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	applyConfigDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyConfigDefaults(cfg *Config) {
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":5000"
	}
	if cfg.Wayback.BaseURL == "" {
		cfg.Wayback.BaseURL = "http://archive.org"
	}
	if cfg.Wayback.Timeout == 0 {
		cfg.Wayback.Timeout = 15 * time.Second
	}
	if cfg.LLM.BaseURL == "" {
		cfg.LLM.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.LLM.APIKeyEnv == "" {
		cfg.LLM.APIKeyEnv = "OPENAI_API_KEY"
	}
	if cfg.LLM.Model == "" {
		cfg.LLM.Model = "gpt-4o"
	}
	if cfg.LLM.Temperature == 0 {
		cfg.LLM.Temperature = 0.7
	}
	if cfg.LLM.MaxTokens == 0 {
		cfg.LLM.MaxTokens = 800
	}
	if cfg.LLM.Timeout == 0 {
		cfg.LLM.Timeout = 60 * time.Second
	}
	if cfg.LLM.MaxRetries == 0 {
		cfg.LLM.MaxRetries = 3
	}
	if cfg.Evaluation.FetchTimeout == 0 {
		cfg.Evaluation.FetchTimeout = 10 * time.Second
	}
	if cfg.Evaluation.MinTextLength == 0 {
		cfg.Evaluation.MinTextLength = 50
	}
	if len(cfg.Evaluation.DenyTags) == 0 {
		cfg.Evaluation.DenyTags = append([]string(nil), DefaultDenyTags...)
	}
	if cfg.Evaluation.ExtractMode == "" {
		cfg.Evaluation.ExtractMode = ExtractModeDenyList
	}
	cfg.Evaluation.ExtractMode = strings.ToLower(cfg.Evaluation.ExtractMode)
	if cfg.Evaluation.BLEUMaxOrder == 0 {
		cfg.Evaluation.BLEUMaxOrder = 4
	}
	if cfg.Cache.Dir == "" {
		cfg.Cache.Dir = ".page-rescue-cache"
	}
}

// Validate checks the configuration for values the defaults cannot repair.
func (c *Config) Validate() error {
	if c.Evaluation.FetchTimeout < 0 {
		return ErrInvalidFetchTimeout
	}
	if c.Evaluation.MinTextLength < 0 {
		return ErrInvalidMinLength
	}
	switch c.Evaluation.ExtractMode {
	case ExtractModeDenyList, ExtractModeReadability:
	default:
		return ErrInvalidExtractMode
	}
	if c.Evaluation.BLEUMaxOrder < 1 || c.Evaluation.BLEUMaxOrder > 8 {
		return ErrInvalidBLEUOrder
	}
	if c.Cache.TTL < 0 {
		return ErrInvalidCacheTTL
	}
	if c.Wayback.BaseURL == "" {
		return ErrMissingWaybackURL
	}
	if c.LLM.Model == "" {
		return ErrMissingLLMModel
	}
	if c.LLM.MaxTokens < 1 {
		return ErrInvalidLLMMaxTokens
	}
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		return ErrInvalidLLMTemperature
	}
	return nil
}
