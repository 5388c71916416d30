package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type RuntimeConfig struct {
	Dev bool
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

type LogConfig struct {
	Level    string `yaml:"level"`    // trace|debug|info|warn|error
	Format   string `yaml:"format"`   // json|console
	Sampling bool   `yaml:"sampling"` // enable sampling in prod
}

type AIConfig struct {
	AnthropicKey string  `yaml:"anthropic_key"`
	GeminiKey    string  `yaml:"gemini_key"`
	GeminiURL    string  `yaml:"gemini_url"`
	OpenAIKey    string  `yaml:"openai_key"`
	DefaultModel string  `yaml:"default_model"`
	MaxTokens    int     `yaml:"max_tokens"`
	Temperature  float64 `yaml:"temperature"`
}

type JobsConfig struct {
	TTL           time.Duration `yaml:"ttl"`            // job record time-to-live
	SweepInterval time.Duration `yaml:"sweep_interval"` // 0 disables the background sweep
	Workers       int           `yaml:"workers"`
}

type DatabaseConfig struct {
	URL string `yaml:"url"` // empty -> in-memory repositories
}

type RedisConfig struct {
	URL      string `yaml:"url"` // empty -> in-memory job store
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type SecurityConfig struct {
	TokenSecret string `yaml:"token_secret"`
}

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
	AI       AIConfig       `yaml:"ai"`
	Jobs     JobsConfig     `yaml:"jobs"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Security SecurityConfig `yaml:"security"`

	Runtime RuntimeConfig `yaml:"-"`
}

func LoadConfig(path string, dev bool) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	applyDefaults(&cfg)

	// Minimal validation
	if cfg.AI.AnthropicKey == "" && cfg.AI.GeminiKey == "" && cfg.AI.OpenAIKey == "" {
		return nil, errors.New("ai: one of anthropic_key, gemini_key or openai_key is required")
	}

	cfg.Runtime.Dev = dev
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.AI.DefaultModel == "" {
		cfg.AI.DefaultModel = "claude-sonnet-4-5-20250929"
	}
	if cfg.AI.MaxTokens <= 0 {
		// Keep answers bounded so every single-workout response completes
		// within the provider token budget.
		cfg.AI.MaxTokens = 1200
	}
	if cfg.AI.Temperature <= 0 {
		cfg.AI.Temperature = 0.4
	}
	if cfg.Jobs.TTL <= 0 {
		cfg.Jobs.TTL = 30 * time.Minute
	}
	if cfg.Jobs.Workers <= 0 {
		cfg.Jobs.Workers = 4
	}
}
