// Package config loads application configuration. Values come from an
// optional YAML file, then the environment; env vars win, and declared
// defaults fill whatever remains unset. A .env file is honoured when
// present.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EmbeddingConfig configures the embedding provider
type EmbeddingConfig struct {
	Provider   string        `yaml:"provider" env:"EMBEDDING_PROVIDER" envDefault:"cohere"`
	APIKey     string        `yaml:"api_key" env:"EMBEDDING_API_KEY"`
	Model      string        `yaml:"model" env:"EMBEDDING_MODEL" envDefault:"embed-english-light-v3.0"`
	BaseURL    string        `yaml:"base_url" env:"EMBEDDING_BASE_URL"`
	Dimensions int           `yaml:"dimensions" env:"EMBEDDING_DIMENSIONS" envDefault:"384"`
	BatchDelay time.Duration `yaml:"batch_delay" env:"EMBEDDING_BATCH_DELAY" envDefault:"2s"`
	CacheTTL   time.Duration `yaml:"cache_ttl" env:"EMBEDDING_CACHE_TTL" envDefault:"24h"`
}

// GenerationConfig configures the answer generator
type GenerationConfig struct {
	Provider string `yaml:"provider" env:"GENERATION_PROVIDER" envDefault:"gemini"`
	APIKey   string `yaml:"api_key" env:"GEMINI_API_KEY"`
	Model    string `yaml:"model" env:"GENERATION_MODEL" envDefault:"gemini-2.0-flash"`
	BaseURL  string `yaml:"base_url" env:"GENERATION_BASE_URL"`
}

// IndexConfig configures the vector index backend
type IndexConfig struct {
	// Backend selects "pinecone" or "chromem"
	Backend    string `yaml:"backend" env:"INDEX_BACKEND" envDefault:"chromem"`
	Collection string `yaml:"collection" env:"INDEX_COLLECTION" envDefault:"documents"`

	// Pinecone settings
	Host   string `yaml:"host" env:"PINECONE_HOST"`
	APIKey string `yaml:"api_key" env:"PINECONE_API_KEY"`

	// Chromem settings; empty path keeps the index in memory
	Path string `yaml:"path" env:"INDEX_PATH"`
}

// ChunkingConfig configures the text splitter
type ChunkingConfig struct {
	ChunkSize int `yaml:"chunk_size" env:"CHUNK_SIZE" envDefault:"1000"`
	Overlap   int `yaml:"overlap" env:"CHUNK_OVERLAP" envDefault:"200"`
}

// ServerConfig configures the HTTP server
type ServerConfig struct {
	Host           string   `yaml:"host" env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port           int      `yaml:"port" env:"HTTP_PORT" envDefault:"8080"`
	AllowedOrigins []string `yaml:"allowed_origins" env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
}

// Config is the root application configuration
type Config struct {
	Embedding  EmbeddingConfig  `yaml:"embedding"`
	Generation GenerationConfig `yaml:"generation"`
	Index      IndexConfig      `yaml:"index"`
	Chunking   ChunkingConfig   `yaml:"chunking"`
	Server     ServerConfig     `yaml:"server"`

	TopK     int    `yaml:"top_k" env:"TOP_K" envDefault:"3"`
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL" envDefault:"info"`

	// RedisURL enables the query-embedding cache when set
	RedisURL string `yaml:"redis_url" env:"REDIS_URL"`

	// DatabaseURL enables the upload history store when set
	DatabaseURL string `yaml:"database_url" env:"DATABASE_URL"`

	Version string `yaml:"-" env:"VERSION" envDefault:"dev"`
}

// Load reads configuration from the YAML file at path (when it exists)
// and the environment. An empty path skips the file entirely.
func Load(path string) (*Config, error) {
	// A missing .env file is not an error.
	_ = godotenv.Load()

	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
			}
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Embedding.APIKey == "" {
		return fmt.Errorf("EMBEDDING_API_KEY is required")
	}
	if c.Generation.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required")
	}
	if c.Index.Backend == "pinecone" && (c.Index.Host == "" || c.Index.APIKey == "") {
		return fmt.Errorf("PINECONE_HOST and PINECONE_API_KEY are required for the pinecone backend")
	}
	if c.Chunking.Overlap >= c.Chunking.ChunkSize {
		return fmt.Errorf("chunk overlap %d must be smaller than chunk size %d", c.Chunking.Overlap, c.Chunking.ChunkSize)
	}
	return nil
}
