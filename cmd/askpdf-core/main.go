package main

// @title           AskPDF Core API
// @version         1.0
// @description     Document question-answering API. Upload PDF or Markdown documents and ask questions answered from their content.

// @host      localhost:8080
// @BasePath  /api/v1
// @schemes   http https

import (
	"context"
	"os"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/askpdf/askpdf-core/internal/adapters/driven/ai"
	chromemindex "github.com/askpdf/askpdf-core/internal/adapters/driven/chromem"
	pineconeindex "github.com/askpdf/askpdf-core/internal/adapters/driven/pinecone"
	"github.com/askpdf/askpdf-core/internal/adapters/driven/postgres"
	redisadapter "github.com/askpdf/askpdf-core/internal/adapters/driven/redis"
	httpserver "github.com/askpdf/askpdf-core/internal/adapters/driving/http"
	"github.com/askpdf/askpdf-core/internal/config"
	"github.com/askpdf/askpdf-core/internal/core/ports/driven"
	"github.com/askpdf/askpdf-core/internal/core/services"
	"github.com/askpdf/askpdf-core/internal/extractors"
	"github.com/askpdf/askpdf-core/internal/textproc"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).With().Timestamp().Logger()

	configPath := os.Getenv("CONFIG_FILE")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}

	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(level)
	}

	ctx := context.Background()

	// ===== Embedding provider =====
	embedder, err := ai.NewEmbeddingService(ai.EmbeddingConfig{
		Provider:   cfg.Embedding.Provider,
		APIKey:     cfg.Embedding.APIKey,
		Model:      cfg.Embedding.Model,
		BaseURL:    cfg.Embedding.BaseURL,
		Dimensions: cfg.Embedding.Dimensions,
		BatchDelay: cfg.Embedding.BatchDelay,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create embedding service")
	}
	defer embedder.Close()

	// ===== Redis query cache (optional) =====
	if cfg.RedisURL != "" {
		opts, err := goredis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to parse Redis URL")
		}
		redisClient := goredis.NewClient(opts)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to Redis")
		}
		defer redisClient.Close()

		embedder = ai.NewCachedEmbedding(embedder, redisadapter.NewEmbeddingCache(redisClient), cfg.Embedding.CacheTTL)
		logger.Info().Msg("query embedding cache enabled")
	}

	// ===== Generator =====
	generator, err := ai.NewGenerator(ai.GenerationConfig{
		Provider: cfg.Generation.Provider,
		APIKey:   cfg.Generation.APIKey,
		Model:    cfg.Generation.Model,
		BaseURL:  cfg.Generation.BaseURL,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create generator")
	}
	defer generator.Close()

	// ===== Vector index =====
	var index driven.VectorIndex
	switch cfg.Index.Backend {
	case "pinecone":
		index, err = pineconeindex.NewIndex(pineconeindex.DefaultConfig(cfg.Index.Host, cfg.Index.APIKey))
	default:
		index, err = chromemindex.NewIndex(chromemindex.Config{
			Collection: cfg.Index.Collection,
			Path:       cfg.Index.Path,
		})
	}
	if err != nil {
		logger.Fatal().Err(err).Str("backend", cfg.Index.Backend).Msg("failed to create vector index")
	}
	logger.Info().Str("backend", cfg.Index.Backend).Msg("vector index ready")

	// ===== Upload history store (optional) =====
	var uploads driven.UploadStore
	if cfg.DatabaseURL != "" {
		db, err := postgres.Connect(ctx, postgres.DefaultConfig(cfg.DatabaseURL))
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer db.Close()
		if err := db.InitSchema(ctx); err != nil {
			logger.Fatal().Err(err).Msg("failed to initialize schema")
		}
		uploads = postgres.NewUploadStore(db)
		logger.Info().Msg("upload history store enabled")
	}

	// ===== Services =====
	chunker := textproc.NewChunker(textproc.ChunkConfig{
		ChunkSize:          cfg.Chunking.ChunkSize,
		Overlap:            cfg.Chunking.Overlap,
		PreserveSentences:  true,
		PreserveParagraphs: true,
	})
	ingestService := services.NewIngestService(chunker, embedder, index, uploads, logger)
	chatService := services.NewChatService(embedder, index, generator, cfg.TopK, logger)

	// ===== HTTP server =====
	server := httpserver.NewServer(
		httpserver.Config{
			Host:           cfg.Server.Host,
			Port:           cfg.Server.Port,
			Version:        cfg.Version,
			AllowedOrigins: cfg.Server.AllowedOrigins,
		},
		ingestService,
		chatService,
		extractors.DefaultRegistry(),
		embedder,
		index,
		logger,
	)

	logger.Info().Str("version", cfg.Version).Msg("askpdf-core starting")
	if err := server.Start(); err != nil {
		logger.Fatal().Err(err).Msg("server failed")
	}
}
