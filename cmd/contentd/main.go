package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/contentd/internal/config"
	"github.com/kailas-cloud/contentd/internal/db"
	dbMemory "github.com/kailas-cloud/contentd/internal/db/memory"
	dbRedis "github.com/kailas-cloud/contentd/internal/db/redis"
	logpkg "github.com/kailas-cloud/contentd/internal/logger"
	"github.com/kailas-cloud/contentd/internal/metrics"
	contentrepo "github.com/kailas-cloud/contentd/internal/repository/content"
	"github.com/kailas-cloud/contentd/internal/repository/embcache"
	vectorrepo "github.com/kailas-cloud/contentd/internal/repository/vector"
	chiTransport "github.com/kailas-cloud/contentd/internal/transport/chi"
	openaiTransport "github.com/kailas-cloud/contentd/internal/transport/openai"
	bloguc "github.com/kailas-cloud/contentd/internal/usecase/blog"
	chatuc "github.com/kailas-cloud/contentd/internal/usecase/chat"
	contactuc "github.com/kailas-cloud/contentd/internal/usecase/contact"
	dashboarduc "github.com/kailas-cloud/contentd/internal/usecase/dashboard"
	healthuc "github.com/kailas-cloud/contentd/internal/usecase/health"
	indexinguc "github.com/kailas-cloud/contentd/internal/usecase/indexing"
	offeringuc "github.com/kailas-cloud/contentd/internal/usecase/offering"
	projectuc "github.com/kailas-cloud/contentd/internal/usecase/project"
	"github.com/kailas-cloud/contentd/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting contentd API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("db_driver", cfg.Database.Driver),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)

	// Vector index backend
	var store db.Store
	switch cfg.Database.Driver {
	case "redis":
		store, err = dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Database.Addrs,
			Password: cfg.Database.Password,
		})
	case "memory":
		store = dbMemory.NewStore()
	default:
		logger.Fatal("Unknown database driver", zap.String("driver", cfg.Database.Driver))
	}
	if err != nil {
		logger.Fatal("Failed to create vector store", zap.Error(err))
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Vector store not ready", zap.Error(err))
	}
	logger.Info("Connected to vector store")

	// Relational content store
	contentStore, err := contentrepo.Open(cfg.ContentDB.Path)
	if err != nil {
		logger.Fatal("Failed to open content database", zap.Error(err))
	}
	defer func() { _ = contentStore.Close() }()
	logger.Info("Content database ready", zap.String("path", cfg.ContentDB.Path))

	metrics.RegisterCoreMetrics()

	// Embedder chain: OpenAI -> cached
	baseEmbedder := openaiTransport.NewEmbedder(&openaiTransport.EmbedderConfig{
		APIKey:     cfg.Embedding.APIKey,
		BaseURL:    cfg.Embedding.BaseURL,
		Model:      cfg.Embedding.Model,
		Dimensions: cfg.Embedding.Dimensions,
		Timeout:    time.Duration(cfg.Embedding.TimeoutSec) * time.Second,
		Logger:     logger,
	})
	embedder := embcache.New(
		baseEmbedder, store, cfg.Embedding.Model,
		time.Duration(cfg.Embedding.CacheTTLHours)*time.Hour,
		metrics.EmbeddingCacheTotal, logger,
	)
	logger.Info("Embedder created",
		zap.String("model", cfg.Embedding.Model),
		zap.Int("dimensions", cfg.Embedding.Dimensions),
	)

	answerer := openaiTransport.NewAnswerer(&openaiTransport.AnswererConfig{
		APIKey:      cfg.Answer.APIKey,
		BaseURL:     cfg.Answer.BaseURL,
		Model:       cfg.Answer.Model,
		MaxTokens:   cfg.Answer.MaxTokens,
		Temperature: cfg.Answer.Temperature,
		Timeout:     time.Duration(cfg.Answer.TimeoutSec) * time.Second,
		Logger:      logger,
	})

	// Vector index repository; the index must exist before any write or search.
	vecRepo := vectorrepo.New(store, cfg.Embedding.Dimensions).
		WithHNSW(vectorrepo.HNSWConfig{
			M:           cfg.Index.HNSWM,
			EFConstruct: cfg.Index.HNSWEFConstruct,
		})
	if err := vecRepo.EnsureIndex(ctx); err != nil {
		logger.Fatal("Failed to ensure vector index", zap.Error(err))
	}

	// Use case services
	coordinator := indexinguc.New(
		embedder, vecRepo,
		time.Duration(cfg.Embedding.TimeoutSec)*time.Second,
		logger,
	)
	chatSvc := chatuc.New(embedder, vecRepo, contentStore, answerer, chatuc.Options{
		DefaultMaxResults: cfg.Chat.DefaultMaxResults,
		MaxResultsCap:     cfg.Chat.MaxResultsCap,
		MaxQueryChars:     cfg.Chat.MaxQueryChars,
		SearchTimeout:     time.Duration(cfg.Chat.SearchTimeoutSec) * time.Second,
	}, logger)
	blogSvc := bloguc.New(contentStore, coordinator, logger)
	projectSvc := projectuc.New(contentStore)
	offeringSvc := offeringuc.New(contentStore)
	contactSvc := contactuc.New(contentStore)
	dashboardSvc := dashboarduc.New(contentStore)
	healthSvc := healthuc.New(store, contentStore, baseEmbedder)

	server := chiTransport.NewServer(
		chatSvc, blogSvc, projectSvc, offeringSvc, contactSvc,
		dashboardSvc, healthSvc, cfg.Auth.APIKeys, logger,
	)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      server.Router(),
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}
