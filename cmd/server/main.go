package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/user/sticker-shop/internal/ai"
	"github.com/user/sticker-shop/internal/auth"
	"github.com/user/sticker-shop/internal/cache"
	"github.com/user/sticker-shop/internal/catalog"
	"github.com/user/sticker-shop/internal/config"
	"github.com/user/sticker-shop/internal/cosmic"
	"github.com/user/sticker-shop/internal/handlers"
	"github.com/user/sticker-shop/internal/middleware"
	"github.com/user/sticker-shop/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	// Content store client
	cosmicClient := cosmic.NewClient(cosmic.Config{
		BaseURL:  cfg.CosmicAPIURL,
		Bucket:   cfg.CosmicBucketSlug,
		ReadKey:  cfg.CosmicReadKey,
		WriteKey: cfg.CosmicWriteKey,
	}, logger.Named("cosmic"))

	// Data-access layer
	repo := catalog.NewRepository(cosmicClient, logger.Named("catalog"))

	// Image generator
	var generator ai.Generator
	switch cfg.ImageProvider {
	case "openai":
		s3Storage, err := storage.NewS3Storage(storage.Config{
			Endpoint:        cfg.S3Endpoint,
			Region:          cfg.S3Region,
			Bucket:          cfg.S3Bucket,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
			CDNURL:          cfg.S3CDNURL,
		})
		if err != nil {
			logger.Fatal("failed to create S3 storage", zap.Error(err))
		}
		generator = ai.NewOpenAIGenerator(cfg.OpenAIAPIKey, s3Storage, logger.Named("openai"))
		logger.Info("image provider: openai + s3")
	default:
		generator = ai.NewCosmicGenerator(cosmicClient)
		logger.Info("image provider: cosmic")
	}

	// Redis cache (optional)
	var redisCache *cache.RedisCache
	if cfg.RedisAddr != "" && cfg.RedisAddr != "disabled" {
		redisCache, err = cache.NewRedisCache(cfg.RedisAddr)
		if err != nil {
			logger.Warn("redis not available, running without cache", zap.Error(err))
			redisCache = nil
		} else {
			defer redisCache.Close()
			logger.Info("redis cache initialized")
		}
	} else {
		logger.Info("redis disabled, running without cache")
	}

	// Creator tokens for the creation endpoint
	tokenService := auth.NewTokenService(cfg.CreatorTokenSecret, 30*24*time.Hour)

	// Handlers
	stickersHandler := handlers.NewStickersHandler(repo, generator, redisCache, logger.Named("stickers"))
	collectionsHandler := handlers.NewCollectionsHandler(repo, redisCache, logger.Named("collections"))
	reviewsHandler := handlers.NewReviewsHandler(repo, redisCache, logger.Named("reviews"))
	homeHandler := handlers.NewHomeHandler(repo, logger.Named("home"))

	// Router
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/health", handlers.Health)
	mux.HandleFunc("GET /api/home", homeHandler.Get)

	mux.HandleFunc("GET /api/stickers", stickersHandler.List)
	mux.HandleFunc("GET /api/stickers/{slug}", stickersHandler.Get)
	mux.HandleFunc("GET /api/stickers/{slug}/reviews", stickersHandler.Reviews)

	mux.HandleFunc("GET /api/collections", collectionsHandler.List)
	mux.HandleFunc("GET /api/collections/{slug}", collectionsHandler.Get)

	mux.HandleFunc("GET /api/reviews", reviewsHandler.List)

	// The one authenticated endpoint
	authMiddleware := middleware.Auth(tokenService)
	mux.Handle("POST /api/stickers", authMiddleware(http.HandlerFunc(stickersHandler.Create)))

	handler := middleware.CORS(mux)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("shutting down server")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			logger.Fatal("server shutdown failed", zap.Error(err))
		}
	}()

	logger.Info("server starting", zap.String("port", cfg.Port))
	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		logger.Fatal("server failed", zap.Error(err))
	}

	logger.Info("server stopped")
}
