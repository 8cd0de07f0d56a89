package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/SpotTheSpy/backend/internal/blob"
	"github.com/SpotTheSpy/backend/internal/config"
	"github.com/SpotTheSpy/backend/internal/database"
	"github.com/SpotTheSpy/backend/internal/handler"
	"github.com/SpotTheSpy/backend/internal/jobs"
	"github.com/SpotTheSpy/backend/internal/middleware"
	"github.com/SpotTheSpy/backend/internal/model"
	"github.com/SpotTheSpy/backend/internal/qr"
	"github.com/SpotTheSpy/backend/internal/redis"
	"github.com/SpotTheSpy/backend/internal/repository"
	"github.com/SpotTheSpy/backend/internal/service"
)

const inviteAssetBucket = "qrcodes"

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}

	setLogLevel(cfg.LogLevel)

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), config.DBPingTimeout)
	if err := db.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to ping database")
	}
	cancel()
	log.Info().Msg("database connected")

	redisClient, err := redis.NewClient(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("redis connected")

	spyCount, ok := model.ParseSpyCount(cfg.SpyCount)
	if !ok {
		log.Fatal().Str("spyCount", cfg.SpyCount).Msg("invalid spy count mode")
	}

	gameRepo := repository.NewGameRepository(redisClient.Client, cfg.RedisKeyPrefix)
	soloGameRepo := repository.NewSoloGameRepository(redisClient.Client, cfg.RedisKeyPrefix)
	activePlayerRepo := repository.NewActivePlayerRepository(redisClient.Client, cfg.RedisKeyPrefix)
	soloActivePlayerRepo := repository.NewSoloActivePlayerRepository(redisClient.Client, cfg.RedisKeyPrefix)
	wordQueueRepo := repository.NewWordQueueRepository(redisClient.Client, cfg.RedisKeyPrefix)
	userRepo := repository.NewUserRepository(db.DB)

	signer := blob.NewURLSigner(cfg.AssetURLSecret)
	inviteAssets := blob.NewRedisStore(
		redisClient.Client, cfg.RedisKeyPrefix, inviteAssetBucket,
		config.InviteAssetTTL, signer, cfg.AssetBaseURL,
	)

	queue := jobs.NewQueue(config.JobQueueCapacity, config.JobWorkerCount)
	queue.Start()
	defer queue.Stop()

	wordService := service.NewWordService(wordQueueRepo, service.DefaultWordPool, cfg.GuaranteedUniqueWords)
	gameService := service.NewGameService(service.GameServiceParams{
		Games:      gameRepo,
		Players:    activePlayerRepo,
		Users:      userRepo,
		Words:      wordService,
		Blobs:      inviteAssets,
		QR:         qr.NewGenerator(),
		Queue:      queue,
		SpyCount:   spyCount,
		MinPlayers: cfg.MinPlayerAmount,
		MaxPlayers: cfg.MaxPlayerAmount,
		AssetTTL:   cfg.AssetURLTTL(),
	})
	soloService := service.NewSoloService(
		soloGameRepo, soloActivePlayerRepo, userRepo, wordService,
		cfg.MinPlayerAmount, cfg.MaxPlayerAmount, cfg.SoloGameTTL(),
	)

	apiKeyMiddleware := middleware.NewAPIKeyMiddleware(cfg.APIKey)
	rateLimitMiddleware := middleware.NewRedisRateLimitMiddleware(redisClient.Client, cfg.RateLimitPerMin)

	gameHandler := handler.NewGameHandler(gameService)
	soloGameHandler := handler.NewSoloGameHandler(soloService)
	userHandler := handler.NewUserHandler(userRepo)
	assetHandler := handler.NewAssetHandler(inviteAssets, signer, inviteAssetBucket)

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(config.ServerRequestTimeout))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]any{
			"status":    "ok",
			"timestamp": time.Now().UnixMilli(),
		})
	})

	r.Route("/v1", func(r chi.Router) {
		// Signed asset URLs carry their own authorization.
		r.Mount("/assets", assetHandler.Routes())

		r.Group(func(r chi.Router) {
			r.Use(apiKeyMiddleware.Handler)
			r.Use(rateLimitMiddleware.Handler)

			r.Mount("/games", gameHandler.Routes())
			r.Mount("/solo_games", soloGameHandler.Routes())
			r.Mount("/users", userHandler.Routes())
		})
	})

	cleanupJob := jobs.NewCleanupJob(gameService, activePlayerRepo, config.CleanupJobInterval)
	cleanupJob.Start()
	defer cleanupJob.Stop()

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: 0,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	go func() {
		log.Info().Str("addr", cfg.Addr()).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), config.ServerShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}

func setLogLevel(level string) {
	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}
