package main // Entry point package

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/iliyamo/fyyur/internal/config"     // Internal config loader
	"github.com/iliyamo/fyyur/internal/database"   // Connection and migrations
	"github.com/iliyamo/fyyur/internal/handler"    // HTTP handlers
	"github.com/iliyamo/fyyur/internal/logging"    // zap logger construction
	"github.com/iliyamo/fyyur/internal/repository" // SQL repositories
	"github.com/iliyamo/fyyur/internal/router"     // Internal router setup
	"github.com/iliyamo/fyyur/internal/service"    // Event publishers
	"github.com/iliyamo/fyyur/internal/utils"      // Form token signing
	"github.com/iliyamo/fyyur/internal/view"       // Embedded templates
)

func main() {
	if err := config.LoadDotEnv(); err != nil { // Optional .env file
		log.Fatalf("load .env: %v", err)
	}
	cfg, err := config.Load() // Load environment config
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	db, err := database.Open(cfg)
	if err != nil {
		logger.Fatal("open database", zap.String("driver", cfg.DBDriver), zap.Error(err))
	}
	defer db.Close()

	rlCfg, err := config.LoadRateLimitConfig()
	if err != nil {
		logger.Fatal("rate limit config", zap.Error(err))
	}
	redisCfg, err := config.LoadRedisConfig()
	if err != nil {
		logger.Fatal("redis config", zap.Error(err))
	}
	rdb := config.NewRedisClient(redisCfg) // nil when Redis is unreachable
	if rdb != nil {
		defer rdb.Close()
	} else if rlCfg.Enabled {
		logger.Warn("redis unavailable; form submissions are not rate limited")
	}

	evCfg, err := config.LoadEventsConfig()
	if err != nil {
		logger.Fatal("events config", zap.Error(err))
	}
	var events service.Publisher = service.NopPublisher{}
	if evCfg.Enabled {
		events = service.NewAMQPPublisher(evCfg.URL(), logger)
	}

	tokens := utils.NewFormTokens(cfg.FormSecret, cfg.FormTokenTTL)
	h := handler.New(
		repository.NewVenueRepo(db),
		repository.NewArtistRepo(db),
		repository.NewShowRepo(db),
		tokens,
		events,
		logger,
	)
	h.DBTimeout = cfg.DBTimeout

	renderer, err := view.New()
	if err != nil {
		logger.Fatal("parse templates", zap.Error(err))
	}

	e := router.New(router.Options{
		Handler:   h,
		Renderer:  renderer,
		Logger:    logger,
		Tokens:    tokens,
		RateLimit: rlCfg,
		Redis:     rdb,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port, // Address string with port
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		logger.Info("listening", zap.String("address", srv.Addr), zap.String("env", cfg.Env), zap.String("driver", cfg.DBDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}
	logger.Info("server exited")
}
