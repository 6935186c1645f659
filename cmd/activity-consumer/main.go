// Command activity-consumer appends every listing.created event to the
// activity log until it receives SIGINT or SIGTERM.
package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/iliyamo/fyyur/internal/config"
	"github.com/iliyamo/fyyur/internal/logging"
	"github.com/iliyamo/fyyur/internal/queue"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		log.Fatalf("load .env: %v", err)
	}
	evCfg, err := config.LoadEventsConfig()
	if err != nil {
		log.Fatalf("events config: %v", err)
	}
	logger, err := logging.New(evCfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("activity consumer starting", zap.String("dir", evCfg.ActivityDir))
	if err := queue.StartActivityConsumer(ctx, evCfg.URL(), evCfg.ActivityDir, logger); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("activity consumer stopped", zap.Error(err))
		return
	}
	logger.Info("activity consumer exited")
}
