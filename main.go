package main

import (
	"context"
	"log"

	"medicare-call-server/internal/bootstrap"
	"medicare-call-server/internal/config"
	"medicare-call-server/internal/observability"
	"medicare-call-server/internal/server"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %s", err)
	}

	logger, err := observability.NewLoggerFromEnv(cfg.Logging.Level, cfg.Logging.File, cfg.Server.Debug)
	if err != nil {
		log.Fatalf("failed to initialize logger: %s", err)
	}

	deps, err := bootstrap.Initialize(ctx, cfg, logger)
	if err != nil {
		logger.Fatal(ctx, "failed to initialize dependencies", err)
	}

	srv := server.New(cfg, deps, logger)
	srv.Setup()

	if err := srv.Start(ctx); err != nil {
		logger.Fatal(ctx, "failed to start server", err)
	}

	if err := srv.WaitForShutdown(ctx); err != nil {
		logger.Fatal(ctx, "shutdown failed", err)
	}
}
