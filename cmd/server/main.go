package main

import (
	"context"
	"database/sql"
	"dfc-optim-service/internal/adapters/cache"
	"dfc-optim-service/internal/adapters/jsonld"
	"dfc-optim-service/internal/adapters/optimizer"
	"dfc-optim-service/internal/api"
	"dfc-optim-service/internal/config"
	"dfc-optim-service/internal/platform/db"
	"dfc-optim-service/internal/platform/obs"
	"dfc-optim-service/internal/ports"
	"dfc-optim-service/internal/services"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

// main is the application composition root.
// It wires concrete adapters (json-gold, Verso, context caches) behind ports
// and starts the HTTP server.
func main() {
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("invalid configuration", "err", err)
	}

	obs.SetDefault(obs.NewLogger(cfg.LogLevel, cfg.LogFormat, os.Stderr))
	if envErr != nil {
		log.Debug("no .env file found, using environment variables")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	contextCache, closeCache, err := openContextCache(ctx, cfg)
	if err != nil {
		log.Fatal("context cache unavailable", "err", err)
	}
	defer closeCache()

	loader := jsonld.NewContextLoader(nil, contextCache, cfg.ContextTTL)
	processor := jsonld.NewProcessor(loader)

	var opt ports.Optimizer
	if cfg.OptimizerMock {
		log.Warn("using the in-process mock optimizer")
		opt = optimizer.NewMockOptimizer()
	} else {
		client, err := optimizer.NewVersoClient(cfg.VersoURL, cfg.VersoAPIKey, cfg.OptimizerTimeout)
		if err != nil {
			log.Fatal("optimizer client", "err", err)
		}
		opt = client
	}

	metrics := obs.NewMetrics()
	svc := &services.OptimizeService{
		Processor:  processor,
		Optimizer:  opt,
		Contexts:   loader,
		ContextURL: cfg.ContextURL,
		Base:       cfg.JSONLDBase,
		Metrics:    metrics,
	}

	e := api.NewRouter(svc, metrics)
	// Write timeout covers a cold context fetch plus the optimizer call.
	e.Server.ReadHeaderTimeout = 5 * time.Second
	e.Server.ReadTimeout = 30 * time.Second
	e.Server.WriteTimeout = cfg.OptimizerTimeout + 30*time.Second
	e.Server.IdleTimeout = 60 * time.Second

	go func() {
		log.Info("server listening", "addr", ":"+cfg.Port)
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server stopped", "err", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("failed to shutdown server", "err", err)
	}
}

// openContextCache picks Redis over Postgres. With neither configured every
// context load goes to the network.
func openContextCache(ctx context.Context, cfg config.Config) (ports.ContextCache, func(), error) {
	switch {
	case cfg.RedisURL != "":
		client, err := cache.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		log.Info("context cache", "backend", "redis")
		return cache.NewRedisContextCache(client), func() { _ = client.Close() }, nil

	case cfg.DatabaseURL != "":
		conn, err := db.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := cache.InitSchema(ctx, conn); err != nil {
			_ = conn.Close()
			return nil, nil, err
		}
		log.Info("context cache", "backend", "postgres")
		return cache.NewSQLContextCache(conn), closeDB(conn), nil
	}

	log.Info("context cache", "backend", "none")
	return nil, func() {}, nil
}

func closeDB(conn *sql.DB) func() {
	return func() {
		if err := conn.Close(); err != nil {
			log.Warn("close database", "err", err)
		}
	}
}
