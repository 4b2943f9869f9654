package main

import (
	"context"
	"database/sql"
	"dfc-optim-service/internal/adapters/cache"
	"dfc-optim-service/internal/config"
	"dfc-optim-service/internal/platform/db"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

// dbtool creates the context cache table and seeds it with a local copy of
// the vocabulary document, so the server can start without network access.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found (using environment variables)")
	}

	databaseURL := config.Get("DATABASE_URL", "")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}
	contextURL := config.Get("CONTEXT_JSON_URL", "")
	if contextURL == "" {
		log.Fatal("CONTEXT_JSON_URL is required")
	}

	ttl, err := time.ParseDuration(config.Get("CONTEXT_CACHE_TTL", "24h"))
	if err != nil {
		log.Fatal("invalid CONTEXT_CACHE_TTL", "err", err)
	}

	ctx := context.Background()

	conn, err := db.Open(ctx, databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	seedPath := config.Get("CONTEXT_SEED_PATH", "data/context.json")
	if err := initAndSeed(ctx, conn, contextURL, seedPath, ttl); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

func initAndSeed(ctx context.Context, conn *sql.DB, contextURL, seedPath string, ttl time.Duration) error {
	log.Info("Initializing database schema...")
	if err := cache.InitSchema(ctx, conn); err != nil {
		return fmt.Errorf("schema initialization failed: %w", err)
	}
	log.Info("Schema ready.")

	log.Info("Seeding context cache...", "url", contextURL, "path", seedPath)
	if err := cache.SeedFromJSON(ctx, cache.NewSQLContextCache(conn), contextURL, seedPath, ttl); err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}
	log.Info("Seeding complete.")

	return nil
}
