package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v3"

	"go2/internal/config"
	"go2/internal/db"
	"go2/internal/handlers"
	"go2/internal/jobs"
	"go2/internal/keywords"
	"go2/internal/metrics"
	"go2/internal/models"
	"go2/internal/server"
	"go2/internal/sqlitedb"
)

// linkStore is what main needs from either database backend.
type linkStore interface {
	handlers.KeywordStore
	SeedKeywords(ctx context.Context, seeds []models.Seed) error
	Close() error
}

func main() {
	ctx := context.Background()
	cfg := config.Load()

	store, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer store.Close()

	// Seed keywords from config.yaml
	yamlCfg, err := config.LoadYAMLConfig()
	if err != nil {
		log.Fatalf("Failed to load config file: %v", err)
	}
	seeds, err := yamlCfg.Seeds()
	if err != nil {
		log.Fatalf("Invalid config file: %v", err)
	}
	if len(seeds) > 0 {
		if err := store.SeedKeywords(ctx, seeds); err != nil {
			log.Fatalf("Failed to seed keywords: %v", err)
		}
		log.Printf("Seeded %d keywords from config", len(seeds))
	}

	metrics.Init(store)

	srv := server.New(cfg)

	// Keyword browser
	ctrl := keywords.NewController(
		keywords.NewLoader(cfg.KeywordsSourceURL, keywords.WithTimeout(cfg.KeywordsFetchTimeout)),
		keywords.NewRenderer(srv.Engine, cfg.KeywordsTrackClicks),
	)
	srv.RegisterRoutes(store, ctrl)

	// The browser loads from this server's own API, so wait until it listens.
	jobCtx, cancelJobs := context.WithCancel(ctx)
	defer cancelJobs()
	refresher := jobs.NewKeywordRefresher(ctrl, cfg.KeywordsRefreshInterval)
	srv.App.Hooks().OnListen(func(fiber.ListenData) error {
		go refresher.Start(jobCtx)
		return nil
	})

	// Graceful shutdown
	go func() {
		if err := srv.Start(); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	cancelJobs()
	if err := srv.Shutdown(); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited")
}

func openStore(ctx context.Context, cfg *config.Config) (linkStore, error) {
	if cfg.IsSQLite() {
		store, err := sqlitedb.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		log.Printf("Using sqlite database at %s", cfg.DatabaseURL)
		return store, nil
	}

	database, err := db.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		database.Close()
		return nil, err
	}
	log.Println("Migrations completed successfully")
	return database, nil
}
