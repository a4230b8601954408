package server

import (
	"log"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/cache"
	"github.com/gofiber/storage/redis/v3"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"go2/internal/handlers"
	"go2/internal/handlers/api"
	"go2/internal/keywords"
)

// RegisterRoutes registers all application routes.
// The keyword catch-all is registered last so fixed paths win.
func (s *Server) RegisterRoutes(store handlers.KeywordStore, ctrl *keywords.Controller) {
	// Initialize handlers
	keywordHandler := handlers.NewKeywordHandler(ctrl, s.Cfg)
	redirectHandler := handlers.NewRedirectHandler(store, s.Cfg)
	probeHandler := handlers.NewProbeHandler(store, ctrl)
	keywordsAPI := api.NewKeywordsHandler(store, s.Cfg.APICacheTTL)
	resolveAPI := api.NewResolveHandler(store, s.Cfg.BaseURL)

	// Probes and metrics
	s.App.Get("/healthz", probeHandler.Liveness)
	s.App.Get("/readyz", probeHandler.Readiness)
	s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Keyword browser
	s.App.Get("/", keywordHandler.Index)
	s.App.Get("/keywords", keywordHandler.Filter)

	// JSON API
	apiGroup := s.App.Group("/api")
	if s.Cfg.APICacheTTL > 0 {
		apiGroup.Get("/keywords", s.indexCache(), keywordsAPI.List)
	} else {
		apiGroup.Get("/keywords", keywordsAPI.List)
	}
	apiGroup.Get("/resolve/:keyword", resolveAPI.Resolve)

	// Redirect route - must be last (catch-all for keywords)
	s.App.Get("/:keyword", redirectHandler.Redirect)
}

// indexCache caches the keyword index response, in Redis when REDIS_URL is
// set so that replicas share it, otherwise in process memory.
func (s *Server) indexCache() fiber.Handler {
	cfg := cache.Config{
		Expiration: s.Cfg.APICacheTTL,
	}
	if s.Cfg.RedisURL != "" {
		log.Println("Caching /api/keywords in Redis")
		cfg.Storage = redis.New(redis.Config{URL: s.Cfg.RedisURL})
	}
	return cache.New(cfg)
}
