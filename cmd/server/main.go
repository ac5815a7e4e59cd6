package main

import (
	"fmt"
	"log"
	"os"

	"github.com/AladdinPP/prox-moble/config"
	httpDelivery "github.com/AladdinPP/prox-moble/internal/delivery/http"
	"github.com/AladdinPP/prox-moble/internal/infrastructure/cache"
	"github.com/AladdinPP/prox-moble/internal/infrastructure/cartstore"
	"github.com/AladdinPP/prox-moble/internal/infrastructure/dealfeed"
	"github.com/AladdinPP/prox-moble/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting Prox Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Cache Type: %s", cfg.Cache.Type)

	// Initialize infrastructure dependencies
	memoryCache := cache.NewMemoryCache()
	log.Printf("Cache TTL: %s", cfg.Cache.TTL)

	feedClient := dealfeed.NewClient(cfg.DealFeed.ServiceKey, cfg.DealFeed.BaseURL)

	// Enable debug mode in development environment
	if cfg.Server.Environment == "development" {
		feedClient.SetDebug(true)
		log.Printf("Deal feed client debug mode enabled")
	}

	if cfg.DealFeed.ServiceKey != "" {
		log.Printf("Deal feed configured: %s", cfg.DealFeed.BaseURL)
	} else {
		log.Printf("WARNING: deal feed service key not configured - RPC calls will fail!")
	}

	// Initialize usecase layer
	cartService := usecase.NewCartService(
		feedClient,
		memoryCache,
		usecase.CartServiceConfig{
			CacheTTL:           cfg.Cache.TTL,
			FreshnessDays:      cfg.Search.FreshnessDays,
			EnableDebugLogging: cfg.Search.EnableDebugLogging,
		},
	)

	log.Printf("Search: freshness=%dd, debug=%v",
		cfg.Search.FreshnessDays,
		cfg.Search.EnableDebugLogging)

	savedCarts := cartstore.NewMemoryStore()

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(cartService, savedCarts)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
