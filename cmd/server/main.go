package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/basketwise/backend/config"
	httpDelivery "github.com/basketwise/backend/internal/delivery/http"
	"github.com/basketwise/backend/internal/infrastructure/pricestore"
	"github.com/basketwise/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting Basketwise Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Quote freshness window: %s", cfg.Store.QuoteFreshness)

	// Structured logger for the optimization and ingestion paths
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Initialize infrastructure dependencies
	quoteStore := pricestore.NewMemoryStore(cfg.Store.QuoteFreshness)

	// Initialize usecase layer
	nutrition := usecase.NewNutritionLookup(nil)
	optimizer := usecase.NewBasketOptimizer(nutrition, usecase.OptimizerConfig{
		SolveTimeout: cfg.Optimizer.SolveTimeout,
	}, logger)

	log.Printf("Optimizer: timeout=%s, variety=%d, per-item cap=%.1f",
		cfg.Optimizer.SolveTimeout,
		cfg.Optimizer.MinProteinVariety,
		cfg.Optimizer.MaxPerItemUnits)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(quoteStore, optimizer, httpDelivery.OptimizerDefaults{
		MinProteinVariety: cfg.Optimizer.MinProteinVariety,
		MaxPerItemUnits:   cfg.Optimizer.MaxPerItemUnits,
	}, logger)

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
