package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/scansafe/backend/config"
	httpDelivery "github.com/scansafe/backend/internal/delivery/http"
	"github.com/scansafe/backend/internal/domain"
	"github.com/scansafe/backend/internal/infrastructure/analyzer"
	"github.com/scansafe/backend/internal/infrastructure/cache"
	"github.com/scansafe/backend/internal/infrastructure/llm"
	"github.com/scansafe/backend/internal/infrastructure/ocr"
	"github.com/scansafe/backend/internal/infrastructure/openfoodfacts"
	"github.com/scansafe/backend/internal/infrastructure/supabase"
	"github.com/scansafe/backend/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting ScanSafe Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Cache Type: %s (TTL: %s)", cfg.Cache.Type, cfg.Cache.TTL)

	// Infrastructure dependencies
	memoryCache := cache.NewMemoryCache()
	defer memoryCache.Close()

	productClient := openfoodfacts.NewClient(cfg.ProductAPI.BaseURL, cfg.ProductAPI.UserAgent)
	if cfg.Server.Environment == "development" {
		productClient.SetDebug(true)
		log.Printf("Product API client debug mode enabled")
	}
	log.Printf("Product API configured: %s", cfg.ProductAPI.BaseURL)

	var profileStore domain.ProfileStore
	if cfg.Supabase.URL != "" {
		profileStore = supabase.NewProfileStore(cfg.Supabase.URL, cfg.Supabase.APIKey)
		log.Printf("Profile store configured: %s", cfg.Supabase.URL)
	} else {
		profileStore = emptyProfileStore{}
		log.Printf("WARNING: No profile store configured - allergen checks will see empty profiles")
	}

	var analyzerClient domain.AnalyzerClient
	if cfg.Analyzer.BaseURL != "" {
		analyzerClient = analyzer.NewClient(cfg.Analyzer.BaseURL)
		log.Printf("Analyzer configured: %s", cfg.Analyzer.BaseURL)
	}

	var ocrClient domain.OCRClient
	if cfg.OCR.APIKey != "" {
		ocrClient = ocr.NewClient(cfg.OCR.BaseURL, cfg.OCR.APIKey)
		log.Printf("OCR configured: %s", cfg.OCR.BaseURL)
	} else {
		log.Printf("WARNING: OCR API key not set - label photo endpoint disabled")
	}

	llmClient := llm.NewClient(cfg.LLM.BaseURL, cfg.LLM.Model)
	log.Printf("LLM configured: %s (model: %s)", cfg.LLM.BaseURL, cfg.LLM.Model)

	// Usecase layer
	scanService := usecase.NewScanService(
		memoryCache,
		productClient,
		profileStore,
		analyzerClient,
		usecase.ScanServiceConfig{
			CacheTTL:            cfg.Cache.TTL,
			ProfileCacheTTL:     cfg.Cache.ProfileTTL,
			SimilarityThreshold: cfg.Matching.SimilarityThreshold,
			MinTokenLength:      cfg.Matching.MinTokenLength,
			EnableDebugLogging:  cfg.Matching.EnableDebugLogging,
		},
	)

	log.Printf("Matching: similarity=%.2f, min_token_len=%d, debug=%v",
		cfg.Matching.SimilarityThreshold,
		cfg.Matching.MinTokenLength,
		cfg.Matching.EnableDebugLogging)

	handler := httpDelivery.NewHandler(scanService, ocrClient, llmClient)
	router := httpDelivery.SetupRouter(cfg, handler)

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// emptyProfileStore stands in when no profile backend is configured. Every
// lookup reads as "no data", which the core treats like an explicit "None".
type emptyProfileStore struct{}

func (emptyProfileStore) GetAllergyText(ctx context.Context, userID string) (string, error) {
	return "", nil
}

func init() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
