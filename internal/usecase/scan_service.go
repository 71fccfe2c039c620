package usecase

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/scansafe/backend/internal/domain"
)

// ScanServiceConfig holds configuration for the scan service
type ScanServiceConfig struct {
	CacheTTL            time.Duration
	ProfileCacheTTL     time.Duration
	SimilarityThreshold float64
	MinTokenLength      int
	EnableDebugLogging  bool
}

// ScanService runs the full barcode scan flow: fetch the product record,
// resolve the user's allergy profile, collect server-side warnings, then
// run the local allergen matching pipeline over it all.
type ScanService struct {
	cache    domain.CacheRepository
	products domain.ProductClient
	profiles domain.ProfileStore
	analyzer domain.AnalyzerClient

	profileExtractor *ProfileExtractor
	tokenExtractor   *TokenExtractor
	matcher          *AllergenMatcher

	cacheTTL        time.Duration
	profileCacheTTL time.Duration
}

// NewScanService creates a new scan service with dependencies. The analyzer
// may be nil; server warnings are then skipped entirely.
func NewScanService(
	cache domain.CacheRepository,
	products domain.ProductClient,
	profiles domain.ProfileStore,
	analyzer domain.AnalyzerClient,
	config ScanServiceConfig,
) *ScanService {
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 24 * time.Hour
	}
	profileCacheTTL := config.ProfileCacheTTL
	if profileCacheTTL == 0 {
		profileCacheTTL = 720 * time.Hour // keep the fallback copy around
	}

	return &ScanService{
		cache:            cache,
		products:         products,
		profiles:         profiles,
		analyzer:         analyzer,
		profileExtractor: NewProfileExtractor(config.EnableDebugLogging),
		tokenExtractor: NewTokenExtractor(TokenExtractorConfig{
			MinTokenLength:     config.MinTokenLength,
			EnableDebugLogging: config.EnableDebugLogging,
		}),
		matcher: NewAllergenMatcher(MatchConfig{
			SimilarityThreshold: config.SimilarityThreshold,
			EnableDebugLogging:  config.EnableDebugLogging,
		}),
		cacheTTL:        cacheTTL,
		profileCacheTTL: profileCacheTTL,
	}
}

// Scan looks up a barcode and checks the product against the user's
// declared allergies.
// Flow: cache/product API -> profile store -> analyzer -> matching core.
// The only failure surfaced to the caller is the inability to obtain a
// product record; profile and analyzer failures degrade to empty inputs.
func (s *ScanService) Scan(ctx context.Context, barcode, userID string) (*domain.ScanResult, error) {
	barcode = strings.TrimSpace(barcode)
	if barcode == "" {
		return nil, domain.ErrInvalidRequest
	}

	product, err := s.getProduct(ctx, barcode)
	if err != nil {
		return nil, err
	}

	profile := s.profileExtractor.Extract(s.allergyText(ctx, userID))

	serverWarnings := s.serverWarnings(ctx, product, userID, profile)

	tokens := s.tokenExtractor.Extract(product)
	matches := s.matcher.Match(profile, tokens)

	return &domain.ScanResult{
		Barcode:  barcode,
		Product:  product,
		Matches:  matches,
		Warnings: FormatWarnings(serverWarnings, matches),
	}, nil
}

// CheckLabel runs the matching core over raw label text, the path used for
// OCR output. The text never reaches the product database or the analyzer.
func (s *ScanService) CheckLabel(ctx context.Context, text, userID string) (*domain.LabelResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, domain.ErrInvalidRequest
	}

	profile := s.profileExtractor.Extract(s.allergyText(ctx, userID))
	tokens := s.tokenExtractor.ExtractText(text)
	matches := s.matcher.Match(profile, tokens)

	return &domain.LabelResult{
		Text:     text,
		Matches:  matches,
		Warnings: FormatWarnings(nil, matches),
	}, nil
}

// getProduct returns the product record from cache or the product API.
func (s *ScanService) getProduct(ctx context.Context, barcode string) (domain.Product, error) {
	cacheKey := "product:" + barcode

	if cached, err := s.cache.Get(ctx, cacheKey); err == nil {
		if m, ok := cached.(map[string]interface{}); ok {
			return domain.Product(m), nil
		}
	}

	product, err := s.products.GetProduct(ctx, barcode)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, cacheKey, product, s.cacheTTL); err != nil {
		log.Printf("[SCAN] Failed to cache product %q: %v", barcode, err)
	}

	return product, nil
}

// allergyText resolves the user's raw allergy declaration. A successful
// store read refreshes the cached copy; a failed read falls back to it.
// No data anywhere is treated the same as an explicit "None".
func (s *ScanService) allergyText(ctx context.Context, userID string) string {
	if userID == "" {
		return ""
	}
	cacheKey := "profile:" + userID

	text, err := s.profiles.GetAllergyText(ctx, userID)
	if err == nil {
		if cacheErr := s.cache.Set(ctx, cacheKey, text, s.profileCacheTTL); cacheErr != nil {
			log.Printf("[SCAN] Failed to cache profile %q: %v", userID, cacheErr)
		}
		return text
	}

	log.Printf("[SCAN] Profile lookup failed for %q, trying cached copy: %v", userID, err)
	if cached, cacheErr := s.cache.Get(ctx, cacheKey); cacheErr == nil {
		if t, ok := cached.(string); ok {
			return t
		}
	}
	return ""
}

// serverWarnings asks the remote analysis service for its warnings. Any
// failure degrades to no warnings; the scan itself never fails on it.
func (s *ScanService) serverWarnings(ctx context.Context, product domain.Product, userID string, profile domain.AllergyProfile) []string {
	if s.analyzer == nil {
		return nil
	}
	warnings, err := s.analyzer.Analyze(ctx, product, userID, profile.Terms)
	if err != nil {
		log.Printf("[SCAN] Analyzer unavailable: %v", fmt.Errorf("%w: %v", domain.ErrAnalyzerFailure, err))
		return nil
	}
	return warnings
}
