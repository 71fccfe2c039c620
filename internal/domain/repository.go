package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// ProductClient defines the interface for the external product database
// (Open Food Facts). The returned record is opaque; its schema is owned by
// the external service.
type ProductClient interface {
	GetProduct(ctx context.Context, barcode string) (Product, error)
}

// ProfileStore defines the interface for reading a user's raw free-text
// allergy declaration. The raw string is the persisted form; parsing it is
// the core's job.
type ProfileStore interface {
	GetAllergyText(ctx context.Context, userID string) (string, error)
}

// AnalyzerClient defines the interface for the remote analysis service.
// Its warnings are opaque strings merged with locally computed ones.
type AnalyzerClient interface {
	Analyze(ctx context.Context, product Product, userID string, allergies []string) ([]string, error)
}

// OCRClient defines the interface for extracting text from a label image.
type OCRClient interface {
	ExtractText(ctx context.Context, image []byte, filename string) (string, error)
}

// LLMClient defines the interface for the narrative ingredient analysis
// endpoint (Ollama).
type LLMClient interface {
	AnalyzeIngredients(ctx context.Context, text string) (string, error)
	Ping(ctx context.Context) error
}
