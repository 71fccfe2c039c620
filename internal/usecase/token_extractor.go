package usecase

import (
	"log"
	"regexp"
	"sort"
	"strings"

	"github.com/scansafe/backend/internal/domain"
)

// nonLetterPattern splits normalized text on every run of non-letter
// characters: commas, brackets, digits, quotes, hyphens and the rest of the
// punctuation soup found in ingredient lists.
var nonLetterPattern = regexp.MustCompile(`[^\p{L}]+`)

// tagFields are product fields holding arrays of namespaced tags like
// "en:milk". The prefix before the last colon is a language/taxonomy code
// and is discarded.
var tagFields = []string{"allergens_tags", "traces_tags", "ingredients_tags"}

// flatAllergenFields are product fields holding comma-separated allergen or
// trace declarations as a single string, sometimes still colon-prefixed.
var flatAllergenFields = []string{
	"allergens", "allergens_from_user", "allergens_from_ingredients",
	"traces", "traces_from_user", "traces_from_ingredients",
}

// TokenExtractorConfig holds configuration for the token extractor
type TokenExtractorConfig struct {
	MinTokenLength     int
	EnableDebugLogging bool
}

// TokenExtractor collects every textual field describing a product's
// ingredients, allergens and trace declarations into one normalized token
// set. It is total: a missing field, a wrong-typed field or a non-object
// product record contributes zero tokens, never an error.
type TokenExtractor struct {
	minTokenLength     int
	enableDebugLogging bool
}

// NewTokenExtractor creates a new token extractor with the given configuration
func NewTokenExtractor(config TokenExtractorConfig) *TokenExtractor {
	minLen := config.MinTokenLength
	if minLen <= 0 {
		minLen = 3 // Default noise floor
	}
	return &TokenExtractor{
		minTokenLength:     minLen,
		enableDebugLogging: config.EnableDebugLogging,
	}
}

// Extract builds the token set for one product record.
func (e *TokenExtractor) Extract(product domain.Product) domain.TokenSet {
	if product == nil {
		return domain.TokenSet{}
	}

	var fragments []string

	// Free-text ingredient fields: the base field plus every per-language
	// and debug variant shares the ingredients_text prefix.
	for key, value := range product {
		if strings.HasPrefix(key, "ingredients_text") {
			if s, ok := value.(string); ok {
				fragments = append(fragments, s)
			}
		}
	}
	// Map iteration order is random; keep the joined text reproducible.
	sort.Strings(fragments)

	// Structured ingredient objects carry their own text/name/id values.
	fragments = append(fragments, ingredientObjectValues(product)...)

	// Tag arrays like ["en:milk", "en:tree-nuts"]. Hyphenated segments are
	// re-split by the common word splitter below, so "en:tree-nuts" yields
	// the tokens "tree" and "nuts".
	for _, field := range tagFields {
		for _, tag := range product.StringSliceField(field) {
			fragments = append(fragments, stripTagPrefix(tag))
		}
	}

	// Flat comma-separated allergen/trace strings.
	for _, field := range flatAllergenFields {
		if s := product.StringField(field); s != "" {
			for _, part := range strings.Split(s, ",") {
				fragments = append(fragments, stripTagPrefix(part))
			}
		}
	}

	set := e.buildTokenSet(strings.Join(fragments, " "))

	if e.enableDebugLogging {
		log.Printf("[TOKENS] Extracted %d tokens from product %q", len(set.Tokens), product.Barcode())
	}

	return set
}

// ExtractText builds a token set from one block of free text, the path used
// for OCR'd label photos.
func (e *TokenExtractor) ExtractText(text string) domain.TokenSet {
	return e.buildTokenSet(text)
}

// buildTokenSet normalizes raw text into the joined word sequence plus the
// filtered unique token vocabulary.
func (e *TokenExtractor) buildTokenSet(raw string) domain.TokenSet {
	words := nonLetterPattern.Split(strings.ToLower(raw), -1)

	var joined []string
	seen := make(map[string]bool)
	var tokens []string

	for _, word := range words {
		if word == "" {
			continue
		}
		joined = append(joined, word)
		if len([]rune(word)) < e.minTokenLength {
			continue
		}
		if !seen[word] {
			seen[word] = true
			tokens = append(tokens, word)
		}
	}

	// Sorted tokens give the matcher a deterministic iteration order.
	sort.Strings(tokens)

	return domain.TokenSet{
		Tokens: tokens,
		Text:   strings.Join(joined, " "),
	}
}

// ingredientObjectValues pulls text/name/id values out of the structured
// "ingredients" array, tolerating any malformed element shape.
func ingredientObjectValues(product domain.Product) []string {
	raw, ok := product["ingredients"].([]interface{})
	if !ok {
		return nil
	}
	var values []string
	for _, el := range raw {
		obj, ok := el.(map[string]interface{})
		if !ok {
			continue
		}
		for _, key := range []string{"text", "name", "id"} {
			if s, ok := obj[key].(string); ok && s != "" {
				values = append(values, stripTagPrefix(s))
			}
		}
	}
	return values
}

// stripTagPrefix removes the language/namespace prefix from a tag value,
// keeping only the segment after the last colon ("en:milk" -> "milk").
func stripTagPrefix(tag string) string {
	if idx := strings.LastIndex(tag, ":"); idx >= 0 {
		return tag[idx+1:]
	}
	return tag
}
