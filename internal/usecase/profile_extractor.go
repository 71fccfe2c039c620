package usecase

import (
	"log"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/scansafe/backend/internal/domain"
)

// Compiled regex patterns for profile parsing
var (
	// Separators accepted in a free-text allergy declaration
	termSeparatorPattern = regexp.MustCompile(`[\n,;|]+`)
)

// minTermWordLength is the shortest word allowed in a profile term. Shorter
// fragments are almost always typos or OCR noise ("a", "of", "x2").
const minTermWordLength = 3

// ProfileExtractor parses a raw free-text allergy declaration into a
// normalized AllergyProfile. It is total: malformed input degrades to an
// empty term set, never an error.
type ProfileExtractor struct {
	enableDebugLogging bool
}

// NewProfileExtractor creates a new profile extractor
func NewProfileExtractor(enableDebugLogging bool) *ProfileExtractor {
	return &ProfileExtractor{
		enableDebugLogging: enableDebugLogging,
	}
}

// Extract parses raw allergy text. Empty, whitespace-only or literal "none"
// input means the user declared no known allergies.
func (p *ProfileExtractor) Extract(raw string) domain.AllergyProfile {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || strings.EqualFold(trimmed, "none") {
		return domain.AllergyProfile{DeclaredNone: true}
	}

	seen := make(map[string]bool)
	var terms []string

	for _, piece := range termSeparatorPattern.Split(trimmed, -1) {
		term := strings.ToLower(strings.TrimSpace(piece))
		if term == "" {
			continue
		}
		if !isValidTerm(term) {
			if p.enableDebugLogging {
				log.Printf("[PROFILE] Dropping noise term: %q", term)
			}
			continue
		}
		if !seen[term] {
			seen[term] = true
			terms = append(terms, term)
		}
	}

	// Sorted so downstream matching is deterministic
	sort.Strings(terms)

	if p.enableDebugLogging {
		log.Printf("[PROFILE] Extracted %d terms from %d chars of raw text", len(terms), len(raw))
	}

	return domain.AllergyProfile{Terms: terms}
}

// isValidTerm rejects terms that cannot plausibly name an allergen:
// words shorter than 3 characters, anything containing digits or
// punctuation, and all-vowel fragments (typical OCR garbage like "aa").
func isValidTerm(term string) bool {
	words := strings.Fields(term)
	if len(words) == 0 {
		return false
	}
	for _, word := range words {
		if len([]rune(word)) < minTermWordLength {
			return false
		}
		if !isAlphabetic(word) {
			return false
		}
		if isAllVowels(word) {
			return false
		}
	}
	return true
}

// isAlphabetic reports whether s consists only of letters
func isAlphabetic(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return len(s) > 0
}

func isAllVowels(s string) bool {
	for _, r := range s {
		switch r {
		case 'a', 'e', 'i', 'o', 'u':
		default:
			return false
		}
	}
	return len(s) > 0
}
