package usecase

import (
	"log"
	"regexp"
	"strings"

	"github.com/scansafe/backend/internal/domain"
)

const (
	// defaultSimilarityThreshold is the minimum normalized Levenshtein
	// similarity for a fuzzy match to be retained.
	defaultSimilarityThreshold = 0.7

	// minFuzzyLength is the shortest term/token length eligible for the
	// similarity and regex strategies. Shorter strings produce too many
	// false positives.
	minFuzzyLength = 4
)

// MatchConfig holds configuration for the allergen matcher
type MatchConfig struct {
	SimilarityThreshold float64
	EnableDebugLogging  bool
}

// AllergenMatcher compares a user's allergy profile against a product's
// ingredient vocabulary. For each profile term the strategies are tried in
// priority order and the first success wins: exact word, phrase
// containment, Levenshtein similarity, word-boundary regex. Pure function
// of its inputs; no I/O, no mutation.
type AllergenMatcher struct {
	similarityThreshold float64
	enableDebugLogging  bool
}

// NewAllergenMatcher creates a new matcher with the given configuration
func NewAllergenMatcher(config MatchConfig) *AllergenMatcher {
	threshold := config.SimilarityThreshold
	if threshold <= 0 {
		threshold = defaultSimilarityThreshold
	}
	return &AllergenMatcher{
		similarityThreshold: threshold,
		enableDebugLogging:  config.EnableDebugLogging,
	}
}

// Match returns the set of detected allergen mentions. A profile that
// declared no allergies short-circuits to nil regardless of the product.
// A term that fails every strategy simply produces no match; that is the
// expected common case, not an error.
func (m *AllergenMatcher) Match(profile domain.AllergyProfile, tokens domain.TokenSet) []domain.AllergenMatch {
	if profile.DeclaredNone || len(profile.Terms) == 0 {
		return nil
	}
	if tokens.Empty() {
		return nil
	}

	tokenSet := make(map[string]bool, len(tokens.Tokens))
	for _, t := range tokens.Tokens {
		tokenSet[t] = true
	}

	var matches []domain.AllergenMatch
	for _, term := range profile.Terms {
		match := m.matchTerm(term, tokens, tokenSet)
		if match == nil {
			continue
		}
		if m.enableDebugLogging {
			log.Printf("[MATCH] %q -> %q via %s (%.2f)", match.Term, match.Matched, match.Strategy, match.Similarity)
		}
		matches = append(matches, *match)
	}

	return matches
}

// matchTerm runs the tiered strategies for one term, highest confidence first.
func (m *AllergenMatcher) matchTerm(term string, tokens domain.TokenSet, tokenSet map[string]bool) *domain.AllergenMatch {
	// Tier 1: any word of the term exactly equals a product token.
	for _, word := range strings.Fields(term) {
		if len([]rune(word)) < minTermWordLength {
			continue
		}
		if tokenSet[word] {
			return &domain.AllergenMatch{
				Term:       term,
				Matched:    word,
				Strategy:   domain.StrategyExactWord,
				Similarity: 1.0,
			}
		}
	}

	// Tier 2: the whole normalized term occurs as a phrase in the joined
	// ingredient text.
	phrase := strings.Join(strings.Fields(term), " ")
	if phrase != "" && strings.Contains(tokens.Text, phrase) {
		return &domain.AllergenMatch{
			Term:       term,
			Matched:    phrase,
			Strategy:   domain.StrategyPhrase,
			Similarity: 1.0,
		}
	}

	if len([]rune(term)) < minFuzzyLength {
		return nil
	}

	// Tier 3: best normalized Levenshtein similarity over the vocabulary.
	// Tokens are sorted, so ties break deterministically on the first hit.
	bestSim := 0.0
	bestToken := ""
	for _, token := range tokens.Tokens {
		if len([]rune(token)) < minFuzzyLength {
			continue
		}
		sim := similarity(term, token)
		if sim > bestSim {
			bestSim = sim
			bestToken = token
		}
	}
	if bestSim >= m.similarityThreshold {
		return &domain.AllergenMatch{
			Term:       term,
			Matched:    bestToken,
			Strategy:   domain.StrategySimilarity,
			Similarity: bestSim,
		}
	}

	// Tier 4: word-boundary regex against the unsplit joined text.
	pattern, err := regexp.Compile(`\b` + regexp.QuoteMeta(term) + `\b`)
	if err == nil && pattern.MatchString(tokens.Text) {
		return &domain.AllergenMatch{
			Term:       term,
			Matched:    term,
			Strategy:   domain.StrategyRegexBoundary,
			Similarity: 1.0,
		}
	}

	return nil
}

// similarity computes normalized Levenshtein similarity in [0,1]:
// (maxLen - editDistance) / maxLen.
func similarity(s1, s2 string) float64 {
	r1 := []rune(s1)
	r2 := []rune(s2)
	maxLen := len(r1)
	if len(r2) > maxLen {
		maxLen = len(r2)
	}
	if maxLen == 0 {
		return 1.0
	}
	return float64(maxLen-levenshteinDistance(s1, s2)) / float64(maxLen)
}

// levenshteinDistance calculates the edit distance between two strings
func levenshteinDistance(s1, s2 string) int {
	if len(s1) == 0 {
		return len(s2)
	}
	if len(s2) == 0 {
		return len(s1)
	}

	r1 := []rune(s1)
	r2 := []rune(s2)
	m := len(r1)
	n := len(r2)

	// Use two rows instead of the full matrix for space efficiency
	prev := make([]int, n+1)
	curr := make([]int, n+1)

	for j := 0; j <= n; j++ {
		prev[j] = j
	}

	for i := 1; i <= m; i++ {
		curr[0] = i
		for j := 1; j <= n; j++ {
			cost := 0
			if r1[i-1] != r2[j-1] {
				cost = 1
			}
			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[n]
}
