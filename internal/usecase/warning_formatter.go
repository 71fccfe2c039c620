package usecase

import (
	"fmt"
	"strings"

	"github.com/scansafe/backend/internal/domain"
)

// allergenWarningFormat renders one detected allergen match for display.
const allergenWarningFormat = "Allergen alert: contains %s"

// FormatWarnings merges server-supplied warnings with locally detected
// allergen matches into one deduplicated, ordered warning list. Server
// warnings come first, preserving their source order.
func FormatWarnings(serverWarnings []string, matches []domain.AllergenMatch) []string {
	combined := make([]string, 0, len(serverWarnings)+len(matches))
	combined = append(combined, serverWarnings...)
	for _, match := range matches {
		combined = append(combined, fmt.Sprintf(allergenWarningFormat, match.Term))
	}
	return DedupeWarnings(combined)
}

// DedupeWarnings removes duplicate warnings, comparing case- and
// whitespace-insensitively. The first occurrence of each warning is kept
// with its content untouched; only duplicates are filtered.
func DedupeWarnings(warnings []string) []string {
	seen := make(map[string]bool, len(warnings))
	result := make([]string, 0, len(warnings))
	for _, w := range warnings {
		key := strings.ToLower(strings.TrimSpace(w))
		if seen[key] {
			continue
		}
		seen[key] = true
		result = append(result, w)
	}
	return result
}
