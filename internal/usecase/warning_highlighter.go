package usecase

import (
	"regexp"
	"strings"

	"github.com/scansafe/backend/internal/domain"
)

// sentenceSplitPattern breaks an LLM narrative into sentences.
var sentenceSplitPattern = regexp.MustCompile(`[.!?]+`)

// warningKeywords flag a sentence of the analysis as a health warning.
// Matched as plain lowercase substrings, so multi-word entries work too.
var warningKeywords = []string{
	"warning", "dangerous", "harmful", "toxic", "carcinogen",
	"allergen", "allergic", "sensitivity", "intolerance", "avoid",
	"risk", "hazard", "unsafe", "contaminated", "artificial",
	"preservative", "additive", "chemical", "processed", "refined",
	"high sodium", "high sugar", "high fat", "trans fat", "saturated fat",
	"cholesterol", "diabetes", "obesity", "heart disease", "hypertension",
	"inflammation", "digestive", "nausea", "headache", "migraine",
	"irritation", "rash", "itching", "swelling", "asthma",
	"blood pressure", "blood sugar", "liver", "kidney", "damage",
	"cancer", "tumor", "ulcer", "bloating", "acid reflux",
	"heartburn", "indigestion", "vomiting", "side effect", "adverse",
	"contraindication", "precaution", "caution", "consult", "doctor",
	"severe", "serious", "life-threatening", "fatal",
}

// HighlightWarnings splits an analysis narrative into sentences and flags
// the ones that read like health warnings. Empty input yields no sentences.
func HighlightWarnings(text string) []domain.Sentence {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var sentences []domain.Sentence
	for _, raw := range sentenceSplitPattern.Split(text, -1) {
		sentence := strings.TrimSpace(raw)
		if sentence == "" {
			continue
		}
		sentences = append(sentences, domain.Sentence{
			Text:      sentence,
			IsWarning: containsWarningKeyword(sentence),
		})
	}
	return sentences
}

func containsWarningKeyword(sentence string) bool {
	lower := strings.ToLower(sentence)
	for _, keyword := range warningKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}
