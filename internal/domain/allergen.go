package domain

// MatchStrategy identifies which tier of the matcher produced a match.
type MatchStrategy string

const (
	// StrategyExactWord matches a single word of the profile term exactly
	// against a token from the product vocabulary.
	StrategyExactWord MatchStrategy = "exact_word"

	// StrategyPhrase matches the whole normalized term as a substring of
	// the product's joined ingredient text.
	StrategyPhrase MatchStrategy = "phrase"

	// StrategySimilarity matches via normalized Levenshtein similarity.
	StrategySimilarity MatchStrategy = "similarity"

	// StrategyRegexBoundary matches a word-boundary regex built from the
	// term against the joined ingredient text.
	StrategyRegexBoundary MatchStrategy = "regex_boundary"
)

// AllergyProfile is the normalized view of a user's free-text allergy
// declaration. It is derived fresh on every matching run; the raw text is
// the persisted form and lives in the profile store.
type AllergyProfile struct {
	// Terms are lowercase, trimmed, deduplicated and sorted.
	Terms []string `json:"terms"`

	// DeclaredNone is true when the user explicitly has no known
	// allergies ("None", empty text). Terms is empty in that case.
	DeclaredNone bool `json:"declaredNone"`
}

// TokenSet is the normalized vocabulary extracted from one product record
// or one block of OCR'd label text. Never persisted.
type TokenSet struct {
	// Tokens are unique, sorted, alphabetic-only words of a minimum length.
	Tokens []string `json:"tokens"`

	// Text is the normalized space-joined source text the tokens came
	// from. Phrase and regex match strategies run against it.
	Text string `json:"text"`
}

// Empty reports whether the set contributes nothing to match against.
func (t TokenSet) Empty() bool {
	return len(t.Tokens) == 0 && t.Text == ""
}

// AllergenMatch is one detected correspondence between a profile term and
// the product vocabulary.
type AllergenMatch struct {
	Term       string        `json:"term"`     // the profile term that matched
	Matched    string        `json:"matched"`  // the token or phrase it matched
	Strategy   MatchStrategy `json:"strategy"` // which tier produced the match
	Similarity float64       `json:"similarity"`
}

// Sentence is one sentence of an LLM analysis, flagged when it reads like
// a health warning.
type Sentence struct {
	Text      string `json:"text"`
	IsWarning bool   `json:"isWarning"`
}

// ScanResult is the outcome of one barcode scan.
type ScanResult struct {
	Barcode  string          `json:"barcode"`
	Product  Product         `json:"product"`
	Matches  []AllergenMatch `json:"matches,omitempty"`
	Warnings []string        `json:"warnings"`
}

// LabelResult is the outcome of checking raw label text (usually OCR
// output) against a user's profile.
type LabelResult struct {
	Text     string          `json:"text"`
	Matches  []AllergenMatch `json:"matches,omitempty"`
	Warnings []string        `json:"warnings"`
}
