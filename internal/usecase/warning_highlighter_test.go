package usecase

import "testing"

func TestHighlightWarnings(t *testing.T) {
	t.Run("flags warning sentences", func(t *testing.T) {
		text := "These ingredients are mostly natural. However, the additive E621 may cause headache in sensitive people! Overall the product is fine."

		sentences := HighlightWarnings(text)
		if len(sentences) != 3 {
			t.Fatalf("got %d sentences, want 3", len(sentences))
		}
		if sentences[0].IsWarning {
			t.Errorf("sentence 0 flagged as warning: %q", sentences[0].Text)
		}
		if !sentences[1].IsWarning {
			t.Errorf("sentence 1 not flagged as warning: %q", sentences[1].Text)
		}
		if sentences[2].IsWarning {
			t.Errorf("sentence 2 flagged as warning: %q", sentences[2].Text)
		}
	})

	t.Run("matching is case-insensitive", func(t *testing.T) {
		sentences := HighlightWarnings("This product contains a known ALLERGEN")
		if len(sentences) != 1 || !sentences[0].IsWarning {
			t.Errorf("sentences = %+v, want single flagged sentence", sentences)
		}
	})

	t.Run("empty and whitespace input yields nothing", func(t *testing.T) {
		if got := HighlightWarnings(""); got != nil {
			t.Errorf("HighlightWarnings(\"\") = %v, want nil", got)
		}
		if got := HighlightWarnings("  \n "); got != nil {
			t.Errorf("HighlightWarnings(whitespace) = %v, want nil", got)
		}
	})

	t.Run("trailing punctuation produces no empty sentences", func(t *testing.T) {
		sentences := HighlightWarnings("Safe to eat...")
		if len(sentences) != 1 {
			t.Fatalf("got %d sentences, want 1", len(sentences))
		}
		if sentences[0].Text != "Safe to eat" {
			t.Errorf("Text = %q, want %q", sentences[0].Text, "Safe to eat")
		}
	})
}
