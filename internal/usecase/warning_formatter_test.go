package usecase

import (
	"reflect"
	"testing"

	"github.com/scansafe/backend/internal/domain"
)

func TestFormatWarnings(t *testing.T) {
	t.Run("server warnings come first, matches after", func(t *testing.T) {
		server := []string{"High sodium content", "Contains palm oil"}
		matches := []domain.AllergenMatch{
			{Term: "milk", Strategy: domain.StrategyExactWord, Similarity: 1.0},
			{Term: "peanuts", Strategy: domain.StrategySimilarity, Similarity: 0.86},
		}

		got := FormatWarnings(server, matches)
		want := []string{
			"High sodium content",
			"Contains palm oil",
			"Allergen alert: contains milk",
			"Allergen alert: contains peanuts",
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("FormatWarnings = %v, want %v", got, want)
		}
	})

	t.Run("duplicate across sources is dropped", func(t *testing.T) {
		server := []string{"Allergen alert: contains milk"}
		matches := []domain.AllergenMatch{{Term: "milk"}}

		got := FormatWarnings(server, matches)
		if len(got) != 1 {
			t.Errorf("FormatWarnings = %v, want single entry", got)
		}
	})

	t.Run("empty inputs yield empty list", func(t *testing.T) {
		got := FormatWarnings(nil, nil)
		if len(got) != 0 {
			t.Errorf("FormatWarnings(nil, nil) = %v, want empty", got)
		}
	})
}

func TestDedupeWarnings(t *testing.T) {
	t.Run("case and whitespace insensitive", func(t *testing.T) {
		in := []string{"Contains milk", "contains milk", "  Contains Milk  ", "Contains soy"}
		got := DedupeWarnings(in)
		want := []string{"Contains milk", "Contains soy"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("DedupeWarnings = %v, want %v", got, want)
		}
	})

	t.Run("first occurrence wins, content untouched", func(t *testing.T) {
		in := []string{"HIGH Sugar", "high sugar"}
		got := DedupeWarnings(in)
		if len(got) != 1 || got[0] != "HIGH Sugar" {
			t.Errorf("DedupeWarnings = %v, want [HIGH Sugar]", got)
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		in := []string{"b", "a", "B", "c", "a"}
		once := DedupeWarnings(in)
		twice := DedupeWarnings(once)
		if !reflect.DeepEqual(once, twice) {
			t.Errorf("dedupe(dedupe(x)) = %v, want %v", twice, once)
		}
	})

	t.Run("empty input yields empty output", func(t *testing.T) {
		if got := DedupeWarnings(nil); len(got) != 0 {
			t.Errorf("DedupeWarnings(nil) = %v, want empty", got)
		}
	})
}
