package usecase

import (
	"reflect"
	"testing"
)

func TestProfileExtractor_Extract(t *testing.T) {
	p := NewProfileExtractor(false)

	t.Run("declared none sentinels", func(t *testing.T) {
		for _, raw := range []string{"", "   ", "\n\t", "None", "none", "NONE", "  none  "} {
			profile := p.Extract(raw)
			if !profile.DeclaredNone {
				t.Errorf("Extract(%q).DeclaredNone = false, want true", raw)
			}
			if len(profile.Terms) != 0 {
				t.Errorf("Extract(%q).Terms = %v, want empty", raw, profile.Terms)
			}
		}
	})

	testCases := []struct {
		name string
		raw  string
		want []string
	}{
		{
			name: "comma separated",
			raw:  "Peanuts, Milk",
			want: []string{"milk", "peanuts"},
		},
		{
			name: "drops single letters and alphanumeric noise",
			raw:  "Milk, a, xyz123, Peanuts",
			want: []string{"milk", "peanuts"},
		},
		{
			name: "all separators accepted",
			raw:  "milk;soy|eggs\nwheat",
			want: []string{"eggs", "milk", "soy", "wheat"},
		},
		{
			name: "multi-word terms kept",
			raw:  "tree nuts, shellfish",
			want: []string{"shellfish", "tree nuts"},
		},
		{
			name: "multi-word term with short word dropped",
			raw:  "nuts of doom, milk",
			want: []string{"milk"},
		},
		{
			name: "all-vowel noise dropped",
			raw:  "aaa, eieio, milk",
			want: []string{"milk"},
		},
		{
			name: "punctuation-bearing terms dropped",
			raw:  "so-ya, milk!",
			want: nil,
		},
		{
			name: "duplicates collapse",
			raw:  "Milk, milk, MILK",
			want: []string{"milk"},
		},
		{
			name: "terms come back sorted",
			raw:  "wheat, eggs, milk",
			want: []string{"eggs", "milk", "wheat"},
		},
		{
			name: "only separators and noise",
			raw:  ",,;;||ab, 12",
			want: nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			profile := p.Extract(tc.raw)
			if profile.DeclaredNone {
				t.Fatalf("Extract(%q).DeclaredNone = true, want false", tc.raw)
			}
			if !reflect.DeepEqual(profile.Terms, tc.want) {
				t.Errorf("Extract(%q).Terms = %v, want %v", tc.raw, profile.Terms, tc.want)
			}
		})
	}

	t.Run("never errors on garbage input", func(t *testing.T) {
		// total function: worst case is an empty term set
		garbage := "\x00\x01!!!###, ..., 12345"
		profile := p.Extract(garbage)
		if len(profile.Terms) != 0 {
			t.Errorf("Extract(garbage).Terms = %v, want empty", profile.Terms)
		}
	})
}

func TestIsValidTerm(t *testing.T) {
	valid := []string{"milk", "tree nuts", "soy", "shellfish"}
	invalid := []string{"", "ab", "milk2", "a b c", "aa", "ouioui milk"}

	for _, term := range valid {
		if !isValidTerm(term) {
			t.Errorf("isValidTerm(%q) = false, want true", term)
		}
	}
	for _, term := range invalid {
		if isValidTerm(term) {
			t.Errorf("isValidTerm(%q) = true, want false", term)
		}
	}
}
