package model

import "testing"

func TestCapitalizeName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "lowercase word", input: "food", want: "Food"},
		{name: "already capitalized", input: "Food", want: "Food"},
		{name: "uppercase stays", input: "FOOD", want: "FOOD"},
		{name: "only first word touched", input: "fast food", want: "Fast food"},
		{name: "leading whitespace trimmed", input: "  food  ", want: "Food"},
		{name: "empty string", input: "", want: ""},
		{name: "whitespace only", input: "   ", want: ""},
		{name: "single rune", input: "x", want: "X"},
		{name: "non-letter first rune", input: "7-eleven", want: "7-eleven"},
		{name: "multibyte rune", input: "éclair", want: "Éclair"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CapitalizeName(tt.input); got != tt.want {
				t.Errorf("CapitalizeName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
