package speech

import (
	"reflect"
	"strings"
	"testing"
)

func TestSplitAbbreviationsAndDecimals(t *testing.T) {
	s := NewSplitter()

	got := s.Split("Dr. Smith arrived. He left at 3.5pm.")

	if len(got) != 2 {
		t.Fatalf("expected 2 sentences, got %d: %q", len(got), got)
	}
	if got[0] != "Dr. Smith arrived." {
		t.Errorf("first sentence = %q", got[0])
	}
	if got[1] != "He left at 3.5pm." {
		t.Errorf("second sentence = %q", got[1])
	}
	for _, sentence := range got {
		if strings.Contains(sentence, "\n") {
			t.Errorf("sentence contains newline: %q", sentence)
		}
		if strings.Contains(sentence, "  ") {
			t.Errorf("sentence contains doubled space: %q", sentence)
		}
	}
}

func TestSplitCollapsesWhitespace(t *testing.T) {
	s := NewSplitter()

	got := s.Split("First  sentence\nwith a break. Second   sentence!")

	want := []string{"First sentence with a break.", "Second sentence!"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Split() = %q, want %q", got, want)
	}
}

func TestSplitVariants(t *testing.T) {
	s := NewSplitter()

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "empty input",
			input: "",
			want:  nil,
		},
		{
			name:  "whitespace only",
			input: "  \n\t ",
			want:  nil,
		},
		{
			name:  "no terminal punctuation",
			input: "a fragment without an ending",
			want:  []string{"a fragment without an ending"},
		},
		{
			name:  "mixed punctuation",
			input: "Really? Yes! Of course.",
			want:  []string{"Really?", "Yes!", "Of course."},
		},
		{
			name:  "citation before boundary",
			input: "This was shown before [4]. We extend it.",
			want:  []string{"This was shown before [4].", "We extend it."},
		},
		{
			name:  "quoted sentence end",
			input: `She said "stop." Then she left.`,
			want:  []string{`She said "stop."`, "Then she left."},
		},
		{
			name:  "latin abbreviation mid sentence",
			input: "Models differ, e.g. in depth. Width matters too.",
			want:  []string{"Models differ, e.g. in depth.", "Width matters too."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Split(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Split(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
