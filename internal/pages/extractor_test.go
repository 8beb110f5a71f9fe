package pages

import (
	"reflect"
	"testing"

	pdflib "github.com/ledongthuc/pdf"
)

func TestGroupRowsSplitsOnWideGaps(t *testing.T) {
	e := NewExtractor()

	// Line spacing of 10; the jump from 80 to 50 is paragraph spacing.
	rows := []row{
		{position: 100, text: "Intro line one"},
		{position: 90, text: "Intro line two"},
		{position: 80, text: "Intro line three"},
		{position: 50, text: "Next paragraph"},
		{position: 40, text: "continues here"},
	}

	got := e.groupRows(rows)
	want := []string{
		"Intro line one\nIntro line two\nIntro line three",
		"Next paragraph\ncontinues here",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("groupRows() = %#v, want %#v", got, want)
	}
}

func TestGroupRowsSingleRow(t *testing.T) {
	e := NewExtractor()

	got := e.groupRows([]row{{position: 10, text: "Only row"}})
	if len(got) != 1 || got[0] != "Only row" {
		t.Errorf("groupRows() = %#v, want one block", got)
	}
}

func TestGroupRowsUniformSpacing(t *testing.T) {
	e := NewExtractor()

	rows := []row{
		{position: 30, text: "a"},
		{position: 20, text: "b"},
		{position: 10, text: "c"},
	}
	got := e.groupRows(rows)
	if len(got) != 1 {
		t.Errorf("uniform spacing should yield one block, got %#v", got)
	}
}

func TestGroupRowsEmpty(t *testing.T) {
	e := NewExtractor()
	if got := e.groupRows(nil); got != nil {
		t.Errorf("expected nil for no rows, got %#v", got)
	}
}

func TestJoinRowWords(t *testing.T) {
	frag := func(s string, x, w float64) pdflib.Text {
		return pdflib.Text{S: s, X: x, W: w, FontSize: 10}
	}

	tests := []struct {
		name  string
		words []pdflib.Text
		want  string
	}{
		{
			name: "gap between fragments becomes a space",
			// 6-point gap between "Section" and "heading" at font size 10.
			words: []pdflib.Text{frag("Section", 0, 40), frag("heading", 46, 40)},
			want:  "Section heading",
		},
		{
			name:  "adjacent fragments stay glued",
			words: []pdflib.Text{frag("head", 0, 20), frag("ing", 20, 15)},
			want:  "heading",
		},
		{
			name:  "explicit space glyph is not doubled",
			words: []pdflib.Text{frag("two ", 0, 22), frag("words", 30, 25)},
			want:  "two words",
		},
		{
			name:  "empty row",
			words: nil,
			want:  "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := joinRowWords(tt.words); got != tt.want {
				t.Errorf("joinRowWords() = %q, want %q", got, tt.want)
			}
		})
	}
}
