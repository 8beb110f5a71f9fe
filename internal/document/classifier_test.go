package document

import (
	"strings"
	"testing"

	"github.com/papervoice/papervoice/internal/pages"
)

func makeBlocks(texts ...string) []pages.TextBlock {
	blocks := make([]pages.TextBlock, len(texts))
	for i, text := range texts {
		blocks[i] = pages.TextBlock{Page: 0, Index: i, Text: text}
	}
	return blocks
}

// identityClassifier skips math normalization so content assertions can
// compare exact strings.
func identityClassifier() *Classifier {
	c := NewClassifier()
	c.normalize = func(s string) string { return s }
	return c
}

func TestClassifyFlushOrdering(t *testing.T) {
	c := identityClassifier()

	got := c.Classify(makeBlocks("RESULTS", "text1", "3.2 Discussion", "text2"))

	if len(got) != 2 {
		t.Fatalf("expected 2 sections, got %d: %+v", len(got), got)
	}
	if got[0].Header != "RESULTS" || len(got[0].Content) != 1 || got[0].Content[0] != "text1" {
		t.Errorf("section 0 = %+v", got[0])
	}
	if got[1].Header != "3.2 Discussion" || len(got[1].Content) != 1 || got[1].Content[0] != "text2" {
		t.Errorf("section 1 = %+v", got[1])
	}
}

func TestClassifyAllCapsSingleBlock(t *testing.T) {
	c := identityClassifier()

	got := c.Classify(makeBlocks("INTRODUCTION"))

	if len(got) != 1 {
		t.Fatalf("expected 1 section, got %d", len(got))
	}
	if got[0].Header != "INTRODUCTION" || len(got[0].Content) != 0 {
		t.Errorf("section = %+v", got[0])
	}
}

func TestClassifyNoHeadersYieldsPreamble(t *testing.T) {
	c := identityClassifier()

	input := []string{"first paragraph.", "second paragraph.", "third paragraph."}
	got := c.Classify(makeBlocks(input...))

	if len(got) != 1 {
		t.Fatalf("expected 1 section, got %d", len(got))
	}
	if got[0].Header != "" {
		t.Errorf("expected empty header, got %q", got[0].Header)
	}
	if len(got[0].Content) != len(input) {
		t.Fatalf("content = %v", got[0].Content)
	}
	for i, want := range input {
		if got[0].Content[i] != want {
			t.Errorf("content[%d] = %q, want %q", i, got[0].Content[i], want)
		}
	}
}

func TestClassifyEmptyInput(t *testing.T) {
	c := identityClassifier()

	if got := c.Classify(nil); len(got) != 0 {
		t.Errorf("expected no sections, got %+v", got)
	}
}

func TestClassifySkipsBlankBlocks(t *testing.T) {
	c := identityClassifier()

	got := c.Classify(makeBlocks("RESULTS", "   \n\t ", "text"))

	if len(got) != 1 {
		t.Fatalf("expected 1 section, got %d", len(got))
	}
	if len(got[0].Content) != 1 || got[0].Content[0] != "text" {
		t.Errorf("blank block not skipped: %+v", got[0])
	}
}

func TestClassifyEveryBlockAssignedOnce(t *testing.T) {
	c := identityClassifier()

	input := []string{
		"Some opening text before any header.",
		"METHODS",
		"We did a thing.",
		"We did another thing.",
		"2 Results",
		"Numbers went up.",
		"Caveats:",
		"There were caveats.",
	}
	got := c.Classify(makeBlocks(input...))

	var flattened []string
	for _, sec := range got {
		if sec.Header != "" {
			flattened = append(flattened, sec.Header)
		}
		flattened = append(flattened, sec.Content...)
	}
	if len(flattened) != len(input) {
		t.Fatalf("block count changed: got %d, want %d", len(flattened), len(input))
	}
	for i, want := range input {
		if flattened[i] != want {
			t.Errorf("reading order broken at %d: got %q, want %q", i, flattened[i], want)
		}
	}
}

func TestClassifyHeaderRulePriority(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		header bool
	}{
		{"all caps", "RELATED WORK", true},
		{"numbered", "3.2 Results", true},
		{"nested numbered", "1.2.3 Deep subsection", true},
		{"trailing colon", "Definitions:", true},
		{"satisfies several rules", "APPENDIX A:", true},
		{"plain prose", "We trained the model for ten epochs.", false},
		{"number without title", "42", false},
		{"mixed case", "Related Work", false},
	}

	c := identityClassifier()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.isHeader(tt.text); got != tt.header {
				t.Errorf("isHeader(%q) = %v, want %v", tt.text, got, tt.header)
			}
		})
	}
}

func TestClassifyNormalizesContent(t *testing.T) {
	c := NewClassifier()

	got := c.Classify(makeBlocks("RESULTS", "The value is $1+1$."))

	if len(got) != 1 || len(got[0].Content) != 1 {
		t.Fatalf("unexpected sections: %+v", got)
	}
	content := got[0].Content[0]
	if strings.Contains(content, "$") {
		t.Errorf("math span not normalized: %q", content)
	}
	if !strings.Contains(content, "Math: ") {
		t.Errorf("expected Math: replacement in %q", content)
	}
}
