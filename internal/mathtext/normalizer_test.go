package mathtext

import (
	"strings"
	"testing"
)

func TestNormalizeParseableExpression(t *testing.T) {
	got := Normalize("The value is $1+1$.")

	if strings.Contains(got, "$") {
		t.Errorf("delimiters not removed: %q", got)
	}
	if !strings.Contains(got, "Math: ") {
		t.Errorf("expected Math: replacement, got %q", got)
	}
	if !strings.HasPrefix(got, "The value is ") || !strings.HasSuffix(got, ".") {
		t.Errorf("surrounding text altered: %q", got)
	}
}

func TestNormalizeUnparseableExpression(t *testing.T) {
	got := Normalize("Consider $x +$ here.")

	if !strings.Contains(got, "Equation: x +") {
		t.Errorf("expected Equation: fallback, got %q", got)
	}
	if strings.Contains(got, "$") {
		t.Errorf("delimiters not removed: %q", got)
	}
}

func TestNormalizeNoDelimiters(t *testing.T) {
	input := "Plain prose with no math at all."
	if got := Normalize(input); got != input {
		t.Errorf("expected input unchanged, got %q", got)
	}
}

func TestNormalizeBlockSpan(t *testing.T) {
	got := Normalize("Before $$2*3$$ after.")

	if strings.Contains(got, "$") {
		t.Errorf("block delimiters not removed: %q", got)
	}
	if !strings.Contains(got, "Math: ") {
		t.Errorf("expected Math: replacement, got %q", got)
	}
}

func TestNormalizeMultipleSpans(t *testing.T) {
	got := Normalize("First $1+2$ then $x +$ done.")

	if !strings.Contains(got, "Math: ") {
		t.Errorf("expected Math: for first span, got %q", got)
	}
	if !strings.Contains(got, "Equation: x +") {
		t.Errorf("expected Equation: for second span, got %q", got)
	}
	if strings.Contains(got, "$") {
		t.Errorf("delimiters remain: %q", got)
	}
}

func TestNormalizeRepeatedSpanReplacedIdentically(t *testing.T) {
	got := Normalize("$a+b$ equals $a+b$.")

	if strings.Contains(got, "$") {
		t.Errorf("delimiters remain: %q", got)
	}
	if strings.Count(got, "Math: ") != 2 {
		t.Errorf("expected both occurrences replaced, got %q", got)
	}
}
