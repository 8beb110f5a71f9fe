package document

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/papervoice/papervoice/internal/mathtext"
	"github.com/papervoice/papervoice/internal/pages"
)

// Section is one recovered unit of document structure: a header and the
// content blocks that follow it. An empty Header marks preamble content
// found before the first detected header.
type Section struct {
	Header  string
	Content []string
}

// HeaderRule reports whether a trimmed text block reads as a section
// header.
type HeaderRule func(text string) bool

// numberedHeadingRegex matches headings like "3.2 Results": digit groups
// separated by dots, then whitespace and a word character.
var numberedHeadingRegex = regexp.MustCompile(`^\d+(\.\d+)*\s+\w`)

// defaultHeaderRules are evaluated in priority order. Header wins as soon
// as any rule fires; there is no rule to demote a false positive.
func defaultHeaderRules() []HeaderRule {
	return []HeaderRule{
		isAllCaps,
		numberedHeadingRegex.MatchString,
		hasTrailingColon,
	}
}

// isAllCaps reports whether text contains at least one cased rune and no
// lower-case rune. Digits and punctuation carry no case and are ignored,
// so a page number alone never reads as a header.
func isAllCaps(text string) bool {
	cased := false
	for _, r := range text {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			cased = true
		}
	}
	return cased
}

func hasTrailingColon(text string) bool {
	return strings.HasSuffix(text, ":")
}

// Classifier groups ordered text blocks into sections. Content blocks pass
// through the normalizer before accumulation; header blocks do not.
type Classifier struct {
	rules     []HeaderRule
	normalize func(string) string
}

// NewClassifier returns a classifier with the default header heuristics
// and math normalization.
func NewClassifier() *Classifier {
	return &Classifier{
		rules:     defaultHeaderRules(),
		normalize: mathtext.Normalize,
	}
}

// accumulator is the single open section carried through the block loop.
type accumulator struct {
	header  string
	content []string
}

func (a *accumulator) empty() bool {
	return a.header == "" && len(a.content) == 0
}

// flushInto appends the open section to sections unless it is still the
// untouched initial state.
func (a *accumulator) flushInto(sections []Section) []Section {
	if a.empty() {
		return sections
	}
	return append(sections, Section{Header: a.header, Content: a.content})
}

// Classify walks blocks once, in the given order, and returns the
// recovered sections. Blocks that are empty after trimming are skipped.
func (c *Classifier) Classify(blocks []pages.TextBlock) []Section {
	var sections []Section
	var acc accumulator

	for _, block := range blocks {
		text := strings.TrimSpace(block.Text)
		if text == "" {
			continue
		}

		if c.isHeader(text) {
			sections = acc.flushInto(sections)
			acc = accumulator{header: text}
			continue
		}
		acc.content = append(acc.content, c.normalize(text))
	}

	return acc.flushInto(sections)
}

func (c *Classifier) isHeader(text string) bool {
	for _, rule := range c.rules {
		if rule(text) {
			return true
		}
	}
	return false
}
