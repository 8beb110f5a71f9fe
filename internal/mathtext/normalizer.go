// Package mathtext rewrites dollar-delimited math markup into text a
// speech engine can read aloud.
package mathtext

import (
	"regexp"
	"strings"

	"github.com/expr-lang/expr/parser"
)

// Block spans are handled before inline spans so that "$$x$$" is consumed
// as a single block span instead of two degenerate inline spans.
var (
	blockMathRegex  = regexp.MustCompile(`\$\$(.*?)\$\$`)
	inlineMathRegex = regexp.MustCompile(`\$(.*?)\$`)
)

// Normalize replaces every math span in text with a speakable form.
//
// A span that parses as a symbolic expression becomes "Math: " followed by
// the canonical printed form of the expression. A span that does not parse
// becomes "Equation: " followed by the raw span text. Text without dollar
// delimiters is returned unchanged.
func Normalize(text string) string {
	for _, pattern := range []*regexp.Regexp{blockMathRegex, inlineMathRegex} {
		matches := pattern.FindAllStringSubmatch(text, -1)
		for _, match := range matches {
			span, body := match[0], match[1]
			text = strings.ReplaceAll(text, span, speakable(body))
		}
	}
	return text
}

// speakable converts one captured expression body to its spoken form.
func speakable(body string) string {
	tree, err := parser.Parse(body)
	if err != nil {
		return "Equation: " + body
	}
	return "Math: " + tree.Node.String()
}
