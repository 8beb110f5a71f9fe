package speech

import (
	"strings"
	"unicode"
)

// Splitter segments cleaned prose into sentences. Whitespace runs,
// newlines included, are collapsed to single spaces before splitting.
type Splitter struct {
	// abbreviations that end with a period without ending a sentence,
	// keyed lower-case without the trailing period.
	abbreviations map[string]bool
}

// NewSplitter returns a splitter with the common English abbreviation set.
func NewSplitter() *Splitter {
	return &Splitter{abbreviations: abbreviationSet()}
}

// Split returns the sentences of text in order, each whitespace-normalized.
// Empty input yields no sentences.
func (s *Splitter) Split(text string) []string {
	cleaned := strings.Join(strings.Fields(text), " ")
	if cleaned == "" {
		return nil
	}

	runes := []rune(cleaned)
	var sentences []string
	start := 0

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r != '.' && r != '!' && r != '?' {
			continue
		}

		// Collect a run of terminal punctuation ("?!", "...").
		end := i + 1
		for end < len(runes) && (runes[end] == '.' || runes[end] == '!' || runes[end] == '?') {
			end++
		}
		// Keep a closing quote or bracket with its sentence.
		for end < len(runes) && isClosing(runes[end]) {
			end++
		}

		if !s.isBoundary(runes, i, end) {
			i = end - 1
			continue
		}

		sentence := strings.TrimSpace(string(runes[start:end]))
		if sentence != "" {
			sentences = append(sentences, sentence)
		}
		for end < len(runes) && unicode.IsSpace(runes[end]) {
			end++
		}
		start = end
		i = end - 1
	}

	if start < len(runes) {
		if rest := strings.TrimSpace(string(runes[start:])); rest != "" {
			sentences = append(sentences, rest)
		}
	}
	return sentences
}

// isBoundary reports whether the punctuation at pos, whose punctuation run
// ends at end, closes a sentence.
func (s *Splitter) isBoundary(runes []rune, pos, end int) bool {
	if runes[pos] == '.' {
		// A period inside a decimal number never ends a sentence.
		if pos > 0 && pos+1 < len(runes) &&
			unicode.IsDigit(runes[pos-1]) && unicode.IsDigit(runes[pos+1]) {
			return false
		}
		// Known abbreviations keep their period.
		if s.isAbbreviation(runes, pos) {
			return false
		}
	}

	// End of text always closes the sentence.
	if end >= len(runes) {
		return true
	}

	// Otherwise a boundary needs trailing whitespace...
	if !unicode.IsSpace(runes[end]) {
		return false
	}

	// ...and, for a lone period, an upper-case continuation. Question and
	// exclamation marks are unambiguous.
	if runes[pos] != '.' || end-pos > 1 {
		return true
	}
	next := end
	for next < len(runes) && unicode.IsSpace(runes[next]) {
		next++
	}
	return next < len(runes) && (unicode.IsUpper(runes[next]) || unicode.IsDigit(runes[next]))
}

// isAbbreviation reports whether the word ending at the period at pos is a
// known abbreviation or a multi-dot form like "e.g." or "Ph.D.".
func (s *Splitter) isAbbreviation(runes []rune, pos int) bool {
	start := pos - 1
	for start >= 0 && !unicode.IsSpace(runes[start]) {
		start--
	}
	word := strings.ToLower(string(runes[start+1 : pos]))
	word = strings.TrimFunc(word, func(r rune) bool {
		return !unicode.IsLetter(r) && r != '.'
	})
	if word == "" {
		return false
	}
	if s.abbreviations[strings.TrimSuffix(word, ".")] {
		return true
	}
	// Multi-dot abbreviations: "e.g", "u.s", "ph.d".
	return strings.Contains(word, ".")
}

func isClosing(r rune) bool {
	return r == '"' || r == '\'' || r == ')' || r == ']'
}

func abbreviationSet() map[string]bool {
	words := []string{
		"mr", "mrs", "ms", "dr", "prof", "sr", "jr", "st",
		"fig", "eq", "sec", "ref", "refs", "et", "al", "cf",
		"vs", "etc", "resp", "approx", "no", "vol", "pp", "ed", "eds",
		"jan", "feb", "mar", "apr", "jun", "jul", "aug",
		"sep", "sept", "oct", "nov", "dec",
	}
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}
