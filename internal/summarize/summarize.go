// Package summarize produces extractive summaries of paper text: a ranked
// subset of the original sentences, emitted in reading order.
package summarize

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/log"
)

// DefaultMaxWords is the stock summary length budget.
const DefaultMaxWords = 150

// wordsPerSentence approximates prose sentence length when converting a
// word budget into a sentence count.
const wordsPerSentence = 15

// Summarizer condenses text to approximately maxWords words.
type Summarizer interface {
	Summarize(text string, maxWords int) (string, error)
}

// New returns the named summarizer. Supported algorithms: textrank, luhn.
// Unknown names fall back to textrank with a warning.
func New(algorithm string) Summarizer {
	switch strings.ToLower(algorithm) {
	case "", "textrank":
		return NewTextRank()
	case "luhn":
		return NewLuhn()
	default:
		log.Warn("Unknown summarizer algorithm, using textrank",
			"algorithm", algorithm, "supported", "textrank, luhn")
		return NewTextRank()
	}
}

// sentenceBudget converts a word budget into the number of sentences to
// keep.
func sentenceBudget(maxWords int) int {
	if maxWords < 1 {
		maxWords = DefaultMaxWords
	}
	return max(1, maxWords/wordsPerSentence)
}

// tokenize lowers a sentence and splits it into letter and digit runs.
func tokenize(sentence string) []string {
	return strings.FieldsFunc(strings.ToLower(sentence), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// selectInOrder keeps the count highest-scored sentences and returns them
// joined in their original order.
func selectInOrder(sentences []string, scores []float64, count int) string {
	type ranked struct {
		index int
		score float64
	}
	order := make([]ranked, len(sentences))
	for i, score := range scores {
		order[i] = ranked{index: i, score: score}
	}
	for i := 0; i < count; i++ {
		best := i
		for j := i + 1; j < len(order); j++ {
			if order[j].score > order[best].score {
				best = j
			}
		}
		order[i], order[best] = order[best], order[i]
	}

	keep := make(map[int]bool, count)
	for _, r := range order[:count] {
		keep[r.index] = true
	}

	var out []string
	for i, sentence := range sentences {
		if keep[i] {
			out = append(out, sentence)
		}
	}
	return strings.Join(out, " ")
}
