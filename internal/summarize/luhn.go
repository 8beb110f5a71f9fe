package summarize

import (
	"strings"

	"github.com/papervoice/papervoice/internal/speech"
)

// Luhn scores each sentence by the density of significant words: words that
// recur across the text and are long enough to carry meaning.
type Luhn struct {
	splitter *speech.Splitter

	// minFrequency is the number of occurrences a word needs before it
	// counts as significant.
	minFrequency int

	// minWordLength filters out function words.
	minWordLength int
}

// NewLuhn returns a Luhn summarizer with the stock significance thresholds.
func NewLuhn() *Luhn {
	return &Luhn{
		splitter:      speech.NewSplitter(),
		minFrequency:  2,
		minWordLength: 4,
	}
}

// Summarize keeps the sentences densest in significant words, up to
// approximately maxWords words. Text that already fits the budget is
// returned whole.
func (l *Luhn) Summarize(text string, maxWords int) (string, error) {
	sentences := l.splitter.Split(text)
	budget := sentenceBudget(maxWords)
	if len(sentences) <= budget {
		return strings.Join(sentences, " "), nil
	}

	tokens := make([][]string, len(sentences))
	freq := make(map[string]int)
	for i, s := range sentences {
		tokens[i] = tokenize(s)
		for _, w := range tokens[i] {
			if len(w) >= l.minWordLength {
				freq[w]++
			}
		}
	}

	significant := make(map[string]bool)
	for w, n := range freq {
		if n >= l.minFrequency {
			significant[w] = true
		}
	}

	scores := make([]float64, len(sentences))
	for i, words := range tokens {
		scores[i] = l.score(words, significant)
	}
	return selectInOrder(sentences, scores, budget), nil
}

// score rates one sentence: the squared count of significant words over the
// span between the first and last of them.
func (l *Luhn) score(words []string, significant map[string]bool) float64 {
	first, last, count := -1, -1, 0
	for i, w := range words {
		if !significant[w] {
			continue
		}
		if first < 0 {
			first = i
		}
		last = i
		count++
	}
	if count == 0 {
		return 0
	}
	span := last - first + 1
	return float64(count*count) / float64(span)
}
