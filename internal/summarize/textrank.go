package summarize

import (
	"math"
	"strings"

	"github.com/papervoice/papervoice/internal/speech"
)

// TextRank ranks sentences by running PageRank over a graph whose edges are
// pairwise word-overlap similarities, then keeps the top sentences in their
// original order.
type TextRank struct {
	splitter   *speech.Splitter
	damping    float64
	iterations int
}

// NewTextRank returns a TextRank summarizer with the standard damping
// factor.
func NewTextRank() *TextRank {
	return &TextRank{
		splitter:   speech.NewSplitter(),
		damping:    0.85,
		iterations: 30,
	}
}

// Summarize keeps the highest-ranked sentences of text, up to approximately
// maxWords words. Text that already fits the budget is returned whole.
func (t *TextRank) Summarize(text string, maxWords int) (string, error) {
	sentences := t.splitter.Split(text)
	budget := sentenceBudget(maxWords)
	if len(sentences) <= budget {
		return strings.Join(sentences, " "), nil
	}

	tokens := make([][]string, len(sentences))
	for i, s := range sentences {
		tokens[i] = tokenize(s)
	}

	scores := pagerank(similarityMatrix(tokens), t.damping, t.iterations)
	return selectInOrder(sentences, scores, budget), nil
}

// similarityMatrix computes the pairwise sentence similarity: shared word
// count normalized by the log lengths of both sentences.
func similarityMatrix(tokens [][]string) [][]float64 {
	n := len(tokens)
	sets := make([]map[string]bool, n)
	for i, words := range tokens {
		sets[i] = make(map[string]bool, len(words))
		for _, w := range words {
			sets[i][w] = true
		}
	}

	sim := make([][]float64, n)
	for i := range sim {
		sim[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			norm := math.Log(float64(len(tokens[i]))) + math.Log(float64(len(tokens[j])))
			if norm <= 0 {
				continue
			}
			shared := 0
			for w := range sets[i] {
				if sets[j][w] {
					shared++
				}
			}
			s := float64(shared) / norm
			sim[i][j] = s
			sim[j][i] = s
		}
	}
	return sim
}

// pagerank runs damped power iteration over the weighted similarity graph.
func pagerank(sim [][]float64, damping float64, iterations int) []float64 {
	n := len(sim)
	scores := make([]float64, n)
	for i := range scores {
		scores[i] = 1.0 / float64(n)
	}

	weightSums := make([]float64, n)
	for i, row := range sim {
		for _, w := range row {
			weightSums[i] += w
		}
	}

	for it := 0; it < iterations; it++ {
		next := make([]float64, n)
		for i := 0; i < n; i++ {
			rank := 0.0
			for j := 0; j < n; j++ {
				if i == j || sim[j][i] == 0 || weightSums[j] == 0 {
					continue
				}
				rank += scores[j] * sim[j][i] / weightSums[j]
			}
			next[i] = (1-damping)/float64(n) + damping*rank
		}
		scores = next
	}
	return scores
}
