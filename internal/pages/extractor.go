// Package pages extracts positioned text blocks from fixed-layout PDF
// documents, in reading order.
package pages

import (
	"fmt"
	"strings"

	pdflib "github.com/ledongthuc/pdf"
)

// TextBlock is one unit of extracted text. Page and Index record the
// extractor-provided reading order: page-major, block-minor.
type TextBlock struct {
	Page  int
	Index int
	Text  string
}

// Extractor turns a PDF file into ordered text blocks. Rows that sit close
// together vertically are merged into one block; a vertical gap larger than
// GapFactor times the tightest row spacing on the page starts a new block.
type Extractor struct {
	GapFactor float64
}

// DefaultGapFactor approximates paragraph spacing in common article layouts.
const DefaultGapFactor = 1.8

// NewExtractor returns an Extractor with the default block-gap threshold.
func NewExtractor() *Extractor {
	return &Extractor{GapFactor: DefaultGapFactor}
}

// ExtractFile reads the PDF at path and returns its text blocks in reading
// order across all pages.
func (e *Extractor) ExtractFile(path string) ([]TextBlock, error) {
	f, reader, err := pdflib.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	var blocks []TextBlock
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageRows, err := page.GetTextByRow()
		if err != nil {
			// A single unreadable page should not lose the rest of
			// the document.
			continue
		}

		rows := make([]row, 0, len(pageRows))
		for _, r := range pageRows {
			rows = append(rows, row{position: r.Position, text: joinRowWords(r.Content)})
		}

		for _, text := range e.groupRows(rows) {
			blocks = append(blocks, TextBlock{
				Page:  i - 1,
				Index: len(blocks),
				Text:  text,
			})
		}
	}
	return blocks, nil
}

// row is one extracted text row with its vertical position on the page.
type row struct {
	position int64
	text     string
}

// spaceGapFraction is the horizontal gap, as a fraction of the font size,
// beyond which two fragments are treated as separate words.
const spaceGapFraction = 0.25

// joinRowWords concatenates a row's text fragments left to right. Some PDFs
// encode no space glyphs at all, so a space is inserted whenever the
// horizontal gap between fragments is wider than a quarter of the font size.
func joinRowWords(words []pdflib.Text) string {
	var sb strings.Builder
	for i, word := range words {
		if i > 0 && needsSpace(words[i-1], word) {
			sb.WriteByte(' ')
		}
		sb.WriteString(word.S)
	}
	return sb.String()
}

func needsSpace(prev, cur pdflib.Text) bool {
	if strings.HasSuffix(prev.S, " ") || strings.HasPrefix(cur.S, " ") {
		return false
	}
	threshold := prev.FontSize * spaceGapFraction
	if threshold <= 0 {
		threshold = 1.0
	}
	return cur.X-(prev.X+prev.W) > threshold
}

// groupRows merges consecutive rows into blocks. The tightest positive gap
// between rows approximates the line spacing; any gap wider than GapFactor
// times that starts a new block.
func (e *Extractor) groupRows(rows []row) []string {
	if len(rows) == 0 {
		return nil
	}

	factor := e.GapFactor
	if factor <= 0 {
		factor = DefaultGapFactor
	}

	lineSpacing := int64(0)
	for i := 1; i < len(rows); i++ {
		gap := absGap(rows[i-1].position, rows[i].position)
		if gap > 0 && (lineSpacing == 0 || gap < lineSpacing) {
			lineSpacing = gap
		}
	}

	threshold := int64(float64(lineSpacing) * factor)

	var blocks []string
	current := []string{rows[0].text}
	for i := 1; i < len(rows); i++ {
		gap := absGap(rows[i-1].position, rows[i].position)
		if lineSpacing > 0 && gap > threshold {
			blocks = append(blocks, strings.Join(current, "\n"))
			current = current[:0]
		}
		current = append(current, rows[i].text)
	}
	blocks = append(blocks, strings.Join(current, "\n"))
	return blocks
}

func absGap(a, b int64) int64 {
	if a > b {
		return a - b
	}
	return b - a
}
