// Package document models a fetched paper: bibliographic metadata plus the
// section structure recovered from its page blocks.
package document

import (
	"context"
	"fmt"

	"github.com/papervoice/papervoice/internal/arxiv"
	"github.com/papervoice/papervoice/internal/pages"
)

// PageSource supplies the ordered text blocks of a document. Reading order
// is page-major, block-minor and must be stable across calls within one
// fetch.
type PageSource interface {
	Blocks(ctx context.Context) ([]pages.TextBlock, error)
}

// SourceFunc adapts a function to the PageSource interface.
type SourceFunc func(ctx context.Context) ([]pages.TextBlock, error)

// Blocks calls f.
func (f SourceFunc) Blocks(ctx context.Context) ([]pages.TextBlock, error) {
	return f(ctx)
}

// Document aggregates a paper's metadata with its lazily computed section
// list. Sections are classified on first access and cached; recomputation
// only happens after an explicit Invalidate.
type Document struct {
	Meta arxiv.Metadata

	source     PageSource
	classifier *Classifier

	sections []Section
	loaded   bool
}

// New creates a Document over the given metadata and page source.
func New(meta arxiv.Metadata, source PageSource) *Document {
	return &Document{
		Meta:       meta,
		source:     source,
		classifier: NewClassifier(),
	}
}

// Sections returns the recovered sections, fetching and classifying the
// page blocks on first call. A retrieval failure aborts without caching;
// the next call retries the fetch.
func (d *Document) Sections(ctx context.Context) ([]Section, error) {
	if !d.loaded {
		blocks, err := d.source.Blocks(ctx)
		if err != nil {
			return nil, fmt.Errorf("fetch page blocks: %w", err)
		}
		d.sections = d.classifier.Classify(blocks)
		d.loaded = true
	}
	return d.sections, nil
}

// Invalidate clears the cached sections so the next Sections call
// recomputes them.
func (d *Document) Invalidate() {
	d.sections = nil
	d.loaded = false
}
