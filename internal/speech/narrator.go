package speech

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/papervoice/papervoice/internal/arxiv"
	"github.com/papervoice/papervoice/internal/document"
)

// Narrator walks a document's sections in order and dispatches each unit
// to a Reader, pausing between units. Narration is synchronous; the only
// state the narrator holds is its iteration position.
type Narrator struct {
	reader   Reader
	settings *Settings
}

// NewNarrator creates a narrator dispatching to reader.
func NewNarrator(reader Reader, settings *Settings) *Narrator {
	return &Narrator{reader: reader, settings: settings}
}

// ReadFrontMatter reads the paper's title, authors, and abstract before
// the body. Missing fields are skipped silently.
func (n *Narrator) ReadFrontMatter(ctx context.Context, meta arxiv.Metadata) error {
	units := []string{meta.Title}
	if len(meta.Authors) > 0 {
		units = append(units, "By "+strings.Join(meta.Authors, ", ")+".")
	}
	if meta.Summary != "" {
		units = append(units, "Abstract.", meta.Summary)
	}

	for _, unit := range units {
		if strings.TrimSpace(unit) == "" {
			continue
		}
		if err := n.readUnit(ctx, unit); err != nil {
			return err
		}
	}
	return nil
}

// Summarizer condenses text to approximately maxWords words.
type Summarizer interface {
	Summarize(text string, maxWords int) (string, error)
}

// NarrateSummary reads an extractive summary of the document body in place
// of the full section walk. Headers are left out of the summarized text;
// they are structure, not prose.
func (n *Narrator) NarrateSummary(ctx context.Context, doc *document.Document, s Summarizer, maxWords int) error {
	sections, err := doc.Sections(ctx)
	if err != nil {
		return fmt.Errorf("narrate: %w", err)
	}

	var body []string
	for _, sec := range sections {
		body = append(body, sec.Content...)
	}

	summary, err := s.Summarize(strings.Join(body, " "), maxWords)
	if err != nil {
		return fmt.Errorf("summarize: %w", err)
	}
	if strings.TrimSpace(summary) == "" {
		log.Warn("Summary is empty, nothing to read")
		return nil
	}

	if err := n.readUnit(ctx, "Summary."); err != nil {
		return err
	}
	return n.readUnit(ctx, summary)
}

// Narrate reads every section of the document in order: the header, if
// any, as its own utterance group, then each content block. A document
// with no sections produces no playback dispatches.
func (n *Narrator) Narrate(ctx context.Context, doc *document.Document) error {
	sections, err := doc.Sections(ctx)
	if err != nil {
		return fmt.Errorf("narrate: %w", err)
	}

	for _, sec := range sections {
		if sec.Header != "" {
			if err := n.readUnit(ctx, sec.Header); err != nil {
				return err
			}
		}
		for _, content := range sec.Content {
			if err := n.readUnit(ctx, content); err != nil {
				return err
			}
		}
	}
	return nil
}

// readUnit dispatches one unit and sleeps the section-level pause. Reader
// failures are logged and skipped so narration keeps moving; context
// cancellation still aborts.
func (n *Narrator) readUnit(ctx context.Context, text string) error {
	if err := n.reader.ReadArticle(ctx, text); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		log.Warn("Skipping narration unit", "err", err)
	}
	return sleep(ctx, n.settings.SectionPause())
}
