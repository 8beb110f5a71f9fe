package speech

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// Audio speaks text units through a synthesis engine and a blocking
// player, pausing between sentences. It is the playback collaborator the
// narration driver dispatches to.
type Audio struct {
	engine   Engine
	player   Player
	settings *Settings
	splitter *Splitter
}

// NewAudio wires an engine and player together under the given settings.
func NewAudio(engine Engine, player Player, settings *Settings) *Audio {
	return &Audio{
		engine:   engine,
		player:   player,
		settings: settings,
		splitter: NewSplitter(),
	}
}

// ReadArticle reads one text unit aloud, sentence by sentence, sleeping
// the configured sentence pause after each. Blank input is skipped with a
// warning rather than treated as an error.
func (a *Audio) ReadArticle(ctx context.Context, text string) error {
	if strings.TrimSpace(text) == "" {
		log.Warn("Skipping empty narration unit")
		return nil
	}

	for _, sentence := range a.splitter.Split(text) {
		if err := a.Speak(ctx, sentence); err != nil {
			return err
		}
		if err := sleep(ctx, a.settings.SentencePause()); err != nil {
			return err
		}
	}
	return nil
}

// Speak synthesizes and plays one utterance, blocking until it has been
// spoken.
func (a *Audio) Speak(ctx context.Context, text string) error {
	pcm, err := a.engine.Synthesize(ctx, text, a.settings.Options())
	if err != nil {
		return fmt.Errorf("synthesize: %w", err)
	}
	if err := a.player.SetVolume(a.settings.Volume()); err != nil {
		return fmt.Errorf("set volume: %w", err)
	}
	if err := a.player.Play(pcm); err != nil {
		return fmt.Errorf("play: %w", err)
	}
	return nil
}

// Stop halts the current playback.
func (a *Audio) Stop() error {
	return a.player.Stop()
}

// Close releases the engine and player.
func (a *Audio) Close() error {
	if err := a.engine.Close(); err != nil {
		return err
	}
	return a.player.Close()
}

// sleep waits for d or until ctx is canceled.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
