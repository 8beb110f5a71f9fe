package speech

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
)

// Settings bounds.
const (
	MinRateWPM = 50
	MaxRateWPM = 500

	DefaultRateWPM       = 140
	DefaultVolume        = 0.9
	DefaultSentencePause = 100 * time.Millisecond
	DefaultSectionPause  = time.Second
)

// Settings holds the narration audio parameters. Values are clamped or
// rejected on assignment so downstream consumers always see valid state.
type Settings struct {
	rate          float64
	volume        float64
	voice         string
	sentencePause time.Duration
	sectionPause  time.Duration
}

// DefaultSettings returns settings with the stock narration defaults.
func DefaultSettings() *Settings {
	return &Settings{
		rate:          DefaultRateWPM,
		volume:        DefaultVolume,
		sentencePause: DefaultSentencePause,
		sectionPause:  DefaultSectionPause,
	}
}

// Rate returns the speaking rate in words per minute.
func (s *Settings) Rate() float64 { return s.rate }

// SetRate sets the speaking rate, clamped to [50, 500] words per minute.
func (s *Settings) SetRate(rate float64) {
	clamped := min(MaxRateWPM, max(MinRateWPM, rate))
	if clamped != rate {
		log.Warn("Speaking rate out of range, clamped", "rate", rate, "clamped", clamped)
	}
	s.rate = clamped
}

// Volume returns the playback volume.
func (s *Settings) Volume() float64 { return s.volume }

// SetVolume sets the volume, clamped to [0, 1].
func (s *Settings) SetVolume(volume float64) {
	clamped := min(1.0, max(0.0, volume))
	if clamped != volume {
		log.Warn("Volume out of range, clamped", "volume", volume, "clamped", clamped)
	}
	s.volume = clamped
}

// Voice returns the selected voice ID. Empty means the engine default.
func (s *Settings) Voice() string { return s.voice }

// SetVoice selects a voice from the engine's list by ID. An unknown ID is
// rejected with a logged error and the current voice is kept.
func (s *Settings) SetVoice(engine Engine, id string) error {
	if id == "" {
		s.voice = ""
		return nil
	}
	voices, err := engine.Voices()
	if err != nil {
		return fmt.Errorf("list voices: %w", err)
	}
	for _, v := range voices {
		if v.ID == id {
			s.voice = id
			return nil
		}
	}
	log.Error("Invalid voice, keeping current voice", "voice", id)
	return fmt.Errorf("%w: %s", ErrVoiceNotFound, id)
}

// SetVoiceIndex selects a voice by its index in the engine's list.
func (s *Settings) SetVoiceIndex(engine Engine, index int) error {
	voices, err := engine.Voices()
	if err != nil {
		return fmt.Errorf("list voices: %w", err)
	}
	if index < 0 || index >= len(voices) {
		log.Error("Invalid voice index, keeping current voice", "index", index)
		return fmt.Errorf("%w: index %d", ErrVoiceNotFound, index)
	}
	s.voice = voices[index].ID
	return nil
}

// SentencePause returns the pause inserted after each spoken sentence.
func (s *Settings) SentencePause() time.Duration { return s.sentencePause }

// SetSentencePause sets the sentence pause. Negative values are rejected
// and the current pause is kept.
func (s *Settings) SetSentencePause(d time.Duration) {
	if d < 0 {
		log.Error("Pause must be non-negative, keeping current pause", "pause", d)
		return
	}
	s.sentencePause = d
}

// SectionPause returns the pause inserted between headers and content
// blocks.
func (s *Settings) SectionPause() time.Duration { return s.sectionPause }

// SetSectionPause sets the section pause. Negative values are rejected and
// the current pause is kept.
func (s *Settings) SetSectionPause(d time.Duration) {
	if d < 0 {
		log.Error("Pause must be non-negative, keeping current pause", "pause", d)
		return
	}
	s.sectionPause = d
}

// Options returns the synthesis options for the current settings.
func (s *Settings) Options() SynthesisOptions {
	return SynthesisOptions{
		RateWPM: s.rate,
		Voice:   s.voice,
	}
}

// Snapshot returns the settings as a map, suitable for persisting.
func (s *Settings) Snapshot() map[string]any {
	return map[string]any{
		"rate":           s.rate,
		"volume":         s.volume,
		"voice":          s.voice,
		"sentence_pause": s.sentencePause,
		"section_pause":  s.sectionPause,
	}
}
