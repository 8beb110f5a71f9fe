// Package speech turns recovered document text into spoken audio: sentence
// segmentation, audio settings, and the narration driver.
package speech

import "context"

// Engine is a speech-synthesis backend. Implementations synthesize one
// utterance at a time into PCM audio (16-bit mono, sample rate per Info).
type Engine interface {
	// Synthesize converts text to PCM audio. It must handle timeout
	// protection internally via ctx.
	Synthesize(ctx context.Context, text string, opts SynthesisOptions) ([]byte, error)

	// Info returns the engine's audio characteristics.
	Info() EngineInfo

	// Voices returns the voices the engine can speak with.
	Voices() ([]Voice, error)

	// Validate checks the engine is installed and usable.
	Validate() error

	// Close releases engine resources.
	Close() error
}

// SynthesisOptions carries the per-utterance rendering parameters.
// Volume is not part of synthesis; the player owns it.
type SynthesisOptions struct {
	// RateWPM is the speaking rate in words per minute.
	RateWPM float64

	// Voice is the engine-specific voice identifier. Empty selects the
	// engine default.
	Voice string
}

// EngineInfo describes an engine's output format.
type EngineInfo struct {
	Name       string
	SampleRate int
	Channels   int
	BitDepth   int
}

// Voice identifies one synthesis voice.
type Voice struct {
	ID       string
	Name     string
	Language string
}

// Player plays PCM audio. Play blocks until the buffer has been spoken.
type Player interface {
	Play(pcm []byte) error
	Stop() error
	SetVolume(volume float64) error
	Close() error
}

// Reader speaks one text unit, splitting it into sentences and pausing
// between them. It blocks until the unit has been spoken.
type Reader interface {
	ReadArticle(ctx context.Context, text string) error
	Stop() error
}
