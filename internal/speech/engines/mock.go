package engines

import (
	"context"
	"strings"

	"github.com/papervoice/papervoice/internal/speech"
)

const mockSampleRate = 22050

// Mock is an offline engine that produces silence sized to the estimated
// speaking time of the text. It exists for tests and for running the
// pipeline on machines without a TTS program installed.
type Mock struct {
	// Utterances records every synthesized text in order.
	Utterances []string

	// Err, when set, is returned by Synthesize.
	Err error
}

// NewMock creates a mock engine.
func NewMock() *Mock { return &Mock{} }

// Synthesize returns silent PCM whose duration matches the word count at
// the requested rate.
func (m *Mock) Synthesize(_ context.Context, text string, opts speech.SynthesisOptions) ([]byte, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.Utterances = append(m.Utterances, text)

	rate := opts.RateWPM
	if rate <= 0 {
		rate = speech.DefaultRateWPM
	}
	words := len(strings.Fields(text))
	seconds := float64(words) / rate * 60
	samples := int(seconds * mockSampleRate)
	if samples < 1 {
		samples = 1
	}
	return make([]byte, samples*2), nil // 16-bit mono
}

// Info describes the silent PCM stream.
func (m *Mock) Info() speech.EngineInfo {
	return speech.EngineInfo{
		Name:       "mock",
		SampleRate: mockSampleRate,
		Channels:   1,
		BitDepth:   16,
	}
}

// Voices reports a single built-in voice.
func (m *Mock) Voices() ([]speech.Voice, error) {
	return []speech.Voice{{ID: "silence", Name: "Silence", Language: "en"}}, nil
}

// Validate always succeeds; the mock engine needs nothing installed.
func (m *Mock) Validate() error { return nil }

// Close is a no-op.
func (m *Mock) Close() error { return nil }
