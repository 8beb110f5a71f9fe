// Package engines implements speech-synthesis backends as subprocess
// wrappers around locally installed TTS programs.
package engines

import (
	"fmt"
	"time"

	"github.com/papervoice/papervoice/internal/speech"
)

// Config selects and configures an engine.
type Config struct {
	// EspeakBinary is the espeak-ng executable name or path.
	EspeakBinary string

	// PiperBinary is the piper executable name or path.
	PiperBinary string

	// PiperModel is the path to the piper voice model (.onnx).
	PiperModel string

	// Timeout bounds a single synthesis call.
	Timeout time.Duration
}

// DefaultConfig returns the stock engine configuration.
func DefaultConfig() Config {
	return Config{
		EspeakBinary: "espeak-ng",
		PiperBinary:  "piper",
		Timeout:      30 * time.Second,
	}
}

// New creates the named engine. Supported names: espeak, piper, mock.
func New(name string, cfg Config) (speech.Engine, error) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	switch name {
	case "espeak":
		return NewEspeak(cfg), nil
	case "piper":
		return NewPiper(cfg), nil
	case "mock":
		return NewMock(), nil
	default:
		return nil, fmt.Errorf("%w: %s (supported: espeak, piper, mock)", speech.ErrInvalidEngine, name)
	}
}
