// Package audio provides blocking PCM playback for synthesized speech.
package audio

import (
	"bytes"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

// Config describes the PCM stream the player accepts.
type Config struct {
	SampleRate int // Hz
	Channels   int // 1 = mono, 2 = stereo
	BitDepth   int // bits per sample; 16 only
}

// DefaultConfig matches the output of the bundled synthesis engines.
func DefaultConfig() Config {
	return Config{
		SampleRate: 22050,
		Channels:   1,
		BitDepth:   16,
	}
}

var validSampleRates = []int{8000, 16000, 22050, 24000, 44100, 48000}

// Validate checks the configuration against what oto supports here.
func (c Config) Validate() error {
	ok := false
	for _, rate := range validSampleRates {
		if c.SampleRate == rate {
			ok = true
			break
		}
	}
	if !ok {
		return fmt.Errorf("invalid sample rate %d: must be one of %v", c.SampleRate, validSampleRates)
	}
	if c.Channels != 1 && c.Channels != 2 {
		return fmt.Errorf("channels must be 1 or 2, got %d", c.Channels)
	}
	if c.BitDepth != 16 {
		return fmt.Errorf("bit depth must be 16, got %d", c.BitDepth)
	}
	return nil
}

// Player plays PCM buffers to completion through oto. One buffer plays at
// a time; Play blocks until the audio has been heard.
type Player struct {
	context *oto.Context

	mu      sync.Mutex
	current *oto.Player
	volume  float64
	closed  bool
}

// New initializes the audio device for the given stream config.
func New(cfg Config) (*Player, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   cfg.SampleRate,
		ChannelCount: cfg.Channels,
		Format:       oto.FormatSignedInt16LE,
	})
	if err != nil {
		return nil, fmt.Errorf("create audio context: %w", err)
	}
	<-ready

	return &Player{context: ctx, volume: 1.0}, nil
}

// Play plays one PCM buffer and blocks until playback finishes or Stop is
// called.
func (p *Player) Play(pcm []byte) error {
	if len(pcm) == 0 {
		return errors.New("audio data is empty")
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return errors.New("player is closed")
	}
	player := p.context.NewPlayer(bytes.NewReader(pcm))
	player.SetVolume(p.volume)
	p.current = player
	p.mu.Unlock()

	player.Play()
	for player.IsPlaying() {
		time.Sleep(10 * time.Millisecond)
	}

	p.mu.Lock()
	if p.current == player {
		p.current = nil
	}
	p.mu.Unlock()
	return player.Close()
}

// Stop interrupts the current playback, if any.
func (p *Player) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current != nil {
		p.current.Pause()
		err := p.current.Close()
		p.current = nil
		return err
	}
	return nil
}

// SetVolume sets the volume for subsequent playback, clamped to [0, 1].
func (p *Player) SetVolume(volume float64) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.volume = min(1.0, max(0.0, volume))
	if p.current != nil {
		p.current.SetVolume(p.volume)
	}
	return nil
}

// Close stops playback and marks the player unusable. The oto context
// itself stays alive for the process lifetime; it cannot be torn down.
func (p *Player) Close() error {
	if err := p.Stop(); err != nil {
		return err
	}
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
	return nil
}
