package engines

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/papervoice/papervoice/internal/speech"
)

// piperSampleRate is the output rate of the common medium-quality piper
// voices.
const piperSampleRate = 22050

// Piper synthesizes speech with the piper neural TTS program, reading raw
// PCM from its stdout.
type Piper struct {
	binary  string
	model   string
	timeout time.Duration
}

// NewPiper creates a piper engine from cfg.
func NewPiper(cfg Config) *Piper {
	binary := cfg.PiperBinary
	if binary == "" {
		binary = "piper"
	}
	return &Piper{binary: binary, model: cfg.PiperModel, timeout: cfg.Timeout}
}

// Synthesize renders text as 16-bit mono PCM. Piper has no words-per-
// minute control; the rate maps onto its length scale relative to the
// default rate.
func (p *Piper) Synthesize(ctx context.Context, text string, opts speech.SynthesisOptions) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	args := []string{"--model", p.model, "--output-raw"}
	if opts.RateWPM > 0 {
		scale := speech.DefaultRateWPM / opts.RateWPM
		args = append(args, "--length-scale", strconv.FormatFloat(scale, 'f', 2, 64))
	}

	cmd := exec.CommandContext(ctx, p.binary, args...)
	cmd.Stdin = strings.NewReader(text)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("piper timed out after %v", p.timeout)
		}
		return nil, fmt.Errorf("%w: piper: %v: %s",
			speech.ErrSynthesisFailed, err, strings.TrimSpace(stderr.String()))
	}
	return stdout.Bytes(), nil
}

// Info describes piper's PCM stream.
func (p *Piper) Info() speech.EngineInfo {
	return speech.EngineInfo{
		Name:       "piper",
		SampleRate: piperSampleRate,
		Channels:   1,
		BitDepth:   16,
	}
}

// Voices reports the single voice of the configured model.
func (p *Piper) Voices() ([]speech.Voice, error) {
	if p.model == "" {
		return nil, speech.ErrNoVoices
	}
	name := strings.TrimSuffix(filepath.Base(p.model), filepath.Ext(p.model))
	return []speech.Voice{{ID: name, Name: name}}, nil
}

// Validate checks that piper and its voice model are usable.
func (p *Piper) Validate() error {
	if _, err := exec.LookPath(p.binary); err != nil {
		return fmt.Errorf("%w: piper not found in PATH: %v\n\n%s",
			speech.ErrEngineNotAvailable, err, piperInstallGuidance)
	}
	if p.model == "" {
		return fmt.Errorf("%w: no piper model configured\n\n%s",
			speech.ErrEngineNotAvailable, piperModelGuidance)
	}
	if _, err := os.Stat(p.model); err != nil {
		return fmt.Errorf("%w: piper model not accessible: %v", speech.ErrEngineNotAvailable, err)
	}
	return nil
}

// Close is a no-op; piper holds no persistent resources.
func (p *Piper) Close() error { return nil }

const piperInstallGuidance = `To install piper:

  Download a release from https://github.com/rhasspy/piper/releases
  and place the binary on your PATH.`

const piperModelGuidance = `Configure a voice model, e.g. in the config file:

  engine: piper
  piper:
    model: ~/.local/share/piper/en_US-amy-medium.onnx

Voice models: https://github.com/rhasspy/piper/blob/master/VOICES.md`
