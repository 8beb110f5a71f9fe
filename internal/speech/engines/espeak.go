package engines

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/papervoice/papervoice/internal/speech"
)

// espeakSampleRate is the fixed output rate of espeak-ng's WAV stream.
const espeakSampleRate = 22050

// Espeak synthesizes speech with the espeak-ng command-line program.
// Output is requested as WAV on stdout and stripped to raw PCM.
type Espeak struct {
	binary  string
	timeout time.Duration
}

// NewEspeak creates an espeak-ng engine from cfg.
func NewEspeak(cfg Config) *Espeak {
	binary := cfg.EspeakBinary
	if binary == "" {
		binary = "espeak-ng"
	}
	return &Espeak{binary: binary, timeout: cfg.Timeout}
}

// Synthesize renders text as 16-bit mono PCM at 22050 Hz.
func (e *Espeak) Synthesize(ctx context.Context, text string, opts speech.SynthesisOptions) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	args := []string{"--stdout", "--stdin"}
	if opts.RateWPM > 0 {
		args = append(args, "-s", strconv.Itoa(int(opts.RateWPM)))
	}
	if opts.Voice != "" {
		args = append(args, "-v", opts.Voice)
	}

	cmd := exec.CommandContext(ctx, e.binary, args...)
	cmd.Stdin = strings.NewReader(text)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("espeak-ng timed out after %v", e.timeout)
		}
		return nil, fmt.Errorf("%w: espeak-ng: %v: %s",
			speech.ErrSynthesisFailed, err, strings.TrimSpace(stderr.String()))
	}

	pcm, err := pcmFromWAV(stdout.Bytes())
	if err != nil {
		return nil, fmt.Errorf("espeak-ng output: %w", err)
	}
	return pcm, nil
}

// Info describes espeak-ng's PCM stream.
func (e *Espeak) Info() speech.EngineInfo {
	return speech.EngineInfo{
		Name:       "espeak",
		SampleRate: espeakSampleRate,
		Channels:   1,
		BitDepth:   16,
	}
}

// Voices lists the voices espeak-ng reports via --voices.
func (e *Espeak) Voices() ([]speech.Voice, error) {
	out, err := exec.Command(e.binary, "--voices").Output()
	if err != nil {
		return nil, fmt.Errorf("list espeak-ng voices: %w", err)
	}
	voices := parseEspeakVoices(string(out))
	if len(voices) == 0 {
		return nil, speech.ErrNoVoices
	}
	return voices, nil
}

// parseEspeakVoices parses the table printed by espeak-ng --voices:
//
//	Pty Language       Age/Gender VoiceName         File        Other Languages
//	 5  en-gb           --/M      English_(Great_Britain) gmw/en
func parseEspeakVoices(out string) []speech.Voice {
	var voices []speech.Voice
	lines := strings.Split(out, "\n")
	for i, line := range lines {
		if i == 0 { // header row
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 5 {
			continue
		}
		voices = append(voices, speech.Voice{
			ID:       fields[4],
			Name:     strings.ReplaceAll(fields[3], "_", " "),
			Language: fields[1],
		})
	}
	return voices
}

// Validate checks that espeak-ng is installed and runnable.
func (e *Espeak) Validate() error {
	path, err := exec.LookPath(e.binary)
	if err != nil {
		return fmt.Errorf("%w: espeak-ng not found in PATH: %v\n\n%s",
			speech.ErrEngineNotAvailable, err, espeakInstallGuidance)
	}
	if err := exec.Command(path, "--version").Run(); err != nil {
		return fmt.Errorf("%w: cannot execute espeak-ng: %v", speech.ErrEngineNotAvailable, err)
	}
	return nil
}

// Close is a no-op; espeak-ng holds no persistent resources.
func (e *Espeak) Close() error { return nil }

const espeakInstallGuidance = `To install espeak-ng:

  # Ubuntu/Debian
  sudo apt install espeak-ng

  # Fedora
  sudo dnf install espeak-ng

  # macOS (Homebrew)
  brew install espeak-ng`
