package engines

import (
	"context"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/papervoice/papervoice/internal/speech"
)

func TestNewKnownEngines(t *testing.T) {
	cfg := DefaultConfig()
	for _, name := range []string{"espeak", "piper", "mock"} {
		engine, err := New(name, cfg)
		if err != nil {
			t.Fatalf("New(%q) returned error: %v", name, err)
		}
		if got := engine.Info().Name; got != name {
			t.Errorf("New(%q).Info().Name = %q", name, got)
		}
	}
}

func TestNewUnknownEngine(t *testing.T) {
	_, err := New("festival", DefaultConfig())
	if !errors.Is(err, speech.ErrInvalidEngine) {
		t.Fatalf("New(festival) error = %v, want ErrInvalidEngine", err)
	}
}

func TestParseEspeakVoices(t *testing.T) {
	out := "Pty Language       Age/Gender VoiceName          File                 Other Languages\n" +
		" 5  en-gb           --/M      English_(Great_Britain) gmw/en\n" +
		" 5  de              --/M      German             gmw/de\n" +
		"\n"

	voices := parseEspeakVoices(out)
	if len(voices) != 2 {
		t.Fatalf("parsed %d voices, want 2", len(voices))
	}
	if voices[0].ID != "gmw/en" {
		t.Errorf("voices[0].ID = %q, want gmw/en", voices[0].ID)
	}
	if voices[0].Name != "English (Great Britain)" {
		t.Errorf("voices[0].Name = %q", voices[0].Name)
	}
	if voices[0].Language != "en-gb" {
		t.Errorf("voices[0].Language = %q", voices[0].Language)
	}
	if voices[1].Name != "German" {
		t.Errorf("voices[1].Name = %q", voices[1].Name)
	}
}

func TestParseEspeakVoicesEmpty(t *testing.T) {
	if voices := parseEspeakVoices("Pty Language Age/Gender VoiceName File\n"); len(voices) != 0 {
		t.Fatalf("parsed %d voices from header-only output, want 0", len(voices))
	}
}

// buildWAV assembles a minimal RIFF stream with the given data chunk size
// field and payload.
func buildWAV(declaredSize uint32, payload []byte) []byte {
	var buf []byte
	buf = append(buf, "RIFF"...)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(36+len(payload)))
	buf = append(buf, "WAVE"...)
	buf = append(buf, "fmt "...)
	buf = binary.LittleEndian.AppendUint32(buf, 16)
	buf = append(buf, make([]byte, 16)...)
	buf = append(buf, "data"...)
	buf = binary.LittleEndian.AppendUint32(buf, declaredSize)
	buf = append(buf, payload...)
	return buf
}

func TestPCMFromWAV(t *testing.T) {
	payload := []byte{1, 2, 3, 4, 5, 6}

	t.Run("exact size", func(t *testing.T) {
		pcm, err := pcmFromWAV(buildWAV(uint32(len(payload)), payload))
		if err != nil {
			t.Fatal(err)
		}
		if string(pcm) != string(payload) {
			t.Errorf("pcm = %v, want %v", pcm, payload)
		}
	})

	t.Run("streamed bogus size", func(t *testing.T) {
		// espeak-ng writes 0xFFFFFFFF when streaming to a pipe.
		pcm, err := pcmFromWAV(buildWAV(0xFFFFFFFF, payload))
		if err != nil {
			t.Fatal(err)
		}
		if string(pcm) != string(payload) {
			t.Errorf("pcm = %v, want %v", pcm, payload)
		}
	})

	t.Run("not a wav", func(t *testing.T) {
		if _, err := pcmFromWAV([]byte("hello world, definitely not audio")); err == nil {
			t.Fatal("expected error for non-WAV input")
		}
	})

	t.Run("truncated", func(t *testing.T) {
		if _, err := pcmFromWAV([]byte("RIFF")); err == nil {
			t.Fatal("expected error for truncated input")
		}
	})

	t.Run("no data chunk", func(t *testing.T) {
		wav := buildWAV(uint32(len(payload)), payload)[:28] // cut before data
		if _, err := pcmFromWAV(wav); err == nil {
			t.Fatal("expected error when data chunk is missing")
		}
	})
}

func TestMockSynthesize(t *testing.T) {
	m := NewMock()
	opts := speech.SynthesisOptions{RateWPM: 120}

	pcm, err := m.Synthesize(context.Background(), "one two three four", opts)
	if err != nil {
		t.Fatal(err)
	}
	// 4 words at 120 wpm is 2 seconds of 16-bit mono at 22050 Hz.
	want := 2 * mockSampleRate * 2
	if len(pcm) != want {
		t.Errorf("len(pcm) = %d, want %d", len(pcm), want)
	}
	if len(m.Utterances) != 1 || m.Utterances[0] != "one two three four" {
		t.Errorf("Utterances = %v", m.Utterances)
	}
}

func TestMockSynthesizeError(t *testing.T) {
	m := NewMock()
	m.Err = speech.ErrSynthesisFailed
	if _, err := m.Synthesize(context.Background(), "text", speech.SynthesisOptions{}); !errors.Is(err, speech.ErrSynthesisFailed) {
		t.Fatalf("err = %v, want ErrSynthesisFailed", err)
	}
	if len(m.Utterances) != 0 {
		t.Errorf("failed synthesis recorded an utterance: %v", m.Utterances)
	}
}

func TestPiperVoices(t *testing.T) {
	p := NewPiper(Config{PiperModel: "/voices/en_US-amy-medium.onnx"})
	voices, err := p.Voices()
	if err != nil {
		t.Fatal(err)
	}
	if len(voices) != 1 || voices[0].ID != "en_US-amy-medium" {
		t.Errorf("voices = %v", voices)
	}

	p = NewPiper(Config{})
	if _, err := p.Voices(); !errors.Is(err, speech.ErrNoVoices) {
		t.Fatalf("err = %v, want ErrNoVoices", err)
	}
}
