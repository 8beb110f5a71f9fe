package audio

import "testing"

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"default", DefaultConfig(), false},
		{"cd quality stereo", Config{SampleRate: 44100, Channels: 2, BitDepth: 16}, false},
		{"bad sample rate", Config{SampleRate: 12345, Channels: 1, BitDepth: 16}, true},
		{"bad channels", Config{SampleRate: 22050, Channels: 3, BitDepth: 16}, true},
		{"bad bit depth", Config{SampleRate: 22050, Channels: 1, BitDepth: 8}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestMockPlayerRecordsPlayback(t *testing.T) {
	m := NewMockPlayer()

	if err := m.Play([]byte{1, 2, 3}); err != nil {
		t.Fatalf("Play failed: %v", err)
	}
	if err := m.Play([]byte{4, 5}); err != nil {
		t.Fatalf("Play failed: %v", err)
	}

	if m.PlayCount() != 2 {
		t.Errorf("PlayCount = %d, want 2", m.PlayCount())
	}
	if string(m.Played[0]) != string([]byte{1, 2, 3}) {
		t.Errorf("first buffer = %v", m.Played[0])
	}

	if err := m.SetVolume(0.5); err != nil {
		t.Fatalf("SetVolume failed: %v", err)
	}
	if m.Volume != 0.5 {
		t.Errorf("Volume = %v", m.Volume)
	}

	if err := m.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if !m.Closed {
		t.Error("Closed not set")
	}
}
