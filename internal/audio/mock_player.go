package audio

import "sync"

// MockPlayer is an in-memory Player replacement for tests. It records
// every buffer it is asked to play and never touches an audio device.
type MockPlayer struct {
	mu      sync.Mutex
	Played  [][]byte
	Volume  float64
	Stopped bool
	Closed  bool

	// PlayErr, when set, is returned from Play.
	PlayErr error
}

// NewMockPlayer returns a mock player at full volume.
func NewMockPlayer() *MockPlayer {
	return &MockPlayer{Volume: 1.0}
}

// Play records the buffer and returns PlayErr.
func (m *MockPlayer) Play(pcm []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.PlayErr != nil {
		return m.PlayErr
	}
	buf := make([]byte, len(pcm))
	copy(buf, pcm)
	m.Played = append(m.Played, buf)
	return nil
}

// Stop records that playback was interrupted.
func (m *MockPlayer) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Stopped = true
	return nil
}

// SetVolume records the requested volume.
func (m *MockPlayer) SetVolume(volume float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Volume = volume
	return nil
}

// Close marks the player closed.
func (m *MockPlayer) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Closed = true
	return nil
}

// PlayCount returns how many buffers were played.
func (m *MockPlayer) PlayCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Played)
}
