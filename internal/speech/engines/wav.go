package engines

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
)

// pcmFromWAV extracts the raw sample data from a RIFF WAV stream by
// locating its data chunk. espeak-ng streams WAV with an unknown length
// in the header, so only the chunk layout is trusted, not the sizes.
func pcmFromWAV(wav []byte) ([]byte, error) {
	if len(wav) < 12 || !bytes.Equal(wav[0:4], []byte("RIFF")) || !bytes.Equal(wav[8:12], []byte("WAVE")) {
		return nil, errors.New("not a RIFF WAV stream")
	}

	// Walk the chunks after the RIFF header.
	offset := 12
	for offset+8 <= len(wav) {
		id := wav[offset : offset+4]
		size := int(binary.LittleEndian.Uint32(wav[offset+4 : offset+8]))
		if bytes.Equal(id, []byte("data")) {
			start := offset + 8
			end := start + size
			// Streamed WAV commonly declares a bogus size; take
			// everything that follows.
			if size <= 0 || end > len(wav) {
				end = len(wav)
			}
			return wav[start:end], nil
		}
		offset += 8 + size
		if size%2 == 1 {
			offset++ // chunks are word-aligned
		}
	}
	return nil, fmt.Errorf("no data chunk in %d-byte WAV stream", len(wav))
}
