package speech

import "errors"

// Common errors for the speech pipeline.
var (
	ErrEngineNotAvailable = errors.New("speech engine is not available")
	ErrInvalidEngine      = errors.New("unknown speech engine")
	ErrNoVoices           = errors.New("engine reported no voices")
	ErrVoiceNotFound      = errors.New("requested voice not found")
	ErrSynthesisFailed    = errors.New("audio synthesis failed")
	ErrPlayerClosed       = errors.New("audio player is closed")
)
