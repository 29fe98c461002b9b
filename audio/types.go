package audio

import (
	"errors"
)

// SoundType represents the calculator sound effects
type SoundType int

const (
	SoundClick  SoundType = iota // Key accepted
	SoundResult                  // Equals produced a value
	SoundError                   // Display shows ERROR
	soundTypeCount
)

func (s SoundType) String() string {
	switch s {
	case SoundClick:
		return "click"
	case SoundResult:
		return "result"
	case SoundError:
		return "error"
	}
	return "unknown"
}

// ParseSoundType resolves a sound name as used in config files
func ParseSoundType(name string) (SoundType, bool) {
	for st := SoundType(0); st < soundTypeCount; st++ {
		if st.String() == name {
			return st, true
		}
	}
	return 0, false
}

// Sentinel errors
var (
	ErrNotInitialized = errors.New("audio not initialized")
	ErrDisabled       = errors.New("audio disabled")
)
