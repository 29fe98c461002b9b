package constant

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate = 44100
	AudioChannels   = 2
)

// Audio Engine Timing
const (
	// AudioBufferDuration determines speaker latency
	AudioBufferDuration = 50 * time.Millisecond

	// MinSoundGap between consecutive sounds of the same type
	MinSoundGap = 30 * time.Millisecond
)

// Click Sound, every accepted key
const (
	ClickSoundDuration = 25 * time.Millisecond
	ClickSoundAttack   = 2 * time.Millisecond
	ClickSoundRelease  = 18 * time.Millisecond
	ClickSoundFreq     = 1760.0
)

// Result Sound, equals with a value
const (
	ResultSoundDuration           = 220 * time.Millisecond
	ResultSoundAttack             = 5 * time.Millisecond
	ResultSoundFundamentalRelease = 190 * time.Millisecond
	ResultSoundOvertoneRelease    = 80 * time.Millisecond
	ResultSoundFreq               = 880.0
)

// Error Sound, display shows ERROR
const (
	ErrorSoundDuration = 160 * time.Millisecond
	ErrorSoundAttack   = 5 * time.Millisecond
	ErrorSoundRelease  = 40 * time.Millisecond
	ErrorSoundFreq     = 110.0
)
