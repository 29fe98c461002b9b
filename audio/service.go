package audio

import (
	"log"
	"sync/atomic"
)

// Player is the sound interface the front ends depend on
type Player interface {
	Play(SoundType) bool
	ToggleMute() bool
	IsMuted() bool
	IsRunning() bool
}

// AudioService runs the SoundManager under the service hub
// A machine without an audio device disables the service instead of failing startup
type AudioService struct {
	cfg      *AudioConfig
	manager  *SoundManager
	disabled atomic.Bool
}

// NewService creates the service; nil cfg means defaults plus environment
func NewService(cfg *AudioConfig) *AudioService {
	if cfg == nil {
		cfg = LoadAudioConfig()
	}
	return &AudioService{cfg: cfg}
}

func (s *AudioService) Name() string { return "audio" }

func (s *AudioService) Dependencies() []string { return nil }

// Init builds the manager
// args[0]: bool, true starts muted
func (s *AudioService) Init(args ...any) error {
	if len(args) > 0 {
		if muted, _ := args[0].(bool); muted {
			s.cfg.Enabled = false
		}
	}
	s.manager = NewSoundManager(s.cfg)
	return nil
}

// Start opens the speaker
func (s *AudioService) Start() error {
	if s.manager == nil {
		return ErrNotInitialized
	}
	if err := s.manager.Initialize(); err != nil {
		log.Printf("%v: %v", ErrDisabled, err)
		s.disabled.Store(true)
	}
	return nil
}

func (s *AudioService) Stop() error {
	if s.manager != nil {
		s.manager.Cleanup()
	}
	return nil
}

// IsDisabled reports a failed speaker open
func (s *AudioService) IsDisabled() bool {
	return s.disabled.Load()
}

// Player returns nil before Init and after a failed Start
func (s *AudioService) Player() Player {
	if s.manager == nil || s.disabled.Load() {
		return nil
	}
	return s.manager
}
