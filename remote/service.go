package remote

import (
	"context"
	"errors"
	"log"
	"sync"
	"sync/atomic"

	"github.com/lixenwraith/termcalc/input"
)

// Service wraps Server as a hub-managed service
// Start binds the listener so address errors surface at startup; Run serves
type Service struct {
	config *Config
	keys   *input.KeyTable
	server *Server

	disabled atomic.Bool

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewService creates a remote service (disabled until given an address)
func NewService() *Service {
	return &Service{
		config: DefaultConfig(),
	}
}

// Name implements service.Service
func (s *Service) Name() string {
	return "remote"
}

// Dependencies implements service.Service
func (s *Service) Dependencies() []string {
	return nil
}

// Init implements service.Service
// args[0]: *Config (optional, overrides default)
// args[1]: *input.KeyTable (optional, shared read-only by all sessions)
func (s *Service) Init(args ...any) error {
	if len(args) > 0 {
		if cfg, ok := args[0].(*Config); ok && cfg != nil {
			s.config = cfg
		}
	}
	if len(args) > 1 {
		if kt, ok := args[1].(*input.KeyTable); ok && kt != nil {
			s.keys = kt
		}
	}

	if s.config.Address == "" {
		s.disabled.Store(true)
		return nil
	}
	s.server = NewServer(s.config, s.keys)
	return nil
}

// Start implements service.Service
func (s *Service) Start() error {
	if s.disabled.Load() || s.server == nil {
		return nil
	}
	return s.server.Listen()
}

// Run serves until ctx is done or Stop is called
// Returns immediately when the service is disabled
func (s *Service) Run(ctx context.Context) error {
	if s.disabled.Load() || s.server == nil {
		return nil
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	s.mu.Lock()
	s.cancel = cancel
	s.done = done
	s.mu.Unlock()
	defer close(done)

	err := s.server.Serve(ctx)
	if errors.Is(err, ErrNotListening) {
		log.Printf("remote: Run before Start")
	}
	return err
}

// Stop implements service.Service
func (s *Service) Stop() error {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel = nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
		return nil
	}
	// Started but never served
	if s.server != nil {
		s.server.Close()
	}
	return nil
}

// Enabled reports whether an address was configured
func (s *Service) Enabled() bool {
	return !s.disabled.Load()
}

// Addr returns the bound address, empty when not listening
func (s *Service) Addr() string {
	if s.server == nil {
		return ""
	}
	if a := s.server.Addr(); a != nil {
		return a.String()
	}
	return ""
}
