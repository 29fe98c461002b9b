// Package clipboard moves display text to and from the system clipboard.
//
// Backends:
//   - Command: external programs (pbcopy/pbpaste, wl-copy/wl-paste, xclip, xsel, clip.exe)
//   - OSC52: terminal escape sequence, copy only
//   - Memory: process-local buffer, used in tests and as a fallback
//   - None: every operation fails with ErrNoBackend
package clipboard

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
)

// Sentinel errors
var (
	ErrNoBackend = errors.New("no clipboard backend available")
	ErrEmpty     = errors.New("clipboard is empty")
	ErrWriteOnly = errors.New("clipboard backend cannot read")
)

// Sink receives copied text
type Sink interface {
	Write(text string) error
}

// Source supplies pasted text
type Source interface {
	Read() (string, error)
}

// Clipboard is a backend that can both copy and paste
type Clipboard interface {
	Sink
	Source
	Name() string
}

// Backend names accepted by New
const (
	BackendAuto    = "auto"
	BackendCommand = "command"
	BackendOSC52   = "osc52"
	BackendMemory  = "memory"
	BackendNone    = "none"
)

// New resolves a backend by name
// auto prefers an installed clipboard command and falls back to OSC 52 on w
func New(backend string, w io.Writer) (Clipboard, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendAuto:
		if cmd, err := DetectCommand(); err == nil {
			return cmd, nil
		}
		if w != nil {
			return NewOSC52(w), nil
		}
		return NewMemory(), nil
	case BackendCommand:
		return DetectCommand()
	case BackendOSC52:
		if w == nil {
			return nil, fmt.Errorf("osc52: %w", ErrNoBackend)
		}
		return NewOSC52(w), nil
	case BackendMemory:
		return NewMemory(), nil
	case BackendNone:
		return None{}, nil
	}
	return nil, fmt.Errorf("unknown clipboard backend %q", backend)
}

// Memory keeps the clipboard inside the process
type Memory struct {
	mu   sync.Mutex
	text string
	set  bool
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Name() string { return BackendMemory }

func (m *Memory) Write(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.text = text
	m.set = true
	return nil
}

func (m *Memory) Read() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.set {
		return "", ErrEmpty
	}
	return m.text, nil
}

// None rejects every operation
type None struct{}

func (None) Name() string { return BackendNone }

func (None) Write(string) error { return ErrNoBackend }

func (None) Read() (string, error) { return "", ErrNoBackend }
