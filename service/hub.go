package service

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
)

// Hub errors
var (
	ErrDuplicate         = errors.New("service already registered")
	ErrUnknownDependency = errors.New("depends on unregistered service")
	ErrCycle             = errors.New("circular dependency")
	ErrNotInitialized    = errors.New("services not initialized")
)

// Hub owns the process services and drives their lifecycle
// Dependencies come first; independent services keep registration order
type Hub struct {
	mu      sync.Mutex
	byName  map[string]Service
	order   []string // Registration order
	plan    []string // Dependency order, fixed by InitAll
	running []string // Started services, stopped in reverse
}

// NewHub creates an empty hub
func NewHub() *Hub {
	return &Hub{byName: make(map[string]Service)}
}

// Register adds svc; names must be unique
func (h *Hub) Register(svc Service) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	name := svc.Name()
	if _, ok := h.byName[name]; ok {
		return fmt.Errorf("%s: %w", name, ErrDuplicate)
	}
	h.byName[name] = svc
	h.order = append(h.order, name)
	h.plan = nil
	return nil
}

// Get looks up a registered service
func (h *Hub) Get(name string) (Service, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	svc, ok := h.byName[name]
	return svc, ok
}

// InitAll orders services by dependency and initializes each with args[name]
// A failed Init stops the services already initialized, newest first
func (h *Hub) InitAll(args map[string][]any) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	plan, err := h.resolve()
	if err != nil {
		return err
	}

	for i, name := range plan {
		if err := h.byName[name].Init(args[name]...); err != nil {
			h.stopReverse(plan[:i])
			return fmt.Errorf("service %s init: %w", name, err)
		}
	}
	h.plan = plan
	return nil
}

// StartAll starts services in dependency order
// A failed Start stops the services already started, newest first
func (h *Hub) StartAll() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.plan == nil {
		return ErrNotInitialized
	}

	h.running = h.running[:0]
	for _, name := range h.plan {
		if err := h.byName[name].Start(); err != nil {
			h.stopReverse(h.running)
			h.running = nil
			return fmt.Errorf("service %s start: %w", name, err)
		}
		h.running = append(h.running, name)
	}
	return nil
}

// StopAll stops started services in reverse order
// Stop errors are logged; every service still gets its Stop call
func (h *Hub) StopAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.stopReverse(h.running)
	h.running = nil
}

func (h *Hub) stopReverse(names []string) {
	for i := len(names) - 1; i >= 0; i-- {
		if err := h.byName[names[i]].Stop(); err != nil {
			log.Printf("service %s stop: %v", names[i], err)
		}
	}
}

// resolve walks dependencies depth first from each service in registration order
func (h *Hub) resolve() ([]string, error) {
	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[string]int, len(h.byName))
	plan := make([]string, 0, len(h.byName))

	var visit func(name string, path []string) error
	visit = func(name string, path []string) error {
		switch state[name] {
		case done:
			return nil
		case visiting:
			return fmt.Errorf("%w: %s", ErrCycle, strings.Join(append(path, name), " -> "))
		}
		state[name] = visiting
		for _, dep := range h.byName[name].Dependencies() {
			if _, ok := h.byName[dep]; !ok {
				return fmt.Errorf("service %s %w %s", name, ErrUnknownDependency, dep)
			}
			if err := visit(dep, append(path, name)); err != nil {
				return err
			}
		}
		state[name] = done
		plan = append(plan, name)
		return nil
	}

	for _, name := range h.order {
		if err := visit(name, nil); err != nil {
			return nil, err
		}
	}
	return plan, nil
}
