// Package service runs the long-lived parts of termcalc (sound output and
// the websocket keypad) under a Hub that orders and rolls back lifecycles.
package service

// Service is one hub-managed subsystem
//
// The hub calls Init on every service, then Start on every service, then
// Stop on the started ones in reverse. A service that cannot run in the
// current environment should disable itself rather than fail Start.
type Service interface {
	// Name is the unique key used for registration and Init args
	Name() string

	// Dependencies names services that must be initialized and started first
	Dependencies() []string

	// Init applies service-specific args, e.g. a mute flag or a listen config
	Init(args ...any) error

	// Start acquires resources such as the speaker or a listening socket
	Start() error

	// Stop releases resources; calling it twice is allowed
	Stop() error
}
