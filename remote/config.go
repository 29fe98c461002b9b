package remote

import "time"

// Config holds keypad server configuration
type Config struct {
	// Address to bind, empty disables the server
	Address string

	// Path of the websocket endpoint
	Path string

	// Connection limits
	MaxSessions int
	ReadLimit   int64 // Bytes per message

	// Timing
	ReadTimeout     time.Duration // Idle time before a session is dropped
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// DefaultConfig returns local-use defaults with the server disabled
func DefaultConfig() *Config {
	return &Config{
		Path:            "/ws",
		MaxSessions:     16,
		ReadLimit:       4 * 1024,
		ReadTimeout:     10 * time.Minute,
		WriteTimeout:    5 * time.Second,
		ShutdownTimeout: 2 * time.Second,
	}
}
