package remote

// Request is one client message
// Exactly one of Key or Paste is expected; Key takes button names ("sum")
// or keyboard symbols ("+"), Paste carries clipboard text
type Request struct {
	Key   string  `json:"key,omitempty"`
	Paste *string `json:"paste,omitempty"`
}

// Response is sent on connect and after every request
type Response struct {
	Session string `json:"session"`
	Display string `json:"display"`

	// Copy holds the display text when the request triggered a copy
	Copy string `json:"copy,omitempty"`

	Error string `json:"error,omitempty"`
}
