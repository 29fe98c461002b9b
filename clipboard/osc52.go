package clipboard

import (
	"encoding/base64"
	"fmt"
	"io"
	"sync"
)

// OSC52 copies by emitting ESC ] 52 ; c ; <base64> BEL to the terminal
// Most modern emulators forward this to the system clipboard
type OSC52 struct {
	mu sync.Mutex
	w  io.Writer
}

func NewOSC52(w io.Writer) *OSC52 {
	return &OSC52{w: w}
}

func (o *OSC52) Name() string { return BackendOSC52 }

func (o *OSC52) Write(text string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	encoded := base64.StdEncoding.EncodeToString([]byte(text))
	_, err := fmt.Fprintf(o.w, "\x1b]52;c;%s\x07", encoded)
	return err
}

// Read is unsupported; terminals deliver pastes as bracketed paste input
func (o *OSC52) Read() (string, error) {
	return "", ErrWriteOnly
}
