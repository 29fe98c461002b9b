package ui

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/termcalc/audio"
	"github.com/lixenwraith/termcalc/calc"
	"github.com/lixenwraith/termcalc/input"
)

// InputHandler turns tcell events into router commands and sound feedback
type InputHandler struct {
	router *input.Router
	player audio.Player // nil when audio is unavailable

	// Bracketed paste accumulation
	pasting  bool
	pasteBuf strings.Builder

	status string
}

// NewInputHandler creates a handler; player may be nil
func NewInputHandler(router *input.Router, player audio.Player) *InputHandler {
	return &InputHandler{
		router: router,
		player: player,
	}
}

// HandleEvent processes a tcell event and returns false if the app should exit
func (h *InputHandler) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventPaste:
		h.handlePaste(ev)
	case *tcell.EventKey:
		return h.handleKeyEvent(ev)
	}
	return true
}

// Display returns the current display string
func (h *InputHandler) Display() string {
	return h.router.Display()
}

// Status returns the last transient message
func (h *InputHandler) Status() string {
	return h.status
}

// Muted reports the sound state shown in the status line
func (h *InputHandler) Muted() bool {
	return h.player == nil || h.player.IsMuted()
}

func (h *InputHandler) handlePaste(ev *tcell.EventPaste) {
	if ev.Start() {
		h.pasting = true
		h.pasteBuf.Reset()
		return
	}
	h.pasting = false
	text := h.pasteBuf.String()
	h.pasteBuf.Reset()

	before := h.router.Display()
	after := h.router.PasteText(text)
	if after == before {
		h.status = "paste ignored"
		return
	}
	h.status = ""
	h.feedback(input.Command{Type: input.CommandPaste}, before, after)
}

func (h *InputHandler) handleKeyEvent(ev *tcell.EventKey) bool {
	if h.pasting {
		switch ev.Key() {
		case tcell.KeyRune:
			h.pasteBuf.WriteRune(ev.Rune())
		case tcell.KeyEnter, tcell.KeyLF:
			h.pasteBuf.WriteByte('\n')
		}
		return true
	}

	cmd := h.router.ClassifyKey(ev.Key(), ev.Rune())

	switch cmd.Type {
	case input.CommandQuit:
		return false
	case input.CommandToggleSound:
		if h.player != nil {
			if h.player.ToggleMute() {
				h.status = "sound off"
			} else {
				h.status = "sound on"
			}
		}
		return true
	}

	before := h.router.Display()
	var after string
	switch {
	case ev.Key() == tcell.KeyRune:
		// Unbound runes still reach the chord accumulator
		after = h.router.Feed(string(ev.Rune()))
	case cmd.Type != input.CommandNone:
		after = h.router.Dispatch(cmd)
	default:
		return true
	}

	if cmd.Type == input.CommandNone {
		return true
	}

	h.status = ""
	if cmd.Type == input.CommandCopy {
		h.status = "copied " + after
	}
	h.feedback(cmd, before, after)
	return true
}

// feedback plays the sound matching a handled command
func (h *InputHandler) feedback(cmd input.Command, before, after string) {
	if h.player == nil {
		return
	}
	switch {
	case after == calc.Sentinel && before != calc.Sentinel:
		h.player.Play(audio.SoundError)
	case cmd.Type == input.CommandEquals && after != calc.Sentinel:
		h.player.Play(audio.SoundResult)
	default:
		h.player.Play(audio.SoundClick)
	}
}
